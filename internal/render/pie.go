package render

import (
	"enrollment-dashboard/internal/dashboard"
	"enrollment-dashboard/internal/model"
	"math"
	"sync"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DefaultSliceOpacity is the resting opacity of a freshly drawn slice
const DefaultSliceOpacity = 0.7

var pieColors = map[string]drawing.Color{
	model.PieLabelBIPOC: colorPieBIPOC,
	model.PieLabelWhite: colorPieWhite,
}

// Room kept for the title above the pie and the legend on its right
const (
	pieTitleHeight = 40
	pieLegendWidth = 100
	piePadding     = 10
)

// PieChart renders the BIPOC / White pie
type PieChart struct {
	Width  int
	Height int
}

func NewPieChart() *PieChart {
	return &PieChart{Width: CanvasWidth, Height: CanvasHeight}
}

// PieGeometry locates the pie disc on its canvas. Slices run clockwise from
// three o'clock in slice order.
type PieGeometry struct {
	CX     int `json:"cx"`
	CY     int `json:"cy"`
	Radius int `json:"radius"`
}

func (p *PieChart) Geometry() PieGeometry {
	w := p.Width - pieLegendWidth
	h := p.Height - pieTitleHeight
	return PieGeometry{
		CX:     w / 2,
		CY:     pieTitleHeight + h/2,
		Radius: chart.MinInt(w, h)/2 - piePadding,
	}
}

func legendClass(id string) string {
	return "pie-legend-" + id
}

// Slice is one drawn pie slice
type Slice struct {
	Label   string  `json:"label"`
	ID      string  `json:"id"`
	Class   string  `json:"class"`
	Value   int     `json:"value"`
	Opacity float64 `json:"opacity"`
}

// PieView is the handle returned by RenderPie. It owns the slices it drew,
// their tooltip, and the surface it redraws on restyle.
type PieView struct {
	mu      sync.Mutex
	chart   *PieChart
	surface *dashboard.Surface
	year    string
	slices  []Slice
	tooltip *Tooltip
}

// RenderPie rebuilds the pie chart from scratch into s
func (p *PieChart) RenderPie(s *dashboard.Surface, agg model.PieAggregate, year string) (dashboard.PieHandle, error) {
	v := &PieView{chart: p, surface: s, year: year, tooltip: &Tooltip{}}
	for _, sl := range agg.Slices() {
		v.slices = append(v.slices, Slice{
			Label:   sl.Label,
			ID:      dashboard.SliceID(sl.Label),
			Class:   "pie-slice " + dashboard.SliceClass(sl.Label),
			Value:   sl.Value,
			Opacity: DefaultSliceOpacity,
		})
	}
	if err := v.Redraw(); err != nil {
		return nil, err
	}
	return v, nil
}

// SliceIDs lists the derived identifiers of the drawn slices
func (v *PieView) SliceIDs() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	ids := make([]string, len(v.slices))
	for i, s := range v.slices {
		ids[i] = s.ID
	}
	return ids
}

// SetOpacity restyles the slice with the given id
func (v *PieView) SetOpacity(id string, opacity float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.slices {
		if v.slices[i].ID == id {
			v.slices[i].Opacity = opacity
			return true
		}
	}
	return false
}

// Slices returns a copy of the drawn slices
func (v *PieView) Slices() []Slice {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Slice(nil), v.slices...)
}

// Slice looks a slice up by its label or derived id
func (v *PieView) Slice(label string) (Slice, bool) {
	id := dashboard.SliceID(label)
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, s := range v.slices {
		if s.ID == id {
			return s, true
		}
	}
	return Slice{}, false
}

func (v *PieView) Tooltip() *Tooltip { return v.tooltip }

// Redraw replaces the surface with the slices in their current styles
func (v *PieView) Redraw() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	total := 0
	for _, s := range v.slices {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total == 0 {
		return placeholder(v.surface, v.chart.Width, v.chart.Height, pieTitle(v.year), "No families selected")
	}

	rules := make([]styleRule, 0, 2*len(v.slices))
	for _, s := range v.slices {
		col := pieColors[s.Label]
		rules = append(rules,
			styleRule{Class: dashboard.SliceClass(s.Label), Fill: col, FillOpacity: s.Opacity, Stroke: drawing.ColorWhite, StrokeWidth: 2},
			styleRule{Class: legendClass(s.ID), Fill: col, FillOpacity: 1},
		)
	}
	c, err := newCanvas(v.chart.Width, v.chart.Height, rules...)
	if err != nil {
		return err
	}

	g := v.chart.Geometry()
	c.centered(pieTitle(v.year), v.chart.Width/2, 24, chart.Style{FontSize: 12})
	start := 0.0
	for _, s := range v.slices {
		if s.Value <= 0 {
			continue
		}
		delta := 2 * math.Pi * float64(s.Value) / float64(total)
		c.wedge(g.CX, g.CY, float64(g.Radius), start, delta, s.Class)
		start += delta
	}

	left := v.chart.Width - pieLegendWidth + 10
	for i, s := range v.slices {
		top := pieTitleHeight + i*20
		c.box(left, top, left+18, top+18, "legend "+legendClass(s.ID))
		c.text(s.Label, left+24, top+13, chart.Style{})
	}

	out, err := c.bytes()
	if err != nil {
		return err
	}
	v.surface.Replace(out)
	return nil
}

func pieTitle(year string) string {
	if year == "" {
		return "Families by BIPOC category"
	}
	return "Families by BIPOC category, " + year
}
