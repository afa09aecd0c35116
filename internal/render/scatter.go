package render

import (
	"enrollment-dashboard/internal/dashboard"
	"enrollment-dashboard/internal/model"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

const scatterTitle = "Brush to Select Families"

// ScatterChart renders the family positions of the selected year
type ScatterChart struct {
	Width   int
	Height  int
	Margins Margins
	DotSize float64
}

func NewScatterChart() *ScatterChart {
	return &ScatterChart{
		Width:   CanvasWidth,
		Height:  CanvasHeight,
		Margins: Margins{Top: 40, Right: 30, Bottom: 70, Left: 90},
		DotSize: 1.5,
	}
}

// PlotArea is the brushable area inside the margins
func (sc *ScatterChart) PlotArea() (float64, float64) {
	return float64(sc.Width - sc.Margins.Left - sc.Margins.Right), float64(sc.Height - sc.Margins.Top - sc.Margins.Bottom)
}

// RenderScatter rebuilds the scatter plot from scratch into s. Dots sit at the
// plot origin plus frame.Project, the same coordinates brushes are given in.
func (sc *ScatterChart) RenderScatter(s *dashboard.Surface, records []model.Record, frame dashboard.ScatterFrame, year string) error {
	if len(records) == 0 {
		return placeholder(s, sc.Width, sc.Height, scatterTitle, "No families for this year")
	}

	c, err := newCanvas(sc.Width, sc.Height, styleRule{Class: "dot", Fill: colorDot, FillOpacity: 1})
	if err != nil {
		return err
	}
	m := sc.Margins
	w, h := frame.Width, frame.Height
	px := func(x float64) int { return m.Left + int(math.Round(x)) }
	py := func(y float64) int { return m.Top + int(math.Round(y)) }

	c.centered(scatterTitle, sc.Width/2, m.Top/2+6, chart.Style{FontSize: 12})

	// axes
	c.line(px(0), py(h), px(w), py(h), colorInk, 1)
	c.line(px(0), py(0), px(0), py(h), colorInk, 1)
	for _, t := range axisTicks(frame.X.D0, frame.X.D1) {
		x := px(frame.X.Map(t))
		c.line(x, py(h), x, py(h)+6, colorInk, 1)
		c.centered(tickLabel(t, frame.X), x, py(h)+18, chart.Style{})
	}
	for _, t := range axisTicks(frame.Y.D0, frame.Y.D1) {
		y := py(frame.Y.Map(t))
		c.line(px(0)-6, y, px(0), y, colorInk, 1)
		label := tickLabel(t, frame.Y)
		c.text(label, px(0)-10-6*len(label), y+3, chart.Style{})
	}
	c.centered("Randomized Row Assignment", px(w/2), py(h)+45, chart.Style{FontSize: 11})
	c.text("Randomized Column Assignment", m.Left-55, py(h/2)+80, chart.Style{FontSize: 11, TextRotationDegrees: 270})

	for _, rec := range records {
		x, y := frame.Project(rec)
		c.circle(float64(m.Left)+x, float64(m.Top)+y, sc.DotSize, "dot")
	}

	out, err := c.bytes()
	if err != nil {
		return err
	}
	s.Replace(out)
	return nil
}

// axisTicks picks about five round values in [lo, hi]. A degenerate domain
// gets a single tick.
func axisTicks(lo, hi float64) []float64 {
	if !(hi > lo) {
		return []float64{lo}
	}
	step := tickStep(lo, hi)
	first := math.Ceil(lo/step) * step
	var ticks []float64
	for i := 0; ; i++ {
		t := first + float64(i)*step
		if t > hi+step*1e-9 {
			break
		}
		ticks = append(ticks, t)
	}
	return ticks
}

func tickStep(lo, hi float64) float64 {
	raw := (hi - lo) / 5
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5} {
		if m*mag >= raw {
			return m * mag
		}
	}
	return 10 * mag
}

// tickLabel prints t with as many decimals as the axis step needs
func tickLabel(t float64, s dashboard.LinearScale) string {
	if !(s.D1 > s.D0) {
		return formatFloat(t)
	}
	decimals := 0
	if d := -int(math.Floor(math.Log10(tickStep(s.D0, s.D1)))); d > 0 {
		decimals = d
	}
	return strconv.FormatFloat(t, 'f', decimals, 64)
}
