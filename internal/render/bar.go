package render

import (
	"enrollment-dashboard/internal/dashboard"
	"enrollment-dashboard/internal/model"
	"fmt"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// AnnotationLabel is the static note attached to the enrolled BIPOC segment
const AnnotationLabel = "Usually higher percentage of BIPOC families enrolled than unenrolled"

const bandPadding = 0.1

// BarSegment is one stacked rectangle in plot-area coordinates
type BarSegment struct {
	Key    model.BucketKey
	Count  int
	Bottom int // cumulative count below the segment
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// BarLayout is the geometry of a stacked bar chart
type BarLayout struct {
	Width      float64
	Height     float64
	YMax       int
	Y          dashboard.LinearScale
	BandStart  []float64 // left edge per status
	Bandwidth  float64
	Segments   []BarSegment
	AnnotateAt [2]float64 // point of the Enrolled x "At least one BIPOC" segment
}

// LayoutBars computes the band and linear scales and every segment. The y
// domain is [0, max stack height] across the status columns.
func LayoutBars(agg model.BarAggregate, width, height float64) BarLayout {
	n := float64(len(agg.Statuses))
	step := width / math.Max(1, n-bandPadding+2*bandPadding)
	start := (width - step*(n-bandPadding)) / 2

	l := BarLayout{
		Width:     width,
		Height:    height,
		YMax:      agg.MaxStackHeight(),
		Bandwidth: step * (1 - bandPadding),
	}
	l.Y = dashboard.LinearScale{D0: 0, D1: float64(l.YMax), R0: height, R1: 0}

	for i, status := range agg.Statuses {
		x := start + step*float64(i)
		l.BandStart = append(l.BandStart, x)
		cum := 0
		for _, cat := range agg.Categories {
			count := agg.Count(status, cat)
			y0, y1 := l.Y.Map(float64(cum)), l.Y.Map(float64(cum+count))
			l.Segments = append(l.Segments, BarSegment{
				Key:    model.BucketKey{Status: status, BIPOC: cat},
				Count:  count,
				Bottom: cum,
				X:      x,
				Y:      y1,
				Width:  l.Bandwidth,
				Height: y0 - y1,
			})
			cum += count
		}
	}

	for i, status := range agg.Statuses {
		if status == model.StatusEnrolled {
			l.AnnotateAt = [2]float64{
				l.BandStart[i] + l.Bandwidth/2,
				l.Y.Map(float64(agg.Count(model.StatusEnrolled, model.BIPOCAtLeastOne))),
			}
		}
	}
	return l
}

// BarChart renders the stacked enrollment bar chart
type BarChart struct {
	Width   int
	Height  int
	Margins Margins
}

func NewBarChart() *BarChart {
	return &BarChart{
		Width:   CanvasWidth,
		Height:  CanvasHeight,
		Margins: Margins{Top: 20, Right: 145, Bottom: 40, Left: 50},
	}
}

func segmentColor(c model.BIPOCCategory) drawing.Color {
	switch c {
	case model.BIPOCAtLeastOne:
		return colorAtLeastOneBIPOC
	case model.BIPOCAllWhite:
		return colorAllWhite
	}
	return colorOther
}

// segmentClass names the paint rule shared by a category's segments and
// its legend swatch
func segmentClass(c model.BIPOCCategory) string {
	return "segment-" + dashboard.SliceID(string(c))
}

func barRules(categories []model.BIPOCCategory) []styleRule {
	rules := make([]styleRule, 0, len(categories))
	for _, c := range categories {
		col := segmentColor(c)
		rules = append(rules, styleRule{Class: segmentClass(c), Fill: col, FillOpacity: 1, Stroke: col, StrokeWidth: 0.5})
	}
	return rules
}

var legendLabels = map[model.BIPOCCategory]string{
	model.BIPOCAtLeastOne: "BIPOC",
	model.BIPOCAllWhite:   "All White",
}

// RenderBar rebuilds the bar chart from scratch into s
func (b *BarChart) RenderBar(s *dashboard.Surface, agg model.BarAggregate, year string) error {
	m := b.Margins
	innerW := float64(b.Width - m.Left - m.Right)
	innerH := float64(b.Height - m.Top - m.Bottom)
	l := LayoutBars(agg, innerW, innerH)

	c, err := newCanvas(b.Width, b.Height, barRules(agg.Categories)...)
	if err != nil {
		return err
	}
	px := func(x float64) int { return m.Left + int(math.Round(x)) }
	py := func(y float64) int { return m.Top + int(math.Round(y)) }

	// segments with their counts
	for _, seg := range l.Segments {
		if seg.Height <= 0 {
			continue
		}
		c.box(px(seg.X), py(seg.Y), px(seg.X+seg.Width), py(seg.Y+seg.Height),
			"bar "+segmentClass(seg.Key.BIPOC)+" bar-"+dashboard.SliceID(seg.Key.String()))
	}
	for _, seg := range l.Segments {
		c.centered(strconv.Itoa(seg.Count), px(seg.X+seg.Width/2), py(seg.Y+seg.Height/2)+4,
			chart.Style{FontColor: colorBarText, FontSize: 10})
	}

	// axes
	c.line(px(0), py(innerH), px(innerW), py(innerH), colorInk, 1)
	c.line(px(0), py(0), px(0), py(innerH), colorInk, 1)
	for i, status := range agg.Statuses {
		c.centered(string(status), px(l.BandStart[i]+l.Bandwidth/2), py(innerH)+14, chart.Style{})
	}
	for _, t := range yTicks(l.YMax) {
		y := py(l.Y.Map(float64(t)))
		c.line(px(0)-6, y, px(0), y, colorInk, 1)
		label := strconv.Itoa(t)
		c.text(label, px(0)-10-6*len(label), y+3, chart.Style{})
	}
	c.centered("Enrollment Status", px(innerW/2), py(innerH)+m.Bottom/2+16, chart.Style{FontSize: 11})
	c.text("Number of Families", m.Left-30, py(innerH/2)+45, chart.Style{FontSize: 11, TextRotationDegrees: 270})

	// legend
	for i, cat := range agg.Categories {
		label, ok := legendLabels[cat]
		if !ok {
			continue
		}
		top := m.Top + i*20
		c.box(px(innerW)+20, top, px(innerW)+38, top+18, "legend "+segmentClass(cat))
		c.text(label, px(innerW)+44, top+13, chart.Style{})
	}

	// annotation on Enrolled x At least one BIPOC
	ax, ay := px(l.AnnotateAt[0]), py(l.AnnotateAt[1])
	nx, ny := ax+30, ay-30
	c.line(ax, ay, nx, ny, colorAnnotation, 1)
	lines := wrapWords(AnnotationLabel, 30)
	for i, ln := range lines {
		c.text(ln, nx+4, ny-12*(len(lines)-1-i), chart.Style{FontColor: colorAnnotation, FontSize: 9})
	}

	if year != "" {
		c.text(fmt.Sprintf("Year %s", year), px(innerW)+20, m.Top+len(agg.Categories)*20+20, chart.Style{FontSize: 9})
	}

	out, err := c.bytes()
	if err != nil {
		return err
	}
	s.Replace(out)
	return nil
}

// yTicks picks about five round tick values in [0, max]
func yTicks(max int) []int {
	if max <= 0 {
		return []int{0}
	}
	step := 0
	for _, m := range []int{1, 2, 5} {
		for mag := 1; ; mag *= 10 {
			if m*mag*5 >= max {
				if step == 0 || m*mag < step {
					step = m * mag
				}
				break
			}
		}
	}
	ticks := make([]int, 0, max/step+1)
	for t := 0; t <= max; t += step {
		ticks = append(ticks, t)
	}
	return ticks
}
