package dashboard

import (
	"enrollment-dashboard/internal/model"

	"gonum.org/v1/gonum/floats"
)

// Default scatter plot area: 460x400 minus margins (40, 30, 70, 90)
const (
	DefaultPlotWidth  = 340
	DefaultPlotHeight = 290
)

// LinearScale maps the domain [D0, D1] onto the range [R0, R1]
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
}

// Map projects v. A degenerate domain maps everything to the range midpoint.
func (s LinearScale) Map(v float64) float64 {
	if s.D1 == s.D0 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// Extent returns the min and max of values; ok is false for an empty slice
func Extent(values []float64) (min, max float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	return floats.Min(values), floats.Max(values), true
}

// ScatterFrame is the coordinate system shared by the scatter renderer and
// the brush controller
type ScatterFrame struct {
	Width  float64
	Height float64
	X      LinearScale
	Y      LinearScale
}

// NewScatterFrame builds scales from the extents of the year-filtered set.
// The y axis is inverted: larger ColPosition values sit closer to the top.
func NewScatterFrame(records []model.Record, width, height float64) ScatterFrame {
	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, rec := range records {
		xs[i] = rec.RowPosition
		ys[i] = rec.ColPosition
	}
	x0, x1, _ := Extent(xs)
	y0, y1, _ := Extent(ys)
	return ScatterFrame{
		Width:  width,
		Height: height,
		X:      LinearScale{D0: x0, D1: x1, R0: 0, R1: width},
		Y:      LinearScale{D0: y0, D1: y1, R0: height, R1: 0},
	}
}

// Project returns the pixel position of a record inside the plot area
func (f ScatterFrame) Project(rec model.Record) (float64, float64) {
	return f.X.Map(rec.RowPosition), f.Y.Map(rec.ColPosition)
}
