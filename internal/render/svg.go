package render

import (
	"bytes"
	"enrollment-dashboard/internal/dashboard"
	"fmt"
	"math"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart canvas shared by the three charts
const (
	CanvasWidth  = 460
	CanvasHeight = 400
)

var (
	colorAtLeastOneBIPOC = drawing.ColorFromHex("69b3a2")
	colorAllWhite        = drawing.ColorFromHex("404080")
	colorOther           = drawing.ColorTransparent
	colorAnnotation      = drawing.ColorFromHex("e8336d")
	colorPieBIPOC        = drawing.ColorFromHex("8ea604")
	colorPieWhite        = drawing.ColorFromHex("f58231")
	colorDot             = drawing.ColorFromHex("69b3a2")
	colorInk             = drawing.ColorFromHex("333333")
	colorBarText         = drawing.ColorWhite
)

// Margins is the space around a chart's plot area
type Margins struct {
	Top, Right, Bottom, Left int
}

// styleRule paints every shape carrying Class. go-chart writes only the class
// attribute for classed shapes, so their paint comes from the chart's stylesheet.
type styleRule struct {
	Class       string
	Fill        drawing.Color
	FillOpacity float64
	Stroke      drawing.Color
	StrokeWidth float64
}

func (r styleRule) String() string {
	return fmt.Sprintf(".%s{fill:%s;fill-opacity:%s;stroke:%s;stroke-width:%s}",
		r.Class, paint(r.Fill), formatFloat(r.FillOpacity), paint(r.Stroke), formatFloat(r.StrokeWidth))
}

func stylesheet(rules []styleRule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.String()
	}
	return strings.Join(parts, "")
}

func paint(c drawing.Color) string {
	if c.IsTransparent() {
		return "none"
	}
	return c.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// dot is a marker drawn at sub-pixel precision on top of everything else
type dot struct {
	X, Y, R float64
	Class   string
}

// canvas is an SVG renderer with the default font loaded
type canvas struct {
	r    chart.Renderer
	font chart.Style
	dots []dot
}

// newCanvas starts an SVG document. Classed shapes are painted by rules.
func newCanvas(width, height int, rules ...styleRule) (*canvas, error) {
	svg := chart.SVG
	if len(rules) > 0 {
		svg = chart.SVGWithCSS(stylesheet(rules), "")
	}
	r, err := svg(width, height)
	if err != nil {
		return nil, err
	}
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r.SetFont(f)
	return &canvas{r: r, font: chart.Style{Font: f, FontSize: 10, FontColor: colorInk}}, nil
}

// text draws a label with its left edge at x
func (c *canvas) text(s string, x, y int, st chart.Style) {
	st = st.InheritFrom(c.font)
	chart.Draw.Text(c.r, s, x, y, st)
}

// centered draws a label horizontally centered on cx
func (c *canvas) centered(s string, cx, y int, st chart.Style) {
	st = st.InheritFrom(c.font)
	c.r.SetFont(st.Font)
	c.r.SetFontSize(st.FontSize)
	w := c.r.MeasureText(s).Width()
	chart.Draw.Text(c.r, s, cx-w/2, y, st)
}

func (c *canvas) line(x0, y0, x1, y1 int, col drawing.Color, width float64) {
	c.r.SetStrokeColor(col)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
	c.r.ResetStyle()
}

// box draws a rectangle painted by the rule for className
func (c *canvas) box(left, top, right, bottom int, className string) {
	chart.Draw.Box(c.r, chart.Box{Top: top, Left: left, Right: right, Bottom: bottom}, chart.Style{
		ClassName: className,
	})
}

// wedge draws a pie slice of delta radians starting at start, clockwise from
// three o'clock. A full turn is drawn as a disc.
func (c *canvas) wedge(cx, cy int, radius, start, delta float64, className string) {
	c.r.SetClassName(className)
	if delta >= 2*math.Pi-1e-9 {
		c.r.Circle(radius, cx, cy)
		c.r.ResetStyle()
		return
	}
	c.r.MoveTo(cx, cy)
	c.r.ArcTo(cx, cy, radius, radius, start, delta)
	c.r.LineTo(cx, cy)
	c.r.Close()
	c.r.FillStroke()
	c.r.ResetStyle()
}

// circle queues a dot; dots are written after every other shape
func (c *canvas) circle(x, y, r float64, className string) {
	c.dots = append(c.dots, dot{X: x, Y: y, R: r, Class: className})
}

func (c *canvas) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.r.Save(&buf); err != nil {
		return nil, err
	}
	if len(c.dots) == 0 {
		return buf.Bytes(), nil
	}

	doc := bytes.TrimSuffix(buf.Bytes(), []byte("</svg>"))
	out := bytes.NewBuffer(doc)
	for _, d := range c.dots {
		fmt.Fprintf(out, `<circle cx="%s" cy="%s" r="%s" class="%s"/>`,
			formatFloat(round2(d.X)), formatFloat(round2(d.Y)), formatFloat(d.R), d.Class)
	}
	out.WriteString("</svg>")
	return out.Bytes(), nil
}

// placeholder replaces a surface with an empty chart carrying a message
func placeholder(s *dashboard.Surface, width, height int, title, message string) error {
	c, err := newCanvas(width, height)
	if err != nil {
		return err
	}
	if title != "" {
		c.centered(title, width/2, 30, chart.Style{FontSize: 14})
	}
	c.centered(message, width/2, height/2, chart.Style{FontSize: 12})
	out, err := c.bytes()
	if err != nil {
		return err
	}
	s.Replace(out)
	return nil
}

// wrapWords splits text into lines of at most width runes, on word boundaries
func wrapWords(text string, width int) []string {
	words := strings.Fields(text)
	var lines []string
	var cur string
	for _, w := range words {
		switch {
		case cur == "":
			cur = w
		case len(cur)+1+len(w) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
