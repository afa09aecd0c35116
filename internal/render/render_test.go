package render

import (
	"bytes"
	"enrollment-dashboard/internal/dashboard"
	"enrollment-dashboard/internal/model"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func sampleBarAggregate() model.BarAggregate {
	return dashboard.AggregateBar([]model.Record{
		{EnrollmentStatus: model.StatusEnrolled, BIPOCCategory: model.BIPOCAtLeastOne},
		{EnrollmentStatus: model.StatusEnrolled, BIPOCCategory: model.BIPOCAtLeastOne},
		{EnrollmentStatus: model.StatusEnrolled, BIPOCCategory: model.BIPOCAllWhite},
		{EnrollmentStatus: model.StatusUnenrolled, BIPOCCategory: model.BIPOCAllWhite},
		{EnrollmentStatus: model.StatusUnenrolled, BIPOCCategory: model.BIPOCAllWhite},
		{EnrollmentStatus: model.StatusUnenrolled, BIPOCCategory: model.BIPOCAllWhite},
	})
}

func TestLayoutBarsBands(t *testing.T) {
	l := LayoutBars(sampleBarAggregate(), 210, 300)
	if !approx(l.Bandwidth, 90) || !approx(l.BandStart[0], 10) || !approx(l.BandStart[1], 110) {
		t.Fatalf("unexpected bands start=%v width=%v", l.BandStart, l.Bandwidth)
	}
	if l.YMax != 3 {
		t.Fatalf("expected y max 3, got %d", l.YMax)
	}
	if len(l.Segments) != 6 {
		t.Fatalf("expected 6 segments, got %d", len(l.Segments))
	}
}

func TestLayoutBarsStacking(t *testing.T) {
	l := LayoutBars(sampleBarAggregate(), 210, 300)
	bipoc, white := l.Segments[0], l.Segments[1]
	if bipoc.Key.BIPOC != model.BIPOCAtLeastOne || bipoc.Bottom != 0 || !approx(bipoc.Y, 100) || !approx(bipoc.Height, 200) {
		t.Fatalf("unexpected first segment %+v", bipoc)
	}
	if white.Bottom != 2 || !approx(white.Y, 0) || !approx(white.Height, 100) {
		t.Fatalf("unexpected second segment %+v", white)
	}
	other := l.Segments[2]
	if other.Count != 0 || !approx(other.Height, 0) {
		t.Fatalf("expected an empty Other segment, got %+v", other)
	}
	if !approx(l.AnnotateAt[0], 55) || !approx(l.AnnotateAt[1], 100) {
		t.Fatalf("unexpected annotation point %v", l.AnnotateAt)
	}
}

func TestYTicks(t *testing.T) {
	cases := []struct {
		max  int
		want []int
	}{
		{0, []int{0}},
		{3, []int{0, 1, 2, 3}},
		{12, []int{0, 5, 10}},
		{100, []int{0, 20, 40, 60, 80, 100}},
	}
	for _, c := range cases {
		if got := yTicks(c.max); !reflect.DeepEqual(got, c.want) {
			t.Errorf("yTicks(%d): expected %v, got %v", c.max, c.want, got)
		}
	}
}

func TestWrapWords(t *testing.T) {
	lines := wrapWords(AnnotationLabel, 30)
	for _, ln := range lines {
		if len(ln) > 30 {
			t.Fatalf("line too long: %q", ln)
		}
	}
	if len(lines) < 2 {
		t.Fatalf("expected the annotation to wrap, got %v", lines)
	}
	if wrapWords("", 10) != nil {
		t.Fatalf("expected no lines for empty text")
	}
}

func TestRenderBarReplacesSurface(t *testing.T) {
	s := dashboard.NewSurface("bar")
	b := NewBarChart()
	for i := 0; i < 2; i++ {
		if err := b.RenderBar(s, sampleBarAggregate(), "2021"); err != nil {
			t.Fatalf("RenderBar: %v", err)
		}
	}
	if s.Generation() != 2 || !bytes.Contains(s.Bytes(), []byte("<svg")) {
		t.Fatalf("expected two full SVG renders")
	}
}

func TestRenderBarEmptyAggregate(t *testing.T) {
	s := dashboard.NewSurface("bar")
	if err := NewBarChart().RenderBar(s, dashboard.AggregateBar(nil), "2021"); err != nil {
		t.Fatalf("RenderBar: %v", err)
	}
	if !bytes.Contains(s.Bytes(), []byte("<svg")) {
		t.Fatalf("expected an SVG document")
	}
}

func TestRenderScatter(t *testing.T) {
	records := []model.Record{
		{Year: "2021", RowPosition: 1, ColPosition: 1},
		{Year: "2021", RowPosition: 4, ColPosition: 2},
		{Year: "2021", RowPosition: 9, ColPosition: 7},
	}
	sc := NewScatterChart()
	w, h := sc.PlotArea()
	if w != dashboard.DefaultPlotWidth || h != dashboard.DefaultPlotHeight {
		t.Fatalf("expected plot area 340x290, got %vx%v", w, h)
	}

	s := dashboard.NewSurface("scatter")
	if err := sc.RenderScatter(s, records, dashboard.NewScatterFrame(records, w, h), "2021"); err != nil {
		t.Fatalf("RenderScatter: %v", err)
	}
	if !bytes.Contains(s.Bytes(), []byte("<svg")) {
		t.Fatalf("expected an SVG document")
	}

	empty := dashboard.NewSurface("scatter")
	if err := sc.RenderScatter(empty, nil, dashboard.NewScatterFrame(nil, w, h), "2021"); err != nil {
		t.Fatalf("RenderScatter with no records: %v", err)
	}
	if empty.Generation() != 1 {
		t.Fatalf("expected a placeholder render")
	}
}

func TestAxisTicks(t *testing.T) {
	cases := []struct {
		lo, hi float64
		want   []float64
	}{
		{0, 100, []float64{0, 20, 40, 60, 80, 100}},
		{1, 9, []float64{2, 4, 6, 8}},
		{3, 3, []float64{3}},
	}
	for _, c := range cases {
		if got := axisTicks(c.lo, c.hi); !reflect.DeepEqual(got, c.want) {
			t.Errorf("axisTicks(%v, %v): expected %v, got %v", c.lo, c.hi, c.want, got)
		}
	}
	if got := tickLabel(0.25, dashboard.LinearScale{D0: 0, D1: 1}); got != "0.2" && got != "0.3" {
		t.Errorf("expected one decimal for a 0.2 step, got %q", got)
	}
}

var circlePattern = regexp.MustCompile(`<circle cx="([0-9.]+)" cy="([0-9.]+)" r="([0-9.]+)" class="dot"/>`)

func TestRenderScatterDotsFollowBrushFrame(t *testing.T) {
	records := []model.Record{
		{Year: "2021", RowPosition: 0, ColPosition: 0},
		{Year: "2021", RowPosition: 100, ColPosition: 100},
		{Year: "2021", RowPosition: 25, ColPosition: 60},
	}
	sc := NewScatterChart()
	w, h := sc.PlotArea()
	frame := dashboard.NewScatterFrame(records, w, h)
	s := dashboard.NewSurface("scatter")
	if err := sc.RenderScatter(s, records, frame, "2021"); err != nil {
		t.Fatalf("RenderScatter: %v", err)
	}

	found := circlePattern.FindAllStringSubmatch(string(s.Bytes()), -1)
	if len(found) != len(records) {
		t.Fatalf("expected %d dots, got %d", len(records), len(found))
	}
	for i, m := range found {
		cx, _ := strconv.ParseFloat(m[1], 64)
		cy, _ := strconv.ParseFloat(m[2], 64)
		x, y := frame.Project(records[i])
		wantX, wantY := float64(sc.Margins.Left)+x, float64(sc.Margins.Top)+y
		if math.Abs(cx-wantX) > 0.01 || math.Abs(cy-wantY) > 0.01 {
			t.Errorf("dot %d: expected (%v, %v), got (%v, %v)", i, wantX, wantY, cx, cy)
		}
		if m[3] != "1.5" {
			t.Errorf("dot %d: expected radius 1.5, got %s", i, m[3])
		}
	}
	if !strings.Contains(string(s.Bytes()), `.dot{fill:rgba(105,179,162,1.0);fill-opacity:1;`) {
		t.Fatalf("expected the dot color in the stylesheet")
	}

	// a brush over the drawn corner dots selects exactly them
	brush := dashboard.NewBrushController(frame, records)
	active := brush.Move(model.Selection{X0: 0, Y0: h - 1, X1: 1, Y1: h})
	if len(active) != 1 || active[0].RowPosition != 0 {
		t.Fatalf("expected the dot drawn at the plot's bottom left, got %+v", active)
	}
}

func TestRenderBarPaintsSegments(t *testing.T) {
	s := dashboard.NewSurface("bar")
	if err := NewBarChart().RenderBar(s, sampleBarAggregate(), "2021"); err != nil {
		t.Fatalf("RenderBar: %v", err)
	}
	svg := string(s.Bytes())
	for _, want := range []string{
		`.segment-at-least-one-bipoc{fill:rgba(105,179,162,1.0);fill-opacity:1;stroke:rgba(105,179,162,1.0);stroke-width:0.5}`,
		`.segment-all-white{fill:rgba(64,64,128,1.0);fill-opacity:1;`,
		`.segment-other{fill:none;`,
		`class="bar segment-at-least-one-bipoc bar-enrolled-at-least-one-bipoc"`,
		`class="bar segment-all-white bar-unenrolled-all-white"`,
		`class="legend segment-all-white"`,
		"Enrollment Status",
		"Number of Families",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("expected %q in the bar chart", want)
		}
	}
	for _, ln := range wrapWords(AnnotationLabel, 30) {
		if !strings.Contains(svg, ln) {
			t.Errorf("expected annotation line %q", ln)
		}
	}
}
