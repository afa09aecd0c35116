package render

import (
	"bytes"
	"enrollment-dashboard/internal/dashboard"
	"enrollment-dashboard/internal/model"
	"regexp"
	"strings"
	"testing"
)

const (
	bipocRest = `.pie-slice-bipoc{fill:rgba(142,166,4,1.0);fill-opacity:0.7;stroke:rgba(255,255,255,1.0);stroke-width:2}`
	whiteRest = `.pie-slice-white{fill:rgba(245,130,49,1.0);fill-opacity:0.7;stroke:rgba(255,255,255,1.0);stroke-width:2}`
)

func assertContains(t *testing.T, doc []byte, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(string(doc), p) {
			t.Errorf("expected %q in the document", p)
		}
	}
}

func renderTestPie(t *testing.T, agg model.PieAggregate) (*PieView, *dashboard.Surface) {
	t.Helper()
	s := dashboard.NewSurface("pie")
	h, err := NewPieChart().RenderPie(s, agg, "2021")
	if err != nil {
		t.Fatalf("RenderPie: %v", err)
	}
	v, ok := h.(*PieView)
	if !ok {
		t.Fatalf("expected a *PieView, got %T", h)
	}
	return v, s
}

func TestRenderPieSlices(t *testing.T) {
	v, s := renderTestPie(t, model.PieAggregate{BIPOC: 3, White: 5})
	slices := v.Slices()
	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}
	if slices[0].ID != "bipoc" || slices[0].Class != "pie-slice pie-slice-bipoc" || slices[0].Value != 3 {
		t.Fatalf("unexpected slice %+v", slices[0])
	}
	for _, sl := range slices {
		if sl.Opacity != DefaultSliceOpacity {
			t.Fatalf("expected resting opacity, got %v", sl.Opacity)
		}
	}
	assertContains(t, s.Bytes(), bipocRest, whiteRest,
		`class="pie-slice pie-slice-bipoc"`, `class="pie-slice pie-slice-white"`,
		`.pie-legend-bipoc{fill:rgba(142,166,4,1.0);fill-opacity:1;`, "Families by BIPOC category, 2021")
	if regexp.MustCompile(`<text[^>]*pie-slice`).Match(s.Bytes()) {
		t.Fatalf("expected slice classes on slice shapes only")
	}
}

func TestPieViewHighlight(t *testing.T) {
	v, s := renderTestPie(t, model.PieAggregate{BIPOC: 3, White: 5})
	gen := s.Generation()

	matched, err := dashboard.Highlight(v, "White")
	if err != nil || !matched {
		t.Fatalf("expected a match, got %v %v", matched, err)
	}
	white, _ := v.Slice("White")
	bipoc, _ := v.Slice("BIPOC")
	if white.Opacity != dashboard.FullOpacity || bipoc.Opacity != dashboard.DimmedOpacity {
		t.Fatalf("unexpected opacities white=%v bipoc=%v", white.Opacity, bipoc.Opacity)
	}
	if s.Generation() != gen+1 {
		t.Fatalf("expected the pie redrawn")
	}
	highlighted := s.Bytes()
	assertContains(t, highlighted,
		`.pie-slice-bipoc{fill:rgba(142,166,4,1.0);fill-opacity:0.5;`,
		`.pie-slice-white{fill:rgba(245,130,49,1.0);fill-opacity:1;`)

	if err := dashboard.Unhighlight(v); err != nil {
		t.Fatal(err)
	}
	for _, sl := range v.Slices() {
		if sl.Opacity != dashboard.FullOpacity {
			t.Fatalf("expected full opacity after reset, got %v", sl.Opacity)
		}
	}
	assertContains(t, s.Bytes(),
		`.pie-slice-bipoc{fill:rgba(142,166,4,1.0);fill-opacity:1;`,
		`.pie-slice-white{fill:rgba(245,130,49,1.0);fill-opacity:1;`)
	if bytes.Equal(highlighted, s.Bytes()) {
		t.Fatalf("expected the reset to change the document")
	}
}

func TestPieGeometry(t *testing.T) {
	g := NewPieChart().Geometry()
	if g.CX != 180 || g.CY != 220 || g.Radius != 170 {
		t.Fatalf("unexpected geometry %+v", g)
	}
}

func TestPieViewSetOpacityUnknown(t *testing.T) {
	v, _ := renderTestPie(t, model.PieAggregate{BIPOC: 1, White: 1})
	if v.SetOpacity("at-least-one-bipoc", 1) {
		t.Fatalf("expected no slice for a bar category id")
	}
	if _, ok := v.Slice("Other"); ok {
		t.Fatalf("expected no Other slice")
	}
}

func TestRenderPieEmptyAndPartial(t *testing.T) {
	v, s := renderTestPie(t, model.PieAggregate{})
	if len(v.Slices()) != 2 || !bytes.Contains(s.Bytes(), []byte("<svg")) {
		t.Fatalf("expected a placeholder document with both slices tracked")
	}

	if bytes.Contains(s.Bytes(), []byte("pie-slice")) {
		t.Fatalf("expected no slice drawn on the placeholder")
	}

	_, s = renderTestPie(t, model.PieAggregate{White: 4})
	if s.Generation() != 1 {
		t.Fatalf("expected a single-slice render")
	}
	assertContains(t, s.Bytes(), `r="170" class="pie-slice pie-slice-white"/>`)
	if bytes.Contains(s.Bytes(), []byte(`class="pie-slice pie-slice-bipoc"`)) {
		t.Fatalf("expected no empty BIPOC slice")
	}
}

func TestTooltip(t *testing.T) {
	tip := &Tooltip{}
	tip.Show()
	if !tip.State().Visible {
		t.Fatalf("expected visible after Show")
	}

	tip.Move(model.PieLabelBIPOC, 3, 10, 20)
	st := tip.State()
	if st.HTML != "At least one BIPOC<br>Count: 3" || st.Left != 25 || st.Top != 35 {
		t.Fatalf("unexpected tooltip %+v", st)
	}

	tip.Move(model.PieLabelWhite, 5, 0, 0)
	if got := tip.State().HTML; got != "White<br>Count: 5" {
		t.Fatalf("unexpected tooltip text %q", got)
	}

	tip.Hide()
	if tip.State().Visible {
		t.Fatalf("expected hidden after Hide")
	}
}
