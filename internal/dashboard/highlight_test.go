package dashboard

import "testing"

type fakePie struct {
	opacity map[string]float64
	order   []string
	redraws int
}

func newFakePie(labels ...string) *fakePie {
	p := &fakePie{opacity: make(map[string]float64)}
	for _, l := range labels {
		id := SliceID(l)
		p.order = append(p.order, id)
		p.opacity[id] = 0.7
	}
	return p
}

func (p *fakePie) SliceIDs() []string { return append([]string(nil), p.order...) }

func (p *fakePie) SetOpacity(id string, opacity float64) bool {
	if _, ok := p.opacity[id]; !ok {
		return false
	}
	p.opacity[id] = opacity
	return true
}

func (p *fakePie) Redraw() error {
	p.redraws++
	return nil
}

func TestSliceID(t *testing.T) {
	cases := map[string]string{
		"BIPOC":               "bipoc",
		"All White":           "all-white",
		"At least one  BIPOC": "at-least-one-bipoc",
		"\tWhite ":            "-white-",
	}
	for in, want := range cases {
		if got := SliceID(in); got != want {
			t.Errorf("SliceID(%q): expected %q, got %q", in, want, got)
		}
	}
	if got := SliceClass("White"); got != "pie-slice-white" {
		t.Fatalf("unexpected class %q", got)
	}
}

func TestHighlightDimsOthers(t *testing.T) {
	p := newFakePie("BIPOC", "White")
	matched, err := Highlight(p, "White")
	if err != nil || !matched {
		t.Fatalf("expected a match, got %v %v", matched, err)
	}
	if p.opacity["white"] != FullOpacity || p.opacity["bipoc"] != DimmedOpacity {
		t.Fatalf("unexpected opacities %v", p.opacity)
	}
	if p.redraws != 1 {
		t.Fatalf("expected one redraw, got %d", p.redraws)
	}
}

func TestHighlightUnmatchedDimsAll(t *testing.T) {
	p := newFakePie("BIPOC", "White")
	matched, err := Highlight(p, "At least one BIPOC")
	if err != nil || matched {
		t.Fatalf("expected no match, got %v %v", matched, err)
	}
	for id, op := range p.opacity {
		if op != DimmedOpacity {
			t.Errorf("slice %s: expected %v, got %v", id, DimmedOpacity, op)
		}
	}
}

func TestUnhighlightRestoresAll(t *testing.T) {
	p := newFakePie("BIPOC", "White")
	Highlight(p, "BIPOC")
	if err := Unhighlight(p); err != nil {
		t.Fatal(err)
	}
	for id, op := range p.opacity {
		if op != FullOpacity {
			t.Errorf("slice %s: expected %v, got %v", id, FullOpacity, op)
		}
	}
}
