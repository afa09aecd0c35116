package dashboard

import (
	"enrollment-dashboard/internal/model"
	"testing"
)

func newTestBrush() *BrushController {
	year := FilterByYear(sampleRecords(), "2021")
	return NewBrushController(NewScatterFrame(year, 100, 100), year)
}

func TestBrushStartsIdle(t *testing.T) {
	b := newTestBrush()
	if b.State() != BrushIdle || b.Selection() != nil {
		t.Fatalf("expected idle with no selection")
	}
	if len(b.Active()) != 4 {
		t.Fatalf("expected every year record active, got %d", len(b.Active()))
	}
}

func TestBrushBoundsAreInclusive(t *testing.T) {
	b := newTestBrush()
	// (50,50) sits exactly on the corner
	active := b.Move(model.Selection{X0: 0, Y0: 0, X1: 50, Y1: 50})
	if len(active) != 1 || active[0].RowPosition != 5 {
		t.Fatalf("expected only the corner record, got %+v", active)
	}
	if b.State() != BrushSelecting {
		t.Fatalf("expected selecting state, got %s", b.State())
	}
}

func TestBrushNormalizesReversedCorners(t *testing.T) {
	b := newTestBrush()
	active := b.Move(model.Selection{X0: 100, Y0: 100, X1: 50, Y1: 50})
	if len(active) != 2 {
		t.Fatalf("expected 2 records, got %d", len(active))
	}
	sel := b.Selection()
	if sel.X0 != 50 || sel.Y0 != 50 || sel.X1 != 100 || sel.Y1 != 100 {
		t.Fatalf("expected a normalized selection, got %+v", sel)
	}
}

func TestBrushEmptyAreaYieldsZeroCounts(t *testing.T) {
	b := newTestBrush()
	active := b.Move(model.Selection{X0: 10, Y0: 10, X1: 20, Y1: 20})
	if len(active) != 0 {
		t.Fatalf("expected no records, got %d", len(active))
	}
	agg := AggregateBar(active)
	if agg.Total() != 0 || len(agg.Counts) != 6 {
		t.Fatalf("expected six zero buckets, got total %d over %d buckets", agg.Total(), len(agg.Counts))
	}
	if p := AggregatePie(active); p.Total() != 0 {
		t.Fatalf("expected empty pie, got %+v", p)
	}
}

func TestBrushClearRestoresYearSet(t *testing.T) {
	b := newTestBrush()
	b.Move(model.Selection{X0: 0, Y0: 0, X1: 1, Y1: 1})
	restored := b.Clear()
	if len(restored) != 4 || b.State() != BrushIdle || b.Selection() != nil {
		t.Fatalf("expected the year set back and idle state")
	}
}

func TestBrushSelectionIsCopy(t *testing.T) {
	b := newTestBrush()
	b.Move(model.Selection{X0: 0, Y0: 0, X1: 10, Y1: 10})
	sel := b.Selection()
	sel.X1 = 99
	if b.Selection().X1 != 10 {
		t.Fatalf("mutating the returned selection changed the controller")
	}
}
