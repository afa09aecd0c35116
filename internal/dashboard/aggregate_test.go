package dashboard

import (
	"enrollment-dashboard/internal/model"
	"testing"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{Year: "2021", EnrollmentStatus: model.StatusEnrolled, BIPOCCategory: model.BIPOCAtLeastOne, RowPosition: 0, ColPosition: 0},
		{Year: "2021", EnrollmentStatus: model.StatusEnrolled, BIPOCCategory: model.BIPOCAllWhite, RowPosition: 10, ColPosition: 10},
		{Year: "2021", EnrollmentStatus: model.StatusUnenrolled, BIPOCCategory: model.BIPOCAtLeastOne, RowPosition: 5, ColPosition: 5},
		{Year: "2021", EnrollmentStatus: model.StatusUnenrolled, BIPOCCategory: "Unknown", RowPosition: 10, ColPosition: 0},
		{Year: "2020", EnrollmentStatus: model.StatusEnrolled, BIPOCCategory: model.BIPOCAtLeastOne, RowPosition: 1, ColPosition: 1},
		{Year: "2020", EnrollmentStatus: "Pending", BIPOCCategory: model.BIPOCAllWhite, RowPosition: 2, ColPosition: 2},
	}
}

func TestAggregateCountsEveryBucket(t *testing.T) {
	records := []model.Record{
		{EnrollmentStatus: model.StatusEnrolled, BIPOCCategory: model.BIPOCAtLeastOne},
		{EnrollmentStatus: model.StatusEnrolled, BIPOCCategory: model.BIPOCAtLeastOne},
		{EnrollmentStatus: model.StatusUnenrolled, BIPOCCategory: model.BIPOCAllWhite},
	}
	agg := AggregateBar(records)

	if got, want := len(agg.Counts), len(model.StatusCategories)*len(model.BIPOCCategories); got != want {
		t.Fatalf("expected %d buckets, got %d", want, got)
	}
	cases := []struct {
		status model.EnrollmentStatus
		bipoc  model.BIPOCCategory
		want   int
	}{
		{model.StatusEnrolled, model.BIPOCAtLeastOne, 2},
		{model.StatusEnrolled, model.BIPOCAllWhite, 0},
		{model.StatusEnrolled, model.BIPOCOther, 0},
		{model.StatusUnenrolled, model.BIPOCAtLeastOne, 0},
		{model.StatusUnenrolled, model.BIPOCAllWhite, 1},
		{model.StatusUnenrolled, model.BIPOCOther, 0},
	}
	for _, c := range cases {
		if got := agg.Count(c.status, c.bipoc); got != c.want {
			t.Errorf("%s/%s: expected %d, got %d", c.status, c.bipoc, c.want, got)
		}
	}
	if agg.Total() != 3 || agg.Dropped != 0 {
		t.Fatalf("expected total 3 and nothing dropped, got %d and %d", agg.Total(), agg.Dropped)
	}
}

func TestAggregateCoercesUnknownBIPOC(t *testing.T) {
	agg := AggregateBar([]model.Record{
		{EnrollmentStatus: model.StatusUnenrolled, BIPOCCategory: "Prefer not to say"},
		{EnrollmentStatus: model.StatusUnenrolled, BIPOCCategory: ""},
	})
	if got := agg.Count(model.StatusUnenrolled, model.BIPOCAllWhite); got != 2 {
		t.Fatalf("expected unknown bipoc values counted as All White, got %d", got)
	}
}

func TestAggregateDropsUnknownStatus(t *testing.T) {
	records := sampleRecords()
	agg := AggregateBar(FilterByYear(records, "2020"))
	if agg.Dropped != 1 {
		t.Fatalf("expected 1 dropped record, got %d", agg.Dropped)
	}
	if agg.Total()+agg.Dropped != 2 {
		t.Fatalf("expected counts plus dropped to cover every record, got %d+%d", agg.Total(), agg.Dropped)
	}
	if _, ok := agg.Counts[model.BucketKey{Status: "Pending", BIPOC: model.BIPOCAllWhite}]; ok {
		t.Fatalf("unknown status must not create a bucket")
	}
}

func TestAggregateIgnoresInputOrder(t *testing.T) {
	records := sampleRecords()
	reversed := make([]model.Record, len(records))
	for i, rec := range records {
		reversed[len(records)-1-i] = rec
	}
	a, b := AggregateBar(records), AggregateBar(reversed)
	for k, v := range a.Counts {
		if b.Counts[k] != v {
			t.Fatalf("bucket %s: %d vs %d", k, v, b.Counts[k])
		}
	}
	again := AggregateBar(records)
	for k, v := range a.Counts {
		if again.Counts[k] != v {
			t.Fatalf("aggregate is not repeatable for %s", k)
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	agg := AggregateBar(nil)
	if agg.Total() != 0 || agg.MaxStackHeight() != 0 {
		t.Fatalf("expected an all-zero aggregate")
	}
	if len(agg.Flat()) != 6 {
		t.Fatalf("expected 6 flattened buckets, got %d", len(agg.Flat()))
	}
}

func TestAggregatePieExcludesOtherValues(t *testing.T) {
	p := AggregatePie(FilterByYear(sampleRecords(), "2021"))
	if p.BIPOC != 2 || p.White != 1 {
		t.Fatalf("expected BIPOC=2 White=1, got %+v", p)
	}
	if p.Total() != 3 {
		t.Fatalf("expected total 3, got %d", p.Total())
	}
}
