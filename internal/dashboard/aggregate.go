package dashboard

import "enrollment-dashboard/internal/model"

// Aggregate counts records per (status, bipoc) bucket.
//
// Every bucket of the statuses x categories cross product is present, even at
// zero. A bipoc value outside categories is coerced to "All White". A status
// outside statuses lands in no bucket and is only tallied in Dropped.
func Aggregate(records []model.Record, statuses []model.EnrollmentStatus, categories []model.BIPOCCategory) model.BarAggregate {
	agg := model.BarAggregate{
		Statuses:   append([]model.EnrollmentStatus(nil), statuses...),
		Categories: append([]model.BIPOCCategory(nil), categories...),
		Counts:     make(map[model.BucketKey]int, len(statuses)*len(categories)),
	}
	for _, s := range statuses {
		for _, c := range categories {
			agg.Counts[model.BucketKey{Status: s, BIPOC: c}] = 0
		}
	}

	known := make(map[model.BIPOCCategory]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}

	for _, rec := range records {
		bipoc := rec.BIPOCCategory
		if !known[bipoc] {
			bipoc = model.BIPOCAllWhite
		}
		key := model.BucketKey{Status: rec.EnrollmentStatus, BIPOC: bipoc}
		if _, ok := agg.Counts[key]; !ok {
			agg.Dropped++
			continue
		}
		agg.Counts[key]++
	}
	return agg
}

// AggregateBar aggregates with the default status and bipoc enums
func AggregateBar(records []model.Record) model.BarAggregate {
	return Aggregate(records, model.StatusCategories, model.BIPOCCategories)
}

// AggregatePie counts the two pie categories. Values other than
// "At least one BIPOC" and "All White" are excluded, not coerced.
func AggregatePie(records []model.Record) model.PieAggregate {
	var p model.PieAggregate
	for _, rec := range records {
		switch rec.BIPOCCategory {
		case model.BIPOCAtLeastOne:
			p.BIPOC++
		case model.BIPOCAllWhite:
			p.White++
		}
	}
	return p
}
