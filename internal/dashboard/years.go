package dashboard

import (
	"enrollment-dashboard/internal/model"
	"sort"
)

// ListYears returns the distinct years in lexicographic order
func ListYears(records []model.Record) []string {
	seen := make(map[string]bool)
	years := make([]string, 0)
	for _, rec := range records {
		if !seen[rec.Year] {
			seen[rec.Year] = true
			years = append(years, rec.Year)
		}
	}
	sort.Strings(years)
	return years
}

// DefaultYear is the year of the first loaded record, not the smallest one
func DefaultYear(records []model.Record) string {
	if len(records) == 0 {
		return ""
	}
	return records[0].Year
}

// FilterByYear keeps records of exactly that year, in input order
func FilterByYear(records []model.Record, year string) []model.Record {
	out := make([]model.Record, 0)
	for _, rec := range records {
		if rec.Year == year {
			out = append(out, rec)
		}
	}
	return out
}

func hasYear(records []model.Record, year string) bool {
	for _, rec := range records {
		if rec.Year == year {
			return true
		}
	}
	return false
}
