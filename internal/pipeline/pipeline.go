// Package pipeline loads the family record set once at startup. Rows are
// streamed from the source, parsed, and collected in source order.
package pipeline

import (
	"context"
	"enrollment-dashboard/internal/model"
	"errors"
	"log"
	"time"
)

// DefaultQuery reads the record set from SQL sources when none is configured
const DefaultQuery = "SELECT Year, Enrollment_Status, BIPOC, rowNum, colNum FROM families"

// maxRowErrors caps how many skipped rows are kept in LoadStats
const maxRowErrors = 50

// Load reads the whole record set. Malformed rows are skipped and reported in
// the stats; they never stop the remaining rows from loading.
func Load(ctx context.Context, src model.Source) ([]model.Record, model.LoadStats, error) {
	start := time.Now()
	stats := model.LoadStats{SourceURL: src.URL, SourceType: src.Type}
	if stats.SourceType == "" {
		stats.SourceType = model.SourceCSV
	}
	log.Printf("➡️ Loading records from %s (%s)", src.URL, stats.SourceType)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rowsCh := make(chan Row, 100)
	errCh := make(chan error, 10)
	go func() {
		defer close(rowsCh)
		defer close(errCh)
		IngestSource(ctx, src, rowsCh, errCh)
	}()

	records := make([]model.Record, 0)
	var fatal error
	for rowsCh != nil || errCh != nil {
		select {
		case row, ok := <-rowsCh:
			if !ok {
				rowsCh = nil
				continue
			}
			stats.TotalRows++
			rec, err := ParseRecord(row.Fields)
			if err != nil {
				skipRow(&stats, row.Line, err)
				continue
			}
			records = append(records, rec)
			stats.ValidRecords++
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				stats.TotalRows++
				skipRow(&stats, rowErr.Line, rowErr.Err)
				continue
			}
			if fatal == nil {
				fatal = err
				cancel()
			}
		}
	}

	stats.LoadTime = time.Since(start)
	if fatal == nil {
		fatal = ctx.Err()
	}
	if fatal != nil {
		log.Printf("❌ Failed to load records from %s: %v", src.URL, fatal)
		return nil, stats, fatal
	}

	log.Printf("✅ Loaded %d records from %s (%d skipped) in %v", stats.ValidRecords, src.URL, stats.InvalidRecords, stats.LoadTime)
	return records, stats, nil
}

func skipRow(stats *model.LoadStats, line int, err error) {
	stats.InvalidRecords++
	if len(stats.Errors) < maxRowErrors {
		stats.Errors = append(stats.Errors, model.RowError{Row: line, Message: err.Error()})
	}
	log.Printf("❌ Skipping row %d: %v", line, err)
}
