package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"enrollment-dashboard/internal/dashboard"
	"enrollment-dashboard/internal/model"
	"enrollment-dashboard/pkg/utils"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Report is the aggregate view of one year, optionally narrowed by a brush
type Report struct {
	Year        string             `json:"year"`
	Years       []string           `json:"years"`
	Selection   *model.Selection   `json:"selection,omitempty"`
	YearCount   int                `json:"year_count"`
	ActiveCount int                `json:"active_count"`
	Bar         map[string]int     `json:"bar"`
	Dropped     int                `json:"dropped"`
	Pie         model.PieAggregate `json:"pie"`
}

// ExportResult describes one written report file
type ExportResult struct {
	Type        string    `json:"type"` // "csv", "json"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ExportedAt  time.Time `json:"exported_at"`
}

// BuildReport aggregates the records of year the same way a dashboard does.
// An empty year means the default year. The selection is in scatter plot
// pixel space for a width x height plot area.
func BuildReport(records []model.Record, year string, sel *model.Selection, width, height float64) (Report, error) {
	years := dashboard.ListYears(records)
	if year == "" {
		year = dashboard.DefaultYear(records)
	}
	known := false
	for _, y := range years {
		if y == year {
			known = true
			break
		}
	}
	if !known && len(records) > 0 {
		return Report{}, fmt.Errorf("%w: %q", dashboard.ErrUnknownYear, year)
	}

	yearRecords := dashboard.FilterByYear(records, year)
	brush := dashboard.NewBrushController(dashboard.NewScatterFrame(yearRecords, width, height), yearRecords)
	active := brush.Active()
	if sel != nil {
		active = brush.Move(*sel)
	}

	bar := dashboard.AggregateBar(active)
	return Report{
		Year:        year,
		Years:       years,
		Selection:   brush.Selection(),
		YearCount:   len(yearRecords),
		ActiveCount: len(active),
		Bar:         bar.Flat(),
		Dropped:     bar.Dropped,
		Pie:         dashboard.AggregatePie(active),
	}, nil
}

// ExportReport writes the report under the run directory of om. The file
// format follows the extension; anything but .csv is written as JSON.
func ExportReport(om *utils.OutputManager, runID, fileName string, report Report) ExportResult {
	result := ExportResult{ExportedAt: time.Now()}
	path, err := om.GetOutputFilePath(runID, fileName)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Path = path
	result.Type = om.GetFileType(path)

	var count int
	switch result.Type {
	case "csv":
		count, err = exportCSV(path, report)
	default:
		result.Type = "json"
		count, err = exportJSON(path, report)
	}
	result.RecordCount = count
	result.Success = err == nil
	if err != nil {
		result.Error = err.Error()
		log.Printf("❌ Export to file failed: %v", err)
	} else {
		log.Printf("✅ Report for %s exported to %s", report.Year, path)
	}
	return result
}

// exportCSV writes one row per bar bucket, then the pie slices
func exportCSV(path string, report Report) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"year", "chart", "key", "count"}); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	count := 0
	for _, status := range model.StatusCategories {
		for _, bipoc := range model.BIPOCCategories {
			key := model.BucketKey{Status: status, BIPOC: bipoc}.String()
			if err := writer.Write([]string{report.Year, "bar", key, strconv.Itoa(report.Bar[key])}); err != nil {
				return count, fmt.Errorf("failed to write row: %w", err)
			}
			count++
		}
	}
	for _, s := range report.Pie.Slices() {
		if err := writer.Write([]string{report.Year, "pie", s.Label, strconv.Itoa(s.Value)}); err != nil {
			return count, fmt.Errorf("failed to write row: %w", err)
		}
		count++
	}
	writer.Flush()
	return count, writer.Error()
}

func exportJSON(path string, report Report) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	exportData := map[string]interface{}{
		"export_info": map[string]interface{}{
			"exported_at":  time.Now().UTC(),
			"record_count": report.ActiveCount,
			"export_type":  "enrollment_report",
		},
		"data": report,
	}
	if err := encoder.Encode(exportData); err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return 1, nil
}
