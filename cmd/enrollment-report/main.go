package main

import (
	"context"
	"encoding/json"
	"enrollment-dashboard/internal/dashboard"
	"enrollment-dashboard/internal/model"
	"enrollment-dashboard/internal/pipeline"
	"enrollment-dashboard/internal/render"
	"enrollment-dashboard/pkg/utils"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func main() {
	srcType := flag.String("source-type", model.SourceCSV, "Record source: csv, json, sqlite or mysql")
	src := flag.String("source", "cleaned_data.csv", "CSV or JSON path or URL, or database DSN")
	query := flag.String("query", "", "SQL query for database sources")
	year := flag.String("year", "", "Year to report (default: first record's year)")
	brush := flag.String("brush", "", "Brush rectangle in plot pixels: x0,y0,x1,y1")
	out := flag.String("out", "", "Write the report and chart SVGs under this directory")
	format := flag.String("format", "json", "Report file format when -out is set: json or csv")
	timeout := flag.Duration("timeout", time.Minute, "Load timeout")
	flag.Parse()

	sel, err := parseBrush(*brush)
	if err != nil {
		log.Fatalf("❌ Invalid -brush: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	records, _, err := pipeline.Load(ctx, model.Source{Type: *srcType, URL: *src, Query: *query})
	if err != nil {
		log.Fatalf("❌ Failed to load records: %v", err)
	}

	report, err := pipeline.BuildReport(records, *year, sel, dashboard.DefaultPlotWidth, dashboard.DefaultPlotHeight)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("❌ Failed to write report: %v", err)
	}

	if *out != "" {
		if err := writeOutputs(*out, *format, records, report); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}
}

// writeOutputs stores the report and the three charts in a fresh run directory
func writeOutputs(dir, format string, records []model.Record, report pipeline.Report) error {
	om := utils.NewOutputManager(dir)
	runID := uuid.New().String()

	result := pipeline.ExportReport(om, runID, "report."+format, report)
	if !result.Success {
		return fmt.Errorf("failed to export report: %s", result.Error)
	}

	renderers, opt := render.NewRenderers()
	d, err := dashboard.New(records, renderers, opt)
	if err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	if report.Year != d.Year() {
		if err := d.SelectYear(report.Year); err != nil {
			return err
		}
	}
	if report.Selection != nil {
		if err := d.Brush(*report.Selection); err != nil {
			return err
		}
	}

	for _, s := range []*dashboard.Surface{d.Bar(), d.Pie(), d.Scatter()} {
		path, err := om.GetOutputFilePath(runID, s.Name()+".svg")
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, s.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		size, _ := om.GetFileSize(path)
		log.Printf("🖼️ %s chart written to %s (%d bytes)", s.Name(), path, size)
	}
	return nil
}

func parseBrush(s string) (*model.Selection, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("expected 4 comma-separated numbers, got %d", len(parts))
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		v[i] = f
	}
	return &model.Selection{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3]}, nil
}
