package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"enrollment-dashboard/internal/model"
	"enrollment-dashboard/internal/store"
	"enrollment-dashboard/pkg/utils"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
)

// GenericRecord is one input row keyed by column name
type GenericRecord map[string]interface{}

// Row is a GenericRecord tagged with its position in the source
type Row struct {
	Line   int
	Fields GenericRecord
}

// RowError marks a row that was skipped; ingestion carries on after it
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ------------------- Ingestion -------------------

// IngestSource streams the rows of a single source in source order. Row
// problems are sent as *RowError; any other error on errs ends the load.
func IngestSource(ctx context.Context, source model.Source, out chan<- Row, errs chan<- error) {
	log.Printf("➡️ Starting ingestion for source: %s (%s)", source.URL, source.Type)
	defer log.Printf("✅ Finished ingestion for source: %s (%s)", source.URL, source.Type)

	switch strings.ToLower(source.Type) {
	case "", model.SourceCSV:
		ingestCSV(ctx, source.URL, out, errs)
	case model.SourceJSON:
		ingestJSON(ctx, source.URL, out, errs)
	case model.SourceSQLite, model.SourceMySQL:
		ingestSQL(ctx, source, out, errs)
	default:
		send(ctx, errs, fmt.Errorf("%w: %s", store.ErrUnsupportedSource, source.Type))
	}
}

// open returns a reader over a local file or an http(s) URL
func open(ctx context.Context, pathOrURL string) (io.ReadCloser, error) {
	if !strings.HasPrefix(pathOrURL, "http") {
		file, err := os.Open(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", pathOrURL, err)
		}
		return file, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to GET %s: %w", pathOrURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to GET %s: status %d", pathOrURL, resp.StatusCode)
	}
	return resp.Body, nil
}

// ------------------- CSV Ingestion -------------------

func ingestCSV(ctx context.Context, pathOrURL string, out chan<- Row, errs chan<- error) {
	reader, err := open(ctx, pathOrURL)
	if err != nil {
		send(ctx, errs, err)
		return
	}
	defer reader.Close()
	ReadCSV(ctx, reader, out, errs)
}

// ReadCSV streams a CSV with a header row. Cell values are kept as raw
// strings.
func ReadCSV(ctx context.Context, r io.Reader, out chan<- Row, errs chan<- error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err != nil {
		send(ctx, errs, fmt.Errorf("failed to read CSV header: %w", err))
		return
	}
	for i, h := range headers {
		headers[i] = utils.CleanHeader(h)
	}
	if err := requireColumns(headers); err != nil {
		send(ctx, errs, err)
		return
	}

	line := 1
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			log.Printf("📄 CSV ingestion done: %d rows read", line-1)
			return
		}
		line++
		if err != nil {
			if !send(ctx, errs, &RowError{Line: line, Err: err}) {
				return
			}
			continue
		}
		if len(record) < len(headers) {
			if !send(ctx, errs, &RowError{Line: line, Err: fmt.Errorf("expected %d fields, got %d", len(headers), len(record))}) {
				return
			}
			continue
		}

		fields := make(GenericRecord, len(headers))
		for i, h := range headers {
			fields[h] = record[i]
		}
		if !emit(ctx, out, Row{Line: line, Fields: fields}) {
			return
		}
	}
}

// ------------------- JSON Ingestion -------------------

// ingestJSON accepts an array of objects or a single object
func ingestJSON(ctx context.Context, pathOrURL string, out chan<- Row, errs chan<- error) {
	reader, err := open(ctx, pathOrURL)
	if err != nil {
		send(ctx, errs, err)
		return
	}
	defer reader.Close()

	var raw interface{}
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		send(ctx, errs, fmt.Errorf("failed to decode JSON: %w", err))
		return
	}

	switch data := raw.(type) {
	case []interface{}:
		for i, item := range data {
			m, ok := item.(map[string]interface{})
			if !ok {
				if !send(ctx, errs, &RowError{Line: i + 1, Err: fmt.Errorf("expected an object, got %T", item)}) {
					return
				}
				continue
			}
			if !emit(ctx, out, Row{Line: i + 1, Fields: m}) {
				return
			}
		}
		log.Printf("🌐 JSON ingestion done: %d items read from %s", len(data), pathOrURL)
	case map[string]interface{}:
		emit(ctx, out, Row{Line: 1, Fields: data})
	default:
		send(ctx, errs, fmt.Errorf("unexpected JSON structure"))
	}
}

// ------------------- SQL Ingestion -------------------

func ingestSQL(ctx context.Context, source model.Source, out chan<- Row, errs chan<- error) {
	db, err := store.Open(ctx, source.Type, source.URL)
	if err != nil {
		send(ctx, errs, err)
		return
	}
	defer db.Close()

	query := source.Query
	if query == "" {
		query = DefaultQuery
	}
	rows, err := store.QueryRows(ctx, db, query)
	if err != nil {
		send(ctx, errs, err)
		return
	}
	log.Printf("🗄️ SQL: %d rows read from %s source", len(rows), source.Type)

	for i, row := range rows {
		fields := make(GenericRecord, len(row))
		for k, v := range row {
			fields[k] = v
		}
		if !emit(ctx, out, Row{Line: i + 1, Fields: fields}) {
			return
		}
	}
}

func emit(ctx context.Context, out chan<- Row, row Row) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- row:
		return true
	}
}

func send(ctx context.Context, errs chan<- error, err error) bool {
	select {
	case <-ctx.Done():
		return false
	case errs <- err:
		return true
	}
}
