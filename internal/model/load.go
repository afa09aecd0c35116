package model

import "time"

// LoadStats summarizes a single load of the record set
type LoadStats struct {
	SourceURL      string        `json:"source_url"`
	SourceType     string        `json:"source_type"`
	TotalRows      int           `json:"total_rows"`
	ValidRecords   int           `json:"valid_records"`
	InvalidRecords int           `json:"invalid_records"`
	LoadTime       time.Duration `json:"load_time"`
	Errors         []RowError    `json:"errors,omitempty"`
}

// RowError records why an input row was skipped
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
