package model

// Source describes where the record set is read from
type Source struct {
	Type  string `json:"type"`            // csv, json, sqlite, mysql
	URL   string `json:"url"`             // file path, http(s) URL or DSN
	Query string `json:"query,omitempty"` // SQL sources only
}

// Source types
const (
	SourceCSV    = "csv"
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
	SourceMySQL  = "mysql"
)
