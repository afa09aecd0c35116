package config

import (
	"encoding/json"
	"enrollment-dashboard/internal/model"
	"enrollment-dashboard/pkg/utils"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is the dashboard server configuration
type Config struct {
	Addr     string        `json:"addr"`
	Source   model.Source  `json:"source"`
	Sessions SessionConfig `json:"sessions"`
	Stream   StreamConfig  `json:"stream"`
	Swagger  bool          `json:"swagger"`
}

// SessionConfig controls idle session expiry
type SessionConfig struct {
	TTL           string `json:"ttl"`           // e.g. "30m"
	SweepInterval string `json:"sweepInterval"` // e.g. "1m"
}

// StreamConfig controls the brush WebSocket
type StreamConfig struct {
	ReadLimit       int64 `json:"readLimit"`
	ReadBufferSize  int   `json:"readBufferSize"`
	WriteBufferSize int   `json:"writeBufferSize"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Addr:   ":8080",
		Source: model.Source{Type: model.SourceCSV, URL: "cleaned_data.csv"},
		Sessions: SessionConfig{
			TTL:           "30m",
			SweepInterval: "1m",
		},
		Stream: StreamConfig{
			ReadLimit:       4096,
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		Swagger: true,
	}
}

// SessionTTL parses the idle TTL, 30m when unset or invalid
func (c Config) SessionTTL() time.Duration {
	return utils.ParseDuration(c.Sessions.TTL, 30*time.Minute)
}

// SweepInterval parses the sweep period, 1m when unset or invalid
func (c Config) SweepInterval() time.Duration {
	return utils.ParseDuration(c.Sessions.SweepInterval, time.Minute)
}

// LoadFile overlays a JSON file onto c
func LoadFile(c Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to decode config: %w", err)
	}
	return c, nil
}

// Parse builds the configuration from defaults, an optional -config file and
// flags. Flags win over the file.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	path := fs.String("config", "", "Path to a JSON config file")
	addr := fs.String("addr", "", "Listen address (default "+cfg.Addr+")")
	srcType := fs.String("source-type", "", "Record source: csv, json, sqlite or mysql")
	srcURL := fs.String("source", "", "CSV or JSON path or URL, or database DSN")
	query := fs.String("query", "", "SQL query for database sources")
	ttl := fs.String("session-ttl", "", "Idle session lifetime, e.g. 30m")
	noSwagger := fs.Bool("no-swagger", false, "Disable the swagger UI")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *path != "" {
		var err error
		if cfg, err = LoadFile(cfg, *path); err != nil {
			return cfg, err
		}
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *srcType != "" {
		cfg.Source.Type = *srcType
	}
	if *srcURL != "" {
		cfg.Source.URL = *srcURL
	}
	if *query != "" {
		cfg.Source.Query = *query
	}
	if *ttl != "" {
		cfg.Sessions.TTL = *ttl
	}
	if *noSwagger {
		cfg.Swagger = false
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the server cannot start with
func (c Config) Validate() error {
	// an empty type reads as csv, like the ingester does
	switch strings.ToLower(c.Source.Type) {
	case "", model.SourceCSV, model.SourceJSON, model.SourceSQLite, model.SourceMySQL:
	default:
		return fmt.Errorf("unknown source type %q", c.Source.Type)
	}
	if c.Source.URL == "" {
		return fmt.Errorf("source is required")
	}
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	return nil
}
