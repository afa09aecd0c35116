package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// ErrUnsupportedSource is returned for a source type with no SQL driver
var ErrUnsupportedSource = errors.New("unsupported source type")

// GenericRow is one result row keyed by column name
type GenericRow map[string]string

// DriverName maps a source type onto its database/sql driver
func DriverName(sourceType string) (string, error) {
	switch strings.ToLower(sourceType) {
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	case "mysql":
		return "mysql", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, sourceType)
}

// Open connects to a record source and checks it is reachable
func Open(ctx context.Context, sourceType, dsn string) (*sql.DB, error) {
	driver, err := DriverName(sourceType)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s source: %w", sourceType, err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach %s source: %w", sourceType, err)
	}
	return db, nil
}

// QueryRows runs query and returns every row as column -> text. NULL reads
// as an empty string.
func QueryRows(ctx context.Context, db *sql.DB, query string) ([]GenericRow, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []GenericRow
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		row := make(GenericRow, len(cols))
		for i, c := range cols {
			row[c] = vals[i].String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
