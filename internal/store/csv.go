package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"
)

// row is one table record keyed by column header. Missing cells read as "".
type row struct {
	columns map[string]int
	fields  []string
}

func (r row) get(column string) string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return r.fields[idx]
}

// readTable loads a CSV file into header-keyed rows. Ragged rows are
// tolerated; the first line must be a header. A missing or unreadable file is
// a load failure surfaced to the caller.
func readTable(path string) ([]row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}

	rows := make([]row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, row{columns: columns, fields: record})
	}
	return rows, nil
}

// dateLayouts are tried in order when parsing transaction timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate coerces a raw date string to a timestamp. The zero time marks
// values that fail every layout; callers treat those rows as outside any
// backward-looking window.
func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
