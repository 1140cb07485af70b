// Package legacy holds the flat-file registration intake kept for
// backward compatibility. It shares no state with the store-backed
// pipeline; the two surfaces are versioned independently.
package legacy

import (
	"encoding/csv"
	"os"
	"sync"
)

var header = []string{"Name", "UID", "Phone", "Mode"}

// Row is one legacy registration. Name, UID and Phone are required;
// Mode is free-form and optional.
type Row struct {
	Name  string `json:"name"`
	UID   string `json:"uid"`
	Phone string `json:"phone"`
	Mode  string `json:"mode"`
}

// Log appends rows to a CSV file, writing the header exactly once on
// first-ever use. Header emission is governed by file non-existence so it
// holds across process restarts. The mutex covers the existence check and
// the append together; concurrent writers cannot interleave rows or
// double-write the header.
type Log struct {
	mu   sync.Mutex
	path string
}

func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append adds one row to the log.
func (l *Log) Append(row Row) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, statErr := os.Stat(l.path)
	fileExists := statErr == nil

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !fileExists {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write([]string{row.Name, row.UID, row.Phone, row.Mode}); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}
