// Package backup reads and writes the portable snapshot format used to back
// up and restore the whole database. The document shape follows the dexie
// export format so backups made by earlier browser-based builds stay
// importable.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// FormatName identifies the backup document family.
	FormatName = "dexie"
	// FormatVersion is the document format revision written on export.
	FormatVersion = 1
	// DatabaseName is the database a valid backup must declare.
	DatabaseName = "EffortumDatabase"
	// DatabaseVersion is the schema revision written on export.
	DatabaseVersion = 2
)

// ErrInvalidFormat rejects documents that do not declare themselves as an
// Effortum backup. The message text is part of the user-facing contract.
var ErrInvalidFormat = errors.New("Invalid backup file format")

// Document is the top-level backup envelope.
type Document struct {
	FormatName    string   `json:"formatName"`
	FormatVersion int      `json:"formatVersion"`
	Data          Database `json:"data"`
}

// Database carries the database identity and one Table per collection.
type Database struct {
	DatabaseName    string  `json:"databaseName"`
	DatabaseVersion int     `json:"databaseVersion"`
	Tables          []Table `json:"tables"`
}

// Table is one collection's schema string and row data.
type Table struct {
	Name     string `json:"name"`
	Schema   string `json:"schema"`
	RowCount int    `json:"rowCount"`
	Rows     []Row  `json:"rows"`
}

// Row is the [primaryKey, record] tuple the dexie format stores per record.
type Row struct {
	Key    json.RawMessage
	Record json.RawMessage
}

// MarshalJSON renders the row as a two-element array.
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]json.RawMessage{r.Key, r.Record})
}

// UnmarshalJSON parses the two-element array form.
func (r *Row) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("row must be a [key, record] pair, got %d elements", len(tuple))
	}
	r.Key, r.Record = tuple[0], tuple[1]
	return nil
}

// Validate checks that the document declares the expected format and
// database. Anything else is not an Effortum backup.
func (d *Document) Validate() error {
	if d.FormatName != FormatName || d.Data.DatabaseName != DatabaseName {
		return ErrInvalidFormat
	}
	return nil
}
