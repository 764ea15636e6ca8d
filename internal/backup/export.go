package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/effortum/effortum/internal/store"
)

// Schema strings written per table on export. They describe the dexie index
// layout of each collection; imports do not interpret them.
const (
	tasksSchema    = "++id,date,timeStart,timeEnd,project,comment"
	projectsSchema = "++id,name"
	commentsSchema = "++id,project,comment"
	overtimeSchema = "++id,currentBalance,workingHoursPerDay"
)

// filenameLayout mirrors an ISO-8601 UTC timestamp with milliseconds.
const filenameLayout = "2006-01-02T15:04:05.000Z"

// BuildDocument assembles a backup document from a full store snapshot. The
// export always covers the whole database; the current date-range selection
// plays no part.
func BuildDocument(snap store.Snapshot) (*Document, error) {
	tasks, err := buildTable("tasks", tasksSchema, len(snap.Tasks), func(i int) (store.ID, interface{}) {
		return snap.Tasks[i].ID, snap.Tasks[i]
	})
	if err != nil {
		return nil, err
	}
	projects, err := buildTable("projects", projectsSchema, len(snap.Projects), func(i int) (store.ID, interface{}) {
		return snap.Projects[i].ID, snap.Projects[i]
	})
	if err != nil {
		return nil, err
	}
	comments, err := buildTable("comments", commentsSchema, len(snap.Comments), func(i int) (store.ID, interface{}) {
		return snap.Comments[i].ID, snap.Comments[i]
	})
	if err != nil {
		return nil, err
	}
	overtime, err := buildTable("overtime", overtimeSchema, len(snap.Overtime), func(i int) (store.ID, interface{}) {
		return snap.Overtime[i].ID, snap.Overtime[i]
	})
	if err != nil {
		return nil, err
	}

	return &Document{
		FormatName:    FormatName,
		FormatVersion: FormatVersion,
		Data: Database{
			DatabaseName:    DatabaseName,
			DatabaseVersion: DatabaseVersion,
			Tables:          []Table{tasks, projects, comments, overtime},
		},
	}, nil
}

// Filename returns the download-style backup name for the given moment:
// database-backup-<ISO-8601 timestamp>.json.
func Filename(now time.Time) string {
	return fmt.Sprintf("database-backup-%s.json", now.UTC().Format(filenameLayout))
}

// Export snapshots the whole database and writes it as one JSON document into
// dir. It returns the path of the written file.
func Export(ctx context.Context, s *store.Store, dir string, now time.Time) (string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("snapshot database: %w", err)
	}

	doc, err := BuildDocument(snap)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup document: %w", err)
	}

	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}
	return path, nil
}

func buildTable(name, schema string, count int, row func(int) (store.ID, interface{})) (Table, error) {
	table := Table{
		Name:     name,
		Schema:   schema,
		RowCount: count,
		Rows:     make([]Row, 0, count),
	}
	for i := 0; i < count; i++ {
		id, record := row(i)
		key, err := json.Marshal(id)
		if err != nil {
			return Table{}, fmt.Errorf("encode %s key: %w", name, err)
		}
		data, err := json.Marshal(record)
		if err != nil {
			return Table{}, fmt.Errorf("encode %s record: %w", name, err)
		}
		table.Rows = append(table.Rows, Row{Key: key, Record: data})
	}
	return table, nil
}
