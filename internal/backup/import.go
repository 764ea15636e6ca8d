package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/effortum/effortum/internal/store"
)

// Parse decodes and validates a backup document. A malformed document and a
// well-formed document for some other database are distinct failures; both
// leave the caller's database untouched.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse backup document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Import replaces the entire database with the document's contents. The clear
// and bulk-load run inside one store transaction, so any failure rolls back
// to the pre-import state. Callers reload all in-memory state afterwards.
func Import(ctx context.Context, s *store.Store, r io.Reader) error {
	doc, err := Parse(r)
	if err != nil {
		return err
	}

	snap, err := decodeSnapshot(doc)
	if err != nil {
		return err
	}

	if err := s.ReplaceAll(ctx, snap); err != nil {
		return fmt.Errorf("load backup into database: %w", err)
	}
	return nil
}

// decodeSnapshot maps the document's tables onto store records, keeping row
// order and raw field values. Tables this application does not know are
// skipped.
func decodeSnapshot(doc *Document) (store.Snapshot, error) {
	var snap store.Snapshot
	for _, table := range doc.Data.Tables {
		switch table.Name {
		case "tasks":
			for i, row := range table.Rows {
				var task store.Task
				if err := decodeRow(row, &task, &task.ID); err != nil {
					return store.Snapshot{}, fmt.Errorf("decode tasks row %d: %w", i, err)
				}
				snap.Tasks = append(snap.Tasks, task)
			}
		case "projects":
			for i, row := range table.Rows {
				var project store.Project
				if err := decodeRow(row, &project, &project.ID); err != nil {
					return store.Snapshot{}, fmt.Errorf("decode projects row %d: %w", i, err)
				}
				snap.Projects = append(snap.Projects, project)
			}
		case "comments":
			for i, row := range table.Rows {
				var comment store.Comment
				if err := decodeRow(row, &comment, &comment.ID); err != nil {
					return store.Snapshot{}, fmt.Errorf("decode comments row %d: %w", i, err)
				}
				snap.Comments = append(snap.Comments, comment)
			}
		case "overtime":
			for i, row := range table.Rows {
				var settings store.OvertimeSettings
				if err := decodeRow(row, &settings, &settings.ID); err != nil {
					return store.Snapshot{}, fmt.Errorf("decode overtime row %d: %w", i, err)
				}
				snap.Overtime = append(snap.Overtime, settings)
			}
		}
	}
	return snap, nil
}

// decodeRow fills the record from the row payload and falls back to the row
// key when the record itself carries no id.
func decodeRow(row Row, record interface{}, id *store.ID) error {
	if err := json.Unmarshal(row.Record, record); err != nil {
		return err
	}
	if *id == "" {
		if err := json.Unmarshal(row.Key, id); err != nil {
			return err
		}
	}
	return nil
}
