package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the durable source of truth: four sqlite tables, one per
// collection. Every mutation in the application goes through here before any
// in-memory state is touched.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn and migrates all collections.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&Task{}, &Project{}, &Comment{}, &OvertimeSettings{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// InsertTask adds a new task record. The id must be assigned by the caller.
func (s *Store) InsertTask(ctx context.Context, task *Task) error {
	return s.db.WithContext(ctx).Create(task).Error
}

// TaskUpdate carries a partial set of task field changes; nil means "leave
// the current value alone".
type TaskUpdate struct {
	Date      *string
	TimeStart *string
	TimeEnd   *string
	Project   *string
	Comment   *string
}

func (u TaskUpdate) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Date != nil {
		fields["date"] = *u.Date
	}
	if u.TimeStart != nil {
		fields["time_start"] = *u.TimeStart
	}
	if u.TimeEnd != nil {
		fields["time_end"] = *u.TimeEnd
	}
	if u.Project != nil {
		fields["project"] = *u.Project
	}
	if u.Comment != nil {
		fields["comment"] = *u.Comment
	}
	return fields
}

// UpdateTask applies a partial update to the task with the given id.
func (s *Store) UpdateTask(ctx context.Context, id ID, update TaskUpdate) error {
	fields := update.fields()
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&Task{}).Where("id = ?", id).Updates(fields).Error
}

// TasksByDate returns every task ordered by date, then start time.
func (s *Store) TasksByDate(ctx context.Context) ([]Task, error) {
	var tasks []Task
	err := s.db.WithContext(ctx).Order("date, time_start, time_end").Find(&tasks).Error
	return tasks, err
}

// InsertProject adds a new project. The unique index on name rejects
// duplicates at the store level.
func (s *Store) InsertProject(ctx context.Context, project *Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

// ProjectsByName returns every project ordered by name.
func (s *Store) ProjectsByName(ctx context.Context) ([]Project, error) {
	var projects []Project
	err := s.db.WithContext(ctx).Order("name").Find(&projects).Error
	return projects, err
}

// InsertComment adds a new per-project comment suggestion. Pair-uniqueness is
// the manager's job, not the store's.
func (s *Store) InsertComment(ctx context.Context, comment *Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

// CommentsByText returns every comment suggestion ordered by comment text.
func (s *Store) CommentsByText(ctx context.Context) ([]Comment, error) {
	var comments []Comment
	err := s.db.WithContext(ctx).Order("comment").Find(&comments).Error
	return comments, err
}

// Overtime returns the first overtime settings row, or nil when none exists.
func (s *Store) Overtime(ctx context.Context) (*OvertimeSettings, error) {
	var settings OvertimeSettings
	err := s.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveOvertime creates or overwrites the single overtime settings row.
func (s *Store) SaveOvertime(ctx context.Context, settings *OvertimeSettings) error {
	existing, err := s.Overtime(ctx)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.db.WithContext(ctx).Create(settings).Error
	}
	settings.ID = existing.ID
	return s.db.WithContext(ctx).Model(&OvertimeSettings{}).Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"current_balance":       settings.CurrentBalance,
			"working_hours_per_day": settings.WorkingHoursPerDay,
		}).Error
}

// Snapshot is a full copy of every collection, in stored order.
type Snapshot struct {
	Tasks    []Task
	Projects []Project
	Comments []Comment
	Overtime []OvertimeSettings
}

// Snapshot reads all four collections in one go for export.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	if err := s.db.WithContext(ctx).Order("date, time_start, time_end").Find(&snap.Tasks).Error; err != nil {
		return Snapshot{}, err
	}
	if err := s.db.WithContext(ctx).Order("name").Find(&snap.Projects).Error; err != nil {
		return Snapshot{}, err
	}
	if err := s.db.WithContext(ctx).Order("comment").Find(&snap.Comments).Error; err != nil {
		return Snapshot{}, err
	}
	if err := s.db.WithContext(ctx).Find(&snap.Overtime).Error; err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// ReplaceAll clears every collection and bulk-loads the snapshot in its
// original row order. The whole operation runs inside a single transaction so
// a mid-import failure cannot leave the database partially cleared.
func (s *Store) ReplaceAll(ctx context.Context, snap Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&Task{}, &Project{}, &Comment{}, &OvertimeSettings{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		for i := range snap.Tasks {
			if err := tx.Create(&snap.Tasks[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Projects {
			if err := tx.Create(&snap.Projects[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Comments {
			if err := tx.Create(&snap.Comments[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Overtime {
			if err := tx.Create(&snap.Overtime[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
