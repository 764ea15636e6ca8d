package store

import (
	"encoding/json"
	"strconv"
)

// ID is the primary key type shared by all collections. Backups written by
// older databases carry numeric auto-increment keys, newer ones carry UUID
// strings; both decode into the same column.
type ID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as numbers so exported documents round-trip
// byte-for-byte with what was imported.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Task is one logged time interval. Date is a plain YYYY-MM-DD string and the
// times are HH:MM strings; an empty TimeEnd means the task is still open.
type Task struct {
	ID        ID     `gorm:"primaryKey;size:36" json:"id"`
	Date      string `gorm:"index;not null" json:"date"`
	TimeStart string `gorm:"not null" json:"timeStart"`
	TimeEnd   string `json:"timeEnd"`
	Project   string `gorm:"not null" json:"project"`
	Comment   string `json:"comment"`
}

// Project is a named bucket tasks reference by name.
type Project struct {
	ID   ID     `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Comment is a reusable per-project suggestion, recorded whenever a task is
// saved with a non-empty comment. It is distinct from the comment text stored
// on an individual task.
type Comment struct {
	ID      ID     `gorm:"primaryKey;size:36" json:"id"`
	Project string `gorm:"index;not null" json:"project"`
	Comment string `gorm:"not null" json:"comment"`
}

// OvertimeSettings is a single-row configuration; the application reads the
// first row only.
type OvertimeSettings struct {
	ID                 ID      `gorm:"primaryKey;size:36" json:"id"`
	CurrentBalance     float64 `json:"currentBalance"`
	WorkingHoursPerDay float64 `json:"workingHoursPerDay"`
}

// TableName pins the collection name used by backups.
func (Task) TableName() string { return "tasks" }

// TableName pins the collection name used by backups.
func (Project) TableName() string { return "projects" }

// TableName pins the collection name used by backups.
func (Comment) TableName() string { return "comments" }

// TableName pins the collection name used by backups.
func (OvertimeSettings) TableName() string { return "overtime" }
