// Package state owns the in-memory mirror of the persisted collections plus
// the transient selection state, and the manager logic that keeps tasks,
// projects, and comment suggestions consistent. Every mutation writes to the
// store first and only updates the cache from a full re-read afterwards, so
// the cache never gets ahead of durable state.
package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/effortum/effortum/internal/report"
	"github.com/effortum/effortum/internal/store"
)

// App is the application state handle. Construct one per process with New and
// hydrate it once with Load; it is not a package-level singleton. The TUI reads
// the cache from its event loop while mutations complete on command goroutines,
// so every cached field is guarded by mu. Refreshes replace whole slices, never
// mutate elements in place, so a slice handed out before a refresh stays valid.
type App struct {
	store *store.Store

	mu       sync.RWMutex
	tasks    []store.Task
	projects []store.Project
	comments []store.Comment
	overtime *store.OvertimeSettings

	selected       report.Range
	lastStoppedEnd string
}

// New wires an App around the persistent store.
func New(s *store.Store) *App {
	return &App{store: s}
}

// Load hydrates the entire cache from the store in one state replacement:
// tasks ordered by date, projects by name, comments by comment text. The
// selected range defaults to today.
func (a *App) Load(ctx context.Context) error {
	tasks, err := a.store.TasksByDate(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	projects, err := a.store.ProjectsByName(ctx)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	comments, err := a.store.CommentsByText(ctx)
	if err != nil {
		return fmt.Errorf("load comments: %w", err)
	}
	overtime, err := a.store.Overtime(ctx)
	if err != nil {
		return fmt.Errorf("load overtime settings: %w", err)
	}

	a.mu.Lock()
	a.tasks = tasks
	a.projects = projects
	a.comments = comments
	a.overtime = overtime
	a.selected = report.Day(time.Now().Format("2006-01-02"))
	a.mu.Unlock()
	return nil
}

// AddTask inserts a fully-formed task candidate whose id the caller assigned.
// The referenced project is created if it does not exist yet, and a non-empty
// comment is recorded as a reusable suggestion for that project.
func (a *App) AddTask(ctx context.Context, task store.Task) error {
	if err := a.ensureProject(ctx, task.Project); err != nil {
		return err
	}
	if task.Comment != "" {
		if err := a.AddComment(ctx, task.Project, task.Comment); err != nil {
			return err
		}
	}
	if err := a.store.InsertTask(ctx, &task); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return a.refreshTasks(ctx)
}

// UpdateTask applies a partial update to an existing task. An unknown id
// aborts with ErrTaskNotFound before anything is written.
func (a *App) UpdateTask(ctx context.Context, id store.ID, update store.TaskUpdate) error {
	current := a.Task(id)
	if current == nil {
		return fmt.Errorf("update task %s: %w", id, ErrTaskNotFound)
	}

	projectName := current.Project
	if update.Project != nil {
		projectName = *update.Project
	}
	if err := a.ensureProject(ctx, projectName); err != nil {
		return err
	}

	if update.Comment != nil && *update.Comment != "" {
		if err := a.AddComment(ctx, projectName, *update.Comment); err != nil {
			return err
		}
	}

	if err := a.store.UpdateTask(ctx, id, update); err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	return a.refreshTasks(ctx)
}

// StopTask closes an open task by setting its end time to now, passing the
// current project and comment through, and remembers the end time so the next
// add can pre-fill it as a start time.
func (a *App) StopTask(ctx context.Context, id store.ID, now time.Time) error {
	current := a.Task(id)
	if current == nil {
		return fmt.Errorf("stop task %s: %w", id, ErrTaskNotFound)
	}

	end := now.Format("15:04")
	update := store.TaskUpdate{
		TimeEnd: &end,
		Project: &current.Project,
		Comment: &current.Comment,
	}
	if err := a.UpdateTask(ctx, id, update); err != nil {
		return err
	}
	a.SetEndTimeOfLastStopped(end)
	return nil
}

// AddProject creates a project with a fresh id and refreshes the cached list.
// The store rejects duplicate names.
func (a *App) AddProject(ctx context.Context, name string) error {
	project := store.Project{ID: store.ID(uuid.NewString()), Name: name}
	if err := a.store.InsertProject(ctx, &project); err != nil {
		return fmt.Errorf("insert project %q: %w", name, err)
	}
	return a.refreshProjects(ctx)
}

// AddComment records a comment suggestion for a project unless the exact
// (project, comment) pair is already known.
func (a *App) AddComment(ctx context.Context, project, comment string) error {
	if a.hasComment(project, comment) {
		return nil
	}

	record := store.Comment{ID: store.ID(uuid.NewString()), Project: project, Comment: comment}
	if err := a.store.InsertComment(ctx, &record); err != nil {
		return fmt.Errorf("insert comment for %q: %w", project, err)
	}
	return a.refreshComments(ctx)
}

func (a *App) hasComment(project, comment string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, existing := range a.comments {
		if existing.Project == project && existing.Comment == comment {
			return true
		}
	}
	return false
}

// CommentsForProject returns the cached suggestions for a project name.
func (a *App) CommentsForProject(name string) []store.Comment {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var matches []store.Comment
	for _, comment := range a.comments {
		if comment.Project == name {
			matches = append(matches, comment)
		}
	}
	return matches
}

// SaveOvertime validates nothing itself; callers run the field validators
// first. It persists the single settings row and updates the cache.
func (a *App) SaveOvertime(ctx context.Context, balance, hoursPerDay float64) error {
	settings := store.OvertimeSettings{
		ID:                 store.ID(uuid.NewString()),
		CurrentBalance:     balance,
		WorkingHoursPerDay: hoursPerDay,
	}
	if err := a.store.SaveOvertime(ctx, &settings); err != nil {
		return fmt.Errorf("save overtime settings: %w", err)
	}
	a.mu.Lock()
	a.overtime = &settings
	a.mu.Unlock()
	return nil
}

// Store exposes the persistent store for whole-database operations like
// backup export and import.
func (a *App) Store() *store.Store { return a.store }

// Task returns the cached task with the given id, or nil.
func (a *App) Task(id store.ID) *store.Task {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.tasks {
		if a.tasks[i].ID == id {
			return &a.tasks[i]
		}
	}
	return nil
}

// OpenTask returns the cached task without an end time, or nil. The UI layer
// uses this to keep at most one task running at a time; the data layer does
// not enforce it.
func (a *App) OpenTask() *store.Task {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.tasks {
		if a.tasks[i].TimeEnd == "" {
			return &a.tasks[i]
		}
	}
	return nil
}

// Tasks returns the cached task list.
func (a *App) Tasks() []store.Task {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tasks
}

// Projects returns the cached project list.
func (a *App) Projects() []store.Project {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.projects
}

// Comments returns the cached comment suggestion list.
func (a *App) Comments() []store.Comment {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.comments
}

// Overtime returns the cached overtime settings row, or nil.
func (a *App) Overtime() *store.OvertimeSettings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.overtime
}

// SelectedRange returns the current date-range selection.
func (a *App) SelectedRange() report.Range {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.selected
}

// SetSelectedRange replaces the date-range selection.
func (a *App) SetSelectedRange(r report.Range) {
	a.mu.Lock()
	a.selected = r
	a.mu.Unlock()
}

// EndTimeOfLastStopped returns the end time recorded by the most recent stop,
// or "" when no task was stopped in this session.
func (a *App) EndTimeOfLastStopped() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastStoppedEnd
}

// SetEndTimeOfLastStopped records an end time for start-time pre-filling.
func (a *App) SetEndTimeOfLastStopped(end string) {
	a.mu.Lock()
	a.lastStoppedEnd = end
	a.mu.Unlock()
}

// HasProject reports whether a project with the given name is cached.
func (a *App) HasProject(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, project := range a.projects {
		if project.Name == name {
			return true
		}
	}
	return false
}

func (a *App) ensureProject(ctx context.Context, name string) error {
	if a.HasProject(name) {
		return nil
	}
	return a.AddProject(ctx, name)
}

func (a *App) refreshTasks(ctx context.Context) error {
	tasks, err := a.store.TasksByDate(ctx)
	if err != nil {
		return fmt.Errorf("reload tasks: %w", err)
	}
	a.mu.Lock()
	a.tasks = tasks
	a.mu.Unlock()
	return nil
}

func (a *App) refreshProjects(ctx context.Context) error {
	projects, err := a.store.ProjectsByName(ctx)
	if err != nil {
		return fmt.Errorf("reload projects: %w", err)
	}
	a.mu.Lock()
	a.projects = projects
	a.mu.Unlock()
	return nil
}

func (a *App) refreshComments(ctx context.Context) error {
	comments, err := a.store.CommentsByText(ctx)
	if err != nil {
		return fmt.Errorf("reload comments: %w", err)
	}
	a.mu.Lock()
	a.comments = comments
	a.mu.Unlock()
	return nil
}
