package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/effortum/effortum/internal/store"
)

func setupTestApp(t *testing.T) *App {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	app := New(s)
	if err := app.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return app
}

func newTask(project, comment string) store.Task {
	return store.Task{
		ID:        store.ID(uuid.NewString()),
		Date:      "2024-01-15",
		TimeStart: "08:00",
		TimeEnd:   "09:00",
		Project:   project,
		Comment:   comment,
	}
}

func TestAddTaskAutoCreatesProjectOnce(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	if err := app.AddTask(ctx, newTask("ProjectA", "")); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if len(app.Projects()) != 1 || app.Projects()[0].Name != "ProjectA" {
		t.Fatalf("projects = %+v, want exactly ProjectA", app.Projects())
	}

	if err := app.AddTask(ctx, newTask("ProjectA", "")); err != nil {
		t.Fatalf("AddTask second: %v", err)
	}
	if len(app.Projects()) != 1 {
		t.Fatalf("projects = %+v, want no duplicate", app.Projects())
	}
	if len(app.Tasks()) != 2 {
		t.Fatalf("tasks = %d, want 2", len(app.Tasks()))
	}
}

func TestAddTaskRecordsCommentSuggestion(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	if err := app.AddTask(ctx, newTask("ProjectA", "Review PR")); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if err := app.AddTask(ctx, newTask("ProjectA", "Review PR")); err != nil {
		t.Fatalf("AddTask second: %v", err)
	}

	comments := app.CommentsForProject("ProjectA")
	if len(comments) != 1 || comments[0].Comment != "Review PR" {
		t.Fatalf("comments = %+v, want one Review PR entry", comments)
	}
}

func TestAddTaskWithoutCommentAddsNoSuggestion(t *testing.T) {
	app := setupTestApp(t)

	if err := app.AddTask(context.Background(), newTask("ProjectA", "")); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if len(app.Comments()) != 0 {
		t.Fatalf("comments = %+v, want none", app.Comments())
	}
}

func TestCommentSuggestionsAreScopedToProject(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	if err := app.AddComment(ctx, "ProjectE", "E Task 1"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if err := app.AddComment(ctx, "ProjectF", "F Task 1"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	comments := app.CommentsForProject("ProjectE")
	if len(comments) != 1 || comments[0].Comment != "E Task 1" {
		t.Fatalf("comments for ProjectE = %+v", comments)
	}
}

func TestUpdateTaskUnknownIDFails(t *testing.T) {
	app := setupTestApp(t)

	err := app.UpdateTask(context.Background(), "missing", store.TaskUpdate{})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("UpdateTask error = %v, want ErrTaskNotFound", err)
	}
	if len(app.Tasks()) != 0 {
		t.Fatalf("tasks mutated by failed update: %+v", app.Tasks())
	}
}

func TestUpdateTaskCreatesProjectAndSuggestion(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	task := newTask("ProjectA", "")
	if err := app.AddTask(ctx, task); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	project := "ProjectB"
	comment := "Switched projects"
	err := app.UpdateTask(ctx, task.ID, store.TaskUpdate{Project: &project, Comment: &comment})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	if !app.HasProject("ProjectB") {
		t.Fatal("ProjectB was not auto-created")
	}
	suggestions := app.CommentsForProject("ProjectB")
	if len(suggestions) != 1 || suggestions[0].Comment != "Switched projects" {
		t.Fatalf("suggestions = %+v", suggestions)
	}

	updated := app.Task(task.ID)
	if updated.Project != "ProjectB" || updated.Comment != "Switched projects" {
		t.Fatalf("updated task = %+v", updated)
	}
}

func TestStopTaskSetsEndAndRemembersIt(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	task := newTask("ProjectA", "")
	task.TimeEnd = ""
	if err := app.AddTask(ctx, task); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	now := time.Date(2024, time.January, 15, 14, 37, 0, 0, time.Local)
	if err := app.StopTask(ctx, task.ID, now); err != nil {
		t.Fatalf("StopTask: %v", err)
	}

	stopped := app.Task(task.ID)
	if stopped.TimeEnd != "14:37" {
		t.Fatalf("TimeEnd = %q, want %q", stopped.TimeEnd, "14:37")
	}
	if app.EndTimeOfLastStopped() != "14:37" {
		t.Fatalf("EndTimeOfLastStopped = %q, want %q", app.EndTimeOfLastStopped(), "14:37")
	}
	if app.OpenTask() != nil {
		t.Fatalf("OpenTask = %+v, want nil", app.OpenTask())
	}
}

func TestOpenTaskFindsTaskWithoutEnd(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	closed := newTask("ProjectA", "")
	if err := app.AddTask(ctx, closed); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if app.OpenTask() != nil {
		t.Fatal("OpenTask found a closed task")
	}

	open := newTask("ProjectB", "")
	open.TimeEnd = ""
	if err := app.AddTask(ctx, open); err != nil {
		t.Fatalf("AddTask open: %v", err)
	}
	found := app.OpenTask()
	if found == nil || found.ID != open.ID {
		t.Fatalf("OpenTask = %+v, want task %s", found, open.ID)
	}
}

func TestLoadHydratesFromStore(t *testing.T) {
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	ctx := context.Background()

	seed := store.Task{ID: "seed", Date: "2024-01-15", TimeStart: "08:00", TimeEnd: "09:00", Project: "ProjectA"}
	if err := s.InsertTask(ctx, &seed); err != nil {
		t.Fatalf("InsertTask: %v", err)
	}
	if err := s.InsertProject(ctx, &store.Project{ID: "p", Name: "ProjectA"}); err != nil {
		t.Fatalf("InsertProject: %v", err)
	}

	app := New(s)
	if err := app.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(app.Tasks()) != 1 || app.Tasks()[0].ID != "seed" {
		t.Fatalf("tasks = %+v", app.Tasks())
	}
	if !app.HasProject("ProjectA") {
		t.Fatal("projects not hydrated")
	}
	if app.SelectedRange().Start == nil {
		t.Fatal("selected range should default to today")
	}
}

func TestSaveOvertimeCaches(t *testing.T) {
	app := setupTestApp(t)

	if err := app.SaveOvertime(context.Background(), -3.25, 7.5); err != nil {
		t.Fatalf("SaveOvertime: %v", err)
	}

	settings := app.Overtime()
	if settings == nil || settings.CurrentBalance != -3.25 || settings.WorkingHoursPerDay != 7.5 {
		t.Fatalf("overtime = %+v", settings)
	}
}

func TestConcurrentMutationsAndReads(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 25; i++ {
			if err := app.AddTask(ctx, newTask("Concurrent", "work")); err != nil {
				t.Errorf("AddTask: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 25; i++ {
		_ = app.Tasks()
		_ = app.Projects()
		_ = app.Comments()
		_ = app.OpenTask()
		_ = app.CommentsForProject("Concurrent")
		_ = app.EndTimeOfLastStopped()
	}
	<-done

	if got := len(app.Tasks()); got != 25 {
		t.Fatalf("expected 25 tasks after concurrent adds, got %d", got)
	}
}
