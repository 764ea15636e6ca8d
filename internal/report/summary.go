package report

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/effortum/effortum/internal/store"
)

// collator orders project names and comments the way a locale-aware string
// comparison would, rather than by raw byte value.
var collator = collate.New(language.Und)

// ProjectTotal is the aggregated duration logged against one project.
type ProjectTotal struct {
	Project      string
	TotalMinutes int
}

// SummarizeByProject filters tasks by the range, groups them by project, and
// sums their durations in minutes. Open tasks count as zero. The result is
// sorted by project name, ascending.
func SummarizeByProject(tasks []store.Task, r Range) []ProjectTotal {
	totals := map[string]int{}
	for _, task := range FilterTasks(tasks, r) {
		totals[task.Project] += Minutes(task.TimeStart, task.TimeEnd)
	}

	result := make([]ProjectTotal, 0, len(totals))
	for project, minutes := range totals {
		result = append(result, ProjectTotal{Project: project, TotalMinutes: minutes})
	}
	sort.Slice(result, func(i, j int) bool {
		return collator.CompareString(result[i].Project, result[j].Project) < 0
	})
	return result
}

// CommentsText collects the distinct task comments logged for a project
// within the range, sorted ascending and joined with newlines. No tasks or no
// comments yield the empty string.
func CommentsText(tasks []store.Task, project string, r Range) string {
	seen := map[string]struct{}{}
	var comments []string
	for _, task := range FilterTasks(tasks, r) {
		if task.Project != project || task.Comment == "" {
			continue
		}
		if _, ok := seen[task.Comment]; ok {
			continue
		}
		seen[task.Comment] = struct{}{}
		comments = append(comments, task.Comment)
	}

	sort.Slice(comments, func(i, j int) bool {
		return collator.CompareString(comments[i], comments[j]) < 0
	})
	return strings.Join(comments, "\n")
}
