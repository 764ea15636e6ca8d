package report

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/effortum/effortum/internal/store"
)

// CopyComments writes a project's deduplicated comments for the range to the
// system clipboard and returns the copied text. A clipboard failure does not
// affect any state; the caller decides how to report it.
func CopyComments(tasks []store.Task, project string, r Range) (string, error) {
	text := CommentsText(tasks, project, r)
	if err := clipboard.WriteAll(text); err != nil {
		return text, fmt.Errorf("copy comments to clipboard: %w", err)
	}
	return text, nil
}
