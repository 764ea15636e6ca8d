package state

import "errors"

// ErrTaskNotFound is returned when an update targets a task id that is not in
// the cache; the operation aborts without touching store or cache.
var ErrTaskNotFound = errors.New("task not found")
