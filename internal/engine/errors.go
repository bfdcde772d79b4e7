package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why the engine rejected a proposed mutation. Every
// rejection is recoverable: the caller can retry with corrected input.
type Kind string

const (
	// KindValidation indicates a malformed field (bad title length, unknown
	// task type, out-of-range parallel limit).
	KindValidation Kind = "validation"
	// KindReference indicates a dependency or agent identity that does not
	// resolve (unknown task id, assignee not in workspace).
	KindReference Kind = "reference"
	// KindConflict indicates an overlapping write scope with an open task.
	KindConflict Kind = "conflict"
	// KindAdmissionLimit indicates the in-progress cap was reached, or a
	// cap update below current usage.
	KindAdmissionLimit Kind = "admission_limit"
	// KindGuard indicates a task transition guard failed (missing block
	// reason, unmet dependencies, missing write output).
	KindGuard Kind = "guard"
	// KindIllegalRunTransition indicates a run status edge outside the
	// allowed table.
	KindIllegalRunTransition Kind = "illegal_run_transition"
	// KindIncompleteRun indicates completion was attempted while tasks
	// remain undone or a human-input request is open.
	KindIncompleteRun Kind = "incomplete_run"
)

// Error is a rejection produced by the engine. It carries the offending
// identifiers so the caller can render an actionable message.
type Error struct {
	// Kind classifies the rejection.
	Kind Kind
	// Reason is a short machine-stable description of the failed guard.
	Reason string
	// TaskIDs lists the tasks that caused the rejection (the conflicting
	// task, the unmet dependencies, ...). May be empty.
	TaskIDs []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.TaskIDs) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s [%s]", e.Kind, e.Reason, strings.Join(e.TaskIDs, ", "))
}

// IsKind reports whether err is an engine rejection of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// reject builds a rejection with the offending task ids attached.
func reject(kind Kind, reason string, taskIDs ...string) *Error {
	return &Error{Kind: kind, Reason: reason, TaskIDs: taskIDs}
}
