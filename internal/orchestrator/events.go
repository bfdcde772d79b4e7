// Package orchestrator is the calling layer around the decision engine:
// it loads run state, serializes admission per run, persists accepted
// mutations and dispatches notifications.
package orchestrator

import (
	"log"
	"time"
)

// EventType represents the type of orchestrator event.
type EventType string

const (
	// EventRunCreated indicates a new run was created.
	EventRunCreated EventType = "run_created"
	// EventRunStatusChanged indicates a run moved to a new status.
	EventRunStatusChanged EventType = "run_status_changed"
	// EventRunCompleted indicates a run reached completed.
	EventRunCompleted EventType = "run_completed"
	// EventTaskCreated indicates a task was added to a run.
	EventTaskCreated EventType = "task_created"
	// EventTaskStatusChanged indicates a task moved to a new status.
	EventTaskStatusChanged EventType = "task_status_changed"
	// EventTaskUpdated indicates a task's output payload changed.
	EventTaskUpdated EventType = "task_updated"
	// EventRunUpdated indicates a run attribute changed (e.g. the
	// parallel-agent cap).
	EventRunUpdated EventType = "run_updated"
)

// Event is emitted after an accepted mutation. Dispatch is fire and
// forget; it never gates the decision.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// RunID is the run the event belongs to.
	RunID string
	// TaskID is the related task, if applicable.
	TaskID string
	// Message provides additional context about the event.
	Message string
	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Notifier receives events after accepted mutations.
type Notifier interface {
	Notify(e Event)
}

// NopNotifier discards all events.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(Event) {}

// LogNotifier writes events to the standard logger.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(e Event) {
	if e.TaskID != "" {
		log.Printf("[%s] run=%s task=%s %s", e.Type, e.RunID, e.TaskID, e.Message)
		return
	}
	log.Printf("[%s] run=%s %s", e.Type, e.RunID, e.Message)
}
