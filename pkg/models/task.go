// Package models defines the shared value types for agent runs and tasks.
package models

import "time"

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	// TaskStatusTodo indicates the task has not started.
	TaskStatusTodo TaskStatus = "todo"
	// TaskStatusInProgress indicates an agent is working on the task.
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusBlocked indicates the task cannot proceed.
	TaskStatusBlocked TaskStatus = "blocked"
	// TaskStatusDone indicates the task completed.
	TaskStatusDone TaskStatus = "done"
)

// Valid returns true if the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone:
		return true
	default:
		return false
	}
}

// TaskType categorizes the work a task performs on the document.
type TaskType string

const (
	// TaskTypeResearch gathers material without editing the document.
	TaskTypeResearch TaskType = "research"
	// TaskTypeWrite edits a region of the document.
	TaskTypeWrite TaskType = "write"
	// TaskTypeReview evaluates work produced by other tasks.
	TaskTypeReview TaskType = "review"
	// TaskTypeQA checks the document against acceptance criteria.
	TaskTypeQA TaskType = "qa"
	// TaskTypeSynthesis combines outputs from earlier tasks.
	TaskTypeSynthesis TaskType = "synthesis"
)

// Valid returns true if the task type is a known value.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeResearch, TaskTypeWrite, TaskTypeReview, TaskTypeQA, TaskTypeSynthesis:
		return true
	default:
		return false
	}
}

// MaxTitleChars is the maximum length of a task title.
const MaxTitleChars = 500

// AgentTask is a unit of work within a run, assigned to one agent.
type AgentTask struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`
	// RunID is the run this task belongs to.
	RunID string `json:"run_id"`
	// Title is the short description of the task (1-500 characters).
	Title string `json:"title"`
	// TaskType categorizes the work.
	TaskType TaskType `json:"task_type"`
	// Status is the current state of the task.
	Status TaskStatus `json:"status"`
	// AssignedAgentID is the agent working on this task. It must resolve to
	// an active identity in the run's workspace.
	AssignedAgentID string `json:"assigned_agent_id"`
	// DependsOn lists task IDs in the same run that must be done before
	// this task may complete. Order is irrelevant; duplicates collapse.
	DependsOn []string `json:"depends_on,omitempty"`
	// DocumentScope is the document region this task intends to modify.
	DocumentScope *DocumentScope `json:"document_scope,omitempty"`
	// AcceptanceCriteria is an ordered list of completion criteria.
	AcceptanceCriteria []string `json:"acceptance_criteria,omitempty"`
	// OutputRef carries the task's opaque output payload.
	OutputRef OutputRef `json:"output_ref,omitempty"`
	// Seq is the creation-order sequence number within the store.
	Seq int64 `json:"seq"`
	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the task was last mutated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeDependsOn collapses duplicate dependency IDs, preserving first
// occurrence order. Empty IDs are dropped.
func NormalizeDependsOn(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
