package models

import "time"

// RunStatus represents the current state of an agent run.
type RunStatus string

const (
	// RunStatusActive indicates the run is accepting and executing tasks.
	RunStatusActive RunStatus = "active"
	// RunStatusBlocked indicates the run is paused pending outside input.
	RunStatusBlocked RunStatus = "blocked"
	// RunStatusCompleted indicates every task finished. Terminal.
	RunStatusCompleted RunStatus = "completed"
	// RunStatusCancelled indicates the run was abandoned. Terminal.
	RunStatusCancelled RunStatus = "cancelled"
)

// Valid returns true if the status is a known value.
func (s RunStatus) Valid() bool {
	switch s {
	case RunStatusActive, RunStatusBlocked, RunStatusCompleted, RunStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal returns true if the status has no outgoing transitions.
func (s RunStatus) Terminal() bool {
	return s == RunStatusCompleted || s == RunStatusCancelled
}

// Field limits for runs.
const (
	// MaxObjectiveChars is the maximum length of a run objective.
	MaxObjectiveChars = 5000
	// MinParallelAgents is the lowest allowed max_parallel_agents value.
	MinParallelAgents = 1
	// MaxParallelAgents is the highest allowed max_parallel_agents value.
	MaxParallelAgents = 10
)

// AgentRun is a coordinated multi-agent effort toward one objective on one
// document. Runs are created active and only change status through the run
// state machine; they are never physically deleted.
type AgentRun struct {
	// ID is the unique identifier for this run.
	ID string `json:"id"`
	// WorkspaceID is the workspace the run belongs to.
	WorkspaceID string `json:"workspace_id"`
	// DocumentID is the single document this run operates on.
	DocumentID string `json:"document_id"`
	// CoordinatorAgentID is the agent responsible for decomposing work.
	CoordinatorAgentID string `json:"coordinator_agent_id"`
	// Objective is the free-text goal of the run (1-5000 characters).
	Objective string `json:"objective"`
	// Constraints is opaque structured data passed through untouched.
	Constraints map[string]any `json:"constraints,omitempty"`
	// MaxParallelAgents caps how many tasks may be in_progress at once (1-10).
	MaxParallelAgents int `json:"max_parallel_agents"`
	// Status is the current state of the run.
	Status RunStatus `json:"status"`
	// CreatedAt is when the run was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the run was last mutated.
	UpdatedAt time.Time `json:"updated_at"`
}
