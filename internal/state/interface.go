// Package state provides SQLite-based persistence for runs and tasks.
package state

import (
	"io"

	"github.com/coscribe/coscribe/pkg/models"
)

// RunStore handles run persistence operations.
type RunStore interface {
	CreateRun(r *models.AgentRun) error
	GetRun(id string) (*models.AgentRun, error)
	UpdateRun(r *models.AgentRun) error
	ListRunsByWorkspace(workspaceID string) ([]*models.AgentRun, error)
}

// TaskStore handles task persistence operations.
type TaskStore interface {
	CreateTask(t *models.AgentTask) error
	GetTask(id string) (*models.AgentTask, error)
	UpdateTask(t *models.AgentTask) error
	ListTasksByRun(runID string) ([]*models.AgentTask, error)
	ListTasksByIDs(ids []string) ([]*models.AgentTask, error)
}

// AgentStore handles workspace agent registration.
type AgentStore interface {
	UpsertAgent(workspaceID, agentID string, active bool) error
	IsActiveAgent(workspaceID, agentID string) bool
	ListAgentsByWorkspace(workspaceID string) ([]*models.WorkspaceAgent, error)
}

// Migrator handles database schema migrations.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// StateStore is the persistence boundary the orchestrator works against.
// It composes focused sub-interfaces so callers can depend on only what
// they use.
type StateStore interface {
	io.Closer
	Migrator
	RunStore
	TaskStore
	AgentStore
}

// Compile-time verification that DB implements all interfaces.
var (
	_ StateStore = (*DB)(nil)
	_ Migrator   = (*DB)(nil)
	_ RunStore   = (*DB)(nil)
	_ TaskStore  = (*DB)(nil)
	_ AgentStore = (*DB)(nil)
)
