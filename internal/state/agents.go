package state

import (
	"fmt"
	"time"

	"github.com/coscribe/coscribe/pkg/models"
)

// UpsertAgent registers an agent in a workspace or updates its active
// flag.
func (db *DB) UpsertAgent(workspaceID, agentID string, active bool) error {
	_, err := db.Exec(`
		INSERT INTO agents (workspace_id, agent_id, active, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (workspace_id, agent_id) DO UPDATE SET active = excluded.active`,
		workspaceID, agentID, active, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("upsert agent: %w", err)
	}
	return nil
}

// IsActiveAgent reports whether the agent is registered and active in
// the workspace. Lookup failures read as inactive; the caller rejects
// the mutation either way.
func (db *DB) IsActiveAgent(workspaceID, agentID string) bool {
	var active bool
	row := db.QueryRow(
		"SELECT active FROM agents WHERE workspace_id = ? AND agent_id = ?",
		workspaceID, agentID,
	)
	if err := row.Scan(&active); err != nil {
		return false
	}
	return active
}

// ListAgentsByWorkspace returns the agents registered in a workspace.
func (db *DB) ListAgentsByWorkspace(workspaceID string) ([]*models.WorkspaceAgent, error) {
	rows, err := db.Query(`
		SELECT workspace_id, agent_id, active, created_at
		FROM agents WHERE workspace_id = ? ORDER BY agent_id`,
		workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var agents []*models.WorkspaceAgent
	for rows.Next() {
		a := &models.WorkspaceAgent{}
		var createdAt string
		if err := rows.Scan(&a.WorkspaceID, &a.AgentID, &a.Active, &createdAt); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse agent created_at: %w", err)
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}
