package state

import (
	"database/sql"
	"fmt"

	"github.com/coscribe/coscribe/pkg/models"
)

// CreateRun inserts a new run.
func (db *DB) CreateRun(r *models.AgentRun) error {
	constraints, err := encodeJSON(r.Constraints)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO runs (id, workspace_id, document_id, coordinator_agent_id, objective,
			constraints, max_parallel_agents, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.WorkspaceID, r.DocumentID, r.CoordinatorAgentID, r.Objective,
		constraints, r.MaxParallelAgents, string(r.Status), formatTime(r.CreatedAt), formatTime(r.UpdatedAt))
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by id. Returns ErrRunNotFound if no row exists.
func (db *DB) GetRun(id string) (*models.AgentRun, error) {
	row := db.QueryRow(`
		SELECT id, workspace_id, document_id, coordinator_agent_id, objective,
			constraints, max_parallel_agents, status, created_at, updated_at
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// UpdateRun updates a run's mutable fields.
func (db *DB) UpdateRun(r *models.AgentRun) error {
	constraints, err := encodeJSON(r.Constraints)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	res, err := db.Exec(`
		UPDATE runs SET objective = ?, constraints = ?, max_parallel_agents = ?,
			status = ?, updated_at = ?
		WHERE id = ?
	`, r.Objective, constraints, r.MaxParallelAgents, string(r.Status), formatTime(r.UpdatedAt), r.ID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRunNotFound
	}
	return nil
}

// ListRunsByWorkspace retrieves all runs in a workspace, newest first.
func (db *DB) ListRunsByWorkspace(workspaceID string) ([]*models.AgentRun, error) {
	rows, err := db.Query(`
		SELECT id, workspace_id, document_id, coordinator_agent_id, objective,
			constraints, max_parallel_agents, status, created_at, updated_at
		FROM runs WHERE workspace_id = ? ORDER BY created_at DESC
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.AgentRun
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// scanRun reads one run row through the given scan function.
func scanRun(scan func(dest ...any) error) (*models.AgentRun, error) {
	var r models.AgentRun
	var constraints sql.NullString
	var createdAt, updatedAt string

	err := scan(&r.ID, &r.WorkspaceID, &r.DocumentID, &r.CoordinatorAgentID, &r.Objective,
		&constraints, &r.MaxParallelAgents, &r.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := decodeJSON(constraints, &r.Constraints); err != nil {
		return nil, err
	}
	r.CreatedAt, _ = parseTime(createdAt)
	r.UpdatedAt, _ = parseTime(updatedAt)
	return &r, nil
}
