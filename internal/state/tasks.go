package state

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/coscribe/coscribe/pkg/models"
)

const taskColumns = `seq, id, run_id, title, task_type, status, assigned_agent_id,
	depends_on, document_scope, acceptance_criteria, output_ref, created_at, updated_at`

// CreateTask inserts a new task and assigns its creation-order sequence
// number back onto t.Seq.
func (db *DB) CreateTask(t *models.AgentTask) error {
	dependsOn, err := encodeJSON(t.DependsOn)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	scope, err := encodeJSON(t.DocumentScope)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	criteria, err := encodeJSON(t.AcceptanceCriteria)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	output, err := encodeJSON(t.OutputRef)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	res, err := db.Exec(`
		INSERT INTO tasks (id, run_id, title, task_type, status, assigned_agent_id,
			depends_on, document_scope, acceptance_criteria, output_ref, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.RunID, t.Title, string(t.TaskType), string(t.Status), t.AssignedAgentID,
		dependsOn, scope, criteria, output, formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	t.Seq = seq
	return nil
}

// GetTask retrieves a task by id. Returns ErrTaskNotFound if no row exists.
func (db *DB) GetTask(id string) (*models.AgentTask, error) {
	row := db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	task, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// UpdateTask updates a task's mutable fields.
func (db *DB) UpdateTask(t *models.AgentTask) error {
	dependsOn, err := encodeJSON(t.DependsOn)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	scope, err := encodeJSON(t.DocumentScope)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	criteria, err := encodeJSON(t.AcceptanceCriteria)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	output, err := encodeJSON(t.OutputRef)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	res, err := db.Exec(`
		UPDATE tasks SET title = ?, task_type = ?, status = ?, assigned_agent_id = ?,
			depends_on = ?, document_scope = ?, acceptance_criteria = ?, output_ref = ?, updated_at = ?
		WHERE id = ?
	`, t.Title, string(t.TaskType), string(t.Status), t.AssignedAgentID,
		dependsOn, scope, criteria, output, formatTime(t.UpdatedAt), t.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ListTasksByRun retrieves all tasks for a run in creation order.
func (db *DB) ListTasksByRun(runID string) ([]*models.AgentTask, error) {
	rows, err := db.Query(`SELECT `+taskColumns+` FROM tasks WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.AgentTask
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// ListTasksByIDs retrieves the tasks for an id set, in creation order.
// Unknown ids are silently absent from the result.
func (db *DB) ListTasksByIDs(ids []string) ([]*models.AgentTask, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.Query(`SELECT `+taskColumns+` FROM tasks WHERE id IN (`+placeholders+`) ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks by ids: %w", err)
	}
	defer rows.Close()

	var tasks []*models.AgentTask
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list tasks by ids: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// scanTask reads one task row through the given scan function.
func scanTask(scan func(dest ...any) error) (*models.AgentTask, error) {
	var t models.AgentTask
	var dependsOn, scope, criteria, output sql.NullString
	var createdAt, updatedAt string

	err := scan(&t.Seq, &t.ID, &t.RunID, &t.Title, &t.TaskType, &t.Status, &t.AssignedAgentID,
		&dependsOn, &scope, &criteria, &output, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := decodeJSON(dependsOn, &t.DependsOn); err != nil {
		return nil, err
	}
	if err := decodeJSON(scope, &t.DocumentScope); err != nil {
		return nil, err
	}
	if err := decodeJSON(criteria, &t.AcceptanceCriteria); err != nil {
		return nil, err
	}
	if err := decodeJSON(output, &t.OutputRef); err != nil {
		return nil, err
	}
	t.CreatedAt, _ = parseTime(createdAt)
	t.UpdatedAt, _ = parseTime(updatedAt)
	return &t, nil
}
