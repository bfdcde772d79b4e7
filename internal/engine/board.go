package engine

import (
	"sort"

	"github.com/coscribe/coscribe/pkg/models"
)

// Board is a read-only projection of a run's tasks for the monitoring
// view. Building a board cannot fail: malformed input is treated
// permissively and tasks with unknown statuses are omitted from columns.
type Board struct {
	// RunID is the run this board describes.
	RunID string
	// Columns groups the run's tasks by status in creation order.
	Columns Columns
	// Readiness summarizes how close the run is to completion.
	Readiness Readiness
}

// Columns holds the four status groups, each in creation order.
type Columns struct {
	Todo       []*models.AgentTask
	InProgress []*models.AgentTask
	Blocked    []*models.AgentTask
	Done       []*models.AgentTask
}

// Readiness carries the aggregate completion signals for a run.
type Readiness struct {
	// UnresolvedNeedsInput counts tasks with an open human-input request.
	UnresolvedNeedsInput int
	// OpenBranchProposals counts tasks carrying a branch proposal.
	OpenBranchProposals int
	// TasksRemaining counts tasks not yet done.
	TasksRemaining int
}

// BuildBoard groups a run's tasks by status and computes readiness
// signals.
func BuildBoard(run *models.AgentRun, tasks []*models.AgentTask) *Board {
	ordered := make([]*models.AgentTask, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seq < ordered[j].Seq
	})

	board := &Board{RunID: run.ID}
	for _, t := range ordered {
		switch t.Status {
		case models.TaskStatusTodo:
			board.Columns.Todo = append(board.Columns.Todo, t)
		case models.TaskStatusInProgress:
			board.Columns.InProgress = append(board.Columns.InProgress, t)
		case models.TaskStatusBlocked:
			board.Columns.Blocked = append(board.Columns.Blocked, t)
		case models.TaskStatusDone:
			board.Columns.Done = append(board.Columns.Done, t)
		}

		if t.OutputRef.NeedsInputOpen() {
			board.Readiness.UnresolvedNeedsInput++
		}
		if t.OutputRef.BranchID() != "" {
			board.Readiness.OpenBranchProposals++
		}
		if t.Status != models.TaskStatusDone {
			board.Readiness.TasksRemaining++
		}
	}
	return board
}
