package engine

import "github.com/coscribe/coscribe/pkg/models"

// Machine-stable rejection reasons for run mutations.
const (
	ReasonUnknownRunStatus   = "unknown-run-status"
	ReasonRunEdgeNotAllowed  = "run-edge-not-allowed"
	ReasonTasksNotDone       = "tasks-not-done"
	ReasonNeedsInputOpen     = "needs-input-open"
	ReasonObjectiveLength    = "objective-length"
	ReasonParallelOutOfRange = "parallel-out-of-range"
	ReasonCapBelowUsage      = "cap-below-usage"
	ReasonCoordinatorUnknown = "coordinator-not-in-workspace"
)

// runTransitions is the closed transition table for run status. Unlike
// task transitions, run edges not listed here are illegal. Terminal
// statuses have no outgoing edges; blocked runs must pass through active
// before completing.
var runTransitions = map[models.RunStatus][]models.RunStatus{
	models.RunStatusActive:    {models.RunStatusBlocked, models.RunStatusCompleted, models.RunStatusCancelled},
	models.RunStatusBlocked:   {models.RunStatusActive, models.RunStatusCancelled},
	models.RunStatusCompleted: {},
	models.RunStatusCancelled: {},
}

// ValidateRunCreate checks the fields of a new run and the coordinator's
// workspace membership.
func ValidateRunCreate(run *models.AgentRun, coordinatorActive bool) error {
	if len(run.Objective) < 1 || len(run.Objective) > models.MaxObjectiveChars {
		return reject(KindValidation, ReasonObjectiveLength)
	}
	if run.MaxParallelAgents < models.MinParallelAgents || run.MaxParallelAgents > models.MaxParallelAgents {
		return reject(KindValidation, ReasonParallelOutOfRange)
	}
	if !coordinatorActive {
		return reject(KindReference, ReasonCoordinatorUnknown)
	}
	return nil
}

// ValidateRunTransition decides whether a run may move to target given its
// current task snapshot. Completion additionally requires every task to be
// done and no open human-input request.
func ValidateRunTransition(run *models.AgentRun, tasks []*models.AgentTask, target models.RunStatus) error {
	if !target.Valid() {
		return reject(KindValidation, ReasonUnknownRunStatus)
	}
	if !runEdgeAllowed(run.Status, target) {
		return reject(KindIllegalRunTransition, ReasonRunEdgeNotAllowed)
	}
	if target == models.RunStatusCompleted {
		if undone := undoneTaskIDs(tasks); len(undone) > 0 {
			return reject(KindIncompleteRun, ReasonTasksNotDone, undone...)
		}
		if open := needsInputTaskIDs(tasks); len(open) > 0 {
			return reject(KindIncompleteRun, ReasonNeedsInputOpen, open...)
		}
	}
	return nil
}

// ValidateMaxParallelUpdate guards lowering the run's parallel-agent cap:
// the new value must stay within range and at or above the current
// in-progress count, so the admission invariant holds retroactively.
func ValidateMaxParallelUpdate(run *models.AgentRun, tasks []*models.AgentTask, newLimit int) error {
	if newLimit < models.MinParallelAgents || newLimit > models.MaxParallelAgents {
		return reject(KindValidation, ReasonParallelOutOfRange)
	}
	var inProgress []string
	for _, t := range tasks {
		if t.Status == models.TaskStatusInProgress {
			inProgress = append(inProgress, t.ID)
		}
	}
	if newLimit < len(inProgress) {
		return reject(KindAdmissionLimit, ReasonCapBelowUsage, inProgress...)
	}
	return nil
}

func runEdgeAllowed(from, to models.RunStatus) bool {
	for _, allowed := range runTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func undoneTaskIDs(tasks []*models.AgentTask) []string {
	var ids []string
	for _, t := range tasks {
		if t.Status != models.TaskStatusDone {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func needsInputTaskIDs(tasks []*models.AgentTask) []string {
	var ids []string
	for _, t := range tasks {
		if t.OutputRef.NeedsInputOpen() {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
