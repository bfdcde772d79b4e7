package engine

import (
	"github.com/coscribe/coscribe/pkg/models"
)

// Machine-stable rejection reasons for task mutations.
const (
	ReasonTitleLength            = "title-length"
	ReasonUnknownTaskType        = "unknown-task-type"
	ReasonUnknownStatus          = "unknown-status"
	ReasonMissingAssignee        = "missing-assignee"
	ReasonAssigneeNotInWorkspace = "assignee-not-in-workspace"
	ReasonUnknownDependency      = "unknown-dependency"
	ReasonScopeConflict          = "scope-conflict"
	ReasonParallelLimitExceeded  = "parallel-limit-exceeded"
	ReasonBlockedReason          = "blocked-reason"
	ReasonDependencyNotDone      = "dependency-not-done"
	ReasonWriteOutputMissing     = "write-output-missing"
)

// ValidateTaskCreate decides whether a new task may be added to a run.
// siblings is the run's current task snapshot; assigneeActive is the
// workspace identity authority's verdict on the task's assignee.
//
// Acceptance requires: well-formed title, type and status; an assignee
// resolving to an active workspace identity; every dependency resolving
// within the run; no write-scope overlap with an open write task; and a
// free in-progress slot when the initial status is in_progress.
func ValidateTaskCreate(run *models.AgentRun, siblings []*models.AgentTask, task *models.AgentTask, assigneeActive bool) error {
	if len(task.Title) < 1 || len(task.Title) > models.MaxTitleChars {
		return reject(KindValidation, ReasonTitleLength)
	}
	if !task.TaskType.Valid() {
		return reject(KindValidation, ReasonUnknownTaskType)
	}
	if !task.Status.Valid() {
		return reject(KindValidation, ReasonUnknownStatus)
	}
	if task.AssignedAgentID == "" {
		return reject(KindValidation, ReasonMissingAssignee)
	}
	if !assigneeActive {
		return reject(KindReference, ReasonAssigneeNotInWorkspace)
	}

	if missing := missingDependencies(task.DependsOn, siblings); len(missing) > 0 {
		return reject(KindReference, ReasonUnknownDependency, missing...)
	}

	if task.TaskType == models.TaskTypeWrite {
		if conflict := findScopeConflict(task, siblings); conflict != "" {
			return reject(KindConflict, ReasonScopeConflict, conflict)
		}
	}

	if task.Status == models.TaskStatusInProgress {
		if countInProgress(siblings, "") >= run.MaxParallelAgents {
			return reject(KindAdmissionLimit, ReasonParallelLimitExceeded)
		}
	}

	return nil
}

// taskGuard validates a single destination status against the run snapshot.
type taskGuard func(run *models.AgentRun, tasks []*models.AgentTask, task *models.AgentTask) error

// taskGuards is keyed by destination status. Statuses without an entry are
// always allowed: the task transition graph is deliberately open, so any
// status may move to any other provided the destination guard passes.
var taskGuards = map[models.TaskStatus]taskGuard{
	models.TaskStatusInProgress: guardInProgress,
	models.TaskStatusBlocked:    guardBlocked,
	models.TaskStatusDone:       guardDone,
}

// ValidateTaskTransition decides whether a task may move to target.
// Re-entering the current status is a no-op and always legal.
func ValidateTaskTransition(run *models.AgentRun, tasks []*models.AgentTask, task *models.AgentTask, target models.TaskStatus) error {
	if !target.Valid() {
		return reject(KindValidation, ReasonUnknownStatus)
	}
	if target == task.Status {
		return nil
	}
	guard, ok := taskGuards[target]
	if !ok {
		return nil
	}
	return guard(run, tasks, task)
}

// guardInProgress enforces the run's parallel-agent cap. The task itself
// is excluded from the count so the guard measures the state after leaving
// its current status.
func guardInProgress(run *models.AgentRun, tasks []*models.AgentTask, task *models.AgentTask) error {
	if countInProgress(tasks, task.ID) >= run.MaxParallelAgents {
		return reject(KindAdmissionLimit, ReasonParallelLimitExceeded)
	}
	return nil
}

// guardBlocked requires a recorded block reason.
func guardBlocked(_ *models.AgentRun, _ []*models.AgentTask, task *models.AgentTask) error {
	if task.OutputRef.BlockReason() == "" {
		return reject(KindGuard, ReasonBlockedReason, task.ID)
	}
	return nil
}

// guardDone requires every dependency to be done, and a write task to
// carry either a branch proposal or an explicit no-change reason.
func guardDone(_ *models.AgentRun, tasks []*models.AgentTask, task *models.AgentTask) error {
	if unmet := UnmetDependencies(task.DependsOn, statusIndex(tasks)); len(unmet) > 0 {
		return reject(KindGuard, ReasonDependencyNotDone, unmet...)
	}
	if task.TaskType == models.TaskTypeWrite {
		if task.OutputRef.BranchID() == "" && task.OutputRef.NoChangeReason() == "" {
			return reject(KindGuard, ReasonWriteOutputMissing, task.ID)
		}
	}
	return nil
}

// countInProgress counts in-progress tasks, excluding excludeID.
func countInProgress(tasks []*models.AgentTask, excludeID string) int {
	n := 0
	for _, t := range tasks {
		if t.ID != excludeID && t.Status == models.TaskStatusInProgress {
			n++
		}
	}
	return n
}

// missingDependencies returns the dependency ids that do not resolve to a
// task in the run.
func missingDependencies(dependsOn []string, siblings []*models.AgentTask) []string {
	known := make(map[string]bool, len(siblings))
	for _, t := range siblings {
		known[t.ID] = true
	}
	var missing []string
	for _, id := range dependsOn {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// findScopeConflict returns the id of an open write task whose numeric
// scope overlaps the candidate's, or "" if none. Only tasks in todo or
// in_progress participate; done and blocked tasks hold no claim.
func findScopeConflict(task *models.AgentTask, siblings []*models.AgentTask) string {
	if !task.DocumentScope.IsNumeric() {
		return ""
	}
	for _, other := range siblings {
		if other.ID == task.ID || other.TaskType != models.TaskTypeWrite {
			continue
		}
		if other.Status != models.TaskStatusTodo && other.Status != models.TaskStatusInProgress {
			continue
		}
		if Overlaps(task.DocumentScope, other.DocumentScope) {
			return other.ID
		}
	}
	return ""
}
