package engine

import "github.com/coscribe/coscribe/pkg/models"

// Engine is the orchestration facade consumed by the calling layer. Each
// method is a pure decision over the snapshot passed in: it returns nil to
// accept the mutation or an *Error describing the rejection. The engine
// holds no state and provides no mutual exclusion; callers must serialize
// the read-validate-commit sequence per run (see orchestrator.Service).
type Engine struct{}

// New creates the orchestration engine.
func New() *Engine {
	return &Engine{}
}

// CanCreateRun decides whether a new run is well-formed.
func (e *Engine) CanCreateRun(run *models.AgentRun, coordinatorActive bool) error {
	return ValidateRunCreate(run, coordinatorActive)
}

// CanCreateTask decides whether task may be added to run given its current
// sibling tasks.
func (e *Engine) CanCreateTask(run *models.AgentRun, siblings []*models.AgentTask, task *models.AgentTask, assigneeActive bool) error {
	return ValidateTaskCreate(run, siblings, task, assigneeActive)
}

// CanTransitionTask decides whether task may move to target.
func (e *Engine) CanTransitionTask(run *models.AgentRun, tasks []*models.AgentTask, task *models.AgentTask, target models.TaskStatus) error {
	return ValidateTaskTransition(run, tasks, task, target)
}

// CanTransitionRun decides whether run may move to target.
func (e *Engine) CanTransitionRun(run *models.AgentRun, tasks []*models.AgentTask, target models.RunStatus) error {
	return ValidateRunTransition(run, tasks, target)
}

// CanSetMaxParallelAgents decides whether the run's parallel cap may be
// changed to newLimit.
func (e *Engine) CanSetMaxParallelAgents(run *models.AgentRun, tasks []*models.AgentTask, newLimit int) error {
	return ValidateMaxParallelUpdate(run, tasks, newLimit)
}

// Board produces the monitoring projection for a run.
func (e *Engine) Board(run *models.AgentRun, tasks []*models.AgentTask) *Board {
	return BuildBoard(run, tasks)
}
