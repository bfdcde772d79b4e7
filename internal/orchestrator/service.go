package orchestrator

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coscribe/coscribe/internal/engine"
	"github.com/coscribe/coscribe/internal/state"
	"github.com/coscribe/coscribe/pkg/models"
)

// Identity resolves whether an agent id is an active identity in a
// workspace. The engine treats this as a boolean input; the platform's
// identity service sits behind it.
type Identity interface {
	IsActiveAgent(workspaceID, agentID string) bool
}

// Service coordinates run and task mutations: it loads the current
// snapshot, asks the engine whether the mutation is legal, persists
// accepted mutations and dispatches notifications. All admission
// decisions for a run are serialized behind a per-run mutex.
type Service struct {
	store    state.StateStore
	identity Identity
	notifier Notifier
	engine   *engine.Engine
	locks    *runLocks
}

// New creates a Service. A nil notifier discards events.
func New(store state.StateStore, identity Identity, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		store:    store,
		identity: identity,
		notifier: notifier,
		engine:   engine.New(),
		locks:    newRunLocks(),
	}
}

// CreateRunParams are the caller-supplied fields for a new run.
type CreateRunParams struct {
	WorkspaceID        string
	DocumentID         string
	CoordinatorAgentID string
	Objective          string
	Constraints        map[string]any
	MaxParallelAgents  int
}

// CreateRun validates and persists a new run. Runs are created active.
func (s *Service) CreateRun(p CreateRunParams) (*models.AgentRun, error) {
	now := time.Now()
	run := &models.AgentRun{
		ID:                 uuid.New().String(),
		WorkspaceID:        p.WorkspaceID,
		DocumentID:         p.DocumentID,
		CoordinatorAgentID: p.CoordinatorAgentID,
		Objective:          p.Objective,
		Constraints:        p.Constraints,
		MaxParallelAgents:  p.MaxParallelAgents,
		Status:             models.RunStatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	coordinatorActive := s.identity.IsActiveAgent(p.WorkspaceID, p.CoordinatorAgentID)
	if err := s.engine.CanCreateRun(run, coordinatorActive); err != nil {
		return nil, err
	}

	if err := s.store.CreateRun(run); err != nil {
		return nil, fmt.Errorf("persist run: %w", err)
	}

	s.notify(Event{Type: EventRunCreated, RunID: run.ID, Message: run.Objective})
	return run, nil
}

// GetRun loads a run by id.
func (s *Service) GetRun(runID string) (*models.AgentRun, error) {
	return s.store.GetRun(runID)
}

// CreateTaskParams are the caller-supplied fields for a new task.
type CreateTaskParams struct {
	RunID              string
	Title              string
	TaskType           models.TaskType
	Status             models.TaskStatus
	AssignedAgentID    string
	DependsOn          []string
	DocumentScope      *models.DocumentScope
	AcceptanceCriteria []string
	OutputRef          models.OutputRef
}

// CreateTask validates and persists a new task within a run. An empty
// Status means todo.
func (s *Service) CreateTask(p CreateTaskParams) (*models.AgentTask, error) {
	lock := s.locks.get(p.RunID)
	lock.Lock()
	defer lock.Unlock()

	run, err := s.store.GetRun(p.RunID)
	if err != nil {
		return nil, err
	}
	siblings, err := s.store.ListTasksByRun(p.RunID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	status := p.Status
	if status == "" {
		status = models.TaskStatusTodo
	}

	now := time.Now()
	task := &models.AgentTask{
		ID:                 uuid.New().String(),
		RunID:              p.RunID,
		Title:              p.Title,
		TaskType:           p.TaskType,
		Status:             status,
		AssignedAgentID:    p.AssignedAgentID,
		DependsOn:          models.NormalizeDependsOn(p.DependsOn),
		DocumentScope:      p.DocumentScope,
		AcceptanceCriteria: p.AcceptanceCriteria,
		OutputRef:          p.OutputRef,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	assigneeActive := s.identity.IsActiveAgent(run.WorkspaceID, p.AssignedAgentID)
	if err := s.engine.CanCreateTask(run, siblings, task, assigneeActive); err != nil {
		return nil, err
	}

	if err := s.store.CreateTask(task); err != nil {
		return nil, fmt.Errorf("persist task: %w", err)
	}

	s.notify(Event{Type: EventTaskCreated, RunID: run.ID, TaskID: task.ID, Message: task.Title})
	return task, nil
}

// TransitionTask moves a task to the target status. Re-entering the
// current status is a no-op: it is accepted without a write or an event.
func (s *Service) TransitionTask(taskID string, target models.TaskStatus) (*models.AgentTask, error) {
	// The run id is needed to pick the lock; the snapshot is reloaded
	// under the lock.
	peek, err := s.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(peek.RunID)
	lock.Lock()
	defer lock.Unlock()

	run, err := s.store.GetRun(peek.RunID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasksByRun(peek.RunID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	task := findTask(tasks, taskID)
	if task == nil {
		return nil, state.ErrTaskNotFound
	}

	if err := s.engine.CanTransitionTask(run, tasks, task, target); err != nil {
		return nil, err
	}

	if task.Status == target {
		return task, nil
	}

	task.Status = target
	task.UpdatedAt = time.Now()
	if err := s.store.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("persist task: %w", err)
	}

	s.notify(Event{
		Type:    EventTaskStatusChanged,
		RunID:   run.ID,
		TaskID:  task.ID,
		Message: string(target),
	})
	return task, nil
}

// UpdateTaskOutput merges patch into the task's output payload. The
// payload is opaque to the engine, so there is no guard; guards read the
// conventional keys on the next transition attempt.
func (s *Service) UpdateTaskOutput(taskID string, patch models.OutputRef) (*models.AgentTask, error) {
	peek, err := s.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(peek.RunID)
	lock.Lock()
	defer lock.Unlock()

	task, err := s.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	task.OutputRef = task.OutputRef.Merge(patch)
	task.UpdatedAt = time.Now()
	if err := s.store.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("persist task: %w", err)
	}

	s.notify(Event{Type: EventTaskUpdated, RunID: task.RunID, TaskID: task.ID})
	return task, nil
}

// TransitionRun moves a run to the target status.
func (s *Service) TransitionRun(runID string, target models.RunStatus) (*models.AgentRun, error) {
	lock := s.locks.get(runID)
	lock.Lock()
	defer lock.Unlock()

	run, err := s.store.GetRun(runID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasksByRun(runID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	if err := s.engine.CanTransitionRun(run, tasks, target); err != nil {
		return nil, err
	}

	run.Status = target
	run.UpdatedAt = time.Now()
	if err := s.store.UpdateRun(run); err != nil {
		return nil, fmt.Errorf("persist run: %w", err)
	}

	eventType := EventRunStatusChanged
	if target == models.RunStatusCompleted {
		eventType = EventRunCompleted
	}
	s.notify(Event{Type: eventType, RunID: run.ID, Message: string(target)})
	return run, nil
}

// SetMaxParallelAgents changes the run's parallel-agent cap. Lowering the
// cap below the current in-progress count is rejected so the admission
// invariant keeps holding.
func (s *Service) SetMaxParallelAgents(runID string, newLimit int) (*models.AgentRun, error) {
	lock := s.locks.get(runID)
	lock.Lock()
	defer lock.Unlock()

	run, err := s.store.GetRun(runID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasksByRun(runID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	if err := s.engine.CanSetMaxParallelAgents(run, tasks, newLimit); err != nil {
		return nil, err
	}

	run.MaxParallelAgents = newLimit
	run.UpdatedAt = time.Now()
	if err := s.store.UpdateRun(run); err != nil {
		return nil, fmt.Errorf("persist run: %w", err)
	}

	s.notify(Event{Type: EventRunUpdated, RunID: run.ID, Message: fmt.Sprintf("max_parallel_agents=%d", newLimit)})
	return run, nil
}

// Board builds the monitoring projection for a run.
func (s *Service) Board(runID string) (*engine.Board, error) {
	run, err := s.store.GetRun(runID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasksByRun(runID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return s.engine.Board(run, tasks), nil
}

func (s *Service) notify(e Event) {
	e.Timestamp = time.Now()
	s.notifier.Notify(e)
}

func findTask(tasks []*models.AgentTask, id string) *models.AgentTask {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
