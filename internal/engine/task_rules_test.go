package engine

import (
	"testing"

	"github.com/coscribe/coscribe/pkg/models"
)

func testRun(maxParallel int) *models.AgentRun {
	return &models.AgentRun{
		ID:                "run-1",
		WorkspaceID:       "ws-1",
		DocumentID:        "doc-1",
		Objective:         "draft the quarterly report",
		MaxParallelAgents: maxParallel,
		Status:            models.RunStatusActive,
	}
}

func testTask(id string, status models.TaskStatus) *models.AgentTask {
	return &models.AgentTask{
		ID:              id,
		RunID:           "run-1",
		Title:           "task " + id,
		TaskType:        models.TaskTypeResearch,
		Status:          status,
		AssignedAgentID: "agent-1",
	}
}

func writeTask(id string, status models.TaskStatus, from, to int) *models.AgentTask {
	t := testTask(id, status)
	t.TaskType = models.TaskTypeWrite
	t.DocumentScope = models.NumericScope(from, to)
	return t
}

func TestCreateRejectsMalformedFields(t *testing.T) {
	run := testRun(3)

	bad := testTask("t1", models.TaskStatusTodo)
	bad.Title = ""
	if err := ValidateTaskCreate(run, nil, bad, true); !IsKind(err, KindValidation) {
		t.Errorf("empty title: got %v, want validation error", err)
	}

	bad = testTask("t1", models.TaskStatusTodo)
	bad.TaskType = "edit"
	if err := ValidateTaskCreate(run, nil, bad, true); !IsKind(err, KindValidation) {
		t.Errorf("unknown type: got %v, want validation error", err)
	}

	bad = testTask("t1", models.TaskStatusTodo)
	bad.AssignedAgentID = ""
	if err := ValidateTaskCreate(run, nil, bad, true); !IsKind(err, KindValidation) {
		t.Errorf("missing assignee: got %v, want validation error", err)
	}
}

func TestCreateRejectsInactiveAssignee(t *testing.T) {
	run := testRun(3)
	task := testTask("t1", models.TaskStatusTodo)

	err := ValidateTaskCreate(run, nil, task, false)
	if !IsKind(err, KindReference) {
		t.Errorf("got %v, want reference error", err)
	}
}

func TestCreateRejectsUnknownDependency(t *testing.T) {
	run := testRun(3)
	siblings := []*models.AgentTask{testTask("a", models.TaskStatusDone)}

	task := testTask("t1", models.TaskStatusTodo)
	task.DependsOn = []string{"a", "ghost"}

	err := ValidateTaskCreate(run, siblings, task, true)
	if !IsKind(err, KindReference) {
		t.Fatalf("got %v, want reference error", err)
	}
	var rej *Error
	if ok := asEngineError(err, &rej); !ok || len(rej.TaskIDs) != 1 || rej.TaskIDs[0] != "ghost" {
		t.Errorf("expected offending id [ghost], got %v", rej.TaskIDs)
	}
}

func TestCreateRejectsScopeConflictWithOpenWriteTask(t *testing.T) {
	run := testRun(3)
	siblings := []*models.AgentTask{writeTask("a", models.TaskStatusTodo, 0, 100)}

	candidate := writeTask("b", models.TaskStatusTodo, 50, 150)
	err := ValidateTaskCreate(run, siblings, candidate, true)
	if !IsKind(err, KindConflict) {
		t.Fatalf("got %v, want conflict error", err)
	}
	var rej *Error
	if asEngineError(err, &rej) && (len(rej.TaskIDs) != 1 || rej.TaskIDs[0] != "a") {
		t.Errorf("expected conflicting id [a], got %v", rej.TaskIDs)
	}
}

func TestCreateAllowsScopeOverlapWithDoneWriteTask(t *testing.T) {
	run := testRun(3)
	siblings := []*models.AgentTask{writeTask("a", models.TaskStatusDone, 0, 100)}

	candidate := writeTask("b", models.TaskStatusTodo, 50, 150)
	if err := ValidateTaskCreate(run, siblings, candidate, true); err != nil {
		t.Errorf("done tasks should hold no scope claim, got %v", err)
	}
}

func TestCreateAllowsOpaqueScopes(t *testing.T) {
	run := testRun(3)
	a := testTask("a", models.TaskStatusTodo)
	a.TaskType = models.TaskTypeWrite
	a.DocumentScope = models.OpaqueScope("summary")

	b := testTask("b", models.TaskStatusTodo)
	b.TaskType = models.TaskTypeWrite
	b.DocumentScope = models.OpaqueScope("summary")

	if err := ValidateTaskCreate(run, []*models.AgentTask{a}, b, true); err != nil {
		t.Errorf("opaque scopes never conflict, got %v", err)
	}
}

func TestCreateInProgressRespectsParallelCap(t *testing.T) {
	run := testRun(1)
	siblings := []*models.AgentTask{testTask("a", models.TaskStatusInProgress)}

	task := testTask("t1", models.TaskStatusInProgress)
	err := ValidateTaskCreate(run, siblings, task, true)
	if !IsKind(err, KindAdmissionLimit) {
		t.Errorf("got %v, want admission limit error", err)
	}

	// Creating as todo is fine even when slots are full.
	task = testTask("t1", models.TaskStatusTodo)
	if err := ValidateTaskCreate(run, siblings, task, true); err != nil {
		t.Errorf("todo creation should not consume a slot, got %v", err)
	}
}

func TestTransitionInProgressCap(t *testing.T) {
	run := testRun(2)
	tasks := []*models.AgentTask{
		testTask("a", models.TaskStatusInProgress),
		testTask("b", models.TaskStatusInProgress),
		testTask("c", models.TaskStatusTodo),
	}

	err := ValidateTaskTransition(run, tasks, tasks[2], models.TaskStatusInProgress)
	if !IsKind(err, KindAdmissionLimit) {
		t.Errorf("third in_progress should hit the cap, got %v", err)
	}
}

func TestTransitionInProgressExcludesSelfFromCount(t *testing.T) {
	// A task re-entering in_progress must not count itself toward the cap.
	run := testRun(1)
	tasks := []*models.AgentTask{testTask("a", models.TaskStatusInProgress)}

	if err := ValidateTaskTransition(run, tasks, tasks[0], models.TaskStatusInProgress); err != nil {
		t.Errorf("re-entry should be a no-op, got %v", err)
	}
}

func TestTransitionBlockedRequiresReason(t *testing.T) {
	run := testRun(3)
	task := testTask("a", models.TaskStatusInProgress)
	tasks := []*models.AgentTask{task}

	err := ValidateTaskTransition(run, tasks, task, models.TaskStatusBlocked)
	if !IsKind(err, KindGuard) {
		t.Errorf("got %v, want guard error", err)
	}

	task.OutputRef = models.OutputRef{models.OutputKeyBlockReason: "awaiting legal review"}
	if err := ValidateTaskTransition(run, tasks, task, models.TaskStatusBlocked); err != nil {
		t.Errorf("block with reason should pass, got %v", err)
	}
}

func TestTransitionDoneRequiresDependenciesDone(t *testing.T) {
	run := testRun(3)
	dep := testTask("b", models.TaskStatusInProgress)
	task := testTask("a", models.TaskStatusInProgress)
	task.DependsOn = []string{"b"}
	tasks := []*models.AgentTask{task, dep}

	err := ValidateTaskTransition(run, tasks, task, models.TaskStatusDone)
	if !IsKind(err, KindGuard) {
		t.Fatalf("got %v, want guard error", err)
	}
	var rej *Error
	if asEngineError(err, &rej) && (len(rej.TaskIDs) != 1 || rej.TaskIDs[0] != "b") {
		t.Errorf("expected unmet dependency [b], got %v", rej.TaskIDs)
	}

	dep.Status = models.TaskStatusDone
	if err := ValidateTaskTransition(run, tasks, task, models.TaskStatusDone); err != nil {
		t.Errorf("retry after dependency done should pass, got %v", err)
	}
}

func TestTransitionDoneWriteTaskNeedsOutput(t *testing.T) {
	run := testRun(3)
	task := writeTask("a", models.TaskStatusInProgress, 0, 10)
	tasks := []*models.AgentTask{task}

	err := ValidateTaskTransition(run, tasks, task, models.TaskStatusDone)
	if !IsKind(err, KindGuard) {
		t.Errorf("write task without output: got %v, want guard error", err)
	}

	task.OutputRef = models.OutputRef{models.OutputKeyBranchID: "branch-1"}
	if err := ValidateTaskTransition(run, tasks, task, models.TaskStatusDone); err != nil {
		t.Errorf("branchId should satisfy the write contract, got %v", err)
	}

	task.OutputRef = models.OutputRef{models.OutputKeyNoChangeReason: "section already accurate"}
	if err := ValidateTaskTransition(run, tasks, task, models.TaskStatusDone); err != nil {
		t.Errorf("noChangeReason should satisfy the write contract, got %v", err)
	}
}

func TestTransitionGraphIsOpen(t *testing.T) {
	// Guards apply only to specific destinations; everything else is legal,
	// including done -> todo.
	run := testRun(3)
	task := testTask("a", models.TaskStatusDone)
	tasks := []*models.AgentTask{task}

	if err := ValidateTaskTransition(run, tasks, task, models.TaskStatusTodo); err != nil {
		t.Errorf("done -> todo should be allowed, got %v", err)
	}
}

func TestTransitionSameStatusIsNoOp(t *testing.T) {
	// Re-entering the current status skips all guards, even ones that
	// would otherwise fail.
	run := testRun(3)
	task := testTask("a", models.TaskStatusBlocked)
	tasks := []*models.AgentTask{task}

	if err := ValidateTaskTransition(run, tasks, task, models.TaskStatusBlocked); err != nil {
		t.Errorf("same-status transition should be a no-op, got %v", err)
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	run := testRun(3)
	task := testTask("a", models.TaskStatusTodo)

	err := ValidateTaskTransition(run, []*models.AgentTask{task}, task, "paused")
	if !IsKind(err, KindValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}
