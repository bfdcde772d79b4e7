package state

import "testing"

func TestAgentRegistration(t *testing.T) {
	db := openTestDB(t)

	if db.IsActiveAgent("ws-1", "agent-1") {
		t.Error("unregistered agent should be inactive")
	}

	if err := db.UpsertAgent("ws-1", "agent-1", true); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !db.IsActiveAgent("ws-1", "agent-1") {
		t.Error("registered agent should be active")
	}
	if db.IsActiveAgent("ws-2", "agent-1") {
		t.Error("membership is scoped to the workspace")
	}

	// Deactivate via upsert of the same key.
	if err := db.UpsertAgent("ws-1", "agent-1", false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if db.IsActiveAgent("ws-1", "agent-1") {
		t.Error("deactivated agent should be inactive")
	}
}

func TestListAgentsByWorkspace(t *testing.T) {
	db := openTestDB(t)

	for _, id := range []string{"writer", "editor"} {
		if err := db.UpsertAgent("ws-1", id, true); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}
	if err := db.UpsertAgent("ws-2", "outsider", true); err != nil {
		t.Fatalf("upsert outsider: %v", err)
	}

	agents, err := db.ListAgentsByWorkspace("ws-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("len = %d, want 2", len(agents))
	}
	if agents[0].AgentID != "editor" || agents[1].AgentID != "writer" {
		t.Errorf("order = %s, %s; want editor, writer", agents[0].AgentID, agents[1].AgentID)
	}
	if agents[0].CreatedAt.IsZero() {
		t.Error("created_at should be recorded")
	}
}
