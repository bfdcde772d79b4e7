package identity

import "testing"

func TestRegistryMembership(t *testing.T) {
	r := NewRegistry()
	r.AddAgent("ws-1", "agent-1")

	if !r.IsActiveAgent("ws-1", "agent-1") {
		t.Error("expected agent-1 active in ws-1")
	}
	if r.IsActiveAgent("ws-2", "agent-1") {
		t.Error("membership must be scoped to the workspace")
	}
	if r.IsActiveAgent("ws-1", "agent-2") {
		t.Error("unknown agent should be inactive")
	}
}

func TestRegistryDeactivate(t *testing.T) {
	r := NewRegistry()
	r.AddAgent("ws-1", "agent-1")
	r.DeactivateAgent("ws-1", "agent-1")

	if r.IsActiveAgent("ws-1", "agent-1") {
		t.Error("deactivated agent should not resolve as active")
	}

	// Deactivating unknown entries must not panic or create records.
	r.DeactivateAgent("ws-9", "ghost")
	if r.IsActiveAgent("ws-9", "ghost") {
		t.Error("ghost should not be active")
	}
}
