// Package identity resolves agent identities against their workspace.
// The in-memory registry stands in for the platform's identity service;
// the orchestrator only consumes the boolean answer.
package identity

import "sync"

// Registry tracks which agent identities are active in each workspace.
type Registry struct {
	// agents maps workspace id to the set of agent ids and their active flag.
	agents map[string]map[string]bool
	mu     sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[string]map[string]bool)}
}

// AddAgent registers an agent as an active member of a workspace.
func (r *Registry) AddAgent(workspaceID, agentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.agents[workspaceID] == nil {
		r.agents[workspaceID] = make(map[string]bool)
	}
	r.agents[workspaceID][agentID] = true
}

// DeactivateAgent marks an agent inactive without removing its record.
func (r *Registry) DeactivateAgent(workspaceID, agentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ws, ok := r.agents[workspaceID]; ok {
		if _, known := ws[agentID]; known {
			ws[agentID] = false
		}
	}
}

// IsActiveAgent reports whether agentID is an active identity in the
// workspace.
func (r *Registry) IsActiveAgent(workspaceID, agentID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.agents[workspaceID][agentID]
}
