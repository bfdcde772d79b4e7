package models

import "time"

// WorkspaceAgent is an agent identity registered in a workspace. Only
// active agents can coordinate runs or be assigned tasks there.
type WorkspaceAgent struct {
	// WorkspaceID is the workspace the agent belongs to.
	WorkspaceID string `json:"workspaceId"`
	// AgentID is the agent's identifier.
	AgentID string `json:"agentId"`
	// Active reports whether the identity is currently usable.
	Active bool `json:"active"`
	// CreatedAt is when the agent was registered.
	CreatedAt time.Time `json:"createdAt"`
}
