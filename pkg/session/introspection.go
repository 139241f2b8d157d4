package session

import "github.com/aretw0/introspection"

// ManagerState exposes the session for observability.
type ManagerState struct {
	Loading       bool   `json:"loading"`
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Provider      string `json:"provider,omitempty"`
	Pending       int    `json:"pending"`
}

// State implements introspection.Introspectable.
func (m *Manager) State() any {
	s, ok := m.Current()
	m.mu.Lock()
	pending := len(m.pending)
	m.mu.Unlock()
	return ManagerState{
		Loading:       m.Loading(),
		Authenticated: ok,
		Email:         s.Email,
		Provider:      s.Provider,
		Pending:       pending,
	}
}

// ComponentType implements introspection.Component.
func (m *Manager) ComponentType() string {
	return "session"
}

var _ introspection.Introspectable = (*Manager)(nil)
var _ introspection.Component = (*Manager)(nil)
