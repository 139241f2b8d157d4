package store

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	StorageType string         `json:"storage_type"`
	Bindings    map[string]int `json:"bindings"` // key -> subscriber count
	Watchers    int            `json:"watchers"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.Lock()
	bindings := make(map[string]int, len(s.bindings))
	for k, b := range s.bindings {
		bindings[k] = b.subscriberCount()
	}
	s.mu.Unlock()

	storageType := "storage"
	if comp, ok := s.storage.(introspection.Component); ok {
		storageType = comp.ComponentType()
	}

	return StoreState{
		StorageType: storageType,
		Bindings:    bindings,
		Watchers:    s.broker.count(),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
