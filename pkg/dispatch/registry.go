package dispatch

import (
	"fmt"
	"sort"
	"sync"

	"compliance_tui/pkg/config"
)

// ResponderType identifies a registered responder implementation.
type ResponderType string

const (
	ResponderMock   ResponderType = config.ResponderMock
	ResponderHTTP   ResponderType = config.ResponderHTTP
	ResponderOpenAI ResponderType = config.ResponderOpenAI
	ResponderGoogle ResponderType = config.ResponderGoogle
)

// ResponderFactory creates a Responder from config.
type ResponderFactory func(cfg config.Config) (Responder, error)

// ResponderInfo describes a registered responder.
type ResponderInfo struct {
	Type        ResponderType
	Name        string
	Description string
	RequiresKey bool
}

// Registry manages responder factories and instantiation.
type Registry struct {
	mu        sync.RWMutex
	factories map[ResponderType]ResponderFactory
	info      map[ResponderType]ResponderInfo
}

// NewRegistry creates a new responder registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[ResponderType]ResponderFactory),
		info:      make(map[ResponderType]ResponderInfo),
	}
}

// Register adds a responder factory to the registry.
func (r *Registry) Register(info ResponderInfo, factory ResponderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[info.Type] = factory
	r.info[info.Type] = info
}

// New creates the responder registered under t.
func (r *Registry) New(t ResponderType, cfg config.Config) (Responder, ResponderInfo, error) {
	r.mu.RLock()
	factory, ok := r.factories[t]
	info := r.info[t]
	r.mu.RUnlock()

	if !ok {
		return nil, ResponderInfo{}, fmt.Errorf("unknown responder type: %s", t)
	}

	responder, err := factory(cfg)
	if err != nil {
		return nil, ResponderInfo{}, fmt.Errorf("create %s responder: %w", t, err)
	}
	return responder, info, nil
}

// List returns information about all registered responders, sorted by type.
func (r *Registry) List() []ResponderInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ResponderInfo, 0, len(r.info))
	for _, info := range r.info {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Info returns information about a specific responder.
func (r *Registry) Info(t ResponderType) (ResponderInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.info[t]
	return info, ok
}

// IsRegistered checks if a responder type is registered.
func (r *Registry) IsRegistered(t ResponderType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[t]
	return ok
}

// DefaultRegistry is the global responder registry.
var DefaultRegistry = NewRegistry()

// RegisterResponder registers a responder with the default registry.
func RegisterResponder(info ResponderInfo, factory ResponderFactory) {
	DefaultRegistry.Register(info, factory)
}

// ListResponders returns all responders from the default registry.
func ListResponders() []ResponderInfo {
	return DefaultRegistry.List()
}
