// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package host

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

var (
	// ErrDuplicate is returned when a group/name pair is registered twice.
	ErrDuplicate = errors.New("interpreter already registered")
	// ErrNotFound is returned when opening an unknown interpreter.
	ErrNotFound = errors.New("interpreter not registered")
)

// Property is a configuration key an interpreter reads, with its default.
type Property struct {
	Key         string
	Default     string
	Description string
}

// Properties holds resolved property values.
type Properties map[string]string

// Get returns the value for key, or def when unset or empty.
func (p Properties) Get(key, def string) string {
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	return def
}

// Lookup returns a configured value for key. ok is false when nothing is configured.
type Lookup func(key string) (value string, ok bool)

// Factory builds an interpreter from resolved properties.
type Factory func(props Properties) (Interpreter, error)

// Registration binds a group/name pair to an interpreter factory.
type Registration struct {
	Group       string
	Name        string
	Description string
	Properties  []Property
	Factory     Factory
}

// Key is the "group.name" identifier.
func (r Registration) Key() string { return r.Group + "." + r.Name }

// Resolve fills every declared property from lookup, falling back to defaults.
func (r Registration) Resolve(lookup Lookup) Properties {
	props := make(Properties, len(r.Properties))
	for _, p := range r.Properties {
		props[p.Key] = p.Default
		if lookup == nil {
			continue
		}
		if v, ok := lookup(p.Key); ok && v != "" {
			props[p.Key] = v
		}
	}
	return props
}

// Registry holds interpreter registrations. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]Registration
	sessions atomic.Int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Registration)}
}

// Register adds reg.
func (r *Registry) Register(reg Registration) error {
	if reg.Group == "" || reg.Name == "" {
		return fmt.Errorf("register interpreter: group and name are required")
	}
	if reg.Factory == nil {
		return fmt.Errorf("register %s: factory is nil", reg.Key())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[reg.Key()]; ok {
		return fmt.Errorf("register %s: %w", reg.Key(), ErrDuplicate)
	}
	r.entries[reg.Key()] = reg
	return nil
}

// Lookup returns the registration for group/name.
func (r *Registry) Lookup(group, name string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[group+"."+name]
	return reg, ok
}

// List returns all registrations ordered by group, then name.
func (r *Registry) List() []Registration {
	r.mu.RLock()
	out := make([]Registration, 0, len(r.entries))
	for _, reg := range r.entries {
		out = append(out, reg)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Open resolves properties, builds and opens the interpreter, and starts its scheduler.
func (r *Registry) Open(group, name string, lookup Lookup) (*Session, error) {
	reg, ok := r.Lookup(group, name)
	if !ok {
		return nil, fmt.Errorf("open %s.%s: %w", group, name, ErrNotFound)
	}
	props := reg.Resolve(lookup)
	interp, err := reg.Factory(props)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", reg.Key(), err)
	}
	if err := interp.Open(); err != nil {
		return nil, fmt.Errorf("open %s: %w", reg.Key(), err)
	}
	seq := r.sessions.Add(1)
	return &Session{
		Registration: reg,
		Properties:   props,
		interp:       interp,
		sched:        NewFIFOScheduler(fmt.Sprintf("%s#%d", reg.Key(), seq)),
	}, nil
}
