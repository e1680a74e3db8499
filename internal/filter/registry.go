package filter

import (
	"context"
	"fmt"
	"net/url"
	"sync"
)

// Registry maps column kinds to the factories creating filters for them.
//
// A Registry is safe for concurrent use, however it is intended to be written
// to only during startup.
type Registry struct {
	m         sync.RWMutex
	factories map[Kind]Factory
}

// Register installs factory for columns of the given kind.
// It takes priority over any factory previously registered for the same kind.
func (registry *Registry) Register(kind Kind, factory Factory) {
	registry.m.Lock()
	defer registry.m.Unlock()

	if registry.factories == nil {
		registry.factories = make(map[Kind]Factory)
	}
	registry.factories[kind] = factory
}

// Lookup returns the factory registered for kind.
func (registry *Registry) Lookup(kind Kind) (factory Factory, ok bool) {
	registry.m.RLock()
	defer registry.m.RUnlock()

	factory, ok = registry.factories[kind]
	return
}

// New creates a new filter for column using the factory registered for its kind.
func (registry *Registry) New(ctx context.Context, column Column, params url.Values, source Source) (Filter, error) {
	factory, ok := registry.Lookup(column.Kind)
	if !ok {
		return nil, fmt.Errorf("no filter registered for %q (kind %s)", column.Name, column.Kind)
	}
	return factory(ctx, column, params, source)
}

// RegisterDefaults registers the uri, literal and related filters with registry.
func RegisterDefaults(registry *Registry) {
	registry.Register(KindURI, NewURIFilter)
	registry.Register(KindLiteral, NewLiteralFilter)
	registry.Register(KindRelated, NewRelatedFilter)
}
