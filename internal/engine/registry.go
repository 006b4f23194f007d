package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/clinical-risk-gateway/internal/domain"
)

// Registry is the immutable set of installed engines. It is built once at startup and
// is safe for concurrent use.
type Registry struct {
	adapters    map[domain.EngineName]Adapter
	descriptors []Descriptor
}

// NewRegistry builds a registry from adapters. Engine names must be unique.
func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{
		adapters:    make(map[domain.EngineName]Adapter, len(adapters)),
		descriptors: make([]Descriptor, 0, len(adapters)),
	}

	for _, a := range adapters {
		d := a.Descriptor()
		if d.Name == "" {
			return nil, fmt.Errorf("engine registered without a name (uri %q)", d.URI)
		}
		if _, exists := r.adapters[d.Name]; exists {
			return nil, fmt.Errorf("engine %s registered more than once", d.Name)
		}
		r.adapters[d.Name] = a
		r.descriptors = append(r.descriptors, d)
	}

	slices.SortFunc(r.descriptors, func(a, b Descriptor) int {
		if ra, rb := catalogRank(a.Name), catalogRank(b.Name); ra != rb {
			return ra - rb
		}
		return strings.Compare(string(a.Name), string(b.Name))
	})

	return r, nil
}

// catalogRank orders known engines by declaration and anything else after them.
func catalogRank(name domain.EngineName) int {
	if i := slices.Index(domain.AllEngineNames(), name); i >= 0 {
		return i
	}
	return len(domain.AllEngineNames())
}

// Lookup returns the descriptor of the named engine, or a *domain.ConfigurationError.
func (r *Registry) Lookup(name domain.EngineName) (Descriptor, error) {
	a, ok := r.adapters[name]
	if !ok {
		return Descriptor{}, &domain.ConfigurationError{Engine: name}
	}
	return a.Descriptor(), nil
}

// Adapter returns the adapter of the named engine, or a *domain.ConfigurationError.
func (r *Registry) Adapter(name domain.EngineName) (Adapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, &domain.ConfigurationError{Engine: name}
	}
	return a, nil
}

// Descriptors returns every installed engine in catalog order.
func (r *Registry) Descriptors() []Descriptor {
	return slices.Clone(r.descriptors)
}

// AvailableScores returns the engine catalog.
func (r *Registry) AvailableScores() *domain.AvailableScores {
	scores := make([]domain.Score, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		scores = append(scores, d.Score())
	}
	return &domain.AvailableScores{Scores: scores}
}

// Len returns the number of installed engines.
func (r *Registry) Len() int {
	return len(r.adapters)
}
