// Package engine is the boundary between the gateway and the external risk calculators.
// It holds the adapter contract every engine package implements, the registry of
// installed engines, the helpers used to normalize native engine output into
// domain.EngineResult, and the guard that isolates engine failures.
package engine

import (
	"github.com/clinical-risk-gateway/internal/domain"
)

// Descriptor identifies an installed engine.
type Descriptor struct {
	Name    domain.EngineName
	Version string
	URI     string
}

// Score returns the catalog entry for the engine.
func (d Descriptor) Score() domain.Score {
	return domain.Score{
		EngineName:    d.Name,
		EngineVersion: d.Version,
		EngineURI:     d.URI,
	}
}

// Resolver looks up installed engines by name.
type Resolver interface {
	Lookup(name domain.EngineName) (Descriptor, error)
}

// Calculator is an external risk engine. In is the engine's projected input shape and
// Out its raw result shape; both are declared by the engine package.
type Calculator[In, Out any] interface {
	Version() string
	Calculate(in In) (Out, error)
}

type calculatorFunc[In, Out any] struct {
	version string
	fn      func(In) (Out, error)
}

func (c calculatorFunc[In, Out]) Version() string              { return c.version }
func (c calculatorFunc[In, Out]) Calculate(in In) (Out, error) { return c.fn(in) }

// CalculatorFunc adapts a plain function to the Calculator interface.
func CalculatorFunc[In, Out any](version string, fn func(In) (Out, error)) Calculator[In, Out] {
	return calculatorFunc[In, Out]{version: version, fn: fn}
}

// Adapter runs one engine against canonical input and returns the normalized result.
type Adapter interface {
	Descriptor() Descriptor
	// Fields lists the canonical fields the engine consumes, by JSON name.
	Fields() []string
	// Project returns the engine-shaped view of in. The value is JSON-serializable
	// and is used to fingerprint requests for caching.
	Project(in *domain.Input) any
	// Reconcile returns a canonical record holding only the fields the engine consumes.
	Reconcile(in *domain.Input) *domain.Input
	Run(r Resolver, in *domain.Input) (*domain.EngineResult, error)
}

// Binding describes how an engine package plugs a Calculator into the gateway.
type Binding[In, Out any] struct {
	Name      domain.EngineName
	URI       string
	Fields    []string
	Project   func(*domain.Input) In
	Reconcile func(In) *domain.Input
	Normalize func(r Resolver, raw Out, in In) (*domain.EngineResult, error)
}

type adapter[In, Out any] struct {
	binding Binding[In, Out]
	calc    Calculator[In, Out]
}

// NewAdapter binds calc to the gateway using the projection and normalization in b.
func NewAdapter[In, Out any](b Binding[In, Out], calc Calculator[In, Out]) Adapter {
	return &adapter[In, Out]{binding: b, calc: calc}
}

func (a *adapter[In, Out]) Descriptor() Descriptor {
	return Descriptor{
		Name:    a.binding.Name,
		Version: a.calc.Version(),
		URI:     a.binding.URI,
	}
}

func (a *adapter[In, Out]) Fields() []string {
	return append([]string(nil), a.binding.Fields...)
}

func (a *adapter[In, Out]) Project(in *domain.Input) any {
	return a.binding.Project(in)
}

func (a *adapter[In, Out]) Reconcile(in *domain.Input) *domain.Input {
	return a.binding.Reconcile(a.binding.Project(in))
}

func (a *adapter[In, Out]) Run(r Resolver, in *domain.Input) (*domain.EngineResult, error) {
	projected := a.binding.Project(in)
	raw, err := a.calc.Calculate(projected)
	if err != nil {
		return nil, err
	}
	return a.binding.Normalize(r, raw, projected)
}
