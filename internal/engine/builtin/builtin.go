// Package builtin assembles the engine registry for this build from configuration.
//
// Only locked calculators are compiled in. Deployments holding calculator licences pass
// their own adapters to NewRegistry, which take the place of the locked ones.
package builtin

import (
	"fmt"

	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
	"github.com/clinical-risk-gateway/internal/engine/qdiabetes"
	"github.com/clinical-risk-gateway/internal/engine/qfracture"
	"github.com/clinical-risk-gateway/internal/engine/qrisk3"
	"github.com/clinical-risk-gateway/internal/engine/x05"
)

// DefaultLockedVersion is reported by locked calculators when no version is configured.
const DefaultLockedVersion = "locked"

// LockedAdapters returns an adapter per compiled-in engine, in catalog order.
func LockedAdapters(version string) []engine.Adapter {
	if version == "" {
		version = DefaultLockedVersion
	}
	return []engine.Adapter{
		qrisk3.NewAdapter(qrisk3.NewLockedCalculator(version)),
		qdiabetes.NewAdapter(qdiabetes.NewLockedCalculator(version)),
		qfracture.NewAdapter(qfracture.NewLockedCalculator(version)),
		x05.NewAdapter(x05.NewLockedCalculator(version)),
	}
}

// NewRegistry installs the engines enabled in cfg; an empty list enables all of them.
// An adapter in licensed replaces the locked adapter of the same name and is installed
// even if cfg does not list it.
func NewRegistry(cfg domain.EnginesConfig, licensed ...engine.Adapter) (*engine.Registry, error) {
	available := make(map[domain.EngineName]engine.Adapter)
	var order []domain.EngineName
	for _, a := range LockedAdapters(cfg.LockedVersion) {
		name := a.Descriptor().Name
		available[name] = a
		order = append(order, name)
	}

	enabled := make(map[domain.EngineName]bool)
	if len(cfg.Enabled) == 0 {
		for _, name := range order {
			enabled[name] = true
		}
	}
	for _, s := range cfg.Enabled {
		name, err := domain.ParseEngineName(s)
		if err != nil {
			return nil, fmt.Errorf("engines.enabled: %w", err)
		}
		enabled[name] = true
	}

	for _, a := range licensed {
		name := a.Descriptor().Name
		if _, known := available[name]; !known {
			order = append(order, name)
		}
		available[name] = a
		enabled[name] = true
	}

	adapters := make([]engine.Adapter, 0, len(enabled))
	for _, name := range order {
		if enabled[name] {
			adapters = append(adapters, available[name])
		}
	}
	return engine.NewRegistry(adapters...)
}
