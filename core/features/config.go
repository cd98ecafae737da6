package features

import (
	"context"
	"fmt"

	"github.com/asaidimu/go-multiassay/core/assay"
	"github.com/asaidimu/go-multiassay/core/filter"
	"gopkg.in/yaml.v3"
)

// FilterSpec is the declarative form of a structured filter, as written in a
// YAML pipeline configuration.
type FilterSpec struct {
	Field     string `yaml:"field"`
	Value     any    `yaml:"value"`
	Condition string `yaml:"condition,omitempty"`
	Not       bool   `yaml:"not,omitempty"`
}

// Build constructs the structured filter described by the spec. Condition
// strings are carried through verbatim, so an unknown condition surfaces at
// evaluation time exactly like one on a hand-built filter.
func (s FilterSpec) Build() (*filter.VariableFilter, error) {
	return filter.NewVariableFilter(s.Field, s.Value, filter.Condition(s.Condition), s.Not)
}

// Config is a declarative filtering pipeline: a sequence of structured
// filters applied in order under one naRemove policy.
type Config struct {
	NARemove bool         `yaml:"naRemove,omitempty"`
	Filters  []FilterSpec `yaml:"filters"`
}

// ParseConfig parses a YAML filtering configuration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("features: parsing filter config: %w", err)
	}
	if len(cfg.Filters) == 0 {
		return nil, fmt.Errorf("features: filter config declares no filters")
	}
	return &cfg, nil
}

// Apply runs the configured filters in order against the container, feeding
// each filter the previous result, and returns the final container.
func (cfg *Config) Apply(ctx context.Context, e *Engine, c assay.Container) (assay.Container, error) {
	if e == nil {
		e = NewEngine(nil)
	}
	current := c
	for i, spec := range cfg.Filters {
		f, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("features: filter %d (%s): %w", i, spec.Field, err)
		}
		current, err = e.FilterFeatures(ctx, current, f, cfg.NARemove)
		if err != nil {
			return nil, fmt.Errorf("features: filter %d (%s): %w", i, spec.Field, err)
		}
	}
	return current, nil
}
