// Package config handles scenario configuration loading.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default dataset file names.
const (
	DefaultValidations = "23599610_validations.geojson"
	DefaultSigns       = "23599610_signs.geojson"
	DefaultTopology    = "23599610_full_topology_data.geojson"
)

var (
	// ErrUnknownKind is returned for a scenario kind without a rule.
	ErrUnknownKind = errors.New("unknown scenario kind")
	// ErrMissingInput is returned when a scenario lacks a dataset its kind needs.
	ErrMissingInput = errors.New("missing input file")
)

// Kind selects the rule applied to every violation of a scenario.
type Kind string

const (
	// KindSign checks motorway sign confidence.
	KindSign Kind = "sign"
	// KindProximity looks for motorway segments near the flagged topology.
	KindProximity Kind = "proximity"
	// KindAccess infers pedestrian access of the flagged topology.
	KindAccess Kind = "access"
)

// Config represents the root configuration file structure.
type Config struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Scenario is one independent validation run.
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Kind        Kind   `yaml:"kind" json:"kind"`
	Validations string `yaml:"validations" json:"validations"`
	Signs       string `yaml:"signs,omitempty" json:"signs,omitempty"`
	Topology    string `yaml:"topology,omitempty" json:"topology,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	for i := range cfg.Scenarios {
		if cfg.Scenarios[i].Name == "" {
			cfg.Scenarios[i].Name = string(cfg.Scenarios[i].Kind)
		}
	}

	return &cfg, cfg.Validate()
}

// Validate checks every scenario before any dataset is read.
func (c *Config) Validate() error {
	if len(c.Scenarios) == 0 {
		return errors.New("no scenarios configured")
	}

	for _, s := range c.Scenarios {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}
	return nil
}

// Validate checks that the scenario kind is known and its inputs are set.
func (s Scenario) Validate() error {
	if s.Validations == "" {
		return fmt.Errorf("%w: validations", ErrMissingInput)
	}

	switch s.Kind {
	case KindSign:
		if s.Signs == "" {
			return fmt.Errorf("%w: signs", ErrMissingInput)
		}
	case KindProximity, KindAccess:
		if s.Topology == "" {
			return fmt.Errorf("%w: topology", ErrMissingInput)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownKind, s.Kind)
	}
	return nil
}
