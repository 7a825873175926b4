// Package config loads, saves, and defaults run configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/sim"
)

// Defaults follow the original setup: km/kg/s units, a ten-hour step, and
// a snapshot every ten steps.
const (
	DefaultG                = scenario.GravitationalConstant
	DefaultDt               = 36000.0
	DefaultEpsilon          = 1e3
	DefaultSteps            = 8760 // ~one year of ten-hour steps
	DefaultSnapshotInterval = 10
)

type Config struct {
	Scenario         string                 `yaml:"scenario"`
	G                float64                `yaml:"g"`
	Dt               float64                `yaml:"dt"`
	Epsilon          float64                `yaml:"epsilon"`
	Steps            int                    `yaml:"steps"`
	SnapshotInterval int                    `yaml:"snapshot_interval"`
	Cluster          scenario.ClusterParams `yaml:"cluster"`
	Bodies           []scenario.BodySpec    `yaml:"bodies"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:         "solar",
		G:                DefaultG,
		Dt:               DefaultDt,
		Epsilon:          DefaultEpsilon,
		Steps:            DefaultSteps,
		SnapshotInterval: DefaultSnapshotInterval,
		Cluster:          scenario.DefaultClusterParams(),
	}
}

// Load reads a YAML config file over the defaults, so partial files work.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SimConfig extracts the parameter surface the driver consumes.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		G:                c.G,
		Dt:               c.Dt,
		Epsilon:          c.Epsilon,
		Steps:            c.Steps,
		SnapshotInterval: c.SnapshotInterval,
	}
}

// BuildRegistry materializes the configured scenario.
func (c *Config) BuildRegistry() (body.Registry, error) {
	return scenario.Build(c.Scenario, c.Bodies, c.Cluster)
}
