package config

import "github.com/san-kum/gravsim/internal/scenario"

var Presets = map[string]map[string]*Config{
	"solar": {
		"year": {
			Scenario: "solar", G: DefaultG, Dt: DefaultDt, Epsilon: DefaultEpsilon,
			Steps: 8760, SnapshotInterval: 10,
		},
		"decade": {
			Scenario: "solar", G: DefaultG, Dt: DefaultDt, Epsilon: DefaultEpsilon,
			Steps: 87600, SnapshotInterval: 100,
		},
	},
	"cluster": {
		"small": {
			Scenario: "cluster", G: DefaultG, Dt: DefaultDt, Epsilon: 1e5,
			Steps: 8760, SnapshotInterval: 10,
			Cluster: scenario.ClusterParams{
				Bodies: 50, Radius: 5e9, MinMass: 1e29, MaxMass: 2e31,
				VelocityScale: 5.0, BodyRadius: 7e5, Seed: 1,
			},
		},
		"dense": {
			Scenario: "cluster", G: DefaultG, Dt: DefaultDt, Epsilon: 1e5,
			Steps: 17520, SnapshotInterval: 20,
			Cluster: scenario.ClusterParams{
				Bodies: 200, Radius: 1e9, MinMass: 1e29, MaxMass: 2e31,
				VelocityScale: 2.0, BodyRadius: 7e5, Seed: 1,
			},
		},
	},
}

func GetPreset(scenarioName, preset string) *Config {
	scenarioPresets, ok := Presets[scenarioName]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenarioName string) []string {
	scenarioPresets, ok := Presets[scenarioName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
