// Package scenario builds initial registries: explicit body lists, the
// solar system table, or randomized star clusters.
package scenario

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/vec"
)

// BodySpec is the declarative form of a body, as it appears in config
// files and manual scenarios. Units follow the rest of the repo: km, kg,
// km/s.
type BodySpec struct {
	Name     string     `yaml:"name"`
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
}

// FromSpecs materializes an explicit body list.
func FromSpecs(specs []BodySpec) (body.Registry, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("scenario: no bodies specified")
	}

	reg := make(body.Registry, len(specs))
	for i, s := range specs {
		if s.Mass <= 0 {
			return nil, fmt.Errorf("scenario: body %q has non-positive mass %g", s.Name, s.Mass)
		}
		if s.Radius < 0 {
			return nil, fmt.Errorf("scenario: body %q has negative radius %g", s.Name, s.Radius)
		}
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("body%d", i+1)
		}
		reg[i] = &body.Body{
			Name:     name,
			Mass:     s.Mass,
			Radius:   s.Radius,
			Position: vec.Vec3{X: s.Position[0], Y: s.Position[1], Z: s.Position[2]},
			Velocity: vec.Vec3{X: s.Velocity[0], Y: s.Velocity[1], Z: s.Velocity[2]},
		}
	}
	return reg, nil
}

// Names lists the scenarios Build accepts.
func Names() []string {
	return []string{"solar", "cluster", "manual"}
}

// Build constructs the named scenario. Manual scenarios draw from specs,
// cluster scenarios from p; solar takes no parameters.
func Build(name string, specs []BodySpec, p ClusterParams) (body.Registry, error) {
	switch name {
	case "solar":
		return SolarSystem(), nil
	case "cluster":
		return Cluster(p)
	case "manual":
		return FromSpecs(specs)
	default:
		return nil, fmt.Errorf("scenario: unknown scenario %q (available: %v)", name, Names())
	}
}
