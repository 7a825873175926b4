package scenario

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/vec"
)

// ClusterParams configures the random star cluster generator. All
// distributions are seeded, so a given seed reproduces the same cluster.
type ClusterParams struct {
	Bodies        int     `yaml:"bodies"`
	Radius        float64 `yaml:"radius"`         // cluster radius, km
	MinMass       float64 `yaml:"min_mass"`       // kg
	MaxMass       float64 `yaml:"max_mass"`       // kg
	VelocityScale float64 `yaml:"velocity_scale"` // gaussian sigma, km/s
	BodyRadius    float64 `yaml:"body_radius"`    // km, same for every star
	Seed          int64   `yaml:"seed"`
}

// DefaultClusterParams mirrors the classic star-cluster setup: stars
// between 0.05 and 10 solar masses inside a 5e9 km sphere.
func DefaultClusterParams() ClusterParams {
	return ClusterParams{
		Bodies:        100,
		Radius:        5e9,
		MinMass:       1e29,
		MaxMass:       2e31,
		VelocityScale: 5.0,
		BodyRadius:    7e5,
		Seed:          1,
	}
}

// Cluster samples p.Bodies stars: positions uniform in direction and
// radius inside the cluster sphere, masses uniform in [MinMass, MaxMass],
// velocities isotropic gaussian.
func Cluster(p ClusterParams) (body.Registry, error) {
	if p.Bodies <= 0 {
		return nil, fmt.Errorf("scenario: cluster needs a positive body count, got %d", p.Bodies)
	}
	if p.Radius <= 0 {
		return nil, fmt.Errorf("scenario: cluster radius must be positive, got %g", p.Radius)
	}
	if p.MinMass <= 0 || p.MaxMass < p.MinMass {
		return nil, fmt.Errorf("scenario: invalid mass range [%g, %g]", p.MinMass, p.MaxMass)
	}

	rng := rand.New(rand.NewSource(p.Seed))

	reg := make(body.Registry, p.Bodies)
	for i := range reg {
		dir := vec.Vec3{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}.Normalize()
		if dir == (vec.Vec3{}) {
			dir = vec.Vec3{X: 1}
		}

		reg[i] = &body.Body{
			Name:     fmt.Sprintf("star%d", i+1),
			Mass:     p.MinMass + rng.Float64()*(p.MaxMass-p.MinMass),
			Radius:   p.BodyRadius,
			Position: dir.Scale(rng.Float64() * p.Radius),
			Velocity: vec.Vec3{
				X: rng.NormFloat64() * p.VelocityScale,
				Y: rng.NormFloat64() * p.VelocityScale,
				Z: rng.NormFloat64() * p.VelocityScale,
			},
		}
	}
	return reg, nil
}
