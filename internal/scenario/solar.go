package scenario

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/vec"
)

// GravitationalConstant in km^3 kg^-1 s^-2, the unit system the solar
// table below is expressed in.
const GravitationalConstant = 6.67430e-20

type planetEntry struct {
	name        string
	mass        float64 // kg
	orbitRadius float64 // km, mean distance from the Sun; 0 for the Sun
	bodyRadius  float64 // km
}

var solarTable = []planetEntry{
	{"Sun", 1.989e30, 0, 6.9634e5},
	{"Mercury", 3.285e23, 5.791e7, 2439.7},
	{"Venus", 4.867e24, 1.082e8, 6051.8},
	{"Earth", 5.972e24, 1.496e8, 6371.0},
	{"Mars", 6.39e23, 2.279e8, 3389.5},
	{"Jupiter", 1.898e27, 7.785e8, 69911},
	{"Saturn", 5.683e26, 1.4335e9, 58232},
	{"Uranus", 8.681e25, 2.8725e9, 25362},
	{"Neptune", 1.024e26, 4.4951e9, 24622},
}

// SolarSystem returns the Sun and the eight planets. Each planet sits at
// its mean orbital radius on the +X axis with the circular-orbit speed
// sqrt(G*M_sun/r) along +Y, so the setup is deterministic and needs no
// ephemeris data.
func SolarSystem() body.Registry {
	sunMass := solarTable[0].mass

	reg := make(body.Registry, len(solarTable))
	for i, e := range solarTable {
		b := &body.Body{
			Name:   e.name,
			Mass:   e.mass,
			Radius: e.bodyRadius,
		}
		if e.orbitRadius > 0 {
			b.Position = vec.Vec3{X: e.orbitRadius}
			b.Velocity = vec.Vec3{Y: math.Sqrt(GravitationalConstant * sunMass / e.orbitRadius)}
		}
		reg[i] = b
	}
	return reg
}
