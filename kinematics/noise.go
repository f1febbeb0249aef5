package kinematics

import "math/rand"

// NoiseKind selects the distribution used to perturb speed or course each
// tick.
type NoiseKind uint8

const (
	NoNoise NoiseKind = iota
	GaussianNoise
	UniformNoise
)

// Noise bounds a per-tick perturbation applied to speed (knots) or course
// (degrees). Bound is the maximum absolute deviation: for GaussianNoise it
// is used as three standard deviations (so samples rarely exceed it); for
// UniformNoise it is the half-width of the sampled range.
type Noise struct {
	Kind  NoiseKind
	Bound float64
}

// Sample draws one perturbation value using rng, clamped to [-Bound, Bound].
func (n Noise) Sample(rng *rand.Rand) float64 {
	switch n.Kind {
	case GaussianNoise:
		v := rng.NormFloat64() * (n.Bound / 3)
		if v > n.Bound {
			v = n.Bound
		}
		if v < -n.Bound {
			v = -n.Bound
		}
		return v
	case UniformNoise:
		return (rng.Float64()*2 - 1) * n.Bound
	default:
		return 0
	}
}
