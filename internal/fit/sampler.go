package fit

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// pcgStream selects the PCG stream; the seed picks the state within it.
const pcgStream = 0x9e3779b97f4a7c15

// Sampler draws reproducible Gaussian noise. Each Sampler owns its generator state,
// so two samplers built from the same seed produce the same sequence of draws.
type Sampler struct {
	src *rand.PCG
}

// NewSampler creates a sampler seeded with seed.
func NewSampler(seed int64) *Sampler {
	return &Sampler{src: rand.NewPCG(uint64(seed), pcgStream)}
}

// NextGaussian returns a draw from N(mean, stdDev²) and advances the sampler.
// stdDev must be >= 0; a zero stdDev returns mean exactly.
func (s *Sampler) NextGaussian(mean, stdDev float64) float64 {
	n := distuv.Normal{Mu: mean, Sigma: stdDev, Src: s.src}
	return n.Rand()
}
