package fit

// Config holds every setting of a single generate-and-fit run.
type Config struct {
	// Samples is the number of points m in the synthetic dataset (must be >= 2)
	Samples int `json:"samples"`

	// TrueW and TrueB are the ground-truth slope and intercept
	TrueW float64 `json:"trueW"`
	TrueB float64 `json:"trueB"`

	// NoiseStd is the standard deviation of the Gaussian noise added to y
	NoiseStd float64 `json:"noiseStd"`

	// LearningRate is the gradient descent step size (alpha)
	LearningRate float64 `json:"learningRate"`

	// MaxIterations caps the descent loop
	MaxIterations int `json:"maxIterations"`

	// Seed drives the noise sampler
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the settings of the reference demo run.
func DefaultConfig() Config {
	return Config{
		Samples:       120,
		TrueW:         3.2,
		TrueB:         -0.7,
		NoiseStd:      1.2,
		LearningRate:  0.01,
		MaxIterations: 1500,
		Seed:          42,
	}
}

// Validate reports the first out-of-range setting as a *ConfigError.
func (c Config) Validate() error {
	if c.Samples < 2 {
		return invalid("Samples", "must be at least 2")
	}
	if c.NoiseStd < 0 {
		return invalid("NoiseStd", "cannot be negative")
	}
	return validateDescent(c.LearningRate, c.MaxIterations)
}

func validateDescent(learningRate float64, maxIterations int) error {
	// Written as a negated comparison so NaN is rejected too.
	if !(learningRate > 0) {
		return invalid("LearningRate", "must be positive")
	}
	if maxIterations <= 0 {
		return invalid("MaxIterations", "must be positive")
	}
	return nil
}
