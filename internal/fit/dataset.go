package fit

import "fmt"

// Interval bounds of the generated x values.
const (
	XMin = -5.0
	XMax = 5.0
)

// Dataset is an immutable sequence of (x, y) points with strictly increasing x.
// It implements gonum's plotter.XYer so it can be plotted directly.
type Dataset struct {
	x []float64
	y []float64
}

// NewDataset copies xs and ys into a Dataset. Both slices must have the same
// non-zero length and xs must be strictly increasing.
func NewDataset(xs, ys []float64) (*Dataset, error) {
	if len(xs) == 0 {
		return nil, invalid("Dataset", "cannot be empty")
	}
	if len(xs) != len(ys) {
		return nil, invalid("Dataset", fmt.Sprintf("length mismatch: %d x values, %d y values", len(xs), len(ys)))
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return nil, invalid("Dataset", fmt.Sprintf("x must be strictly increasing at index %d", i))
		}
	}
	return &Dataset{
		x: append([]float64(nil), xs...),
		y: append([]float64(nil), ys...),
	}, nil
}

// Generate builds m evenly spaced points over [XMin, XMax] with
// y = trueW*x + trueB + noise, where the noise comes from a Sampler seeded once
// with seed. Identical arguments always produce identical datasets.
func Generate(m int, trueW, trueB, noiseStd float64, seed int64) (*Dataset, error) {
	if m < 2 {
		return nil, invalid("Samples", "must be at least 2")
	}
	if noiseStd < 0 {
		return nil, invalid("NoiseStd", "cannot be negative")
	}

	sampler := NewSampler(seed)
	step := (XMax - XMin) / float64(m-1)

	ds := &Dataset{
		x: make([]float64, m),
		y: make([]float64, m),
	}
	for i := 0; i < m; i++ {
		xi := XMin + step*float64(i)
		noise := sampler.NextGaussian(0, noiseStd)
		ds.x[i] = xi
		ds.y[i] = trueW*xi + trueB + noise
	}
	return ds, nil
}

// GenerateFromConfig generates the dataset described by cfg.
func GenerateFromConfig(cfg Config) (*Dataset, error) {
	return Generate(cfg.Samples, cfg.TrueW, cfg.TrueB, cfg.NoiseStd, cfg.Seed)
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.x) }

// XY returns the i-th point.
func (d *Dataset) XY(i int) (x, y float64) { return d.x[i], d.y[i] }

// Xs returns a copy of the x values.
func (d *Dataset) Xs() []float64 { return append([]float64(nil), d.x...) }

// Ys returns a copy of the y values.
func (d *Dataset) Ys() []float64 { return append([]float64(nil), d.y...) }

// Range returns the smallest and largest x.
func (d *Dataset) Range() (lo, hi float64) { return d.x[0], d.x[len(d.x)-1] }
