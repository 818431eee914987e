package fit

// Predict evaluates the line p at every x. The result has the same length as xs
// and NaN or Inf inputs propagate unchanged.
func Predict(xs []float64, p Params) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = p.At(x)
	}
	return ys
}

// Linspace returns n evenly spaced values over [lo, hi]. n < 2 returns [lo] or nil.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}
