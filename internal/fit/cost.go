package fit

// Cost computes the mean squared error J(w,b) = 1/(2m) * sum((w*x_i + b - y_i)^2).
// ds must be non-empty.
func Cost(ds *Dataset, p Params) float64 {
	var sum float64
	for i, x := range ds.x {
		e := p.At(x) - ds.y[i]
		sum += e * e
	}
	return sum / float64(2*len(ds.x))
}

// Gradient computes the partial derivatives of Cost with respect to W and B:
//
//	dw = 1/m * sum((w*x_i + b - y_i) * x_i)
//	db = 1/m * sum(w*x_i + b - y_i)
func Gradient(ds *Dataset, p Params) (dw, db float64) {
	for i, x := range ds.x {
		e := p.At(x) - ds.y[i]
		dw += e * x
		db += e
	}
	m := float64(len(ds.x))
	return dw / m, db / m
}
