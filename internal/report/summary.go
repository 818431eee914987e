package report

import (
	"fmt"
	"io"

	"github.com/cwbudde/linefit/internal/fit"
	"gonum.org/v1/gonum/stat"
)

// ExampleInputs are the x values reported after every run.
var ExampleInputs = []float64{0.0, 2.0, -3.0}

// Prediction pairs an input with the learned line's output.
type Prediction struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Summary is a read-only view of a finished run for console output.
type Summary struct {
	Config      fit.Config
	Result      *fit.Result
	RSquared    float64
	ResidualStd float64
	Predictions []Prediction
}

// Summarize computes the fit statistics of res over ds and predicts the
// example inputs. Neither ds nor res is modified.
func Summarize(cfg fit.Config, ds *fit.Dataset, res *fit.Result, inputs []float64) Summary {
	xs, ys := ds.Xs(), ds.Ys()

	residuals := make([]float64, len(xs))
	for i, yhat := range fit.Predict(xs, res.Params) {
		residuals[i] = ys[i] - yhat
	}

	outputs := fit.Predict(inputs, res.Params)
	predictions := make([]Prediction, len(inputs))
	for i := range inputs {
		predictions[i] = Prediction{X: inputs[i], Y: outputs[i]}
	}

	// R² is undefined for constant y and is reported as 0.
	var r2 float64
	if stat.Variance(ys, nil) > 0 {
		r2 = stat.RSquared(xs, ys, nil, res.Params.B, res.Params.W)
	}

	return Summary{
		Config:      cfg,
		Result:      res,
		RSquared:    r2,
		ResidualStd: stat.StdDev(residuals, nil),
		Predictions: predictions,
	}
}

// Write prints the summary in the demo's console format.
func (s Summary) Write(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("True parameters: w=%.3f, b=%.3f", s.Config.TrueW, s.Config.TrueB),
		fmt.Sprintf("Learned parameters: w=%.3f, b=%.3f", s.Result.Params.W, s.Result.Params.B),
		fmt.Sprintf("Final cost: %.4f (after %d iterations)", s.Result.FinalCost(), s.Result.Iterations),
		fmt.Sprintf("R^2: %.4f, residual std: %.4f", s.RSquared, s.ResidualStd),
	}
	if s.Result.Converged {
		lines = append(lines, "Stopped early: cost change fell below tolerance")
	}
	for _, p := range s.Predictions {
		lines = append(lines, fmt.Sprintf("f(% .1f) = % .3f", p.X, p.Y))
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return fmt.Errorf("could not write summary: %w", err)
		}
	}
	return nil
}
