package report

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/cwbudde/linefit/internal/fit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Output file names inside the artifact directory.
const (
	FitPlotFile  = "data_scatter_fit.png"
	CostPlotFile = "cost_history.png"
)

const (
	plotDPI        = 120
	plotWidth      = 6 * vg.Inch
	plotHeight     = 4 * vg.Inch
	fitLinePoints  = 200
	costPlotOffset = 50
)

var (
	dataColor = color.NRGBA{R: 65, G: 105, B: 225, A: 178} // royal blue, 70% opaque
	lineColor = color.RGBA{R: 255, G: 140, A: 255}         // dark orange
	costColor = color.RGBA{R: 128, B: 128, A: 255}         // purple
)

// FitPlot draws the dataset as a scatter with the line p sampled at 200 points
// across the data's x range.
func FitPlot(ds *fit.Dataset, p fit.Params) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = "Linear Regression Fit"
	pl.X.Label.Text = "x"
	pl.Y.Label.Text = "y"
	pl.Legend.Left = true
	pl.Legend.Top = true

	scatter, err := plotter.NewScatter(ds)
	if err != nil {
		return nil, fmt.Errorf("could not create scatter plot: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = dataColor

	lo, hi := ds.Range()
	xs := fit.Linspace(lo, hi, fitLinePoints)
	ys := fit.Predict(xs, p)
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("could not create fitted line: %w", err)
	}
	line.Color = lineColor
	line.Width = vg.Points(1.5)

	pl.Add(scatter, line)
	pl.Legend.Add("data", scatter)
	pl.Legend.Add("fitted line", line)

	return pl, nil
}

// CostPlot draws the cost history against the iteration number, leaving out the
// first 50 iterations so the tail is readable. Shorter histories are drawn whole.
func CostPlot(history []float64) (*plot.Plot, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("cost history is empty")
	}

	start := 0
	if len(history) > costPlotOffset {
		start = costPlotOffset
	}

	pts := make(plotter.XYs, 0, len(history)-start)
	for i := start; i < len(history); i++ {
		pts = append(pts, plotter.XY{X: float64(i), Y: history[i]})
	}

	pl := plot.New()
	pl.Title.Text = "Cost vs Iteration"
	pl.X.Label.Text = "Iteration"
	pl.Y.Label.Text = "Cost J(w,b)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("could not create cost line: %w", err)
	}
	line.Color = costColor
	pl.Add(line)

	return pl, nil
}

// WritePNG renders p as a 6x4 inch PNG at 120 DPI.
func WritePNG(w io.Writer, p *plot.Plot) error {
	c := vgimg.NewWith(vgimg.UseWH(plotWidth, plotHeight), vgimg.UseDPI(plotDPI))
	p.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("could not write png: %w", err)
	}
	return nil
}

// SavePlots renders both plots into dir, creating it if needed, and returns the
// written paths.
func SavePlots(dir string, ds *fit.Dataset, res *fit.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}

	fitPlot, err := FitPlot(ds, res.Params)
	if err != nil {
		return nil, err
	}
	costPlot, err := CostPlot(res.CostHistory)
	if err != nil {
		return nil, err
	}

	fitPath := filepath.Join(dir, FitPlotFile)
	if err := savePNG(fitPath, fitPlot); err != nil {
		return nil, err
	}
	costPath := filepath.Join(dir, CostPlotFile)
	if err := savePNG(costPath, costPlot); err != nil {
		return nil, err
	}

	return []string{fitPath, costPath}, nil
}

func savePNG(path string, p *plot.Plot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := WritePNG(f, p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close output file %s: %w", path, err)
	}
	return nil
}
