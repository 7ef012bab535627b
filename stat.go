package paspale

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot/plotter"
)

// -------------------------------------------------------------------------
// Kernel density estimate

// Default evaluation grid of a KDE.
const (
	KDEGridSize = 200 // number of evaluation points
	KDECut      = 3   // bandwidths the grid extends beyond the data
)

// KDE is a Gaussian kernel density estimate of a sample. The bandwidth
// follows Scott's rule: the sample standard deviation times n^(-1/5).
type KDE struct {
	Samples   []float64
	Bandwidth float64
}

// NewKDE estimates the density of samples. Non-finite values are
// ignored. At least two distinct values are needed.
func NewKDE(samples []float64) (*KDE, error) {
	xs := finite(samples)
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 values for a density estimate, got %d",
			ErrRender, len(xs))
	}
	_, std := stat.MeanStdDev(xs, nil)
	if std == 0 || math.IsNaN(std) {
		return nil, fmt.Errorf("%w: density estimate of constant values", ErrRender)
	}
	return &KDE{
		Samples:   xs,
		Bandwidth: std * math.Pow(float64(len(xs)), -1.0/5),
	}, nil
}

// Density evaluates the estimate at x.
func (k *KDE) Density(x float64) float64 {
	sum := 0.0
	for _, s := range k.Samples {
		sum += distuv.UnitNormal.Prob((x - s) / k.Bandwidth)
	}
	return sum / (float64(len(k.Samples)) * k.Bandwidth)
}

// Support is the interval the estimate is drawn on: the sample range
// widened by cut bandwidths on both sides.
func (k *KDE) Support(cut float64) Range {
	return Range{
		Min: floats.Min(k.Samples) - cut*k.Bandwidth,
		Max: floats.Max(k.Samples) + cut*k.Bandwidth,
	}
}

// Grid evaluates the estimate at n evenly spaced points of its support.
func (k *KDE) Grid(n int, cut float64) plotter.XYs {
	r := k.Support(cut)
	xs := IdentityScale.Space(r.Min, r.Max, n)
	pts := make(plotter.XYs, len(xs))
	for i, x := range xs {
		pts[i] = plotter.XY{X: x, Y: k.Density(x)}
	}
	return pts
}

// finite returns the finite values of xs.
func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}
