package schema

import "fmt"

// Weights holds the fixed coefficients of the scoring formula
//
//	score = Longevity*longevityNorm + Lines*linesNorm + Commits*commitsNorm + Recency*recencyNorm
//
// The value is constructed once and passed explicitly into scoring; it is
// never a mutable singleton and never user-configurable.
type Weights struct {
	Longevity float64
	Lines     float64
	Commits   float64
	Recency   float64
}

// DefaultWeights returns the reference weights, in priority order.
func DefaultWeights() Weights {
	return Weights{
		Longevity: 0.4, // how long someone has been contributing
		Lines:     0.3, // amount of code contributed
		Commits:   0.2, // frequency of contributions
		Recency:   0.1, // share of their own activity that is recent
	}
}

// Validate enforces the weight invariant: strictly decreasing, strictly
// positive, and summing to 1. Each normalized term lies in [0,1], so any
// weights passing this check keep the final score in [0,1].
func (w Weights) Validate() error {
	if !(w.Longevity > w.Lines && w.Lines > w.Commits && w.Commits > w.Recency && w.Recency > 0) {
		return fmt.Errorf("weights must satisfy longevity > lines > commits > recency > 0 (got %.3f, %.3f, %.3f, %.3f)",
			w.Longevity, w.Lines, w.Commits, w.Recency)
	}
	sum := w.Longevity + w.Lines + w.Commits + w.Recency
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

// Apply computes the weighted score for one set of normalized metrics.
func (w Weights) Apply(n NormalizedMetrics) float64 {
	return w.Longevity*n.Longevity + w.Lines*n.Lines + w.Commits*n.Commits + w.Recency*n.Recency
}
