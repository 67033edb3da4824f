package service

// Smoother defines the interface for n-gram probability smoothing algorithms.
// A smoother turns raw context-conditional counts into sampling weights and
// probabilities.
type Smoother interface {
	// Weight returns the sampling weight for one outcome with the given
	// raw count. Weights need not be normalized.
	Weight(count int64) float64

	// Probability returns the smoothed probability of an outcome.
	// count: raw count of the outcome under its context
	// contextTotal: sum of all outcome counts under the context
	// outcomes: number of distinct outcomes observed under the context
	Probability(count, contextTotal int64, outcomes int) float64

	// Name returns the name of the smoothing algorithm
	Name() string
}

// AddKSmoother implements add-k smoothing; k = 1 is Laplace. Every observed
// outcome keeps a nonzero probability, and with the per-context vocabulary
// equal to the number of distinct observed outcomes the probabilities over
// observed outcomes sum to exactly 1.
type AddKSmoother struct {
	k float64
}

// NewAddKSmoother creates a new add-k smoother
func NewAddKSmoother(k float64) *AddKSmoother {
	if k <= 0 {
		k = 1.0 // Default to Laplace smoothing
	}
	return &AddKSmoother{k: k}
}

func (s *AddKSmoother) Weight(count int64) float64 {
	return float64(count) + s.k
}

func (s *AddKSmoother) Probability(count, contextTotal int64, outcomes int) float64 {
	if contextTotal == 0 || outcomes == 0 {
		return 0.0
	}
	numerator := float64(count) + s.k
	denominator := float64(contextTotal) + s.k*float64(outcomes)
	return numerator / denominator
}

func (s *AddKSmoother) Name() string {
	return "AddK"
}
