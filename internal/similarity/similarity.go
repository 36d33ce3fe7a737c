// Package similarity scores how close two text fragments are in meaning on a
// 0..1 scale. A semantic, embedding-backed strategy is preferred when the
// backend is available; a lexical sequence-matching ratio is the portable
// fallback.
package similarity

import "context"

// Strategy scores two non-empty texts. 1.0 means identical meaning, 0.0 means
// totally unrelated. Implementations must not fail: a strategy that cannot
// compute its preferred score degrades to a cheaper one instead.
type Strategy interface {
	// Name identifies the strategy for verbose logging.
	Name() string
	// Score compares two non-empty texts.
	Score(ctx context.Context, a, b string) float64
}

// Scorer applies the configured strategy together with the empty-input
// policy: two empty texts are identical, one empty text is unrelated.
type Scorer struct {
	strategy Strategy
}

// NewScorer creates a Scorer using the given strategy. A nil strategy selects
// the lexical fallback.
func NewScorer(strategy Strategy) *Scorer {
	if strategy == nil {
		strategy = NewLexical()
	}
	return &Scorer{strategy: strategy}
}

// StrategyName reports which strategy the scorer was built with.
func (s *Scorer) StrategyName() string {
	return s.strategy.Name()
}

// Score returns the similarity of a and b in [0, 1].
func (s *Scorer) Score(ctx context.Context, a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	return s.strategy.Score(ctx, a, b)
}
