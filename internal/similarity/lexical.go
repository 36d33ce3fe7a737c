package similarity

import (
	"context"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Lexical scores texts with a sequence-matching ratio over whitespace-split
// tokens. It is cheap, deterministic and never fails, at the cost of missing
// meaning-preserving rewrites.
type Lexical struct{}

// NewLexical creates the lexical strategy.
func NewLexical() *Lexical {
	return &Lexical{}
}

// Name identifies the strategy for verbose logging.
func (*Lexical) Name() string {
	return "lexical"
}

// Score compares two non-empty texts by token sequence ratio.
func (*Lexical) Score(_ context.Context, a, b string) float64 {
	matcher := difflib.NewMatcher(strings.Fields(a), strings.Fields(b))
	return matcher.Ratio()
}
