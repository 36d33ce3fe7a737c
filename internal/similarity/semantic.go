package similarity

import (
	"context"
	"math"
	"sync"

	"github.com/jonathan/tos-monitor/internal/llm"
)

// Embedder produces an embedding vector for a text fragment.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Semantic scores texts by cosine similarity of their embeddings. Any
// call-time failure silently degrades to the lexical ratio, so the strategy
// as a whole never fails.
type Semantic struct {
	backend  Embedder
	fallback *Lexical
}

// NewSemantic creates the semantic strategy over the given backend.
func NewSemantic(backend Embedder) *Semantic {
	return &Semantic{backend: backend, fallback: NewLexical()}
}

// Name identifies the strategy for verbose logging.
func (*Semantic) Name() string {
	return "semantic"
}

// Score compares two non-empty texts. Embedding failures fall back to the
// lexical ratio.
func (s *Semantic) Score(ctx context.Context, a, b string) float64 {
	va, err := s.backend.Embed(ctx, a)
	if err != nil {
		return s.fallback.Score(ctx, a, b)
	}
	vb, err := s.backend.Embed(ctx, b)
	if err != nil {
		return s.fallback.Score(ctx, a, b)
	}

	sim := cosine(va, vb)
	// Embedding spaces can produce values slightly outside [0, 1]; clamp so
	// callers can rely on the contract.
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

// cosine computes the cosine similarity of two vectors. Mismatched or
// zero-length vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// The embedding backend is process-wide lazily-initialized state with three
// states: uninitialized (load not yet attempted), unavailable (load failed or
// no credentials) and ready. The load is attempted at most once per process;
// a failed load is never retried mid-run.
var (
	loadOnce      sync.Once
	loadedBackend Embedder
)

// Load returns the semantic strategy when the embedding backend can be
// constructed, or nil when it is unavailable. Callers select the strategy
// once at startup and pass it to NewScorer.
func Load(ctx context.Context, apiKey string) Strategy {
	loadOnce.Do(func() {
		if apiKey == "" {
			return
		}
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
		if err != nil {
			return
		}
		loadedBackend = client
	})
	if loadedBackend == nil {
		return nil
	}
	return NewSemantic(loadedBackend)
}
