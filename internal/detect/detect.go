// Package detect classifies the transition between two versions of a legal
// document as noise or a substantive change.
//
// The checks run cheapest-first: normalized byte equality, then per-section
// similarity over the hot legal risk categories, then the overall size delta,
// then whole-document similarity. Hot sections come before the global checks
// because a small edit inside a high-risk clause can hide inside a large,
// otherwise stable document.
package detect

import (
	"context"
	"fmt"
	"math"

	"github.com/jonathan/tos-monitor/internal/sections"
	"github.com/jonathan/tos-monitor/internal/similarity"
	"github.com/jonathan/tos-monitor/internal/textutil"
)

// Default thresholds for the detector.
const (
	// DefaultSimilarityThreshold is the similarity below which a section or
	// document is considered substantively changed.
	DefaultSimilarityThreshold = 0.97
	// DefaultSizeThreshold is the fractional length change above which a
	// document is considered substantively changed.
	DefaultSizeThreshold = 0.02
)

// Options configures detector thresholds.
type Options struct {
	SimilarityThreshold float64
	SizeThreshold       float64
}

// DefaultOptions returns the default thresholds.
func DefaultOptions() *Options {
	return &Options{
		SimilarityThreshold: DefaultSimilarityThreshold,
		SizeThreshold:       DefaultSizeThreshold,
	}
}

// Detector decides whether a text transition is substantive.
type Detector struct {
	scorer        *similarity.Scorer
	simThreshold  float64
	sizeThreshold float64
}

// NewDetector creates a Detector. A nil scorer selects the lexical strategy;
// nil options select the defaults.
func NewDetector(scorer *similarity.Scorer, opts *Options) *Detector {
	if scorer == nil {
		scorer = similarity.NewScorer(nil)
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Detector{
		scorer:        scorer,
		simThreshold:  opts.SimilarityThreshold,
		sizeThreshold: opts.SizeThreshold,
	}
}

// Detect reports whether the transition from oldRaw to newRaw is substantive,
// with a human-readable reason. The reason is empty when the change is noise.
// Detect is total over its inputs, including empty strings.
func (d *Detector) Detect(ctx context.Context, oldRaw, newRaw string) (bool, string) {
	oldNorm := textutil.Normalize(oldRaw)
	newNorm := textutil.Normalize(newRaw)

	if oldNorm == newNorm {
		return false, ""
	}

	oldSections := sections.Extract(oldNorm)
	newSections := sections.Extract(newNorm)
	for _, name := range sections.Names() {
		oldSec, newSec := oldSections[name], newSections[name]
		if oldSec == "" && newSec == "" {
			continue
		}
		if d.scorer.Score(ctx, oldSec, newSec) < d.simThreshold {
			return true, fmt.Sprintf("change detected in hot section: %s", name)
		}
	}

	if len(oldNorm) > 0 {
		delta := math.Abs(float64(len(newNorm))-float64(len(oldNorm))) / float64(len(oldNorm))
		if delta > d.sizeThreshold {
			return true, fmt.Sprintf("document changed by %.1f%%", delta*100)
		}
	}

	if d.scorer.Score(ctx, oldNorm, newNorm) < d.simThreshold {
		return true, "semantic meaning changed"
	}

	return false, ""
}
