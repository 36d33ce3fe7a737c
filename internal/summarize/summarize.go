// Package summarize turns document diffs and full documents into short
// user-facing severity summaries via the LLM client.
package summarize

import (
	"context"
	"fmt"

	"github.com/jonathan/tos-monitor/internal/llm"
	"github.com/jonathan/tos-monitor/internal/prompts"
)

// OverviewCharBudget caps the document text sent to the overview summarizer
// to bound the cost of first-run analysis.
const OverviewCharBudget = 8000

// SkippedMessage is reported when no LLM credentials are configured. Missing
// credentials are a soft "skipped" condition, not an error.
const SkippedMessage = "AI analysis skipped: GEMINI_API_KEY not set."

// Error represents an LLM summarization failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("summarize error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("summarize error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Summarizer produces compact human-readable judgments of ToS text.
type Summarizer interface {
	// SummarizeDiff analyzes a unified diff between two versions.
	SummarizeDiff(ctx context.Context, diffText string) (string, error)
	// SummarizeOverview analyzes a full document (first observation).
	SummarizeOverview(ctx context.Context, fullText string) (string, error)
}

// Gemini is the LLM-backed Summarizer.
type Gemini struct {
	client llm.Client
	system string
}

// NewGemini creates a Summarizer over an initialized LLM client.
func NewGemini(client llm.Client) *Gemini {
	return &Gemini{
		client: client,
		system: prompts.MustGet("summarize.json", "system"),
	}
}

// SummarizeDiff analyzes a unified diff between two versions.
func (g *Gemini) SummarizeDiff(ctx context.Context, diffText string) (string, error) {
	prompt := prompts.Format(prompts.MustGet("summarize.json", "diff"),
		map[string]string{"Diff": diffText})

	out, err := g.client.GenerateContent(ctx, g.system, prompt)
	if err != nil {
		return "", &Error{Message: "diff summarization failed", Cause: err}
	}
	return out, nil
}

// SummarizeOverview analyzes a full document, truncated to the character
// budget.
func (g *Gemini) SummarizeOverview(ctx context.Context, fullText string) (string, error) {
	prompt := prompts.Format(prompts.MustGet("summarize.json", "overview"),
		map[string]string{"Document": truncate(fullText, OverviewCharBudget)})

	out, err := g.client.GenerateContent(ctx, g.system, prompt)
	if err != nil {
		return "", &Error{Message: "overview summarization failed", Cause: err}
	}
	return out, nil
}

// Disabled is the Summarizer used when no API credentials are configured. It
// reports the skipped condition as a regular summary so it can be cached and
// shown in the report.
type Disabled struct{}

// SummarizeDiff reports the skipped condition.
func (Disabled) SummarizeDiff(context.Context, string) (string, error) {
	return SkippedMessage, nil
}

// SummarizeOverview reports the skipped condition.
func (Disabled) SummarizeOverview(context.Context, string) (string, error) {
	return SkippedMessage, nil
}

// truncate cuts text to at most n runes without splitting a character.
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
