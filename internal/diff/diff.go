// Package diff builds bounded line-based unified diffs between two document
// versions for use in summarization prompts.
package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// ContextLines is the number of unchanged lines shown around each hunk.
	ContextLines = 3
	// MaxLines caps the diff size to keep summarization prompts affordable.
	MaxLines = 1000
)

// Unified returns a unified diff between the previous and current version of
// a document, capped to the first MaxLines lines.
func Unified(oldText, newText string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldText),
		B:        difflib.SplitLines(newText),
		FromFile: "previous",
		ToFile:   "current",
		Context:  ContextLines,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", err
	}
	return capLines(text, MaxLines), nil
}

// capLines truncates text to at most n lines.
func capLines(text string, n int) string {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "")
}
