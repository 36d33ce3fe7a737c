// Package textutil provides text canonicalization and filesystem naming
// helpers shared by the change detector and the on-disk stores.
package textutil

import (
	"regexp"
	"strings"
)

var (
	// horizontalWS matches runs of spaces and tabs within a line.
	horizontalWS = regexp.MustCompile(`[ \t\x{00a0}]+`)
	// blankRuns matches three or more consecutive blank lines (four or more
	// newlines once lines are trimmed).
	blankRuns = regexp.MustCompile(`\n{4,}`)
)

// Normalize canonicalizes raw document text so that cosmetic differences do
// not register as changes. It lowercases, converts CRLF/CR line endings to LF,
// collapses horizontal whitespace runs within a line to a single space, trims
// every line, collapses three or more consecutive blank lines down to exactly
// two, and trims the whole document.
//
// Normalize is pure, deterministic and idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = horizontalWS.ReplaceAllString(line, " ")
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = blankRuns.ReplaceAllString(text, "\n\n\n")
	return strings.TrimSpace(text)
}

// SplitParagraphs splits normalized text into paragraphs on blank-line
// boundaries. Empty paragraphs are dropped.
func SplitParagraphs(normalized string) []string {
	var paragraphs []string
	for _, p := range paragraphBoundary.Split(normalized, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// paragraphBoundary matches one or more blank lines.
var paragraphBoundary = regexp.MustCompile(`\n\s*\n`)
