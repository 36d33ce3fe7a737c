package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified_BasicChange(t *testing.T) {
	old := "line one\nline two\nline three\n"
	new := "line one\nline 2\nline three\n"

	got, err := Unified(old, new)
	require.NoError(t, err)

	assert.Contains(t, got, "--- previous")
	assert.Contains(t, got, "+++ current")
	assert.Contains(t, got, "-line two")
	assert.Contains(t, got, "+line 2")
	assert.Contains(t, got, "@@")
}

func TestUnified_IdenticalTexts(t *testing.T) {
	got, err := Unified("same\n", "same\n")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnified_CappedAtMaxLines(t *testing.T) {
	var oldSB, newSB strings.Builder
	for i := 0; i < 2000; i++ {
		fmt.Fprintf(&oldSB, "old line %d\n", i)
		fmt.Fprintf(&newSB, "new line %d\n", i)
	}

	got, err := Unified(oldSB.String(), newSB.String())
	require.NoError(t, err)

	lineCount := strings.Count(got, "\n")
	assert.LessOrEqual(t, lineCount, MaxLines)
}

func TestUnified_KeepsContextLines(t *testing.T) {
	old := "a\nb\nc\nd\ne\nf\ng\nCHANGED\nh\ni\nj\nk\n"
	new := "a\nb\nc\nd\ne\nf\ng\nDIFFERENT\nh\ni\nj\nk\n"

	got, err := Unified(old, new)
	require.NoError(t, err)

	// Three lines of context on each side of the hunk.
	assert.Contains(t, got, " e\n")
	assert.Contains(t, got, " j\n")
	assert.NotContains(t, got, " a\n")
	assert.NotContains(t, got, " k\n")
}
