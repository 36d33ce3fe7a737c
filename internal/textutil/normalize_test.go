package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_LowercasesAndTrims(t *testing.T) {
	got := Normalize("  Hello WORLD  ")
	assert.Equal(t, "hello world", got)
}

func TestNormalize_UnifiesLineEndings(t *testing.T) {
	got := Normalize("line one\r\nline two\rline three\nline four")
	assert.Equal(t, "line one\nline two\nline three\nline four", got)
}

func TestNormalize_CollapsesHorizontalWhitespace(t *testing.T) {
	got := Normalize("terms\t\tof \t service")
	assert.Equal(t, "terms of service", got)
}

func TestNormalize_TrimsEachLine(t *testing.T) {
	got := Normalize("   first line   \n\t second line \t")
	assert.Equal(t, "first line\nsecond line", got)
}

func TestNormalize_CollapsesBlankLineRuns(t *testing.T) {
	// Three or more blank lines collapse to exactly two; a single blank line
	// is preserved as-is.
	got := Normalize("para one\n\n\n\n\n\npara two\n\npara three")
	assert.Equal(t, "para one\n\n\npara two\n\npara three", got)
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \n\n \t \n"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello ToS",
		"  MIXED Case\r\n\twith\t tabs  \n\n\n\n\nand blank runs \n",
		"a\nb\n\nc\n\n\n\nd",
		"unicode:  café  ©  テスト",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestSplitParagraphs(t *testing.T) {
	text := Normalize("First paragraph.\n\nSecond paragraph\nspans two lines.\n\n\n\nThird.")
	paragraphs := SplitParagraphs(text)
	assert.Equal(t, []string{
		"first paragraph.",
		"second paragraph\nspans two lines.",
		"third.",
	}, paragraphs)
}

func TestSplitParagraphs_Empty(t *testing.T) {
	assert.Empty(t, SplitParagraphs(""))
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Acme":            "Acme",
		"Acme Corp":       "Acme_Corp",
		"OpenAI, Inc.":    "OpenAI__Inc_",
		"a/b\\c":          "a_b_c",
		"already_safe-1":  "already_safe-1",
		"":                "",
		"日本語":             "___",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slug(in), "slug of %q", in)
	}
}
