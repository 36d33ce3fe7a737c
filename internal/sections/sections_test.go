package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/tos-monitor/internal/textutil"
)

func TestNames_StableOrder(t *testing.T) {
	assert.Equal(t, []string{
		"liability",
		"privacy",
		"arbitration",
		"dispute",
		"termination",
		"user_data",
		"ai",
		"governing_law",
	}, Names())
}

func TestExtract_AssignsParagraphsToSections(t *testing.T) {
	text := textutil.Normalize(`Welcome to our service.

We may terminate or suspend your account at any time.

All disputes are resolved through binding arbitration and you waive any class action rights.`)

	got := Extract(text)

	assert.Contains(t, got["termination"], "terminate or suspend")
	assert.Contains(t, got["arbitration"], "binding arbitration")
	assert.Empty(t, got["privacy"])
	assert.Empty(t, got["governing_law"])
}

func TestExtract_ParagraphMayBelongToMultipleSections(t *testing.T) {
	text := textutil.Normalize(
		"Any dispute will be settled by arbitration under the laws of Delaware.")

	got := Extract(text)

	assert.NotEmpty(t, got["arbitration"])
	assert.NotEmpty(t, got["dispute"])
	assert.NotEmpty(t, got["governing_law"])
	assert.Equal(t, got["arbitration"], got["dispute"])
}

func TestExtract_EveryRegisteredNamePresent(t *testing.T) {
	got := Extract("")
	assert.Len(t, got, len(Names()))
	for _, name := range Names() {
		_, ok := got[name]
		assert.True(t, ok, "section %q missing from result", name)
	}
}

func TestExtract_JoinsMultipleParagraphsWithNewline(t *testing.T) {
	text := textutil.Normalize(`We are not liable for indirect damages.

Unrelated paragraph about fonts and colors.

You agree to indemnify us against all claims.`)

	got := Extract(text)

	assert.Equal(t,
		"we are not liable for indirect damages.\nyou agree to indemnify us against all claims.",
		got["liability"])
}

func TestExtract_CaseInsensitiveMatching(t *testing.T) {
	// Extract operates on normalized (lowercased) text, but the patterns do
	// not rely on that.
	got := Extract("ARBITRATION IS MANDATORY.")
	assert.NotEmpty(t, got["arbitration"])
}
