package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	return New(Options{
		SnapshotsDir: filepath.Join(root, "data", "snapshots"),
		ArchiveDir:   filepath.Join(root, "terms_of_service"),
	})
}

func fixClock(s *Store, day string) {
	ts, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	s.now = func() time.Time { return ts }
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, exists, err := s.ReadSnapshot("Acme")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.WriteSnapshot("Acme", "Hello ToS"))
	text, exists, err := s.ReadSnapshot("Acme")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "Hello ToS", text)

	require.NoError(t, s.WriteSnapshot("Acme", "Hello ToS v2"))
	text, _, err = s.ReadSnapshot("Acme")
	require.NoError(t, err)
	assert.Equal(t, "Hello ToS v2", text)
}

func TestArchiveIfChanged_FirstRunCreatesArchive(t *testing.T) {
	s := newTestStore(t)

	archived, err := s.ArchiveIfChanged("Acme", "Hello ToS")
	require.NoError(t, err)
	assert.True(t, archived)

	names, err := s.ListVersions("Acme")
	require.NoError(t, err)
	require.Len(t, names, 1)

	latest, exists, err := s.LatestVersion("Acme")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "Hello ToS", latest)
}

func TestArchiveIfChanged_UnchangedWritesNothing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ArchiveIfChanged("Acme", "Hello ToS")
	require.NoError(t, err)

	archived, err := s.ArchiveIfChanged("Acme", "Hello ToS")
	require.NoError(t, err)
	assert.False(t, archived)

	names, err := s.ListVersions("Acme")
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestArchiveIfChanged_ChangedContentCreatesSecondFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ArchiveIfChanged("Acme", "Version 1")
	require.NoError(t, err)
	archived, err := s.ArchiveIfChanged("Acme", "Version 2")
	require.NoError(t, err)
	assert.True(t, archived)

	names, err := s.ListVersions("Acme")
	require.NoError(t, err)
	assert.Len(t, names, 2)

	latest, _, err := s.LatestVersion("Acme")
	require.NoError(t, err)
	assert.Equal(t, "Version 2", latest)
}

func TestArchiveIfChanged_SameDayCollisionAddsSuffix(t *testing.T) {
	s := newTestStore(t)
	fixClock(s, "2026-01-01")

	_, err := s.ArchiveIfChanged("Acme", "Version A")
	require.NoError(t, err)
	_, err = s.ArchiveIfChanged("Acme", "Version B")
	require.NoError(t, err)
	_, err = s.ArchiveIfChanged("Acme", "Version C")
	require.NoError(t, err)

	names, err := s.ListVersions("Acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-01.txt", "2026-01-01_1.txt", "2026-01-01_2.txt"}, names)

	// Earlier versions must be untouched.
	data, err := os.ReadFile(filepath.Join(s.companyArchiveDir("Acme"), "2026-01-01.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Version A", string(data))

	latest, _, err := s.LatestVersion("Acme")
	require.NoError(t, err)
	assert.Equal(t, "Version C", latest)
}

func TestListVersions_ChronologicalAcrossDaysAndSuffixes(t *testing.T) {
	s := newTestStore(t)

	fixClock(s, "2026-01-02")
	_, err := s.ArchiveIfChanged("Acme", "day two")
	require.NoError(t, err)

	// A version dated earlier must sort before it even though it is written
	// later.
	fixClock(s, "2026-01-01")
	dir := s.companyArchiveDir("Acme")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2026-01-01.txt"), []byte("day one"), 0o644))

	names, err := s.ListVersions("Acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-01.txt", "2026-01-02.txt"}, names)
}

func TestListVersions_TwoDigitSuffixOrdering(t *testing.T) {
	s := newTestStore(t)
	fixClock(s, "2026-01-01")

	for i := 0; i < 12; i++ {
		archived, err := s.ArchiveIfChanged("Acme", "Version "+string(rune('A'+i)))
		require.NoError(t, err)
		require.True(t, archived)
	}

	names, err := s.ListVersions("Acme")
	require.NoError(t, err)
	require.Len(t, names, 12)
	assert.Equal(t, "2026-01-01_11.txt", names[len(names)-1])

	latest, _, err := s.LatestVersion("Acme")
	require.NoError(t, err)
	assert.Equal(t, "Version L", latest)
}

func TestArchive_PreviousVersionsRetained(t *testing.T) {
	s := newTestStore(t)

	for _, text := range []string{"Version 1", "Version 2", "Version 3"} {
		_, err := s.ArchiveIfChanged("Acme", text)
		require.NoError(t, err)
	}

	names, err := s.ListVersions("Acme")
	require.NoError(t, err)
	assert.Len(t, names, 3)
}

func TestSummary_ReadMissing(t *testing.T) {
	s := newTestStore(t)
	_, exists, err := s.ReadSummary("NoCompany")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSummary_WriteThenRead(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.WriteSummary("Acme", "This is the summary."))

	summary, exists, err := s.ReadSummary("Acme")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "This is the summary.", summary)
}

func TestSummary_Overwrites(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.WriteSummary("Acme", "Old summary."))
	require.NoError(t, s.WriteSummary("Acme", "New summary."))

	summary, _, err := s.ReadSummary("Acme")
	require.NoError(t, err)
	assert.Equal(t, "New summary.", summary)
}

func TestSummary_NotCountedAsArchiveVersion(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.WriteSummary("Acme", "A summary."))

	_, exists, err := s.LatestVersion("Acme")
	require.NoError(t, err)
	assert.False(t, exists)

	names, err := s.ListVersions("Acme")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_SluggedCompanyNames(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.WriteSnapshot("Acme, Inc. / EU", "text"))

	_, err := os.Stat(filepath.Join(s.snapshotsDir, "Acme__Inc____EU.txt"))
	assert.NoError(t, err)
}
