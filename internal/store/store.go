// Package store persists per-company state on the local filesystem: the
// last-fetched snapshot, the append-only dated version archive, and the
// cached AI summary.
//
// All records are keyed by a filesystem-safe slug of the company name. The
// store assumes a single writer; concurrent runs would need per-company
// locking before that assumption can be relaxed.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/tos-monitor/internal/textutil"
)

const (
	// summaryFileName is the one non-dated record in each company's archive
	// directory. It is never listed as a version.
	summaryFileName = "summary.txt"

	dateLayout = "2006-01-02"

	dirPerm  = 0o755
	filePerm = 0o644
)

// versionPattern matches dated archive filenames: 2026-01-01.txt and
// same-day collision variants like 2026-01-01_2.txt.
var versionPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:_(\d+))?\.txt$`)

// Options configures the store layout.
type Options struct {
	// SnapshotsDir holds one raw-text snapshot file per company.
	SnapshotsDir string
	// ArchiveDir holds one directory of dated versions per company.
	ArchiveDir string
}

// Store is the filesystem-backed snapshot, archive and summary store.
type Store struct {
	snapshotsDir string
	archiveDir   string

	// now is the clock used for archive dating; overridable in tests.
	now func() time.Time
}

// New creates a Store rooted at the configured directories.
func New(opts Options) *Store {
	return &Store{
		snapshotsDir: opts.SnapshotsDir,
		archiveDir:   opts.ArchiveDir,
		now:          time.Now,
	}
}

func (s *Store) snapshotPath(company string) string {
	return filepath.Join(s.snapshotsDir, textutil.Slug(company)+".txt")
}

func (s *Store) companyArchiveDir(company string) string {
	return filepath.Join(s.archiveDir, textutil.Slug(company))
}

// ReadSnapshot returns the most recently stored raw text for a company. The
// second return value is false when no snapshot exists.
func (s *Store) ReadSnapshot(company string) (string, bool, error) {
	data, err := os.ReadFile(s.snapshotPath(company))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read snapshot for %q: %w", company, err)
	}
	return string(data), true, nil
}

// WriteSnapshot unconditionally overwrites the snapshot for a company.
func (s *Store) WriteSnapshot(company, text string) error {
	if err := os.MkdirAll(s.snapshotsDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create snapshots dir: %w", err)
	}
	if err := os.WriteFile(s.snapshotPath(company), []byte(text), filePerm); err != nil {
		return fmt.Errorf("failed to write snapshot for %q: %w", company, err)
	}
	return nil
}

// version is a parsed dated archive filename.
type version struct {
	name   string
	date   string
	suffix int
}

// listVersions returns the dated archive files for a company in
// chronological order. The summary record and any stray files are excluded.
// The numeric collision suffix is compared numerically so ordering survives
// more than nine versions in one day.
func (s *Store) listVersions(company string) ([]version, error) {
	entries, err := os.ReadDir(s.companyArchiveDir(company))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list archive for %q: %w", company, err)
	}

	var versions []version
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == summaryFileName {
			continue
		}
		m := versionPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		suffix := 0
		if m[2] != "" {
			suffix, _ = strconv.Atoi(m[2])
		}
		versions = append(versions, version{name: entry.Name(), date: m[1], suffix: suffix})
	}

	sort.Slice(versions, func(i, j int) bool {
		if versions[i].date != versions[j].date {
			return versions[i].date < versions[j].date
		}
		return versions[i].suffix < versions[j].suffix
	})
	return versions, nil
}

// ListVersions returns the dated archive filenames for a company in
// chronological order.
func (s *Store) ListVersions(company string) ([]string, error) {
	versions, err := s.listVersions(company)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(versions))
	for i, v := range versions {
		names[i] = v.name
	}
	return names, nil
}

// LatestVersion returns the most recently archived raw text for a company.
// The second return value is false when no archive exists.
func (s *Store) LatestVersion(company string) (string, bool, error) {
	versions, err := s.listVersions(company)
	if err != nil {
		return "", false, err
	}
	if len(versions) == 0 {
		return "", false, nil
	}
	latest := versions[len(versions)-1]
	data, err := os.ReadFile(filepath.Join(s.companyArchiveDir(company), latest.name))
	if err != nil {
		return "", false, fmt.Errorf("failed to read archived version %s for %q: %w", latest.name, company, err)
	}
	return string(data), true, nil
}

// ArchiveIfChanged appends a new dated version of the raw text if and only if
// it differs byte-for-byte from the most recent archived version. It returns
// true when a version was written, which includes the first-ever archive for
// a company. Existing versions are never overwritten: multiple distinct
// versions on one UTC day receive an incrementing numeric suffix.
func (s *Store) ArchiveIfChanged(company, text string) (bool, error) {
	latest, exists, err := s.LatestVersion(company)
	if err != nil {
		return false, err
	}
	if exists && latest == text {
		return false, nil
	}

	dir := s.companyArchiveDir(company)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return false, fmt.Errorf("failed to create archive dir for %q: %w", company, err)
	}

	date := s.now().UTC().Format(dateLayout)
	name := date + ".txt"
	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			break
		}
		name = fmt.Sprintf("%s_%d.txt", date, n)
	}

	if err := os.WriteFile(filepath.Join(dir, name), []byte(text), filePerm); err != nil {
		return false, fmt.Errorf("failed to archive version for %q: %w", company, err)
	}
	return true, nil
}

// ReadSummary returns the cached AI summary for a company. The second return
// value is false when no summary has been cached.
func (s *Store) ReadSummary(company string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.companyArchiveDir(company), summaryFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read summary for %q: %w", company, err)
	}
	summary := strings.TrimSpace(string(data))
	if summary == "" {
		return "", false, nil
	}
	return summary, true, nil
}

// WriteSummary overwrites the cached AI summary for a company. Summaries are
// not versioned.
func (s *Store) WriteSummary(company, summary string) error {
	dir := s.companyArchiveDir(company)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create archive dir for %q: %w", company, err)
	}
	if err := os.WriteFile(filepath.Join(dir, summaryFileName), []byte(summary), filePerm); err != nil {
		return fmt.Errorf("failed to write summary for %q: %w", company, err)
	}
	return nil
}
