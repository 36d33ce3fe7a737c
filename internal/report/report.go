// Package report defines the per-run output document, its JSON encoding and
// its atomic multi-location writer.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CompanyResult is the per-company outcome of one run.
type CompanyResult struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	TosURL       string `json:"tosUrl"`
	LastChecked  string `json:"lastChecked"`
	Changed      bool   `json:"changed"`
	ChangeReason string `json:"changeReason"`
	Summary      string `json:"summary"`
}

// Report is the full-run output, overwriting any prior report.
type Report struct {
	UpdatedAt string          `json:"updatedAt"`
	Companies []CompanyResult `json:"companies"`
}

// Marshal encodes the report as pretty-printed UTF-8 JSON. HTML escaping is
// disabled so URLs and non-ASCII characters appear literally.
func Marshal(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// Write validates the report against its schema and writes it atomically to
// every given path. All paths receive the identical payload; a failure for
// one path does not stop the others.
func Write(r *Report, paths ...string) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	if err := Validate(data); err != nil {
		return err
	}

	var g errgroup.Group
	for _, path := range paths {
		g.Go(func() error {
			return writeAtomic(path, data)
		})
	}
	return g.Wait()
}

// writeAtomic writes data to a temporary file in the target directory and
// renames it into place, so readers never observe a half-written report.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
