// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Company is one monitored entity. Companies are loaded once per invocation
// and immutable for the run.
type Company struct {
	// Name uniquely identifies the company and derives its filesystem slug.
	Name string `json:"name" validate:"required"`
	// TosURL is the Terms-of-Service page to monitor.
	TosURL string `json:"tosUrl" validate:"required,url"`
	// Category is a free-form label carried through to the report.
	Category string `json:"category"`
}

// companiesFile is the on-disk shape of the companies config.
type companiesFile struct {
	Companies []Company `json:"companies" validate:"required,min=1,dive"`
}

var validate = validator.New()

// LoadCompanies loads the monitored company list from a JSON config file.
// Company names must be unique; order is preserved.
func LoadCompanies(path string) ([]Company, error) {
	if path == "" {
		return nil, fmt.Errorf("companies config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read companies config %s: %w", path, err)
	}

	var file companiesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse companies config JSON: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("companies config invalid: %w", err)
	}

	seen := make(map[string]bool, len(file.Companies))
	for _, company := range file.Companies {
		if seen[company.Name] {
			return nil, fmt.Errorf("companies config invalid: duplicate company name %q", company.Name)
		}
		seen[company.Name] = true
	}

	return file.Companies, nil
}

// Config holds the runtime settings for one monitoring run.
type Config struct {
	// CompaniesPath is the JSON file listing monitored companies.
	CompaniesPath string
	// SnapshotsDir holds the per-company raw-text snapshots.
	SnapshotsDir string
	// ArchiveDir holds the per-company dated version history.
	ArchiveDir string
	// ResultsPaths are the output locations for the run report.
	ResultsPaths []string
	// APIKey is the Gemini API key; empty disables AI analysis.
	APIKey string
	// UseBrowser enables headless-browser rendering for SPA pages.
	UseBrowser bool
	// Verbose prints detailed progress information.
	Verbose bool
}

// Default returns the default runtime settings relative to the working
// directory, matching the persisted state layout.
func Default() *Config {
	return &Config{
		CompaniesPath: "companies.json",
		SnapshotsDir:  filepath.Join("data", "snapshots"),
		ArchiveDir:    "terms_of_service",
		ResultsPaths: []string{
			filepath.Join("data", "results.json"),
			filepath.Join("public", "data", "results.json"),
		},
		APIKey: os.Getenv("GEMINI_API_KEY"),
	}
}
