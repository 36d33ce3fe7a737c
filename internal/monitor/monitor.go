// Package monitor orchestrates one monitoring run over the configured
// companies: fetch, archive, change detection, summarization and reporting.
package monitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/tos-monitor/internal/config"
	"github.com/jonathan/tos-monitor/internal/detect"
	"github.com/jonathan/tos-monitor/internal/diff"
	"github.com/jonathan/tos-monitor/internal/report"
	"github.com/jonathan/tos-monitor/internal/store"
	"github.com/jonathan/tos-monitor/internal/summarize"
)

// initialSummaryPlaceholder is reported when a company has no cached summary
// and no substantive change occurred.
const initialSummaryPlaceholder = "Initial snapshot created. Monitoring active."

// firstVersionReason marks a company whose document was archived for the
// first time.
const firstVersionReason = "first version archived"

// Fetcher retrieves the visible text of a Terms-of-Service page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Monitor runs the check cycle for a fixed list of companies.
type Monitor struct {
	companies  []config.Company
	store      *store.Store
	fetcher    Fetcher
	detector   *detect.Detector
	summarizer summarize.Summarizer
	verbose    bool

	// now is the clock used for report timestamps; overridable in tests.
	now func() time.Time
}

// New creates a Monitor. All collaborators are required.
func New(companies []config.Company, st *store.Store, fetcher Fetcher, detector *detect.Detector, summarizer summarize.Summarizer, verbose bool) *Monitor {
	return &Monitor{
		companies:  companies,
		store:      st,
		fetcher:    fetcher,
		detector:   detector,
		summarizer: summarizer,
		verbose:    verbose,
		now:        time.Now,
	}
}

// Run checks every company in order and returns the run report. Per-company
// failures are captured in the report rather than aborting the run.
func (m *Monitor) Run(ctx context.Context) *report.Report {
	rep := &report.Report{
		UpdatedAt: m.now().UTC().Format(time.RFC3339),
		Companies: make([]report.CompanyResult, 0, len(m.companies)),
	}
	for _, company := range m.companies {
		if m.verbose {
			log.Printf("checking %s (%s)", company.Name, company.TosURL)
		}
		rep.Companies = append(rep.Companies, m.checkCompany(ctx, company))
	}
	return rep
}

func (m *Monitor) checkCompany(ctx context.Context, company config.Company) report.CompanyResult {
	result := report.CompanyResult{
		Name:        company.Name,
		Category:    company.Category,
		TosURL:      company.TosURL,
		LastChecked: m.now().UTC().Format(time.RFC3339),
	}

	newText, err := m.fetcher.Fetch(ctx, company.TosURL)
	if err != nil {
		if m.verbose {
			log.Printf("fetch failed for %s: %v", company.Name, err)
		}
		result.Summary = m.cachedSummaryOr(company.Name, fmt.Sprintf("Connection Error: %v", err))
		return result
	}

	oldText, hadSnapshot, err := m.store.ReadSnapshot(company.Name)
	if err != nil {
		result.Summary = m.cachedSummaryOr(company.Name, fmt.Sprintf("Connection Error: %v", err))
		return result
	}
	if err := m.store.WriteSnapshot(company.Name, newText); err != nil {
		result.Summary = m.cachedSummaryOr(company.Name, fmt.Sprintf("Connection Error: %v", err))
		return result
	}

	archived, err := m.store.ArchiveIfChanged(company.Name, newText)
	if err != nil {
		result.Summary = m.cachedSummaryOr(company.Name, fmt.Sprintf("Connection Error: %v", err))
		return result
	}
	if !archived {
		result.Summary = m.cachedSummaryOr(company.Name, initialSummaryPlaceholder)
		return result
	}

	changed, reason := true, firstVersionReason
	if hadSnapshot {
		changed, reason = m.detector.Detect(ctx, oldText, newText)
	}
	if !changed {
		if m.verbose {
			log.Printf("no substantive change for %s", company.Name)
		}
		result.Summary = m.cachedSummaryOr(company.Name, initialSummaryPlaceholder)
		return result
	}

	summary, err := m.summarize(ctx, hadSnapshot, oldText, newText)
	if err != nil {
		result.Changed = true
		result.ChangeReason = reason
		result.Summary = fmt.Sprintf("Connection Error: AI analysis failed - %v", err)
		return result
	}
	if err := m.store.WriteSummary(company.Name, summary); err != nil && m.verbose {
		log.Printf("failed to cache summary for %s: %v", company.Name, err)
	}

	result.Changed = true
	result.ChangeReason = reason
	result.Summary = summary
	return result
}

// summarize picks diff mode when a previous snapshot exists and differs from
// the new text, and overview mode otherwise.
func (m *Monitor) summarize(ctx context.Context, hadSnapshot bool, oldText, newText string) (string, error) {
	if hadSnapshot && oldText != newText {
		diffText, err := diff.Unified(oldText, newText)
		if err != nil {
			return "", err
		}
		if diffText != "" {
			return m.summarizer.SummarizeDiff(ctx, diffText)
		}
	}
	return m.summarizer.SummarizeOverview(ctx, newText)
}

// cachedSummaryOr returns the cached summary for a company, or fallback when
// none is cached or the cache cannot be read.
func (m *Monitor) cachedSummaryOr(company, fallback string) string {
	summary, ok, err := m.store.ReadSummary(company)
	if err != nil || !ok {
		return fallback
	}
	return summary
}
