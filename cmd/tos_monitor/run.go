package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/tos-monitor/internal/config"
	"github.com/jonathan/tos-monitor/internal/detect"
	"github.com/jonathan/tos-monitor/internal/fetch"
	"github.com/jonathan/tos-monitor/internal/llm"
	"github.com/jonathan/tos-monitor/internal/monitor"
	"github.com/jonathan/tos-monitor/internal/report"
	"github.com/jonathan/tos-monitor/internal/similarity"
	"github.com/jonathan/tos-monitor/internal/store"
	"github.com/jonathan/tos-monitor/internal/summarize"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Check all configured companies once and write the report",
	Long: `Fetches each company's Terms-of-Service page, archives new versions, detects
substantive changes and writes data/results.json plus public/data/results.json.

Per-company fetch or analysis failures are recorded in the report; the run
only fails on configuration or report-write errors.`,
	RunE: runMonitorCmd,
}

var (
	runCompaniesPath string
	runSnapshotsDir  string
	runArchiveDir    string
	runResultsPaths  []string
	runAPIKey        string
	runUseBrowser    bool
	runVerbose       bool
)

func init() {
	defaults := config.Default()

	runCommand.Flags().StringVarP(&runCompaniesPath, "companies", "c", defaults.CompaniesPath, "Path to the companies JSON config")
	runCommand.Flags().StringVar(&runSnapshotsDir, "snapshots-dir", defaults.SnapshotsDir, "Directory for per-company snapshots")
	runCommand.Flags().StringVar(&runArchiveDir, "archive-dir", defaults.ArchiveDir, "Directory for the dated version archive")
	runCommand.Flags().StringSliceVar(&runResultsPaths, "results", defaults.ResultsPaths, "Output path(s) for the JSON report")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runMonitorCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := runAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	companies, err := config.LoadCompanies(runCompaniesPath)
	if err != nil {
		return err
	}

	st := store.New(store.Options{
		SnapshotsDir: runSnapshotsDir,
		ArchiveDir:   runArchiveDir,
	})

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.UseBrowser = runUseBrowser
	fetchOpts.Verbose = runVerbose
	fetcher := fetch.NewClient(fetchOpts)

	var summarizer summarize.Summarizer = summarize.Disabled{}
	if apiKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
		if err != nil {
			return fmt.Errorf("failed to create AI client: %w", err)
		}
		defer func() { _ = client.Close() }()
		summarizer = summarize.NewGemini(client)
	} else if runVerbose {
		fmt.Println("GEMINI_API_KEY not set; AI analysis disabled")
	}

	scorer := similarity.NewScorer(similarity.Load(ctx, apiKey))
	detector := detect.NewDetector(scorer, detect.DefaultOptions())

	m := monitor.New(companies, st, fetcher, detector, summarizer, runVerbose)
	rep := m.Run(ctx)

	if err := report.Write(rep, runResultsPaths...); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Printf("Done. Checked %d company/companies.\n", len(rep.Companies))
	return nil
}
