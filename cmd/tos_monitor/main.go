// Package main provides the entry point for the Terms-of-Service monitor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tos_monitor",
	Short: "Terms-of-Service change monitor",
	Long:  "tos_monitor fetches the Terms-of-Service pages of configured companies, archives every version, detects substantive changes and reports them as JSON with AI-generated summaries.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
