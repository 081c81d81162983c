package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/scrape"
)

var (
	scrapeURL        string
	scrapeRaw        bool
	scrapeUseBrowser bool
	scrapeVerbose    bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch and parse a public profile page",
	Long:  "Fetches a public profile page, falling back to a headless browser for client-rendered pages, and prints the parsed target profile as JSON.",
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeURL, "url", "u", "", "Profile page URL (required)")
	scrapeCmd.Flags().BoolVar(&scrapeRaw, "raw", false, "Print the parsed profile without normalization")
	scrapeCmd.Flags().BoolVar(&scrapeUseBrowser, "use-browser", false, "Render in a headless browser instead of plain HTTP")
	scrapeCmd.Flags().BoolVar(&scrapeVerbose, "verbose", false, "Print fetch progress")

	if err := scrapeCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(_ *cobra.Command, _ []string) error {
	opts := scrape.DefaultOptions()
	opts.ForceBrowser = scrapeUseBrowser

	profile, err := scrape.FetchProfile(context.Background(), scrapeURL, opts, scrapeVerbose)
	if err != nil {
		return err
	}

	if !scrapeRaw {
		profile = normalize.TargetProfile(profile)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(profile)
}
