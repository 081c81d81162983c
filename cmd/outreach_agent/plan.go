package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-drafter/internal/observability"
	"github.com/jonathan/outreach-drafter/internal/planning"
	"github.com/jonathan/outreach-drafter/internal/scrape"
	"github.com/jonathan/outreach-drafter/internal/types"
)

var (
	planProfilePath string
	planTargetPath  string
	planTargetURL   string
	planHooks       []string
	planCycle       int
	planJSON        bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the deterministic planning pipeline without generating",
	Long:  "Extracts target facts, builds hook anchors, and assembles the per-variant bridge plan. Makes no model calls, so no API key is needed.",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planProfilePath, "profile", "p", "", "Path to sender profile JSON (required)")
	planCmd.Flags().StringVarP(&planTargetPath, "target", "t", "", "Path to target profile JSON")
	planCmd.Flags().StringVar(&planTargetURL, "target-url", "", "URL of a public profile page to scrape")
	planCmd.Flags().StringSliceVar(&planHooks, "hook", nil, "Conversation hook (repeatable)")
	planCmd.Flags().IntVar(&planCycle, "cycle", 0, "Regeneration cycle counter")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print the full planning result as JSON")

	if err := planCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}

	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	if planTargetPath == "" && planTargetURL == "" {
		return fmt.Errorf("either --target or --target-url is required")
	}

	sender, err := readSenderProfile(planProfilePath)
	if err != nil {
		return err
	}

	var target types.TargetProfile
	if planTargetPath != "" {
		target, err = readTargetProfile(planTargetPath)
	} else {
		target, err = scrape.FetchProfile(context.Background(), planTargetURL, nil, false)
	}
	if err != nil {
		return err
	}

	result := planning.Plan(types.GenerateRequest{
		MyProfile:     sender,
		TargetProfile: target,
		Hooks:         planHooks,
		Cycle:         planCycle,
	})

	if planJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	observability.NewPrinter(os.Stdout).PrintPlan(result)
	return nil
}

// printPlan writes a boxed plan summary, used by generate --verbose.
func printPlan(w io.Writer, sender types.SenderProfile, target types.TargetProfile, hooks []string, cycle int) {
	result := planning.Plan(types.GenerateRequest{
		MyProfile:     sender,
		TargetProfile: target,
		Hooks:         hooks,
		Cycle:         cycle,
	})
	observability.NewPrinter(w).PrintPlan(result)
}
