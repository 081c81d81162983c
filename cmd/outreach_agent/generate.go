package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-drafter/internal/config"
	"github.com/jonathan/outreach-drafter/internal/scrape"
	"github.com/jonathan/outreach-drafter/internal/types"
)

var (
	genProfilePath string
	genTargetPath  string
	genTargetURL   string
	genHooks       []string
	genCycle       int
	genTracePath   string
	genModel       string
	genVerbose     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate three outreach message variants",
	Long:  "Plans a personalization bridge from the sender and target profiles, calls the model, validates the output, and prints three tone-labeled variants as JSON.",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genProfilePath, "profile", "p", "", "Path to sender profile JSON (required)")
	generateCmd.Flags().StringVarP(&genTargetPath, "target", "t", "", "Path to target profile JSON")
	generateCmd.Flags().StringVar(&genTargetURL, "target-url", "", "URL of a public profile page to scrape")
	generateCmd.Flags().StringSliceVar(&genHooks, "hook", nil, "Conversation hook (repeatable)")
	generateCmd.Flags().IntVar(&genCycle, "cycle", 0, "Regeneration cycle counter")
	generateCmd.Flags().StringVar(&genTracePath, "trace", "", "Path to NDJSON trace file")
	generateCmd.Flags().StringVar(&genModel, "model", "", "Model name override")
	generateCmd.Flags().BoolVar(&genVerbose, "verbose", false, "Print the plan before generating")

	if err := generateCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	if genTargetPath == "" && genTargetURL == "" {
		return fmt.Errorf("either --target or --target-url is required")
	}

	sender, err := readSenderProfile(genProfilePath)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var target types.TargetProfile
	if genTargetPath != "" {
		target, err = readTargetProfile(genTargetPath)
	} else {
		target, err = scrape.FetchProfile(ctx, genTargetURL, nil, genVerbose)
	}
	if err != nil {
		return err
	}

	cfg := &config.Config{
		TracePath: genTracePath,
		Model:     genModel,
		Verbose:   genVerbose,
	}
	cfg.FromEnv()
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	svc, closeAll, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeAll()

	if genVerbose {
		printPlan(os.Stderr, sender, target, genHooks, genCycle)
	}

	resp, err := svc.Generate(ctx, types.GenerateRequest{
		MyProfile:     sender,
		TargetProfile: target,
		Hooks:         genHooks,
		Cycle:         genCycle,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func readSenderProfile(path string) (types.SenderProfile, error) {
	var profile types.SenderProfile
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("failed to read sender profile %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("failed to parse sender profile JSON: %w", err)
	}
	return profile, nil
}

func readTargetProfile(path string) (types.TargetProfile, error) {
	var profile types.TargetProfile
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("failed to read target profile %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("failed to parse target profile JSON: %w", err)
	}
	return profile, nil
}
