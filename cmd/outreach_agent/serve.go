package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-drafter/internal/config"
	"github.com/jonathan/outreach-drafter/internal/generation"
	"github.com/jonathan/outreach-drafter/internal/llm"
	"github.com/jonathan/outreach-drafter/internal/server"
	"github.com/jonathan/outreach-drafter/internal/trace"
)

var (
	serveAddr       string
	serveConfig     string
	serveProfile    string
	serveTracePath  string
	serveModel      string
	serveUseBrowser bool
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes endpoints for generating outreach drafts, scraping target profiles, and managing the sender profile.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	serveCmd.Flags().StringVar(&serveProfile, "profile", "", "Path to sender profile JSON (fallback when no stored profile)")
	serveCmd.Flags().StringVar(&serveTracePath, "trace", "", "Path to NDJSON trace file")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Model name override")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for client-rendered pages")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := &config.Config{
		Addr:          serveAddr,
		SenderProfile: serveProfile,
		TracePath:     serveTracePath,
		Model:         serveModel,
		UseBrowser:    serveUseBrowser,
		Verbose:       serveVerbose,
	}

	if serveConfig != "" {
		fileCfg, err := config.Load(serveConfig)
		if err != nil {
			return err
		}
		merged := cfg.MergeWithDefaults(*fileCfg)
		cfg = &merged
	}
	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()
	svc, closeAll, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeAll()

	srv, err := server.New(server.Config{
		Addr:              cfg.Addr,
		DatabaseURL:       cfg.DatabaseURL,
		SenderProfilePath: cfg.SenderProfile,
		UseBrowser:        cfg.UseBrowser,
		Verbose:           cfg.Verbose,
	}, svc)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// buildService wires the model client, trace writer, and generation
// service from config. The returned func closes everything.
func buildService(ctx context.Context, cfg *config.Config) (*generation.Service, func(), error) {
	llmConfig := llm.DefaultGeminiConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
	}

	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create model client: %w", err)
	}

	tracer := trace.NewNopWriter()
	if cfg.TracePath != "" {
		tracer, err = trace.NewWriter(cfg.TracePath)
		if err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to open trace file: %w", err)
		}
	}

	svc := generation.NewService(client, tracer)
	closeAll := func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close trace file: %v\n", err)
		}
		client.Close()
	}
	return svc, closeAll, nil
}
