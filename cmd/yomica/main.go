// Package main is the entry point for the yomica CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yomica/yomica/internal/config"
	"github.com/yomica/yomica/internal/mediator"
	"github.com/yomica/yomica/internal/policy"
	"github.com/yomica/yomica/internal/provider/gemini"
	"github.com/yomica/yomica/internal/shell"
	"github.com/yomica/yomica/internal/tool"
	"github.com/yomica/yomica/internal/ui"
	"google.golang.org/genai"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const systemInstruction = "You are a helpful assistant running in a terminal. " +
	"When the user asks about the local system, use the execute_shell_command tool " +
	"to find out rather than guessing. Keep answers short and concrete."

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		modeFlag  string
		modelFlag string
		verbose   bool
	)

	root := &cobra.Command{
		Use:           "yomica [query...]",
		Short:         "A conversational shell agent backed by Gemini",
		Long: "yomica turns natural-language requests into shell commands via " +
			"Gemini function calling. With no arguments it starts an interactive " +
			"session; with arguments it answers a single query without tool access.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := policy.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			return run(cmd.Context(), mode, modelFlag, verbose, args)
		},
	}

	root.Flags().StringVar(&modeFlag, "mode", string(policy.ModeSafe),
		"approval mode: safe (allowlist only) or wild (prompt for every command)")
	root.Flags().StringVar(&modelFlag, "model", "", "override the configured model")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(versionCmd(), modelsCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("yomica %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available Gemini models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := loadConfig(false)
			prov, err := newProvider(cmd.Context(), cfg, "", logger)
			if err != nil {
				return err
			}
			names, err := prov.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				marker := " "
				if name == prov.GetModel() {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func run(ctx context.Context, mode policy.Mode, modelOverride string, verbose bool, args []string) error {
	cfg, logger := loadConfig(verbose)

	prov, err := newProvider(ctx, cfg, modelOverride, logger)
	if err != nil {
		return err
	}

	executor := shell.NewExecutor(cfg, logger)
	catalog := tool.NewCatalog(cfg, tool.NewShellTool(executor))
	console := ui.NewConsole(os.Stdin, os.Stdout)
	pol := policy.NewService(mode, catalog, console)
	loop := mediator.New(prov, pol, catalog, console, logger)

	if len(args) > 0 {
		// One-shot: answer the query directly, no tool access.
		return loop.RunOnce(ctx, strings.Join(args, " "))
	}

	prov.DefineTools(catalog.Definitions())
	console.WriteNotice(fmt.Sprintf("yomica %s | model %s | mode %s | type 'exit' to quit",
		version, prov.GetModel(), mode))
	return loop.Run(ctx)
}

// loadConfig reads the dotfile, falling back to defaults with a warning
// rather than refusing to start.
func loadConfig(verbose bool) (*config.Config, *slog.Logger) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config load failed, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}
	return cfg, logger
}

func newProvider(ctx context.Context, cfg *config.Config, modelOverride string, logger *slog.Logger) (*gemini.Provider, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY (or GOOGLE_API_KEY) environment variable is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelName := cfg.Model.Name
	if modelOverride != "" {
		modelName = modelOverride
	}
	logger.Debug("provider ready", "model", modelName)

	return gemini.New(gemini.NewSDKClient(client),
		modelName,
		gemini.WithSystemInstruction(systemInstruction),
	), nil
}
