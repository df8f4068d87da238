package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"feder/internal/app"
	"feder/internal/platform/config"
	"feder/internal/platform/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "federctl",
	Short: "Operator tooling for the feder letter service",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(importLogsCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.Version = version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openApp loads configuration the same way the server does. CLI logs go to
// stderr so command output stays parseable.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(ctx, cfg, cliLogger(cfg))
}

func cliLogger(cfg *config.Config) *slog.Logger {
	return logger.NewWithWriter(os.Stderr, "text", cfg.Log.Level)
}
