// Package cli implements the aidash command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"aidash/internal/config"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "aidash",
		Short: "Global AI content impact dashboard",
		Long: `aidash loads the AI content impact dataset once and serves an interactive
dashboard of adoption, job loss, revenue, trust and content volume metrics
filterable by year, country and industry.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (default ./aidash.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newSummaryCommand(opts))
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// loadConfig reads file and env settings, then applies the flag overrides.
func (o *rootOptions) loadConfig(apply func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.JSONLogs() {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version == "dev" || version == "" {
				version = "development"
			}
			if commit == "none" || commit == "" {
				commit = "local-build"
			}
			if date == "unknown" || date == "" {
				date = "local-build"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "aidash %s (%s) built on %s\n", version, commit, date)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
