package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/jalur/internal/config"
	"github.com/abhisek/jalur/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "jalur",
	Short: "Dropout triage and school placement recommendations",
	Long: "Jalur normalizes student and dropout spreadsheets and recommends an education\n" +
		"pathway for every child: stay in school, nearest school, Paket A/B/C and more.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides JALUR_CONFIG, default ./jalur.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(briefCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

type configKey struct{}

// setup loads the config and the logger and stores both in the command
// context. serve logs JSON; everything else logs to the console.
func setup(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	format := observability.FormatConsole
	if cmd == serveCmd {
		format = observability.FormatJSON
	}
	logger, err := observability.NewLogger(cfg.LogLevel, format)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if cfg.Source != "" {
		logger.Debug("config loaded", zap.String("path", cfg.Source))
	}

	ctx := observability.WithLogger(cmd.Context(), logger)
	cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))
	return nil
}

// settings returns what setup stored for cmd.
func settings(cmd *cobra.Command) (*config.Config, *zap.Logger) {
	cfg, ok := cmd.Context().Value(configKey{}).(*config.Config)
	if !ok {
		cfg = config.Default()
	}
	return cfg, observability.FromContext(cmd.Context())
}
