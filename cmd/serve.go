package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/jalur/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the placement API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := settings(cmd)
		defer logger.Sync() //nolint:errcheck

		opts := pipelineOptions(cmd, cfg)
		opts.Logger = logger
		scfg := server.Config{
			Addr:           cfg.Server.Addr,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			MaxUploadBytes: cfg.MaxUploadBytes(),
			Pipeline:       opts,
		}
		if cmd.Flags().Changed("addr") {
			scfg.Addr, _ = cmd.Flags().GetString("addr")
		}

		srv, err := server.New(scfg, logger)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().StringP("profile", "p", "", "Default column profile")
	serveCmd.Flags().StringP("rules", "r", "", "Default rule set: standard, extended or a rule file path")
	serveCmd.Flags().String("keywords", "", "Reason keyword table (YAML)")
	serveCmd.Flags().String("locale", "", "Default recommendation language: id or en")
	serveCmd.Flags().IntP("workers", "w", 0, "Rows normalized in parallel per request")
}
