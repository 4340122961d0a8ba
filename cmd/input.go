package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/jalur/internal/config"
	"github.com/abhisek/jalur/internal/pipeline"
	"github.com/abhisek/jalur/internal/table"
)

// addInputFlags registers the flags shared by every command that reads a
// spreadsheet.
func addInputFlags(c *cobra.Command) {
	c.Flags().StringP("file", "f", "", "Input spreadsheet (.csv, .xlsx or .json)")
	c.Flags().String("sheet", "", "XLSX worksheet to read (default: first sheet)")
	c.Flags().StringP("profile", "p", "", "Column profile: auto, school, posyandu, english or a custom name")
	c.Flags().StringP("rules", "r", "", "Rule set: standard, extended or a rule file path")
	c.Flags().String("keywords", "", "Reason keyword table (YAML)")
	c.Flags().String("locale", "", "Recommendation language: id or en")
	c.Flags().IntP("workers", "w", 0, "Rows normalized in parallel")
	_ = c.MarkFlagRequired("file")
}

// pipelineOptions merges cfg with the flags the user set explicitly.
func pipelineOptions(cmd *cobra.Command, cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{
		Profile:      cfg.Profile,
		Rules:        cfg.Rules,
		KeywordsFile: cfg.KeywordsFile,
		SynonymsFile: cfg.SynonymsFile,
		ProfilesFile: cfg.ProfilesFile,
		Locale:       cfg.Locale,
		DateLayouts:  cfg.DateLayouts,
		Workers:      cfg.Workers,
	}
	flags := cmd.Flags()
	if flags.Changed("profile") {
		opts.Profile, _ = flags.GetString("profile")
	}
	if flags.Changed("rules") {
		opts.Rules, _ = flags.GetString("rules")
	}
	if flags.Changed("keywords") {
		opts.KeywordsFile, _ = flags.GetString("keywords")
	}
	if flags.Changed("locale") {
		opts.Locale, _ = flags.GetString("locale")
	}
	if flags.Changed("workers") {
		opts.Workers, _ = flags.GetInt("workers")
	}
	return opts
}

type run struct {
	table  *table.Table
	format table.Format
	opts   pipeline.Options
	result *pipeline.Result
}

// process reads --file and runs the pipeline over it.
func process(cmd *cobra.Command) (*run, error) {
	cfg, logger := settings(cmd)
	path, _ := cmd.Flags().GetString("file")
	sheet, _ := cmd.Flags().GetString("sheet")

	format, err := table.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	t, err := table.Read(f, format, table.ReadOptions{Sheet: sheet})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	opts := pipelineOptions(cmd, cfg)
	opts.Logger = logger
	proc, err := pipeline.NewProcessor(opts)
	if err != nil {
		return nil, err
	}
	res, err := proc.Process(cmd.Context(), t)
	if err != nil {
		return nil, err
	}
	return &run{table: t, format: format, opts: opts, result: res}, nil
}
