package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/jalur/internal/brief"
	"github.com/abhisek/jalur/internal/llm"
)

var errNoProvider = errors.New("no LLM provider configured: set JALUR_LLM_PROVIDER or one of ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY")

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Write an outreach brief from a spreadsheet's aggregates",
	Long: "Brief sends aggregate counts (no names or birth dates) to an LLM and prints\n" +
		"a short list of outreach priorities. Placements never depend on it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := settings(cmd)

		llmCfg, ok := llm.ConfigFromEnv(cfg.LLM.Provider, cfg.LLM.Model)
		if !ok {
			return errNoProvider
		}
		if cfg.LLM.Timeout > 0 {
			llmCfg.Timeout = cfg.LLM.Timeout
		}
		provider, err := llm.NewProvider(cmd.Context(), llmCfg, logger)
		if err != nil {
			return fmt.Errorf("llm provider: %w", err)
		}

		r, err := process(cmd)
		if err != nil {
			return err
		}

		bcfg := brief.DefaultConfig()
		bcfg.Locale = r.opts.Locale
		b, err := brief.NewService(provider, bcfg).Generate(cmd.Context(), r.result.Summary)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(b)
		}
		fmt.Fprintln(cmd.OutOrStdout(), b.Text())
		return nil
	},
}

func init() {
	addInputFlags(briefCmd)
	briefCmd.Flags().Bool("json", false, "Print the brief as JSON")
}
