package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/jalur/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals and distributions for a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := process(cmd)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r.result)
		}
		width, _ := cmd.Flags().GetInt("width")
		fmt.Fprintln(cmd.OutOrStdout(), report.RenderSummary(r.result.Summary, width))
		return nil
	},
}

func init() {
	addInputFlags(summaryCmd)
	summaryCmd.Flags().Bool("json", false, "Print the summary as JSON")
	summaryCmd.Flags().Int("width", 80, "Card width in columns")
}
