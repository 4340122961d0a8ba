package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/jalur/internal/pipeline"
	"github.com/abhisek/jalur/internal/report"
	"github.com/abhisek/jalur/internal/table"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Annotate a spreadsheet with normalized fields and placements",
	Example: "  jalur run -f data_siswa.csv -o hasil.xlsx\n" +
		"  jalur run -f data.xlsx --sheet Sheet2 --rules extended --format json",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := process(cmd)
		if err != nil {
			return err
		}
		if err := pipeline.Annotate(r.table, r.result); err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		format, err := outputFormat(cmd, out, r.format)
		if err != nil {
			return err
		}
		if err := writeTable(cmd, out, r.table, format); err != nil {
			return err
		}

		_, logger := settings(cmd)
		if out != "" {
			logger.Info("wrote placements", zap.String("path", out), zap.String("format", string(format)))
		}
		if show, _ := cmd.Flags().GetBool("summary"); show {
			fmt.Fprintln(cmd.ErrOrStderr(), report.RenderSummary(r.result.Summary, 80))
		}
		return nil
	},
}

// outputFormat picks --format, then the --out extension, then the input
// format.
func outputFormat(cmd *cobra.Command, out string, in table.Format) (table.Format, error) {
	if cmd.Flags().Changed("format") {
		f, _ := cmd.Flags().GetString("format")
		return table.ParseFormat(f)
	}
	if out != "" {
		return table.FormatFromPath(out)
	}
	return in, nil
}

func writeTable(cmd *cobra.Command, out string, t *table.Table, format table.Format) error {
	if out == "" {
		if format == table.FormatXLSX {
			return errors.New("xlsx output needs --out")
		}
		return table.Write(cmd.OutOrStdout(), t, format)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := table.Write(f, t, format); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	return f.Close()
}

func init() {
	addInputFlags(runCmd)
	runCmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	runCmd.Flags().String("format", "", "Output format: csv, json or xlsx (default: from --out or input)")
	runCmd.Flags().Bool("summary", false, "Print the summary card to stderr")
}
