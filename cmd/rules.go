package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/jalur/internal/placement"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print a rule set's cascades in evaluation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := settings(cmd)
		name := cfg.Rules
		if cmd.Flags().Changed("rules") {
			name, _ = cmd.Flags().GetString("rules")
		}
		rules, err := placement.Resolve(name)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Rule set: %s", rules.Name)
		if rules.Base != "" && rules.Base != rules.Name {
			fmt.Fprintf(out, " (keywords from %s)", rules.Base)
		}
		fmt.Fprintln(out)

		for _, c := range rules.Cascades() {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "status = %s\n", c.Status)
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for i, r := range c.Rules {
				fmt.Fprintf(out, "%2d. %-28s %s\n", i+1, r.Name(), r.Describe())
			}
			fmt.Fprintf(out, "    %-28s %s\n", "otherwise", c.Fallback)
		}
		return nil
	},
}

func init() {
	rulesCmd.Flags().StringP("rules", "r", "", "Rule set: standard, extended or a rule file path")
}
