package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/jalur/internal/schema"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List column profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := settings(cmd)
		registry := schema.NewRegistry()
		if cfg.ProfilesFile != "" {
			extra, err := schema.LoadProfiles(cfg.ProfilesFile)
			if err != nil {
				return err
			}
			registry = schema.NewRegistry(extra...)
		}

		out := cmd.OutOrStdout()
		for i, p := range registry.Profiles() {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s", p.Name)
			if p.Description != "" {
				fmt.Fprintf(out, " - %s", p.Description)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, strings.Repeat("─", 48))
			for _, m := range p.Columns {
				fmt.Fprintf(out, "  %-24s → %s\n", m.Source, m.Field)
			}
		}
		return nil
	},
}
