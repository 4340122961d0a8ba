package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/jalur/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update [version]",
	Short: "Update jalur to the latest release",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker()
		out := cmd.OutOrStdout()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if check, _ := cmd.Flags().GetBool("check"); check {
			rel, err := checker.Latest(ctx, version)
			if err != nil {
				return err
			}
			if rel.UpdateAvailable {
				fmt.Fprintf(out, "jalur %s is available (running %s)\n%s\n", rel.Latest, version, rel.URL)
			} else {
				fmt.Fprintf(out, "jalur %s is the latest release\n", version)
			}
			return nil
		}

		var target string
		if len(args) == 1 {
			target = args[0]
		}
		err := checker.Update(ctx, version, target, func(_, msg string) {
			fmt.Fprintln(out, msg)
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintf(out, "jalur %s is the latest release\n", version)
			return nil
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo jalur update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
}
