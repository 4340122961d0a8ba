package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/jalur/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse records and placements interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := process(cmd)
		if err != nil {
			return err
		}
		return review.Run(r.result)
	},
}

func init() {
	addInputFlags(reviewCmd)
}
