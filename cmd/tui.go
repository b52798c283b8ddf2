package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := scenario.NewSession(cfg.Scenario())
		return tui.Run(sess, translator())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
