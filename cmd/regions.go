package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2dash/core/regions"
	"github.com/kilianp07/co2dash/internal/i18n"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the regional grid emission factors",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr := translator()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\t%s\n", tr.T(i18n.Region), tr.T(i18n.FactorElec))
		for _, r := range regions.All() {
			fmt.Fprintf(tw, "%s\t%s\n", r.Name, tr.Number(r.Factor, 5))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}
