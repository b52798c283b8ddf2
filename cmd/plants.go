package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/i18n"
	"github.com/kilianp07/co2dash/internal/plants"
	"github.com/kilianp07/co2dash/pkg/export"
)

var plantsOpts struct {
	xlsx string
	csv  bool
}

var plantsCmd = &cobra.Command{
	Use:   "plants FILE",
	Short: "Compare the plants of a CSV or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlants,
}

func init() {
	plantsCmd.Flags().StringVar(&plantsOpts.xlsx, "xlsx", "", "write the comparison workbook to this file")
	plantsCmd.Flags().BoolVar(&plantsOpts.csv, "csv", false, "print CSV")
	rootCmd.AddCommand(plantsCmd)
}

func runPlants(cmd *cobra.Command, args []string) error {
	list, err := plants.Load(args[0])
	if err != nil {
		return err
	}
	reg := scenario.NewRegistry()
	if err := plants.Compare(list, cfg.Scenario(), reg); err != nil {
		return err
	}
	snaps := reg.List()
	tr := translator()
	out := cmd.OutOrStdout()

	if plantsOpts.csv {
		if err := export.WriteComparisonCSV(out, snaps); err != nil {
			return err
		}
	} else {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", tr.T(i18n.Plant), tr.T(i18n.Region), tr.T(i18n.Baseline), tr.T(i18n.PostAction))
		for _, s := range snaps {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Plant, s.Region, tr.Tonnes(s.Baseline), tr.Tonnes(s.PostTotal))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if plantsOpts.xlsx == "" {
		return nil
	}
	f, err := os.Create(plantsOpts.xlsx)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	if err := export.WriteComparisonXLSX(f, snaps, tr); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
