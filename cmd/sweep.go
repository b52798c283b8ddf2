package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/i18n"
	"github.com/kilianp07/co2dash/pkg/export"
)

var sweepOpts struct {
	parameter string
	from      float64
	to        float64
	step      float64
	csv       bool
	region    string
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Print a sensitivity sweep of one input",
	RunE:  runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.StringVarP(&sweepOpts.parameter, "parameter", "p", "electricity", "input to vary (production, coal, electricity, scrap)")
	f.Float64Var(&sweepOpts.from, "from", -50, "first delta in percent (points for scrap)")
	f.Float64Var(&sweepOpts.to, "to", 50, "last delta in percent (points for scrap)")
	f.Float64Var(&sweepOpts.step, "step", 5, "delta step")
	f.BoolVar(&sweepOpts.csv, "csv", false, "print CSV")
	f.StringVar(&sweepOpts.region, "region", "", "override the plant region")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	p, err := emissions.ParseParameter(sweepOpts.parameter)
	if err != nil {
		return err
	}
	deltas, err := emissions.ParseDeltaRange(sweepOpts.from, sweepOpts.to, sweepOpts.step)
	if err != nil {
		return err
	}
	sc, err := currentScenario(sweepOpts.region, nil)
	if err != nil {
		return err
	}
	ev := scenario.Evaluate(sc)
	out := cmd.OutOrStdout()
	if sweepOpts.csv {
		return export.WriteSweepCSV(out, emissions.Collect(ev.Sweep(p, deltas)))
	}
	tr := translator()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t\n", tr.T(i18n.Change), tr.T(i18n.Total))
	for d, total := range ev.Sweep(p, deltas) {
		fmt.Fprintf(tw, "%+g\t%s\t\n", d, tr.Tonnes(total))
	}
	return tw.Flush()
}
