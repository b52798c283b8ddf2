package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/pkg/charts"
	"github.com/kilianp07/co2dash/pkg/export"
)

var reportOpts struct {
	out     string
	html    string
	region  string
	actions []string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the PDF summary of the configured plant",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportOpts.out, "out", "o", "", "output directory (defaults to report.output_dir)")
	f.StringVar(&reportOpts.html, "html", "", "also write the interactive charts to this HTML file")
	f.StringVar(&reportOpts.region, "region", "", "override the plant region")
	f.StringSliceVar(&reportOpts.actions, "action", nil, "override the selected actions")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	sc, err := currentScenario(reportOpts.region, reportOpts.actions)
	if err != nil {
		return err
	}
	ev := scenario.Evaluate(sc)
	tr := translator()

	rep, err := export.NewReport(ev, cfg.Report.Title, time.Now(), tr)
	if err != nil {
		return err
	}
	if rep.Logo, err = export.LoadLogo(cfg.Report.Logo); err != nil {
		return err
	}
	dir := cfg.Report.OutputDir
	if reportOpts.out != "" {
		dir = reportOpts.out
	}
	path, err := export.SavePDF(dir, cfg.Report.BaseName, rep, tr)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)

	if reportOpts.html == "" {
		return nil
	}
	f, err := os.Create(reportOpts.html)
	if err != nil {
		return fmt.Errorf("create html: %w", err)
	}
	d := charts.Dashboard{
		Evaluation: ev,
		Parameter:  emissions.ParamElectricity,
		Sweep:      emissions.Collect(ev.Sweep(emissions.ParamElectricity, emissions.DefaultElectricityDeltas())),
	}
	if err := d.Render(f, tr); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), reportOpts.html)
	return nil
}
