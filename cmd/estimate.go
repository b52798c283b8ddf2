package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2dash/core/emissions"
	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/i18n"
	"github.com/kilianp07/co2dash/pkg/export"
)

var estimateOpts struct {
	json    bool
	publish bool
	region  string
	actions []string
}

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the emissions of the configured plant",
	RunE:  runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.BoolVar(&estimateOpts.json, "json", false, "print the evaluation as JSON")
	f.BoolVar(&estimateOpts.publish, "publish", false, "send the estimate to the configured metrics sinks")
	f.StringVar(&estimateOpts.region, "region", "", "override the plant region")
	f.StringSliceVar(&estimateOpts.actions, "action", nil, "override the selected actions (scrap, heat, renewable, efficiency)")
	rootCmd.AddCommand(estimateCmd)
}

// currentScenario applies the shared --region and --action overrides.
func currentScenario(region string, actions []string) (scenario.Scenario, error) {
	sc := cfg.Scenario()
	if region != "" {
		var err error
		if sc, err = sc.WithRegion(region); err != nil {
			return sc, err
		}
	}
	if actions != nil {
		flags, err := emissions.ParseActions(actions)
		if err != nil {
			return sc, err
		}
		sc.Actions = flags
	}
	return sc, nil
}

func runEstimate(cmd *cobra.Command, args []string) error {
	sc, err := currentScenario(estimateOpts.region, estimateOpts.actions)
	if err != nil {
		return err
	}
	ev := scenario.Evaluate(sc)
	out := cmd.OutOrStdout()
	if estimateOpts.json {
		err = export.WriteJSON(out, ev)
	} else {
		err = printEvaluation(out, ev, translator())
	}
	if err != nil {
		return err
	}
	if estimateOpts.publish {
		return publishEstimate(ev)
	}
	return nil
}

func publishEstimate(ev scenario.Evaluation) error {
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	recErr := sink.RecordEstimate(coremetrics.NewEstimateEvent(ev, time.Now()))
	return errors.Join(recErr, coremetrics.Close(sink))
}

func printEvaluation(w io.Writer, ev scenario.Evaluation, tr *i18n.Translator) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s:\t%s\n", tr.T(i18n.Plant), ev.Scenario.PlantName())
	fmt.Fprintf(tw, "%s:\t%s\n", tr.T(i18n.Region), ev.Scenario.Region)
	for _, e := range ev.Baseline.Breakdown.Entries() {
		fmt.Fprintf(tw, "  %s\t%s\n", tr.Source(e.Source), tr.Tonnes(e.Value))
	}
	fmt.Fprintf(tw, "%s:\t%s\n", tr.T(i18n.Baseline), tr.Tonnes(ev.Baseline.Total))
	fmt.Fprintf(tw, "%s:\t%s\n", tr.T(i18n.PostAction), tr.Tonnes(ev.PostTotal))
	fmt.Fprintf(tw, "%s:\t%s\n", tr.T(i18n.Reduction), tr.Tonnes(ev.Reduction))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s:\n", tr.T(i18n.SelectedActions))
	if len(ev.Actions) == 0 {
		fmt.Fprintf(w, "  %s\n", tr.T(i18n.None))
	}
	for _, a := range ev.Actions {
		fmt.Fprintf(w, "  - %s (%.0f%%): %s\n", tr.Action(a), a.Fraction()*100, a.Description())
	}
	if len(ev.Recommendations) > 0 {
		fmt.Fprintf(w, "\n%s:\n", tr.T(i18n.Recommendations))
		for _, r := range ev.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	return nil
}
