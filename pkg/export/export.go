// Package export serializes evaluations: JSON and CSV summaries, the PDF
// report, and the plant comparison workbook.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/scenario"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteJSON writes the evaluation to w in indented JSON format.
func WriteJSON(w io.Writer, ev scenario.Evaluation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ev)
}

// WriteSummaryCSV writes the evaluation as metric/value rows.
func WriteSummaryCSV(w io.Writer, ev scenario.Evaluation) error {
	actions := make([]string, len(ev.Actions))
	for i, a := range ev.Actions {
		actions[i] = a.String()
	}
	rows := [][]string{
		{"metric", "value"},
		{"plant", ev.Scenario.PlantName()},
		{"region", ev.Scenario.Region},
	}
	for _, e := range ev.Baseline.Breakdown.Entries() {
		rows = append(rows, []string{e.Source.String(), formatFloat(e.Value)})
	}
	rows = append(rows,
		[]string{"baseline_total", formatFloat(ev.Baseline.Total)},
		[]string{"reduction_fraction", formatFloat(ev.Fraction)},
		[]string{"reduction", formatFloat(ev.Reduction)},
		[]string{"post_total", formatFloat(ev.PostTotal)},
		[]string{"actions", strings.Join(actions, ";")},
	)
	return writeCSV(w, rows)
}

// WriteSweepCSV writes sweep points with delta/total headers.
func WriteSweepCSV(w io.Writer, points []emissions.Point) error {
	rows := make([][]string, 0, len(points)+1)
	rows = append(rows, []string{"delta", "total"})
	for _, p := range points {
		rows = append(rows, []string{formatFloat(p.Delta), formatFloat(p.Total)})
	}
	return writeCSV(w, rows)
}

// WriteComparisonCSV writes one row per saved plant.
func WriteComparisonCSV(w io.Writer, plants []scenario.Snapshot) error {
	rows := [][]string{{"plant", "region", "baseline", "post_total", "reduction", "coal", "electricity", "process"}}
	for _, s := range plants {
		rows = append(rows, []string{
			s.Plant,
			s.Region,
			formatFloat(s.Baseline),
			formatFloat(s.PostTotal),
			formatFloat(s.Reduction),
			formatFloat(s.Breakdown.Coal),
			formatFloat(s.Breakdown.Electricity),
			formatFloat(s.Breakdown.Process),
		})
	}
	return writeCSV(w, rows)
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
