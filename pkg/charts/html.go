// Package charts renders emission results as interactive HTML charts
// (go-echarts) and as static PNG images (gonum/plot) for documents.
package charts

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/i18n"
)

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// BeforeAfterBar compares the baseline total with the post-action total.
func BeforeAfterBar(ev scenario.Evaluation, tr *i18n.Translator) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: tr.T(i18n.BeforeAfter), Subtitle: ev.Scenario.PlantName()}),
		charts.WithYAxisOpts(opts.YAxis{Name: tr.T(i18n.PerYear)}),
	)
	bar.SetXAxis([]string{tr.T(i18n.Before), tr.T(i18n.After)}).
		AddSeries("CO2", []opts.BarData{
			{Value: round1(ev.Baseline.Total)},
			{Value: round1(ev.PostTotal)},
		})
	return bar
}

// BreakdownPie shows the share of each emission source.
func BreakdownPie(b emissions.Breakdown, tr *i18n.Translator) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: tr.T(i18n.Breakdown)}))
	data := make([]opts.PieData, 0, len(emissions.Sources))
	for _, e := range b.Entries() {
		data = append(data, opts.PieData{Name: tr.Source(e.Source), Value: round1(e.Value)})
	}
	pie.AddSeries(tr.T(i18n.Breakdown), data)
	return pie
}

// SensitivityLine plots total emissions against the parameter delta.
func SensitivityLine(p emissions.Parameter, points []emissions.Point, tr *i18n.Translator) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s: %s", tr.T(i18n.Sensitivity), p)}),
		charts.WithXAxisOpts(opts.XAxis{Name: tr.T(i18n.Change)}),
		charts.WithYAxisOpts(opts.YAxis{Name: tr.T(i18n.PerYear)}),
	)
	xs := make([]string, len(points))
	ys := make([]opts.LineData, len(points))
	for i, pt := range points {
		xs[i] = strconv.FormatFloat(pt.Delta, 'f', -1, 64)
		ys[i] = opts.LineData{Value: round1(pt.Total)}
	}
	line.SetXAxis(xs).AddSeries(tr.T(i18n.Total), ys)
	return line
}

// ComparisonBar groups baseline and post-action totals per saved plant.
func ComparisonBar(plants []scenario.Snapshot, tr *i18n.Translator) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: tr.T(i18n.Comparison)}),
		charts.WithYAxisOpts(opts.YAxis{Name: tr.T(i18n.PerYear)}),
	)
	names := make([]string, len(plants))
	before := make([]opts.BarData, len(plants))
	after := make([]opts.BarData, len(plants))
	for i, s := range plants {
		names[i] = s.Plant
		before[i] = opts.BarData{Value: round1(s.Baseline)}
		after[i] = opts.BarData{Value: round1(s.PostTotal)}
	}
	bar.SetXAxis(names).
		AddSeries(tr.T(i18n.Baseline), before).
		AddSeries(tr.T(i18n.PostAction), after)
	return bar
}

// Dashboard is everything shown on the dashboard page.
type Dashboard struct {
	Evaluation scenario.Evaluation
	Parameter  emissions.Parameter
	Sweep      []emissions.Point
	Plants     []scenario.Snapshot
}

// Page assembles the dashboard charts. The comparison chart is only added
// when at least one plant has been saved.
func (d Dashboard) Page(tr *i18n.Translator) *components.Page {
	page := components.NewPage()
	page.AddCharts(
		BeforeAfterBar(d.Evaluation, tr),
		BreakdownPie(d.Evaluation.Baseline.Breakdown, tr),
	)
	if len(d.Sweep) > 0 {
		page.AddCharts(SensitivityLine(d.Parameter, d.Sweep, tr))
	}
	if len(d.Plants) > 0 {
		page.AddCharts(ComparisonBar(d.Plants, tr))
	}
	return page
}

// Render writes the dashboard page as a standalone HTML document.
func (d Dashboard) Render(w io.Writer, tr *i18n.Translator) error {
	if err := d.Page(tr).Render(w); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}
