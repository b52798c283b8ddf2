package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/i18n"
)

// Image size used for the PNG renderings.
const (
	ImageWidth  = 6 * vg.Inch
	ImageHeight = 4 * vg.Inch
)

var (
	colorBaseline = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	colorPost     = color.RGBA{R: 60, G: 179, B: 113, A: 255}
)

func writePNG(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(ImageWidth, ImageHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func barPlot(title string, names []string, values plotter.Values, c color.Color, tr *i18n.Translator) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = tr.T(i18n.PerYear)
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, err
	}
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars, plotter.NewGrid())
	p.NominalX(names...)

	xys := make([]plotter.XY, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v}
		labels[i] = tr.Number(v, 0)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	p.Add(l)
	return p, nil
}

// BeforeAfterPNG renders the baseline and post-action totals as bars.
func BeforeAfterPNG(w io.Writer, ev scenario.Evaluation, tr *i18n.Translator) error {
	p, err := barPlot(tr.T(i18n.BeforeAfter),
		[]string{tr.T(i18n.Before), tr.T(i18n.After)},
		plotter.Values{ev.Baseline.Total, ev.PostTotal}, colorPost, tr)
	if err != nil {
		return fmt.Errorf("before/after chart: %w", err)
	}
	return writePNG(p, w)
}

// BreakdownPNG renders the per-source contributions as bars.
func BreakdownPNG(w io.Writer, b emissions.Breakdown, tr *i18n.Translator) error {
	entries := b.Entries()
	names := make([]string, len(entries))
	values := make(plotter.Values, len(entries))
	for i, e := range entries {
		names[i] = tr.Source(e.Source)
		values[i] = e.Value
	}
	p, err := barPlot(tr.T(i18n.Breakdown), names, values, colorBaseline, tr)
	if err != nil {
		return fmt.Errorf("breakdown chart: %w", err)
	}
	return writePNG(p, w)
}

// SensitivityPNG renders a sweep as a line with point markers.
func SensitivityPNG(w io.Writer, param emissions.Parameter, points []emissions.Point, tr *i18n.Translator) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %s", tr.T(i18n.Sensitivity), param)
	p.X.Label.Text = tr.T(i18n.Change)
	p.Y.Label.Text = tr.T(i18n.PerYear)

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.Delta, Y: pt.Total}
	}
	line, scatter, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("sensitivity chart: %w", err)
	}
	line.Color = colorBaseline
	line.Width = vg.Points(2)
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(plotter.NewGrid(), line, scatter)
	return writePNG(p, w)
}

// Images holds the PNG renderings embedded in the PDF report.
type Images struct {
	BeforeAfter []byte
	Breakdown   []byte
}

// RenderImages produces the two report images for an evaluation.
func RenderImages(ev scenario.Evaluation, tr *i18n.Translator) (Images, error) {
	var ba, bd bytes.Buffer
	if err := BeforeAfterPNG(&ba, ev, tr); err != nil {
		return Images{}, err
	}
	if err := BreakdownPNG(&bd, ev.Baseline.Breakdown, tr); err != nil {
		return Images{}, err
	}
	return Images{BeforeAfter: ba.Bytes(), Breakdown: bd.Bytes()}, nil
}
