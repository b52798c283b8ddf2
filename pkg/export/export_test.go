package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/i18n"
)

func referenceEvaluation(actions ...emissions.Action) scenario.Evaluation {
	sc := scenario.Default()
	sc.Plant = "Alpha Steel"
	sc.Monthly = emissions.MonthlyActivity{Production: 500, Coal: 200, Electricity: 100000, ScrapPercent: 20}
	sc.Factors = emissions.EmissionFactors{Coal: 2.5, Electricity: 0.0009, Process: 1.8}
	sc.Actions = emissions.FlagsOf(actions...)
	return scenario.Evaluate(sc)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, referenceEvaluation(emissions.ActionScrap)))
	var got struct {
		Baseline struct {
			Total float64 `json:"total"`
		} `json:"baseline"`
		Actions []string `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.InDelta(t, 15720, got.Baseline.Total, 1e-6)
	assert.Equal(t, []string{"scrap"}, got.Actions)
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, referenceEvaluation(emissions.ActionScrap, emissions.ActionHeat)))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	got := map[string]string{}
	for _, r := range rows[1:] {
		got[r[0]] = r[1]
	}
	assert.Equal(t, []string{"metric", "value"}, rows[0])
	assert.Equal(t, "Alpha Steel", got["plant"])
	assert.Equal(t, "6000", got["coal"])
	assert.Equal(t, "8640", got["process"])
	assert.Equal(t, "scrap;heat", got["actions"])
}

func TestWriteSweepCSV(t *testing.T) {
	var buf bytes.Buffer
	pts := []emissions.Point{{Delta: -50, Total: 15180}, {Delta: 0, Total: 15720}}
	require.NoError(t, WriteSweepCSV(&buf, pts))
	assert.Equal(t, "delta,total\n-50,15180\n0,15720\n", buf.String())
}

func TestWriteComparisonCSV(t *testing.T) {
	var buf bytes.Buffer
	ev := referenceEvaluation()
	require.NoError(t, WriteComparisonCSV(&buf, []scenario.Snapshot{ev.Snapshot("Alpha Steel")}))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha Steel", rows[1][0])
	assert.Equal(t, "15720", rows[1][2])
}

func TestReportLines(t *testing.T) {
	tr := i18n.English()
	gen := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)

	r := Report{Generated: gen, Evaluation: referenceEvaluation(emissions.ActionScrap, emissions.ActionHeat)}
	assert.Equal(t, []string{
		"CO2 Emissions Summary",
		"Generated: 2024-03-05 14:07",
		"Baseline CO2: 15,720.0 t/yr",
		"Post-action CO2: 13,047.6 t/yr",
		"Potential Reduction: 2,672.4 t/yr",
		"Selected Actions:",
		"1. Use more scrap steel",
		"2. Recover wasted heat",
	}, r.Lines(tr))

	r = Report{Title: "Plant A", Generated: gen, Evaluation: referenceEvaluation()}
	lines := r.Lines(tr)
	assert.Equal(t, "Plant A", lines[0])
	assert.Equal(t, "None", lines[len(lines)-1])
}

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 12, 31, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "CO2_Summary_2024-12-31_09-05.pdf", FileName("CO2_Summary", ts))
}

func TestWritePDF(t *testing.T) {
	tr := i18n.English()
	r, err := NewReport(referenceEvaluation(emissions.ActionRenewable), "", time.Now(), tr)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, r, tr))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestReport_FigureHeadings(t *testing.T) {
	tr := i18n.English()
	r, err := NewReport(referenceEvaluation(), "", time.Now(), tr)
	require.NoError(t, err)
	figs := r.figures(tr)
	require.Len(t, figs, 2)
	assert.Equal(t, "Before vs After:", figs[0].heading)
	assert.Equal(t, "Baseline Breakdown:", figs[1].heading)
	assert.Equal(t, r.Images.BeforeAfter, figs[0].data)

	r.Images.BeforeAfter = nil
	figs = r.figures(tr)
	require.Len(t, figs, 1)
	assert.Equal(t, "breakdown", figs[0].name)
}

func TestSavePDF(t *testing.T) {
	tr := i18n.English()
	dir := t.TempDir()
	gen := time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)
	r := Report{Generated: gen, Evaluation: referenceEvaluation()}
	path, err := SavePDF(filepath.Join(dir, "out"), "CO2_Summary", r, tr)
	require.NoError(t, err)
	assert.Equal(t, "CO2_Summary_2024-01-02_03-04.pdf", filepath.Base(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestLoadLogo(t *testing.T) {
	logo, err := LoadLogo("")
	require.NoError(t, err)
	assert.Nil(t, logo)

	_, err = LoadLogo("logo.gif")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	path := filepath.Join(t.TempDir(), "logo.JPEG")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xd8}, 0o600))
	logo, err = LoadLogo(path)
	require.NoError(t, err)
	assert.Equal(t, "JPG", logo.Type)
}

func TestWriteComparisonXLSX(t *testing.T) {
	a := referenceEvaluation().Snapshot("Alpha Steel")
	b := referenceEvaluation(emissions.ActionScrap).Snapshot("Beta Steel")

	var buf bytes.Buffer
	require.NoError(t, WriteComparisonXLSX(&buf, []scenario.Snapshot{a, b}, i18n.English()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ComparisonSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Plant", rows[0][0])
	assert.Equal(t, "Alpha Steel", rows[1][0])
	assert.Equal(t, "Beta Steel", rows[2][0])

	rows, err = f.GetRows(BreakdownSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plant", "Coal", "Electricity", "Process", "Total"}, rows[0])
}
