package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/i18n"
	"github.com/kilianp07/co2dash/pkg/charts"
)

// ErrUnsupportedImage is returned for logos that are neither PNG nor JPEG.
var ErrUnsupportedImage = errors.New("unsupported image type")

const (
	timestampLayout = "2006-01-02 15:04"
	fileStampLayout = "2006-01-02_15-04"
	pageWidthMM     = 210.0
	marginMM        = 10.0
	logoWidthMM     = 40.0
	chartWidthMM    = 150.0
)

// Logo is an image printed above the report title.
type Logo struct {
	Data []byte
	// Type is "PNG" or "JPG".
	Type string
}

// LoadLogo reads a PNG or JPEG file. An empty path returns nil.
func LoadLogo(path string) (*Logo, error) {
	if path == "" {
		return nil, nil
	}
	var typ string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		typ = "PNG"
	case ".jpg", ".jpeg":
		typ = "JPG"
	default:
		return nil, fmt.Errorf("logo %s: %w", path, ErrUnsupportedImage)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}
	return &Logo{Data: data, Type: typ}, nil
}

// Report is the content of a PDF summary.
type Report struct {
	ID         uuid.UUID
	Title      string
	Generated  time.Time
	Evaluation scenario.Evaluation
	Images     charts.Images
	Logo       *Logo
}

// NewReport renders the chart images for ev and stamps the report.
func NewReport(ev scenario.Evaluation, title string, now time.Time, tr *i18n.Translator) (Report, error) {
	imgs, err := charts.RenderImages(ev, tr)
	if err != nil {
		return Report{}, err
	}
	return Report{
		ID:         uuid.New(),
		Title:      title,
		Generated:  now,
		Evaluation: ev,
		Images:     imgs,
	}, nil
}

// Lines returns the text of the report in print order.
func (r Report) Lines(tr *i18n.Translator) []string {
	title := r.Title
	if title == "" {
		title = tr.T(i18n.Title)
	}
	ev := r.Evaluation
	lines := []string{
		title,
		fmt.Sprintf("%s: %s", tr.T(i18n.Generated), r.Generated.Format(timestampLayout)),
		fmt.Sprintf("%s: %s", tr.T(i18n.Baseline), tr.Tonnes(ev.Baseline.Total)),
		fmt.Sprintf("%s: %s", tr.T(i18n.PostAction), tr.Tonnes(ev.PostTotal)),
		fmt.Sprintf("%s: %s", tr.T(i18n.Reduction), tr.Tonnes(ev.Reduction)),
		tr.T(i18n.SelectedActions) + ":",
	}
	if len(ev.Actions) == 0 {
		return append(lines, tr.T(i18n.None))
	}
	for i, a := range ev.Actions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, tr.Action(a)))
	}
	return lines
}

type figure struct {
	name    string
	heading string
	data    []byte
}

// figures returns the rendered charts with their headings, skipping
// charts that were not rendered.
func (r Report) figures(tr *i18n.Translator) []figure {
	all := []figure{
		{"before_after", tr.T(i18n.BeforeAfter) + ":", r.Images.BeforeAfter},
		{"breakdown", tr.T(i18n.Breakdown) + ":", r.Images.Breakdown},
	}
	out := all[:0]
	for _, f := range all {
		if len(f.data) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// FileName returns "<base>_<YYYY-mm-dd_HH-MM>.pdf".
func FileName(base string, t time.Time) string {
	return fmt.Sprintf("%s_%s.pdf", base, t.Format(fileStampLayout))
}

// WritePDF writes the report to w. Text is converted to cp1252 by the
// core PDF fonts, so characters outside it are not preserved.
func WritePDF(w io.Writer, r Report, tr *i18n.Translator) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)
	pdf.SetCreator("co2dash", false)
	pdf.SetSubject("report "+r.ID.String(), false)
	pdf.SetCreationDate(r.Generated)
	pdf.AddPage()
	enc := pdf.UnicodeTranslatorFromDescriptor("")

	if r.Logo != nil {
		addImage(pdf, "logo", r.Logo.Type, r.Logo.Data, logoWidthMM)
	}

	lines := r.Lines(tr)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, enc(lines[0]), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, enc(lines[1]), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, l := range lines[2:5] {
		pdf.CellFormat(0, 8, enc(l), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, enc(lines[5]), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for _, l := range lines[6:] {
		pdf.CellFormat(0, 7, enc(l), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, f := range r.figures(tr) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, enc(f.heading), "", 1, "L", false, 0, "")
		addImage(pdf, f.name, "PNG", f.data, chartWidthMM)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func addImage(pdf *fpdf.Fpdf, name, typ string, data []byte, width float64) {
	opt := fpdf.ImageOptions{ImageType: typ, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(data))
	x := (pageWidthMM - width) / 2
	pdf.ImageOptions(name, x, -1, width, 0, true, opt, 0, "")
	pdf.Ln(4)
}

// SavePDF writes the report into dir under FileName and returns the path.
func SavePDF(dir, base string, r Report, tr *i18n.Translator) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName(base, r.Generated))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := WritePDF(f, r, tr); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}
