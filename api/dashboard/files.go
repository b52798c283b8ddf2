package dashboard

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/pkg/charts"
	"github.com/kilianp07/co2dash/pkg/export"
)

func attachment(w http.ResponseWriter, contentType, name string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

// NewPageHandler renders the dashboard page of the session at GET /.
func NewPageHandler(o Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if !allowMethods(w, r, http.MethodGet) {
			return
		}
		ev := o.Session.Evaluate()
		d := charts.Dashboard{
			Evaluation: ev,
			Parameter:  emissions.ParamElectricity,
			Sweep:      emissions.Collect(ev.Sweep(emissions.ParamElectricity, emissions.DefaultElectricityDeltas())),
			Plants:     o.Session.Plants().List(),
		}
		var buf bytes.Buffer
		if err := d.Render(&buf, o.Translator); err != nil {
			o.Logger.Errorf("dashboard: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	})
}

// NewSummaryHandler exports the session evaluation as CSV.
func NewSummaryHandler(o Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet) {
			return
		}
		var buf bytes.Buffer
		if err := export.WriteSummaryCSV(&buf, o.Session.Evaluate()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		attachment(w, "text/csv", "summary.csv")
		_, _ = buf.WriteTo(w)
	})
}

// NewWorkbookHandler exports the comparison registry as an XLSX workbook.
func NewWorkbookHandler(o Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet) {
			return
		}
		var buf bytes.Buffer
		if err := export.WriteComparisonXLSX(&buf, o.Session.Plants().List(), o.Translator); err != nil {
			o.Logger.Errorf("workbook: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "plants.xlsx")
		_, _ = buf.WriteTo(w)
	})
}

// NewReportHandler renders the PDF report of the session.
func NewReportHandler(o Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet) {
			return
		}
		now := o.Now()
		rep, err := export.NewReport(o.Session.Evaluate(), o.Report.Title, now, o.Translator)
		if err != nil {
			o.Logger.Errorf("report charts: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		rep.Logo = o.Report.Logo
		var buf bytes.Buffer
		if err := export.WritePDF(&buf, rep, o.Translator); err != nil {
			o.Logger.Errorf("report: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		attachment(w, "application/pdf", export.FileName(o.Report.BaseName, now))
		_, _ = buf.WriteTo(w)
	})
}
