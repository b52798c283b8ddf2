// Package dashboard serves the interactive dashboard page and the JSON,
// CSV, XLSX and PDF endpoints of a session.
package dashboard

import (
	"net/http"
	"time"

	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/infra/logger"
	"github.com/kilianp07/co2dash/internal/eventbus"
	"github.com/kilianp07/co2dash/internal/i18n"
	"github.com/kilianp07/co2dash/pkg/export"
)

// ReportOptions configures the PDF endpoint.
type ReportOptions struct {
	Title    string
	BaseName string
	Logo     *export.Logo
}

// Options holds the collaborators of the dashboard handlers.
type Options struct {
	Session *scenario.Session
	// Events receives estimate, sweep and plant count events. Optional.
	Events     *eventbus.TypedBus[coremetrics.Event]
	Translator *i18n.Translator
	Report     ReportOptions
	// Token protects mutating routes when non-empty.
	Token  string
	Logger logger.Logger
	Now    func() time.Time
}

func (o *Options) setDefaults() {
	if o.Session == nil {
		o.Session = scenario.NewSession(scenario.Default())
	}
	if o.Translator == nil {
		o.Translator = i18n.English()
	}
	if o.Report.BaseName == "" {
		o.Report.BaseName = "CO2_Summary"
	}
	if o.Logger == nil {
		o.Logger = logger.NopLogger{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

func (o Options) publish(ev coremetrics.Event) {
	if o.Events != nil {
		o.Events.Publish(ev)
	}
}

// NewHandler returns the dashboard router wrapped in panic recovery.
func NewHandler(o Options) http.Handler {
	o.setDefaults()
	mux := http.NewServeMux()
	mux.Handle("/", NewPageHandler(o))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/api/regions", NewRegionsHandler())
	mux.Handle("/api/scenario", NewScenarioHandler(o))
	mux.Handle("/api/estimate", NewEstimateHandler())
	mux.Handle("/api/sweep", NewSweepHandler(o))
	mux.Handle("/api/plants", NewPlantsHandler(o))
	mux.Handle("/api/plants.xlsx", NewWorkbookHandler(o))
	mux.Handle("/api/report.pdf", NewReportHandler(o))
	mux.Handle("/api/summary.csv", NewSummaryHandler(o))
	return Recover(o.Logger, mux)
}
