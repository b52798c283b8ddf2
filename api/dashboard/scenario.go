package dashboard

import (
	"net/http"
	"strconv"

	"github.com/kilianp07/co2dash/core/emissions"
	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/core/regions"
	"github.com/kilianp07/co2dash/core/scenario"
)

// NewRegionsHandler lists the regional grid factors via GET /api/regions.
func NewRegionsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, http.StatusOK, regions.All())
	})
}

// resolveRegion validates the region of sc. A region change without an
// explicit electricity factor reseeds it from the table.
func resolveRegion(prev, sc scenario.Scenario) (scenario.Scenario, error) {
	if sc.Region == "" {
		sc.Region = regions.Default().Name
	}
	r, err := regions.Lookup(sc.Region)
	if err != nil {
		return sc, err
	}
	sc.Region = r.Name
	if sc.Region != prev.Region && sc.Factors.Electricity == prev.Factors.Electricity {
		sc.Factors.Electricity = r.Factor
	}
	return sc, nil
}

// NewScenarioHandler reads (GET) or replaces (PUT) the session scenario.
// PUT returns the new evaluation and publishes an estimate event.
func NewScenarioHandler(o Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet, http.MethodPut) {
			return
		}
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, o.Session.Scenario())
			return
		}
		if !authorized(w, r, o.Token) {
			return
		}
		prev := o.Session.Scenario()
		sc := prev
		if err := decodeJSON(r, &sc); err != nil {
			http.Error(w, "invalid scenario: "+err.Error(), http.StatusBadRequest)
			return
		}
		sc, err := resolveRegion(prev, sc)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ev := o.Session.SetScenario(sc)
		o.publish(coremetrics.NewEstimateEvent(ev, o.Now()))
		o.Logger.Debugw("scenario updated", map[string]any{"plant": sc.PlantName(), "baseline": ev.Baseline.Total})
		writeJSON(w, http.StatusOK, ev)
	})
}

// NewEstimateHandler evaluates a posted scenario without touching any
// session via POST /api/estimate. Missing fields take the defaults.
func NewEstimateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodPost) {
			return
		}
		def := scenario.Default()
		sc := def
		if err := decodeJSON(r, &sc); err != nil {
			http.Error(w, "invalid scenario: "+err.Error(), http.StatusBadRequest)
			return
		}
		sc, err := resolveRegion(def, sc)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, scenario.Evaluate(sc))
	})
}

// SweepResponse is the body of GET /api/sweep.
type SweepResponse struct {
	Parameter string            `json:"parameter"`
	Points    []emissions.Point `json:"points"`
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

// NewSweepHandler runs a sensitivity sweep on the session scenario via
// GET /api/sweep?parameter=&from=&to=&step=. The default is an electricity
// sweep from -50 to 50 by 5.
func NewSweepHandler(o Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet) {
			return
		}
		p := emissions.ParamElectricity
		if s := r.URL.Query().Get("parameter"); s != "" {
			var err error
			if p, err = emissions.ParseParameter(s); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		var bounds [3]float64
		for i, q := range []struct {
			name string
			def  float64
		}{{"from", -50}, {"to", 50}, {"step", 5}} {
			v, err := floatParam(r, q.name, q.def)
			if err != nil {
				http.Error(w, "invalid "+q.name, http.StatusBadRequest)
				return
			}
			bounds[i] = v
		}
		deltas, err := emissions.ParseDeltaRange(bounds[0], bounds[1], bounds[2])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ev := o.Session.Evaluate()
		pts := emissions.Collect(ev.Sweep(p, deltas))
		o.publish(coremetrics.SweepEvent{Plant: ev.Scenario.PlantName(), Parameter: p, Points: pts, Time: o.Now()})
		writeJSON(w, http.StatusOK, SweepResponse{Parameter: p.String(), Points: pts})
	})
}
