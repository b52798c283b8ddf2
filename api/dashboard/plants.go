package dashboard

import (
	"errors"
	"net/http"

	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/core/scenario"
)

type saveRequest struct {
	Name string `json:"name"`
}

// NewPlantsHandler manages the comparison registry of the session:
// GET lists saved plants, POST snapshots the current scenario under the
// optional name, DELETE clears the registry or removes ?name=.
func NewPlantsHandler(o Options) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet, http.MethodPost, http.MethodDelete) {
			return
		}
		reg := o.Session.Plants()
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, reg.List())
			return
		case http.MethodPost:
			if !authorized(w, r, o.Token) {
				return
			}
			var req saveRequest
			if r.ContentLength != 0 {
				if err := decodeJSON(r, &req); err != nil {
					http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
					return
				}
			}
			snap, err := o.Session.SaveCurrent(req.Name)
			if errors.Is(err, scenario.ErrEmptyPlantName) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			o.publish(coremetrics.PlantCountEvent{Count: reg.Len(), Time: o.Now()})
			writeJSON(w, http.StatusCreated, snap)
		case http.MethodDelete:
			if !authorized(w, r, o.Token) {
				return
			}
			if name := r.URL.Query().Get("name"); name != "" {
				if !reg.Remove(name) {
					http.Error(w, "plant not found", http.StatusNotFound)
					return
				}
			} else {
				reg.Clear()
			}
			o.publish(coremetrics.PlantCountEvent{Count: reg.Len(), Time: o.Now()})
			w.WriteHeader(http.StatusNoContent)
		}
	})
}
