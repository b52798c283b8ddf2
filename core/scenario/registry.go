package scenario

import (
	"errors"
	"strings"
	"sync"

	"github.com/kilianp07/co2dash/core/emissions"
)

// ErrEmptyPlantName is returned when a snapshot has no plant name.
var ErrEmptyPlantName = errors.New("plant name is required")

// Snapshot is the comparison row kept for a plant.
type Snapshot struct {
	Plant     string              `json:"plant"`
	Region    string              `json:"region"`
	Baseline  float64             `json:"baseline"`
	PostTotal float64             `json:"post_total"`
	Reduction float64             `json:"reduction"`
	Breakdown emissions.Breakdown `json:"breakdown"`
}

// Registry keeps plant snapshots in insertion order.
type Registry struct {
	mu    sync.Mutex
	order []string
	data  map[string]Snapshot
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{data: map[string]Snapshot{}}
}

// Add inserts s or replaces the snapshot with the same plant name in place.
func (r *Registry) Add(s Snapshot) error {
	s.Plant = strings.TrimSpace(s.Plant)
	if s.Plant == "" {
		return ErrEmptyPlantName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[s.Plant]; !ok {
		r.order = append(r.order, s.Plant)
	}
	r.data[s.Plant] = s
	return nil
}

// Get returns the snapshot of plant.
func (r *Registry) Get(plant string) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[strings.TrimSpace(plant)]
	return s, ok
}

// List returns the snapshots in insertion order.
func (r *Registry) List() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Snapshot, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.data[name])
	}
	return out
}

// Remove deletes plant and reports whether it existed.
func (r *Registry) Remove(plant string) bool {
	plant = strings.TrimSpace(plant)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[plant]; !ok {
		return false
	}
	delete(r.data, plant)
	for i, n := range r.order {
		if n == plant {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of plants.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Clear drops every snapshot.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.order = nil
	r.data = map[string]Snapshot{}
	r.mu.Unlock()
}
