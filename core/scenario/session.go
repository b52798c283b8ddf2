package scenario

import "sync"

// Session is the mutable state of one interactive front end: the current
// inputs and the comparison registry. It is owned by the shell that creates
// it and is safe for concurrent use by its handlers.
type Session struct {
	mu      sync.RWMutex
	current Scenario
	plants  *Registry
}

// NewSession starts a session from s.
func NewSession(s Scenario) *Session {
	return &Session{current: s, plants: NewRegistry()}
}

// Scenario returns a copy of the current inputs.
func (s *Session) Scenario() Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetScenario replaces the current inputs and returns their evaluation.
func (s *Session) SetScenario(sc Scenario) Evaluation {
	s.mu.Lock()
	s.current = sc
	s.mu.Unlock()
	return Evaluate(sc)
}

// Evaluate evaluates the current inputs.
func (s *Session) Evaluate() Evaluation { return Evaluate(s.Scenario()) }

// Plants returns the comparison registry.
func (s *Session) Plants() *Registry { return s.plants }

// SaveCurrent stores the current evaluation under name. An empty name falls
// back to the scenario's plant name.
func (s *Session) SaveCurrent(name string) (Snapshot, error) {
	ev := s.Evaluate()
	if name == "" {
		name = ev.Scenario.PlantName()
	}
	snap := ev.Snapshot(name)
	if err := s.plants.Add(snap); err != nil {
		return Snapshot{}, err
	}
	snap, _ = s.plants.Get(name)
	return snap, nil
}
