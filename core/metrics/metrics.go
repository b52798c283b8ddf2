package metrics

import (
	"time"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/scenario"
)

// EstimateEvent is one evaluated plant scenario.
type EstimateEvent struct {
	Plant     string
	Region    string
	Baseline  emissions.Result
	PostTotal float64
	Reduction float64
	Actions   []emissions.Action
	Time      time.Time
}

// NewEstimateEvent converts an evaluation into an event stamped at t.
func NewEstimateEvent(ev scenario.Evaluation, t time.Time) EstimateEvent {
	return EstimateEvent{
		Plant:     ev.Scenario.PlantName(),
		Region:    ev.Scenario.Region,
		Baseline:  ev.Baseline,
		PostTotal: ev.PostTotal,
		Reduction: ev.Reduction,
		Actions:   ev.Actions,
		Time:      t,
	}
}

// Event is any event the collector forwards to sinks.
type Event interface {
	EventTime() time.Time
}

// EventTime implements Event.
func (e EstimateEvent) EventTime() time.Time { return e.Time }

// EventTime implements Event.
func (e SweepEvent) EventTime() time.Time { return e.Time }

// PlantCountEvent reports the size of the comparison registry.
type PlantCountEvent struct {
	Count int
	Time  time.Time
}

// EventTime implements Event.
func (e PlantCountEvent) EventTime() time.Time { return e.Time }

// Sink records emission estimates.
type Sink interface {
	RecordEstimate(ev EstimateEvent) error
}

// SweepEvent is a completed sensitivity sweep.
type SweepEvent struct {
	Plant     string
	Parameter emissions.Parameter
	Points    []emissions.Point
	Time      time.Time
}

// SweepRecorder is implemented by sinks able to store sweep curves.
type SweepRecorder interface {
	RecordSweep(ev SweepEvent) error
}

// PlantCountRecorder is implemented by sinks tracking the comparison registry size.
type PlantCountRecorder interface {
	RecordPlantCount(n int) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordEstimate(EstimateEvent) error { return nil }
func (NopSink) RecordSweep(SweepEvent) error       { return nil }
func (NopSink) RecordPlantCount(int) error         { return nil }

// Close releases the sink when it holds resources.
func Close(s Sink) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
