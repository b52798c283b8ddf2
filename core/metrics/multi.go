package metrics

import "errors"

// MultiSink fans events out to several sinks. A failing sink does not stop
// delivery to the others; all errors are joined.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordEstimate forwards the event to every sink.
func (m *MultiSink) RecordEstimate(ev EstimateEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordEstimate(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordSweep forwards sweeps to sinks that support them.
func (m *MultiSink) RecordSweep(ev SweepEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(SweepRecorder); ok {
			if err := rec.RecordSweep(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordPlantCount forwards the registry size to sinks that support it.
func (m *MultiSink) RecordPlantCount(n int) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(PlantCountRecorder); ok {
			if err := rec.RecordPlantCount(n); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink holding resources.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if err := Close(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
