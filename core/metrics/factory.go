package metrics

import "github.com/kilianp07/co2dash/core/factory"

// ErrUnknownSink is returned by NewSink for an unregistered sink type.
var ErrUnknownSink = factory.ErrUnknownModule

var sinkRegistry = factory.NewRegistry[Sink]()

// RegisterSink adds a sink factory identified by name.
func RegisterSink(name string, f factory.Factory[Sink]) error {
	return sinkRegistry.Register(name, f)
}

// SinkTypes lists the registered sink types.
func SinkTypes() []string { return sinkRegistry.Names() }

// NewSink creates a Sink from the provided configuration. Several enabled
// sinks are combined into a MultiSink.
func NewSink(cfgs []factory.ModuleConfig) (Sink, error) {
	sinks, err := sinkRegistry.CreateAll(cfgs, func(s Sink) { _ = Close(s) })
	if err != nil {
		return nil, err
	}
	switch len(sinks) {
	case 0:
		return NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
