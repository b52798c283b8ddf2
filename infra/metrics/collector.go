package metrics

import (
	"context"

	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/infra/logger"
	"github.com/kilianp07/co2dash/internal/eventbus"
)

// StartEventCollector subscribes to the bus and forwards events to sink
// until ctx is canceled or the bus is closed. The returned channel is closed
// once the collector has stopped.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[coremetrics.Event], sink coremetrics.Sink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := dispatch(sink, ev); err != nil {
					log.Errorf("record %T: %v", ev, err)
				}
			}
		}
	}()
	return done
}

func dispatch(sink coremetrics.Sink, ev coremetrics.Event) error {
	switch e := ev.(type) {
	case coremetrics.EstimateEvent:
		return sink.RecordEstimate(e)
	case coremetrics.SweepEvent:
		if r, ok := sink.(coremetrics.SweepRecorder); ok {
			return r.RecordSweep(e)
		}
	case coremetrics.PlantCountEvent:
		if r, ok := sink.(coremetrics.PlantCountRecorder); ok {
			return r.RecordPlantCount(e.Count)
		}
	}
	return nil
}
