package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/infra/logger"
)

// InfluxConfig holds the connection settings of an InfluxDB v2 bucket.
type InfluxConfig struct {
	URL     string        `json:"url"`
	Token   string        `json:"token"`
	Org     string        `json:"org"`
	Bucket  string        `json:"bucket"`
	Timeout time.Duration `json:"timeout"`
}

func (c *InfluxConfig) setDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
}

// InfluxSink writes estimates to InfluxDB using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	timeout  time.Duration
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	cfg.setDefaults()
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		timeout:  cfg.Timeout,
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), sink.timeout)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordEstimate writes one plant_emissions point.
func (s *InfluxSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, EstimatePoint(ev))
}

// RecordSweep writes one sensitivity_point per delta.
func (s *InfluxSink) RecordSweep(ev coremetrics.SweepEvent) error {
	if len(ev.Points) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	pts := make([]*write.Point, len(ev.Points))
	for i, p := range ev.Points {
		pts[i] = write.NewPointWithMeasurement("sensitivity_point").
			AddTag("plant", ev.Plant).
			AddTag("parameter", ev.Parameter.String()).
			AddTag("delta", strconv.FormatFloat(p.Delta, 'f', -1, 64)).
			AddField("total", round3(p.Total)).
			SetTime(ev.Time)
	}
	return s.writeAPI.WritePoint(ctx, pts...)
}

// Close releases the HTTP client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

// EstimatePoint converts an estimate into its line-protocol point.
func EstimatePoint(ev coremetrics.EstimateEvent) *write.Point {
	actions := make([]string, len(ev.Actions))
	for i, a := range ev.Actions {
		actions[i] = a.String()
	}
	p := write.NewPointWithMeasurement("plant_emissions").
		AddTag("plant", ev.Plant)
	if ev.Region != "" {
		p = p.AddTag("region", ev.Region)
	}
	b := ev.Baseline.Breakdown
	return p.AddField("coal", round3(b.Coal)).
		AddField("electricity", round3(b.Electricity)).
		AddField("process", round3(b.Process)).
		AddField("total", round3(ev.Baseline.Total)).
		AddField("post_total", round3(ev.PostTotal)).
		AddField("reduction", round3(ev.Reduction)).
		AddField("actions", strings.Join(actions, ",")).
		SetTime(ev.Time)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
