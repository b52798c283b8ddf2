package mqtt

import (
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/infra/logger"
)

// SnapshotMessage is the JSON payload published for every estimate.
type SnapshotMessage struct {
	MessageID   string   `json:"message_id"`
	Plant       string   `json:"plant"`
	Region      string   `json:"region,omitempty"`
	Coal        float64  `json:"coal"`
	Electricity float64  `json:"electricity"`
	Process     float64  `json:"process"`
	Total       float64  `json:"total"`
	PostTotal   float64  `json:"post_total"`
	Reduction   float64  `json:"reduction"`
	Actions     []string `json:"actions"`
	Timestamp   int64    `json:"timestamp"`
}

// SnapshotPublisher is a metrics sink publishing each estimate to
// <prefix>/<plant>/emissions.
type SnapshotPublisher struct {
	cli     pahoClient
	cfg     Config
	backoff time.Duration
	log     logger.Logger
}

// NewSnapshotPublisher connects to the broker described by cfg.
func NewSnapshotPublisher(cfg Config) (*SnapshotPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt-publisher")
	opts.OnConnect = func(paho.Client) { log.Infof("MQTT connected to %s", cfg.Broker) }
	opts.OnConnectionLost = func(_ paho.Client, err error) { log.Errorf("connection lost: %v", err) }
	c := newMQTTClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s: timeout after %s", cfg.Broker, cfg.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", cfg.Broker, err)
	}
	return &SnapshotPublisher{
		cli:     c,
		cfg:     cfg,
		backoff: time.Duration(cfg.BackoffMS) * time.Millisecond,
		log:     log,
	}, nil
}

// Topic returns the topic a plant's snapshots are published to. MQTT
// wildcards and separators in the plant name are replaced.
func Topic(prefix, plant string) string {
	r := strings.NewReplacer("/", "_", "+", "_", "#", "_", " ", "_")
	name := r.Replace(strings.TrimSpace(plant))
	if name == "" {
		name = "unnamed"
	}
	return strings.TrimSuffix(prefix, "/") + "/" + name + "/emissions"
}

// RecordEstimate publishes the estimate as a SnapshotMessage.
func (p *SnapshotPublisher) RecordEstimate(ev coremetrics.EstimateEvent) error {
	actions := make([]string, len(ev.Actions))
	for i, a := range ev.Actions {
		actions[i] = a.String()
	}
	b := ev.Baseline.Breakdown
	msg := SnapshotMessage{
		MessageID:   uuid.NewString(),
		Plant:       ev.Plant,
		Region:      ev.Region,
		Coal:        b.Coal,
		Electricity: b.Electricity,
		Process:     b.Process,
		Total:       ev.Baseline.Total,
		PostTotal:   ev.PostTotal,
		Reduction:   ev.Reduction,
		Actions:     actions,
		Timestamp:   ev.Time.UnixMilli(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.publish(Topic(p.cfg.TopicPrefix, ev.Plant), payload)
}

// RecordPlantCount publishes the comparison registry size.
func (p *SnapshotPublisher) RecordPlantCount(n int) error {
	topic := strings.TrimSuffix(p.cfg.TopicPrefix, "/") + "/plants/count"
	return p.publish(topic, []byte(fmt.Sprint(n)))
}

func (p *SnapshotPublisher) publish(topic string, payload []byte) error {
	var err error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		token := p.cli.Publish(topic, p.cfg.QoS, p.cfg.Retain, payload)
		token.Wait()
		if err = token.Error(); err == nil {
			p.log.Debugw("published snapshot", map[string]any{"topic": topic, "bytes": len(payload)})
			return nil
		}
		p.log.Errorf("publish attempt %d failed: %v", attempt+1, err)
		if attempt < p.cfg.MaxRetries {
			time.Sleep(p.backoff * time.Duration(1<<attempt))
		}
	}
	return fmt.Errorf("publish %s: %w", topic, err)
}

// Close disconnects from the broker.
func (p *SnapshotPublisher) Close() error {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
	return nil
}
