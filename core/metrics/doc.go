// Package metrics defines the sinks that receive emission estimates for
// observability. Concrete sinks (Prometheus, InfluxDB, MQTT) live in
// infra/metrics and infra/mqtt and register themselves by type name;
// NewSink builds one sink, or a MultiSink when several are configured.
package metrics
