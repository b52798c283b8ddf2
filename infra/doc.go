// Package infra holds the adapters behind the core interfaces: the zerolog
// logger, Sentry monitoring, and the Prometheus, InfluxDB and MQTT sinks.
package infra
