// Package app wires the configuration, the session, the metrics sinks and
// the HTTP dashboard into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kilianp07/co2dash/api/dashboard"
	"github.com/kilianp07/co2dash/config"
	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/infra/logger"
	"github.com/kilianp07/co2dash/infra/metrics"
	"github.com/kilianp07/co2dash/internal/eventbus"
	"github.com/kilianp07/co2dash/internal/i18n"
	"github.com/kilianp07/co2dash/pkg/export"
)

// Service orchestrates the dashboard session and the metrics pipeline.
type Service struct {
	Session *scenario.Session
	cfg     *config.Config
	bus     *eventbus.TypedBus[coremetrics.Event]
	sink    coremetrics.Sink
	handler http.Handler
	log     logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.ForPlant("service", cfg.Plant.Name)
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	logo, err := export.LoadLogo(cfg.Report.Logo)
	if err != nil {
		_ = coremetrics.Close(sink)
		return nil, err
	}
	sess := scenario.NewSession(cfg.Scenario())
	bus := eventbus.NewTypedWithBuffer[coremetrics.Event](64)
	handler := dashboard.NewHandler(dashboard.Options{
		Session:    sess,
		Events:     bus,
		Translator: i18n.New(cfg.Language),
		Report: dashboard.ReportOptions{
			Title:    cfg.Report.Title,
			BaseName: cfg.Report.BaseName,
			Logo:     logo,
		},
		Token:  cfg.Server.Token,
		Logger: logger.New("dashboard"),
	})
	return &Service{Session: sess, cfg: cfg, bus: bus, sink: sink, handler: handler, log: logg}, nil
}

// Handler returns the dashboard router.
func (s *Service) Handler() http.Handler { return s.handler }

// Run serves the dashboard and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Server.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	collected := metrics.StartEventCollector(ctx, s.bus, s.sink)
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	s.bus.Publish(coremetrics.NewEstimateEvent(s.Session.Evaluate(), time.Now()))

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("dashboard listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("dashboard shutdown: %v", err)
		}
	}
	s.bus.Close()
	<-collected
	if n := s.bus.Dropped(); n > 0 {
		s.log.Warnf("%d metric events dropped by slow sinks", n)
	}
	return nil
}

// Close releases the metrics sinks.
func (s *Service) Close() error {
	s.bus.Close()
	return coremetrics.Close(s.sink)
}
