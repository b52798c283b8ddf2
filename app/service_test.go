package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/co2dash/config"
	"github.com/kilianp07/co2dash/core/factory"
)

func TestNew_DefaultConfig(t *testing.T) {
	svc, err := New(config.Default())
	require.NoError(t, err)
	defer svc.Close()

	rr := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "My Plant", svc.Session.Scenario().Plant)
}

func TestNew_UnknownSink(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "carrier-pigeon"}}
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_BadLogo(t *testing.T) {
	cfg := config.Default()
	cfg.Report.Logo = "logo.gif"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestServe_Shutdown(t *testing.T) {
	svc, err := New(config.Default())
	require.NoError(t, err)
	defer svc.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	var body []byte
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ = io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
}
