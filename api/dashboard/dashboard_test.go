package dashboard

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/co2dash/core/emissions"
	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/core/regions"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/infra/logger"
	"github.com/kilianp07/co2dash/internal/eventbus"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 0, 0, time.UTC)

func newTestHandler(t *testing.T, token string) (http.Handler, *scenario.Session, *eventbus.TypedBus[coremetrics.Event]) {
	t.Helper()
	sess := scenario.NewSession(scenario.Default())
	bus := eventbus.NewTypedWithBuffer[coremetrics.Event](16)
	t.Cleanup(bus.Close)
	h := NewHandler(Options{
		Session: sess,
		Events:  bus,
		Token:   token,
		Now:     func() time.Time { return fixedNow },
	})
	return h, sess, bus
}

func do(h http.Handler, method, target, body string, hdr ...string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		r.Header.Set(hdr[i], hdr[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func TestHealthz(t *testing.T) {
	h, _, _ := newTestHandler(t, "")
	rr := do(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestRegions(t *testing.T) {
	h, _, _ := newTestHandler(t, "")
	rr := do(h, http.MethodGet, "/api/regions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var out []regions.Region
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Len(t, out, 5)
	assert.Equal(t, "India", out[0].Name)

	rr = do(h, http.MethodPost, "/api/regions", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestScenario_PutPublishesEstimate(t *testing.T) {
	h, sess, bus := newTestHandler(t, "")
	sub := bus.Subscribe()

	body := `{"plant":"Alpha Steel","factors":{"coal":2.5,"electricity":0.0009,"process":1.8},"actions":{"scrap":true,"heat":true}}`
	rr := do(h, http.MethodPut, "/api/scenario", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var ev struct {
		Baseline struct {
			Total float64 `json:"total"`
		} `json:"baseline"`
		PostTotal float64  `json:"post_total"`
		Actions   []string `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ev))
	assert.InDelta(t, 15720, ev.Baseline.Total, 1e-6)
	assert.InDelta(t, 13047.6, ev.PostTotal, 1e-6)
	assert.Equal(t, []string{"scrap", "heat"}, ev.Actions)
	assert.Equal(t, "Alpha Steel", sess.Scenario().Plant)

	select {
	case got := <-sub:
		est, ok := got.(coremetrics.EstimateEvent)
		require.True(t, ok)
		assert.Equal(t, "Alpha Steel", est.Plant)
		assert.Equal(t, fixedNow, est.Time)
	default:
		t.Fatal("no estimate event published")
	}

	rr = do(h, http.MethodGet, "/api/scenario", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var sc scenario.Scenario
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sc))
	assert.True(t, sc.Actions.Heat)
}

func TestScenario_RegionReseedsFactor(t *testing.T) {
	h, sess, _ := newTestHandler(t, "")
	rr := do(h, http.MethodPut, "/api/scenario", `{"region":"brazil"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	sc := sess.Scenario()
	assert.Equal(t, "Brazil", sc.Region)
	assert.Equal(t, 0.00010, sc.Factors.Electricity)

	rr = do(h, http.MethodPut, "/api/scenario", `{"region":"China","factors":{"electricity":0.0005}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0.0005, sess.Scenario().Factors.Electricity)
}

func TestScenario_BadInput(t *testing.T) {
	h, _, _ := newTestHandler(t, "")
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPut, "/api/scenario", `{"region":"Mars"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPut, "/api/scenario", `{"unknown":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPut, "/api/scenario", `{`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodDelete, "/api/scenario", "").Code)
}

func TestToken(t *testing.T) {
	h, _, _ := newTestHandler(t, "secret")
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPut, "/api/scenario", `{}`).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPut, "/api/scenario", `{}`, "Authorization", "Bearer secret").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/scenario", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, "/api/plants", "").Code)
}

func TestEstimate_Stateless(t *testing.T) {
	h, sess, _ := newTestHandler(t, "")
	before := sess.Scenario()
	rr := do(h, http.MethodPost, "/api/estimate", `{"plant":"X","monthly":{"production":0,"coal":750,"electricity":0,"scrap_percent":0},"factors":{"coal":1}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var ev scenario.Evaluation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ev))
	assert.InDelta(t, 9000, ev.Baseline.Total, 1e-9)
	assert.Equal(t, []string{emissions.Advisory(emissions.SourceCoal)}, ev.Recommendations)
	assert.Equal(t, before, sess.Scenario())
}

func TestEstimate_ZeroFactorKept(t *testing.T) {
	h, _, _ := newTestHandler(t, "")
	rr := do(h, http.MethodPost, "/api/estimate", `{"factors":{"coal":0}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var ev scenario.Evaluation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ev))
	assert.Zero(t, ev.Factors.Coal)
	assert.Zero(t, ev.Baseline.Breakdown.Coal)
	assert.InDelta(t, 15492-6000, ev.Baseline.Total, 1e-9)
}

func TestSweep(t *testing.T) {
	h, _, bus := newTestHandler(t, "")
	sub := bus.Subscribe()

	rr := do(h, http.MethodGet, "/api/sweep", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var out SweepResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "electricity", out.Parameter)
	require.Len(t, out.Points, 21)
	for i := 1; i < len(out.Points); i++ {
		assert.Greater(t, out.Points[i].Total, out.Points[i-1].Total)
	}
	_, ok := (<-sub).(coremetrics.SweepEvent)
	assert.True(t, ok)

	rr = do(h, http.MethodGet, "/api/sweep?parameter=scrap&from=-10&to=10&step=10", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Len(t, out.Points, 3)

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/sweep?parameter=steam", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/sweep?step=x", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/api/sweep?from=10&to=-10", "").Code)
}

func TestSweep_RejectsUnboundedGrid(t *testing.T) {
	h, _, _ := newTestHandler(t, "")
	for _, q := range []string{
		"step=NaN",
		"from=NaN",
		"to=Inf",
		"step=1e-9",
		"from=0&to=5000&step=1",
	} {
		rr := do(h, http.MethodGet, "/api/sweep?"+q, "")
		assert.Equalf(t, http.StatusBadRequest, rr.Code, "%s: %s", q, rr.Body.String())
		assert.Contains(t, rr.Body.String(), "invalid delta range", q)
	}
}

func TestPlants(t *testing.T) {
	h, sess, _ := newTestHandler(t, "")

	rr := do(h, http.MethodPost, "/api/plants", `{"name":"Alpha Steel"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = do(h, http.MethodPost, "/api/plants", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 2, sess.Plants().Len())

	rr = do(h, http.MethodGet, "/api/plants", "")
	var list []scenario.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha Steel", list[0].Plant)
	assert.Equal(t, "My Plant", list[1].Plant)

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodDelete, "/api/plants?name=nope", "").Code)
	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/api/plants?name=Alpha%20Steel", "").Code)
	assert.Equal(t, 1, sess.Plants().Len())
	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/api/plants", "").Code)
	assert.Equal(t, 0, sess.Plants().Len())

	sess.SetScenario(scenario.Scenario{Plant: "  "})
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/plants", "").Code)
}

func TestFiles(t *testing.T) {
	h, sess, _ := newTestHandler(t, "")
	_, err := sess.SaveCurrent("Alpha Steel")
	require.NoError(t, err)

	rr := do(h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Plant Comparison")

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/missing", "").Code)

	rr = do(h, http.MethodGet, "/api/summary.csv", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "metric,value\n"))

	rr = do(h, http.MethodGet, "/api/plants.xlsx", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))

	rr = do(h, http.MethodGet, "/api/report.pdf", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "CO2_Summary_2024-05-06_07-08.pdf")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))
}

func TestRecover(t *testing.T) {
	h := Recover(logger.NopLogger{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rr := do(h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
