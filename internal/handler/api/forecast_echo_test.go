package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"KronosServe/internal/domain/models"
	"KronosServe/internal/services/forecast"
	"KronosServe/internal/usecase"
	applogger "KronosServe/pkg/logger"

	"github.com/labstack/echo/v4"
)

type staticModelStatus bool

func (s staticModelStatus) Available() bool { return bool(s) }

type nopMetrics struct{}

func (nopMetrics) RecordForecast(string, string)      {}
func (nopMetrics) RecordFallback()                    {}
func (nopMetrics) RecordModelError(string)            {}
func (nopMetrics) RecordLastForecast(string, float64) {}
func (nopMetrics) RecordLatency(string, float64)      {}

func testServer(t *testing.T, available bool) *echo.Echo {
	t.Helper()
	logger, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	heuristic := forecast.NewHeuristic(forecast.WithUniform(func() float64 { return 0.5 }))
	uc := usecase.NewForecastUsecase(nil, heuristic, nil, 0, nil, nil, nopMetrics{}, logger)
	h := NewForecastEchoHandler(logger, uc, staticModelStatus(available))

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func TestHealthEndpoint(t *testing.T) {
	e := testServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var body struct {
		Status          string `json:"status"`
		KronosAvailable bool   `json:"kronos_available"`
		Timestamp       string `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("status %q, want ok", body.Status)
	}
	if body.KronosAvailable {
		t.Fatal("kronos_available true, want false")
	}
	if body.Timestamp == "" {
		t.Fatal("timestamp missing")
	}
}

func TestIndexEndpoint(t *testing.T) {
	e := testServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var body struct {
		Service         string            `json:"service"`
		Version         string            `json:"version"`
		KronosAvailable bool              `json:"kronos_available"`
		Endpoints       map[string]string `json:"endpoints"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Service != "Kronos Prediction Service" {
		t.Fatalf("service %q", body.Service)
	}
	if !body.KronosAvailable {
		t.Fatal("kronos_available false, want true")
	}
	if body.Endpoints["predict"] != "POST /predict" {
		t.Fatalf("endpoints %v", body.Endpoints)
	}
}

func TestPredictSuccess(t *testing.T) {
	e := testServer(t, false)

	payload := `{"symbol":"ETH","data":{"prices":[[1700000000000,100],[1700086400000,110]]},"pred_hours":2}`
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got models.Forecast
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Model != models.ModelSimple {
		t.Fatalf("model %q, want simple", got.Model)
	}
	if got.Confidence != 0.6 {
		t.Fatalf("confidence %v, want 0.6", got.Confidence)
	}
	if len(got.Predictions) != 2 {
		t.Fatalf("got %d predictions, want 2", len(got.Predictions))
	}
}

func TestPredictDefaults(t *testing.T) {
	e := testServer(t, false)

	// No symbol, no pred_hours: BTC and 24 steps.
	payload := `{"data":{"prices":[[1700000000000,100],[1700086400000,110]]}}`
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got models.Forecast
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Predictions) != 24 {
		t.Fatalf("got %d predictions, want default 24", len(got.Predictions))
	}
}

func TestPredictEmptyHistoryFails(t *testing.T) {
	e := testServer(t, false)

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"data":{}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Prediction failed" {
		t.Fatalf("error %q, want %q", body.Error, "Prediction failed")
	}
}

func TestPredictRejectsOversizedHorizon(t *testing.T) {
	e := testServer(t, false)

	payload := `{"data":{"prices":[[1700000000000,100]]},"pred_hours":1000}`
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}
