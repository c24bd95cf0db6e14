package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shipping_portal_backend/platform/logger"
)

type testConfig struct {
	configured bool
	rps        float64
	burst      int
}

func (c testConfig) GetHTTPAddr() string       { return ":0" }
func (c testConfig) GetCORSAllowAll() bool     { return true }
func (c testConfig) GetCORSOrigins() []string  { return nil }
func (c testConfig) GetRateLimitRPS() float64  { return c.rps }
func (c testConfig) GetRateLimitBurst() int    { return c.burst }
func (c testConfig) GetCarrierAPIURL() string  { return "http://carrier.test" }
func (c testConfig) GetCarrierAPIKey() string  { return "key" }
func (c testConfig) IsCarrierConfigured() bool { return c.configured }

func (c testConfig) GetCarrierTimeout() time.Duration { return 15 * time.Second }

func checkHealth(t *testing.T, configured bool) HealthResponse {
	t.Helper()
	cfg := testConfig{configured: configured, rps: 100, burst: 100}
	engine := New(cfg, logger.New("development"), "development")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("health response is not JSON: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Fatalf("timestamp is not RFC3339: %q", resp.Timestamp)
	}
	return resp
}

func TestHealth_Configured(t *testing.T) {
	resp := checkHealth(t, true)
	if resp.Status != "ok" || resp.Message != "API key is configured" {
		t.Fatalf("unexpected health response: %+v", resp)
	}
}

func TestHealth_Misconfigured(t *testing.T) {
	resp := checkHealth(t, false)
	if resp.Status != "misconfigured" || resp.Message != "API key is missing or not set" {
		t.Fatalf("unexpected health response: %+v", resp)
	}
}

func TestRateLimit_ExcessRequestsRejected(t *testing.T) {
	// Zero refill with a burst of one: the first request spends the only
	// token, the second must be rejected.
	cfg := testConfig{configured: true, rps: 0, burst: 1}
	engine := New(cfg, logger.New("development"), "development")

	first := httptest.NewRecorder()
	engine.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	engine.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for the second request, got %d", second.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(second.Body.Bytes(), &body); err != nil {
		t.Fatalf("429 response is not JSON: %v", err)
	}
	if body["success"] != false || body["error"] != "rate limit exceeded" {
		t.Fatalf("unexpected 429 envelope: %v", body)
	}
}
