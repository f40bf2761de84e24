package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medscience/medscience/internal/config"
	"github.com/medscience/medscience/internal/domain/assistant"
	"github.com/medscience/medscience/internal/domain/resource"
	"github.com/medscience/medscience/internal/platform/completion"
	"github.com/medscience/medscience/internal/platform/telemetry"
)

type downCompleter struct{}

func (downCompleter) Complete(context.Context, completion.Request) (string, error) {
	return "", errors.New("provider unreachable")
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := &config.Config{
		Env:            "test",
		CORSOrigins:    []string{"http://localhost:5173"},
		RequestTimeout: 5 * time.Second,
		BodyLimit:      "1M",
	}
	logger := zerolog.Nop()
	svc := newServices(memoryRepositories())
	if _, err := seed(context.Background(), svc, nil, logger); err != nil {
		t.Fatalf("seed: %v", err)
	}
	metrics := telemetry.NewProvider("medscience")
	ai := assistant.NewService(downCompleter{}, assistant.Config{Model: "test"}, metrics, logger)
	return newServer(cfg, svc, ai, metrics, nil, logger)
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
	if rec := do(e, http.MethodGet, "/health/db", ""); rec.Code != http.StatusNotFound {
		t.Errorf("db health must not be mounted for the memory store, got %d", rec.Code)
	}
}

func TestServer_SeededBodySystems(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/body-systems", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var systems []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &systems); err != nil {
		t.Fatal(err)
	}
	if len(systems) != 5 {
		t.Errorf("expected 5 seeded body systems, got %d", len(systems))
	}
}

func TestServer_DiseaseLookupErrors(t *testing.T) {
	e := newTestServer(t)

	tests := []struct {
		target string
		want   int
	}{
		{"/api/diseases/abc", http.StatusBadRequest},
		{"/api/diseases/999999", http.StatusNotFound},
		{"/api/diseases/1", http.StatusOK},
	}
	for _, tt := range tests {
		rec := do(e, http.MethodGet, tt.target, "")
		if rec.Code != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.target, tt.want, rec.Code)
		}
		if tt.want != http.StatusOK {
			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["message"] == "" {
				t.Errorf("%s: expected JSON error envelope, got %s", tt.target, rec.Body.String())
			}
		}
	}
}

func TestServer_SymptomCheck(t *testing.T) {
	e := newTestServer(t)

	if rec := do(e, http.MethodPost, "/api/symptom-check", `{"symptoms": []}`); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty symptoms, got %d", rec.Code)
	}

	rec := do(e, http.MethodPost, "/api/symptom-check", `{"symptoms": ["headache"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with provider down, got %d", rec.Code)
	}
	var result assistant.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.PossibleConditions == nil || result.Disclaimer == "" || result.Recommendations == nil {
		t.Errorf("expected well-formed fallback, got %s", rec.Body.String())
	}
}

func TestServer_ResourcesByCategory(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/resources/all?category=patient", "")
	var got []resource.Resource
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 patient resources, got %d", len(got))
	}
	for _, r := range got {
		if r.Category == nil || *r.Category != "patient" {
			t.Errorf("unexpected resource %+v", r)
		}
	}

	rec = do(e, http.MethodGet, "/api/resources/hospital", "")
	got = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	for _, r := range got {
		if r.Type != "hospital" {
			t.Errorf("expected only hospitals, got %q", r.Type)
		}
	}
}

func TestServer_ChatStoresHistory(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/chat", `{"userId": 4, "messages": [{"role": "user", "content": "What is asthma?"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/api/chat/history/4", "")
	var history []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Errorf("expected one stored conversation, got %d", len(history))
	}
}

func TestServer_Metrics(t *testing.T) {
	e := newTestServer(t)
	do(e, http.MethodGet, "/api/diseases/abc", "")
	do(e, http.MethodGet, "/api/ai/news", "")

	rec := do(e, http.MethodGet, "/metrics", "")
	out := rec.Body.String()
	for _, want := range []string{
		`medscience_http_requests_total{method="GET",route="/api/diseases/:id",status="400"} 1`,
		`medscience_ai_queries_total{operation="news_digest",outcome="fallback"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	e := newTestServer(t)

	if rec := do(e, http.MethodGet, "/api/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
