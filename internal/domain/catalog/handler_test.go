package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medscience/medscience/internal/platform/store"
)

func newTestHandler(t *testing.T) (*Handler, *echo.Echo) {
	t.Helper()
	svc := newTestService()
	ctx := context.Background()
	if err := svc.CreateBodySystem(ctx, &BodySystem{Name: "Respiratory", Description: "Lungs"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateDisease(ctx, &Disease{Name: "Asthma", BodySystemID: 1, Description: "Airway inflammation"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateSymptom(ctx, &Symptom{Name: "Wheezing"}); err != nil {
		t.Fatal(err)
	}
	return NewHandler(svc), echo.New()
}

func expectStatus(t *testing.T, err error, want int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError with %d, got %v", want, err)
	}
	if he.Code != want {
		t.Errorf("expected %d, got %d", want, he.Code)
	}
}

func TestHandler_ListBodySystems(t *testing.T) {
	h, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/body-systems", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListBodySystems(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []BodySystem
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Respiratory" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_GetDisease(t *testing.T) {
	h, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.GetDisease(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var d map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d["bodySystemId"] != float64(1) {
		t.Errorf("expected camelCase bodySystemId, got %s", rec.Body.String())
	}
}

func TestHandler_GetDisease_InvalidID(t *testing.T) {
	h, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")

	expectStatus(t, h.GetDisease(c), http.StatusBadRequest)
}

func TestHandler_GetDisease_NotFound(t *testing.T) {
	h, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("999999")

	expectStatus(t, h.GetDisease(c), http.StatusNotFound)
}

func TestHandler_GetDisease_ZeroAndNegativeIDsNotFound(t *testing.T) {
	h, e := newTestHandler(t)

	for _, id := range []string{"0", "-1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(id)

		expectStatus(t, h.GetDisease(c), http.StatusNotFound)
	}
}

func TestHandler_GetBodySystem_NotFound(t *testing.T) {
	h, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("5")

	expectStatus(t, h.GetBodySystem(c), http.StatusNotFound)
}

func TestHandler_ListDiseasesBySystem(t *testing.T) {
	h, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("systemId")
	c.SetParamValues("9")

	if err := h.ListDiseasesBySystem(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("expected empty array, got %q", body)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("systemId")
	c.SetParamValues("0")
	if err := h.ListDiseasesBySystem(c); err != nil {
		t.Fatalf("unexpected error for system 0: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("expected empty array for system 0, got %q", body)
	}

	c = e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("systemId")
	c.SetParamValues("x")
	expectStatus(t, h.ListDiseasesBySystem(c), http.StatusBadRequest)
}

func TestHandler_SearchDiseases(t *testing.T) {
	h, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/diseases/search?q=ASTH", nil)
	rec := httptest.NewRecorder()
	if err := h.SearchDiseases(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []Disease
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 match, got %d", len(got))
	}

	for _, target := range []string{"/api/diseases/search", "/api/diseases/search?q=%20%20"} {
		req = httptest.NewRequest(http.MethodGet, target, nil)
		expectStatus(t, h.SearchDiseases(e.NewContext(req, httptest.NewRecorder())), http.StatusBadRequest)
	}
}

func TestHandler_GetSymptom(t *testing.T) {
	h, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.GetSymptom(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

type failingBodySystems struct{ BodySystemRepository }

func (failingBodySystems) List(context.Context) ([]*BodySystem, error) {
	return nil, store.ErrUnavailable
}

func TestHandler_ListBodySystems_StorageFailure(t *testing.T) {
	h := NewHandler(NewService(failingBodySystems{}, NewDiseaseRepoMem(), NewSymptomRepoMem()))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/body-systems", nil)
	expectStatus(t, h.ListBodySystems(e.NewContext(req, httptest.NewRecorder())), http.StatusInternalServerError)
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h, e := newTestHandler(t)
	h.RegisterRoutes(e.Group("/api"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/diseases/search?q=asthma", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("static search route should win over /diseases/:id, got %d", rec.Code)
	}
}
