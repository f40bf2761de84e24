package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_ListHistory(t *testing.T) {
	svc := NewService(NewChatHistoryRepoMem())
	if _, err := svc.Record(context.Background(), 5, []Message{{Role: "user", Content: "hello"}}); err != nil {
		t.Fatal(err)
	}
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues("5")

	if err := h.ListHistory(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(got))
	}
	if _, ok := got[0]["createdAt"]; !ok {
		t.Errorf("expected createdAt in %v", got[0])
	}
}

func TestHandler_ListHistory_InvalidID(t *testing.T) {
	h := NewHandler(NewService(NewChatHistoryRepoMem()))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("userId")
	c.SetParamValues("me")

	var he *echo.HTTPError
	if err := h.ListHistory(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
