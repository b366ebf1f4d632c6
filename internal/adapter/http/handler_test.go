package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"loanflow-backend/internal/domain/actor"
)

func TestHealth_ReturnsOKWithRFC3339NanoUTC(t *testing.T) {
	e := echo.New()
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	start := time.Now().UTC()

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	ct := rec.Header().Get(echo.HeaderContentType)
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var body struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("status field = %q", body.Status)
	}
	parsed, err := time.Parse(time.RFC3339Nano, body.Time)
	if err != nil {
		t.Fatalf("time not RFC3339Nano: %v", err)
	}
	if parsed.Before(start.Add(-time.Minute)) || parsed.After(time.Now().UTC().Add(time.Minute)) {
		t.Fatalf("time out of range: %s", body.Time)
	}
}

func TestActorMiddleware_ParsesHeaders(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderActorID, "user-1")
	req.Header.Set(HeaderActorRole, "PARTNER")
	req.Header.Set(HeaderActorPartner, "p-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got actor.Actor
	handler := ActorMiddleware()(func(c echo.Context) error {
		got = actorFrom(c)
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if got.ID != "user-1" || got.Role != actor.RolePartner || got.PartnerID != "p-1" {
		t.Fatalf("actor = %+v", got)
	}
	if !got.IsPartner() {
		t.Fatal("parsed actor should pass the partner gate")
	}
}

func TestActorMiddleware_MissingHeadersYieldUnknownActor(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got actor.Actor
	handler := ActorMiddleware()(func(c echo.Context) error {
		got = actorFrom(c)
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if got.Known() {
		t.Fatalf("actor = %+v, want unknown", got)
	}
}
