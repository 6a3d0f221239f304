package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReportsServiceState(t *testing.T) {
	h := NewHealthHandler(map[string]Pinger{
		"postgres": pingerFunc(func(context.Context) error { return nil }),
		"redis":    pingerFunc(func(context.Context) error { return errors.New("down") }),
		"nats":     nil,
	})

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var payload healthResponse
	decodeBody(t, rec, &payload)
	if !payload.OK {
		t.Fatalf("health should stay ok in degraded mode")
	}
	want := map[string]string{"postgres": "up", "redis": "down", "nats": "disabled"}
	for name, state := range want {
		if payload.Services[name] != state {
			t.Fatalf("service %s: got %q want %q", name, payload.Services[name], state)
		}
	}
}
