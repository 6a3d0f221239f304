package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/renwic/trusthub/internal/domain/apperr"
	authsvc "github.com/renwic/trusthub/internal/services/auth"
	ratesvc "github.com/renwic/trusthub/internal/services/rate"
	httperrors "github.com/renwic/trusthub/internal/transport/http/errors"
)

func TestWriteServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "validation", err: fmt.Errorf("%w: bad", apperr.ErrValidation), status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "not found", err: fmt.Errorf("load: %w", apperr.ErrNotFound), status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "conflict", err: apperr.ErrConflict, status: http.StatusConflict, code: "CONFLICT"},
		{name: "dependency", err: apperr.Dependency("query", errors.New("conn refused")), status: http.StatusServiceUnavailable, code: "DEPENDENCY_UNAVAILABLE"},
		{name: "too fast", err: fmt.Errorf("swipe: %w", ratesvc.TooFastError{RetryAfterSec: 7}), status: http.StatusTooManyRequests, code: "TOO_FAST"},
		{name: "unauthorized", err: authsvc.ErrUnauthorized, status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tc.err, "failed")
			if rec.Code != tc.status {
				t.Fatalf("unexpected status: got %d want %d", rec.Code, tc.status)
			}
			var payload httperrors.APIError
			decodeBody(t, rec, &payload)
			if payload.Code != tc.code {
				t.Fatalf("unexpected code: got %q want %q", payload.Code, tc.code)
			}
		})
	}
}

func TestWriteServiceErrorTooFastCarriesRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, ratesvc.TooFastError{RetryAfterSec: 7}, "failed")

	var payload httperrors.RateLimitError
	decodeBody(t, rec, &payload)
	if payload.RetryAfterSec != 7 {
		t.Fatalf("unexpected retry_after_sec: %d", payload.RetryAfterSec)
	}
	if got := rec.Header().Get("Retry-After"); got != "7" {
		t.Fatalf("unexpected Retry-After header: %q", got)
	}
}
