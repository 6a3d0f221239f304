package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/renwic/trusthub/internal/transport/http/dto"
	httperrors "github.com/renwic/trusthub/internal/transport/http/errors"
)

func TestSwipeHandlerMutualLikeReturnsMatch(t *testing.T) {
	svc := newTestServices(t)
	alice := svc.seedProfile(t, 1, "hiking")
	bob := svc.seedProfile(t, 2, "hiking")
	h := NewSwipeHandler(svc.swipes)

	first := httptest.NewRecorder()
	h.Handle(first, withUser(newJSONRequest(t, http.MethodPost, "/v1/swipes", map[string]any{
		"target_profile_id": bob.ID,
		"action":            "like",
	}), alice.UserID))
	if first.Code != http.StatusOK {
		t.Fatalf("unexpected status on first like: %d %s", first.Code, first.Body.String())
	}
	var firstResp dto.SwipeResponse
	decodeBody(t, first, &firstResp)
	if !firstResp.OK || firstResp.Matched {
		t.Fatalf("first like should not match: %+v", firstResp)
	}

	second := httptest.NewRecorder()
	h.Handle(second, withUser(newJSONRequest(t, http.MethodPost, "/v1/swipes", map[string]any{
		"target_profile_id": alice.ID,
		"action":            "super_like",
	}), bob.UserID))
	var secondResp dto.SwipeResponse
	decodeBody(t, second, &secondResp)
	if !secondResp.Matched || secondResp.MatchID == "" {
		t.Fatalf("reciprocal like should match: %+v", secondResp)
	}
}

func TestSwipeHandlerErrors(t *testing.T) {
	svc := newTestServices(t)
	alice := svc.seedProfile(t, 1)
	h := NewSwipeHandler(svc.swipes)

	cases := []struct {
		name   string
		body   map[string]any
		user   int64
		status int
		code   string
	}{
		{name: "missing target", body: map[string]any{"action": "like"}, user: alice.UserID, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "unknown field", body: map[string]any{"target_profile_id": 9, "action": "like", "extra": 1}, user: alice.UserID, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "bad action", body: map[string]any{"target_profile_id": 9, "action": "maybe"}, user: alice.UserID, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "self swipe", body: map[string]any{"target_profile_id": alice.ID, "action": "like"}, user: alice.UserID, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "unknown target", body: map[string]any{"target_profile_id": 999, "action": "like"}, user: alice.UserID, status: http.StatusNotFound, code: "NOT_FOUND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Handle(rec, withUser(newJSONRequest(t, http.MethodPost, "/v1/swipes", tc.body), tc.user))
			if rec.Code != tc.status {
				t.Fatalf("unexpected status: got %d want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
			var payload httperrors.APIError
			decodeBody(t, rec, &payload)
			if payload.Code != tc.code {
				t.Fatalf("unexpected code: got %q want %q", payload.Code, tc.code)
			}
		})
	}
}

func TestSwipeHandlerRequiresIdentity(t *testing.T) {
	h := NewSwipeHandler(newTestServices(t).swipes)
	rec := httptest.NewRecorder()
	h.Handle(rec, newJSONRequest(t, http.MethodPost, "/v1/swipes", map[string]any{"target_profile_id": 1, "action": "like"}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
}
