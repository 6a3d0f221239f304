package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	swipesvc "github.com/renwic/trusthub/internal/services/swipes"
	"github.com/renwic/trusthub/internal/transport/http/dto"
	httperrors "github.com/renwic/trusthub/internal/transport/http/errors"
)

type SwipeHandler struct {
	service *swipesvc.Service
}

func NewSwipeHandler(service *swipesvc.Service) *SwipeHandler {
	return &SwipeHandler{service: service}
}

func (h *SwipeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TargetProfileID <= 0 || strings.TrimSpace(req.Action) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "target_profile_id and action are required")
		return
	}

	result, err := h.service.Swipe(r.Context(), identity.UserID, req.TargetProfileID, req.Action)
	if err != nil {
		writeServiceError(w, err, "failed to process swipe")
		return
	}

	resp := dto.SwipeResponse{OK: true, Matched: result.Matched}
	if result.Matched && result.MatchID != uuid.Nil {
		resp.MatchID = result.MatchID.String()
	}
	httperrors.Write(w, http.StatusOK, resp)
}
