package handlers

import (
	"net/http"

	matchessvc "github.com/renwic/trusthub/internal/services/matches"
	"github.com/renwic/trusthub/internal/transport/http/dto"
	httperrors "github.com/renwic/trusthub/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchessvc.Service
}

func NewMatchesHandler(service *matchessvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	items, err := h.service.List(r.Context(), identity.UserID, parseIntOrDefault(r.URL.Query().Get("limit"), 100))
	if err != nil {
		writeServiceError(w, err, "failed to load matches")
		return
	}

	responseItems := make([]dto.MatchItemResponse, 0, len(items))
	for _, item := range items {
		shared := item.SharedInterests
		if shared == nil {
			shared = []string{}
		}
		responseItems = append(responseItems, dto.MatchItemResponse{
			ID:              item.ID.String(),
			TargetProfileID: item.TargetProfileID,
			DisplayName:     item.DisplayName,
			SharedInterests: shared,
			Compatibility:   item.Compatibility,
			CreatedAt:       item.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.MatchesResponse{Items: responseItems})
}
