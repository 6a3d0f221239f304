package handlers

import (
	"net/http"

	"github.com/renwic/trusthub/internal/domain/rules"
	scoresvc "github.com/renwic/trusthub/internal/services/scores"
	"github.com/renwic/trusthub/internal/transport/http/dto"
	httperrors "github.com/renwic/trusthub/internal/transport/http/errors"
)

type ScoreHandler struct {
	service *scoresvc.Service
}

func NewScoreHandler(service *scoresvc.Service) *ScoreHandler {
	return &ScoreHandler{service: service}
}

func (h *ScoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "SCORE_SERVICE_UNAVAILABLE", "score service is unavailable")
		return
	}
	profileID, ok := int64URLParam(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid profile id")
		return
	}

	score, err := h.service.Get(r.Context(), profileID)
	if err != nil {
		writeServiceError(w, err, "failed to load score")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ScoreResponse{
		ProfileID:  score.ProfileID,
		RealRep:    score.RealRep,
		RealBand:   rules.RealRepBand(score.RealRep),
		PopRep:     score.PopRep,
		PopBand:    rules.PopRepBand(score.PopRep),
		ComputedAt: score.ComputedAt,
	})
}
