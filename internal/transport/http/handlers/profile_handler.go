package handlers

import (
	"net/http"

	"github.com/renwic/trusthub/internal/domain/model"
	profilesvc "github.com/renwic/trusthub/internal/services/profiles"
	"github.com/renwic/trusthub/internal/transport/http/dto"
	httperrors "github.com/renwic/trusthub/internal/transport/http/errors"
)

type ProfileHandler struct {
	service *profilesvc.Service
}

func NewProfileHandler(service *profilesvc.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	profile, err := h.service.Me(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err, "failed to load profile")
		return
	}
	httperrors.Write(w, http.StatusOK, mapProfile(profile))
}

func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	profile, err := h.service.Update(r.Context(), identity.UserID, profilesvc.UpdateInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		PhotoCount:  req.PhotoCount,
		Occupation:  req.Lifestyle.Occupation,
		Education:   req.Lifestyle.Education,
		HeightCM:    req.Lifestyle.HeightCM,
		Drinking:    req.Lifestyle.Drinking,
		Smoking:     req.Lifestyle.Smoking,
		Exercise:    req.Lifestyle.Exercise,
		Pets:        req.Lifestyle.Pets,
		Religion:    req.Lifestyle.Religion,
		Interests:   req.Interests,
	})
	if err != nil {
		writeServiceError(w, err, "failed to update profile")
		return
	}
	httperrors.Write(w, http.StatusOK, mapProfile(profile))
}

func mapProfile(p model.Profile) dto.ProfileResponse {
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	return dto.ProfileResponse{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		PhotoCount:  p.PhotoCount,
		Lifestyle: dto.LifestylePayload{
			Occupation: p.Lifestyle.Occupation,
			Education:  p.Lifestyle.Education,
			HeightCM:   p.Lifestyle.HeightCM,
			Drinking:   p.Lifestyle.Drinking,
			Smoking:    p.Lifestyle.Smoking,
			Exercise:   p.Lifestyle.Exercise,
			Pets:       p.Lifestyle.Pets,
			Religion:   p.Lifestyle.Religion,
		},
		Interests: interests,
		UpdatedAt: p.UpdatedAt,
	}
}
