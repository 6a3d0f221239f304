package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/renwic/trusthub/internal/domain/model"
	engagementsvc "github.com/renwic/trusthub/internal/services/engagement"
	"github.com/renwic/trusthub/internal/transport/http/dto"
	httperrors "github.com/renwic/trusthub/internal/transport/http/errors"
)

type EngagementHandler struct {
	service *engagementsvc.Service
}

func NewEngagementHandler(service *engagementsvc.Service) *EngagementHandler {
	return &EngagementHandler{service: service}
}

func (h *EngagementHandler) Like(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	testimonialID, photoIndex, ok := h.photoRef(w, r)
	if !ok {
		return
	}

	if err := h.service.LikePhoto(r.Context(), testimonialID, photoIndex, identity.UserID); err != nil {
		writeServiceError(w, err, "failed to like photo")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.LikePhotoResponse{OK: true})
}

func (h *EngagementHandler) Comment(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	testimonialID, photoIndex, ok := h.photoRef(w, r)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	comment, err := h.service.CommentOnPhoto(r.Context(), testimonialID, photoIndex, identity.UserID, req.Text)
	if err != nil {
		writeServiceError(w, err, "failed to comment on photo")
		return
	}
	httperrors.Write(w, http.StatusCreated, mapComment(comment))
}

func (h *EngagementHandler) Comments(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}
	testimonialID, photoIndex, ok := h.photoRef(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListComments(r.Context(), testimonialID, photoIndex, parseIntOrDefault(r.URL.Query().Get("limit"), 50))
	if err != nil {
		writeServiceError(w, err, "failed to load comments")
		return
	}

	resp := dto.CommentsResponse{Items: make([]dto.CommentResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapComment(item))
	}
	httperrors.Write(w, http.StatusOK, resp)
}

func (h *EngagementHandler) photoRef(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, bool) {
	if h.service == nil {
		writeInternal(w, "ENGAGEMENT_SERVICE_UNAVAILABLE", "engagement service is unavailable")
		return uuid.Nil, 0, false
	}
	testimonialID, ok := uuidURLParam(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid testimonial id")
		return uuid.Nil, 0, false
	}
	photoIndex, ok := photoIndexURLParam(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid photo index")
		return uuid.Nil, 0, false
	}
	return testimonialID, photoIndex, true
}

func mapComment(item model.PhotoComment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:            item.ID.String(),
		TestimonialID: item.TestimonialID.String(),
		PhotoIndex:    item.PhotoIndex,
		UserID:        item.UserID,
		Text:          item.Text,
		CreatedAt:     item.CreatedAt,
	}
}
