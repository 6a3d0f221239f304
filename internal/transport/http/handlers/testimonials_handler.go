package handlers

import (
	"net/http"

	"github.com/renwic/trusthub/internal/domain/model"
	testimonialsvc "github.com/renwic/trusthub/internal/services/testimonials"
	"github.com/renwic/trusthub/internal/transport/http/dto"
	httperrors "github.com/renwic/trusthub/internal/transport/http/errors"
)

type TestimonialsHandler struct {
	service *testimonialsvc.Service
}

func NewTestimonialsHandler(service *testimonialsvc.Service) *TestimonialsHandler {
	return &TestimonialsHandler{service: service}
}

func (h *TestimonialsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "TESTIMONIAL_SERVICE_UNAVAILABLE", "testimonial service is unavailable")
		return
	}
	profileID, ok := int64URLParam(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid profile id")
		return
	}

	var req dto.SubmitTestimonialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	photos := make([]testimonialsvc.PhotoInput, 0, len(req.Photos))
	for _, p := range req.Photos {
		photos = append(photos, testimonialsvc.PhotoInput{URL: p.URL, Description: p.Description})
	}

	item, err := h.service.Submit(r.Context(), profileID, testimonialsvc.SubmitInput{
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Body:        req.Body,
		Ratings: testimonialsvc.RatingsInput{
			Trustworthy: req.Ratings.Trustworthy,
			Fun:         req.Ratings.Fun,
			Caring:      req.Ratings.Caring,
			Ambitious:   req.Ratings.Ambitious,
			Reliable:    req.Ratings.Reliable,
		},
		Photos: photos,
	})
	if err != nil {
		writeServiceError(w, err, "failed to submit testimonial")
		return
	}

	httperrors.Write(w, http.StatusCreated, mapTestimonial(item))
}

func (h *TestimonialsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "TESTIMONIAL_SERVICE_UNAVAILABLE", "testimonial service is unavailable")
		return
	}
	profileID, ok := int64URLParam(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid profile id")
		return
	}

	items, err := h.service.ListApproved(r.Context(), profileID, parseIntOrDefault(r.URL.Query().Get("limit"), 50))
	if err != nil {
		writeServiceError(w, err, "failed to load testimonials")
		return
	}

	resp := dto.TestimonialsResponse{Items: make([]dto.TestimonialResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapTestimonial(item))
	}
	httperrors.Write(w, http.StatusOK, resp)
}

func (h *TestimonialsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.setApproval(w, r, true)
}

func (h *TestimonialsHandler) Unapprove(w http.ResponseWriter, r *http.Request) {
	h.setApproval(w, r, false)
}

func (h *TestimonialsHandler) setApproval(w http.ResponseWriter, r *http.Request, approved bool) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "TESTIMONIAL_SERVICE_UNAVAILABLE", "testimonial service is unavailable")
		return
	}
	testimonialID, ok := uuidURLParam(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid testimonial id")
		return
	}

	item, err := h.service.SetApproval(r.Context(), testimonialID, approved)
	if err != nil {
		writeServiceError(w, err, "failed to update testimonial")
		return
	}
	httperrors.Write(w, http.StatusOK, mapTestimonial(item))
}

func mapTestimonial(item model.Testimonial) dto.TestimonialResponse {
	photos := make([]dto.PhotoPayload, 0, len(item.Photos))
	for _, p := range item.Photos {
		photos = append(photos, dto.PhotoPayload{URL: p.URL, Description: p.Description})
	}
	return dto.TestimonialResponse{
		ID:         item.ID.String(),
		ProfileID:  item.ProfileID,
		AuthorName: item.Author.Name,
		Body:       item.Body,
		Ratings: dto.RatingsPayload{
			Trustworthy: item.Ratings.Trustworthy,
			Fun:         item.Ratings.Fun,
			Caring:      item.Ratings.Caring,
			Ambitious:   item.Ratings.Ambitious,
			Reliable:    item.Ratings.Reliable,
		},
		Approved:  item.Approved,
		Photos:    photos,
		CreatedAt: item.CreatedAt,
	}
}
