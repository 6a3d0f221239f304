package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/renwic/trusthub/internal/transport/http/dto"
)

func TestEngagementLikeAndComment(t *testing.T) {
	svc := newTestServices(t)
	profile := svc.seedProfile(t, 10)
	props := NewTestimonialsHandler(svc.testimonials)
	h := NewEngagementHandler(svc.engagement)

	var created dto.TestimonialResponse
	decodeBody(t, submitProp(t, props, profile.ID, validProp()), &created)

	photoReq := func(method string, body any, index string) *http.Request {
		return withURLParams(withUser(newJSONRequest(t, method, "/", body), 77), "id", created.ID, "index", index)
	}

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.Like(rec, photoReq(http.MethodPost, nil, "0"))
		if rec.Code != http.StatusOK {
			t.Fatalf("like #%d: unexpected status %d %s", i+1, rec.Code, rec.Body.String())
		}
	}

	score, err := svc.scores.Get(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("get score: %v", err)
	}
	if score.PopRep != 2 {
		t.Fatalf("repeated like must count once: popRep=%d want 2", score.PopRep)
	}

	rec := httptest.NewRecorder()
	h.Comment(rec, photoReq(http.MethodPost, map[string]string{"text": "  great shot  "}, "0"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected comment status: %d %s", rec.Code, rec.Body.String())
	}
	var comment dto.CommentResponse
	decodeBody(t, rec, &comment)
	if comment.Text != "great shot" || comment.UserID != 77 {
		t.Fatalf("unexpected comment: %+v", comment)
	}

	rec = httptest.NewRecorder()
	h.Comments(rec, photoReq(http.MethodGet, nil, "0"))
	var comments dto.CommentsResponse
	decodeBody(t, rec, &comments)
	if len(comments.Items) != 1 {
		t.Fatalf("expected one comment, got %d", len(comments.Items))
	}

	score, err = svc.scores.Get(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("get score: %v", err)
	}
	if score.PopRep != 10 {
		t.Fatalf("unexpected popRep after one like and one comment: %d", score.PopRep)
	}
}

func TestEngagementErrors(t *testing.T) {
	svc := newTestServices(t)
	profile := svc.seedProfile(t, 10)
	var created dto.TestimonialResponse
	decodeBody(t, submitProp(t, NewTestimonialsHandler(svc.testimonials), profile.ID, validProp()), &created)
	h := NewEngagementHandler(svc.engagement)

	cases := []struct {
		name   string
		id     string
		index  string
		text   string
		status int
	}{
		{name: "missing photo", id: created.ID, index: strconv.Itoa(5), text: "hi", status: http.StatusNotFound},
		{name: "negative index", id: created.ID, index: "-1", text: "hi", status: http.StatusBadRequest},
		{name: "bad testimonial id", id: "zzz", index: "0", text: "hi", status: http.StatusBadRequest},
		{name: "blank comment", id: created.ID, index: "0", text: "   ", status: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := withURLParams(withUser(newJSONRequest(t, http.MethodPost, "/", map[string]string{"text": tc.text}), 5), "id", tc.id, "index", tc.index)
			rec := httptest.NewRecorder()
			h.Comment(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("unexpected status: got %d want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
		})
	}
}
