package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/renwic/trusthub/internal/domain/model"
	"github.com/renwic/trusthub/internal/repo/memory"
	authsvc "github.com/renwic/trusthub/internal/services/auth"
	engagementsvc "github.com/renwic/trusthub/internal/services/engagement"
	matchessvc "github.com/renwic/trusthub/internal/services/matches"
	profilesvc "github.com/renwic/trusthub/internal/services/profiles"
	scoresvc "github.com/renwic/trusthub/internal/services/scores"
	swipesvc "github.com/renwic/trusthub/internal/services/swipes"
	testimonialsvc "github.com/renwic/trusthub/internal/services/testimonials"
)

type testServices struct {
	profiles     *memory.ProfileRepo
	scores       *scoresvc.Service
	swipes       *swipesvc.Service
	testimonials *testimonialsvc.Service
	engagement   *engagementsvc.Service
	matches      *matchessvc.Service
	profileSvc   *profilesvc.Service
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	db := memory.NewDB()
	profiles := memory.NewProfileRepo(db)
	testimonials := memory.NewTestimonialRepo(db)
	engagement := memory.NewEngagementRepo(db)
	swipes := memory.NewSwipeRepo(db)
	matches := memory.NewMatchRepo(db)

	scores := scoresvc.NewService(scoresvc.Dependencies{
		Store:        scoresvc.NewMemoryStore(),
		Profiles:     profiles,
		Testimonials: testimonials,
		Engagement:   engagement,
	}, scoresvc.Config{})

	return testServices{
		profiles: profiles,
		scores:   scores,
		swipes: swipesvc.NewService(swipesvc.Dependencies{
			Profiles: profiles,
			Swipes:   swipes,
			Matches:  matches,
		}),
		testimonials: testimonialsvc.NewService(testimonialsvc.Dependencies{
			Testimonials: testimonials,
			Profiles:     profiles,
			Scores:       scores,
		}, testimonialsvc.Config{AutoApprove: true}),
		engagement: engagementsvc.NewService(engagementsvc.Dependencies{
			Testimonials: testimonials,
			Engagement:   engagement,
			Scores:       scores,
		}, engagementsvc.Config{}),
		matches: matchessvc.NewService(matchessvc.Dependencies{
			MatchStore:   matches,
			ProfileStore: profiles,
		}),
		profileSvc: profilesvc.NewService(profiles, scores),
	}
}

func (s testServices) seedProfile(t *testing.T, userID int64, interests ...string) model.Profile {
	t.Helper()
	profile, err := s.profiles.UpsertByUserID(context.Background(), model.Profile{
		UserID:      userID,
		DisplayName: "user",
		Interests:   interests,
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	return httptest.NewRequest(method, target, reader)
}

func withUser(r *http.Request, userID int64) *http.Request {
	return r.WithContext(authsvc.WithIdentity(r.Context(), authsvc.Identity{
		UserID: userID,
		SID:    "sid",
		Role:   authsvc.RoleUser,
	}))
}

func withURLParams(r *http.Request, kv ...string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		routeCtx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
