package apiapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authsvc "github.com/renwic/trusthub/internal/services/auth"
	engagementsvc "github.com/renwic/trusthub/internal/services/engagement"
	matchessvc "github.com/renwic/trusthub/internal/services/matches"
	profilesvc "github.com/renwic/trusthub/internal/services/profiles"
	scoresvc "github.com/renwic/trusthub/internal/services/scores"
	swipesvc "github.com/renwic/trusthub/internal/services/swipes"
	testimonialsvc "github.com/renwic/trusthub/internal/services/testimonials"
	"github.com/renwic/trusthub/internal/transport/http/handlers"
)

type Dependencies struct {
	Tokens             TokenParser
	ProfileService     *profilesvc.Service
	ScoreService       *scoresvc.Service
	SwipeService       *swipesvc.Service
	MatchService       *matchessvc.Service
	TestimonialService *testimonialsvc.Service
	EngagementService  *engagementsvc.Service
	HealthChecks       map[string]handlers.Pinger
	MetricsHandler     http.Handler
	Logger             *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.HealthChecks)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	scoreHandler := handlers.NewScoreHandler(deps.ScoreService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	testimonialsHandler := handlers.NewTestimonialsHandler(deps.TestimonialService)
	engagementHandler := handlers.NewEngagementHandler(deps.EngagementService)
	authMW := AuthMiddleware(deps.Tokens, deps.Logger)
	moderatorMW := RequireRole(authsvc.RoleOwner, authsvc.RoleModerator)

	r.Get("/healthz", healthHandler.Get)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		r.With(authMW).Get("/profile", profileHandler.Get)
		r.With(authMW).Put("/profile", profileHandler.Put)
		r.With(authMW).Get("/profiles/{id}/score", scoreHandler.Get)
		// Props are written by people without an account.
		r.Post("/profiles/{id}/testimonials", testimonialsHandler.Submit)
		r.Get("/profiles/{id}/testimonials", testimonialsHandler.List)
		r.With(authMW).Post("/swipes", swipeHandler.Handle)
		r.With(authMW).Get("/matches", matchesHandler.Handle)
		r.With(authMW).Post("/testimonials/{id}/photos/{index}/likes", engagementHandler.Like)
		r.With(authMW).Post("/testimonials/{id}/photos/{index}/comments", engagementHandler.Comment)
		r.With(authMW).Get("/testimonials/{id}/photos/{index}/comments", engagementHandler.Comments)
	})

	r.Route("/v1/admin", func(r chi.Router) {
		r.Use(authMW, moderatorMW)
		r.Post("/testimonials/{id}/approve", testimonialsHandler.Approve)
		r.Post("/testimonials/{id}/unapprove", testimonialsHandler.Unapprove)
	})
}
