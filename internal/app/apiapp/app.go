package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/renwic/trusthub/internal/config"
	"github.com/renwic/trusthub/internal/domain/rules"
	"github.com/renwic/trusthub/internal/infra/metrics"
	natsinfra "github.com/renwic/trusthub/internal/infra/nats"
	"github.com/renwic/trusthub/internal/repo/memory"
	pgrepo "github.com/renwic/trusthub/internal/repo/postgres"
	redrepo "github.com/renwic/trusthub/internal/repo/redis"
	authsvc "github.com/renwic/trusthub/internal/services/auth"
	engagementsvc "github.com/renwic/trusthub/internal/services/engagement"
	matchessvc "github.com/renwic/trusthub/internal/services/matches"
	notifysvc "github.com/renwic/trusthub/internal/services/notify"
	profilesvc "github.com/renwic/trusthub/internal/services/profiles"
	ratesvc "github.com/renwic/trusthub/internal/services/rate"
	scoresvc "github.com/renwic/trusthub/internal/services/scores"
	swipesvc "github.com/renwic/trusthub/internal/services/swipes"
	testimonialsvc "github.com/renwic/trusthub/internal/services/testimonials"
	"github.com/renwic/trusthub/internal/transport/http/handlers"
)

type profileStore interface {
	swipesvc.ProfileStore
	profilesvc.ProfileStore
}

type engagementStore interface {
	engagementsvc.EngagementStore
	scoresvc.EngagementStore
}

type matchStore interface {
	swipesvc.MatchStore
	matchessvc.MatchStore
}

// stores is one storage backend seen through the service interfaces.
type stores struct {
	profiles     profileStore
	testimonials testimonialsvc.TestimonialStore
	engagement   engagementStore
	swipes       swipesvc.SwipeStore
	matches      matchStore
}

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	nats       *natsinfra.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	m := metrics.New()
	r := chi.NewRouter()
	ApplyMiddlewares(r, log, m, cfg.HTTP.CORSOrigins, cfg.HTTP.RequestTimeout)

	healthChecks := map[string]handlers.Pinger{}

	var (
		pool *pgxpool.Pool
		st   stores
	)
	switch cfg.Storage.Driver {
	case "memory":
		log.Warn("using in-memory storage, data is lost on restart")
		st = memoryStores(memory.NewDB())
	default:
		if p, err := pgrepo.NewPool(ctx, pgrepo.PoolConfig{
			DSN:            cfg.Postgres.DSN,
			MaxConns:       cfg.Postgres.MaxConns,
			ConnectTimeout: cfg.Postgres.ConnectTimeout,
		}); err != nil {
			log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
		} else {
			pool = p
		}
		st = postgresStores(pool)
		healthChecks["postgres"] = pingFunc(func(ctx context.Context) error {
			if pool == nil {
				return errors.New("postgres pool is not configured")
			}
			return pool.Ping(ctx)
		})
	}

	var redisClient *goredis.Client
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		redisClient = redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		healthChecks["redis"] = pingFunc(func(ctx context.Context) error {
			return redrepo.Ping(ctx, redisClient)
		})
	}
	redisUp := redisClient != nil
	if redisUp {
		if err := redrepo.Ping(ctx, redisClient); err != nil {
			log.Warn("redis ping failed, rate limiting disabled", zap.Error(err))
			redisUp = false
		}
	}

	var scoreStore scoresvc.Store = scoresvc.NewMemoryStore()
	if cfg.Cache.Backend == "redis" {
		if redisClient == nil {
			log.Warn("cache.backend=redis without redis.addr, using in-process score cache")
		} else {
			scoreStore = redrepo.NewScoreRepo(redisClient, cfg.Cache.TTL)
		}
	}

	var (
		swipeLimiter   swipesvc.RateLimiter
		commentLimiter engagementsvc.RateLimiter
	)
	if redisUp {
		limiter := ratesvc.NewLimiter(redrepo.NewRateRepo(redisClient), ratesvc.Limits{
			SwipesPerMinute:   cfg.Limits.SwipesPerMinute,
			SwipesPer10Sec:    cfg.Limits.SwipesPer10Sec,
			CommentsPerMinute: cfg.Limits.CommentsPerMinute,
		})
		swipeLimiter = limiter
		commentLimiter = limiter
	}

	var (
		natsClient *natsinfra.Client
		dispatcher notifysvc.Dispatcher = notifysvc.Noop{}
	)
	if strings.TrimSpace(cfg.NATS.URL) != "" {
		if c, err := natsinfra.NewClient(natsinfra.Config{
			URL:   cfg.NATS.URL,
			Token: cfg.NATS.Token,
			Name:  "trusthub-api",
		}, log); err != nil {
			log.Warn("nats init failed, notifications disabled", zap.Error(err))
		} else {
			natsClient = c
			dispatcher = notifysvc.NewNATSDispatcher(natsClient, cfg.NATS.SubjectPrefix)
			healthChecks["nats"] = natsClient
		}
	}
	notifier := notifysvc.NewBestEffort(dispatcher, log, m)

	scoreService := scoresvc.NewService(scoresvc.Dependencies{
		Store:        scoreStore,
		Profiles:     st.profiles,
		Testimonials: st.testimonials,
		Engagement:   st.engagement,
		Metrics:      m,
		Logger:       log,
	}, scoresvc.Config{
		RealRep: rules.RealRepConfig{
			PropsSaturation: cfg.Scoring.PropsSaturation,
			BioMinLength:    cfg.Scoring.BioMinLength,
		},
		PopRep: rules.PopRepConfig{
			LikeWeight:    cfg.Scoring.LikeWeight,
			CommentWeight: cfg.Scoring.CommentWeight,
			Saturation:    cfg.Scoring.PopSaturation,
		},
	})
	profileService := profilesvc.NewService(st.profiles, scoreService)
	testimonialService := testimonialsvc.NewService(testimonialsvc.Dependencies{
		Testimonials: st.testimonials,
		Profiles:     st.profiles,
		Scores:       scoreService,
		Notifier:     notifier,
		Logger:       log,
	}, testimonialsvc.Config{
		AutoApprove: cfg.Scoring.AutoApproveProps,
		MaxPhotos:   cfg.Scoring.MaxPhotosPerProp,
	})
	engagementService := engagementsvc.NewService(engagementsvc.Dependencies{
		Testimonials: st.testimonials,
		Engagement:   st.engagement,
		Scores:       scoreService,
		RateLimiter:  commentLimiter,
	}, engagementsvc.Config{
		MaxCommentLength: cfg.Scoring.MaxCommentLength,
	})
	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		Profiles:    st.profiles,
		Swipes:      st.swipes,
		Matches:     st.matches,
		Notifier:    notifier,
		RateLimiter: swipeLimiter,
		Metrics:     m,
		Logger:      log,
	})
	matchesService := matchessvc.NewService(matchessvc.Dependencies{
		MatchStore:   st.matches,
		ProfileStore: st.profiles,
	})

	RegisterRoutes(r, Dependencies{
		Tokens:             authsvc.NewJWTManager(cfg.Auth.JWTSecret, 0),
		ProfileService:     profileService,
		ScoreService:       scoreService,
		SwipeService:       swipeService,
		MatchService:       matchesService,
		TestimonialService: testimonialService,
		EngagementService:  engagementService,
		HealthChecks:       healthChecks,
		MetricsHandler:     m.Handler(),
		Logger:             log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		nats:       natsClient,
		httpRouter: r,
	}, nil
}

func memoryStores(db *memory.DB) stores {
	return stores{
		profiles:     memory.NewProfileRepo(db),
		testimonials: memory.NewTestimonialRepo(db),
		engagement:   memory.NewEngagementRepo(db),
		swipes:       memory.NewSwipeRepo(db),
		matches:      memory.NewMatchRepo(db),
	}
}

// postgresStores accepts a nil pool; every call then fails with ErrDependency.
func postgresStores(pool *pgxpool.Pool) stores {
	return stores{
		profiles:     pgrepo.NewProfileRepo(pool),
		testimonials: pgrepo.NewTestimonialRepo(pool),
		engagement:   pgrepo.NewEngagementRepo(pool),
		swipes:       pgrepo.NewSwipeRepo(pool),
		matches:      pgrepo.NewMatchRepo(pool),
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func (a *App) Run() error {
	a.logger.Info("api server started",
		zap.String("addr", a.cfg.HTTP.Addr),
		zap.String("storage", a.cfg.Storage.Driver),
		zap.String("cache", a.cfg.Cache.Backend),
	)
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.nats != nil {
		a.nats.Close()
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
