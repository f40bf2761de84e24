package main

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/medscience/medscience/internal/config"
	"github.com/medscience/medscience/internal/domain/assistant"
	"github.com/medscience/medscience/internal/domain/catalog"
	"github.com/medscience/medscience/internal/domain/conversation"
	"github.com/medscience/medscience/internal/domain/identity"
	"github.com/medscience/medscience/internal/domain/news"
	"github.com/medscience/medscience/internal/domain/resource"
	"github.com/medscience/medscience/internal/platform/apierror"
	"github.com/medscience/medscience/internal/platform/db"
	"github.com/medscience/medscience/internal/platform/middleware"
	"github.com/medscience/medscience/internal/platform/telemetry"
	"github.com/medscience/medscience/internal/platform/validation"
)

// repositories is one backing store's implementation of every collection.
type repositories struct {
	bodySystems catalog.BodySystemRepository
	diseases    catalog.DiseaseRepository
	symptoms    catalog.SymptomRepository
	articles    news.ArticleRepository
	resources   resource.ResourceRepository
	chats       conversation.ChatHistoryRepository
	users       identity.UserRepository
}

func memoryRepositories() repositories {
	return repositories{
		bodySystems: catalog.NewBodySystemRepoMem(),
		diseases:    catalog.NewDiseaseRepoMem(),
		symptoms:    catalog.NewSymptomRepoMem(),
		articles:    news.NewArticleRepoMem(),
		resources:   resource.NewResourceRepoMem(),
		chats:       conversation.NewChatHistoryRepoMem(),
		users:       identity.NewUserRepoMem(),
	}
}

func postgresRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		bodySystems: catalog.NewBodySystemRepoPG(pool),
		diseases:    catalog.NewDiseaseRepoPG(pool),
		symptoms:    catalog.NewSymptomRepoPG(pool),
		articles:    news.NewArticleRepoPG(pool),
		resources:   resource.NewResourceRepoPG(pool),
		chats:       conversation.NewChatHistoryRepoPG(pool),
		users:       identity.NewUserRepoPG(pool),
	}
}

type services struct {
	catalog       *catalog.Service
	news          *news.Service
	resources     *resource.Service
	conversations *conversation.Service
	users         *identity.Service
}

func newServices(r repositories) *services {
	return &services{
		catalog:       catalog.NewService(r.bodySystems, r.diseases, r.symptoms),
		news:          news.NewService(r.articles),
		resources:     resource.NewService(r.resources),
		conversations: conversation.NewService(r.chats),
		users:         identity.NewService(r.users),
	}
}

// newServer builds the echo instance with middleware and every route. pool
// is nil for the memory store.
func newServer(cfg *config.Config, svc *services, ai *assistant.Service, metrics *telemetry.Provider, pool *pgxpool.Pool, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apierror.Handler(logger)
	e.Validator = validation.New()

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(metrics.MetricsMiddleware())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout, "/metrics", "/health"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}
	e.GET("/metrics", metrics.PrometheusHandler())

	api := e.Group("/api")
	catalog.NewHandler(svc.catalog).RegisterRoutes(api)
	news.NewHandler(svc.news).RegisterRoutes(api)
	resource.NewHandler(svc.resources).RegisterRoutes(api)
	conversation.NewHandler(svc.conversations).RegisterRoutes(api)
	assistant.NewHandler(ai, svc.conversations, logger).RegisterRoutes(api)

	return e
}
