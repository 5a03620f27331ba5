package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi/handlers"
	"github.com/ThurpatiNainesh/tinylink/internal/app/links"
)

const (
	linksPath      = "/links"
	linkByCodePath = "/links/:code"
	redirectPath   = "/:code"
)

type RouterDeps struct {
	Links   links.UseCase
	BaseURL string

	Version   string
	StartedAt time.Time

	// VisitTimeout bounds the detached click update on redirects.
	VisitTimeout time.Duration
}

type EnginePlugin func(*gin.Engine)

// NewEngine creates a bare gin.Engine and applies plugins in order.
func NewEngine(plugins ...EnginePlugin) *gin.Engine {
	r := gin.New()

	for _, p := range plugins {
		p(r)
	}

	return r
}

// RegisterRoutes attaches routes/handlers to an existing engine.
func RegisterRoutes(r *gin.Engine, deps RouterDeps) {
	opts := []handlers.Option{
		handlers.WithStartedAt(deps.StartedAt),
		handlers.WithVisitTimeout(deps.VisitTimeout),
	}
	if deps.Version != "" {
		opts = append(opts, handlers.WithVersion(deps.Version))
	}

	h := handlers.New(deps.Links, deps.BaseURL, opts...)

	// top-level static routes shadow /:code; keep domain.reservedCodes in step
	r.NoRoute(h.NotFound)
	r.GET("/ping", h.Ping)
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET(linksPath, h.ListLinks)
		api.POST(linksPath, h.CreateLink)
		api.GET(linkByCodePath, h.GetLink)
		api.DELETE(linkByCodePath, h.DeleteLink)
	}

	r.GET(redirectPath, h.Redirect)
}
