package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bidboard/marketplace-api/handlers"
	"github.com/bidboard/marketplace-api/internal/resource/handler"
	"github.com/bidboard/marketplace-api/internal/resource/service"
	"github.com/bidboard/marketplace-api/internal/sessions"
	"github.com/bidboard/marketplace-api/internal/tokens"
	"github.com/bidboard/marketplace-api/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the router is assembled from.
type Deps struct {
	Issuer     *tokens.Issuer
	Denylist   *sessions.Denylist // optional
	Jobs       *service.Collection
	Bids       *service.Collection
	Store      Pinger // optional; /ready reports "mongo": false without it
	Gatherer   prometheus.Gatherer
	Origins    []string
	Production bool
}

// DefaultOrigin is the frontend allowed when no origins are configured.
const DefaultOrigin = "http://localhost:5173"

var startTime = time.Now()

// NewRouter builds the HTTP surface: operational endpoints, session
// endpoints and the job and bid resources.
func NewRouter(d Deps) *gin.Engine {
	origins := d.Origins
	if len(origins) == 0 {
		origins = []string{DefaultOrigin}
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server running")
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"mongo": false}
		if d.Store != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			deps["mongo"] = d.Store.Ping(ctx) == nil
			cancel()
		}
		uptime := time.Since(startTime).String()
		if !deps["mongo"] {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	handlers.RegisterSwagger(r)

	handlers.NewAuthHandler(d.Issuer, d.Denylist, d.Production).Register(r)

	gate := middleware.AuthMiddleware(d.Issuer, d.Denylist)
	handler.RegisterJobRoutes(r, d.Jobs, gate)
	handler.RegisterBidRoutes(r, d.Bids, gate)
	return r
}
