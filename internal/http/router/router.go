// Package router assembles the Gin engine, shared middleware and module routes.
package router

import (
	"net/http"
	"strings"
	"time"

	apphttp "shipping_portal_backend/internal/http"
	"shipping_portal_backend/platform/config"
	"shipping_portal_backend/platform/httpkit"
	"shipping_portal_backend/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Config combines the config surfaces the router needs.
type Config interface {
	config.HTTPConfig
	config.CarrierConfig
}

// HealthResponse reports whether the carrier credential is configured.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// New builds the Gin engine with shared middleware, the health endpoint and
// all module routes mounted under /api/v1.
func New(cfg Config, log *logger.Logger, env string, modules ...apphttp.Module) *gin.Engine {
	if !strings.EqualFold(env, "development") {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(cfg))

	limiter := httpkit.NewIPRateLimiter(rate.Limit(cfg.GetRateLimitRPS()), cfg.GetRateLimitBurst(), log)
	engine.Use(limiter.RateLimit())

	engine.GET("/api/health", func(c *gin.Context) {
		resp := HealthResponse{
			Status:    "ok",
			Message:   "API key is configured",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		if !cfg.IsCarrierConfigured() {
			resp.Status = "misconfigured"
			resp.Message = "API key is missing or not set"
		}
		c.JSON(http.StatusOK, resp)
	})

	ctx := &apphttp.RouterContext{
		Engine: engine,
		V1:     engine.Group("/api/v1"),
	}
	for _, module := range modules {
		module.RegisterRoutes(ctx)
		log.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(cfg Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if cfg.GetCORSAllowAll() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.GetCORSOrigins()
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", httpkit.HeaderRequestID}
	return cors.New(corsConfig)
}
