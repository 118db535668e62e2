package api

import (
	"github.com/BerylCAtieno/astro-profiler-agent/internal/a2a"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/config"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/middleware"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/profiler"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter assembles the gin engine with every endpoint the server exposes.
func NewRouter(cfg config.Config, service *profiler.Service, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowOrigins) == 0 || (len(cfg.Server.AllowOrigins) == 1 && cfg.Server.AllowOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.SessionHeader)
	corsConfig.ExposeHeaders = append(corsConfig.ExposeHeaders, middleware.SessionHeader)
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Session(), middleware.RequestLogging(logger))

	handler := NewHandler(service, logger)
	a2aHandler := a2a.NewA2AHandler(service, logger)

	router.GET("/health", handler.Health)
	router.GET("/metrics", handler.Metrics)
	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)

	limited := router.Group("/", middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	{
		limited.POST("/api/astro", handler.CreateReport)
		limited.POST("/api/question", handler.AskQuestion)
		limited.POST("/a2a/astro", a2aHandler.HandleAstro)
	}

	return router
}
