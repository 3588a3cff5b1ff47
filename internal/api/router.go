// Package api exposes the HTTP surface: signal queries, lead management,
// campaign runs and harvest triggers.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonesrussell/goleads/internal/logger"
)

const (
	corsMaxAgeHours = 12
)

// Deps collects everything the HTTP handlers need.
type Deps struct {
	Registry  SourceDirectory
	Signals   SignalStore
	Search    SignalSearcher
	Leads     LeadStore
	Campaigns CampaignStore
	Analyzer  SiteAnalyzer
	Importer  LeadImporter
	Harvester HarvestRunner
	Outreach  OutreachRunner
	Metrics   prometheus.Gatherer
}

func NewRouter(deps Deps, log logger.Logger) *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	// Middleware
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	// API v1
	v1 := router.Group("/api/v1")

	sourceHandler := NewSourceHandler(deps.Registry, deps.Signals, log)
	v1.GET("/sources", sourceHandler.List)

	harvestHandler := NewHarvestHandler(deps.Harvester, log)
	v1.POST("/sources/:name/harvest", harvestHandler.RunSource)
	v1.POST("/harvest", harvestHandler.Run)

	signalHandler := NewSignalHandler(deps.Signals, deps.Search, log)
	signals := v1.Group("/signals")
	signals.GET("", signalHandler.List)
	signals.GET("/search", signalHandler.Search)
	signals.GET("/:id", signalHandler.GetByID)

	leadHandler := NewLeadHandler(deps.Leads, deps.Signals, deps.Analyzer, deps.Importer, log)
	leads := v1.Group("/leads")
	leads.POST("", leadHandler.Create)
	leads.GET("", leadHandler.List)
	leads.POST("/import", leadHandler.Import)
	leads.GET("/:id", leadHandler.GetByID)
	leads.PUT("/:id/state", leadHandler.UpdateState)
	leads.POST("/:id/analyze", leadHandler.Analyze)
	leads.GET("/:id/proposal", leadHandler.Proposal)

	campaignHandler := NewCampaignHandler(deps.Campaigns, deps.Leads, deps.Outreach, log)
	campaigns := v1.Group("/campaigns")
	campaigns.POST("", campaignHandler.Create)
	campaigns.GET("", campaignHandler.List)
	campaigns.GET("/:name", campaignHandler.GetByName)
	campaigns.POST("/:name/run", campaignHandler.Run)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
