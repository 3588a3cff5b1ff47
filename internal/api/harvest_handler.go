package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/goleads/internal/harvest"
	"github.com/jonesrussell/goleads/internal/logger"
)

// HarvestHandler triggers harvest runs over HTTP.
type HarvestHandler struct {
	harvester HarvestRunner
	logger    logger.Logger
}

func NewHarvestHandler(harvester HarvestRunner, log logger.Logger) *HarvestHandler {
	return &HarvestHandler{
		harvester: harvester,
		logger:    log,
	}
}

type harvestSourceResult struct {
	Fetched   int    `json:"fetched"`
	New       int    `json:"new"`
	Duplicate int    `json:"duplicate"`
	Error     string `json:"error,omitempty"`
}

// Run harvests all enabled sources synchronously and reports per-source
// results. Long runs are expected; clients should use a generous timeout.
func (h *HarvestHandler) Run(c *gin.Context) {
	report := h.harvester.Run(c.Request.Context())

	results := make(map[string]harvestSourceResult, len(report.PerSource))
	for name, sr := range report.PerSource {
		result := harvestSourceResult{
			Fetched:   sr.Fetched,
			New:       sr.New,
			Duplicate: sr.Duplicate,
		}
		if sr.Err != nil {
			result.Error = sr.Err.Error()
		}
		results[name] = result
	}

	status := http.StatusOK
	if failed := report.Failed(); len(failed) > 0 {
		h.logger.Warn("Harvest finished with failures",
			logger.Strings("failed_sources", failed),
		)
		status = http.StatusMultiStatus
	}

	c.JSON(status, gin.H{
		"sources":  results,
		"duration": report.Duration.String(),
	})
}

// RunSource harvests a single portal, even a disabled one.
func (h *HarvestHandler) RunSource(c *gin.Context) {
	name := c.Param("name")

	sr, err := h.harvester.RunSource(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, harvest.ErrUnknownSource) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown source"})
			return
		}
		h.logger.Error("Source harvest failed",
			logger.String("source", name),
			logger.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Source harvest failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, harvestSourceResult{
		Fetched:   sr.Fetched,
		New:       sr.New,
		Duplicate: sr.Duplicate,
	})
}
