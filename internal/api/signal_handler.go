package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/goleads/internal/database"
	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
)

const defaultSearchSize = 20

// SignalHandler serves harvested demand signals.
type SignalHandler struct {
	signals SignalStore
	search  SignalSearcher
	logger  logger.Logger
}

func NewSignalHandler(signals SignalStore, search SignalSearcher, log logger.Logger) *SignalHandler {
	return &SignalHandler{
		signals: signals,
		search:  search,
		logger:  log,
	}
}

func (h *SignalHandler) List(c *gin.Context) {
	filter := database.SignalFilter{
		Source:   c.Query("source"),
		Type:     domain.SignalType(c.Query("type")),
		Industry: domain.Industry(c.Query("industry")),
		MinScore: queryFloat(c, "min_score"),
		Search:   c.Query("q"),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	}
	if since := c.Query("since"); since != "" {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'since' timestamp, want RFC 3339"})
			return
		}
		filter.Since = parsed
	}

	signals, err := h.signals.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list signals",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list signals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"signals": signals,
		"count":   len(signals),
	})
}

func (h *SignalHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	signal, err := h.signals.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrSignalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Signal not found"})
			return
		}
		h.logger.Error("Failed to get signal",
			logger.String("signal_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get signal"})
		return
	}

	c.JSON(http.StatusOK, signal)
}

func (h *SignalHandler) Search(c *gin.Context) {
	if h.search == nil || !h.search.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is not enabled"})
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter 'q'"})
		return
	}

	size := queryInt(c, "size")
	if size <= 0 {
		size = defaultSearchSize
	}

	signals, err := h.search.SearchSignals(c.Request.Context(), query, size)
	if err != nil {
		h.logger.Error("Signal search failed",
			logger.String("query", query),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"signals": signals,
		"count":   len(signals),
	})
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

func queryFloat(c *gin.Context, name string) float64 {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		return 0
	}
	return v
}
