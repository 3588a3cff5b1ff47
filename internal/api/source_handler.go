package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/goleads/internal/logger"
)

// SourceHandler serves the portal directory.
type SourceHandler struct {
	registry SourceDirectory
	signals  SignalStore
	logger   logger.Logger
}

func NewSourceHandler(registry SourceDirectory, signals SignalStore, log logger.Logger) *SourceHandler {
	return &SourceHandler{
		registry: registry,
		signals:  signals,
		logger:   log,
	}
}

type sourceInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Enabled bool   `json:"enabled"`
	Signals int    `json:"signals"`
}

func (h *SourceHandler) List(c *gin.Context) {
	counts, err := h.signals.CountBySource(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to count signals by source",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sources"})
		return
	}

	registered := h.registry.List()
	infos := make([]sourceInfo, 0, len(registered))
	for _, src := range registered {
		infos = append(infos, sourceInfo{
			Name:    src.Name(),
			Kind:    string(src.Kind()),
			Enabled: h.registry.IsEnabled(src.Name()),
			Signals: counts[src.Name()],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": infos,
		"count":   len(infos),
	})
}
