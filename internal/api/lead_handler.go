package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/goleads/internal/database"
	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/proposal"
)

// LeadHandler manages the lead lifecycle.
type LeadHandler struct {
	leads    LeadStore
	signals  SignalStore
	analyzer SiteAnalyzer
	importer LeadImporter
	logger   logger.Logger
}

func NewLeadHandler(
	leads LeadStore,
	signals SignalStore,
	analyzer SiteAnalyzer,
	leadImporter LeadImporter,
	log logger.Logger,
) *LeadHandler {
	return &LeadHandler{
		leads:    leads,
		signals:  signals,
		analyzer: analyzer,
		importer: leadImporter,
		logger:   log,
	}
}

func (h *LeadHandler) Create(c *gin.Context) {
	var lead domain.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if lead.CompanyName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company name is required"})
		return
	}

	if err := h.leads.Create(c.Request.Context(), &lead); err != nil {
		h.logger.Error("Failed to create lead",
			logger.String("company_name", lead.CompanyName),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lead"})
		return
	}

	h.logger.Info("Lead created",
		logger.String("lead_id", lead.ID),
		logger.String("company_name", lead.CompanyName),
	)

	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) List(c *gin.Context) {
	state := domain.LeadState(c.Query("state"))
	limit := queryInt(c, "limit")

	leads, err := h.leads.List(c.Request.Context(), state, limit)
	if err != nil {
		h.logger.Error("Failed to list leads",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": leads,
		"count": len(leads),
	})
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	lead, err := h.leads.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		h.logger.Error("Failed to get lead",
			logger.String("lead_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lead"})
		return
	}

	c.JSON(http.StatusOK, lead)
}

type updateStateRequest struct {
	State domain.LeadState `json:"state" binding:"required"`
}

func (h *LeadHandler) UpdateState(c *gin.Context) {
	id := c.Param("id")

	var req updateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.leads.UpdateState(c.Request.Context(), id, req.State); err != nil {
		switch {
		case errors.Is(err, database.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Invalid state transition", "details": err.Error()})
		default:
			h.logger.Error("Failed to update lead state",
				logger.String("lead_id", id),
				logger.String("state", string(req.State)),
				logger.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead state"})
		}
		return
	}

	h.logger.Info("Lead state updated",
		logger.String("lead_id", id),
		logger.String("state", string(req.State)),
	)

	c.JSON(http.StatusOK, gin.H{"id": id, "state": req.State})
}

func (h *LeadHandler) Analyze(c *gin.Context) {
	id := c.Param("id")

	lead, err := h.leads.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lead"})
		return
	}

	if lead.Website == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Lead has no website to analyze"})
		return
	}

	profile := h.analyzer.Analyze(c.Request.Context(), lead.Website)

	if err := h.leads.AttachProfile(c.Request.Context(), id, profile); err != nil {
		h.logger.Error("Failed to store site profile",
			logger.String("lead_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store site profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *LeadHandler) Proposal(c *gin.Context) {
	id := c.Param("id")

	lead, err := h.leads.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lead"})
		return
	}

	var signal *domain.Signal
	if lead.SignalID != "" {
		signal, err = h.signals.GetByID(c.Request.Context(), lead.SignalID)
		if err != nil && !errors.Is(err, database.ErrSignalNotFound) {
			h.logger.Warn("Failed to load lead's signal",
				logger.String("lead_id", id),
				logger.String("signal_id", lead.SignalID),
				logger.Error(err),
			)
		}
	}

	draft := proposal.Draft(lead, signal, lead.Profile)

	c.JSON(http.StatusOK, gin.H{
		"proposal": draft,
		"text":     draft.Text(),
	})
}

func (h *LeadHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload", "details": err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open upload"})
		return
	}
	defer src.Close()

	report, err := h.importer.Import(c.Request.Context(), src)
	if err != nil {
		h.logger.Error("Lead import failed",
			logger.String("filename", file.Filename),
			logger.Error(err),
		)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Import failed", "details": err.Error()})
		return
	}

	h.logger.Info("Leads imported",
		logger.String("filename", file.Filename),
		logger.Int("created", report.Created),
		logger.Int("skipped", report.Skipped),
		logger.Int("errors", len(report.Errors)),
	)

	c.JSON(http.StatusOK, report)
}
