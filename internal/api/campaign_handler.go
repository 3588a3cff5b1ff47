package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/goleads/internal/database"
	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
)

// campaignRunLimit bounds how many leads one campaign run may email.
const campaignRunLimit = 200

// CampaignHandler manages outreach campaigns.
type CampaignHandler struct {
	campaigns CampaignStore
	leads     LeadStore
	outreach  OutreachRunner
	logger    logger.Logger
}

func NewCampaignHandler(
	campaigns CampaignStore,
	leads LeadStore,
	outreachRunner OutreachRunner,
	log logger.Logger,
) *CampaignHandler {
	return &CampaignHandler{
		campaigns: campaigns,
		leads:     leads,
		outreach:  outreachRunner,
		logger:    log,
	}
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var campaign domain.Campaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if campaign.Name == "" || campaign.Subject == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign name and subject are required"})
		return
	}

	if err := h.campaigns.Create(c.Request.Context(), &campaign); err != nil {
		h.logger.Error("Failed to create campaign",
			logger.String("campaign_name", campaign.Name),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign"})
		return
	}

	h.logger.Info("Campaign created",
		logger.String("campaign_id", campaign.ID),
		logger.String("campaign_name", campaign.Name),
	)

	c.JSON(http.StatusCreated, campaign)
}

func (h *CampaignHandler) List(c *gin.Context) {
	campaigns, err := h.campaigns.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list campaigns",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaigns": campaigns,
		"count":     len(campaigns),
	})
}

func (h *CampaignHandler) GetByName(c *gin.Context) {
	name := c.Param("name")

	campaign, err := h.campaigns.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, database.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaign"})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// Run sends the campaign to every qualified lead.
func (h *CampaignHandler) Run(c *gin.Context) {
	name := c.Param("name")

	campaign, err := h.campaigns.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, database.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaign"})
		return
	}

	leads, err := h.leads.List(c.Request.Context(), domain.LeadQualified, campaignRunLimit)
	if err != nil {
		h.logger.Error("Failed to list qualified leads",
			logger.String("campaign_name", name),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list qualified leads"})
		return
	}

	report, err := h.outreach.Run(c.Request.Context(), campaign, leads)
	if err != nil {
		h.logger.Error("Campaign run failed",
			logger.String("campaign_name", name),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Campaign run failed"})
		return
	}

	h.logger.Info("Campaign run finished",
		logger.String("campaign_name", name),
		logger.Int("sent", report.Sent),
		logger.Int("failed", report.Failed),
		logger.Int("skipped", report.Skipped),
	)

	c.JSON(http.StatusOK, gin.H{
		"campaign": name,
		"sent":     report.Sent,
		"failed":   report.Failed,
		"skipped":  report.Skipped,
	})
}
