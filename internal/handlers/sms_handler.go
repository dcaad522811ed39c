package handlers

import (
	"net/http"

	"github.com/admanager/admanager-backend/internal/models"
	"github.com/admanager/admanager-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// SMSHandler handles draft-generation HTTP requests
type SMSHandler struct {
	smsService *services.SMSService
}

// NewSMSHandler creates a new SMSHandler
func NewSMSHandler(smsService *services.SMSService) *SMSHandler {
	return &SMSHandler{
		smsService: smsService,
	}
}

// GenerateSMS handles POST /sms/generate
func (h *SMSHandler) GenerateSMS(c *gin.Context) {
	var req models.SMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	drafts, err := h.smsService.GenerateDrafts(c, req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate drafts: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.SMSResponse{Drafts: drafts})
}

// RefineSMS handles POST /sms/refine
func (h *SMSHandler) RefineSMS(c *gin.Context) {
	var req models.RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.smsService.RefineDraft(c, req.Content, req.Kind)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refine draft: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, draft)
}

// RecommendTones handles POST /sms/recommend-tones
func (h *SMSHandler) RecommendTones(c *gin.Context) {
	var req struct {
		DiscountRate int `json:"discountRate"`
		DurationDays int `json:"durationDays"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tones := services.RecommendTones(req.DiscountRate, req.DurationDays)
	c.JSON(http.StatusOK, gin.H{"tones": tones})
}
