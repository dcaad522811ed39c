package handlers

import (
	"net/http"

	"github.com/admanager/admanager-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// PreferencesHandler handles style-profile HTTP requests
type PreferencesHandler struct {
	preferencesService *services.PreferencesService
}

// NewPreferencesHandler creates a new PreferencesHandler
func NewPreferencesHandler(preferencesService *services.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{
		preferencesService: preferencesService,
	}
}

// GetPreferences handles GET /preferences
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	prefs := h.preferencesService.Get(c, c.GetString("userID"))
	c.JSON(http.StatusOK, prefs)
}
