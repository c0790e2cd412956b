package handlers

import (
	"net/http"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := &settingsHandler{settingsService: settingsService}

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("", h.updateSettings)
	}
}

// getSettings godoc
// @Summary Display preferences
// @Description Returns the saved preferences of the current user, or the defaults.
// @Tags settings
// @Produce json
// @Success 200 {object} domain.Settings
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	settings, err := h.settingsService.Get(c.Request.Context(), session.ID)
	if err != nil {
		respondError(c, err, "load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// updateSettings godoc
// @Summary Update display preferences
// @Description Saves currency, default rate type and default capitalization. The capitalization is dropped unless the default rate type is NOMINAL.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body domain.Settings true "Preferences"
// @Success 200 {object} domain.Settings
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /settings [put]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var req domain.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), session.ID, req)
	if err != nil {
		respondError(c, err, "save settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
