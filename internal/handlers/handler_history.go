package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
	"github.com/JuanPescoran/bond-valuation-app/internal/dto"
	"github.com/JuanPescoran/bond-valuation-app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type historyHandler struct {
	valuationService portssvc.ValuationWriterSvc
}

func registerHistoryRoutes(rg *gin.RouterGroup, valuationService portssvc.ValuationWriterSvc) {
	h := &historyHandler{valuationService: valuationService}
	rg.POST("/history", h.saveToHistory)
}

// saveToHistory godoc
// @Summary Save a valuation to the history
// @Description Records a computed valuation under a display name.
// @Tags history
// @Accept json
// @Produce json
// @Param entry body dto.SaveHistoryRequest true "Valuation id and name"
// @Success 201 {object} domain.HistoryItem
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /history [post]
func (h *historyHandler) saveToHistory(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var req dto.SaveHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	item, err := h.valuationService.SaveToHistory(c.Request.Context(), session, req.ValuationID, req.Name)
	if err != nil {
		respondError(c, err, "save valuation to history")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Valuation saved to history", slog.Int64("valuation_id", item.ID))
	c.JSON(http.StatusCreated, item)
}
