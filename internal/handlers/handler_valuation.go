package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/projection"
	"github.com/JuanPescoran/bond-valuation-app/internal/dto"
	"github.com/JuanPescoran/bond-valuation-app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// valuationHandler handles HTTP requests related to valuations.
type valuationHandler struct {
	valuationService portssvc.ValuationSvcFacade
	historyService   portssvc.HistorySvcFacade
	settingsService  portssvc.SettingsSvcFacade
	formatter        *projection.Formatter
}

func newValuationHandler(services *portssvc.ServiceContainer, formatter *projection.Formatter) *valuationHandler {
	return &valuationHandler{
		valuationService: services.Valuation,
		historyService:   services.History,
		settingsService:  services.Settings,
		formatter:        formatter,
	}
}

// registerValuationRoutes registers routes related to valuations.
// public routes work without a session; protected routes require one.
func registerValuationRoutes(public, protected *gin.RouterGroup, services *portssvc.ServiceContainer, formatter *projection.Formatter) {
	h := newValuationHandler(services, formatter)

	open := public.Group("/valuations")
	{
		open.GET("/form-rules", h.formRules)
		open.POST("/validate", h.validate)
	}

	valuations := protected.Group("/valuations")
	{
		valuations.POST("", h.createValuation)
		valuations.GET("", h.listValuations)
		valuations.GET("/:id", h.getValuation)
		valuations.DELETE("/:id", h.deleteValuation)
	}
}

// displayCurrency returns the user's display currency, defaulting when settings cannot be read.
func (h *valuationHandler) displayCurrency(c *gin.Context, session *domain.Session) domain.Currency {
	settings, err := h.settingsService.Get(c.Request.Context(), session.ID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to load settings, using default currency", slog.String("error", err.Error()))
		return domain.DefaultSettings().Currency
	}
	return settings.Currency
}

func parseValuationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid valuation id", slog.String("id", c.Param("id")))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid valuation id"})
		return 0, false
	}
	return id, true
}

// formRules godoc
// @Summary Field requirements
// @Description Returns whether each input field is required, optional or hidden for the given rate and grace selections. An empty rate type falls back to the user's default.
// @Tags valuations
// @Produce json
// @Param rateType query string false "EFFECTIVE or NOMINAL"
// @Param graceType query string false "NONE, PARTIAL or TOTAL"
// @Success 200 {object} dto.FormRulesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /valuations/form-rules [get]
func (h *valuationHandler) formRules(c *gin.Context) {
	var params dto.FormRulesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, err)
		return
	}
	if params.RateType != "" && !params.RateType.Valid() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Fields: map[string]string{domain.FieldRateType: "must be one of EFFECTIVE, NOMINAL"}})
		return
	}
	if params.GraceType == "" {
		params.GraceType = domain.GraceNone
	}
	if !params.GraceType.Valid() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Fields: map[string]string{domain.FieldGraceType: "must be one of NONE, PARTIAL, TOTAL"}})
		return
	}

	session, _ := middleware.GetSessionFromContext(c)
	rules := h.valuationService.FormRules(c.Request.Context(), session, params.RateType, params.GraceType)
	c.JSON(http.StatusOK, dto.FormRulesResponse{RateType: params.RateType, GraceType: params.GraceType, Fields: rules})
}

// validate godoc
// @Summary Validate bond parameters
// @Description Runs every field and cross-field check and returns the backend-ready request without computing it.
// @Tags valuations
// @Accept json
// @Produce json
// @Param params body domain.BondParameters true "Bond parameters"
// @Success 200 {object} dto.ValidateResponse
// @Failure 400 {object} dto.ErrorResponse "Field violations"
// @Failure 401 {object} dto.ErrorResponse "Valid input, no session"
// @Router /valuations/validate [post]
func (h *valuationHandler) validate(c *gin.Context) {
	var params domain.BondParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		bindingError(c, err)
		return
	}

	session, _ := middleware.GetSessionFromContext(c)
	req, err := h.valuationService.Validate(c.Request.Context(), session, params)
	if err != nil {
		respondError(c, err, "validate valuation")
		return
	}
	c.JSON(http.StatusOK, dto.ValidateResponse{Request: req})
}

// createValuation godoc
// @Summary Compute a valuation
// @Description Validates the parameters and asks the valuation backend to compute the schedule and metrics.
// @Tags valuations
// @Accept json
// @Produce json
// @Param params body domain.BondParameters true "Bond parameters"
// @Success 201 {object} dto.CreateValuationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /valuations [post]
func (h *valuationHandler) createValuation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var params domain.BondParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		bindingError(c, err)
		return
	}

	logger.Info("Received request to create valuation", slog.String("valuation_name", params.ValuationName))
	resp, err := h.valuationService.Calculate(c.Request.Context(), session, params)
	if err != nil {
		respondError(c, err, "create valuation")
		return
	}

	proj := h.formatter.Project(*resp, h.displayCurrency(c, session))
	c.JSON(http.StatusCreated, dto.CreateValuationResponse{Valuation: resp, Summary: proj.Summary, Projection: proj})
}

// listValuations godoc
// @Summary Valuation history
// @Description Lists every valuation of the current user, most recent backend order preserved, with the same rows formatted in the display currency.
// @Tags valuations
// @Produce json
// @Success 200 {object} dto.ListValuationsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /valuations [get]
func (h *valuationHandler) listValuations(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	items, err := h.historyService.List(c.Request.Context(), session)
	if err != nil {
		respondError(c, err, "list valuations")
		return
	}
	c.JSON(http.StatusOK, dto.ListValuationsResponse{
		Valuations: items,
		Formatted:  h.formatter.HistoryRows(items, h.displayCurrency(c, session)),
	})
}

// getValuation godoc
// @Summary Get a valuation by ID
// @Description Returns a stored valuation with its totals, formatted headline metrics and chart series.
// @Tags valuations
// @Produce json
// @Param id path int true "Valuation ID"
// @Success 200 {object} dto.ValuationDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Valuation not found, recovery points to the history"
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /valuations/{id} [get]
func (h *valuationHandler) getValuation(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseValuationID(c)
	if !ok {
		return
	}

	resp, err := h.valuationService.Get(c.Request.Context(), session, id)
	if err != nil {
		respondError(c, err, "get valuation")
		return
	}

	proj := h.formatter.Project(*resp, h.displayCurrency(c, session))
	c.JSON(http.StatusOK, dto.ValuationDetailResponse{Valuation: resp, Projection: proj, Chart: proj.Chart})
}

// deleteValuation godoc
// @Summary Delete a valuation
// @Tags valuations
// @Param id path int true "Valuation ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /valuations/{id} [delete]
func (h *valuationHandler) deleteValuation(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseValuationID(c)
	if !ok {
		return
	}

	if err := h.valuationService.Delete(c.Request.Context(), session, id); err != nil {
		respondError(c, err, "delete valuation")
		return
	}
	c.Status(http.StatusNoContent)
}
