package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradelens/barter_ledger/internal/apperrors"
	portssvc "github.com/tradelens/barter_ledger/internal/core/ports/services"
	"github.com/tradelens/barter_ledger/internal/dto"
	"github.com/tradelens/barter_ledger/internal/middleware"
)

// barterHandler handles HTTP requests for barter transactions.
type barterHandler struct {
	barterService portssvc.BarterSvcFacade
}

// newBarterHandler creates a new barterHandler.
func newBarterHandler(barterService portssvc.BarterSvcFacade) *barterHandler {
	return &barterHandler{barterService: barterService}
}

// registerBarterRoutes registers barter transaction routes on the group.
func registerBarterRoutes(group *gin.RouterGroup, barterService portssvc.BarterSvcFacade) {
	h := newBarterHandler(barterService)
	barters := group.Group("/barters")
	{
		barters.POST("", middleware.RequireDeviceID(), h.createBarter)
		barters.GET("", h.queryBarters)
		barters.GET("/:barterID", h.getBarter)
		barters.PATCH("/:barterID", middleware.RequireDeviceID(), h.updateBarter)
		barters.POST("/:barterID/post", middleware.RequireDeviceID(), h.postBarter)
		barters.POST("/:barterID/void", middleware.RequireDeviceID(), h.voidBarter)
	}
}

// respondServiceError maps service errors onto HTTP responses.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Warn("Validation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": validationErr.Messages})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Barter transaction not found"})
	case errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Invalid state transition", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent modification detected", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Service error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createBarter godoc
// @Summary Create a barter transaction
// @Description Validates the exchange and atomically creates the barter header plus two offsetting journal entries
// @Tags barters
// @Accept  json
// @Produce  json
// @Param   X-Device-ID header string true "Acting device identifier"
// @Param   barter body dto.CreateBarterRequest true "Barter transaction"
// @Success 201 {object} dto.BarterWithEntriesResponse "Created barter with both entries and any warnings"
// @Failure 400 {object} map[string]interface{} "Invalid request format or validation failure"
// @Failure 404 {object} map[string]string "Income or expense account not found"
// @Failure 500 {object} map[string]string "Failed to create barter transaction"
// @Router /barters [post]
func (h *barterHandler) createBarter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBarter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	deviceID, _ := middleware.GetDeviceIDFromContext(c)

	result, warnings, err := h.barterService.CreateBarter(c.Request.Context(), req, deviceID)
	if err != nil {
		respondServiceError(c, logger, err, "create barter transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBarterWithEntriesResponse(result, warnings))
}

// getBarter godoc
// @Summary Get a barter transaction
// @Description Retrieves the barter header with both offsetting journal entries
// @Tags barters
// @Produce  json
// @Param   barterID path string true "Barter ID"
// @Success 200 {object} dto.BarterWithEntriesResponse
// @Failure 404 {object} map[string]string "Barter transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve barter transaction"
// @Router /barters/{barterID} [get]
func (h *barterHandler) getBarter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	barterID := c.Param("barterID")

	result, err := h.barterService.GetBarterByID(c.Request.Context(), barterID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve barter transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToBarterWithEntriesResponse(result, nil))
}

// queryBarters godoc
// @Summary Query barter transactions
// @Description Filters a company's barter transactions; pagination applies after filtering
// @Tags barters
// @Produce  json
// @Param   companyID query string true "Company ID"
// @Param   status query []string false "Status filter (DRAFT, POSTED, VOID)"
// @Param   dateFrom query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   dateTo query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   taxYear query int false "Tax year"
// @Param   reportable query bool false "1099-B reportable only"
// @Param   counterpartyContactID query string false "Counterparty contact ID"
// @Param   search query string false "Case-insensitive description search"
// @Param   offset query int false "Pagination offset"
// @Param   limit query int false "Pagination limit"
// @Success 200 {object} dto.QueryBartersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to query barter transactions"
// @Router /barters [get]
func (h *barterHandler) queryBarters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.QueryBartersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for queryBarters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	barters, err := h.barterService.QueryBarters(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "query barter transactions")
		return
	}

	c.JSON(http.StatusOK, dto.QueryBartersResponse{
		Barters: dto.ToBarterResponses(barters),
		Offset:  req.Offset,
		Limit:   req.Limit,
		Count:   len(barters),
	})
}

// updateBarter godoc
// @Summary Update a draft barter transaction
// @Description Applies a partial update to a DRAFT barter; FMV changes rebuild the child entries' line items
// @Tags barters
// @Accept  json
// @Produce  json
// @Param   X-Device-ID header string true "Acting device identifier"
// @Param   barterID path string true "Barter ID"
// @Param   barter body dto.UpdateBarterRequest true "Fields to update"
// @Success 200 {object} dto.BarterResponse
// @Failure 400 {object} map[string]interface{} "Invalid request format or validation failure"
// @Failure 404 {object} map[string]string "Barter transaction not found"
// @Failure 409 {object} map[string]string "Not a draft, or concurrent modification detected"
// @Failure 500 {object} map[string]string "Failed to update barter transaction"
// @Router /barters/{barterID} [patch]
func (h *barterHandler) updateBarter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	barterID := c.Param("barterID")

	var req dto.UpdateBarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBarter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	deviceID, _ := middleware.GetDeviceIDFromContext(c)

	barter, warnings, err := h.barterService.UpdateBarter(c.Request.Context(), barterID, req, deviceID)
	if err != nil {
		respondServiceError(c, logger, err, "update barter transaction")
		return
	}

	response := dto.ToBarterResponse(barter)
	if len(warnings) > 0 {
		c.JSON(http.StatusOK, gin.H{"barter": response, "warnings": warnings})
		return
	}
	c.JSON(http.StatusOK, gin.H{"barter": response})
}

// postBarter godoc
// @Summary Post a draft barter transaction
// @Description Finalizes a DRAFT barter; the status change cascades to both journal entries
// @Tags barters
// @Produce  json
// @Param   X-Device-ID header string true "Acting device identifier"
// @Param   barterID path string true "Barter ID"
// @Success 200 {object} dto.BarterResponse
// @Failure 404 {object} map[string]string "Barter transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not in a postable state"
// @Failure 500 {object} map[string]string "Failed to post barter transaction"
// @Router /barters/{barterID}/post [post]
func (h *barterHandler) postBarter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	barterID := c.Param("barterID")
	deviceID, _ := middleware.GetDeviceIDFromContext(c)

	barter, err := h.barterService.PostBarter(c.Request.Context(), barterID, deviceID)
	if err != nil {
		respondServiceError(c, logger, err, "post barter transaction")
		return
	}

	logger.Info("Barter transaction posted", slog.String("barter_id", barterID))
	c.JSON(http.StatusOK, dto.ToBarterResponse(barter))
}

// voidBarter godoc
// @Summary Void a barter transaction
// @Description Voids a DRAFT or POSTED barter and both journal entries, appending the reason to the memo
// @Tags barters
// @Accept  json
// @Produce  json
// @Param   X-Device-ID header string true "Acting device identifier"
// @Param   barterID path string true "Barter ID"
// @Param   void body dto.VoidBarterRequest true "Void reason"
// @Success 200 {object} dto.BarterResponse
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Barter transaction not found"
// @Failure 409 {object} map[string]string "Transaction is already void"
// @Failure 500 {object} map[string]string "Failed to void barter transaction"
// @Router /barters/{barterID}/void [post]
func (h *barterHandler) voidBarter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	barterID := c.Param("barterID")

	var req dto.VoidBarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for voidBarter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A void reason is required"})
		return
	}
	deviceID, _ := middleware.GetDeviceIDFromContext(c)

	barter, err := h.barterService.VoidBarter(c.Request.Context(), barterID, deviceID, req.Reason)
	if err != nil {
		respondServiceError(c, logger, err, "void barter transaction")
		return
	}

	logger.Info("Barter transaction voided", slog.String("barter_id", barterID))
	c.JSON(http.StatusOK, dto.ToBarterResponse(barter))
}
