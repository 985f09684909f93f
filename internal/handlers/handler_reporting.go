package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradelens/barter_ledger/internal/core/ports/services"
	"github.com/tradelens/barter_ledger/internal/dto"
	"github.com/tradelens/barter_ledger/internal/middleware"
)

// reportingHandler handles statistics and tax reporting requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// registerReportingRoutes registers report routes on the group.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	reports := group.Group("/reports/barters")
	{
		reports.GET("/statistics", h.getStatistics)
		reports.GET("/tax-summary", h.getTaxSummary)
	}
}

// reportParams pulls the company and tax year query parameters shared by all
// report endpoints. Tax year defaults to the current year.
func reportParams(c *gin.Context) (companyID string, taxYear int, ok bool) {
	companyID = c.Query("companyID")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companyID query parameter is required"})
		return "", 0, false
	}
	taxYear = time.Now().UTC().Year()
	if raw := c.Query("taxYear"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "taxYear must be an integer"})
			return "", 0, false
		}
		taxYear = parsed
	}
	return companyID, taxYear, true
}

// getStatistics godoc
// @Summary Barter statistics for a tax year
// @Description Aggregates counts and FMV totals; voided transactions count by status and month but are excluded from totals
// @Tags reports
// @Produce  json
// @Param   companyID query string true "Company ID"
// @Param   taxYear query int false "Tax year (defaults to current year)"
// @Success 200 {object} dto.BarterStatisticsResponse
// @Failure 400 {object} map[string]string "Missing or invalid parameters"
// @Failure 500 {object} map[string]string "Failed to compute statistics"
// @Router /reports/barters/statistics [get]
func (h *reportingHandler) getStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, taxYear, ok := reportParams(c)
	if !ok {
		return
	}

	stats, err := h.reportingService.Statistics(c.Request.Context(), companyID, taxYear)
	if err != nil {
		logger.Error("Failed to compute barter statistics", slog.String("company_id", companyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBarterStatisticsResponse(stats))
}

// getTaxSummary godoc
// @Summary Counterparty-grouped 1099-B tax summary
// @Description Groups a year's reportable, non-void barter income by counterparty with resolved contact details
// @Tags reports
// @Produce  json
// @Param   companyID query string true "Company ID"
// @Param   taxYear query int false "Tax year (defaults to current year)"
// @Success 200 {object} dto.BarterTaxSummaryResponse
// @Failure 400 {object} map[string]string "Missing or invalid parameters"
// @Failure 500 {object} map[string]string "Failed to compute tax summary"
// @Router /reports/barters/tax-summary [get]
func (h *reportingHandler) getTaxSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, taxYear, ok := reportParams(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.TaxSummary(c.Request.Context(), companyID, taxYear)
	if err != nil {
		logger.Error("Failed to compute barter tax summary", slog.String("company_id", companyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute tax summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBarterTaxSummaryResponse(summary))
}
