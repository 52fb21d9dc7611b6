package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
	"github.com/wsetiyawan/balancebook/internal/core/domain"
	portssvc "github.com/wsetiyawan/balancebook/internal/core/ports/services"
	"github.com/wsetiyawan/balancebook/internal/middleware"
)

// reportingHandler handles HTTP requests for the read-side balance reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/categories/:category", h.getCategoryBalance)
	}
}

// getSummary godoc
// @Summary Get the balance summary
// @Description Computes every category balance plus net income from posted ledger activity
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.SummaryResponse
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.Summary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getCategoryBalance godoc
// @Summary Get one category's balance
// @Description Computes the signed balance of a whole account category from its ledger activity
// @Tags reports
// @Produce  json
// @Param   category path string true "Account category" Enums(asset, liability, equity, revenue, expense)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid category"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Router /reports/categories/{category} [get]
func (h *reportingHandler) getCategoryBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	category := domain.AccountCategory(c.Param("category"))
	if !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category: " + string(category)})
		return
	}

	balance, err := h.reportingService.CategoryBalance(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute category balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": string(category), "balance": balance})
}
