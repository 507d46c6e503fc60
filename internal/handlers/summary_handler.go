package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "grana/internal/errors"
	"grana/internal/services"
)

// SummaryHandler serves the derived read models: monthly summaries,
// projections, the budget-rule split, the cash-flow calendar and the
// planning grid.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// monthQuery parses the year and zero-based month query parameters,
// defaulting to the current month.
func monthQuery(c *gin.Context) (int, int, error) {
	now := time.Now().UTC()
	year := now.Year()
	monthIndex := int(now.Month()) - 1

	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year")
		}
		year = parsed
	}
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month")
		}
		monthIndex = parsed
	}
	return year, monthIndex, nil
}

// GetMonthSummary handles the settled month summary
// @Summary     Month summary
// @Description Settled income, expense, balance and savings rate of a month
// @Tags        summaries
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Param       month query int false "Zero-based month, 0 = January (defaults to current)"
// @Success     200 {object} ledger.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /summaries/month [get]
func (h *SummaryHandler) GetMonthSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	year, monthIndex, err := monthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.MonthSummary(userID, year, monthIndex)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetProjectedSummary handles the projected month summary
// @Summary     Projected summary
// @Description Month summary with unpaid payables folded in as commitments
// @Tags        summaries
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Param       month query int false "Zero-based month, 0 = January (defaults to current)"
// @Success     200 {object} ledger.Projection "Projection"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /summaries/projected [get]
func (h *SummaryHandler) GetProjectedSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	year, monthIndex, err := monthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projection, err := h.summaryService.ProjectedSummary(userID, year, monthIndex)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projection": projection})
}

// GetBudgetRule handles the informational budget-rule split
// @Summary     Budget-rule split
// @Description Essential, discretionary and savings split of a month's activity
// @Tags        summaries
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Param       month query int false "Zero-based month, 0 = January (defaults to current)"
// @Success     200 {object} ledger.BudgetRule "Budget rule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /summaries/budget-rule [get]
func (h *SummaryHandler) GetBudgetRule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	year, monthIndex, err := monthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rule, err := h.summaryService.MonthBudgetRule(userID, year, monthIndex)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget_rule": rule})
}

// GetCashFlow handles the day-by-day cash-flow calendar
// @Summary     Cash-flow calendar
// @Description Day-bucketed settled transactions and unpaid payables of a month
// @Tags        summaries
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Param       month query int false "Zero-based month, 0 = January (defaults to current)"
// @Success     200 {object} services.CashFlowData "Cash flow"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /summaries/cash-flow [get]
func (h *SummaryHandler) GetCashFlow(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	year, monthIndex, err := monthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.summaryService.CashFlow(userID, year, monthIndex, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetPlanningGrid handles the multi-month planning grid
// @Summary     Planning grid
// @Description Consecutive month cells with transactions split into planning groups
// @Tags        summaries
// @Produce     json
// @Security    BearerAuth
// @Param       start query string true "Start month key (YYYY-MM)"
// @Param       months query int false "Number of months (defaults to 12, max 36)"
// @Success     200 {array} ledger.MonthCell "Cells"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /summaries/planning-grid [get]
func (h *SummaryHandler) GetPlanningGrid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthCount := 0
	if v := c.Query("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid months"))
			return
		}
		monthCount = parsed
	}

	cells, err := h.summaryService.PlanningGrid(userID, c.Query("start"), monthCount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cells": cells})
}
