package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "grana/internal/errors"
	"grana/internal/services"
)

// PayableHandler handles scheduled-payable requests.
type PayableHandler struct {
	payableService services.PayableServicer
	auditService   services.AuditServicer
}

// NewPayableHandler creates a new PayableHandler.
func NewPayableHandler(payableService services.PayableServicer, auditService services.AuditServicer) *PayableHandler {
	return &PayableHandler{payableService: payableService, auditService: auditService}
}

// CreatePayableRequest represents the request payload for registering a payable
type CreatePayableRequest struct {
	Name      string          `json:"name" binding:"required,max=200"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	DueDate   string          `json:"due_date" binding:"required"`
	WindowDay int             `json:"window_day" binding:"required,window_day"`
}

// CreatePayable handles registering a scheduled payable
// @Summary     Register a payable
// @Description Register a scheduled obligation in one of the 7/15/30 payment windows
// @Tags        payables
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePayableRequest true "Payable details"
// @Success     201 {object} models.Payable "Payable registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     422 {object} ErrorResponse "Invalid window day"
// @Router      /payables [post]
func (h *PayableHandler) CreatePayable(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	dueDate, err := parseFlexibleTime(req.DueDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	payable, err := h.payableService.Register(userID, req.Name, req.Amount, dueDate, req.WindowDay)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PAYABLE", "payable", payable.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount.String(), "window_day": req.WindowDay})

	c.JSON(http.StatusCreated, gin.H{"payable": payable})
}

// GetPayable handles retrieving a single payable
// @Summary     Get a payable
// @Description Retrieve one of the user's payables by ID
// @Tags        payables
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payable ID"
// @Success     200 {object} models.Payable "Payable"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /payables/{id} [get]
func (h *PayableHandler) GetPayable(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	payableID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payable, err := h.payableService.GetByID(userID, payableID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payable": payable})
}

// ListMonthWindows handles listing a month's payables grouped by window
// @Summary     List a month's payment windows
// @Description Group the month's payables into the day-7, day-15 and day-30 windows
// @Tags        payables
// @Produce     json
// @Security    BearerAuth
// @Param       month path string true "Month key (YYYY-MM)"
// @Success     200 {object} ledger.WindowGroups "Window groups"
// @Failure     400 {object} ErrorResponse "Invalid month key"
// @Router      /payables/month/{month} [get]
func (h *PayableHandler) ListMonthWindows(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groups, err := h.payableService.MonthWindows(userID, c.Param("month"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"windows": groups})
}

// SettlePayable handles settling a payable
// @Summary     Settle a payable
// @Description Mark a payable paid and record the matching settled transaction
// @Tags        payables
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Payable ID"
// @Success     200 {object} models.Payable "Payable settled"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Already settled"
// @Router      /payables/{id}/settle [post]
func (h *PayableHandler) SettlePayable(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	payableID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	payable, transaction, err := h.payableService.Settle(userID, payableID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SETTLE_PAYABLE", "payable", payable.ID, c.ClientIP(),
		map[string]interface{}{"transaction_id": transaction.ID, "amount": payable.Amount.String()})

	c.JSON(http.StatusOK, gin.H{"payable": payable, "transaction": transaction})
}
