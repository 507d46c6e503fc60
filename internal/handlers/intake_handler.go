package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "grana/internal/errors"
	"grana/internal/models"
	"grana/internal/services"
)

// IntakeHandler receives batches of candidate transactions from external
// extractors (bank statement parsers, importers). Requests are
// authenticated with the intake service key, not a user token; each batch
// is addressed to a user by email.
type IntakeHandler struct {
	userService        services.UserServicer
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(userService services.UserServicer, transactionService services.TransactionServicer, auditService services.AuditServicer) *IntakeHandler {
	return &IntakeHandler{
		userService:        userService,
		transactionService: transactionService,
		auditService:       auditService,
	}
}

// IntakeRecord is one candidate transaction in an intake batch.
type IntakeRecord struct {
	Description string                 `json:"description" binding:"max=500"`
	Category    string                 `json:"category" binding:"required,max=100"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Date        string                 `json:"date" binding:"required"`
}

// IntakeBatchRequest represents an extractor's batch submission.
type IntakeBatchRequest struct {
	UserEmail string         `json:"user_email" binding:"required,email"`
	Source    string         `json:"source" binding:"required,max=100"`
	Records   []IntakeRecord `json:"records" binding:"required,min=1,max=500,dive"`
}

// IntakeRejection reports why a record in the batch was not stored.
type IntakeRejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// IntakeBatchResponse summarizes the outcome of a batch submission.
type IntakeBatchResponse struct {
	Accepted int               `json:"accepted"`
	Rejected []IntakeRejection `json:"rejected"`
}

// SubmitBatch handles an extractor batch submission
// @Summary     Submit an intake batch
// @Description Store a batch of extracted candidate transactions for a user
// @Tags        intake
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body IntakeBatchRequest true "Batch of candidate transactions"
// @Success     200 {object} IntakeBatchResponse "Batch outcome"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid service key"
// @Failure     404 {object} ErrorResponse "Unknown user"
// @Router      /intake/transactions [post]
func (h *IntakeHandler) SubmitBatch(c *gin.Context) {
	var req IntakeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.GetUserByEmail(req.UserEmail)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := IntakeBatchResponse{Rejected: []IntakeRejection{}}
	for i, record := range req.Records {
		date, err := parseFlexibleTime(record.Date)
		if err != nil {
			resp.Rejected = append(resp.Rejected, IntakeRejection{Index: i, Reason: err.Error()})
			continue
		}

		// Records are independent: one bad row must not sink the batch.
		_, err = h.transactionService.Create(user.ID, record.Description, record.Category,
			record.Type, record.Amount, date)
		if err != nil {
			resp.Rejected = append(resp.Rejected, IntakeRejection{Index: i, Reason: err.Error()})
			continue
		}
		resp.Accepted++
	}

	h.auditService.Log(user.ID, "INTAKE_BATCH", "transaction", "", c.ClientIP(),
		map[string]interface{}{"source": req.Source, "accepted": resp.Accepted, "rejected": len(resp.Rejected)})

	c.JSON(http.StatusOK, resp)
}
