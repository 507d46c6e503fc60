package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "grana/internal/errors"
	"grana/internal/models"
	"grana/internal/pagination"
	"grana/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createFn    func(userID, description, category string, txType models.TransactionType, amount decimal.Decimal, date time.Time) (*models.Transaction, error)
	listFn      func(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getByIDFn   func(userID, transactionID string) (*models.Transaction, error)
	updateFn    func(userID, transactionID string, update services.TransactionUpdate) (*models.Transaction, error)
	deleteFn    func(userID, transactionID string) error
	findRangeFn func(userID string, from, to time.Time) ([]models.Transaction, error)
}

func (m *mockTransactionService) Create(userID, description, category string, txType models.TransactionType, amount decimal.Decimal, date time.Time) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(userID, description, category, txType, amount, date)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) List(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.listFn != nil {
		return m.listFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetByID(userID, transactionID string) (*models.Transaction, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) Update(userID, transactionID string, update services.TransactionUpdate) (*models.Transaction, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, transactionID, update)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) Delete(userID, transactionID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, transactionID)
	}
	return nil
}

func (m *mockTransactionService) FindRange(userID string, from, to time.Time) ([]models.Transaction, error) {
	if m.findRangeFn != nil {
		return m.findRangeFn(userID, from, to)
	}
	return []models.Transaction{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

const testTransactionID = "0190a6c7-bbbb-7c4d-9e5f-6a7b8c9d0e1f"

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.ListTransactions)
	auth.GET("/transactions/:id", handler.GetTransaction)
	auth.PUT("/transactions/:id", handler.UpdateTransaction)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

// --- tests ---

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			createFn: func(userID, description, category string, txType models.TransactionType, amount decimal.Decimal, _ time.Time) (*models.Transaction, error) {
				return &models.Transaction{
					Base:        models.Base{ID: testTransactionID},
					UserID:      userID,
					Description: description,
					Category:    category,
					Type:        txType,
					Amount:      amount,
				}, nil
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"description":"Aluguel","category":"Moradia","type":"expense","amount":"1200.00","date":"2024-03-05"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		transaction := result["transaction"].(map[string]interface{})
		if transaction["category"] != "Moradia" {
			t.Errorf("expected category Moradia, got %v", transaction["category"])
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"category":"Moradia","type":"transfer","amount":"1200.00"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing category", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","amount":"1200.00"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("forwards filters", func(t *testing.T) {
		svc := &mockTransactionService{
			listFn: func(_ string, _ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				if filter.Type == nil || *filter.Type != models.TransactionTypeExpense {
					t.Error("expected expense type filter")
				}
				if filter.Category == nil || *filter.Category != "Mercado" {
					t.Error("expected Mercado category filter")
				}
				resp := pagination.NewPageResponse(make([]models.Transaction, 1), 1, 20, 1)
				return &resp, nil
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?type=expense&category=Mercado", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on invalid type filter", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?type=transfer", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockTransactionService{
			getByIDFn: func(_, _ string) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions/"+testTransactionID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, rec, "TRANSACTION_NOT_FOUND")
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions/42", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
	r := setupTransactionRouter(handler)

	rec := doRequest(r, "DELETE", "/transactions/"+testTransactionID, "")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
