package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "grana/internal/errors"
	"grana/internal/middleware"
	"grana/internal/models"
)

func setupIntakeRouter(handler *IntakeHandler, serviceKey string) *gin.Engine {
	r := gin.New()
	intake := r.Group("/intake", middleware.IntakeAuthMiddleware(serviceKey))
	intake.POST("/transactions", handler.SubmitBatch)
	return r
}

func TestIntakeHandler_SubmitBatch(t *testing.T) {
	const serviceKey = "extractor-key"

	t.Run("stores valid records and reports rejections", func(t *testing.T) {
		created := 0
		userSvc := &mockUserService{
			getUserByEmailFn: func(email string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: testUserID}, Email: email}, nil
			},
		}
		txSvc := &mockTransactionService{
			createFn: func(_, _, _ string, _ models.TransactionType, _ decimal.Decimal, _ time.Time) (*models.Transaction, error) {
				created++
				return &models.Transaction{}, nil
			},
		}
		handler := NewIntakeHandler(userSvc, txSvc, &mockAuditService{})
		r := setupIntakeRouter(handler, serviceKey)

		rec := doRequestWithKey(r, serviceKey,
			`{"user_email":"ana@example.com","source":"statement-parser","records":[
				{"description":"Mercado","category":"Mercado","type":"expense","amount":"350.00","date":"2024-03-10"},
				{"description":"Bad date","category":"Mercado","type":"expense","amount":"10.00","date":"10/03/2024"}
			]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if created != 1 {
			t.Errorf("expected 1 stored record, got %d", created)
		}
		result := parseJSON(t, rec)
		if result["accepted"] != float64(1) {
			t.Errorf("expected 1 accepted, got %v", result["accepted"])
		}
		rejected := result["rejected"].([]interface{})
		if len(rejected) != 1 {
			t.Fatalf("expected 1 rejection, got %d", len(rejected))
		}
	})

	t.Run("returns 401 on wrong service key", func(t *testing.T) {
		handler := NewIntakeHandler(&mockUserService{}, &mockTransactionService{}, &mockAuditService{})
		r := setupIntakeRouter(handler, serviceKey)

		rec := doRequestWithKey(r, "wrong-key",
			`{"user_email":"ana@example.com","source":"statement-parser","records":[]}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown user", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByEmailFn: func(_ string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewIntakeHandler(userSvc, &mockTransactionService{}, &mockAuditService{})
		r := setupIntakeRouter(handler, serviceKey)

		rec := doRequestWithKey(r, serviceKey,
			`{"user_email":"ghost@example.com","source":"statement-parser","records":[
				{"category":"Mercado","type":"expense","amount":"10.00","date":"2024-03-10"}
			]}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func doRequestWithKey(r *gin.Engine, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/intake/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", key)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
