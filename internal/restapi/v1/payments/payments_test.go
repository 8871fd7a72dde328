package v1payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopbridge/payment-payload-service/internal/apierrors"
	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/interaction"
	"github.com/shopbridge/payment-payload-service/internal/interaction/interactionmock"
	"github.com/shopbridge/payment-payload-service/internal/restapi/common"
	"github.com/shopbridge/payment-payload-service/internal/restapi/middleware"
)

func setupServer(t *testing.T, i interaction.Interactor) string {
	return setupServerAs(t, i, &common.Principal{APIToken: true})
}

// setupServerAs stands in for the authentication middleware with a fixed caller.
func setupServerAs(t *testing.T, i interaction.Interactor, principal *common.Principal) string {
	router := chi.NewRouter()
	router.Use(middleware.RequestIdMiddleware())
	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(common.WithPrincipal(r.Context(), principal)))
		})
	})
	router.Route("/api/rest/v1", func(r chi.Router) {
		Create(r, i)
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return fmt.Sprintf("%s/api/rest/v1", srv.URL)
}

var created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func exampleAttempt() *entities.PaymentAttempt {
	return &entities.PaymentAttempt{
		Model:              gorm.Model{ID: 1, CreatedAt: created},
		Reference:          "c0ffee00-0000-4000-8000-000000000001",
		OrderReference:     "000000042",
		MethodCode:         "resursbank_invoice_shop_test",
		Status:             entities.PaymentAttemptStatusSubmitted,
		ISOCurrency:        "SEK",
		RecordedTotal:      decimal.NewFromInt(105),
		ReconstructedTotal: decimal.NewFromInt(105),
		LineCount:          3,
		Payload:            `{"storeId":"store-1","paymentMethodId":"INVOICE"}`,
		ProviderPaymentID:  "pay-4711",
		Comment:            "ACCEPTED",
	}
}

func TestHandleSubmitPayment(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		interactorErr   error
		expectedStatus  int
		expectedMessage common.APIErrorMessage
		expectCall      bool
	}{
		{
			name:           "Should submit the payment",
			body:           `{"order_id":"000000042","payment_method_code":"resursbank_invoice_shop_test"}`,
			expectedStatus: http.StatusCreated,
			expectCall:     true,
		},
		{
			name:            "Should reject a malformed body",
			body:            `{"order_id":`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: common.RequestParseErrorMessage,
		},
		{
			name:            "Should report inactive methods as conflict",
			body:            `{"order_id":"000000042","payment_method_code":"resursbank_card_shop_test"}`,
			interactorErr:   apierrors.NewConflict("payment method resursbank_card_shop_test is not active"),
			expectedStatus:  http.StatusConflict,
			expectedMessage: common.RequestConflictMessage,
			expectCall:      true,
		},
		{
			name:            "Should report total mismatches as unprocessable",
			body:            `{"order_id":"000000043","payment_method_code":"resursbank_invoice_shop_test"}`,
			interactorErr:   apierrors.NewUnprocessableEntity("total mismatch"),
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedMessage: common.PayloadInvalidMessage,
			expectCall:      true,
		},
		{
			name:            "Should report provider outages as bad gateway",
			body:            `{"order_id":"000000042","payment_method_code":"resursbank_invoice_shop_test"}`,
			interactorErr:   apierrors.NewBadGateway("provider unavailable"),
			expectedStatus:  http.StatusBadGateway,
			expectedMessage: common.DownstreamFailedMessage,
			expectCall:      true,
		},
		{
			name:            "Should deny users without the admin role",
			body:            `{"order_id":"000000042","payment_method_code":"resursbank_invoice_shop_test"}`,
			interactorErr:   apierrors.NewForbidden("admin only"),
			expectedStatus:  http.StatusForbidden,
			expectedMessage: common.AuthForbiddenMessage,
			expectCall:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var gotOrderID, gotCode string
			mock := &interactionmock.Mock{
				SubmitPaymentFunc: func(ctx context.Context, orderID string, methodCode string) (*entities.PaymentAttempt, error) {
					called = true
					gotOrderID, gotCode = orderID, methodCode
					if tt.interactorErr != nil {
						return nil, tt.interactorErr
					}
					return exampleAttempt(), nil
				},
			}

			url := setupServer(t, mock)
			resp, err := http.Post(url+"/payments", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.expectedStatus, resp.StatusCode)
			require.Equal(t, tt.expectCall, called)

			if tt.expectedStatus != http.StatusCreated {
				var apiErr common.APIError
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
				require.Equal(t, tt.expectedMessage, apiErr.Message)
				return
			}

			require.Equal(t, "000000042", gotOrderID)
			require.Equal(t, "resursbank_invoice_shop_test", gotCode)
			require.Equal(t, "/api/rest/v1/payments/attempts/c0ffee00-0000-4000-8000-000000000001/log", resp.Header.Get("Location"))

			var body SubmitPaymentResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, entities.PaymentAttemptStatusSubmitted, body.Attempt.Status)
			require.Equal(t, "pay-4711", body.Attempt.ProviderPaymentID)
			require.Equal(t, json.Number("105.00"), body.Attempt.RecordedTotal)
			require.Equal(t, 3, body.Attempt.LineCount)
			require.JSONEq(t, `{"storeId":"store-1","paymentMethodId":"INVOICE"}`, string(body.Attempt.Payload))
			require.True(t, created.Equal(body.Attempt.CreationDate))
		})
	}
}

func TestHandleGetPaymentAttempts(t *testing.T) {
	failed := exampleAttempt()
	failed.ID = 2
	failed.Status = entities.PaymentAttemptStatusFailed
	failed.ProviderPaymentID = ""
	failed.Payload = ""

	mock := &interactionmock.Mock{
		GetPaymentAttemptsFunc: func(ctx context.Context, orderID string) ([]entities.PaymentAttempt, error) {
			if orderID == "000000042" {
				return []entities.PaymentAttempt{*exampleAttempt(), *failed}, nil
			}
			return []entities.PaymentAttempt{}, nil
		},
	}
	url := setupServer(t, mock)

	resp, err := http.Get(url + "/payments/000000042")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body GetPaymentAttemptsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Attempts, 2)
	require.Equal(t, entities.PaymentAttemptStatusFailed, body.Attempts[1].Status)
	require.Empty(t, body.Attempts[1].Payload)

	resp2, err := http.Get(url + "/payments/000000099")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var empty map[string]interface{}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&empty))
	require.Equal(t, []interface{}{}, empty["attempts"])
}

func TestHandleGetAttemptHistory(t *testing.T) {
	mock := &interactionmock.Mock{
		GetPaymentAttemptHistoryFunc: func(ctx context.Context, reference string) ([]entities.PaymentAttemptLog, error) {
			if reference != "c0ffee00" {
				return nil, apierrors.NewNotFound("no payment attempt with reference " + reference)
			}
			return []entities.PaymentAttemptLog{
				{Model: gorm.Model{CreatedAt: created}, Reference: reference, Status: entities.PaymentAttemptStatusPending},
				{Model: gorm.Model{CreatedAt: created.Add(time.Second)}, Reference: reference, Status: entities.PaymentAttemptStatusSubmitted, ProviderPaymentID: "pay-4711"},
			}, nil
		},
	}
	url := setupServer(t, mock)

	resp, err := http.Get(url + "/payments/attempts/c0ffee00/log")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body GetAttemptHistoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "c0ffee00", body.Reference)
	require.Len(t, body.History, 2)
	require.Equal(t, entities.PaymentAttemptStatusPending, body.History[0].Status)
	require.Equal(t, "pay-4711", body.History[1].ProviderPaymentID)

	resp2, err := http.Get(url + "/payments/attempts/unknown/log")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestPaymentRoutesNeedElevatedCaller(t *testing.T) {
	called := false
	mock := &interactionmock.Mock{
		SubmitPaymentFunc: func(ctx context.Context, orderID string, methodCode string) (*entities.PaymentAttempt, error) {
			called = true
			return exampleAttempt(), nil
		},
	}

	url := setupServerAs(t, mock, &common.Principal{Subject: "1234", Roles: []string{"staff"}})

	resp, err := http.Post(url+"/payments", "application/json", strings.NewReader(`{"order_id":"000000042","payment_method_code":"resursbank_invoice_shop_test"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.False(t, called, "the guard answers before the handler")

	var apiErr common.APIError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
	require.Equal(t, common.AuthForbiddenMessage, apiErr.Message)

	resp, err = http.Get(setupServerAs(t, mock, &common.Principal{}) + "/payments/000000042")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
