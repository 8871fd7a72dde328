package v1payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-http-utils/headers"

	"github.com/shopbridge/payment-payload-service/internal/interaction"
	"github.com/shopbridge/payment-payload-service/internal/logging"
	"github.com/shopbridge/payment-payload-service/internal/restapi/common"
	"github.com/shopbridge/payment-payload-service/internal/restapi/middleware"
	"github.com/shopbridge/payment-payload-service/internal/restapi/types"
)

type handler struct {
	interactor interaction.Interactor
}

func Create(router chi.Router, i interaction.Interactor) {
	h := &handler{
		interactor: i,
	}

	router.With(middleware.Elevated).Post("/payments", common.CreateHandler(h.submitPayment, h.submitPaymentRequest, h.submitPaymentResponse))
	router.With(middleware.Elevated).Get("/payments/{order_id}", common.CreateHandler(h.getPaymentAttempts, h.getPaymentAttemptsRequest, h.getPaymentAttemptsResponse))
	router.With(middleware.Elevated).Get("/payments/attempts/{reference}/log", common.CreateHandler(h.getAttemptHistory, h.getAttemptHistoryRequest, h.getAttemptHistoryResponse))
}

func (h *handler) submitPayment(ctx context.Context, req *SubmitPaymentRequest, logger logging.Logger) (*SubmitPaymentResponse, error) {
	attempt, err := h.interactor.SubmitPayment(ctx, req.OrderID, req.PaymentMethodCode)
	if err != nil {
		return nil, err
	}

	return &SubmitPaymentResponse{Attempt: V1PaymentAttemptFrom(*attempt)}, nil
}

func (h *handler) submitPaymentRequest(r *http.Request) (*SubmitPaymentRequest, error) {
	var request SubmitPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	return &request, nil
}

func (h *handler) submitPaymentResponse(ctx context.Context, res *SubmitPaymentResponse, w http.ResponseWriter) error {
	w.Header().Set(headers.Location, fmt.Sprintf("/api/rest/v1/payments/attempts/%s/log", res.Attempt.Reference))
	return types.NewResult(*res, http.StatusCreated).EncodeToJson(w)
}

func (h *handler) getPaymentAttempts(ctx context.Context, req *GetPaymentAttemptsRequest, logger logging.Logger) (*GetPaymentAttemptsResponse, error) {
	attempts, err := h.interactor.GetPaymentAttempts(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	result := &GetPaymentAttemptsResponse{
		Attempts: make([]PaymentAttempt, 0, len(attempts)),
	}
	for _, a := range attempts {
		result.Attempts = append(result.Attempts, V1PaymentAttemptFrom(a))
	}

	return result, nil
}

func (h *handler) getPaymentAttemptsRequest(r *http.Request) (*GetPaymentAttemptsRequest, error) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		return nil, errors.New("no order id supplied")
	}

	return &GetPaymentAttemptsRequest{OrderID: orderID}, nil
}

func (h *handler) getPaymentAttemptsResponse(ctx context.Context, res *GetPaymentAttemptsResponse, w http.ResponseWriter) error {
	return types.NewResult(*res, http.StatusOK).EncodeToJson(w)
}

func (h *handler) getAttemptHistory(ctx context.Context, req *GetAttemptHistoryRequest, logger logging.Logger) (*GetAttemptHistoryResponse, error) {
	logs, err := h.interactor.GetPaymentAttemptHistory(ctx, req.Reference)
	if err != nil {
		return nil, err
	}

	return &GetAttemptHistoryResponse{
		Reference: req.Reference,
		History:   V1StatusHistoryFrom(logs),
	}, nil
}

func (h *handler) getAttemptHistoryRequest(r *http.Request) (*GetAttemptHistoryRequest, error) {
	return &GetAttemptHistoryRequest{Reference: chi.URLParam(r, "reference")}, nil
}

func (h *handler) getAttemptHistoryResponse(ctx context.Context, res *GetAttemptHistoryResponse, w http.ResponseWriter) error {
	return types.NewResult(*res, http.StatusOK).EncodeToJson(w)
}
