package v1paymentmethods

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/interaction"
	"github.com/shopbridge/payment-payload-service/internal/logging"
	"github.com/shopbridge/payment-payload-service/internal/restapi/common"
	"github.com/shopbridge/payment-payload-service/internal/restapi/middleware"
	"github.com/shopbridge/payment-payload-service/internal/restapi/types"
)

var countryPattern = regexp.MustCompile("^[A-Z]{2}$")

type handler struct {
	interactor interaction.Interactor
}

func Create(router chi.Router, i interaction.Interactor) {
	h := &handler{
		interactor: i,
	}

	router.Get("/payment-methods", common.CreateHandler(h.listPaymentMethods, h.listPaymentMethodsRequest, h.listPaymentMethodsResponse))
	router.With(middleware.Elevated).Post("/payment-methods/sync", common.CreateHandler(h.syncPaymentMethods, h.syncPaymentMethodsRequest, h.syncPaymentMethodsResponse))
	router.Get("/payment-methods/{code}", common.CreateHandler(h.getPaymentMethod, h.getPaymentMethodRequest, h.getPaymentMethodResponse))
	router.With(middleware.Elevated).Delete("/payment-methods/{id}", common.CreateHandler(h.deletePaymentMethod, h.deletePaymentMethodRequest, h.deletePaymentMethodResponse))
}

func (h *handler) listPaymentMethods(ctx context.Context, req *ListPaymentMethodsRequest, logger logging.Logger) (*ListPaymentMethodsResponse, error) {
	query := entities.PaymentMethodQuery{
		CredentialKey: req.CredentialKey,
		ActiveOnly:    req.ActiveOnly,
		Country:       req.Country,
	}
	if req.OrderTotal != "" {
		// already validated by the request handler
		query.OrderTotal = decimal.RequireFromString(req.OrderTotal)
	}

	methods, err := h.interactor.ListPaymentMethods(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &ListPaymentMethodsResponse{
		PaymentMethods: make([]PaymentMethod, 0, len(methods)),
	}
	for _, m := range methods {
		result.PaymentMethods = append(result.PaymentMethods, V1PaymentMethodFrom(m))
	}

	return result, nil
}

func (h *handler) listPaymentMethodsRequest(r *http.Request) (*ListPaymentMethodsRequest, error) {
	q := r.URL.Query()

	request := &ListPaymentMethodsRequest{
		CredentialKey: strings.ToLower(q.Get("credential")),
		OrderTotal:    q.Get("total"),
		Country:       strings.ToUpper(q.Get("country")),
	}

	if active := q.Get("active"); active != "" {
		value, err := strconv.ParseBool(active)
		if err != nil {
			return nil, errors.New("active must be true or false")
		}
		request.ActiveOnly = value
	}

	if request.OrderTotal != "" {
		if _, err := decimal.NewFromString(request.OrderTotal); err != nil {
			return nil, errors.New("total must be a decimal number")
		}
	}

	if request.Country != "" && !countryPattern.MatchString(request.Country) {
		return nil, errors.New("country must be a two letter country code")
	}

	return request, nil
}

func (h *handler) listPaymentMethodsResponse(ctx context.Context, res *ListPaymentMethodsResponse, w http.ResponseWriter) error {
	return types.NewResult(*res, http.StatusOK).EncodeToJson(w)
}

func (h *handler) getPaymentMethod(ctx context.Context, req *GetPaymentMethodRequest, logger logging.Logger) (*GetPaymentMethodResponse, error) {
	method, err := h.interactor.GetPaymentMethod(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	return &GetPaymentMethodResponse{PaymentMethod: V1PaymentMethodFrom(*method)}, nil
}

func (h *handler) getPaymentMethodRequest(r *http.Request) (*GetPaymentMethodRequest, error) {
	return &GetPaymentMethodRequest{Code: chi.URLParam(r, "code")}, nil
}

func (h *handler) getPaymentMethodResponse(ctx context.Context, res *GetPaymentMethodResponse, w http.ResponseWriter) error {
	return types.NewResult(*res, http.StatusOK).EncodeToJson(w)
}

func (h *handler) deletePaymentMethod(ctx context.Context, req *DeletePaymentMethodRequest, logger logging.Logger) (*DeletePaymentMethodResponse, error) {
	if err := h.interactor.DeletePaymentMethod(ctx, req.ID); err != nil {
		return nil, err
	}

	return &DeletePaymentMethodResponse{}, nil
}

func (h *handler) deletePaymentMethodRequest(r *http.Request) (*DeletePaymentMethodRequest, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 0)
	if err != nil || id == 0 {
		return nil, errors.New("id must be a positive integer")
	}

	return &DeletePaymentMethodRequest{ID: uint(id)}, nil
}

func (h *handler) deletePaymentMethodResponse(ctx context.Context, res *DeletePaymentMethodResponse, w http.ResponseWriter) error {
	return types.NoContent().EncodeToJson(w)
}

func (h *handler) syncPaymentMethods(ctx context.Context, req *SyncPaymentMethodsRequest, logger logging.Logger) (*SyncPaymentMethodsResponse, error) {
	outcomes, err := h.interactor.SyncPaymentMethods(ctx)
	if err != nil {
		return nil, err
	}

	result := &SyncPaymentMethodsResponse{
		Results: make([]SyncResult, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		logger.Info("payment method sync %s", o.String())
		result.Results = append(result.Results, V1SyncResultFrom(o))
	}

	return result, nil
}

func (h *handler) syncPaymentMethodsRequest(r *http.Request) (*SyncPaymentMethodsRequest, error) {
	return &SyncPaymentMethodsRequest{}, nil
}

func (h *handler) syncPaymentMethodsResponse(ctx context.Context, res *SyncPaymentMethodsResponse, w http.ResponseWriter) error {
	return types.NewResult(*res, http.StatusOK).EncodeToJson(w)
}
