package interaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopbridge/payment-payload-service/internal/apierrors"
	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/logging"
	"github.com/shopbridge/payment-payload-service/internal/repository/database"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams/providerapi"
)

// SubmitPayment converts an order and hands the payload to the provider using the
// account the method was synced for. Every attempt that gets as far as a valid payload is
// recorded, failed ones included.
func (s *serviceInteractor) SubmitPayment(ctx context.Context, orderID string, methodCode string) (*entities.PaymentAttempt, error) {
	logger := logging.LoggerFromContext(ctx)

	if err := s.requireElevated(ctx); err != nil {
		return nil, err
	}

	if orderID == "" || methodCode == "" {
		return nil, apierrors.NewBadRequest("order id and payment method code are required")
	}

	method, err := s.store.GetPaymentMethodByCode(ctx, methodCode)
	if err != nil {
		return nil, toAPIError(err)
	}

	if !method.Active {
		return nil, apierrors.NewConflict(fmt.Sprintf("payment method %s is not active", method.Code))
	}

	creds, ok := s.accountFor(method.CredentialKey)
	if !ok {
		return nil, apierrors.NewConflict(fmt.Sprintf("payment method %s belongs to an account that is no longer configured", method.Code))
	}

	order, err := s.storefront.GetOrder(ctx, orderID)
	if err != nil {
		return nil, toAPIError(err)
	}

	if !method.Covers(order.GrandTotal) {
		return nil, apierrors.NewUnprocessableEntity(fmt.Sprintf("order total %s is outside the limits of payment method %s", order.GrandTotal.StringFixed(2), method.Code))
	}

	if method.SpecificCountry != "" && order.CountryID != "" && method.SpecificCountry != order.CountryID {
		return nil, apierrors.NewUnprocessableEntity(fmt.Sprintf("payment method %s is not offered in %s", method.Code, order.CountryID))
	}

	items, err := s.converter.Convert(order)
	if err != nil {
		logger.Warn("could not convert order %s: %v", orderID, err)
		return nil, toAPIError(err)
	}

	attempt := &entities.PaymentAttempt{
		Reference:      uuid.NewString(),
		OrderReference: orderID,
		MethodCode:     method.Code,
		Status:         entities.PaymentAttemptStatusPending,
		ISOCurrency:    order.Currency,
		RecordedTotal:  order.GrandTotal,
		LineCount:      len(items),
	}

	total, reconcileErr := s.converter.Reconcile(order.GrandTotal, items)
	attempt.ReconstructedTotal = total

	request := providerapi.CreatePaymentRequestDto{
		StoreID:         creds.StoreID,
		PaymentMethodID: method.Identifier,
		Order: providerapi.OrderDto{
			OrderReference:          orderID,
			Currency:                order.Currency,
			OrderLines:              items,
			TotalAmountIncludingVat: json.Number(total.StringFixed(2)),
		},
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment payload: %w", err)
	}
	attempt.Payload = string(payload)

	if reconcileErr != nil {
		attempt.Status = entities.PaymentAttemptStatusFailed
		attempt.Comment = reconcileErr.Error()
	}

	if err := s.store.CreatePaymentAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	if reconcileErr != nil {
		logger.Warn("payment attempt %s for order %s aborted: %v", attempt.Reference, orderID, reconcileErr)
		return nil, toAPIError(reconcileErr)
	}

	response, err := s.provider.CreatePayment(ctx, creds, request)
	if err != nil {
		attempt.Status = entities.PaymentAttemptStatusFailed
		if errors.Is(err, downstreams.ErrDownStreamRejected) {
			attempt.Status = entities.PaymentAttemptStatusRejected
		}
		attempt.Comment = err.Error()

		if updateErr := s.store.UpdatePaymentAttempt(ctx, attempt); updateErr != nil {
			logger.Error("could not record failure of payment attempt %s. [error]: %v", attempt.Reference, updateErr)
		}

		logger.Error("provider did not accept payment attempt %s for order %s. [error]: %v", attempt.Reference, orderID, err)
		return nil, toAPIError(err)
	}

	attempt.Status = entities.PaymentAttemptStatusSubmitted
	attempt.ProviderPaymentID = response.ID
	attempt.Comment = response.Status
	if err := s.store.UpdatePaymentAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	logger.Info("submitted payment attempt %s for order %s, provider payment id %s", attempt.Reference, orderID, response.ID)
	return attempt, nil
}

func (s *serviceInteractor) GetPaymentAttempts(ctx context.Context, orderID string) ([]entities.PaymentAttempt, error) {
	if err := s.requireElevated(ctx); err != nil {
		return nil, err
	}

	return s.store.GetPaymentAttemptsByOrderReference(ctx, orderID)
}

func (s *serviceInteractor) GetPaymentAttemptHistory(ctx context.Context, reference string) ([]entities.PaymentAttemptLog, error) {
	if err := s.requireElevated(ctx); err != nil {
		return nil, err
	}

	if _, err := s.store.GetPaymentAttemptByReference(ctx, reference); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apierrors.NewNotFound(fmt.Sprintf("no payment attempt with reference %s", reference))
		}
		return nil, toAPIError(err)
	}

	logs, err := s.store.GetPaymentAttemptLogs(ctx, reference)
	if err != nil {
		return nil, toAPIError(err)
	}

	return logs, nil
}
