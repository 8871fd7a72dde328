package interaction

import (
	"context"
	"fmt"

	"github.com/shopbridge/payment-payload-service/internal/apierrors"
	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/logging"
)

// SyncPaymentMethods syncs the catalog of every configured account. A failing account does
// not stop the others; its error is reported in its outcome.
func (s *serviceInteractor) SyncPaymentMethods(ctx context.Context) ([]SyncOutcome, error) {
	if err := s.requireElevated(ctx); err != nil {
		return nil, err
	}

	outcomes := make([]SyncOutcome, 0, len(s.accounts))
	for _, creds := range s.accounts {
		outcome := SyncOutcome{CredentialKey: creds.Key()}
		outcome.Result, outcome.Err = s.sync.SyncLocked(ctx, s.locker, creds)
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

func (s *serviceInteractor) ListPaymentMethods(ctx context.Context, query entities.PaymentMethodQuery) ([]entities.PaymentMethod, error) {
	if err := s.requireAuthenticated(ctx); err != nil {
		return nil, err
	}

	if query.OrderTotal.IsNegative() {
		return nil, apierrors.NewBadRequest("order total must not be negative")
	}

	return s.store.FindPaymentMethods(ctx, query)
}

func (s *serviceInteractor) GetPaymentMethod(ctx context.Context, code string) (*entities.PaymentMethod, error) {
	if err := s.requireAuthenticated(ctx); err != nil {
		return nil, err
	}

	method, err := s.store.GetPaymentMethodByCode(ctx, code)
	if err != nil {
		return nil, toAPIError(err)
	}
	return method, nil
}

// DeletePaymentMethod removes a catalog entry for good. A later sync recreates it if the
// provider still offers the method.
func (s *serviceInteractor) DeletePaymentMethod(ctx context.Context, id uint) error {
	if err := s.requireElevated(ctx); err != nil {
		return err
	}

	if err := s.store.DeletePaymentMethod(ctx, id); err != nil {
		return toAPIError(err)
	}

	logging.LoggerFromContext(ctx).Info("deleted payment method %d", id)
	return nil
}

func (o SyncOutcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s: failed: %v", o.CredentialKey, o.Err)
	}
	return fmt.Sprintf("%s: %d created, %d updated, %d previously active", o.CredentialKey, o.Result.Created, o.Result.Updated, o.Result.Deactivated)
}
