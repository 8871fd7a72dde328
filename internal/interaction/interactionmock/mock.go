// Package interactionmock provides a configurable interaction.Interactor for handler tests.
package interactionmock

import (
	"context"
	"errors"

	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/interaction"
)

var ErrNotConfigured = errors.New("mock function not configured")

var _ interaction.Interactor = (*Mock)(nil)

// Mock delegates every call to the matching func field. Calls to unset fields fail
// with ErrNotConfigured.
type Mock struct {
	BuildPayloadFunc             func(ctx context.Context, kind entities.SourceKind, document entities.Document) (*interaction.Payload, error)
	BuildPayloadForFunc          func(ctx context.Context, kind entities.SourceKind, id string) (*interaction.Payload, error)
	SubmitPaymentFunc            func(ctx context.Context, orderID string, methodCode string) (*entities.PaymentAttempt, error)
	GetPaymentAttemptsFunc       func(ctx context.Context, orderID string) ([]entities.PaymentAttempt, error)
	GetPaymentAttemptHistoryFunc func(ctx context.Context, reference string) ([]entities.PaymentAttemptLog, error)
	SyncPaymentMethodsFunc       func(ctx context.Context) ([]interaction.SyncOutcome, error)
	ListPaymentMethodsFunc       func(ctx context.Context, query entities.PaymentMethodQuery) ([]entities.PaymentMethod, error)
	GetPaymentMethodFunc         func(ctx context.Context, code string) (*entities.PaymentMethod, error)
	DeletePaymentMethodFunc      func(ctx context.Context, id uint) error
}

func (m *Mock) BuildPayload(ctx context.Context, kind entities.SourceKind, document entities.Document) (*interaction.Payload, error) {
	if m.BuildPayloadFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.BuildPayloadFunc(ctx, kind, document)
}

func (m *Mock) BuildPayloadFor(ctx context.Context, kind entities.SourceKind, id string) (*interaction.Payload, error) {
	if m.BuildPayloadForFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.BuildPayloadForFunc(ctx, kind, id)
}

func (m *Mock) SubmitPayment(ctx context.Context, orderID string, methodCode string) (*entities.PaymentAttempt, error) {
	if m.SubmitPaymentFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.SubmitPaymentFunc(ctx, orderID, methodCode)
}

func (m *Mock) GetPaymentAttempts(ctx context.Context, orderID string) ([]entities.PaymentAttempt, error) {
	if m.GetPaymentAttemptsFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.GetPaymentAttemptsFunc(ctx, orderID)
}

func (m *Mock) GetPaymentAttemptHistory(ctx context.Context, reference string) ([]entities.PaymentAttemptLog, error) {
	if m.GetPaymentAttemptHistoryFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.GetPaymentAttemptHistoryFunc(ctx, reference)
}

func (m *Mock) SyncPaymentMethods(ctx context.Context) ([]interaction.SyncOutcome, error) {
	if m.SyncPaymentMethodsFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.SyncPaymentMethodsFunc(ctx)
}

func (m *Mock) ListPaymentMethods(ctx context.Context, query entities.PaymentMethodQuery) ([]entities.PaymentMethod, error) {
	if m.ListPaymentMethodsFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.ListPaymentMethodsFunc(ctx, query)
}

func (m *Mock) GetPaymentMethod(ctx context.Context, code string) (*entities.PaymentMethod, error) {
	if m.GetPaymentMethodFunc == nil {
		return nil, ErrNotConfigured
	}
	return m.GetPaymentMethodFunc(ctx, code)
}

func (m *Mock) DeletePaymentMethod(ctx context.Context, id uint) error {
	if m.DeletePaymentMethodFunc == nil {
		return ErrNotConfigured
	}
	return m.DeletePaymentMethodFunc(ctx, id)
}
