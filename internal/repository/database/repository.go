package database

import (
	"context"
	"errors"

	"github.com/shopbridge/payment-payload-service/internal/entities"
)

var (
	ErrNotFound      = errors.New("no matching record in database")
	ErrAlreadyExists = errors.New("a record with this key already exists")
)

type Repository interface {
	Migrate() error
	PaymentMethodCRUD
	PaymentAttemptCRUD
}

type PaymentMethodCRUD interface {
	CreatePaymentMethod(ctx context.Context, m *entities.PaymentMethod) error
	UpdatePaymentMethod(ctx context.Context, m *entities.PaymentMethod) error
	GetPaymentMethodByID(ctx context.Context, id uint) (*entities.PaymentMethod, error)
	GetPaymentMethodByCode(ctx context.Context, code string) (*entities.PaymentMethod, error)
	FindPaymentMethods(ctx context.Context, query entities.PaymentMethodQuery) ([]entities.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id uint) error
	// DeactivatePaymentMethods clears the active flag of every entry of a credential set
	// and returns how many entries were touched.
	DeactivatePaymentMethods(ctx context.Context, credentialKey string) (int64, error)
}

type PaymentAttemptCRUD interface {
	CreatePaymentAttempt(ctx context.Context, a *entities.PaymentAttempt) error
	UpdatePaymentAttempt(ctx context.Context, a *entities.PaymentAttempt) error
	GetPaymentAttemptByReference(ctx context.Context, reference string) (*entities.PaymentAttempt, error)
	GetPaymentAttemptsByOrderReference(ctx context.Context, orderReference string) ([]entities.PaymentAttempt, error)
	GetPaymentAttemptLogs(ctx context.Context, reference string) ([]entities.PaymentAttemptLog, error)
}
