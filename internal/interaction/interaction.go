package interaction

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/shopbridge/payment-payload-service/internal/conversion"
	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/lineitem"
	"github.com/shopbridge/payment-payload-service/internal/methodcatalog"
	"github.com/shopbridge/payment-payload-service/internal/repository/database"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams/providerapi"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams/storefront"
)

var _ Interactor = (*serviceInteractor)(nil)

type Interactor interface {
	// BuildPayload converts a sales document and checks it against its recorded total.
	BuildPayload(ctx context.Context, kind entities.SourceKind, document entities.Document) (*Payload, error)
	// BuildPayloadFor loads the document from the storefront before converting it.
	BuildPayloadFor(ctx context.Context, kind entities.SourceKind, id string) (*Payload, error)

	SubmitPayment(ctx context.Context, orderID string, methodCode string) (*entities.PaymentAttempt, error)
	GetPaymentAttempts(ctx context.Context, orderID string) ([]entities.PaymentAttempt, error)
	GetPaymentAttemptHistory(ctx context.Context, reference string) ([]entities.PaymentAttemptLog, error)

	SyncPaymentMethods(ctx context.Context) ([]SyncOutcome, error)
	ListPaymentMethods(ctx context.Context, query entities.PaymentMethodQuery) ([]entities.PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, code string) (*entities.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id uint) error
}

// Payload is the converted form of a sales document.
type Payload struct {
	Kind               entities.SourceKind
	Currency           string
	Items              []lineitem.LineItem
	RecordedTotal      decimal.Decimal
	ReconstructedTotal decimal.Decimal
}

// SyncOutcome reports the sync of one configured account.
type SyncOutcome struct {
	CredentialKey string
	Result        methodcatalog.SyncResult
	Err           error
}

type serviceInteractor struct {
	store      database.Repository
	storefront storefront.Storefront
	provider   providerapi.ProviderAPI
	converter  *conversion.Converter
	sync       *methodcatalog.Synchronizer
	locker     methodcatalog.Locker
	accounts   []providerapi.Credentials
}

// Options carries everything the interactor needs that is not a collaborator.
type Options struct {
	Accounts []providerapi.Credentials
}

func NewServiceInteractor(r database.Repository,
	sfClient storefront.Storefront,
	providerClient providerapi.ProviderAPI,
	converter *conversion.Converter,
	locker methodcatalog.Locker,
	options Options,
) (Interactor, error) {
	if r == nil {
		return nil, errors.New("repository must not be nil")
	}

	if sfClient == nil {
		return nil, errors.New("no storefront client provided")
	}

	if providerClient == nil {
		return nil, errors.New("no payment provider client provided")
	}

	if converter == nil {
		return nil, errors.New("no converter provided")
	}

	if locker == nil {
		return nil, errors.New("no sync locker provided")
	}

	return &serviceInteractor{
		store:      r,
		storefront: sfClient,
		provider:   providerClient,
		converter:  converter,
		sync:       methodcatalog.NewSynchronizer(r, providerClient),
		locker:     locker,
		accounts:   options.Accounts,
	}, nil
}
