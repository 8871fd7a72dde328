// Package methodcatalog keeps the local payment method catalog in line with what the
// provider offers per credential set.
package methodcatalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/logging"
	"github.com/shopbridge/payment-payload-service/internal/repository/database"
	"github.com/shopbridge/payment-payload-service/internal/repository/downstreams/providerapi"
)

const (
	CodePrefix         = "resursbank_"
	DefaultOrderStatus = "pending_payment"
)

var ErrFetchFailed = errors.New("failed to fetch payment methods from the provider")

type SyncResult struct {
	Deactivated int64 `json:"deactivated"`
	Created     int   `json:"created"`
	Updated     int   `json:"updated"`
	Total       int   `json:"total"`
}

type Synchronizer struct {
	store    database.PaymentMethodCRUD
	provider providerapi.ProviderAPI
}

func NewSynchronizer(store database.PaymentMethodCRUD, provider providerapi.ProviderAPI) *Synchronizer {
	return &Synchronizer{
		store:    store,
		provider: provider,
	}
}

// Code derives the catalog code of a provider method. The credential suffix keeps codes
// apart when several accounts offer the same method.
func Code(identifier string, creds providerapi.Credentials) string {
	return CodePrefix + strings.ToLower(identifier) + "_" + creds.Key()
}

// Sync deactivates every entry of the credential set, then fetches and upserts the methods
// the provider currently offers. When the fetch fails the entries stay deactivated.
//
// Sync does not serialize concurrent runs for the same credentials; hold the Locker.
func (s *Synchronizer) Sync(ctx context.Context, creds providerapi.Credentials) (SyncResult, error) {
	logger := logging.LoggerFromContext(ctx)
	result := SyncResult{}

	deactivated, err := s.store.DeactivatePaymentMethods(ctx, creds.Key())
	if err != nil {
		return result, fmt.Errorf("failed to deactivate payment methods of %s: %w", creds.Key(), err)
	}
	result.Deactivated = deactivated

	methods, err := s.provider.ListPaymentMethods(ctx, creds)
	if err != nil {
		logger.Error("payment method sync for %s failed, catalog left deactivated. [error]: %v", creds.Key(), err)
		return result, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	for _, method := range methods {
		created, err := s.upsert(ctx, creds, method)
		if err != nil {
			return result, fmt.Errorf("failed to store payment method %s: %w", method.ID, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	result.Total = len(methods)

	logger.Info("synced payment methods for %s: %d created, %d updated, %d previously active", creds.Key(), result.Created, result.Updated, result.Deactivated)
	return result, nil
}

func (s *Synchronizer) upsert(ctx context.Context, creds providerapi.Credentials, method providerapi.PaymentMethodDto) (bool, error) {
	code := Code(method.ID, creds)

	entry, err := s.store.GetPaymentMethodByCode(ctx, code)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return false, err
	}

	created := entry == nil
	if created {
		entry = &entities.PaymentMethod{
			Code:        code,
			OrderStatus: DefaultOrderStatus,
		}
	}

	entry.Identifier = method.ID
	entry.CredentialKey = creds.Key()
	entry.Active = true
	entry.Title = method.Description
	entry.SortOrder = method.SortOrder
	entry.MinOrderTotal = method.MinPurchaseLimit
	entry.MaxOrderTotal = method.MaxPurchaseLimit
	entry.Type = method.Type
	entry.CustomerTypes = strings.Join(method.CustomerType, ",")
	entry.Raw = string(method.Raw)
	entry.SpecificCountry = creds.Country

	if created {
		return true, s.store.CreatePaymentMethod(ctx, entry)
	}
	return false, s.store.UpdatePaymentMethod(ctx, entry)
}
