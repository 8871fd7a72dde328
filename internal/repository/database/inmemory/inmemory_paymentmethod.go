package inmemory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/repository/database"
)

func (m *inmemoryProvider) CreatePaymentMethod(ctx context.Context, pm *entities.PaymentMethod) error {
	if pm.ID != 0 {
		return errors.New("create needs a new payment method")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.paymentMethods {
		if existing.Code == pm.Code {
			return database.ErrAlreadyExists
		}
	}

	pm.ID = m.nextID()
	now := time.Now()
	pm.CreatedAt = now
	pm.UpdatedAt = now

	m.paymentMethods[pm.ID] = *pm
	return nil
}

func (m *inmemoryProvider) UpdatePaymentMethod(ctx context.Context, pm *entities.PaymentMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.paymentMethods[pm.ID]
	if !ok {
		return database.ErrNotFound
	}

	pm.CreatedAt = current.CreatedAt
	pm.UpdatedAt = time.Now()
	m.paymentMethods[pm.ID] = *pm
	return nil
}

func (m *inmemoryProvider) GetPaymentMethodByID(ctx context.Context, id uint) (*entities.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pm, ok := m.paymentMethods[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &pm, nil
}

func (m *inmemoryProvider) GetPaymentMethodByCode(ctx context.Context, code string) (*entities.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, pm := range m.paymentMethods {
		if pm.Code == code {
			copy := pm
			return &copy, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *inmemoryProvider) FindPaymentMethods(ctx context.Context, query entities.PaymentMethodQuery) ([]entities.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]entities.PaymentMethod, 0)
	for _, pm := range m.paymentMethods {
		if query.CredentialKey != "" && pm.CredentialKey != query.CredentialKey {
			continue
		}
		if query.ActiveOnly && !pm.Active {
			continue
		}
		if query.OrderTotal.IsPositive() && !pm.Covers(query.OrderTotal) {
			continue
		}
		if query.Country != "" && pm.SpecificCountry != "" && pm.SpecificCountry != query.Country {
			continue
		}
		result = append(result, pm)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Code < result[j].Code
	})

	return result, nil
}

func (m *inmemoryProvider) DeletePaymentMethod(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.paymentMethods[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.paymentMethods, id)
	return nil
}

func (m *inmemoryProvider) DeactivatePaymentMethods(ctx context.Context, credentialKey string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for id, pm := range m.paymentMethods {
		if pm.CredentialKey != credentialKey || !pm.Active {
			continue
		}
		pm.Active = false
		pm.UpdatedAt = time.Now()
		m.paymentMethods[id] = pm
		count++
	}
	return count, nil
}
