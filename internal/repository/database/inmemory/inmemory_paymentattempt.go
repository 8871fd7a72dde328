package inmemory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/repository/database"
)

func (m *inmemoryProvider) CreatePaymentAttempt(ctx context.Context, a *entities.PaymentAttempt) error {
	if a.ID != 0 {
		return errors.New("create needs a new payment attempt")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.attempts {
		if existing.Reference == a.Reference {
			return database.ErrAlreadyExists
		}
	}

	a.ID = m.nextID()
	// set a creation date if none was provided beforehand
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.UpdatedAt = a.CreatedAt

	m.attempts[a.ID] = *a
	m.appendLog(a)
	return nil
}

func (m *inmemoryProvider) UpdatePaymentAttempt(ctx context.Context, a *entities.PaymentAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.ID == 0 {
		for _, existing := range m.attempts {
			if existing.Reference == a.Reference {
				a.ID = existing.ID
				break
			}
		}
	}

	current, ok := m.attempts[a.ID]
	if !ok {
		return database.ErrNotFound
	}

	a.CreatedAt = current.CreatedAt
	a.UpdatedAt = time.Now()
	m.attempts[a.ID] = *a
	m.appendLog(a)
	return nil
}

func (m *inmemoryProvider) appendLog(a *entities.PaymentAttempt) {
	log := a.ToLog()
	log.ID = m.nextID()
	log.CreatedAt = time.Now()
	m.attemptLogs = append(m.attemptLogs, log)
}

func (m *inmemoryProvider) GetPaymentAttemptByReference(ctx context.Context, reference string) (*entities.PaymentAttempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.attempts {
		if a.Reference == reference {
			copy := a
			return &copy, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *inmemoryProvider) GetPaymentAttemptsByOrderReference(ctx context.Context, orderReference string) ([]entities.PaymentAttempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]entities.PaymentAttempt, 0)
	for _, a := range m.attempts {
		if a.OrderReference == orderReference {
			result = append(result, a)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *inmemoryProvider) GetPaymentAttemptLogs(ctx context.Context, reference string) ([]entities.PaymentAttemptLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]entities.PaymentAttemptLog, 0)
	for _, l := range m.attemptLogs {
		if l.Reference == reference {
			result = append(result, l)
		}
	}
	return result, nil
}
