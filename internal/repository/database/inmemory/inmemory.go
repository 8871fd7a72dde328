package inmemory

import (
	"sync"

	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/repository/database"
)

var _ database.Repository = (*inmemoryProvider)(nil)

type inmemoryProvider struct {
	mu             sync.RWMutex
	paymentMethods map[uint]entities.PaymentMethod
	attempts       map[uint]entities.PaymentAttempt
	attemptLogs    []entities.PaymentAttemptLog
	idSequence     uint32
}

func NewInMemoryProvider() database.Repository {
	return &inmemoryProvider{
		paymentMethods: make(map[uint]entities.PaymentMethod),
		attempts:       make(map[uint]entities.PaymentAttempt),
		attemptLogs:    make([]entities.PaymentAttemptLog, 0),
	}
}

func (m *inmemoryProvider) Migrate() error {
	// Nothing to do here
	return nil
}

func (m *inmemoryProvider) nextID() uint {
	m.idSequence++
	return uint(m.idSequence)
}
