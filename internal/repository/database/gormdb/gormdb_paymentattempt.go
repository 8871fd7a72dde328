package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopbridge/payment-payload-service/internal/entities"
)

var paymentAttemptFields = []string{"Status", "ProviderPaymentID", "Comment", "Payload", "ReconstructedTotal", "LineCount"}

// CreatePaymentAttempt stores the attempt and its first log row in one transaction.
func (g *gormConnector) CreatePaymentAttempt(ctx context.Context, a *entities.PaymentAttempt) error {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := g.db.WithContext(tCtx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}

		log := a.ToLog()
		return tx.Create(&log).Error
	})
	return translate(err)
}

func (g *gormConnector) UpdatePaymentAttempt(ctx context.Context, a *entities.PaymentAttempt) error {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := g.db.WithContext(tCtx).Transaction(func(tx *gorm.DB) error {
		var existing entities.PaymentAttempt
		if err := tx.Where(&entities.PaymentAttempt{Reference: a.Reference}).First(&existing).Error; err != nil {
			return err
		}

		if err := tx.Model(&existing).Select(paymentAttemptFields).Updates(a).Error; err != nil {
			return err
		}

		if err := tx.First(a, existing.ID).Error; err != nil {
			return err
		}

		log := a.ToLog()
		return tx.Create(&log).Error
	})
	return translate(err)
}

func (g *gormConnector) GetPaymentAttemptByReference(ctx context.Context, reference string) (*entities.PaymentAttempt, error) {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var a entities.PaymentAttempt
	res := g.db.WithContext(tCtx).
		Where(&entities.PaymentAttempt{Reference: reference}).
		First(&a)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	return &a, nil
}

func (g *gormConnector) GetPaymentAttemptsByOrderReference(ctx context.Context, orderReference string) ([]entities.PaymentAttempt, error) {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var attempts []entities.PaymentAttempt
	res := g.db.WithContext(tCtx).
		Where(&entities.PaymentAttempt{OrderReference: orderReference}).
		Order("id").
		Find(&attempts)
	if res.Error != nil {
		return nil, res.Error
	}
	return attempts, nil
}

func (g *gormConnector) GetPaymentAttemptLogs(ctx context.Context, reference string) ([]entities.PaymentAttemptLog, error) {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var logs []entities.PaymentAttemptLog
	res := g.db.WithContext(tCtx).
		Where(&entities.PaymentAttemptLog{Reference: reference}).
		Order("id").
		Find(&logs)
	if res.Error != nil {
		return nil, res.Error
	}
	return logs, nil
}
