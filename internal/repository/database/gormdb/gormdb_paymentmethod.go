package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopbridge/payment-payload-service/internal/entities"
)

var paymentMethodFields = []string{
	"Identifier", "CredentialKey", "Active", "Title", "SortOrder", "MinOrderTotal",
	"MaxOrderTotal", "OrderStatus", "Type", "CustomerTypes", "Raw", "SpecificCountry",
}

func (g *gormConnector) CreatePaymentMethod(ctx context.Context, m *entities.PaymentMethod) error {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return translate(g.db.WithContext(tCtx).Create(m).Error)
}

func (g *gormConnector) UpdatePaymentMethod(ctx context.Context, m *entities.PaymentMethod) error {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var existing entities.PaymentMethod
	if err := g.db.WithContext(tCtx).First(&existing, m.ID).Error; err != nil {
		return translate(err)
	}

	// Select keeps zero values such as Active=false in the update
	res := g.db.WithContext(tCtx).
		Model(&existing).
		Select(paymentMethodFields).
		Updates(m)
	return translate(res.Error)
}

func (g *gormConnector) GetPaymentMethodByID(ctx context.Context, id uint) (*entities.PaymentMethod, error) {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m entities.PaymentMethod
	if err := g.db.WithContext(tCtx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (g *gormConnector) GetPaymentMethodByCode(ctx context.Context, code string) (*entities.PaymentMethod, error) {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m entities.PaymentMethod
	res := g.db.WithContext(tCtx).
		Where(&entities.PaymentMethod{Code: code}).
		First(&m)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	return &m, nil
}

func (g *gormConnector) FindPaymentMethods(ctx context.Context, query entities.PaymentMethodQuery) ([]entities.PaymentMethod, error) {
	var methods []entities.PaymentMethod

	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	db := g.db.WithContext(tCtx).
		Where(&entities.PaymentMethod{CredentialKey: query.CredentialKey})

	if query.ActiveOnly {
		db = db.Where("active = ?", true)
	}

	if query.OrderTotal.IsPositive() {
		db = db.Where("min_order_total <= ?", query.OrderTotal).
			Where("(max_order_total <= 0 OR max_order_total >= ?)", query.OrderTotal)
	}

	if query.Country != "" {
		db = db.Where("(specific_country = '' OR specific_country IS NULL OR specific_country = ?)", query.Country)
	}

	res := db.Order("sort_order").Order("code").Find(&methods)
	if res.Error != nil {
		return nil, res.Error
	}

	return methods, nil
}

func (g *gormConnector) DeletePaymentMethod(ctx context.Context, id uint) error {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// hard delete, a soft deleted row would still hold the unique code
	res := g.db.WithContext(tCtx).Unscoped().Delete(&entities.PaymentMethod{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (g *gormConnector) DeactivatePaymentMethods(ctx context.Context, credentialKey string) (int64, error) {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res := g.db.WithContext(tCtx).
		Model(&entities.PaymentMethod{}).
		Where("credential_key = ? AND active = ?", credentialKey, true).
		Update("active", false)

	return res.RowsAffected, res.Error
}
