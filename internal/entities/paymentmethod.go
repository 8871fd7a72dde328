package entities

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod is one entry of the local payment method catalog.
//
// Entries are never deleted by a sync, only deactivated, so orders placed with an
// old code can still resolve it.
type PaymentMethod struct {
	gorm.Model
	Code            string          `gorm:"uniqueIndex:idx_uq_pm_code;type:varchar(255);NOT NULL"`
	Identifier      string          `gorm:"type:varchar(255);NOT NULL"`
	CredentialKey   string          `gorm:"index;type:varchar(255);NOT NULL"`
	Active          bool            `gorm:"index;NOT NULL;default:false"`
	Title           string          `gorm:"type:varchar(255);NOT NULL"`
	SortOrder       int             `gorm:"NOT NULL;default:0"`
	MinOrderTotal   decimal.Decimal `gorm:"type:decimal(20,5);NOT NULL"`
	MaxOrderTotal   decimal.Decimal `gorm:"type:decimal(20,5);NOT NULL"`
	OrderStatus     string          `gorm:"type:varchar(32);NOT NULL;default:'pending_payment'"`
	Type            string          `gorm:"type:varchar(64)"`
	CustomerTypes   string          `gorm:"type:varchar(64)"`
	Raw             string          `gorm:"type:text"`
	SpecificCountry string          `gorm:"type:varchar(2)"`
}

// Covers reports whether an order total lies within the method's limits.
// A zero maximum means no upper limit.
func (m PaymentMethod) Covers(total decimal.Decimal) bool {
	if total.LessThan(m.MinOrderTotal) {
		return false
	}
	if m.MaxOrderTotal.IsPositive() && total.GreaterThan(m.MaxOrderTotal) {
		return false
	}
	return true
}

type PaymentMethodQuery struct {
	// filter by credential set, empty means all
	CredentialKey string
	// only return active entries
	ActiveOnly bool
	// only return methods covering this order total, zero disables the filter
	OrderTotal decimal.Decimal
	// only return methods without a country restriction or restricted to this country
	Country string
}
