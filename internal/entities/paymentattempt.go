package entities

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentAttemptStatus string

const (
	PaymentAttemptStatusPending   PaymentAttemptStatus = "pending"
	PaymentAttemptStatusSubmitted PaymentAttemptStatus = "submitted"
	PaymentAttemptStatusRejected  PaymentAttemptStatus = "rejected"
	PaymentAttemptStatusFailed    PaymentAttemptStatus = "failed"
)

func (s PaymentAttemptStatus) IsValid() bool {
	switch s {
	case PaymentAttemptStatusPending, PaymentAttemptStatusSubmitted, PaymentAttemptStatusRejected, PaymentAttemptStatusFailed:
		return true
	}

	return false
}

// PaymentAttempt records one submission of a payment payload to the provider.
type PaymentAttempt struct {
	gorm.Model
	Reference          string               `gorm:"uniqueIndex:idx_uq_pa_ref;type:varchar(80);NOT NULL"`
	OrderReference     string               `gorm:"index;type:varchar(80);NOT NULL"`
	MethodCode         string               `gorm:"type:varchar(255);NOT NULL"`
	Status             PaymentAttemptStatus `gorm:"type:varchar(16);NOT NULL"`
	ISOCurrency        string               `gorm:"type:varchar(3);NOT NULL"`
	RecordedTotal      decimal.Decimal      `gorm:"type:decimal(20,5);NOT NULL"`
	ReconstructedTotal decimal.Decimal      `gorm:"type:decimal(20,5);NOT NULL"`
	LineCount          int                  `gorm:"NOT NULL"`
	Payload            string               `gorm:"type:text"`
	ProviderPaymentID  string               `gorm:"type:varchar(80)"`
	Comment            string               `gorm:"type:text"`
}

// PaymentAttemptLog holds the state of a payment attempt at a given time
//
// This table is append only
type PaymentAttemptLog struct {
	gorm.Model
	AttemptID         uint                 `gorm:"index;NOT NULL"`
	Reference         string               `gorm:"type:varchar(80);NOT NULL"`
	Status            PaymentAttemptStatus `gorm:"type:varchar(16);NOT NULL"`
	ProviderPaymentID string               `gorm:"type:varchar(80)"`
	Comment           string               `gorm:"type:text"`
}

// TableName implements the Tabler interface to change from a pluralized table name to
// the singular name.
func (PaymentAttemptLog) TableName() string {
	return "pay_payment_attempt_log"
}

func (a *PaymentAttempt) ToLog() PaymentAttemptLog {
	return PaymentAttemptLog{
		AttemptID:         a.ID,
		Reference:         a.Reference,
		Status:            a.Status,
		ProviderPaymentID: a.ProviderPaymentID,
		Comment:           a.Comment,
	}
}
