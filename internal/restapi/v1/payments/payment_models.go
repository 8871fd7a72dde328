package v1payments

import (
	"encoding/json"
	"time"

	"github.com/shopbridge/payment-payload-service/internal/entities"
)

// request and response types
type (
	// SubmitPaymentRequest selects the order to pay and the catalog code of the method to pay it with
	SubmitPaymentRequest struct {
		OrderID           string `json:"order_id"`
		PaymentMethodCode string `json:"payment_method_code"`
	}

	SubmitPaymentResponse struct {
		Attempt PaymentAttempt `json:"attempt"`
	}

	GetPaymentAttemptsRequest struct {
		OrderID string
	}

	GetPaymentAttemptsResponse struct {
		Attempts []PaymentAttempt `json:"attempts"`
	}

	GetAttemptHistoryRequest struct {
		Reference string
	}

	GetAttemptHistoryResponse struct {
		Reference string          `json:"reference"`
		History   []StatusHistory `json:"history"`
	}
)

type PaymentAttempt struct {
	Reference         string                        `json:"reference"`
	OrderID           string                        `json:"order_id"`
	PaymentMethodCode string                        `json:"payment_method_code"`
	Status            entities.PaymentAttemptStatus `json:"status"`
	// Currency is the ISO 4217 currency code
	Currency           string      `json:"currency"`
	RecordedTotal      json.Number `json:"recorded_total"`
	ReconstructedTotal json.Number `json:"reconstructed_total"`
	LineCount          int         `json:"line_count"`
	ProviderPaymentID  string      `json:"provider_payment_id,omitempty"`
	Comment            string      `json:"comment,omitempty"`
	// Payload is the request sent (or prepared for) the provider
	Payload      json.RawMessage `json:"payload,omitempty"`
	CreationDate time.Time       `json:"creation_date"`
}

type StatusHistory struct {
	Status            entities.PaymentAttemptStatus `json:"status"`
	ProviderPaymentID string                        `json:"provider_payment_id,omitempty"`
	Comment           string                        `json:"comment,omitempty"`
	ChangeDate        time.Time                     `json:"change_date"`
}
