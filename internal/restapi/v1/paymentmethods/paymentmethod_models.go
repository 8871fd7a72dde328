package v1paymentmethods

import (
	"encoding/json"
)

// request and response types
type (
	// ListPaymentMethodsRequest filters the catalog. Empty fields do not filter.
	ListPaymentMethodsRequest struct {
		// only methods of this credential set, e.g. "shop_test"
		CredentialKey string
		// only active methods
		ActiveOnly bool
		// only methods whose limits cover this order total
		OrderTotal string
		// only methods offered in this country (ISO 3166-1 alpha-2)
		Country string
	}

	ListPaymentMethodsResponse struct {
		PaymentMethods []PaymentMethod `json:"payment_methods"`
	}

	GetPaymentMethodRequest struct {
		Code string
	}

	GetPaymentMethodResponse struct {
		PaymentMethod PaymentMethod `json:"payment_method"`
	}

	DeletePaymentMethodRequest struct {
		ID uint
	}

	// DeletePaymentMethodResponse is empty as this endpoint yields no response
	DeletePaymentMethodResponse struct{}

	SyncPaymentMethodsRequest struct{}

	SyncPaymentMethodsResponse struct {
		Results []SyncResult `json:"results"`
	}
)

type PaymentMethod struct {
	ID              uint        `json:"id"`
	Code            string      `json:"code"`
	Identifier      string      `json:"identifier"`
	CredentialKey   string      `json:"credential_key"`
	Active          bool        `json:"active"`
	Title           string      `json:"title"`
	SortOrder       int         `json:"sort_order"`
	MinOrderTotal   json.Number `json:"min_order_total"`
	MaxOrderTotal   json.Number `json:"max_order_total"`
	OrderStatus     string      `json:"order_status"`
	Type            string      `json:"type,omitempty"`
	CustomerTypes   []string    `json:"customer_types"`
	SpecificCountry string      `json:"specific_country,omitempty"`
}

type SyncResult struct {
	CredentialKey string `json:"credential_key"`
	Deactivated   int64  `json:"deactivated"`
	Created       int    `json:"created"`
	Updated       int    `json:"updated"`
	Total         int    `json:"total"`
	// Error is set if the sync of this credential set failed
	Error string `json:"error,omitempty"`
}
