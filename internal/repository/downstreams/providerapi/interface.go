package providerapi

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopbridge/payment-payload-service/internal/lineitem"
)

type ProviderAPI interface {
	// ListPaymentMethods fetches the methods the provider offers to the store of creds.
	ListPaymentMethods(ctx context.Context, creds Credentials) ([]PaymentMethodDto, error)

	// CreatePayment submits an order payload. A rejected payload is reported as an error
	// wrapping downstreams.ErrDownStreamRejected.
	CreatePayment(ctx context.Context, creds Credentials, request CreatePaymentRequestDto) (CreatePaymentResponseDto, error)
}

// Credentials identify one merchant account at the provider.
type Credentials struct {
	Username    string
	Password    string
	Environment string
	StoreID     string
	Country     string
}

// Key identifies the credential set in the local catalog.
func (c Credentials) Key() string {
	return strings.ToLower(c.Username + "_" + c.Environment)
}

type PaymentMethodDto struct {
	ID               string          `json:"id"`
	Description      string          `json:"description"`
	MinPurchaseLimit decimal.Decimal `json:"minPurchaseLimit"`
	MaxPurchaseLimit decimal.Decimal `json:"maxPurchaseLimit"`
	Type             string          `json:"type"`
	SpecificType     string          `json:"specificType"`
	CustomerType     []string        `json:"customerType"`
	SortOrder        int             `json:"sortOrder"`

	// Raw is the method exactly as the provider sent it.
	Raw json.RawMessage `json:"-"`
}

type paymentMethodListDto struct {
	Content []json.RawMessage `json:"content"`
}

type CreatePaymentRequestDto struct {
	StoreID         string   `json:"storeId"`
	PaymentMethodID string   `json:"paymentMethodId"`
	Order           OrderDto `json:"order"`
}

type OrderDto struct {
	OrderReference          string              `json:"orderReference"`
	Currency                string              `json:"currency"`
	OrderLines              []lineitem.LineItem `json:"orderLines"`
	TotalAmountIncludingVat json.Number         `json:"totalAmountIncludingVat"`
}

type CreatePaymentResponseDto struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
