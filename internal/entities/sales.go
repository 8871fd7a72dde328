package entities

import (
	"github.com/shopspring/decimal"

	"github.com/shopbridge/payment-payload-service/internal/conversion"
)

type SourceKind string

const (
	SourceKindOrder      SourceKind = "order"
	SourceKindCart       SourceKind = "cart"
	SourceKindCreditMemo SourceKind = "creditmemo"
)

func (k SourceKind) IsValid() bool {
	switch k {
	case SourceKindOrder, SourceKindCart, SourceKindCreditMemo:
		return true
	}

	return false
}

type SalesItem struct {
	ItemID int64 `json:"item_id"`
	// ParentItemID is set on the child lines of configurable or bundled products.
	// The parent line carries the price, so children are not purchasable lines.
	ParentItemID int64           `json:"parent_item_id,omitempty"`
	Sku          string          `json:"sku"`
	Name         string          `json:"name"`
	Qty          decimal.Decimal `json:"qty"`
	PriceInclTax decimal.Decimal `json:"price_incl_tax"`
	// PriceExclTax is what the storefront stored. It is informational only.
	PriceExclTax decimal.Decimal `json:"price_excl_tax"`
	TaxPercent   decimal.Decimal `json:"tax_percent"`
}

type Shipping struct {
	Method        string          `json:"method"`
	Description   string          `json:"description"`
	AmountInclTax decimal.Decimal `json:"amount_incl_tax"`
	TaxPercent    decimal.Decimal `json:"tax_percent"`
}

type Discount struct {
	CouponCode      string          `json:"coupon_code"`
	Description     string          `json:"description"`
	AmountInclTax   decimal.Decimal `json:"amount_incl_tax"`
	TaxCompensation decimal.Decimal `json:"tax_compensation"`
}

// SalesDocument holds the totals and lines shared by carts, orders and credit memos.
type SalesDocument struct {
	Currency   string          `json:"currency"`
	Items      []SalesItem     `json:"items"`
	Shipping   Shipping        `json:"shipping"`
	Discount   Discount        `json:"discount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

var _ conversion.Entity = SalesDocument{}

func (d SalesDocument) ShippingMethod() string {
	return d.Shipping.Method
}

func (d SalesDocument) ShippingDescription() string {
	return d.Shipping.Description
}

func (d SalesDocument) ShippingAmountInclTax() decimal.Decimal {
	return d.Shipping.AmountInclTax
}

func (d SalesDocument) ShippingTaxRate() decimal.Decimal {
	return d.Shipping.TaxPercent
}

func (d SalesDocument) CouponCode() string {
	return d.Discount.CouponCode
}

func (d SalesDocument) DiscountDescription() string {
	return d.Discount.Description
}

func (d SalesDocument) DiscountAmountInclTax() decimal.Decimal {
	return d.Discount.AmountInclTax
}

func (d SalesDocument) DiscountTaxCompensation() decimal.Decimal {
	return d.Discount.TaxCompensation
}

func (d SalesDocument) PurchasableLines() []conversion.PurchasableLine {
	lines := make([]conversion.PurchasableLine, 0, len(d.Items))
	for _, item := range d.Items {
		if item.ParentItemID != 0 {
			continue
		}
		lines = append(lines, purchasableItem{item: item})
	}
	return lines
}

func (d SalesDocument) RecordedTotal() decimal.Decimal {
	return d.GrandTotal
}

func (d SalesDocument) CurrencyCode() string {
	return d.Currency
}

type purchasableItem struct {
	item SalesItem
}

func (p purchasableItem) SKU() string {
	return p.item.Sku
}

func (p purchasableItem) Name() string {
	return p.item.Name
}

func (p purchasableItem) Quantity() decimal.Decimal {
	return p.item.Qty
}

func (p purchasableItem) UnitPriceInclTax() decimal.Decimal {
	return p.item.PriceInclTax
}

func (p purchasableItem) TaxRate() decimal.Decimal {
	return p.item.TaxPercent
}

type Order struct {
	ID          int64  `json:"entity_id"`
	IncrementID string `json:"increment_id"`
	CountryID   string `json:"country_id"`
	SalesDocument
}

type Cart struct {
	ID        int64  `json:"entity_id"`
	CountryID string `json:"country_id"`
	SalesDocument
}

type CreditMemo struct {
	ID               int64  `json:"entity_id"`
	OrderIncrementID string `json:"order_increment_id"`
	SalesDocument
}

// Document is what every source kind offers on top of the conversion accessors.
type Document interface {
	conversion.Entity
	RecordedTotal() decimal.Decimal
	CurrencyCode() string
}
