package conversion

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopbridge/payment-payload-service/internal/derivation"
	"github.com/shopbridge/payment-payload-service/internal/lineitem"
)

// DefaultTolerance absorbs rounding noise when comparing reconstructed totals.
var DefaultTolerance = decimal.RequireFromString("0.01")

var ErrTotalMismatch = errors.New("reconstructed payload total does not match the recorded total")

// Entity is the accessor surface a cart, order or credit memo offers the converter.
type Entity interface {
	ShippingMethod() string
	ShippingDescription() string
	ShippingAmountInclTax() decimal.Decimal
	ShippingTaxRate() decimal.Decimal

	CouponCode() string
	DiscountDescription() string
	DiscountAmountInclTax() decimal.Decimal
	DiscountTaxCompensation() decimal.Decimal

	PurchasableLines() []PurchasableLine
}

type PurchasableLine interface {
	SKU() string
	Name() string
	Quantity() decimal.Decimal
	UnitPriceInclTax() decimal.Decimal
	TaxRate() decimal.Decimal
}

type Converter struct {
	options   derivation.Options
	tolerance decimal.Decimal
}

// NewConverter falls back to DefaultTolerance when tolerance is not positive.
func NewConverter(options derivation.Options, tolerance decimal.Decimal) *Converter {
	if !tolerance.IsPositive() {
		tolerance = DefaultTolerance
	}
	return &Converter{
		options:   options,
		tolerance: tolerance,
	}
}

// Convert returns the line items of entity: shipping first, then the discount,
// then the products in the entity's own order. The first invalid line aborts.
func (c *Converter) Convert(entity Entity) ([]lineitem.LineItem, error) {
	items := make([]lineitem.LineItem, 0)

	shipping := ShippingContext(entity)
	if shipping.Applies() {
		item, err := derivation.NewShipping(shipping, c.options).Derive()
		if err != nil {
			return nil, fmt.Errorf("shipping line: %w", err)
		}
		items = append(items, item)
	}

	discount := DiscountContext(entity)
	if discount.Applies() {
		item, err := derivation.NewDiscount(discount, c.options).Derive()
		if err != nil {
			return nil, fmt.Errorf("discount line: %w", err)
		}
		items = append(items, item)
	}

	for i, line := range entity.PurchasableLines() {
		product := ProductContext(line)
		if !product.Applies() {
			continue
		}

		item, err := derivation.NewProduct(product, c.options).Derive()
		if err != nil {
			return nil, fmt.Errorf("product line %d (%s): %w", i, line.SKU(), err)
		}
		items = append(items, item)
	}

	return items, nil
}

// ReconstructTotal sums unit amount * quantity * (1 + rate/100) over items.
func ReconstructTotal(items []lineitem.LineItem) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	one := decimal.NewFromInt(1)

	total := decimal.Zero
	for _, item := range items {
		factor := one.Add(item.TaxRate().Div(hundred))
		total = total.Add(item.UnitAmountExclTax().Mul(item.Quantity()).Mul(factor))
	}
	return total
}

// Reconcile compares the reconstructed total of items to the total recorded by the
// storefront. A difference beyond the tolerance means the conversion is wrong and
// the payment must not be submitted.
func (c *Converter) Reconcile(expected decimal.Decimal, items []lineitem.LineItem) (decimal.Decimal, error) {
	total := ReconstructTotal(items)
	if total.Sub(expected).Abs().GreaterThan(c.tolerance) {
		return total, fmt.Errorf("%w: expected %s, reconstructed %s", ErrTotalMismatch, expected.StringFixed(2), total.StringFixed(2))
	}
	return total, nil
}

func ShippingContext(entity Entity) derivation.ShippingContext {
	return derivation.ShippingContext{
		Method:        entity.ShippingMethod(),
		Description:   entity.ShippingDescription(),
		AmountInclTax: entity.ShippingAmountInclTax(),
		TaxRate:       entity.ShippingTaxRate(),
	}
}

func DiscountContext(entity Entity) derivation.DiscountContext {
	return derivation.DiscountContext{
		CouponCode:    entity.CouponCode(),
		Description:   entity.DiscountDescription(),
		AmountInclTax: entity.DiscountAmountInclTax(),
		TaxAmount:     entity.DiscountTaxCompensation(),
	}
}

func ProductContext(line PurchasableLine) derivation.ProductContext {
	return derivation.ProductContext{
		SKU:              line.SKU(),
		Name:             line.Name(),
		Quantity:         line.Quantity(),
		UnitPriceInclTax: line.UnitPriceInclTax(),
		TaxRate:          line.TaxRate(),
	}
}
