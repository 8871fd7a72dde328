// Package derivation computes the fields of a payment line item from one piece of
// source data: a purchasable product line, a shipping charge or a discount.
//
// Stored excl. tax values of the storefront are never used. Every excl. tax amount is
// recomputed from the incl. tax amount and the authoritative tax rate, since the
// storefront rounds both figures independently and combining them would double-round.
package derivation

import (
	"github.com/shopspring/decimal"

	"github.com/shopbridge/payment-payload-service/internal/lineitem"
)

// Precision is the number of fractional digits kept for amounts and tax rates.
const Precision int32 = 5

const (
	DefaultUnitMeasure         = "st"
	DefaultShippingDescription = "Shipping"
	DefaultDiscountDescription = "Discount"
)

var hundred = decimal.NewFromInt(100)

type Strategy interface {
	Derive() (lineitem.LineItem, error)

	ArticleNumber() string
	Description() string
	Quantity() decimal.Decimal
	UnitMeasure() string
	UnitAmountExclTax() decimal.Decimal
	TaxRate() decimal.Decimal
	LineType() lineitem.Type
}

// Options carries the configuration values the strategies depend on.
type Options struct {
	UnitMeasure        string
	RoundTaxPercentage bool
}

func (o Options) unitMeasure() string {
	if o.UnitMeasure == "" {
		return DefaultUnitMeasure
	}
	return o.UnitMeasure
}

// derive assembles a line item from the individual field getters of s.
func derive(s Strategy) (lineitem.LineItem, error) {
	return lineitem.NewBuilder().
		ArticleNumber(s.ArticleNumber()).
		Description(s.Description()).
		Quantity(s.Quantity()).
		UnitMeasure(s.UnitMeasure()).
		UnitAmountExclTax(s.UnitAmountExclTax()).
		TaxRate(s.TaxRate()).
		Type(s.LineType()).
		Build()
}

// ExcludeTax removes rate percent of tax from an incl. tax amount. The result is
// rounded to Precision. A zero rate returns the amount unchanged.
func ExcludeTax(amountInclTax decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return amountInclTax.Round(Precision)
	}

	divisor := decimal.NewFromInt(1).Add(rate.Div(hundred))
	return amountInclTax.Div(divisor).Round(Precision)
}

func withDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
