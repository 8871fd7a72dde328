package derivation

import (
	"github.com/shopspring/decimal"

	"github.com/shopbridge/payment-payload-service/internal/lineitem"
)

const discountArticlePrefix = "discount"

// DiscountContext is the discount data of one cart, order or credit memo.
type DiscountContext struct {
	CouponCode  string
	Description string
	// AmountInclTax is expected to be zero or negative.
	AmountInclTax decimal.Decimal
	// TaxAmount is the tax compensation contained in AmountInclTax.
	TaxAmount decimal.Decimal
}

// Applies reports whether a discount line belongs in the payload.
func (c DiscountContext) Applies() bool {
	return c.AmountInclTax.IsNegative()
}

type Discount struct {
	ctx     DiscountContext
	options Options
}

var _ Strategy = (*Discount)(nil)

func NewDiscount(ctx DiscountContext, options Options) *Discount {
	return &Discount{
		ctx:     ctx,
		options: options,
	}
}

func (d *Discount) Derive() (lineitem.LineItem, error) {
	return derive(d)
}

func (d *Discount) ArticleNumber() string {
	return lineitem.SanitizeArticleNumber(discountArticlePrefix + d.ctx.CouponCode)
}

func (d *Discount) Description() string {
	return withDefault(d.ctx.Description, DefaultDiscountDescription)
}

func (d *Discount) Quantity() decimal.Decimal {
	return decimal.NewFromInt(1)
}

func (d *Discount) UnitMeasure() string {
	return d.options.unitMeasure()
}

// UnitAmountExclTax keeps the sign of the discount amount.
func (d *Discount) UnitAmountExclTax() decimal.Decimal {
	return ExcludeTax(d.ctx.AmountInclTax, d.TaxRate())
}

// TaxRate is back-derived from the discount amount and its tax compensation,
// because the storefront records no rate for discounts.
func (d *Discount) TaxRate() decimal.Decimal {
	tax := d.ctx.TaxAmount.Abs()
	exclTax := d.ctx.AmountInclTax.Abs().Sub(tax)

	if !exclTax.IsPositive() || !tax.IsPositive() {
		return decimal.Zero
	}

	rate := tax.Div(exclTax).Mul(hundred)
	if d.options.RoundTaxPercentage {
		return rate.Round(0)
	}
	return rate.Round(Precision)
}

func (d *Discount) LineType() lineitem.Type {
	return lineitem.TypeDiscount
}
