package derivation

import (
	"github.com/shopspring/decimal"

	"github.com/shopbridge/payment-payload-service/internal/lineitem"
)

// ShippingContext is the shipping charge of one cart, order or credit memo.
type ShippingContext struct {
	Method        string
	Description   string
	AmountInclTax decimal.Decimal
	// TaxRate comes from the recorded tax breakdown and is used as is.
	TaxRate decimal.Decimal
}

// Applies reports whether a shipping line belongs in the payload.
func (c ShippingContext) Applies() bool {
	return c.Method != "" && c.AmountInclTax.IsPositive()
}

type Shipping struct {
	ctx     ShippingContext
	options Options
}

var _ Strategy = (*Shipping)(nil)

func NewShipping(ctx ShippingContext, options Options) *Shipping {
	return &Shipping{
		ctx:     ctx,
		options: options,
	}
}

func (s *Shipping) Derive() (lineitem.LineItem, error) {
	return derive(s)
}

func (s *Shipping) ArticleNumber() string {
	return lineitem.SanitizeArticleNumber(s.ctx.Method)
}

func (s *Shipping) Description() string {
	return withDefault(s.ctx.Description, DefaultShippingDescription)
}

func (s *Shipping) Quantity() decimal.Decimal {
	return decimal.NewFromInt(1)
}

func (s *Shipping) UnitMeasure() string {
	return s.options.unitMeasure()
}

func (s *Shipping) UnitAmountExclTax() decimal.Decimal {
	if !s.ctx.AmountInclTax.IsPositive() {
		return s.ctx.AmountInclTax.Round(Precision)
	}
	return ExcludeTax(s.ctx.AmountInclTax, s.TaxRate())
}

func (s *Shipping) TaxRate() decimal.Decimal {
	return s.ctx.TaxRate.Round(Precision)
}

func (s *Shipping) LineType() lineitem.Type {
	return lineitem.TypeShipping
}
