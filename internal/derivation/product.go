package derivation

import (
	"github.com/shopspring/decimal"

	"github.com/shopbridge/payment-payload-service/internal/lineitem"
)

// ProductContext is one purchasable line of a cart, order or credit memo.
type ProductContext struct {
	SKU              string
	Name             string
	Quantity         decimal.Decimal
	UnitPriceInclTax decimal.Decimal
	TaxRate          decimal.Decimal
}

// Applies reports whether the line contributes to the payload.
func (c ProductContext) Applies() bool {
	return c.Quantity.IsPositive()
}

type Product struct {
	ctx     ProductContext
	options Options
}

var _ Strategy = (*Product)(nil)

func NewProduct(ctx ProductContext, options Options) *Product {
	return &Product{
		ctx:     ctx,
		options: options,
	}
}

func (p *Product) Derive() (lineitem.LineItem, error) {
	return derive(p)
}

func (p *Product) ArticleNumber() string {
	return lineitem.SanitizeArticleNumber(p.ctx.SKU)
}

// Description falls back to the SKU for nameless lines.
func (p *Product) Description() string {
	return withDefault(p.ctx.Name, p.ctx.SKU)
}

func (p *Product) Quantity() decimal.Decimal {
	return p.ctx.Quantity
}

func (p *Product) UnitMeasure() string {
	return p.options.unitMeasure()
}

func (p *Product) UnitAmountExclTax() decimal.Decimal {
	if !p.ctx.UnitPriceInclTax.IsPositive() {
		return p.ctx.UnitPriceInclTax.Round(Precision)
	}
	return ExcludeTax(p.ctx.UnitPriceInclTax, p.TaxRate())
}

func (p *Product) TaxRate() decimal.Decimal {
	return p.ctx.TaxRate.Round(Precision)
}

func (p *Product) LineType() lineitem.Type {
	return lineitem.TypeProduct
}
