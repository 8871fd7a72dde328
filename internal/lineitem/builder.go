package lineitem

import (
	"github.com/shopspring/decimal"
)

// Builder collects the seven fields of a line item. Nothing is validated until Build.
type Builder struct {
	item LineItem
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) ArticleNumber(value string) *Builder {
	b.item.articleNumber = value
	return b
}

func (b *Builder) Description(value string) *Builder {
	b.item.description = value
	return b
}

func (b *Builder) Quantity(value decimal.Decimal) *Builder {
	b.item.quantity = value
	return b
}

func (b *Builder) UnitMeasure(value string) *Builder {
	b.item.unitMeasure = value
	return b
}

func (b *Builder) UnitAmountExclTax(value decimal.Decimal) *Builder {
	b.item.unitAmount = value
	return b
}

func (b *Builder) TaxRate(value decimal.Decimal) *Builder {
	b.item.taxRate = value
	return b
}

func (b *Builder) Type(value Type) *Builder {
	b.item.lineType = value
	return b
}

// Build validates every field in wire order and returns the first failure.
func (b *Builder) Build() (LineItem, error) {
	item := b.item

	checks := []func() error{
		func() error { return ArticleNumberValidator{}.Validate(item.articleNumber) },
		func() error { return DescriptionValidator{}.Validate(item.description) },
		func() error { return QuantityValidator{}.Validate(item.quantity) },
		func() error { return UnitMeasureValidator{}.Validate(item.unitMeasure) },
		func() error { return UnitAmountValidator{}.Validate(item.unitAmount) },
		func() error { return TaxRateValidator{}.Validate(item.taxRate) },
		func() error { return LineTypeValidator{}.Validate(item.lineType) },
		func() error { return checkAmountSign(item.lineType, item.unitAmount) },
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return LineItem{}, err
		}
	}

	item.built = true
	return item, nil
}
