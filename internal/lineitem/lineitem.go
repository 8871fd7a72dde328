package lineitem

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeProduct  Type = "ORDER_LINE"
	TypeShipping Type = "SHIPPING_FEE"
	TypeDiscount Type = "DISCOUNT"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeProduct, TypeShipping, TypeDiscount:
		return true
	}

	return false
}

// LineItem is one validated entry of a payment payload.
//
// The zero value is not a valid line item. Values are obtained from Builder.Build
// or from the With* methods of an existing item, both of which validate before
// returning. Items not produced by Build are refused by every With* method and by
// the serializers with ErrNotBuilt.
type LineItem struct {
	built bool

	articleNumber string
	description   string
	quantity      decimal.Decimal
	unitMeasure   string
	unitAmount    decimal.Decimal
	taxRate       decimal.Decimal
	lineType      Type
}

// ErrNotBuilt is returned for a LineItem that was not produced by Builder.Build.
var ErrNotBuilt = fmt.Errorf("%w: line item was not created by the builder", ErrInvalidField)

func (l LineItem) ArticleNumber() string {
	return l.articleNumber
}

func (l LineItem) Description() string {
	return l.description
}

func (l LineItem) Quantity() decimal.Decimal {
	return l.quantity
}

func (l LineItem) UnitMeasure() string {
	return l.unitMeasure
}

func (l LineItem) UnitAmountExclTax() decimal.Decimal {
	return l.unitAmount
}

func (l LineItem) TaxRate() decimal.Decimal {
	return l.taxRate
}

func (l LineItem) Type() Type {
	return l.lineType
}

func (l LineItem) WithArticleNumber(value string) (LineItem, error) {
	if !l.built {
		return l, ErrNotBuilt
	}
	if err := (ArticleNumberValidator{}).Validate(value); err != nil {
		return l, err
	}
	l.articleNumber = value
	return l, nil
}

func (l LineItem) WithDescription(value string) (LineItem, error) {
	if !l.built {
		return l, ErrNotBuilt
	}
	if err := (DescriptionValidator{}).Validate(value); err != nil {
		return l, err
	}
	l.description = value
	return l, nil
}

func (l LineItem) WithQuantity(value decimal.Decimal) (LineItem, error) {
	if !l.built {
		return l, ErrNotBuilt
	}
	if err := (QuantityValidator{}).Validate(value); err != nil {
		return l, err
	}
	l.quantity = value
	return l, nil
}

func (l LineItem) WithUnitMeasure(value string) (LineItem, error) {
	if !l.built {
		return l, ErrNotBuilt
	}
	if err := (UnitMeasureValidator{}).Validate(value); err != nil {
		return l, err
	}
	l.unitMeasure = value
	return l, nil
}

func (l LineItem) WithUnitAmountExclTax(value decimal.Decimal) (LineItem, error) {
	if !l.built {
		return l, ErrNotBuilt
	}
	if err := (UnitAmountValidator{}).Validate(value); err != nil {
		return l, err
	}
	if err := checkAmountSign(l.lineType, value); err != nil {
		return l, err
	}
	l.unitAmount = value
	return l, nil
}

func (l LineItem) WithTaxRate(value decimal.Decimal) (LineItem, error) {
	if !l.built {
		return l, ErrNotBuilt
	}
	if err := (TaxRateValidator{}).Validate(value); err != nil {
		return l, err
	}
	l.taxRate = value
	return l, nil
}

// WithType changes the line type. Only a DISCOUNT may keep a negative unit amount.
func (l LineItem) WithType(value Type) (LineItem, error) {
	if !l.built {
		return l, ErrNotBuilt
	}
	if err := (LineTypeValidator{}).Validate(value); err != nil {
		return l, err
	}
	if err := checkAmountSign(value, l.unitAmount); err != nil {
		return l, err
	}
	l.lineType = value
	return l, nil
}

// Map returns the flat key/value structure expected by the provider.
func (l LineItem) Map() (map[string]interface{}, error) {
	if !l.built {
		return nil, ErrNotBuilt
	}
	return map[string]interface{}{
		FieldArticleNumber: l.articleNumber,
		FieldDescription:   l.description,
		FieldQuantity:      json.Number(l.quantity.String()),
		FieldUnitMeasure:   l.unitMeasure,
		FieldUnitAmount:    json.Number(l.unitAmount.String()),
		FieldTaxRate:       json.Number(l.taxRate.String()),
		FieldType:          string(l.lineType),
	}, nil
}

type wireLineItem struct {
	ArticleNumber string      `json:"artNo"`
	Description   string      `json:"description"`
	Quantity      json.Number `json:"quantity"`
	UnitMeasure   string      `json:"unitMeasure"`
	UnitAmount    json.Number `json:"unitAmountWithoutVat"`
	TaxRate       json.Number `json:"vatPct"`
	Type          Type        `json:"type"`
}

// MarshalJSON writes numbers from their exact decimal text so no float rounding
// sneaks into the payload.
func (l LineItem) MarshalJSON() ([]byte, error) {
	if !l.built {
		return nil, ErrNotBuilt
	}
	return json.Marshal(wireLineItem{
		ArticleNumber: l.articleNumber,
		Description:   l.description,
		Quantity:      json.Number(l.quantity.String()),
		UnitMeasure:   l.unitMeasure,
		UnitAmount:    json.Number(l.unitAmount.String()),
		TaxRate:       json.Number(l.taxRate.String()),
		Type:          l.lineType,
	})
}

// UnmarshalJSON runs the decoded values through the Builder.
func (l *LineItem) UnmarshalJSON(data []byte) error {
	var wire wireLineItem
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	quantity, err := decimal.NewFromString(wire.Quantity.String())
	if err != nil {
		return newFieldError(FieldQuantity, RuleDecimal, "%s is not a number", FieldQuantity)
	}
	unitAmount, err := decimal.NewFromString(wire.UnitAmount.String())
	if err != nil {
		return newFieldError(FieldUnitAmount, RuleDecimal, "%s is not a number", FieldUnitAmount)
	}
	taxRate, err := decimal.NewFromString(wire.TaxRate.String())
	if err != nil {
		return newFieldError(FieldTaxRate, RuleDecimal, "%s is not a number", FieldTaxRate)
	}

	item, err := NewBuilder().
		ArticleNumber(wire.ArticleNumber).
		Description(wire.Description).
		Quantity(quantity).
		UnitMeasure(wire.UnitMeasure).
		UnitAmountExclTax(unitAmount).
		TaxRate(taxRate).
		Type(wire.Type).
		Build()
	if err != nil {
		return err
	}

	*l = item
	return nil
}

func checkAmountSign(lineType Type, amount decimal.Decimal) error {
	if lineType == TypeDiscount {
		return nil
	}
	return checkNonNegative(FieldUnitAmount, amount)
}
