package lineitem

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// wire keys of the provider's order line structure
const (
	FieldArticleNumber = "artNo"
	FieldDescription   = "description"
	FieldQuantity      = "quantity"
	FieldUnitMeasure   = "unitMeasure"
	FieldUnitAmount    = "unitAmountWithoutVat"
	FieldTaxRate       = "vatPct"
	FieldType          = "type"
)

const (
	maxArticleNumberLength = 100
	maxDescriptionLength   = 255
	maxUnitMeasureLength   = 15
	maxIntegerDigits       = 15
	maxFractionDigits      = 5
)

// prohibitedArticleNumberChars is the inverse of what SanitizeArticleNumber keeps.
var prohibitedArticleNumberChars = regexp.MustCompile(`[^a-z0-9]`)

// AllowedTaxRates lists the national tax rates the provider accepts.
var AllowedTaxRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(6),
	decimal.NewFromInt(8),
	decimal.NewFromInt(10),
	decimal.NewFromInt(12),
	decimal.NewFromInt(14),
	decimal.NewFromInt(15),
	decimal.NewFromInt(24),
	decimal.NewFromInt(25),
	decimal.RequireFromString("25.5"),
}

var allowedTypes = []Type{TypeProduct, TypeShipping, TypeDiscount}

type ArticleNumberValidator struct{}

func (ArticleNumberValidator) Validate(value string) error {
	if err := checkExcludes(FieldArticleNumber, prohibitedArticleNumberChars, value); err != nil {
		return err
	}
	return checkStringLength(FieldArticleNumber, 1, maxArticleNumberLength, value)
}

type DescriptionValidator struct{}

func (DescriptionValidator) Validate(value string) error {
	return checkStringLength(FieldDescription, 1, maxDescriptionLength, value)
}

type QuantityValidator struct{}

func (QuantityValidator) Validate(value decimal.Decimal) error {
	if err := checkNonNegative(FieldQuantity, value); err != nil {
		return err
	}
	return checkDecimalLength(FieldQuantity, maxIntegerDigits, maxFractionDigits, value)
}

type UnitMeasureValidator struct{}

func (UnitMeasureValidator) Validate(value string) error {
	return checkStringLength(FieldUnitMeasure, 1, maxUnitMeasureLength, value)
}

// UnitAmountValidator accepts signed amounts. Whether a negative amount is
// acceptable depends on the line type and is checked by the Builder.
type UnitAmountValidator struct{}

func (UnitAmountValidator) Validate(value decimal.Decimal) error {
	return checkDecimalLength(FieldUnitAmount, maxIntegerDigits, maxFractionDigits, value)
}

type TaxRateValidator struct{}

func (TaxRateValidator) Validate(value decimal.Decimal) error {
	if err := checkNonNegative(FieldTaxRate, value); err != nil {
		return err
	}
	if err := checkDecimalLength(FieldTaxRate, maxIntegerDigits, maxFractionDigits, value); err != nil {
		return err
	}
	return checkAllowed(FieldTaxRate, AllowedTaxRates, decimal.Decimal.Equal, value)
}

type LineTypeValidator struct{}

func (LineTypeValidator) Validate(value Type) error {
	return checkAllowed(FieldType, allowedTypes, func(a, b Type) bool { return a == b }, value)
}
