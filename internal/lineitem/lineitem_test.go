package lineitem

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validBuilder() *Builder {
	return NewBuilder().
		ArticleNumber("sku1").
		Description("Coffee mug").
		Quantity(dec("2")).
		UnitMeasure("st").
		UnitAmountExclTax(dec("40")).
		TaxRate(dec("25")).
		Type(TypeProduct)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(b *Builder)
		expectedField string
	}{
		{
			name:   "Should build when all fields are valid",
			modify: func(b *Builder) {},
		},
		{
			name:          "Should reject a tax rate outside the permitted set",
			modify:        func(b *Builder) { b.TaxRate(dec("17")) },
			expectedField: FieldTaxRate,
		},
		{
			name:          "Should reject an unsanitized article number",
			modify:        func(b *Builder) { b.ArticleNumber("SKU-1") },
			expectedField: FieldArticleNumber,
		},
		{
			name:          "Should reject a missing description",
			modify:        func(b *Builder) { b.Description("") },
			expectedField: FieldDescription,
		},
		{
			name:          "Should reject a missing unit measure",
			modify:        func(b *Builder) { b.UnitMeasure("") },
			expectedField: FieldUnitMeasure,
		},
		{
			name:          "Should reject an unknown type",
			modify:        func(b *Builder) { b.Type("") },
			expectedField: FieldType,
		},
		{
			name:          "Should reject negative amounts on product lines",
			modify:        func(b *Builder) { b.UnitAmountExclTax(dec("-1")) },
			expectedField: FieldUnitAmount,
		},
		{
			name: "Should accept negative amounts on discount lines",
			modify: func(b *Builder) {
				b.UnitAmountExclTax(dec("-1")).Type(TypeDiscount)
			},
		},
		{
			name: "Should report the first failing field in wire order",
			modify: func(b *Builder) {
				b.Quantity(dec("-1")).TaxRate(dec("17"))
			},
			expectedField: FieldQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBuilder()
			tt.modify(b)

			item, err := b.Build()
			if tt.expectedField == "" {
				require.NoError(t, err)
				require.Equal(t, "sku1", item.ArticleNumber())
				return
			}

			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidField)
			require.Equal(t, tt.expectedField, AsFieldError(err).Field)
			require.Equal(t, LineItem{}, item)
		})
	}
}

func TestBuildRejectsTaxRateSeventeen(t *testing.T) {
	_, err := validBuilder().TaxRate(decimal.NewFromInt(17)).Build()
	require.EqualError(t, err, "vatPct: vatPct must be one of [0 6 8 10 12 14 15 24 25 25.5]")
}

func TestWithMethodsValidateOnlyTheTouchedField(t *testing.T) {
	item, err := validBuilder().Build()
	require.NoError(t, err)

	changed, err := item.WithQuantity(dec("3"))
	require.NoError(t, err)
	require.True(t, changed.Quantity().Equal(dec("3")))
	require.True(t, item.Quantity().Equal(dec("2")), "receiver must stay unchanged")

	unchanged, err := item.WithTaxRate(dec("17"))
	require.Error(t, err)
	require.Equal(t, item, unchanged)

	_, err = item.WithUnitAmountExclTax(dec("-5"))
	require.Error(t, err)

	_, err = item.WithArticleNumber("Has Space")
	require.Error(t, err)

	renamed, err := item.WithDescription("Tea mug")
	require.NoError(t, err)
	require.Equal(t, "Tea mug", renamed.Description())

	measured, err := item.WithUnitMeasure("kg")
	require.NoError(t, err)
	require.Equal(t, "kg", measured.UnitMeasure())
}

func TestMarshalJSON(t *testing.T) {
	item, err := NewBuilder().
		ArticleNumber("discountsave10").
		Description("Discount").
		Quantity(dec("1")).
		UnitMeasure("st").
		UnitAmountExclTax(dec("-4.00000")).
		TaxRate(dec("25")).
		Type(TypeDiscount).
		Build()
	require.NoError(t, err)

	b, err := json.Marshal(item)
	require.NoError(t, err)

	require.JSONEq(t, `{
		"artNo": "discountsave10",
		"description": "Discount",
		"quantity": 1,
		"unitMeasure": "st",
		"unitAmountWithoutVat": -4,
		"vatPct": 25,
		"type": "DISCOUNT"
	}`, string(b))
}

func TestMapHasExactlyTheProviderKeys(t *testing.T) {
	item, err := validBuilder().Build()
	require.NoError(t, err)

	m, err := item.Map()
	require.NoError(t, err)
	require.Len(t, m, 7)
	for _, key := range []string{"artNo", "description", "quantity", "unitMeasure", "unitAmountWithoutVat", "vatPct", "type"} {
		require.Contains(t, m, key)
	}
	require.Equal(t, "ORDER_LINE", m["type"])
	require.Equal(t, json.Number("25"), m["vatPct"])
}

func TestUnmarshalJSONValidates(t *testing.T) {
	var item LineItem
	err := json.Unmarshal([]byte(`{"artNo":"a1","description":"d","quantity":1,"unitMeasure":"st","unitAmountWithoutVat":10.5,"vatPct":12,"type":"ORDER_LINE"}`), &item)
	require.NoError(t, err)
	require.True(t, item.UnitAmountExclTax().Equal(dec("10.5")))

	err = json.Unmarshal([]byte(`{"artNo":"a1","description":"d","quantity":1,"unitMeasure":"st","unitAmountWithoutVat":10.5,"vatPct":17,"type":"ORDER_LINE"}`), &item)
	require.ErrorIs(t, err, ErrInvalidField)
}

func TestWithType(t *testing.T) {
	item, err := validBuilder().Build()
	require.NoError(t, err)

	shipping, err := item.WithType(TypeShipping)
	require.NoError(t, err)
	require.Equal(t, TypeShipping, shipping.Type())
	require.Equal(t, TypeProduct, item.Type(), "receiver must stay unchanged")

	_, err = item.WithType(Type("FEE"))
	require.Equal(t, FieldType, AsFieldError(err).Field)

	discount, err := item.WithType(TypeDiscount)
	require.NoError(t, err)
	discount, err = discount.WithUnitAmountExclTax(dec("-4"))
	require.NoError(t, err)

	unchanged, err := discount.WithType(TypeProduct)
	require.Equal(t, FieldUnitAmount, AsFieldError(err).Field, "a negative amount stays reserved for discounts")
	require.Equal(t, discount, unchanged)
}

func TestItemsNotFromTheBuilderAreRefused(t *testing.T) {
	var zero LineItem

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "Should refuse WithArticleNumber",
			call: func() error { _, err := zero.WithArticleNumber("sku1"); return err },
		},
		{
			name: "Should refuse WithDescription",
			call: func() error { _, err := zero.WithDescription("Coffee mug"); return err },
		},
		{
			name: "Should refuse WithQuantity",
			call: func() error { _, err := zero.WithQuantity(dec("1")); return err },
		},
		{
			name: "Should refuse WithUnitMeasure",
			call: func() error { _, err := zero.WithUnitMeasure("st"); return err },
		},
		{
			name: "Should refuse WithUnitAmountExclTax",
			call: func() error { _, err := zero.WithUnitAmountExclTax(dec("10")); return err },
		},
		{
			name: "Should refuse WithTaxRate",
			call: func() error { _, err := zero.WithTaxRate(dec("25")); return err },
		},
		{
			name: "Should refuse WithType",
			call: func() error { _, err := zero.WithType(TypeProduct); return err },
		},
		{
			name: "Should refuse Map",
			call: func() error { _, err := zero.Map(); return err },
		},
		{
			name: "Should refuse json.Marshal",
			call: func() error { _, err := json.Marshal(zero); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.ErrorIs(t, err, ErrNotBuilt)
			require.ErrorIs(t, err, ErrInvalidField)
		})
	}
}

func TestFailedBuildIsNotUsable(t *testing.T) {
	item, err := validBuilder().TaxRate(dec("17")).Build()
	require.Error(t, err)

	_, err = item.WithTaxRate(dec("25"))
	require.ErrorIs(t, err, ErrNotBuilt)
}
