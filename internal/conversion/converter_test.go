package conversion_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shopbridge/payment-payload-service/internal/conversion"
	"github.com/shopbridge/payment-payload-service/internal/derivation"
	"github.com/shopbridge/payment-payload-service/internal/entities"
	"github.com/shopbridge/payment-payload-service/internal/lineitem"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func exampleOrder() entities.Order {
	return entities.Order{
		ID:          1,
		IncrementID: "000000042",
		SalesDocument: entities.SalesDocument{
			Currency: "SEK",
			Shipping: entities.Shipping{
				Method:        "flatrate",
				Description:   "Flat Rate",
				AmountInclTax: dec("10.00"),
				TaxPercent:    dec("25"),
			},
			Discount: entities.Discount{
				CouponCode:      "SAVE10",
				AmountInclTax:   dec("-5.00"),
				TaxCompensation: dec("1.00"),
			},
			Items: []entities.SalesItem{
				{
					ItemID:       10,
					Sku:          "MUG-01",
					Name:         "Coffee mug",
					Qty:          dec("2"),
					PriceInclTax: dec("50.00"),
					PriceExclTax: dec("39.99"),
					TaxPercent:   dec("25"),
				},
			},
			GrandTotal: dec("105.00"),
		},
	}
}

func newConverter() *conversion.Converter {
	return conversion.NewConverter(derivation.Options{UnitMeasure: "st", RoundTaxPercentage: true}, decimal.Zero)
}

func TestConvertEndToEnd(t *testing.T) {
	order := exampleOrder()

	items, err := newConverter().Convert(order)
	require.NoError(t, err)
	require.Len(t, items, 3)

	require.Equal(t, lineitem.TypeShipping, items[0].Type())
	requireDecimal(t, "8", items[0].UnitAmountExclTax())
	require.Equal(t, "flatrate", items[0].ArticleNumber())
	require.Equal(t, "Flat Rate", items[0].Description())

	require.Equal(t, lineitem.TypeDiscount, items[1].Type())
	requireDecimal(t, "-4", items[1].UnitAmountExclTax())
	requireDecimal(t, "25", items[1].TaxRate())
	require.Equal(t, "discountsave10", items[1].ArticleNumber())

	require.Equal(t, lineitem.TypeProduct, items[2].Type())
	requireDecimal(t, "40", items[2].UnitAmountExclTax())
	requireDecimal(t, "2", items[2].Quantity())
	require.Equal(t, "mug01", items[2].ArticleNumber())

	requireDecimal(t, "105", conversion.ReconstructTotal(items))
}

func TestInclusionPolicy(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(o *entities.Order)
		expectedTypes []lineitem.Type
	}{
		{
			name:          "Should include shipping, discount and products",
			modify:        func(o *entities.Order) {},
			expectedTypes: []lineitem.Type{lineitem.TypeShipping, lineitem.TypeDiscount, lineitem.TypeProduct},
		},
		{
			name:          "Should skip shipping without a method",
			modify:        func(o *entities.Order) { o.Shipping.Method = "" },
			expectedTypes: []lineitem.Type{lineitem.TypeDiscount, lineitem.TypeProduct},
		},
		{
			name:          "Should skip free shipping",
			modify:        func(o *entities.Order) { o.Shipping.AmountInclTax = decimal.Zero },
			expectedTypes: []lineitem.Type{lineitem.TypeDiscount, lineitem.TypeProduct},
		},
		{
			name:          "Should skip a zero discount",
			modify:        func(o *entities.Order) { o.Discount.AmountInclTax = decimal.Zero },
			expectedTypes: []lineitem.Type{lineitem.TypeShipping, lineitem.TypeProduct},
		},
		{
			name:          "Should skip a positive discount amount",
			modify:        func(o *entities.Order) { o.Discount.AmountInclTax = dec("5") },
			expectedTypes: []lineitem.Type{lineitem.TypeShipping, lineitem.TypeProduct},
		},
		{
			name:          "Should skip products with zero quantity",
			modify:        func(o *entities.Order) { o.Items[0].Qty = decimal.Zero },
			expectedTypes: []lineitem.Type{lineitem.TypeShipping, lineitem.TypeDiscount},
		},
		{
			name: "Should skip child lines of configurable products",
			modify: func(o *entities.Order) {
				o.Items = append(o.Items, entities.SalesItem{
					ItemID:       11,
					ParentItemID: 10,
					Sku:          "MUG-01-RED",
					Qty:          dec("2"),
					PriceInclTax: dec("50.00"),
					TaxPercent:   dec("25"),
				})
			},
			expectedTypes: []lineitem.Type{lineitem.TypeShipping, lineitem.TypeDiscount, lineitem.TypeProduct},
		},
		{
			name: "Should keep the native order of products",
			modify: func(o *entities.Order) {
				o.Items = append(o.Items,
					entities.SalesItem{Sku: "B", Name: "b", Qty: dec("1"), PriceInclTax: dec("12"), TaxPercent: dec("12")},
					entities.SalesItem{Sku: "A", Name: "a", Qty: dec("1"), PriceInclTax: dec("6"), TaxPercent: dec("6")},
				)
			},
			expectedTypes: []lineitem.Type{lineitem.TypeShipping, lineitem.TypeDiscount, lineitem.TypeProduct, lineitem.TypeProduct, lineitem.TypeProduct},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := exampleOrder()
			tt.modify(&order)

			items, err := newConverter().Convert(order)
			require.NoError(t, err)

			types := make([]lineitem.Type, 0, len(items))
			for _, item := range items {
				types = append(types, item.Type())
			}
			require.Equal(t, tt.expectedTypes, types)
		})
	}
}

func TestConvertKeepsProductOrder(t *testing.T) {
	order := exampleOrder()
	order.Items = []entities.SalesItem{
		{Sku: "third", Name: "c", Qty: dec("1"), PriceInclTax: dec("1"), TaxPercent: dec("0")},
		{Sku: "first", Name: "a", Qty: dec("1"), PriceInclTax: dec("1"), TaxPercent: dec("0")},
		{Sku: "second", Name: "b", Qty: dec("1"), PriceInclTax: dec("1"), TaxPercent: dec("0")},
	}

	items, err := newConverter().Convert(order)
	require.NoError(t, err)
	require.Equal(t, "third", items[2].ArticleNumber())
	require.Equal(t, "first", items[3].ArticleNumber())
	require.Equal(t, "second", items[4].ArticleNumber())
}

func TestConvertAbortsOnInvalidLine(t *testing.T) {
	order := exampleOrder()
	order.Items[0].TaxPercent = dec("17")

	items, err := newConverter().Convert(order)
	require.Nil(t, items)
	require.ErrorIs(t, err, lineitem.ErrInvalidField)
	require.Contains(t, err.Error(), "product line 0 (MUG-01)")
}

func TestConvertAbortsOnUnderivableDiscountRate(t *testing.T) {
	order := exampleOrder()
	order.Discount.AmountInclTax = dec("-10")
	order.Discount.TaxCompensation = dec("1.5")

	_, err := newConverter().Convert(order)
	require.ErrorIs(t, err, lineitem.ErrInvalidField)
	require.Contains(t, err.Error(), "discount line")
}

func TestConvertCartAndCreditMemo(t *testing.T) {
	doc := exampleOrder().SalesDocument

	cartItems, err := newConverter().Convert(entities.Cart{ID: 5, SalesDocument: doc})
	require.NoError(t, err)
	require.Len(t, cartItems, 3)

	memo := entities.CreditMemo{ID: 7, OrderIncrementID: "000000042", SalesDocument: doc}
	memo.Items[0].Qty = dec("1")
	memo.Shipping.AmountInclTax = decimal.Zero
	memo.Discount.AmountInclTax = decimal.Zero

	memoItems, err := newConverter().Convert(memo)
	require.NoError(t, err)
	require.Len(t, memoItems, 1)
	requireDecimal(t, "50", conversion.ReconstructTotal(memoItems))
}

func TestReconcile(t *testing.T) {
	items, err := newConverter().Convert(exampleOrder())
	require.NoError(t, err)

	total, err := newConverter().Reconcile(dec("105.00"), items)
	require.NoError(t, err)
	requireDecimal(t, "105", total)

	_, err = newConverter().Reconcile(dec("105.01"), items)
	require.NoError(t, err, "differences within the tolerance are rounding noise")

	_, err = newConverter().Reconcile(dec("106.00"), items)
	require.ErrorIs(t, err, conversion.ErrTotalMismatch)
	require.Contains(t, err.Error(), "expected 106.00, reconstructed 105.00")
}

func TestReconstructTotalOfNothingIsZero(t *testing.T) {
	requireDecimal(t, "0", conversion.ReconstructTotal(nil))
}
