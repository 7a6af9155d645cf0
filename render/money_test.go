package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumCoercesNonFinite(t *testing.T) {
	assert.Equal(t, 0.0, Num(math.NaN()))
	assert.Equal(t, 0.0, Num(math.Inf(1)))
	assert.Equal(t, 0.0, Num(math.Inf(-1)))
	assert.Equal(t, 12.5, Num(12.5))
}

func TestLineItemAmount(t *testing.T) {
	assert.Equal(t, 150.0, LineItem{Quantity: 3, UnitPrice: 50}.Amount())
	// Explicit subtotal wins over quantity x price.
	assert.Equal(t, 99.0, LineItem{Quantity: 3, UnitPrice: 50, Subtotal: 99}.Amount())
	// Malformed numbers collapse to zero instead of poisoning the row.
	assert.Equal(t, 0.0, LineItem{Quantity: math.NaN(), UnitPrice: 50}.Amount())
}

func TestComputeTotalsExtraDiscountPercent(t *testing.T) {
	items := []LineItem{{Quantity: 1, UnitPrice: 100000}}
	bd := ComputeTotals(items, Adjustments{
		ExtraDiscount: ExtraDiscount{Kind: DiscountPercent, Value: 10},
	})

	assert.Equal(t, 100000.0, bd.Subtotal)
	assert.Equal(t, 10000.0, bd.ExtraDiscount)
	assert.Equal(t, 90000.0, bd.TotalDue)
}

func TestComputeTotalsDownPaymentClampsAtZero(t *testing.T) {
	items := []LineItem{{Quantity: 1, UnitPrice: 100000}}
	bd := ComputeTotals(items, Adjustments{
		ExtraDiscount: ExtraDiscount{Kind: DiscountPercent, Value: 10},
		DownPayment:   90000,
	})
	assert.Equal(t, 0.0, bd.TotalDue)

	bd = ComputeTotals(items, Adjustments{DownPayment: 250000})
	assert.Equal(t, 0.0, bd.TotalDue)
}

func TestComputeTotalsExclusiveTaxAdds(t *testing.T) {
	items := []LineItem{{Quantity: 1, UnitPrice: 1000}}
	bd := ComputeTotals(items, Adjustments{Tax: TaxMode{Rate: 0.11}})

	assert.Equal(t, 110.0, bd.Tax)
	assert.Equal(t, 1110.0, bd.TotalDue)
}

func TestComputeTotalsInclusiveTaxIsDisplayOnly(t *testing.T) {
	items := []LineItem{{Quantity: 1, UnitPrice: 1110}}
	bd := ComputeTotals(items, Adjustments{Tax: TaxMode{Rate: 0.11, Inclusive: true}})

	assert.Equal(t, 110.0, bd.Tax)
	assert.True(t, bd.TaxInclusive)
	assert.Equal(t, 1110.0, bd.TotalDue)
}

func TestComputeTotalsShippingAndAmountDiscount(t *testing.T) {
	items := []LineItem{
		{Quantity: 2, UnitPrice: 400},
		{Quantity: 1, UnitPrice: 200},
	}
	bd := ComputeTotals(items, Adjustments{
		Discount:      100,
		ExtraDiscount: ExtraDiscount{Kind: DiscountAmount, Value: 50},
		Shipping:      75,
	})

	assert.Equal(t, 1000.0, bd.Subtotal)
	assert.Equal(t, 100.0, bd.Discount)
	assert.Equal(t, 50.0, bd.ExtraDiscount)
	assert.Equal(t, 925.0, bd.TotalDue)
}

func TestComputeTotalsMalformedAdjustments(t *testing.T) {
	items := []LineItem{{Quantity: 1, UnitPrice: 500}}
	bd := ComputeTotals(items, Adjustments{
		Discount:    math.NaN(),
		Shipping:    math.Inf(1),
		DownPayment: math.NaN(),
	})
	assert.Equal(t, 500.0, bd.TotalDue)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", formatMoney(0))
	assert.Equal(t, "90,000.00", formatMoney(90000))
	assert.Equal(t, "1,234,567.89", formatMoney(1234567.891))
	assert.Equal(t, "999.50", formatMoney(999.5))
	assert.Equal(t, "-1,000.00", formatMoney(-1000))
	assert.Equal(t, "0.00", formatMoney(math.NaN()))
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "3", formatQty(3))
	assert.Equal(t, "2.5", formatQty(2.5))
	assert.Equal(t, "0", formatQty(math.NaN()))
}
