package render

import "math"

// Num coerces malformed monetary input to zero so the layout code can
// assume clean numbers. NaN and the infinities all become 0.
func Num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round2 rounds x to 2 decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Amount is the line total: the explicit subtotal when supplied, else
// quantity times unit price.
func (it LineItem) Amount() float64 {
	if sub := Num(it.Subtotal); sub != 0 {
		return sub
	}
	return Round2(Num(it.Quantity) * Num(it.UnitPrice))
}

// Breakdown is the itemized path from subtotal to the amount due.
// Discount, ExtraDiscount and DownPayment are stored as the positive
// magnitudes being subtracted.
type Breakdown struct {
	Subtotal      float64
	Discount      float64
	ExtraDiscount float64
	Shipping      float64
	Tax           float64
	TaxInclusive  bool
	DownPayment   float64
	TotalDue      float64
}

// ComputeTotals folds the items and adjustments into a Breakdown.
//
//	total = subtotal - discount - extra discount + shipping
//	        + tax (exclusive only) - down payment
//
// clamped at zero. The tax base is the discounted subtotal. An inclusive
// tax is reported as the portion already contained in that base.
func ComputeTotals(items []LineItem, adj Adjustments) Breakdown {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Amount()
	}
	subtotal = Round2(subtotal)

	discount := Num(adj.Discount)

	var extra float64
	switch adj.ExtraDiscount.Kind {
	case DiscountPercent:
		extra = Round2((subtotal - discount) * Num(adj.ExtraDiscount.Value) / 100)
	case DiscountAmount:
		extra = Num(adj.ExtraDiscount.Value)
	}

	taxable := subtotal - discount - extra
	if taxable < 0 {
		taxable = 0
	}

	rate := Num(adj.Tax.Rate)
	var tax float64
	if rate > 0 {
		if adj.Tax.Inclusive {
			tax = Round2(taxable * rate / (1 + rate))
		} else {
			tax = Round2(taxable * rate)
		}
	}

	shipping := Num(adj.Shipping)
	down := Num(adj.DownPayment)

	total := taxable + shipping - down
	if rate > 0 && !adj.Tax.Inclusive {
		total += tax
	}
	if total < 0 {
		total = 0
	}

	return Breakdown{
		Subtotal:      subtotal,
		Discount:      discount,
		ExtraDiscount: extra,
		Shipping:      shipping,
		Tax:           tax,
		TaxInclusive:  adj.Tax.Inclusive,
		DownPayment:   down,
		TotalDue:      Round2(total),
	}
}
