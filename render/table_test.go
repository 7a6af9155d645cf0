package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWidthsSumExact(t *testing.T) {
	cols := []column{
		{ratio: 0.1}, {ratio: 0.2}, {ratio: 0.3}, {ratio: 0.4},
	}
	contentW := 515.28
	widths := resolveWidths(cols, contentW)

	var sum float64
	for _, w := range widths {
		sum += w
	}
	// The last column absorbs the rounding remainder, so the sum is
	// exact, not merely close.
	assert.Equal(t, contentW, sum)
}

func TestResolveWidthsItemColumns(t *testing.T) {
	j := newTestJob(t, testDoc(1), testBrand(), Options{})
	cols := j.itemColumns()

	var ratioSum float64
	for _, c := range cols {
		ratioSum += c.ratio
	}
	assert.InDelta(t, 1.0, ratioSum, 1e-9)

	widths := resolveWidths(cols, j.contentW)
	var sum float64
	for _, w := range widths {
		sum += w
	}
	assert.Equal(t, j.contentW, sum)
}

func TestTableRowWithoutDescriptionCollapsesToMinimum(t *testing.T) {
	doc := testDoc(0)
	doc.Items = []LineItem{{Name: "Widget", Quantity: 1, UnitPrice: 10}}
	j := newTestJob(t, doc, testBrand(), Options{})

	y0 := j.cv.y()
	j.drawItemTable()

	// section label (14) + header row (24) + minimum row height (24)
	// + trailing gap (10)
	assert.InDelta(t, 72.0, j.cv.y()-y0, 1e-6)
}

func TestTableRowHeightGrowsByDescriptionLines(t *testing.T) {
	short := testDoc(0)
	short.Items = []LineItem{{Name: "Widget", Description: "plain", Quantity: 1, UnitPrice: 10}}
	jShort := newTestJob(t, short, testBrand(), Options{ShowDescription: true})
	y0 := jShort.cv.y()
	jShort.drawItemTable()
	shortH := jShort.cv.y() - y0

	long := testDoc(0)
	long.Items = []LineItem{{
		Name:        "Widget",
		Description: strings.Repeat("a somewhat longer descriptive clause about the item ", 12),
		Quantity:    1,
		UnitPrice:   10,
	}}
	jLong := newTestJob(t, long, testBrand(), Options{ShowDescription: true})
	y0 = jLong.cv.y()
	jLong.drawItemTable()
	longH := jLong.cv.y() - y0

	// The long description caps at 3 lines; versus 1 line that is
	// exactly 2 extra description line heights (2 x 10).
	assert.InDelta(t, 20.0, longH-shortH, 1e-6)
}

func TestTablePaginatesAndKeepsTotal(t *testing.T) {
	doc := testDoc(100)
	j := newTestJob(t, doc, testBrand(), Options{})

	total := j.drawItemTable()

	assert.GreaterOrEqual(t, j.pdf.PageNo(), 3, "100 rows must spill onto further pages")
	// The running total is independent of how many page breaks occurred.
	assert.Equal(t, 100*250.0, total)
}

func TestTableFitsOnePageForFewRows(t *testing.T) {
	j := newTestJob(t, testDoc(5), testBrand(), Options{})
	total := j.drawItemTable()

	assert.Equal(t, 1, j.pdf.PageNo())
	assert.Equal(t, 5*250.0, total)
}

func TestTableExplicitSubtotalWins(t *testing.T) {
	doc := testDoc(0)
	doc.Items = []LineItem{
		{Name: "A", Quantity: 2, UnitPrice: 100},
		{Name: "B", Quantity: 1, UnitPrice: 999, Subtotal: 50},
	}
	j := newTestJob(t, doc, testBrand(), Options{})

	assert.Equal(t, 250.0, j.drawItemTable())
}

func TestCanvasEnsure(t *testing.T) {
	j := newTestJob(t, testDoc(1), testBrand(), Options{})

	require.False(t, j.cv.ensure(100), "plenty of room on a fresh page")
	page := j.pdf.PageNo()

	j.cv.setY(j.cv.pageH - j.margin - 50)
	require.True(t, j.cv.ensure(120), "must break when the block cannot fit")
	assert.Equal(t, page+1, j.pdf.PageNo())
	assert.Equal(t, j.margin, j.cv.y())
}

func TestCanvasRemaining(t *testing.T) {
	j := newTestJob(t, testDoc(1), testBrand(), Options{})
	j.cv.setY(j.cv.pageH - j.margin - 42)
	assert.InDelta(t, 42.0, j.cv.remaining(), 1e-6)
}

func TestSummaryAdjustmentLines(t *testing.T) {
	j := newTestJob(t, testDoc(1), testBrand(), Options{})

	bd := ComputeTotals(j.doc.Items, Adjustments{
		Discount:      10,
		ExtraDiscount: ExtraDiscount{Kind: DiscountAmount, Value: 5},
		Shipping:      20,
		Tax:           TaxMode{Rate: 0.11},
		DownPayment:   50,
	})
	lines := j.adjustmentLines(bd)

	require.Len(t, lines, 6)
	assert.Equal(t, "Subtotal", lines[0].label)
	assert.Negative(t, lines[1].value) // discount
	assert.Negative(t, lines[2].value) // extra discount
	assert.Positive(t, lines[3].value) // shipping
	assert.Equal(t, "Tax", lines[4].label)
	assert.Negative(t, lines[5].value) // down payment
}

func TestSummaryZeroAdjustmentsCollapse(t *testing.T) {
	j := newTestJob(t, testDoc(1), testBrand(), Options{})
	bd := ComputeTotals(j.doc.Items, Adjustments{})

	lines := j.adjustmentLines(bd)
	require.Len(t, lines, 1)
	assert.Equal(t, "Subtotal", lines[0].label)
}

func TestSummaryEndsBelowTallerRegion(t *testing.T) {
	j := newTestJob(t, testDoc(1), testBrand(), Options{})
	start := j.cv.y()
	j.drawSummary(ComputeTotals(j.doc.Items, j.doc.Adjustments))

	// Notes + payment info + terms on the left vs the card on the
	// right; either way the cursor must land below the start anchor by
	// at least the card height.
	assert.Greater(t, j.cv.y(), start+64)
}
