package render

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	gofpdf "github.com/lvillar/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBrand() Brand {
	return Brand{
		Name:           "Belegwerk GmbH",
		Email:          "office@belegwerk.example",
		Website:        "belegwerk.example",
		Phone:          "+43 1 234 5678",
		Address:        "Hauptstrasse 12, 1010 Wien, Austria",
		PrimaryColor:   "#1a3c6e",
		SecondaryColor: "#5a6270",
		Currency:       "EUR",
		SignerName:     "M. Steiner",
		FooterMessage:  "Thank you for your business",
		TermsLines:     []string{"Payment due within 14 days.", "Goods remain our property until paid in full."},
		PaymentLines:   []string{"IBAN AT12 3456 7890 1234", "BIC BKAUATWW"},
		ShowName:       true,
		ShowEmail:      true,
		ShowWebsite:    true,
		ShowAddress:    true,
	}
}

func testDoc(items int) Document {
	doc := Document{
		Kind:      KindInvoice,
		Number:    "INV-2025-0042",
		IssueDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC),
		Status:    "published",
		Issuer: Party{
			Name:    "Belegwerk GmbH",
			Contact: []string{"office@belegwerk.example"},
			Address: []string{"Hauptstrasse 12", "1010 Wien"},
		},
		Customer: Party{
			Name:    "Muster AG",
			Contact: []string{"billing@muster.example"},
			Address: []string{"Ringstrasse 8", "4020 Linz"},
		},
		Notes: "Delivery includes on-site installation.",
	}
	for i := 0; i < items; i++ {
		doc.Items = append(doc.Items, LineItem{
			Name:      fmt.Sprintf("Item %d", i+1),
			Quantity:  1,
			Unit:      "pcs",
			UnitPrice: 250,
		})
	}
	return doc
}

// newTestJob builds a job around a real document backbone the same way
// Render does, so component tests exercise real font metrics.
func newTestJob(t *testing.T, doc Document, brand Brand, opts Options) *job {
	t.Helper()

	s := opts.scale()
	pdf := gofpdf.New("P", "pt", "A4", "")
	require.NotNil(t, pdf)
	pageW, pageH := pdf.GetPageSize()
	margin := 40 * s
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetY(margin)

	return &job{
		pdf:      pdf,
		cv:       &canvas{pdf: pdf, pageH: pageH, margin: margin},
		theme:    ResolveTheme(brand.PrimaryColor, brand.SecondaryColor, brand.Template),
		doc:      &doc,
		brand:    &brand,
		opts:     opts,
		assets:   NewAssetCache(),
		s:        s,
		margin:   margin,
		contentW: pageW - 2*margin,
		font:     "Helvetica",
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer(nil)
	out, err := r.Render(testDoc(5), testBrand(), Options{
		ShowDescription: true,
		ShowSignature:   true,
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output should be a PDF")
	assert.Greater(t, len(out), 1000)
}

func TestRenderDegradesOnMissingAssets(t *testing.T) {
	brand := testBrand()
	brand.LogoSrc = "/nonexistent/logo.png"
	brand.SignatureSrc = "https://127.0.0.1:1/sig.png"
	brand.FontSrc = "/nonexistent/font.ttf"

	doc := testDoc(3)
	for i := range doc.Items {
		doc.Items[i].ImageSrc = "/nonexistent/item.png"
	}

	r := NewRenderer(nil)
	out, err := r.Render(doc, brand, Options{
		ShowImage:     true,
		ShowSignature: true,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderMultiPage(t *testing.T) {
	r := NewRenderer(nil)

	small, err := r.Render(testDoc(3), testBrand(), Options{})
	require.NoError(t, err)
	large, err := r.Render(testDoc(80), testBrand(), Options{})
	require.NoError(t, err)

	// Each page object carries a /Type /Page entry (the page tree adds
	// one /Type /Pages), so the count strictly grows with pagination.
	smallPages := bytes.Count(small, []byte("/Type /Page"))
	largePages := bytes.Count(large, []byte("/Type /Page"))
	assert.Greater(t, largePages, smallPages)
	assert.GreaterOrEqual(t, largePages, 3)
}

func TestRenderEmptyDocument(t *testing.T) {
	r := NewRenderer(nil)
	out, err := r.Render(Document{Kind: KindQuotation}, Brand{}, Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestOptionsScaleClamped(t *testing.T) {
	assert.Equal(t, 1.0, Options{}.scale())
	assert.Equal(t, 1.0, Options{Scale: 2}.scale())
	assert.Equal(t, 0.6, Options{Scale: 0.3}.scale())
	assert.Equal(t, 0.8, Options{Scale: 0.8}.scale())
}

func TestSignatureSlotsActorPreferred(t *testing.T) {
	brand := testBrand()
	j := newTestJob(t, testDoc(1), brand, Options{Actor: "A. Huber"})

	slots := j.signatureSlots()
	require.Len(t, slots, 1)
	assert.Equal(t, "Authorized Signature", slots[0].Caption)
	assert.Equal(t, "A. Huber", slots[0].Name)

	j = newTestJob(t, testDoc(1), brand, Options{})
	assert.Equal(t, "M. Steiner", j.signatureSlots()[0].Name)
}

func TestSignatureSlotsReceiptTwoColumns(t *testing.T) {
	doc := testDoc(1)
	doc.Kind = KindReceipt
	j := newTestJob(t, doc, testBrand(), Options{})

	slots := j.signatureSlots()
	require.Len(t, slots, 2)
	assert.Equal(t, "Issued by", slots[0].Caption)
	assert.Equal(t, "Received by", slots[1].Caption)
	assert.Equal(t, "Muster AG", slots[1].Name)
}

func TestSignatureRowNeverSplits(t *testing.T) {
	j := newTestJob(t, testDoc(1), testBrand(), Options{})

	// Park the cursor near the bottom so the row cannot fit.
	j.cv.setY(j.cv.pageH - j.margin - 30)
	before := j.pdf.PageNo()
	j.drawSignatureRow(j.signatureSlots())
	assert.Equal(t, before+1, j.pdf.PageNo())
}

func TestWrapTextAgainstRealFontMetrics(t *testing.T) {
	j := newTestJob(t, testDoc(1), testBrand(), Options{})
	j.setFont("", 9)

	maxW := 180.0
	text := "Rendering fixed layout paginated financial documents requires measuring text against real font metrics"
	lines := wrapText(j.pdf, text, maxW)

	require.Greater(t, len(lines), 1)
	for _, ln := range lines {
		assert.LessOrEqual(t, j.pdf.GetStringWidth(ln), maxW, "line %q", ln)
	}
}
