// Package render produces fixed-layout, paginated PDF documents
// (quotations, invoices, receipts) from a plain document payload and a
// brand configuration. It has no knowledge of how either was persisted;
// callers map their storage models into the types below.
package render

import "time"

// Kind selects the document flavor. It changes the title, which date
// labels appear, and the shape of the signature area.
type Kind string

const (
	KindQuotation Kind = "quotation"
	KindInvoice   Kind = "invoice"
	KindReceipt   Kind = "receipt"
)

// Title returns the uppercase heading printed on the first page.
func (k Kind) Title() string {
	switch k {
	case KindQuotation:
		return "QUOTATION"
	case KindReceipt:
		return "RECEIPT"
	default:
		return "INVOICE"
	}
}

// Party is one side of the document: the issuer or the counter-party.
type Party struct {
	Name    string
	Contact []string // email, phone, contact person etc., one per line
	Address []string // street / city / country, one per line
}

// LineItem is a single sellable position. Subtotal may be left at zero,
// in which case Quantity times UnitPrice is used.
type LineItem struct {
	Name        string
	Description string
	Quantity    float64
	Unit        string
	UnitPrice   float64
	Subtotal    float64
	ImageSrc    string // optional item photo (URL or local path)
}

// ExtraDiscountKind says how ExtraDiscount.Value is applied.
type ExtraDiscountKind string

const (
	DiscountPercent ExtraDiscountKind = "percent"
	DiscountAmount  ExtraDiscountKind = "amount"
)

// ExtraDiscount is a document-level discount applied after line discounts.
type ExtraDiscount struct {
	Kind  ExtraDiscountKind
	Value float64
}

// TaxMode carries the tax rate and whether it is already contained in the
// item prices. An inclusive tax is displayed but never added to the total.
type TaxMode struct {
	Rate      float64 // e.g. 0.11 for 11%
	Inclusive bool
}

// Adjustments are the monetary corrections between the item subtotal and
// the amount due.
type Adjustments struct {
	Discount      float64 // sum of line-level discounts
	ExtraDiscount ExtraDiscount
	Shipping      float64
	Tax           TaxMode
	DownPayment   float64
}

// Document is the full payload for one render.
type Document struct {
	Kind      Kind
	Number    string
	IssueDate time.Time
	DueDate   time.Time // "valid until" for quotations
	Status    string

	Issuer   Party
	Customer Party

	Narrative string // optional free-text section between parties and items
	Notes     string // free-text block in the totals panel

	Items       []LineItem
	Adjustments Adjustments
}

// Brand is the visual and textual identity of the issuing company.
type Brand struct {
	Name    string
	Email   string
	Website string
	Phone   string
	Address string

	PrimaryColor   string // hex, e.g. "#1a3c6e"
	SecondaryColor string
	Template       Template

	LogoSrc      string
	SignatureSrc string
	FontSrc      string // optional TTF; built-in Helvetica when absent
	SignerName   string

	Currency      string // printed before amounts, e.g. "Rp" or "$"
	FooterMessage string
	TermsLines    []string
	PaymentLines  []string

	ShowName    bool
	ShowEmail   bool
	ShowWebsite bool
	ShowAddress bool
}

// Options are per-request rendering toggles.
type Options struct {
	ShowImage              bool
	ShowDescription        bool
	ShowProjectDescription bool
	ShowSignature          bool

	// Scale uniformly shrinks every size and spacing constant to fit
	// more content per page. Clamped to [0.6, 1.0]; zero means 1.0.
	Scale float64

	// Actor is the authenticated user's display name. When set it is
	// preferred over Brand.SignerName in the signature block.
	Actor string
}

func (o Options) scale() float64 {
	s := o.Scale
	if s == 0 {
		return 1
	}
	if s < 0.6 {
		return 0.6
	}
	if s > 1 {
		return 1
	}
	return s
}
