package controllers

import (
	"errors"
	"fmt"
	"strings"

	"belegwerk-backend/database"
	"belegwerk-backend/models"
	"belegwerk-backend/render"
	"belegwerk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Shared across requests so fetched logos, signatures, fonts, and item
// photos are downloaded once per process.
var (
	renderAssets = render.NewAssetCache()
	pdfRenderer  = render.NewRenderer(renderAssets)
)

// GET /api/documents/:id/pdf
// Streams the rendered PDF for a document. Query options:
//
//	images=1       render item thumbnails
//	descriptions=1 render item description lines
//	narrative=1    render the project narrative section
//	signature=1    render the signature block
//	scale=0.8      shrink layout (0.6 .. 1.0)
//	template=...   override the brand's per-kind template
func RenderDocumentPDF(c *fiber.Ctx) error {
	var doc models.Document
	err := database.DB.
		Preload("Items").
		Preload("Items.Product").
		Preload("Customer").
		First(&doc, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "document not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	company, err := loadCompany(c)
	if err != nil {
		return err
	}

	payload := renderPayload(&doc)
	payload.Issuer = render.Party{
		Name:    company.CompanyName,
		Contact: partyContact(company.Email, company.PhoneNumber),
		Address: partyAddress(company.Address, company.City, company.Zip, company.Country),
	}
	if !company.Brand.ShowNotes {
		payload.Notes = ""
	}

	brand := renderBrand(company, &doc)
	if tpl := strings.TrimSpace(c.Query("template")); tpl != "" {
		brand.Template = render.ParseTemplate(tpl)
	}

	opts := render.Options{
		ShowImage:              c.QueryBool("images"),
		ShowDescription:        c.QueryBool("descriptions", true),
		ShowProjectDescription: c.QueryBool("narrative", true),
		ShowSignature:          c.QueryBool("signature", true),
		Scale:                  c.QueryFloat("scale", 1.0),
	}
	if name, _ := c.Locals("userName").(string); name != "" {
		opts.Actor = name
	}

	out, err := pdfRenderer.Render(payload, brand, opts)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "pdf rendering failed")
	}

	filename := strings.ReplaceAll(doc.Number, "/", "-")
	if filename == "" {
		filename = fmt.Sprintf("document-%d", doc.ID)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`.pdf"`)
	return c.Send(out)
}

// renderPayload maps the stored document onto the renderer's input types.
func renderPayload(doc *models.Document) render.Document {
	items := make([]render.LineItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		name := it.Product.Name
		if name == "" {
			name = it.Description
		}
		items = append(items, render.LineItem{
			Name:        name,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.NetPrice,
			ImageSrc:    it.Product.ImageURL,
		})
	}

	status := "draft"
	if doc.Published {
		status = "published"
	}

	out := render.Document{
		Kind:      render.Kind(doc.Kind),
		Number:    doc.Number,
		IssueDate: doc.IssueDate,
		Status:    status,
		Customer: render.Party{
			Name:    doc.Customer.DisplayName(),
			Contact: partyContact(doc.Customer.Email, doc.Customer.PhoneNumber),
			Address: partyAddress(doc.Customer.Address, doc.Customer.City, doc.Customer.Zip, doc.Customer.Country),
		},
		Narrative:   doc.Narrative,
		Notes:       doc.Notes,
		Items:       items,
		Adjustments: documentAdjustments(doc),
	}
	if doc.DueDate != nil {
		out.DueDate = *doc.DueDate
	}
	return out
}

// renderBrand maps company brand settings onto the renderer's Brand,
// honoring the stored display toggles and per-kind template defaults.
func renderBrand(company *models.Company, doc *models.Document) render.Brand {
	b := company.Brand

	var tplName string
	switch doc.Kind {
	case models.KindQuotation:
		tplName = b.QuotationTemplate
	case models.KindReceipt:
		tplName = b.ReceiptTemplate
	default:
		tplName = b.InvoiceTemplate
	}

	out := render.Brand{
		Name:    company.CompanyName,
		Email:   company.Email,
		Website: company.Homepage,
		Phone:   company.PhoneNumber,
		Address: strings.Join(partyAddress(company.Address, company.City, company.Zip, company.Country), ", "),

		PrimaryColor:   b.PrimaryColor,
		SecondaryColor: b.SecondaryColor,
		Template:       render.ParseTemplate(tplName),

		LogoSrc:      b.LogoURL,
		SignatureSrc: b.SignatureURL,
		FontSrc:      b.FontURL,
		SignerName:   b.SignerName,

		Currency:      b.Currency,
		FooterMessage: b.FooterMessage,

		ShowName:    true,
		ShowEmail:   company.Email != "",
		ShowWebsite: company.Homepage != "",
		ShowAddress: company.Address != "",
	}
	if b.ShowTerms {
		out.TermsLines = utils.LinesFromJSON(b.TermsLines)
	}
	if b.ShowPaymentInfo {
		out.PaymentLines = utils.LinesFromJSON(b.PaymentLines)
	}
	return out
}

// renderPayload helpers: blank segments are dropped so the renderer never
// prints empty lines.
func partyContact(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func partyAddress(street, city, zip, country string) []string {
	var out []string
	if street = strings.TrimSpace(street); street != "" {
		out = append(out, street)
	}
	line := strings.TrimSpace(strings.TrimSpace(zip) + " " + strings.TrimSpace(city))
	if line != "" {
		out = append(out, line)
	}
	if country = strings.TrimSpace(country); country != "" {
		out = append(out, country)
	}
	return out
}
