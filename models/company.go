package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BrandSettings holds everything the PDF renderer pulls from the issuing
// company: colors, art assets, display toggles, and the recurring text
// blocks. Line blocks are stored as jsonb arrays of strings.
type BrandSettings struct {
	PrimaryColor   string `json:"primary_color" gorm:"size:16"`
	SecondaryColor string `json:"secondary_color" gorm:"size:16"`

	LogoURL      string `json:"logo_url"`
	SignatureURL string `json:"signature_url"`
	FontURL      string `json:"font_url"`
	SignerName   string `json:"signer_name"`

	Currency      string `json:"currency" gorm:"size:8;default:EUR"`
	FooterMessage string `json:"footer_message"`

	TermsLines   datatypes.JSON `json:"terms_lines" gorm:"type:jsonb"`
	PaymentLines datatypes.JSON `json:"payment_lines" gorm:"type:jsonb"`

	ShowTerms       bool `json:"show_terms"`
	ShowPaymentInfo bool `json:"show_payment_info"`
	ShowNotes       bool `json:"show_notes"`

	// Per-kind template defaults ("baseline", "classic", "compact", "vibrant")
	QuotationTemplate string `json:"quotation_template" gorm:"size:20"`
	InvoiceTemplate   string `json:"invoice_template" gorm:"size:20"`
	ReceiptTemplate   string `json:"receipt_template" gorm:"size:20"`
}

type Company struct {
	Id          string `json:"id" gorm:"primaryKey"`
	CompanyName string `json:"company_name" gorm:"not null;unique"`
	Address     string `json:"address" gorm:"not null"`
	City        string `json:"city" gorm:"not null"`
	Country     string `json:"country" gorm:"not null"`
	Zip         string `json:"zip" gorm:"not null"`
	Homepage    string `json:"homepage" gorm:"null"`
	UID         string `json:"uid" gorm:"null"`
	Email       string `json:"email" gorm:"not null"`
	PhoneNumber string `json:"phone_number"`
	UserId      string `json:"-"`
	User        User   `json:"user" gorm:"foreignKey:UserId;references:Id"`

	Brand BrandSettings `json:"brand" gorm:"embedded;embeddedPrefix:brand_"`
}

func (company *Company) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	company.Id = uuid.NewString()
	return
}
