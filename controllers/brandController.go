package controllers

import (
	"errors"

	"belegwerk-backend/database"
	"belegwerk-backend/middlewares"
	"belegwerk-backend/models"
	"belegwerk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BrandUpdateDTO struct {
	PrimaryColor   *string `json:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor *string `json:"secondary_color" validate:"omitempty,hexcolor"`

	LogoURL      *string `json:"logo_url" validate:"omitempty,url"`
	SignatureURL *string `json:"signature_url" validate:"omitempty,url"`
	FontURL      *string `json:"font_url" validate:"omitempty,url"`
	SignerName   *string `json:"signer_name"`

	Currency      *string `json:"currency" validate:"omitempty,min=1,max=8"`
	FooterMessage *string `json:"footer_message"`

	TermsLines   []string `json:"terms_lines"`
	PaymentLines []string `json:"payment_lines"`

	ShowTerms       *bool `json:"show_terms"`
	ShowPaymentInfo *bool `json:"show_payment_info"`
	ShowNotes       *bool `json:"show_notes"`

	QuotationTemplate *string `json:"quotation_template" validate:"omitempty,oneof=baseline classic compact vibrant"`
	InvoiceTemplate   *string `json:"invoice_template" validate:"omitempty,oneof=baseline classic compact vibrant"`
	ReceiptTemplate   *string `json:"receipt_template" validate:"omitempty,oneof=baseline classic compact vibrant"`
}

// loadCompany fetches the authenticated user's company.
func loadCompany(c *fiber.Ctx) (*models.Company, error) {
	userID, _ := c.Locals("userID").(string)
	if userID == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "auth context missing")
	}

	var company models.Company
	if err := database.DB.First(&company, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "company not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return &company, nil
}

// GET /api/brand
func GetBrand(c *fiber.Ctx) error {
	company, err := loadCompany(c)
	if err != nil {
		return err
	}
	return c.JSON(company.Brand)
}

// PUT /api/brand
func UpdateBrand(c *fiber.Ctx) error {
	company, err := loadCompany(c)
	if err != nil {
		return err
	}

	var in BrandUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	updates := utils.UpdatesFromPtrDTO(&in, map[string]string{
		"primary_color":      "brand_primary_color",
		"secondary_color":    "brand_secondary_color",
		"logo_url":           "brand_logo_url",
		"signature_url":      "brand_signature_url",
		"font_url":           "brand_font_url",
		"signer_name":        "brand_signer_name",
		"currency":           "brand_currency",
		"footer_message":     "brand_footer_message",
		"show_terms":         "brand_show_terms",
		"show_payment_info":  "brand_show_payment_info",
		"show_notes":         "brand_show_notes",
		"quotation_template": "brand_quotation_template",
		"invoice_template":   "brand_invoice_template",
		"receipt_template":   "brand_receipt_template",
	})

	// Line blocks are whole-value jsonb replacements, not patches.
	if in.TermsLines != nil {
		blob, err := utils.JSONLines(in.TermsLines)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid terms_lines")
		}
		updates["brand_terms_lines"] = datatypes.JSON(blob)
	}
	if in.PaymentLines != nil {
		blob, err := utils.JSONLines(in.PaymentLines)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payment_lines")
		}
		updates["brand_payment_lines"] = datatypes.JSON(blob)
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&models.Company{}).Where("id = ?", company.Id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update brand settings")
		}
	}

	var out models.Company
	if err := database.DB.First(&out, "id = ?", company.Id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload brand settings")
	}
	return c.JSON(out.Brand)
}
