package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"belegwerk-backend/database"
	"belegwerk-backend/middlewares"
	"belegwerk-backend/models"
	"belegwerk-backend/render"
	"belegwerk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentItemDTO struct {
	ProductID   string  `json:"product_id" validate:"required"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

type DocumentCreateDTO struct {
	Kind              string            `json:"kind" validate:"required,oneof=quotation invoice receipt"`
	Number            string            `json:"number" validate:"required,min=1"`
	CustomerID        uint              `json:"customer_id" validate:"required"`
	IssueDate         *time.Time        `json:"issue_date"`
	DueDate           *time.Time        `json:"due_date"`
	Narrative         string            `json:"narrative"`
	Notes             string            `json:"notes"`
	Discount          float64           `json:"discount" validate:"gte=0"`
	ExtraDiscountKind string            `json:"extra_discount_kind" validate:"omitempty,oneof=percent amount"`
	ExtraDiscountVal  float64           `json:"extra_discount_value" validate:"gte=0"`
	Shipping          float64           `json:"shipping" validate:"gte=0"`
	TaxRate           float64           `json:"tax_rate" validate:"gte=0,lte=1"`
	TaxInclusive      bool              `json:"tax_inclusive"`
	DownPayment       float64           `json:"down_payment" validate:"gte=0"`
	Draft             bool              `json:"draft"`
	Items             []DocumentItemDTO `json:"items" validate:"required,min=1,dive"`
}

type DocumentUpdateDTO struct {
	Number            *string           `json:"number" validate:"omitempty,min=1"`
	CustomerID        *uint             `json:"customer_id"`
	IssueDate         *time.Time        `json:"issue_date"`
	DueDate           *time.Time        `json:"due_date"`
	Narrative         *string           `json:"narrative"`
	Notes             *string           `json:"notes"`
	Discount          *float64          `json:"discount" validate:"omitempty,gte=0"`
	ExtraDiscountKind *string           `json:"extra_discount_kind" validate:"omitempty,oneof=percent amount"`
	ExtraDiscountVal  *float64          `json:"extra_discount_value" validate:"omitempty,gte=0"`
	Shipping          *float64          `json:"shipping" validate:"omitempty,gte=0"`
	TaxRate           *float64          `json:"tax_rate" validate:"omitempty,gte=0,lte=1"`
	TaxInclusive      *bool             `json:"tax_inclusive"`
	DownPayment       *float64          `json:"down_payment" validate:"omitempty,gte=0"`
	Draft             *bool             `json:"draft"`
	Items             []DocumentItemDTO `json:"items" validate:"omitempty,min=1,dive"`
}

// documentAdjustments maps the stored adjustment columns to the shared
// totals computation.
func documentAdjustments(doc *models.Document) render.Adjustments {
	return render.Adjustments{
		Discount: doc.Discount,
		ExtraDiscount: render.ExtraDiscount{
			Kind:  render.ExtraDiscountKind(doc.ExtraDiscountKind),
			Value: doc.ExtraDiscountVal,
		},
		Shipping: doc.Shipping,
		Tax: render.TaxMode{
			Rate:      doc.TaxRate,
			Inclusive: doc.TaxInclusive,
		},
		DownPayment: doc.DownPayment,
	}
}

// recomputeTotals refreshes the denormalized money columns from the live
// items and adjustments.
func recomputeTotals(doc *models.Document) {
	items := make([]render.LineItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, render.LineItem{
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	bd := render.ComputeTotals(items, documentAdjustments(doc))
	doc.Subtotal = bd.Subtotal
	doc.TaxTotal = bd.Tax
	doc.Total = bd.TotalDue
}

func buildItems(dtos []DocumentItemDTO) []models.DocumentItem {
	items := make([]models.DocumentItem, 0, len(dtos))
	for _, in := range dtos {
		items = append(items, models.DocumentItem{
			ProductID:   strings.TrimSpace(in.ProductID),
			Description: strings.TrimSpace(in.Description),
			Quantity:    in.Quantity,
			Unit:        strings.TrimSpace(in.Unit),
			UnitPrice:   utils.Round2(in.UnitPrice),
			NetPrice:    utils.Round2(in.Quantity * in.UnitPrice),
		})
	}
	return items
}

// snapshotDocument stores the document's current state as an immutable
// version row inside tx.
func snapshotDocument(tx *gorm.DB, doc *models.Document) error {
	var lastNo int
	row := tx.Model(&models.DocumentVersion{}).
		Where("document_id = ?", doc.ID).
		Select("COALESCE(MAX(version_no), 0)")
	if err := row.Scan(&lastNo).Error; err != nil {
		return err
	}

	blob, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	version := models.DocumentVersion{
		DocumentID: doc.ID,
		VersionNo:  lastNo + 1,
		Kind:       doc.Kind,
		Snapshot:   datatypes.JSON(blob),
	}
	return tx.Create(&version).Error
}

func loadDocument(id string) (*models.Document, error) {
	var doc models.Document
	err := database.DB.Preload("Items").Preload("Customer").First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "document not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return &doc, nil
}

// POST /api/document
func CreateDocument(c *fiber.Ctx) error {
	var in DocumentCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	issued := time.Now()
	if in.IssueDate != nil {
		issued = *in.IssueDate
	}

	doc := models.Document{
		Kind:              in.Kind,
		Number:            strings.TrimSpace(in.Number),
		CId:               in.CustomerID,
		IssueDate:         issued,
		DueDate:           in.DueDate,
		Narrative:         strings.TrimSpace(in.Narrative),
		Notes:             strings.TrimSpace(in.Notes),
		Discount:          utils.Round2(in.Discount),
		ExtraDiscountKind: in.ExtraDiscountKind,
		ExtraDiscountVal:  utils.Round2(in.ExtraDiscountVal),
		Shipping:          utils.Round2(in.Shipping),
		TaxRate:           in.TaxRate,
		TaxInclusive:      in.TaxInclusive,
		DownPayment:       utils.Round2(in.DownPayment),
		Draft:             in.Draft,
		Items:             buildItems(in.Items),
	}
	recomputeTotals(&doc)

	tx := database.DB.Begin()
	if err := tx.Create(&doc).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not create document", "error": err.Error()})
	}
	tx.Commit()

	return c.JSON(doc)
}

// GET /api/documents?kind=invoice
func GetDocuments(c *fiber.Ctx) error {
	q := database.DB.Model(&models.Document{}).Preload("Customer")
	if kind := strings.TrimSpace(c.Query("kind")); kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var docs []models.Document
	q.Order("created_at DESC").Find(&docs)
	return c.JSON(fiber.Map{
		"documents": docs,
		"message":   "success",
	})
}

// GET /api/document/:id
func GetDocument(c *fiber.Ctx) error {
	doc, err := loadDocument(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// PUT /api/documents/:id
func UpdateDocument(c *fiber.Ctx) error {
	doc, err := loadDocument(c.Params("id"))
	if err != nil {
		return err
	}
	if doc.Published {
		return fiber.NewError(fiber.StatusConflict, "published documents are immutable")
	}

	var in DocumentUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	updates := utils.UpdatesFromPtrDTO(&in, map[string]string{
		"customer_id":          "c_id",
		"extra_discount_value": "extra_discount_val",
	})

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Document{}).Where("id = ?", doc.ID).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "could not update document")
			}
		}

		if len(in.Items) > 0 {
			// Replace the live item set wholesale.
			if err := tx.Where("document_id = ?", doc.ID).Delete(&models.DocumentItem{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not replace items")
			}
			items := buildItems(in.Items)
			for i := range items {
				items[i].DocumentID = doc.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "could not replace items")
			}
		}

		// Reload and refresh the denormalized totals.
		var fresh models.Document
		if err := tx.Preload("Items").First(&fresh, "id = ?", doc.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to reload document")
		}
		recomputeTotals(&fresh)
		return tx.Model(&models.Document{}).Where("id = ?", doc.ID).Updates(map[string]any{
			"subtotal":  fresh.Subtotal,
			"tax_total": fresh.TaxTotal,
			"total":     fresh.Total,
		}).Error
	})
	if err != nil {
		return err
	}

	out, ferr := loadDocument(c.Params("id"))
	if ferr != nil {
		return ferr
	}
	return c.JSON(out)
}

// PUT /api/documents/:id/convert
// Moves a document forward in its lifecycle: quotation -> invoice -> receipt.
func ConvertDocument(c *fiber.Ctx) error {
	doc, err := loadDocument(c.Params("id"))
	if err != nil {
		return err
	}

	var next string
	switch doc.Kind {
	case models.KindQuotation:
		next = models.KindInvoice
	case models.KindInvoice:
		next = models.KindReceipt
	default:
		return fiber.NewError(fiber.StatusConflict, "receipt is a terminal document kind")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Snapshot the pre-conversion state first.
		if err := snapshotDocument(tx, doc); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not snapshot document")
		}
		return tx.Model(&models.Document{}).Where("id = ?", doc.ID).Updates(map[string]any{
			"kind":         next,
			"published":    false,
			"published_at": nil,
			"draft":        true,
		}).Error
	})
	if err != nil {
		return err
	}

	out, ferr := loadDocument(c.Params("id"))
	if ferr != nil {
		return ferr
	}
	return c.JSON(out)
}

// PUT /api/documents/:id/publish
func PublishDocument(c *fiber.Ctx) error {
	doc, err := loadDocument(c.Params("id"))
	if err != nil {
		return err
	}
	if doc.Published {
		return c.JSON(doc) // already published, nothing to do
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		doc.Published = true
		doc.PublishedAt = &now
		doc.Draft = false

		if err := snapshotDocument(tx, doc); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not snapshot document")
		}
		return tx.Model(&models.Document{}).Where("id = ?", doc.ID).Updates(map[string]any{
			"published":    true,
			"published_at": &now,
			"draft":        false,
		}).Error
	})
	if err != nil {
		return err
	}

	out, ferr := loadDocument(c.Params("id"))
	if ferr != nil {
		return ferr
	}
	return c.JSON(out)
}

// GET /api/documents/:id/versions
func GetDocumentVersions(c *fiber.Ctx) error {
	doc, err := loadDocument(c.Params("id"))
	if err != nil {
		return err
	}

	var versions []models.DocumentVersion
	database.DB.Where("document_id = ?", doc.ID).Order("version_no ASC").Find(&versions)
	return c.JSON(fiber.Map{
		"versions": versions,
		"message":  "success",
	})
}

type PaymentCreateDTO struct {
	Amount    float64    `json:"amount" validate:"required,gt=0"`
	Method    string     `json:"method" validate:"omitempty"`
	Reference string     `json:"reference" validate:"omitempty"`
	Note      string     `json:"note" validate:"omitempty"`
	PaidAt    *time.Time `json:"paid_at"`
}

// POST /api/documents/:id/payments
func CreatePayment(c *fiber.Ctx) error {
	doc, err := loadDocument(c.Params("id"))
	if err != nil {
		return err
	}

	var in PaymentCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	paidAt := time.Now().UTC()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}

	payment := models.Payment{
		DocumentID: doc.ID,
		Amount:     utils.Round2(in.Amount),
		Method:     in.Method,
		Reference:  in.Reference,
		Note:       in.Note,
		PaidAt:     paidAt,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not record payment")
		}

		// Refresh the rollup from the source of truth.
		var paid float64
		row := tx.Model(&models.Payment{}).
			Where("document_id = ?", doc.ID).
			Select("COALESCE(SUM(amount), 0)")
		if err := row.Scan(&paid).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update paid total")
		}
		return tx.Model(&models.Document{}).Where("id = ?", doc.ID).
			Update("paid_total", utils.Round2(paid)).Error
	})
	if err != nil {
		return err
	}

	return c.Status(201).JSON(payment)
}

// GET /api/documents/:id/payments
func ListPayments(c *fiber.Ctx) error {
	doc, err := loadDocument(c.Params("id"))
	if err != nil {
		return err
	}

	var payments []models.Payment
	database.DB.Where("document_id = ?", doc.ID).Order("paid_at ASC").Find(&payments)
	return c.JSON(fiber.Map{
		"payments":   payments,
		"paid_total": doc.PaidTotal,
		"message":    "success",
	})
}
