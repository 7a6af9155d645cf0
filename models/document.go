package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	KindQuotation = "quotation"
	KindInvoice   = "invoice"
	KindReceipt   = "receipt"
)

// Document is the current/live state of a commercial document.
type Document struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Kind     string   `json:"kind" gorm:"type:VARCHAR(20);not null;index"`
	Number   string   `json:"number" gorm:"unique"`
	CId      uint     `json:"-"`
	Customer Customer `json:"customer" gorm:"foreignKey:CId;references:Id"`

	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date"`

	// Free-text blocks printed on the document
	Narrative string `json:"narrative"`
	Notes     string `json:"notes"`

	// Live items (latest state)
	Items []DocumentItem `json:"items" gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`

	// Adjustments applied on top of the item subtotal
	Discount          float64 `json:"discount" gorm:"type:numeric(12,2)"`
	ExtraDiscountKind string  `json:"extra_discount_kind" gorm:"type:VARCHAR(10)"` // "percent" | "amount"
	ExtraDiscountVal  float64 `json:"extra_discount_value" gorm:"type:numeric(12,2)"`
	Shipping          float64 `json:"shipping" gorm:"type:numeric(12,2)"`
	TaxRate           float64 `json:"tax_rate"` // rate stays float
	TaxInclusive      bool    `json:"tax_inclusive"`
	DownPayment       float64 `json:"down_payment" gorm:"type:numeric(12,2)"`

	Subtotal float64 `json:"subtotal" gorm:"type:numeric(12,2)"`
	TaxTotal float64 `json:"tax_total" gorm:"type:numeric(12,2)"`
	Total    float64 `json:"total" gorm:"type:numeric(12,2)"`

	// State
	Draft       bool       `json:"draft"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`

	// Payments rollup
	PaidTotal float64 `json:"paid_total" gorm:"type:numeric(12,2)"`

	CreatedAt time.Time `json:"created_at"`
}

type DocumentItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	DocumentID  uint    `json:"-" gorm:"index"`                   // fast join
	ProductID   string  `json:"product_id" gorm:"not null;index"` // FK to products.id (see Product & migrator)
	Product     Product `json:"-" gorm:"foreignKey:ProductID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	NetPrice    float64 `json:"net_price" gorm:"type:numeric(12,2)"`
}

// Immutable snapshot
type DocumentVersion struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	DocumentID uint           `json:"document_id" gorm:"index:idx_document_versions_document_id_version_no,unique,priority:1"`
	VersionNo  int            `json:"version_no" gorm:"not null;index:idx_document_versions_document_id_version_no,unique,priority:2"`
	Kind       string         `json:"kind" gorm:"type:VARCHAR(20)"` // "quotation" | "invoice" | "receipt"
	Snapshot   datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Payment survives conversions; linked to document.
type Payment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	DocumentID uint      `json:"document_id" gorm:"index:idx_payments_document_paid_at,priority:1"`
	Amount     float64   `json:"amount" gorm:"type:numeric(12,2)"`
	Method     string    `json:"method"`
	Reference  string    `json:"reference"`
	Note       string    `json:"note"`
	PaidAt     time.Time `json:"paid_at" gorm:"index:idx_payments_document_paid_at,priority:2"`
	CreatedAt  time.Time `json:"created_at"`
}
