package database

import (
	"fmt"

	"belegwerk-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Indexes (versions, payments, document_items)
// - Foreign key: document_items.product_id → products.id
// - Basic CHECK constraints
// - Idempotency keys table + unique index
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Company{},
			&models.Product{},
			&models.Customer{},
			&models.Supplier{},
			&models.Document{},
			&models.DocumentItem{},
			&models.DocumentVersion{},
			&models.Payment{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE products        ALTER COLUMN unit_price   TYPE numeric(12,2)`,
			`ALTER TABLE documents       ALTER COLUMN subtotal     TYPE numeric(12,2)`,
			`ALTER TABLE documents       ALTER COLUMN tax_total    TYPE numeric(12,2)`,
			`ALTER TABLE documents       ALTER COLUMN total        TYPE numeric(12,2)`,
			`ALTER TABLE documents       ALTER COLUMN paid_total   TYPE numeric(12,2)`,
			`ALTER TABLE documents       ALTER COLUMN discount     TYPE numeric(12,2)`,
			`ALTER TABLE documents       ALTER COLUMN shipping     TYPE numeric(12,2)`,
			`ALTER TABLE documents       ALTER COLUMN down_payment TYPE numeric(12,2)`,
			`ALTER TABLE document_items  ALTER COLUMN unit_price   TYPE numeric(12,2)`,
			`ALTER TABLE document_items  ALTER COLUMN net_price    TYPE numeric(12,2)`,
			`ALTER TABLE payments        ALTER COLUMN amount       TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_document_versions_document_id_version_no ON document_versions (document_id, version_no)`,
			`CREATE INDEX IF NOT EXISTS idx_payments_document_paid_at ON payments (document_id, paid_at)`,
			`CREATE INDEX IF NOT EXISTS idx_document_items_document ON document_items (document_id)`,
			`CREATE INDEX IF NOT EXISTS idx_document_items_product ON document_items (product_id)`,
			`CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents (kind)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Foreign key: document_items.product_id -> products.id (RESTRICT/RESTRICT) ---
		fk := `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = 'document_items'::regclass
		  AND conname  = 'fk_document_items_product'
	) THEN
		ALTER TABLE document_items
		ADD CONSTRAINT fk_document_items_product
		FOREIGN KEY (product_id)
		REFERENCES products(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`
		if err := tx.Exec(fk).Error; err != nil {
			return fmt.Errorf("foreign key migration failed: %w", err)
		}

		// --- NOT NULL for document_items.product_id (idempotent) ---
		if err := tx.Exec(`ALTER TABLE document_items ALTER COLUMN product_id SET NOT NULL`).Error; err != nil {
			return fmt.Errorf("set NOT NULL on document_items.product_id failed: %w", err)
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Non-negative product price
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'products'::regclass
					  AND conname  = 'chk_products_unit_price_nonneg'
				) THEN
					ALTER TABLE products
					ADD CONSTRAINT chk_products_unit_price_nonneg
					CHECK (unit_price >= 0);
				END IF;
			END $$;`,
			// Payments.amount >= 0
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payments'::regclass
					  AND conname  = 'chk_payments_amount_nonneg'
				) THEN
					ALTER TABLE payments
					ADD CONSTRAINT chk_payments_amount_nonneg
					CHECK (amount >= 0);
				END IF;
			END $$;`,
			// Document items: quantity >= 0
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'document_items'::regclass
					  AND conname  = 'chk_document_items_quantity_nonneg'
				) THEN
					ALTER TABLE document_items
					ADD CONSTRAINT chk_document_items_quantity_nonneg
					CHECK (quantity >= 0);
				END IF;
			END $$;`,
			// Documents: kind is one of the known values
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'documents'::regclass
					  AND conname  = 'chk_documents_kind'
				) THEN
					ALTER TABLE documents
					ADD CONSTRAINT chk_documents_kind
					CHECK (kind IN ('quotation','invoice','receipt'));
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
