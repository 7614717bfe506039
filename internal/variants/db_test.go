package variant

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupVariantsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT,
  sku TEXT NOT NULL,
  price NUMERIC NOT NULL,
  compare_price NUMERIC,
  inventory_quantity INTEGER NOT NULL DEFAULT 0,
  track_inventory INTEGER NOT NULL DEFAULT 1,
  status TEXT NOT NULL DEFAULT 'active',
  vendor TEXT,
  product_type TEXT,
  tags TEXT,
  images TEXT,
  weight NUMERIC,
  weight_unit TEXT NOT NULL DEFAULT 'kg',
  requires_shipping INTEGER NOT NULL DEFAULT 1,
  seo_title TEXT,
  seo_description TEXT,
  seo_keywords TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	variants := `
CREATE TABLE IF NOT EXISTS product_variants (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL,
  title TEXT NOT NULL,
  sku TEXT NOT NULL,
  price NUMERIC NOT NULL,
  compare_price NUMERIC,
  inventory_quantity INTEGER NOT NULL DEFAULT 0,
  track_inventory INTEGER NOT NULL DEFAULT 1,
  inventory_policy TEXT NOT NULL DEFAULT 'deny',
  fulfillment_service TEXT NOT NULL DEFAULT 'manual',
  option1 TEXT NOT NULL,
  option2 TEXT,
  option3 TEXT,
  weight NUMERIC,
  weight_unit TEXT NOT NULL DEFAULT 'kg',
  barcode TEXT,
  images TEXT,
  requires_shipping INTEGER NOT NULL DEFAULT 1,
  taxable INTEGER NOT NULL DEFAULT 1,
  position INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(variants).Error)
	return db
}
