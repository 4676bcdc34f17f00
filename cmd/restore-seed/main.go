// restore-seed is a one-shot tool to restore the reference data the service
// expects: the admin and partner profiles, the two warehouses and the product
// catalog. Run it after a fresh migration or when the catalog has been
// accidentally wiped. It never touches existing transactions; starting stock
// is seeded only for ledger rows that do not exist yet, with a matching
// ADJUSTMENT so the audit tooling stays clean.
//
// Usage: go run ./cmd/restore-seed
package main

import (
	"context"
	"log"
	"os"

	"stockroom/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, url)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Restoring profiles...")
	_, err = tx.Exec(ctx, `
		INSERT INTO profiles (email, full_name, role)
		VALUES
		  ('admin@stockroom.local',   'Site Admin',       'admin'),
		  ('partner@stockroom.local', 'Showroom Partner', 'partner')
		ON CONFLICT (email) DO UPDATE
		  SET full_name = EXCLUDED.full_name,
		      role = EXCLUDED.role;
	`)
	if err != nil {
		log.Fatalf("Failed to restore profiles: %v", err)
	}

	log.Println("Restoring warehouses...")
	_, err = tx.Exec(ctx, `
		INSERT INTO warehouses (name, location, manager_id)
		VALUES ('Main Warehouse', 'Industrial Estate', NULL)
		ON CONFLICT (name) DO UPDATE
		  SET location = EXCLUDED.location;

		INSERT INTO warehouses (name, location, manager_id)
		SELECT 'Showroom', 'City Centre', p.id
		FROM profiles p
		WHERE p.email = 'partner@stockroom.local'
		ON CONFLICT (name) DO UPDATE
		  SET location = EXCLUDED.location,
		      manager_id = EXCLUDED.manager_id;
	`)
	if err != nil {
		log.Fatalf("Failed to restore warehouses: %v", err)
	}

	log.Println("Restoring product catalog...")
	_, err = tx.Exec(ctx, `
		INSERT INTO products (sku, name, brand, category, retail_price, wholesale_price, cost_price)
		VALUES
		  ('TVD-109-16', 'TopView TPU Gloss Roll 16m',   'TopView',   'Paint Protection Film', 450.00, 380.00, 300.00),
		  ('TVD-104-16', 'TopView TPU Matte Roll 16m',   'TopView',   'Paint Protection Film', 480.00, 410.00, 330.00),
		  ('GLX-220',    'Galaxy Ceramic Coating 220ml', 'Galaxy',    'Coatings',              120.00,  95.00,  70.00),
		  ('GLX-110',    'Galaxy Ceramic Coating 110ml', 'Galaxy',    'Coatings',               75.00,  60.00,  45.00),
		  ('NAM-TE380',  'Nano Armor Thermal Film 380',  'NanoArmor', 'Window Film',           210.00, 175.00, 140.00),
		  ('ACC-SQG-01', 'Pro Squeegee Kit',             NULL,        'Accessories',            25.00,  18.00,  12.00)
		ON CONFLICT (sku) DO UPDATE
		  SET name = EXCLUDED.name,
		      brand = EXCLUDED.brand,
		      category = EXCLUDED.category,
		      retail_price = EXCLUDED.retail_price,
		      wholesale_price = EXCLUDED.wholesale_price,
		      cost_price = EXCLUDED.cost_price;
	`)
	if err != nil {
		log.Fatalf("Failed to restore product catalog: %v", err)
	}

	log.Println("Seeding starting stock...")
	_, err = tx.Exec(ctx, `
		WITH seeded AS (
			INSERT INTO inventory_items (warehouse_id, product_id, quantity_on_hand)
			SELECT w.id, p.id, s.qty
			FROM (VALUES
			    ('Main Warehouse', 'TVD-109-16', 24),
			    ('Main Warehouse', 'TVD-104-16', 12),
			    ('Main Warehouse', 'GLX-220',    40),
			    ('Main Warehouse', 'GLX-110',     3),
			    ('Main Warehouse', 'NAM-TE380',   8),
			    ('Showroom',       'GLX-220',     6),
			    ('Showroom',       'ACC-SQG-01',  2)
			) AS s(warehouse, sku, qty)
			JOIN warehouses w ON w.name = s.warehouse
			JOIN products p ON p.sku = s.sku
			ON CONFLICT (warehouse_id, product_id) DO NOTHING
			RETURNING warehouse_id, product_id, quantity_on_hand
		)
		INSERT INTO transactions (transaction_type, product_id, to_warehouse_id, quantity, reference_note)
		SELECT 'ADJUSTMENT', product_id, warehouse_id, quantity_on_hand, 'Initial stock count'
		FROM seeded
		WHERE quantity_on_hand > 0;
	`)
	if err != nil {
		log.Fatalf("Failed to seed starting stock: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("✅ Seed data restored successfully.")
	os.Exit(0)
}
