package core_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"stockroom/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed test DB
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE transactions, inventory_items, products, warehouses, profiles CASCADE;

		INSERT INTO profiles (id, email, full_name, role) VALUES
		(1, 'admin@test.local',   'Test Admin',   'admin'),
		(2, 'partner@test.local', 'Test Partner', 'partner');

		INSERT INTO warehouses (id, name, location, manager_id) VALUES
		(1, 'Main Warehouse', 'Industrial Estate', NULL),
		(2, 'East Depot',     'City Centre',       2);

		INSERT INTO products (id, sku, name, brand, category, retail_price, wholesale_price, cost_price) VALUES
		(1, 'TVD-109-16', 'TPU Gloss Roll',  'TopView', 'Film',     450.00, 380.00, 300.00),
		(2, 'GLX-220',    'Ceramic Coating', 'Galaxy',  'Coatings', 120.00,  95.00,  70.00),
		(3, 'ACC-SQG-01', 'Squeegee Kit',    NULL,      'Tools',    NULL,   NULL,   NULL);

		INSERT INTO inventory_items (warehouse_id, product_id, quantity_on_hand) VALUES
		(1, 1, 10),
		(1, 2, 40),
		(2, 2, 4);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func adminUser() core.UserContext {
	return core.UserContext{UserID: 1, Email: "admin@test.local", Role: core.RoleAdmin}
}

func partnerUser() core.UserContext {
	managed := 2
	return core.UserContext{UserID: 2, Email: "partner@test.local", Role: core.RolePartner, WarehouseID: &managed}
}

func onHand(t *testing.T, pool *pgxpool.Pool, warehouseID, productID int) int {
	t.Helper()
	var qty int
	err := pool.QueryRow(context.Background(),
		"SELECT quantity_on_hand FROM inventory_items WHERE warehouse_id = $1 AND product_id = $2",
		warehouseID, productID).Scan(&qty)
	if err != nil {
		t.Fatalf("Failed to read ledger row (%d, %d): %v", warehouseID, productID, err)
	}
	return qty
}

func TestRecordSale_DecrementsStockAndLogs(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	res, err := stock.RecordSale(ctx, adminUser(), core.SaleInput{
		WarehouseID: 1, ProductID: 1, Quantity: 3, Note: "walk-in sale",
	})
	if err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}

	if res.NewQuantity != 7 {
		t.Errorf("Expected new quantity 7, got %d", res.NewQuantity)
	}
	if res.ProductName != "TPU Gloss Roll" {
		t.Errorf("Expected product name in result, got %q", res.ProductName)
	}
	// No explicit price given, so the retail tier applies.
	if !res.UnitPrice.Valid || !res.UnitPrice.Decimal.Equal(decimal.NewFromInt(450)) {
		t.Errorf("Expected effective price 450, got %v", res.UnitPrice)
	}
	if got := onHand(t, pool, 1, 1); got != 7 {
		t.Errorf("Expected ledger row at 7, got %d", got)
	}

	var txType string
	var fromWH, toWH, createdBy *int
	var price decimal.NullDecimal
	err = pool.QueryRow(ctx, `
		SELECT transaction_type, from_warehouse_id, to_warehouse_id, unit_price, created_by
		FROM transactions WHERE id = $1
	`, res.TransactionID).Scan(&txType, &fromWH, &toWH, &price, &createdBy)
	if err != nil {
		t.Fatalf("Failed to load audit row: %v", err)
	}
	if txType != "SALE" {
		t.Errorf("Expected SALE audit row, got %s", txType)
	}
	if fromWH == nil || *fromWH != 1 || toWH != nil {
		t.Errorf("Expected from_warehouse_id=1 and no destination, got from=%v to=%v", fromWH, toWH)
	}
	if !price.Valid || !price.Decimal.Equal(decimal.NewFromInt(450)) {
		t.Errorf("Expected recorded price 450, got %v", price)
	}
	if createdBy == nil || *createdBy != 1 {
		t.Errorf("Expected created_by=1, got %v", createdBy)
	}
}

func TestRecordSale_RejectsSaleBelowCost(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	// Product 1 costs 300.00; selling at 250.00 must be rejected.
	price := decimal.NewFromInt(250)
	_, err := stock.RecordSale(ctx, adminUser(), core.SaleInput{
		WarehouseID: 1, ProductID: 1, Quantity: 1, UnitPrice: &price,
	})
	if err == nil {
		t.Fatal("Expected below-cost sale to fail")
	}
	if !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected a validation error, got %v", err)
	}

	if got := onHand(t, pool, 1, 1); got != 10 {
		t.Errorf("Expected stock untouched at 10, got %d", got)
	}
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM transactions WHERE transaction_type = 'SALE'").Scan(&count); err != nil {
		t.Fatalf("Failed to count audit rows: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no SALE audit rows after rejection, got %d", count)
	}
}

func TestRecordSale_InsufficientStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	_, err := stock.RecordSale(ctx, adminUser(), core.SaleInput{
		WarehouseID: 1, ProductID: 1, Quantity: 11,
	})
	if err == nil {
		t.Fatal("Expected oversell to fail")
	}
	if !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected a validation error, got %v", err)
	}
	if err.Error() != "insufficient stock: available 10, requested 11" {
		t.Errorf("Unexpected error message: %v", err)
	}
	if got := onHand(t, pool, 1, 1); got != 10 {
		t.Errorf("Expected stock untouched at 10, got %d", got)
	}
}

func TestRecordSale_UnstockedProduct(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	// Product 3 has never been stocked in warehouse 2.
	_, err := stock.RecordSale(ctx, adminUser(), core.SaleInput{
		WarehouseID: 2, ProductID: 3, Quantity: 1,
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected a validation error for an unstocked product, got %v", err)
	}
}

func TestRecordSale_PartnerScope(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	// 1. A partner may not sell from a warehouse they do not manage.
	_, err := stock.RecordSale(ctx, partnerUser(), core.SaleInput{
		WarehouseID: 1, ProductID: 1, Quantity: 1,
	})
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("Expected a forbidden error for a foreign warehouse, got %v", err)
	}

	// 2. Selling from their own warehouse works.
	res, err := stock.RecordSale(ctx, partnerUser(), core.SaleInput{
		WarehouseID: 2, ProductID: 2, Quantity: 1,
	})
	if err != nil {
		t.Fatalf("RecordSale from own warehouse failed: %v", err)
	}
	if res.NewQuantity != 3 {
		t.Errorf("Expected new quantity 3, got %d", res.NewQuantity)
	}
}

func TestRecordPurchase_CreatesLedgerRowOnFirstReceipt(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()
	admin := adminUser()

	// Warehouse 2 has never stocked product 1; the first receipt creates the row.
	res, err := stock.RecordPurchase(ctx, &admin, core.PurchaseInput{
		WarehouseID: 2, ProductID: 1, Quantity: 20,
	})
	if err != nil {
		t.Fatalf("RecordPurchase failed: %v", err)
	}
	if res.NewQuantity != 20 {
		t.Errorf("Expected fresh ledger row at 20, got %d", res.NewQuantity)
	}
	// No explicit cost given, so the catalog cost tier applies.
	if !res.UnitPrice.Valid || !res.UnitPrice.Decimal.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected effective cost 300, got %v", res.UnitPrice)
	}

	// A second receipt increments the same row.
	res, err = stock.RecordPurchase(ctx, &admin, core.PurchaseInput{
		WarehouseID: 2, ProductID: 1, Quantity: 5,
	})
	if err != nil {
		t.Fatalf("Second RecordPurchase failed: %v", err)
	}
	if res.NewQuantity != 25 {
		t.Errorf("Expected incremented ledger row at 25, got %d", res.NewQuantity)
	}

	var rowCount int
	if err := pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM inventory_items WHERE warehouse_id = 2 AND product_id = 1").Scan(&rowCount); err != nil {
		t.Fatalf("Failed to count ledger rows: %v", err)
	}
	if rowCount != 1 {
		t.Errorf("Expected exactly one ledger row per pair, got %d", rowCount)
	}
}

func TestRecordPurchase_SystemImportHasNoActor(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	res, err := stock.RecordPurchase(ctx, nil, core.PurchaseInput{
		WarehouseID: 1, ProductID: 2, Quantity: 10, Note: "Purchase: January 31, 2026 - supplier delivery",
	})
	if err != nil {
		t.Fatalf("System RecordPurchase failed: %v", err)
	}

	var createdBy *int
	var note *string
	err = pool.QueryRow(ctx,
		"SELECT created_by, reference_note FROM transactions WHERE id = $1", res.TransactionID).Scan(&createdBy, &note)
	if err != nil {
		t.Fatalf("Failed to load audit row: %v", err)
	}
	if createdBy != nil {
		t.Errorf("Expected created_by NULL for a system import, got %v", *createdBy)
	}
	if note == nil || *note != "Purchase: January 31, 2026 - supplier delivery" {
		t.Errorf("Expected reference note preserved, got %v", note)
	}
}

func TestRecordPurchase_PartnerForbidden(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()
	partner := partnerUser()

	// Even for their own warehouse: receiving stock is an admin operation.
	_, err := stock.RecordPurchase(ctx, &partner, core.PurchaseInput{
		WarehouseID: 2, ProductID: 2, Quantity: 5,
	})
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("Expected a forbidden error, got %v", err)
	}
}

func TestTransfer_MovesStockBetweenWarehouses(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	res, err := stock.Transfer(ctx, adminUser(), core.TransferInput{
		FromWarehouseID: 1, ToWarehouseID: 2, ProductID: 1, Quantity: 5,
	})
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	if res.SourceQuantity != 5 {
		t.Errorf("Expected source at 5, got %d", res.SourceQuantity)
	}
	if res.DestinationQuantity != 5 {
		t.Errorf("Expected destination at 5, got %d", res.DestinationQuantity)
	}
	if res.TransferOutID == res.TransferInID {
		t.Error("Expected two distinct audit rows")
	}

	// Units are conserved across the move.
	var totalUnits int
	if err := pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(quantity_on_hand), 0) FROM inventory_items WHERE product_id = 1").Scan(&totalUnits); err != nil {
		t.Fatalf("Failed to sum product units: %v", err)
	}
	if totalUnits != 10 {
		t.Errorf("Expected 10 total units after transfer, got %d", totalUnits)
	}

	// Both legs carry the same from/to pair; only the type differs. The
	// default notes each name the other warehouse.
	for _, leg := range []struct {
		id       int
		wantType string
		wantNote string
	}{
		{res.TransferOutID, "TRANSFER_OUT", "Transfer to East Depot"},
		{res.TransferInID, "TRANSFER_IN", "Transfer from Main Warehouse"},
	} {
		var txType, note string
		var fromWH, toWH int
		err := pool.QueryRow(ctx, `
			SELECT transaction_type, from_warehouse_id, to_warehouse_id, reference_note
			FROM transactions WHERE id = $1
		`, leg.id).Scan(&txType, &fromWH, &toWH, &note)
		if err != nil {
			t.Fatalf("Failed to load audit row %d: %v", leg.id, err)
		}
		if txType != leg.wantType {
			t.Errorf("Expected %s, got %s", leg.wantType, txType)
		}
		if fromWH != 1 || toWH != 2 {
			t.Errorf("%s: expected warehouse pair (1, 2), got (%d, %d)", txType, fromWH, toWH)
		}
		if note != leg.wantNote {
			t.Errorf("%s: expected note %q, got %q", txType, leg.wantNote, note)
		}
	}
}

func TestTransfer_RejectsSameWarehouse(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	_, err := stock.Transfer(ctx, adminUser(), core.TransferInput{
		FromWarehouseID: 1, ToWarehouseID: 1, ProductID: 1, Quantity: 1,
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected a validation error for a same-warehouse transfer, got %v", err)
	}
}

func TestTransfer_InsufficientStockLeavesDestinationUntouched(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	_, err := stock.Transfer(ctx, adminUser(), core.TransferInput{
		FromWarehouseID: 1, ToWarehouseID: 2, ProductID: 1, Quantity: 11,
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("Expected a validation error for an overdraw, got %v", err)
	}

	if got := onHand(t, pool, 1, 1); got != 10 {
		t.Errorf("Expected source untouched at 10, got %d", got)
	}
	var count int
	if err := pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM inventory_items WHERE warehouse_id = 2 AND product_id = 1").Scan(&count); err != nil {
		t.Fatalf("Failed to count destination rows: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no destination ledger row after a failed transfer, got %d", count)
	}
}

func TestTransfer_PartnerForbidden(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	_, err := stock.Transfer(ctx, partnerUser(), core.TransferInput{
		FromWarehouseID: 2, ToWarehouseID: 1, ProductID: 2, Quantity: 1,
	})
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("Expected a forbidden error, got %v", err)
	}
}

func TestAdjust_AddsReconciliationStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	// Run as the reconcile tooling does, without an authenticated actor.
	res, err := stock.Adjust(ctx, nil, core.AdjustmentInput{
		WarehouseID: 2, ProductID: 2, Quantity: 3, Note: "Reconciliation: shelf count",
	})
	if err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if res.NewQuantity != 7 {
		t.Errorf("Expected new quantity 7, got %d", res.NewQuantity)
	}

	var txType string
	var toWH int
	var createdBy *int
	err = pool.QueryRow(ctx,
		"SELECT transaction_type, to_warehouse_id, created_by FROM transactions WHERE id = $1",
		res.TransactionID).Scan(&txType, &toWH, &createdBy)
	if err != nil {
		t.Fatalf("Failed to load audit row: %v", err)
	}
	if txType != "ADJUSTMENT" || toWH != 2 {
		t.Errorf("Expected ADJUSTMENT into warehouse 2, got %s into %d", txType, toWH)
	}
	if createdBy != nil {
		t.Errorf("Expected created_by NULL for a system correction, got %v", *createdBy)
	}
}

func TestMutation_RejectsBadInput(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	if _, err := stock.Adjust(ctx, nil, core.AdjustmentInput{
		WarehouseID: 1, ProductID: 1, Quantity: 0,
	}); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected a validation error for zero quantity, got %v", err)
	}

	if _, err := stock.Adjust(ctx, nil, core.AdjustmentInput{
		WarehouseID: 1, ProductID: 1, Quantity: 1, Note: strings.Repeat("x", 501),
	}); !errors.Is(err, core.ErrValidation) {
		t.Errorf("Expected a validation error for an oversized note, got %v", err)
	}

	if _, err := stock.RecordSale(ctx, adminUser(), core.SaleInput{
		WarehouseID: 99, ProductID: 1, Quantity: 1,
	}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Expected a not-found error for an unknown warehouse, got %v", err)
	}

	if _, err := stock.RecordSale(ctx, adminUser(), core.SaleInput{
		WarehouseID: 1, ProductID: 99, Quantity: 1,
	}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Expected a not-found error for an unknown product, got %v", err)
	}
}

func TestWarehouseInventory_PaginatesAndCounts(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	// Items sort by product name: Ceramic Coating before TPU Gloss Roll.
	page, err := stock.WarehouseInventory(ctx, adminUser(), core.InventoryQuery{
		WarehouseID: 1, Page: 2, PageSize: 1,
	})
	if err != nil {
		t.Fatalf("WarehouseInventory failed: %v", err)
	}
	if page.WarehouseName != "Main Warehouse" {
		t.Errorf("Expected warehouse name attached, got %q", page.WarehouseName)
	}
	if page.Total != 2 {
		t.Errorf("Expected total 2 across pages, got %d", page.Total)
	}
	if len(page.Items) != 1 || page.Items[0].SKU != "TVD-109-16" {
		t.Fatalf("Expected the second item by name on page 2, got %+v", page.Items)
	}

	// Out-of-range sizes collapse to the bounds.
	page, err = stock.WarehouseInventory(ctx, adminUser(), core.InventoryQuery{
		WarehouseID: 1, Page: 0, PageSize: 500,
	})
	if err != nil {
		t.Fatalf("WarehouseInventory failed: %v", err)
	}
	if page.Page != 1 || page.PageSize != core.MaxPageSize {
		t.Errorf("Expected page 1 with size %d, got page %d size %d", core.MaxPageSize, page.Page, page.PageSize)
	}
}

func TestWarehouseInventory_LowStockBoundary(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	// Exactly at the threshold is not low.
	if _, err := pool.Exec(ctx,
		"UPDATE inventory_items SET quantity_on_hand = 5 WHERE warehouse_id = 1 AND product_id = 2"); err != nil {
		t.Fatalf("Failed to stage quantity: %v", err)
	}
	page, err := stock.WarehouseInventory(ctx, adminUser(), core.InventoryQuery{WarehouseID: 1})
	if err != nil {
		t.Fatalf("WarehouseInventory failed: %v", err)
	}
	if page.LowStockCount != 0 {
		t.Errorf("Expected no low stock at quantity 5, got %d", page.LowStockCount)
	}

	// One below the threshold is.
	if _, err := pool.Exec(ctx,
		"UPDATE inventory_items SET quantity_on_hand = 4 WHERE warehouse_id = 1 AND product_id = 2"); err != nil {
		t.Fatalf("Failed to stage quantity: %v", err)
	}
	page, err = stock.WarehouseInventory(ctx, adminUser(), core.InventoryQuery{WarehouseID: 1})
	if err != nil {
		t.Fatalf("WarehouseInventory failed: %v", err)
	}
	if page.LowStockCount != 1 {
		t.Errorf("Expected one low stock item at quantity 4, got %d", page.LowStockCount)
	}
	for _, line := range page.Items {
		if line.ProductID == 2 && !line.LowStock {
			t.Error("Expected the quantity-4 line flagged as low stock")
		}
		if line.ProductID == 1 && line.LowStock {
			t.Error("Did not expect the quantity-10 line flagged as low stock")
		}
	}
}

func TestWarehouseInventory_SearchFilter(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	page, err := stock.WarehouseInventory(ctx, adminUser(), core.InventoryQuery{
		WarehouseID: 1, Search: "gloss",
	})
	if err != nil {
		t.Fatalf("WarehouseInventory failed: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("Expected one match for 'gloss', got total %d with %d items", page.Total, len(page.Items))
	}
	if page.Items[0].ProductName != "TPU Gloss Roll" {
		t.Errorf("Unexpected match: %q", page.Items[0].ProductName)
	}

	// Brand matches too and the search is case-insensitive.
	page, err = stock.WarehouseInventory(ctx, adminUser(), core.InventoryQuery{
		WarehouseID: 1, Search: "GALAXY",
	})
	if err != nil {
		t.Fatalf("WarehouseInventory failed: %v", err)
	}
	if page.Total != 1 || page.Items[0].SKU != "GLX-220" {
		t.Fatalf("Expected the Galaxy item, got %+v", page.Items)
	}
}

func TestWarehouseInventory_PartnerScope(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	_, err := stock.WarehouseInventory(ctx, partnerUser(), core.InventoryQuery{WarehouseID: 1})
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("Expected a forbidden error for a foreign warehouse, got %v", err)
	}

	page, err := stock.WarehouseInventory(ctx, partnerUser(), core.InventoryQuery{WarehouseID: 2})
	if err != nil {
		t.Fatalf("WarehouseInventory for own warehouse failed: %v", err)
	}
	if page.WarehouseName != "East Depot" {
		t.Errorf("Expected East Depot, got %q", page.WarehouseName)
	}
}

func TestInventorySummaries_RoleScoped(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	stock := core.NewStockService(pool)
	ctx := context.Background()

	summaries, err := stock.InventorySummaries(ctx, adminUser())
	if err != nil {
		t.Fatalf("InventorySummaries failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Expected both warehouses for an admin, got %d", len(summaries))
	}
	// Ordered by name: East Depot first.
	east, main := summaries[0], summaries[1]
	if east.WarehouseName != "East Depot" || main.WarehouseName != "Main Warehouse" {
		t.Fatalf("Unexpected ordering: %q, %q", east.WarehouseName, main.WarehouseName)
	}
	if east.ItemCount != 1 || east.TotalUnits != 4 || east.LowStockCount != 1 {
		t.Errorf("Unexpected East Depot summary: %+v", east)
	}
	if main.ItemCount != 2 || main.TotalUnits != 50 || main.LowStockCount != 0 {
		t.Errorf("Unexpected Main Warehouse summary: %+v", main)
	}

	summaries, err = stock.InventorySummaries(ctx, partnerUser())
	if err != nil {
		t.Fatalf("InventorySummaries for partner failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].WarehouseID != 2 {
		t.Fatalf("Expected only the managed warehouse for a partner, got %+v", summaries)
	}
}
