package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// StockService executes every mutation against the stock ledger and serves
// the ledger read views. Each mutation runs in a single database
// transaction: access and business-rule checks happen before any write, and
// the ledger update plus the audit-log append commit together or not at all.
type StockService interface {
	// RecordSale decrements stock and appends a SALE transaction. Partners
	// may only sell from their own warehouse. The effective unit price falls
	// back to the product's retail price and must never be below its cost
	// price when both are known.
	RecordSale(ctx context.Context, user UserContext, in SaleInput) (*MutationResult, error)

	// RecordPurchase receives stock and appends a RESTOCK transaction,
	// creating the ledger row on the first receipt for a (warehouse,
	// product) pair. A nil user marks a system-run import; authenticated
	// callers must be admins.
	RecordPurchase(ctx context.Context, user *UserContext, in PurchaseInput) (*MutationResult, error)

	// Transfer moves stock between two warehouses: one decrement, one
	// increment and two audit rows, all in one transaction. Admin only.
	Transfer(ctx context.Context, user UserContext, in TransferInput) (*TransferResult, error)

	// Adjust adds reconciliation stock and appends an ADJUSTMENT
	// transaction. A nil user marks a system-run correction (offline
	// import/reconcile tooling); authenticated callers must be admins.
	Adjust(ctx context.Context, user *UserContext, in AdjustmentInput) (*MutationResult, error)

	// WarehouseInventory lists one warehouse's ledger rows with product
	// display data, paginated and optionally filtered by a search term.
	WarehouseInventory(ctx context.Context, user UserContext, q InventoryQuery) (*InventoryPage, error)

	// InventorySummaries aggregates the ledger per warehouse, restricted to
	// the warehouses the caller may see.
	InventorySummaries(ctx context.Context, user UserContext) ([]WarehouseSummary, error)
}

type stockService struct {
	pool *pgxpool.Pool
}

func NewStockService(pool *pgxpool.Pool) StockService {
	return &stockService{pool: pool}
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so the resolve
// helpers work inside and outside a transaction.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func resolveWarehouse(ctx context.Context, q pgxQuerier, id int) (*Warehouse, error) {
	var w Warehouse
	err := q.QueryRow(ctx, `
		SELECT id, name, location, manager_id, created_at
		FROM warehouses
		WHERE id = $1
	`, id).Scan(&w.ID, &w.Name, &w.Location, &w.ManagerID, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("warehouse %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve warehouse %d: %w", id, err)
	}
	return &w, nil
}

func resolveProduct(ctx context.Context, q pgxQuerier, id int) (*Product, error) {
	var p Product
	err := q.QueryRow(ctx, `
		SELECT id, sku, name, brand, category, image_url,
		       retail_price, wholesale_price, cost_price
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.SKU, &p.Name, &p.Brand, &p.Category, &p.ImageURL,
		&p.RetailPrice, &p.WholesalePrice, &p.CostPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("product %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product %d: %w", id, err)
	}
	return &p, nil
}

// txnRecord is one row to append to the audit log.
type txnRecord struct {
	Type            TransactionType
	ProductID       int
	FromWarehouseID *int
	ToWarehouseID   *int
	Quantity        int
	UnitPrice       decimal.NullDecimal
	Note            *string
	CreatedBy       *int
}

func appendTransaction(ctx context.Context, tx pgx.Tx, rec txnRecord) (int, error) {
	var id int
	err := tx.QueryRow(ctx, `
		INSERT INTO transactions
			(transaction_type, product_id, from_warehouse_id, to_warehouse_id,
			 quantity, unit_price, reference_note, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, rec.Type, rec.ProductID, rec.FromWarehouseID, rec.ToWarehouseID,
		rec.Quantity, rec.UnitPrice, rec.Note, rec.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to append %s transaction: %w", rec.Type, err)
	}
	return id, nil
}

// upsertDelta adds qty to the (warehouse, product) ledger row, creating the
// row at qty on its first stock event. One statement, so lazy creation and
// increment share the same race-free path.
func upsertDelta(ctx context.Context, tx pgx.Tx, warehouseID, productID, qty int) (int, error) {
	var newQty int
	err := tx.QueryRow(ctx, `
		INSERT INTO inventory_items (warehouse_id, product_id, quantity_on_hand)
		VALUES ($1, $2, $3)
		ON CONFLICT (warehouse_id, product_id) DO UPDATE
		SET quantity_on_hand = inventory_items.quantity_on_hand + EXCLUDED.quantity_on_hand,
		    updated_at = NOW()
		RETURNING quantity_on_hand
	`, warehouseID, productID, qty).Scan(&newQty)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert ledger row: %w", err)
	}
	return newQty, nil
}

// lockLedgerRow locks the (warehouse, product) row for update and returns its
// id and current quantity. Returns pgx.ErrNoRows unchanged when the pair has
// never held stock, so callers can attach their own message.
func lockLedgerRow(ctx context.Context, tx pgx.Tx, warehouseID, productID int) (itemID, onHand int, err error) {
	err = tx.QueryRow(ctx, `
		SELECT id, quantity_on_hand
		FROM inventory_items
		WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE
	`, warehouseID, productID).Scan(&itemID, &onHand)
	return itemID, onHand, err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func validateNote(note string) error {
	if len(note) > MaxNoteLength {
		return Validationf("reference note exceeds %d characters", MaxNoteLength)
	}
	return nil
}

// ── Mutation operations ───────────────────────────────────────────────────────

func (s *stockService) RecordSale(ctx context.Context, user UserContext, in SaleInput) (*MutationResult, error) {
	if in.Quantity <= 0 {
		return nil, Validationf("quantity must be positive, got %d", in.Quantity)
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, Validationf("unit price cannot be negative, got %s", in.UnitPrice)
	}
	if err := validateNote(in.Note); err != nil {
		return nil, err
	}
	if !user.CanAccess(in.WarehouseID) {
		return nil, Forbiddenf("you can only record sales for your own warehouse")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := resolveWarehouse(ctx, tx, in.WarehouseID); err != nil {
		return nil, err
	}
	product, err := resolveProduct(ctx, tx, in.ProductID)
	if err != nil {
		return nil, err
	}

	// Effective price: the explicit price wins, otherwise the retail tier.
	// Both may be absent, in which case the sale is recorded without one.
	price := decimal.NullDecimal{}
	if in.UnitPrice != nil {
		price = decimal.NullDecimal{Decimal: *in.UnitPrice, Valid: true}
	} else if product.RetailPrice.Valid {
		price = product.RetailPrice
	}

	// Margin floor: never sell below cost when both sides are known.
	if price.Valid && product.CostPrice.Valid && price.Decimal.LessThan(product.CostPrice.Decimal) {
		return nil, Validationf("sale price %s cannot be below cost %s",
			price.Decimal.StringFixed(2), product.CostPrice.Decimal.StringFixed(2))
	}

	itemID, onHand, err := lockLedgerRow(ctx, tx, in.WarehouseID, in.ProductID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, Validationf("product not stocked in this warehouse")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock ledger row: %w", err)
	}

	if onHand < in.Quantity {
		return nil, Validationf("insufficient stock: available %d, requested %d", onHand, in.Quantity)
	}

	newQty := onHand - in.Quantity
	if _, err := tx.Exec(ctx, `
		UPDATE inventory_items
		SET quantity_on_hand = $1, updated_at = NOW()
		WHERE id = $2
	`, newQty, itemID); err != nil {
		return nil, fmt.Errorf("failed to update ledger row: %w", err)
	}

	txnID, err := appendTransaction(ctx, tx, txnRecord{
		Type:            TransactionSale,
		ProductID:       in.ProductID,
		FromWarehouseID: &in.WarehouseID,
		Quantity:        in.Quantity,
		UnitPrice:       price,
		Note:            nullIfEmpty(in.Note),
		CreatedBy:       &user.UserID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	return &MutationResult{TransactionID: txnID, ProductName: product.Name, NewQuantity: newQty, UnitPrice: price}, nil
}

func (s *stockService) RecordPurchase(ctx context.Context, user *UserContext, in PurchaseInput) (*MutationResult, error) {
	if user != nil && !user.IsAdmin() {
		return nil, Forbiddenf("only admins can record purchases")
	}
	if in.Quantity <= 0 {
		return nil, Validationf("quantity must be positive, got %d", in.Quantity)
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, Validationf("unit cost cannot be negative, got %s", in.UnitCost)
	}
	if err := validateNote(in.Note); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := resolveWarehouse(ctx, tx, in.WarehouseID); err != nil {
		return nil, err
	}
	product, err := resolveProduct(ctx, tx, in.ProductID)
	if err != nil {
		return nil, err
	}

	// Effective cost: explicit cost wins, otherwise the catalog cost tier.
	// No margin rule applies to incoming stock.
	cost := decimal.NullDecimal{}
	if in.UnitCost != nil {
		cost = decimal.NullDecimal{Decimal: *in.UnitCost, Valid: true}
	} else if product.CostPrice.Valid {
		cost = product.CostPrice
	}

	newQty, err := upsertDelta(ctx, tx, in.WarehouseID, in.ProductID, in.Quantity)
	if err != nil {
		return nil, err
	}

	var createdBy *int
	if user != nil {
		createdBy = &user.UserID
	}
	txnID, err := appendTransaction(ctx, tx, txnRecord{
		Type:          TransactionRestock,
		ProductID:     in.ProductID,
		ToWarehouseID: &in.WarehouseID,
		Quantity:      in.Quantity,
		UnitPrice:     cost,
		Note:          nullIfEmpty(in.Note),
		CreatedBy:     createdBy,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	return &MutationResult{TransactionID: txnID, ProductName: product.Name, NewQuantity: newQty, UnitPrice: cost}, nil
}

func (s *stockService) Transfer(ctx context.Context, user UserContext, in TransferInput) (*TransferResult, error) {
	if err := user.RequireAdmin(); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, Validationf("quantity must be positive, got %d", in.Quantity)
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, Validationf("source and destination warehouses must differ")
	}
	if err := validateNote(in.Note); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	source, err := resolveWarehouse(ctx, tx, in.FromWarehouseID)
	if errors.Is(err, ErrNotFound) {
		return nil, NotFoundf("source warehouse not found")
	}
	if err != nil {
		return nil, err
	}
	dest, err := resolveWarehouse(ctx, tx, in.ToWarehouseID)
	if errors.Is(err, ErrNotFound) {
		return nil, NotFoundf("destination warehouse not found")
	}
	if err != nil {
		return nil, err
	}
	if _, err := resolveProduct(ctx, tx, in.ProductID); err != nil {
		return nil, err
	}

	itemID, onHand, err := lockLedgerRow(ctx, tx, in.FromWarehouseID, in.ProductID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, Validationf("product not stocked in source warehouse")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock source ledger row: %w", err)
	}

	if onHand < in.Quantity {
		return nil, Validationf("insufficient stock: available %d, requested %d", onHand, in.Quantity)
	}

	sourceQty := onHand - in.Quantity
	if _, err := tx.Exec(ctx, `
		UPDATE inventory_items
		SET quantity_on_hand = $1, updated_at = NOW()
		WHERE id = $2
	`, sourceQty, itemID); err != nil {
		return nil, fmt.Errorf("failed to update source ledger row: %w", err)
	}

	destQty, err := upsertDelta(ctx, tx, in.ToWarehouseID, in.ProductID, in.Quantity)
	if err != nil {
		return nil, err
	}

	// Both audit rows document the same physical movement and carry the same
	// from/to pair; only the type tells the two ledger effects apart. The
	// default notes are deliberately asymmetric, each leg naming the other
	// warehouse.
	outNote := in.Note
	if outNote == "" {
		outNote = fmt.Sprintf("Transfer to %s", dest.Name)
	}
	inNote := in.Note
	if inNote == "" {
		inNote = fmt.Sprintf("Transfer from %s", source.Name)
	}

	outID, err := appendTransaction(ctx, tx, txnRecord{
		Type:            TransactionTransferOut,
		ProductID:       in.ProductID,
		FromWarehouseID: &in.FromWarehouseID,
		ToWarehouseID:   &in.ToWarehouseID,
		Quantity:        in.Quantity,
		Note:            &outNote,
		CreatedBy:       &user.UserID,
	})
	if err != nil {
		return nil, err
	}
	inID, err := appendTransaction(ctx, tx, txnRecord{
		Type:            TransactionTransferIn,
		ProductID:       in.ProductID,
		FromWarehouseID: &in.FromWarehouseID,
		ToWarehouseID:   &in.ToWarehouseID,
		Quantity:        in.Quantity,
		Note:            &inNote,
		CreatedBy:       &user.UserID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}

	return &TransferResult{
		TransferOutID:       outID,
		TransferInID:        inID,
		SourceQuantity:      sourceQty,
		DestinationQuantity: destQty,
	}, nil
}

func (s *stockService) Adjust(ctx context.Context, user *UserContext, in AdjustmentInput) (*MutationResult, error) {
	if user != nil && !user.IsAdmin() {
		return nil, Forbiddenf("only admins can adjust stock")
	}
	if in.Quantity <= 0 {
		return nil, Validationf("adjustment quantity must be positive, got %d", in.Quantity)
	}
	if err := validateNote(in.Note); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := resolveWarehouse(ctx, tx, in.WarehouseID); err != nil {
		return nil, err
	}
	product, err := resolveProduct(ctx, tx, in.ProductID)
	if err != nil {
		return nil, err
	}

	newQty, err := upsertDelta(ctx, tx, in.WarehouseID, in.ProductID, in.Quantity)
	if err != nil {
		return nil, err
	}

	var createdBy *int
	if user != nil {
		createdBy = &user.UserID
	}
	txnID, err := appendTransaction(ctx, tx, txnRecord{
		Type:          TransactionAdjustment,
		ProductID:     in.ProductID,
		ToWarehouseID: &in.WarehouseID,
		Quantity:      in.Quantity,
		Note:          nullIfEmpty(in.Note),
		CreatedBy:     createdBy,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit adjustment: %w", err)
	}

	return &MutationResult{TransactionID: txnID, ProductName: product.Name, NewQuantity: newQty}, nil
}

// ── Ledger read views ─────────────────────────────────────────────────────────

func (s *stockService) WarehouseInventory(ctx context.Context, user UserContext, q InventoryQuery) (*InventoryPage, error) {
	if !user.CanAccess(q.WarehouseID) {
		return nil, Forbiddenf("you do not have access to this warehouse")
	}
	warehouse, err := resolveWarehouse(ctx, s.pool, q.WarehouseID)
	if err != nil {
		return nil, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	where := "ii.warehouse_id = $1"
	args := []any{q.WarehouseID}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (p.sku ILIKE $%d OR p.name ILIKE $%d OR p.brand ILIKE $%d)", n, n, n)
	}

	var total int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM inventory_items ii
		JOIN products p ON p.id = ii.product_id
		WHERE %s
	`, where)
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count inventory: %w", err)
	}

	// The low-stock count always covers the whole warehouse, not the
	// filtered page.
	var lowStock int
	if err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM inventory_items
		WHERE warehouse_id = $1 AND quantity_on_hand < $2
	`, q.WarehouseID, LowStockThreshold).Scan(&lowStock); err != nil {
		return nil, fmt.Errorf("failed to count low stock: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT ii.id, ii.warehouse_id, ii.product_id, ii.quantity_on_hand,
		       p.sku, p.name, p.brand, p.retail_price, p.wholesale_price
		FROM inventory_items ii
		JOIN products p ON p.id = ii.product_id
		WHERE %s
		ORDER BY p.name, p.sku
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, size, (page-1)*size)

	rows, err := s.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	items := []InventoryLine{}
	for rows.Next() {
		var line InventoryLine
		if err := rows.Scan(
			&line.ID, &line.WarehouseID, &line.ProductID, &line.QuantityOnHand,
			&line.SKU, &line.ProductName, &line.Brand,
			&line.RetailPrice, &line.WholesalePrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inventory line: %w", err)
		}
		line.LowStock = line.QuantityOnHand < LowStockThreshold
		items = append(items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory rows: %w", err)
	}

	return &InventoryPage{
		WarehouseID:   warehouse.ID,
		WarehouseName: warehouse.Name,
		Items:         items,
		Total:         total,
		Page:          page,
		PageSize:      size,
		LowStockCount: lowStock,
	}, nil
}

func (s *stockService) InventorySummaries(ctx context.Context, user UserContext) ([]WarehouseSummary, error) {
	args := []any{LowStockThreshold}
	where := ""
	if !user.IsAdmin() {
		if user.WarehouseID == nil {
			return []WarehouseSummary{}, nil
		}
		where = "WHERE w.id = $2"
		args = append(args, *user.WarehouseID)
	}

	query := fmt.Sprintf(`
		SELECT w.id, w.name,
		       COUNT(ii.id),
		       COALESCE(SUM(ii.quantity_on_hand), 0),
		       COUNT(ii.id) FILTER (WHERE ii.quantity_on_hand < $1)
		FROM warehouses w
		LEFT JOIN inventory_items ii ON ii.warehouse_id = w.id
		%s
		GROUP BY w.id, w.name
		ORDER BY w.name
	`, where)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query warehouse summaries: %w", err)
	}
	defer rows.Close()

	summaries := []WarehouseSummary{}
	for rows.Next() {
		var ws WarehouseSummary
		if err := rows.Scan(&ws.WarehouseID, &ws.WarehouseName, &ws.ItemCount, &ws.TotalUnits, &ws.LowStockCount); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse summary: %w", err)
		}
		summaries = append(summaries, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating warehouse summaries: %w", err)
	}
	return summaries, nil
}
