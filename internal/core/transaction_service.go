package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionService reads the audit log. Writes happen exclusively inside
// the stock service's transactions; rows are never updated or deleted.
type TransactionService interface {
	// ListTransactions pages through every transaction where the warehouse
	// appears as source or destination, newest first, optionally filtered by
	// transaction type and product brand.
	ListTransactions(ctx context.Context, user UserContext, q TransactionQuery) (*TransactionPage, error)
}

type transactionService struct {
	pool *pgxpool.Pool
}

func NewTransactionService(pool *pgxpool.Pool) TransactionService {
	return &transactionService{pool: pool}
}

func (s *transactionService) ListTransactions(ctx context.Context, user UserContext, q TransactionQuery) (*TransactionPage, error) {
	if !user.CanAccess(q.WarehouseID) {
		return nil, Forbiddenf("you do not have access to this warehouse's transactions")
	}
	if _, err := resolveWarehouse(ctx, s.pool, q.WarehouseID); err != nil {
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

	where := "(t.from_warehouse_id = $1 OR t.to_warehouse_id = $1)"
	args := []any{q.WarehouseID}
	if q.Type != "" {
		args = append(args, q.Type)
		where += fmt.Sprintf(" AND t.transaction_type = $%d", len(args))
	}
	if q.Brand != "" {
		args = append(args, q.Brand)
		where += fmt.Sprintf(" AND p.brand = $%d", len(args))
	}

	var total int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		WHERE %s
	`, where)
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT t.id, t.transaction_type, t.product_id,
		       t.from_warehouse_id, t.to_warehouse_id,
		       t.quantity, t.unit_price, t.reference_note,
		       t.created_by, t.created_at,
		       p.sku, p.name, p.brand
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		WHERE %s
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, size, (page-1)*size)

	rows, err := s.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	items := []TransactionLine{}
	for rows.Next() {
		var line TransactionLine
		if err := rows.Scan(
			&line.ID, &line.Type, &line.ProductID,
			&line.FromWarehouseID, &line.ToWarehouseID,
			&line.Quantity, &line.UnitPrice, &line.ReferenceNote,
			&line.CreatedBy, &line.CreatedAt,
			&line.SKU, &line.ProductName, &line.Brand,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction line: %w", err)
		}
		items = append(items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	if err := s.attachWarehouseNames(ctx, items); err != nil {
		return nil, err
	}

	return &TransactionPage{Items: items, Total: total, Page: page, PageSize: size}, nil
}

// attachWarehouseNames decorates the page with from/to warehouse names. The
// memo map lives only for this call: the distinct ids on the page are
// resolved in one round trip and thrown away afterwards.
func (s *transactionService) attachWarehouseNames(ctx context.Context, items []TransactionLine) error {
	distinct := map[int]struct{}{}
	for _, line := range items {
		if line.FromWarehouseID != nil {
			distinct[*line.FromWarehouseID] = struct{}{}
		}
		if line.ToWarehouseID != nil {
			distinct[*line.ToWarehouseID] = struct{}{}
		}
	}
	if len(distinct) == 0 {
		return nil
	}

	ids := make([]int, 0, len(distinct))
	for id := range distinct {
		ids = append(ids, id)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name
		FROM warehouses
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve warehouse names: %w", err)
	}
	defer rows.Close()

	names := make(map[int]string, len(ids))
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("failed to scan warehouse name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating warehouse names: %w", err)
	}

	for i := range items {
		if id := items[i].FromWarehouseID; id != nil {
			if name, ok := names[*id]; ok {
				items[i].FromWarehouseName = &name
			}
		}
		if id := items[i].ToWarehouseID; id != nil {
			if name, ok := names[*id]; ok {
				items[i].ToWarehouseName = &name
			}
		}
	}
	return nil
}
