package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogService reads warehouse and product reference data. Nothing in the
// mutation core writes through it.
type CatalogService interface {
	// Warehouses lists the warehouses the caller may see: every warehouse
	// for admins, only the managed one for partners (empty when unassigned).
	Warehouses(ctx context.Context, user UserContext) ([]Warehouse, error)

	// Warehouse returns one warehouse, enforcing the same access rule.
	Warehouse(ctx context.Context, user UserContext, id int) (*Warehouse, error)

	// Brands returns the sorted distinct non-empty product brands.
	Brands(ctx context.Context) ([]string, error)

	// ProductBySKU resolves a product by its business key. Used by the
	// import tooling; the HTTP surface resolves products by id.
	ProductBySKU(ctx context.Context, sku string) (*Product, error)

	// Products returns the whole catalog, ordered by SKU. The import tooling
	// matches supplier rows against it in memory.
	Products(ctx context.Context) ([]Product, error)
}

type catalogService struct {
	pool *pgxpool.Pool
}

func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

func (s *catalogService) Warehouses(ctx context.Context, user UserContext) ([]Warehouse, error) {
	where := ""
	var args []any
	if !user.IsAdmin() {
		if user.WarehouseID == nil {
			return []Warehouse{}, nil
		}
		where = "WHERE id = $1"
		args = append(args, *user.WarehouseID)
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, name, location, manager_id, created_at
		FROM warehouses
		%s
		ORDER BY name
	`, where), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query warehouses: %w", err)
	}
	defer rows.Close()

	warehouses := []Warehouse{}
	for rows.Next() {
		var w Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Location, &w.ManagerID, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating warehouses: %w", err)
	}
	return warehouses, nil
}

func (s *catalogService) Warehouse(ctx context.Context, user UserContext, id int) (*Warehouse, error) {
	w, err := resolveWarehouse(ctx, s.pool, id)
	if err != nil {
		return nil, err
	}
	if !user.CanAccess(id) {
		return nil, Forbiddenf("you do not have access to this warehouse")
	}
	return w, nil
}

func (s *catalogService) Brands(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT brand
		FROM products
		WHERE brand IS NOT NULL AND brand <> ''
		ORDER BY brand
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	brands := []string{}
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}
	return brands, nil
}

func (s *catalogService) Products(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, sku, name, brand, category, image_url,
		       retail_price, wholesale_price, cost_price
		FROM products
		ORDER BY sku
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Brand, &p.Category, &p.ImageURL,
			&p.RetailPrice, &p.WholesalePrice, &p.CostPrice); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

func (s *catalogService) ProductBySKU(ctx context.Context, sku string) (*Product, error) {
	var p Product
	err := s.pool.QueryRow(ctx, `
		SELECT id, sku, name, brand, category, image_url,
		       retail_price, wholesale_price, cost_price
		FROM products
		WHERE sku = $1
	`, sku).Scan(&p.ID, &p.SKU, &p.Name, &p.Brand, &p.Category, &p.ImageURL,
		&p.RetailPrice, &p.WholesalePrice, &p.CostPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("product %s not found", sku)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product %s: %w", sku, err)
	}
	return &p, nil
}
