package app

import (
	"context"

	"stockroom/internal/core"
)

// ApplicationService is the single interface all transport adapters call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// RecordSale sells stock out of a warehouse. Partners may only sell from
	// their own warehouse.
	RecordSale(ctx context.Context, user core.UserContext, req SaleRequest) (*SaleResult, error)

	// RecordPurchase receives purchased stock into a warehouse. Admin only.
	RecordPurchase(ctx context.Context, user core.UserContext, req PurchaseRequest) (*PurchaseResult, error)

	// TransferStock moves stock between two warehouses atomically. Admin only.
	TransferStock(ctx context.Context, user core.UserContext, req TransferRequest) (*TransferResult, error)

	// AdjustStock applies a reconciliation addition to a warehouse. Admin only.
	AdjustStock(ctx context.Context, user core.UserContext, req AdjustmentRequest) (*AdjustmentResult, error)

	// WarehouseInventory returns one warehouse's ledger page with product
	// display data and the warehouse-wide low-stock count.
	WarehouseInventory(ctx context.Context, user core.UserContext, req InventoryListRequest) (*core.InventoryPage, error)

	// InventoryOverview returns per-warehouse ledger summaries for every
	// warehouse the caller may see.
	InventoryOverview(ctx context.Context, user core.UserContext) ([]core.WarehouseSummary, error)

	// ListTransactions pages through a warehouse's audit log, newest first.
	ListTransactions(ctx context.Context, user core.UserContext, req TransactionListRequest) (*core.TransactionPage, error)

	// ListWarehouses returns the warehouses visible to the caller.
	ListWarehouses(ctx context.Context, user core.UserContext) ([]core.Warehouse, error)

	// GetWarehouse returns a single warehouse, enforcing warehouse access.
	GetWarehouse(ctx context.Context, user core.UserContext, id int) (*core.Warehouse, error)

	// ListBrands returns the sorted distinct product brands.
	ListBrands(ctx context.Context) ([]string, error)

	// Identity resolves a verified user id to the caller's role and
	// warehouse assignment. Called by the auth middleware on every request.
	Identity(ctx context.Context, userID int) (*core.UserContext, error)

	// Me returns the caller's profile with the assigned warehouse.
	Me(ctx context.Context, user core.UserContext) (*core.Me, error)
}
