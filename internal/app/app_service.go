package app

import (
	"context"

	"stockroom/internal/core"
)

type appService struct {
	stock        core.StockService
	transactions core.TransactionService
	catalog      core.CatalogService
	identity     core.IdentityService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	stock core.StockService,
	transactions core.TransactionService,
	catalog core.CatalogService,
	identity core.IdentityService,
) ApplicationService {
	return &appService{
		stock:        stock,
		transactions: transactions,
		catalog:      catalog,
		identity:     identity,
	}
}

// RecordSale sells stock out of a warehouse.
func (s *appService) RecordSale(ctx context.Context, user core.UserContext, req SaleRequest) (*SaleResult, error) {
	res, err := s.stock.RecordSale(ctx, user, core.SaleInput{
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Note:        req.ReferenceNote,
	})
	if err != nil {
		return nil, err
	}
	return &SaleResult{
		TransactionID: res.TransactionID,
		ProductName:   res.ProductName,
		WarehouseID:   req.WarehouseID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		UnitPrice:     res.UnitPrice,
		NewStockLevel: res.NewQuantity,
	}, nil
}

// RecordPurchase receives purchased stock into a warehouse.
func (s *appService) RecordPurchase(ctx context.Context, user core.UserContext, req PurchaseRequest) (*PurchaseResult, error) {
	res, err := s.stock.RecordPurchase(ctx, &user, core.PurchaseInput{
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		UnitCost:    req.UnitCost,
		Note:        req.ReferenceNote,
	})
	if err != nil {
		return nil, err
	}
	return &PurchaseResult{
		TransactionID: res.TransactionID,
		ProductName:   res.ProductName,
		WarehouseID:   req.WarehouseID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		UnitCost:      res.UnitPrice,
		NewStockLevel: res.NewQuantity,
	}, nil
}

// TransferStock moves stock between two warehouses atomically.
func (s *appService) TransferStock(ctx context.Context, user core.UserContext, req TransferRequest) (*TransferResult, error) {
	res, err := s.stock.Transfer(ctx, user, core.TransferInput{
		FromWarehouseID: req.FromWarehouseID,
		ToWarehouseID:   req.ToWarehouseID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		Note:            req.ReferenceNote,
	})
	if err != nil {
		return nil, err
	}
	return &TransferResult{
		TransferOutID:         res.TransferOutID,
		TransferInID:          res.TransferInID,
		FromWarehouseID:       req.FromWarehouseID,
		ToWarehouseID:         req.ToWarehouseID,
		ProductID:             req.ProductID,
		Quantity:              req.Quantity,
		SourceStockLevel:      res.SourceQuantity,
		DestinationStockLevel: res.DestinationQuantity,
	}, nil
}

// AdjustStock applies a reconciliation addition to a warehouse.
func (s *appService) AdjustStock(ctx context.Context, user core.UserContext, req AdjustmentRequest) (*AdjustmentResult, error) {
	res, err := s.stock.Adjust(ctx, &user, core.AdjustmentInput{
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		Note:        req.ReferenceNote,
	})
	if err != nil {
		return nil, err
	}
	return &AdjustmentResult{
		TransactionID: res.TransactionID,
		WarehouseID:   req.WarehouseID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		NewStockLevel: res.NewQuantity,
	}, nil
}

// WarehouseInventory returns one warehouse's ledger page.
func (s *appService) WarehouseInventory(ctx context.Context, user core.UserContext, req InventoryListRequest) (*core.InventoryPage, error) {
	return s.stock.WarehouseInventory(ctx, user, core.InventoryQuery{
		WarehouseID: req.WarehouseID,
		Search:      req.Search,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
}

// InventoryOverview returns per-warehouse ledger summaries.
func (s *appService) InventoryOverview(ctx context.Context, user core.UserContext) ([]core.WarehouseSummary, error) {
	return s.stock.InventorySummaries(ctx, user)
}

// ListTransactions pages through a warehouse's audit log.
func (s *appService) ListTransactions(ctx context.Context, user core.UserContext, req TransactionListRequest) (*core.TransactionPage, error) {
	return s.transactions.ListTransactions(ctx, user, core.TransactionQuery{
		WarehouseID: req.WarehouseID,
		Type:        req.Type,
		Brand:       req.Brand,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
}

// ListWarehouses returns the warehouses visible to the caller.
func (s *appService) ListWarehouses(ctx context.Context, user core.UserContext) ([]core.Warehouse, error) {
	return s.catalog.Warehouses(ctx, user)
}

// GetWarehouse returns a single warehouse, enforcing warehouse access.
func (s *appService) GetWarehouse(ctx context.Context, user core.UserContext, id int) (*core.Warehouse, error) {
	return s.catalog.Warehouse(ctx, user, id)
}

// ListBrands returns the sorted distinct product brands.
func (s *appService) ListBrands(ctx context.Context) ([]string, error) {
	return s.catalog.Brands(ctx)
}

// Identity resolves a verified user id to the caller's context.
func (s *appService) Identity(ctx context.Context, userID int) (*core.UserContext, error) {
	return s.identity.Identity(ctx, userID)
}

// Me returns the caller's profile with the assigned warehouse.
func (s *appService) Me(ctx context.Context, user core.UserContext) (*core.Me, error) {
	return s.identity.Me(ctx, user)
}
