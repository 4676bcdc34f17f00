package app

import "github.com/shopspring/decimal"

// SaleRequest is the input for recording a sale out of a warehouse.
type SaleRequest struct {
	WarehouseID   int
	ProductID     int
	Quantity      int
	UnitPrice     *decimal.Decimal // nil means "use the product's retail price"
	ReferenceNote string
}

// PurchaseRequest is the input for receiving purchased stock into a warehouse.
type PurchaseRequest struct {
	WarehouseID   int
	ProductID     int
	Quantity      int
	UnitCost      *decimal.Decimal // nil means "use the product's cost price"
	ReferenceNote string
}

// TransferRequest is the input for moving stock between two warehouses.
type TransferRequest struct {
	FromWarehouseID int
	ToWarehouseID   int
	ProductID       int
	Quantity        int
	ReferenceNote   string
}

// AdjustmentRequest is the input for a reconciliation addition.
type AdjustmentRequest struct {
	WarehouseID   int
	ProductID     int
	Quantity      int
	ReferenceNote string
}

// InventoryListRequest selects one warehouse's inventory page.
type InventoryListRequest struct {
	WarehouseID int
	Search      string
	Page        int
	PageSize    int
}

// TransactionListRequest selects one warehouse's audit-log page.
type TransactionListRequest struct {
	WarehouseID int
	Type        string
	Brand       string
	Page        int
	PageSize    int
}
