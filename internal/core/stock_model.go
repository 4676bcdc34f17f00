package core

import "github.com/shopspring/decimal"

// Pagination bounds shared by the listing endpoints.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// SaleInput carries the caller-supplied fields for RecordSale.
type SaleInput struct {
	WarehouseID int
	ProductID   int
	Quantity    int
	UnitPrice   *decimal.Decimal // optional; falls back to the product's retail price
	Note        string
}

// PurchaseInput carries the caller-supplied fields for RecordPurchase.
type PurchaseInput struct {
	WarehouseID int
	ProductID   int
	Quantity    int
	UnitCost    *decimal.Decimal // optional; falls back to the product's cost price
	Note        string
}

// TransferInput carries the caller-supplied fields for Transfer.
type TransferInput struct {
	FromWarehouseID int
	ToWarehouseID   int
	ProductID       int
	Quantity        int
	Note            string
}

// AdjustmentInput carries the caller-supplied fields for Adjust. Quantity is
// always additive; negative corrections are not supported.
type AdjustmentInput struct {
	WarehouseID int
	ProductID   int
	Quantity    int
	Note        string
}

// MutationResult reports the outcome of a single-ledger mutation.
type MutationResult struct {
	TransactionID int
	ProductName   string
	NewQuantity   int
	UnitPrice     decimal.NullDecimal // price/cost actually recorded, if any
}

// TransferResult reports the outcome of a two-ledger transfer.
type TransferResult struct {
	TransferOutID       int
	TransferInID        int
	SourceQuantity      int
	DestinationQuantity int
}

// InventoryQuery selects one warehouse's ledger page.
type InventoryQuery struct {
	WarehouseID int
	Search      string // case-insensitive match on SKU, product name or brand
	Page        int
	PageSize    int
}

// InventoryLine is a ledger row joined with its product for display.
type InventoryLine struct {
	ID             int                 `json:"id"`
	WarehouseID    int                 `json:"warehouse_id"`
	ProductID      int                 `json:"product_id"`
	QuantityOnHand int                 `json:"quantity_on_hand"`
	SKU            string              `json:"sku"`
	ProductName    string              `json:"product_name"`
	Brand          *string             `json:"brand,omitempty"`
	RetailPrice    decimal.NullDecimal `json:"retail_price"`
	WholesalePrice decimal.NullDecimal `json:"wholesale_price"`
	LowStock       bool                `json:"low_stock"`
}

// InventoryPage is one page of a warehouse's ledger. Total and LowStockCount
// cover the full warehouse regardless of pagination; Total honours the
// search filter, LowStockCount does not.
type InventoryPage struct {
	WarehouseID   int             `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Items         []InventoryLine `json:"items"`
	Total         int             `json:"total_items"`
	Page          int             `json:"page"`
	PageSize      int             `json:"page_size"`
	LowStockCount int             `json:"low_stock_count"`
}

// WarehouseSummary aggregates one warehouse's ledger for the overview listing.
type WarehouseSummary struct {
	WarehouseID   int    `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	ItemCount     int    `json:"item_count"`
	TotalUnits    int    `json:"total_units"`
	LowStockCount int    `json:"low_stock_count"`
}
