package app

import "github.com/shopspring/decimal"

// SaleResult is returned by RecordSale. UnitPrice is the price actually
// recorded after the retail fallback, absent when neither side supplied one.
type SaleResult struct {
	TransactionID int
	ProductName   string
	WarehouseID   int
	ProductID     int
	Quantity      int
	UnitPrice     decimal.NullDecimal
	NewStockLevel int
}

// PurchaseResult is returned by RecordPurchase.
type PurchaseResult struct {
	TransactionID int
	ProductName   string
	WarehouseID   int
	ProductID     int
	Quantity      int
	UnitCost      decimal.NullDecimal
	NewStockLevel int
}

// TransferResult is returned by TransferStock. Both transaction ids refer to
// the same physical movement.
type TransferResult struct {
	TransferOutID         int
	TransferInID          int
	FromWarehouseID       int
	ToWarehouseID         int
	ProductID             int
	Quantity              int
	SourceStockLevel      int
	DestinationStockLevel int
}

// AdjustmentResult is returned by AdjustStock.
type AdjustmentResult struct {
	TransactionID int
	WarehouseID   int
	ProductID     int
	Quantity      int
	NewStockLevel int
}
