package core

// TransactionQuery selects one warehouse's audit-log page. Type and Brand
// are optional filters; an unknown value simply matches nothing.
type TransactionQuery struct {
	WarehouseID int
	Type        string
	Brand       string
	Page        int
	PageSize    int
}

// TransactionLine decorates an audit row with display names for listing.
type TransactionLine struct {
	Transaction
	SKU               string  `json:"sku"`
	ProductName       string  `json:"product_name"`
	Brand             *string `json:"brand,omitempty"`
	FromWarehouseName *string `json:"from_warehouse_name,omitempty"`
	ToWarehouseName   *string `json:"to_warehouse_name,omitempty"`
}

// TransactionPage is one page of a warehouse's audit log, newest first.
type TransactionPage struct {
	Items    []TransactionLine `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}
