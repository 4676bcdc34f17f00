package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionSale        TransactionType = "SALE"
	TransactionRestock     TransactionType = "RESTOCK"
	TransactionTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTransferIn  TransactionType = "TRANSFER_IN"
	TransactionAdjustment  TransactionType = "ADJUSTMENT"
)

// LowStockThreshold is the fixed boundary used by listings and summaries:
// an item counts as low stock when quantity_on_hand is strictly below it.
const LowStockThreshold = 5

// MaxNoteLength caps the free-text reference note on mutation requests.
const MaxNoteLength = 500

type Role string

const (
	RoleAdmin   Role = "admin"
	RolePartner Role = "partner"
)

// Warehouse is a physical storage location. Created by administrative setup
// and treated as immutable reference data by the mutation operations.
type Warehouse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location,omitempty"`
	ManagerID *int      `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is catalog reference data. The three price fields are independent
// tiers and any of them may be absent.
type Product struct {
	ID             int                 `json:"id"`
	SKU            string              `json:"sku"`
	Name           string              `json:"name"`
	Brand          *string             `json:"brand,omitempty"`
	Category       *string             `json:"category,omitempty"`
	ImageURL       *string             `json:"image_url,omitempty"`
	RetailPrice    decimal.NullDecimal `json:"retail_price"`
	WholesalePrice decimal.NullDecimal `json:"wholesale_price"`
	CostPrice      decimal.NullDecimal `json:"cost_price"`
}

// InventoryItem is one stock ledger row: the authoritative on-hand quantity
// for a (warehouse, product) pair. Rows are created lazily on the first
// incoming movement and never deleted; quantity_on_hand never goes below zero.
type InventoryItem struct {
	ID             int       `json:"id"`
	WarehouseID    int       `json:"warehouse_id"`
	ProductID      int       `json:"product_id"`
	QuantityOnHand int       `json:"quantity_on_hand"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Transaction is one immutable row of the audit log. Exactly one of the
// warehouse references is set for SALE and RESTOCK; both are set for the two
// transfer legs, which carry the same from/to pair and differ only by type.
type Transaction struct {
	ID              int                 `json:"id"`
	Type            TransactionType     `json:"transaction_type"`
	ProductID       int                 `json:"product_id"`
	FromWarehouseID *int                `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   *int                `json:"to_warehouse_id,omitempty"`
	Quantity        int                 `json:"quantity"`
	UnitPrice       decimal.NullDecimal `json:"unit_price"`
	ReferenceNote   *string             `json:"reference_note,omitempty"`
	CreatedBy       *int                `json:"created_by,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// Profile is a registered user as stored, independent of any credential.
type Profile struct {
	ID       int     `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	Role     Role    `json:"role"`
}

// UserContext is the per-request caller identity derived from the verified
// credential plus the profile lookup. Never persisted.
type UserContext struct {
	UserID      int
	Email       string
	Role        Role
	WarehouseID *int // the single warehouse a partner manages; nil for admins
}
