package web

import (
	"fmt"
	"net/http"

	"stockroom/internal/app"

	"github.com/shopspring/decimal"
)

// ── Request payloads ──────────────────────────────────────────────────────────
// These structs are reflected into the /api/schema document, so every field
// carries a jsonschema description.

type saleBody struct {
	WarehouseID   int              `json:"warehouse_id" jsonschema_description:"Warehouse the sale ships from"`
	ProductID     int              `json:"product_id" jsonschema_description:"Product sold"`
	Quantity      int              `json:"quantity" jsonschema_description:"Units sold, must be greater than zero"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty" jsonschema:"type=number" jsonschema_description:"Sale price per unit; defaults to the product's retail price when omitted"`
	ReferenceNote string           `json:"reference_note,omitempty" jsonschema_description:"Customer name or free-form note, at most 500 characters"`
}

type purchaseBody struct {
	WarehouseID   int              `json:"warehouse_id" jsonschema_description:"Warehouse receiving the stock"`
	ProductID     int              `json:"product_id" jsonschema_description:"Product purchased"`
	Quantity      int              `json:"quantity" jsonschema_description:"Units received, must be greater than zero"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty" jsonschema:"type=number" jsonschema_description:"Cost per unit; defaults to the product's cost price when omitted"`
	ReferenceNote string           `json:"reference_note,omitempty" jsonschema_description:"Supplier name or invoice reference, at most 500 characters"`
}

type transferBody struct {
	FromWarehouseID int    `json:"from_warehouse_id" jsonschema_description:"Source warehouse"`
	ToWarehouseID   int    `json:"to_warehouse_id" jsonschema_description:"Destination warehouse, must differ from the source"`
	ProductID       int    `json:"product_id" jsonschema_description:"Product to move"`
	Quantity        int    `json:"quantity" jsonschema_description:"Units to move, must be greater than zero"`
	ReferenceNote   string `json:"reference_note,omitempty" jsonschema_description:"Optional note recorded on both movement legs, at most 500 characters"`
}

type adjustmentBody struct {
	WarehouseID   int    `json:"warehouse_id" jsonschema_description:"Warehouse whose ledger is corrected"`
	ProductID     int    `json:"product_id" jsonschema_description:"Product being reconciled"`
	Quantity      int    `json:"quantity" jsonschema_description:"Units to add, must be greater than zero"`
	ReferenceNote string `json:"reference_note,omitempty" jsonschema_description:"Reason for the correction, at most 500 characters"`
}

// ── Response payloads ─────────────────────────────────────────────────────────

type saleResponse struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	TransactionID int                 `json:"transaction_id"`
	WarehouseID   int                 `json:"warehouse_id"`
	ProductID     int                 `json:"product_id"`
	Quantity      int                 `json:"quantity"`
	UnitPrice     decimal.NullDecimal `json:"unit_price"`
	NewStockLevel int                 `json:"new_stock_level"`
}

type purchaseResponse struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	TransactionID int                 `json:"transaction_id"`
	WarehouseID   int                 `json:"warehouse_id"`
	ProductID     int                 `json:"product_id"`
	Quantity      int                 `json:"quantity"`
	UnitCost      decimal.NullDecimal `json:"unit_cost"`
	NewStockLevel int                 `json:"new_stock_level"`
}

type transferResponse struct {
	Success               bool   `json:"success"`
	Message               string `json:"message"`
	TransferOutID         int    `json:"transfer_out_id"`
	TransferInID          int    `json:"transfer_in_id"`
	FromWarehouseID       int    `json:"from_warehouse_id"`
	ToWarehouseID         int    `json:"to_warehouse_id"`
	ProductID             int    `json:"product_id"`
	Quantity              int    `json:"quantity"`
	SourceStockLevel      int    `json:"source_stock_level"`
	DestinationStockLevel int    `json:"destination_stock_level"`
}

type adjustmentResponse struct {
	Success       bool `json:"success"`
	TransactionID int  `json:"transaction_id"`
	NewStockLevel int  `json:"new_stock_level"`
}

// ── Handlers ──────────────────────────────────────────────────────────────────

// recordSale handles POST /api/sales.
func (h *Handler) recordSale(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var body saleBody
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.RecordSale(r.Context(), user, app.SaleRequest{
		WarehouseID:   body.WarehouseID,
		ProductID:     body.ProductID,
		Quantity:      body.Quantity,
		UnitPrice:     body.UnitPrice,
		ReferenceNote: body.ReferenceNote,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, saleResponse{
		Success:       true,
		Message:       fmt.Sprintf("Sale recorded: %d x %s", result.Quantity, result.ProductName),
		TransactionID: result.TransactionID,
		WarehouseID:   result.WarehouseID,
		ProductID:     result.ProductID,
		Quantity:      result.Quantity,
		UnitPrice:     result.UnitPrice,
		NewStockLevel: result.NewStockLevel,
	})
}

// recordPurchase handles POST /api/purchases.
func (h *Handler) recordPurchase(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var body purchaseBody
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.RecordPurchase(r.Context(), user, app.PurchaseRequest{
		WarehouseID:   body.WarehouseID,
		ProductID:     body.ProductID,
		Quantity:      body.Quantity,
		UnitCost:      body.UnitCost,
		ReferenceNote: body.ReferenceNote,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, purchaseResponse{
		Success:       true,
		Message:       fmt.Sprintf("Purchase recorded: %d x %s", result.Quantity, result.ProductName),
		TransactionID: result.TransactionID,
		WarehouseID:   result.WarehouseID,
		ProductID:     result.ProductID,
		Quantity:      result.Quantity,
		UnitCost:      result.UnitCost,
		NewStockLevel: result.NewStockLevel,
	})
}

// transferStock handles POST /api/transfers.
func (h *Handler) transferStock(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var body transferBody
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.TransferStock(r.Context(), user, app.TransferRequest{
		FromWarehouseID: body.FromWarehouseID,
		ToWarehouseID:   body.ToWarehouseID,
		ProductID:       body.ProductID,
		Quantity:        body.Quantity,
		ReferenceNote:   body.ReferenceNote,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, transferResponse{
		Success:               true,
		Message:               fmt.Sprintf("Successfully transferred %d units", result.Quantity),
		TransferOutID:         result.TransferOutID,
		TransferInID:          result.TransferInID,
		FromWarehouseID:       result.FromWarehouseID,
		ToWarehouseID:         result.ToWarehouseID,
		ProductID:             result.ProductID,
		Quantity:              result.Quantity,
		SourceStockLevel:      result.SourceStockLevel,
		DestinationStockLevel: result.DestinationStockLevel,
	})
}

// adjustStock handles POST /api/adjustments.
func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var body adjustmentBody
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.svc.AdjustStock(r.Context(), user, app.AdjustmentRequest{
		WarehouseID:   body.WarehouseID,
		ProductID:     body.ProductID,
		Quantity:      body.Quantity,
		ReferenceNote: body.ReferenceNote,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, adjustmentResponse{
		Success:       true,
		TransactionID: result.TransactionID,
		NewStockLevel: result.NewStockLevel,
	})
}
