package web

import (
	"net/http"

	"stockroom/internal/app"
)

// warehouseInventory handles GET /api/inventory/{warehouse_id}.
// Query: page, page_size, search (matches SKU, product name, or brand).
func (h *Handler) warehouseInventory(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	warehouseID, err := warehouseParam(r)
	if err != nil {
		writeError(w, r, "invalid warehouse id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	page, pageSize := pageParams(r)
	result, err := h.svc.WarehouseInventory(r.Context(), user, app.InventoryListRequest{
		WarehouseID: warehouseID,
		Search:      r.URL.Query().Get("search"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// inventoryOverview handles GET /api/inventory: one summary row per
// warehouse the caller may see.
func (h *Handler) inventoryOverview(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	summaries, err := h.svc.InventoryOverview(r.Context(), user)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, summaries)
}
