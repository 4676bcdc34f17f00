package web

import (
	"net/http"

	"stockroom/internal/app"
)

// listTransactions handles GET /api/transactions/{warehouse_id}.
// Query: type (exact transaction type), brand, page, page_size. Rows where
// the warehouse is either source or destination, newest first.
func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
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
	result, err := h.svc.ListTransactions(r.Context(), user, app.TransactionListRequest{
		WarehouseID: warehouseID,
		Type:        r.URL.Query().Get("type"),
		Brand:       r.URL.Query().Get("brand"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
