package web

import (
	"net/http"
)

// listWarehouses handles GET /api/warehouses. Admins see every warehouse,
// partners only their own.
func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	warehouses, err := h.svc.ListWarehouses(r.Context(), user)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, warehouses)
}

// getWarehouse handles GET /api/warehouses/{warehouse_id}.
func (h *Handler) getWarehouse(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	warehouseID, err := warehouseParam(r)
	if err != nil {
		writeError(w, r, "invalid warehouse id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	warehouse, err := h.svc.GetWarehouse(r.Context(), user, warehouseID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, warehouse)
}

// listBrands handles GET /api/brands, the sorted distinct product brands.
func (h *Handler) listBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.svc.ListBrands(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	type response struct {
		Brands []string `json:"brands"`
	}
	writeJSON(w, response{Brands: brands})
}
