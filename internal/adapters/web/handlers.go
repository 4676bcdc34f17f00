package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"stockroom/internal/app"
	"stockroom/internal/core"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the ApplicationService, the chi router, and the token secret.
type Handler struct {
	svc        app.ApplicationService
	logger     *zap.Logger
	router     chi.Router
	jwtSecret  string
	schemaJSON []byte
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, logger *zap.Logger, allowedOrigins []string, jwtSecret string) http.Handler {
	schemaJSON, err := mutationSchemaJSON()
	if err != nil {
		panic("mutation schema generation failed: " + err.Error())
	}

	h := &Handler{
		svc:        svc,
		logger:     logger,
		jwtSecret:  jwtSecret,
		schemaJSON: schemaJSON,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(Recoverer(logger))
	r.Use(CORS(allowedOrigins))

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/", h.root)
	r.Get("/api/health", h.health)
	r.Get("/api/schema", h.schema)

	// ── Protected API routes (return 401 JSON if unauthenticated) ────────────
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB
		r.Use(h.RequireAuth)

		r.Get("/api/me", h.me)

		// Ledger reads
		r.Get("/api/inventory", h.inventoryOverview)
		r.Get("/api/inventory/{warehouse_id}", h.warehouseInventory)
		r.Get("/api/transactions/{warehouse_id}", h.listTransactions)

		// Stock mutations
		r.Post("/api/sales", h.recordSale)
		r.Post("/api/purchases", h.recordPurchase)
		r.Post("/api/transfers", h.transferStock)
		r.Post("/api/adjustments", h.adjustStock)

		// Catalog
		r.Get("/api/warehouses", h.listWarehouses)
		r.Get("/api/warehouses/{warehouse_id}", h.getWarehouse)
		r.Get("/api/brands", h.listBrands)
	})

	h.router = r
	return r
}

// root returns the API banner.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Status  string `json:"status"`
	}
	writeJSON(w, response{Name: "stockroom inventory api", Version: "1.0.0", Status: "running"})
}

// health reports liveness and whether the database answers.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}

	db := "ok"
	if _, err := h.svc.ListBrands(r.Context()); err != nil {
		db = "unreachable"
	}
	writeJSON(w, response{Status: "healthy", Database: db})
}

// warehouseParam extracts and parses the {warehouse_id} URL parameter.
func warehouseParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "warehouse_id"))
}

// currentUser returns the authenticated caller, or writes a 401 and reports false.
func currentUser(w http.ResponseWriter, r *http.Request) (core.UserContext, bool) {
	user := userFromContext(r.Context())
	if user == nil {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return core.UserContext{}, false
	}
	return *user, true
}

// pageParams reads the page and page_size query values, zero when absent or
// malformed. The service layer applies the default and the cap.
func pageParams(r *http.Request) (page, pageSize int) {
	if v := r.URL.Query().Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			page = parsed
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			pageSize = parsed
		}
	}
	return page, pageSize
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
