package web

import (
	"encoding/json"
	"net/http"

	"github.com/invopop/jsonschema"
)

// mutationSchemaJSON builds the /api/schema document: one JSON Schema per
// mutation endpoint, keyed by path. Reflected once at startup from the
// request payload structs so the document can never drift from the decoder.
func mutationSchemaJSON() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	doc := map[string]*jsonschema.Schema{
		"/api/sales":       reflector.Reflect(&saleBody{}),
		"/api/purchases":   reflector.Reflect(&purchaseBody{}),
		"/api/transfers":   reflector.Reflect(&transferBody{}),
		"/api/adjustments": reflector.Reflect(&adjustmentBody{}),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// schema handles GET /api/schema, the machine-readable description of the
// mutation payloads for API integrators.
func (h *Handler) schema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.schemaJSON)
}
