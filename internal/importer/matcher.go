package importer

import "stockroom/internal/core"

// Matcher resolves supplier SKU spellings to catalog products. Every product
// is indexed under all of its spelling variations up front, so each lookup
// is a handful of map probes.
type Matcher struct {
	bySKU map[string]core.Product
}

// NewMatcher indexes the given products by their SKU variations.
func NewMatcher(products []core.Product) *Matcher {
	m := &Matcher{bySKU: make(map[string]core.Product, len(products)*5)}
	for _, p := range products {
		for _, key := range SKUVariations(p.SKU) {
			m.bySKU[key] = p
		}
	}
	return m
}

// Match finds the product for a supplier SKU, trying each variation in order.
func (m *Matcher) Match(sku string) (core.Product, bool) {
	for _, key := range SKUVariations(sku) {
		if p, ok := m.bySKU[key]; ok {
			return p, true
		}
	}
	return core.Product{}, false
}
