// Package importer loads stock quantities from supplier CSV exports,
// matching rows to catalog products by SKU despite spelling drift between
// the supplier's system and the catalog.
package importer

import "strings"

// NormalizeSKU canonicalizes a SKU for matching: trimmed, uppercased, with
// space and underscore separators folded to dashes. Supplier exports spell
// the same product as TVD_109_16, TVD-109-16, or "TVD 109 16".
func NormalizeSKU(sku string) string {
	s := strings.ToUpper(strings.TrimSpace(sku))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}

// SKUVariations lists the candidate spellings tried when matching a SKU,
// from the literal value down to the separator-free form.
func SKUVariations(sku string) []string {
	trimmed := strings.TrimSpace(sku)
	normalized := NormalizeSKU(sku)
	return []string{
		trimmed,
		strings.ToUpper(trimmed),
		normalized,
		strings.ReplaceAll(normalized, "-", "_"),
		strings.ReplaceAll(normalized, "-", ""),
	}
}
