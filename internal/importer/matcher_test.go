package importer_test

import (
	"testing"

	"stockroom/internal/core"
	"stockroom/internal/importer"
)

func TestMatcher_Match(t *testing.T) {
	m := importer.NewMatcher([]core.Product{
		{ID: 1, SKU: "TVD-109-16", Name: "Satin Ribbon 16mm"},
		{ID: 2, SKU: "GLX_220", Name: "Gift Box Large"},
	})

	tests := []struct {
		name   string
		sku    string
		wantID int
		wantOK bool
	}{
		{"exact", "TVD-109-16", 1, true},
		{"underscore spelling", "TVD_109_16", 1, true},
		{"space spelling", "TVD 109 16", 1, true},
		{"lowercase no separators", "tvd10916", 1, true},
		{"catalog side uses underscores", "GLX-220", 2, true},
		{"padded", "  glx_220  ", 2, true},
		{"unknown", "ZZZ-999", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := m.Match(tt.sku)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.sku, ok, tt.wantOK)
			}
			if ok && p.ID != tt.wantID {
				t.Errorf("Match(%q) = product %d, want %d", tt.sku, p.ID, tt.wantID)
			}
		})
	}
}
