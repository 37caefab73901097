package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceValue(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  int64
	}{
		{"plain integer", "250000", 250000},
		{"leading whitespace", "  1100000", 1100000},
		{"stops at first non-digit", "100abc", 100},
		{"decimal truncates", "99.50", 99},
		{"negative sign honored", "-5", -5},
		{"plus sign honored", "+5", 5},
		{"non-numeric is zero", "free", 0},
		{"empty is zero", "", 0},
		{"sign only is zero", "-", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceValue(tt.price))
		})
	}
}

func TestLineTotal(t *testing.T) {
	line := CartLine{
		Product:  Product{Name: "Áo sơ mi", Price: "250000"},
		Quantity: 3,
	}
	assert.Equal(t, int64(750000), LineTotal(line))

	// Malformed price degrades to zero, never errors
	bad := CartLine{Product: Product{Price: "n/a"}, Quantity: 7}
	assert.Equal(t, int64(0), LineTotal(bad))
}
