package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextDocumentNumber(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
		year   int
		last   string
		want   string
	}{
		{"primeiro do ano", "OS", 2026, "", "OS-2026-001"},
		{"incrementa sequência", "OS", 2026, "OS-2026-007", "OS-2026-008"},
		{"passa de duas casas", "OS", 2026, "OS-2026-099", "OS-2026-100"},
		{"sequência acima do padding", "OS", 2026, "OS-2026-999", "OS-2026-1000"},
		{"prefixo de compra", "COMP", 2025, "COMP-2025-041", "COMP-2025-042"},
		{"sufixo ilegível reinicia", "OS", 2026, "OS-2026-abc", "OS-2026-001"},
		{"sem separador reinicia", "OS", 2026, "OS2026003", "OS-2026-001"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nextDocumentNumber(tc.prefix, tc.year, tc.last))
		})
	}
}

func TestYearPattern(t *testing.T) {
	assert.Equal(t, "OS-2026-%", yearPattern("OS", 2026))
	assert.Equal(t, "COMP-2025-%", yearPattern("COMP", 2025))
}
