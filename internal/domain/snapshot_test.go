package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"1.234549", "1.2345"},
		{"0.0000499", "0"},
		{"1.23461779", "1.2346"},
		{"100.0000", "100"},
		{"100.1200", "100.12"},
		{"120", "120"},
		{"0", "0"},
		{"-77.89", "-77.89"},
		// Midpoints round away from zero, in both directions.
		{"1.23455", "1.2346"},
		{"-1.23455", "-1.2346"},
		{"0.4568", "0.4568"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := FormatAmount(decimal.RequireFromString(tt.in))
			if got != tt.expected {
				t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}
