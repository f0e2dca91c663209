package grid

import "testing"

func TestColumnLetters(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{1, "A"},
		{2, "B"},
		{25, "Y"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{78, "BZ"},
		{702, "ZZ"},
		{703, "AAA"},
		{16384, "XFD"}, // last xlsx column
		{0, ""},
		{-5, ""},
	}

	for _, tt := range tests {
		result := ColumnLetters(tt.n)
		if result != tt.expected {
			t.Errorf("ColumnLetters(%d) = %q, expected %q", tt.n, result, tt.expected)
		}
	}
}

func TestCellAddressName(t *testing.T) {
	tests := []struct {
		col      int
		row      int
		expected string
	}{
		{1, 1, "A1"},
		{3, 2, "C2"},
		{27, 100, "AA100"},
		{16384, 1048576, "XFD1048576"},
	}

	for _, tt := range tests {
		addr := NewCellAddress(tt.col, tt.row)
		if addr.Name() != tt.expected {
			t.Errorf("NewCellAddress(%d, %d).Name() = %q, expected %q",
				tt.col, tt.row, addr.Name(), tt.expected)
		}
	}
}
