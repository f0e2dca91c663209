// Package grid provides spreadsheet grid addressing and size fitting.
package grid

import "strconv"

// ColumnLetters converts a 1-based column number to its spreadsheet letter
// address using bijective base-26 encoding: 1 -> "A", 26 -> "Z", 27 -> "AA".
// There is no representation for zero; n < 1 returns the empty string.
func ColumnLetters(n int) string {
	if n < 1 {
		return ""
	}
	var buf [16]byte
	i := len(buf)
	for n > 0 {
		rem := n % 26
		n /= 26
		if rem == 0 {
			// A zero remainder stands for 'Z'; borrow from the quotient.
			rem = 26
			n--
		}
		i--
		buf[i] = byte('A' + rem - 1)
	}
	return string(buf[i:])
}

// CellAddress identifies a single cell by column letters and 1-based row.
type CellAddress struct {
	// Column is the bijective base-26 column address (e.g. "A", "AZ").
	Column string
	// Row is the 1-based row number.
	Row int
}

// NewCellAddress builds a CellAddress from 1-based column and row numbers.
func NewCellAddress(col, row int) CellAddress {
	return CellAddress{Column: ColumnLetters(col), Row: row}
}

// Name returns the concatenated cell name used as the sink addressing key,
// e.g. "C2".
func (a CellAddress) Name() string {
	return a.Column + strconv.Itoa(a.Row)
}
