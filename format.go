package kml

import (
	"strconv"
	"strings"
)

// formatOrdinate converts one ordinate value to text. With a precision cap
// configured it produces fixed-point output with a literal '.' separator
// independent of the host locale, at most precision decimal places, and no
// trailing zeros or dangling separator. Without a cap it falls back to the
// shortest representation that round-trips.
func (w *Writer) formatOrdinate(v float64) string {
	if w.precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', w.precision, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
