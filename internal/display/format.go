package display

import (
	"strconv"
	"strings"
)

// Represent formats a score for a table cell. Values below one drop the
// leading zero to keep columns narrow.
func Represent(value *float64) string {
	if value == nil {
		return "X"
	}
	if *value < 1 {
		return strings.TrimLeft(strconv.FormatFloat(*value, 'f', 3, 64), "0")
	}
	return strconv.FormatFloat(*value, 'f', 1, 64)
}
