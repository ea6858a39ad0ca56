package model

import (
	"fmt"
	"strconv"
)

// Ordinal renders a 1-based position as an English ordinal: 1st, 2nd,
// 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// Repr renders an argument or default value for error messages and
// signature strings. Strings are single-quoted; everything else uses its
// default formatting.
func Repr(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return "'" + t + "'"
	default:
		return fmt.Sprintf("%v", t)
	}
}
