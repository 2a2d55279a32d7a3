package scene

import "strconv"

// FormatLength печатает длину без лишних нулей: 6 -> "6", 7.5 -> "7.5".
func FormatLength(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
