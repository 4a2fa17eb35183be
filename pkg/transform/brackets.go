package transform

// Brackets wraps s in square brackets. The empty string becomes "[]".
func Brackets(s string) string {
	return "[" + s + "]"
}
