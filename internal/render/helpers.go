package render

import "strconv"

// Missing returns MissingValue if string is empty
func Missing(s string) string {
	if s == "" {
		return MissingValue
	}
	return s
}

// Truncate truncates a string to max runes.
func Truncate(s string, max int) string {
	rr := []rune(s)
	if len(rr) <= max {
		return s
	}
	if max <= 1 {
		return string(rr[:max])
	}
	return string(rr[:max-1]) + "…"
}

// IntToStr converts int to string
func IntToStr(i int) string {
	return strconv.Itoa(i)
}
