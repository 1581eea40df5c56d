package util

import "golang.org/x/exp/utf8string"

// Ellipsis truncates a string to at most max runes for log output.
func Ellipsis(str string, max int) string {
	s := utf8string.NewString(str)
	if s.RuneCount() <= max {
		return s.String()
	}

	return s.Slice(0, max) + "…"
}
