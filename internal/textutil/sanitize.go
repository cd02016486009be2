package textutil

import "strings"

// CleanText collapses whitespace runs (including the newlines and indentation
// that surround text nodes in page markup) into single spaces and trims the
// result.
func CleanText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return strings.Join(strings.Fields(value), " ")
}
