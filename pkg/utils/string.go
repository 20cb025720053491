package utils

// Truncate is a simple string truncate, used to fit memo titles and
// content previews on one list line
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
