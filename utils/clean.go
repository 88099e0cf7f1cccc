package utils

import (
	"regexp"
	"strings"
)

var unsafeNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// CleanFileName replaces characters that are not allowed in file names on
// any supported platform. Used to derive export names from page titles.
func CleanFileName(input string) string {
	cleaned := unsafeNameChars.ReplaceAllString(input, "_")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "journal"
	}
	return cleaned
}
