package storage

import (
	"regexp"
	"strings"
)

var reUnsafe = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename strips characters that are unsafe in file names,
// replaces spaces with underscores, and caps the length at 50 runes.
func SanitizeFilename(name string) string {
	safe := reUnsafe.ReplaceAllString(name, "")
	safe = strings.ReplaceAll(safe, " ", "_")

	runes := []rune(safe)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return string(runes)
}
