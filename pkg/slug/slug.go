package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Generate generates a URL-friendly slug from a title and numeric ID
// Format: {lowercased-title}-{id}
// Example: "2015 SRT Hellcat parked at beach" + 7 -> "2015-srt-hellcat-parked-at-beach-7"
func Generate(title string, id int) string {
	base := Normalize(title)
	if base == "" {
		return fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%s-%d", base, id)
}

// Normalize lowercases s and collapses every run of non-alphanumeric characters into one dash
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
