package bill

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9_-]`)
	slugRepeat  = regexp.MustCompile(`-+`)
)

// Slugify converts a free-form reference into a filename-safe token.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugRepeat.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// Ext returns the lowercased extension of filename, defaulting to ".pdf".
func Ext(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ".pdf"
	}
	return ext
}
