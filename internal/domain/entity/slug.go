package entity

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const maxSlugBaseLen = 100

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// SlugBase normalizes a title into the URL-safe part of a slug.
func SlugBase(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	if len(s) > maxSlugBaseLen {
		s = s[:maxSlugBaseLen]
	}
	return s
}

// Slugify returns SlugBase(title) suffixed with the millisecond timestamp of
// now. The suffix keeps slugs unique for identical titles and non-empty for
// titles that normalize to nothing.
func Slugify(title string, now time.Time) string {
	return SlugBase(title) + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}
