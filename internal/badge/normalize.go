// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package badge

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const fallbackSlug = "badge"

var (
	apostrophes = regexp.MustCompile(`['’]`)
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slug converts a title into a filename stem: lowercase ASCII letters,
// digits and single hyphens, never leading or trailing. Titles with nothing
// usable become "badge".
//
//	"Scratch and Sniff!" -> "scratch-and-sniff"
func Slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = apostrophes.ReplaceAllString(s, "")
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallbackSlug
	}
	return s
}

// timestampLayouts are tried in order; the first that parses wins.
// Every numeric field accepts one or two digits.
var timestampLayouts = []string{
	"1/2/2006 15:4:5",
	"1/2/2006 15:4",
	"2006-1-2 15:4:5",
	"2006-1-2 15:4",
	"1/2/2006",
}

// DeriveYear returns the four-digit year of a form timestamp, or "" when
// no known layout matches.
func DeriveYear(ts string) string {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return strconv.Itoa(t.Year())
		}
	}
	return ""
}

// ParseQuantity parses an integer count, returning 0 on failure.
// Negative values are kept.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
