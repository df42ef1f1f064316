// Package validation holds the field-format rules shared by the pollution
// and user services. Every pattern is anchored and carries its own length
// bound, so a match means both the character set and the size are acceptable.
package validation

import (
	"regexp"
	"unicode/utf8"
)

// Pollution report fields.
var (
	PollutionID   = regexp.MustCompile(`^[0-9]+$`)
	Title         = regexp.MustCompile(`^[a-zA-ZÀ-ÿ0-9\s\-']{1,255}$`)
	Location      = regexp.MustCompile(`^[a-zA-ZÀ-ÿ0-9\s,.\-']{1,255}$`)
	PollutionType = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s\-]{1,100}$`)
	Latitude      = regexp.MustCompile(`^-?([0-8]?[0-9]|90)(\.[0-9]{1,6})?$`)
	Longitude     = regexp.MustCompile(`^-?(1[0-7][0-9]|[0-9]?[0-9])(\.[0-9]{1,6})?$`)
	ImageURL      = regexp.MustCompile(`^https?://.{1,500}$`)
)

// User fields. UserID is the only case-insensitive pattern.
var (
	UserID   = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	Name     = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s\-']{1,100}$`)
	Login    = regexp.MustCompile(`^[A-Za-z0-9_\-]{3,50}$`)
	Password = regexp.MustCompile(`^.{6,255}$`)
)

// DescriptionMaxLen bounds the pollution description. The description allows
// any character, so it is a plain rune-count limit rather than a pattern.
const DescriptionMaxLen = 2000

// Optional reports whether value matches the pattern, treating an empty
// value as "field not supplied" and therefore acceptable.
func Optional(pattern *regexp.Regexp, value string) bool {
	if value == "" {
		return true
	}
	return pattern.MatchString(value)
}

// Required reports whether value is present and matches the pattern.
func Required(pattern *regexp.Regexp, value string) bool {
	if value == "" {
		return false
	}
	return pattern.MatchString(value)
}

// DescriptionOK reports whether a description fits the length bound.
func DescriptionOK(value string) bool {
	return utf8.RuneCountInString(value) <= DescriptionMaxLen
}
