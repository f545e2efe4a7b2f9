// Package key encodes and decodes the type-prefixed identifiers used as
// storage key components. Identifiers are stored as 'KIND#rawid' and always
// surfaced to callers with the prefix stripped.
package key

import (
	"strconv"
	"strings"
)

// Kind is a storage identifier type tag.
type Kind string

const (
	Account  Kind = "ACCOUNT"
	Profile  Kind = "PROFILE"
	Campaign Kind = "CAMPAIGN"
	Order    Kind = "ORDER"
	Catalog  Kind = "CATALOG"
	Invite   Kind = "INVITE"
)

const delimiter = "#"

// legacyPrefixes are compound prefixes written by earlier schema versions on
// share target ids. Longer prefixes are listed first so that stripping never
// leaves a partial prefix behind: 'SHARE#ACCOUNT#abc' must strip to 'abc',
// not 'ACCOUNT#abc'.
var legacyPrefixes = []string{
	"SHARE#ACCOUNT#",
	"SHARE#",
}

// WithPrefix returns id carrying the kind's prefix. It is idempotent: an id
// that already carries the prefix is returned unchanged. Empty input stays
// empty.
func WithPrefix(kind Kind, id string) string {
	if id == "" {
		return ""
	}
	prefix := string(kind) + delimiter
	if strings.HasPrefix(id, prefix) {
		return id
	}
	return prefix + id
}

// StripPrefix removes the type prefix from id, returning the raw identifier.
// Legacy compound prefixes are checked before the generic single-prefix rule.
// Input without a delimiter is returned unchanged; empty input yields the
// empty string.
func StripPrefix(id string) string {
	if id == "" {
		return ""
	}
	for _, legacy := range legacyPrefixes {
		if strings.HasPrefix(id, legacy) {
			return id[len(legacy):]
		}
	}
	if i := strings.Index(id, delimiter); i >= 0 {
		return id[i+1:]
	}
	return id
}

// HasPrefix reports whether id carries the kind's prefix.
func HasPrefix(kind Kind, id string) bool {
	return strings.HasPrefix(id, string(kind)+delimiter)
}

// UnitCampaignKey derives the composite key used to discover campaigns run
// by the same unit in the same year. Components are upper-cased so lookups
// are case-insensitive.
func UnitCampaignKey(unitType, unitNumber, city, state string, year int) string {
	parts := []string{
		strings.ToUpper(strings.TrimSpace(unitType)),
		strings.ToUpper(strings.TrimSpace(unitNumber)),
		strings.ToUpper(strings.TrimSpace(city)),
		strings.ToUpper(strings.TrimSpace(state)),
		strconv.Itoa(year),
	}
	return strings.Join(parts, delimiter)
}
