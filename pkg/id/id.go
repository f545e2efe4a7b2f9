// Package id mints the identifiers used as storage key components.
// Profiles, campaigns, catalogs and invites use monotonic ULIDs; orders use
// UUIDv4 for compatibility with rows written by the first schema version.
package id

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/kernelworx/psm/pkg/key"
)

var (
	mutex   sync.Mutex
	entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a fresh ULID string.
func New() string {
	return NewFromTime(time.Now())
}

// NewFromTime returns a ULID string derived from the given time.
func NewFromTime(t time.Time) string {
	mutex.Lock()
	defer mutex.Unlock()

	return ulid.MustNew(uint64(t.UnixMilli()), entropy).String()
}

// IsValid reports whether s parses as a ULID.
func IsValid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// NewProfileID returns a fresh PROFILE#-prefixed identifier.
func NewProfileID() string {
	return key.WithPrefix(key.Profile, New())
}

// NewCampaignID returns a fresh CAMPAIGN#-prefixed identifier.
func NewCampaignID() string {
	return key.WithPrefix(key.Campaign, New())
}

// NewCatalogID returns a fresh CATALOG#-prefixed identifier.
func NewCatalogID() string {
	return key.WithPrefix(key.Catalog, New())
}

// NewOrderID returns a fresh ORDER#-prefixed identifier.
func NewOrderID() string {
	return key.WithPrefix(key.Order, uuid.NewString())
}

// NewInviteCode returns a fresh redeemable invite code. Codes are plain
// ULIDs; they are opaque to callers and never carry a type prefix.
func NewInviteCode() string {
	return New()
}

// NewSharedCampaignCode returns a fresh shared campaign share code. Like
// invite codes these are unprefixed ULIDs.
func NewSharedCampaignCode() string {
	return New()
}
