// Package storage contains the item store adapter contract and its
// implementations. The core expresses every condition as a key-equality
// predicate; it never depends on a specific engine's query language.
//
//go:generate mockgen -destination ../../internal/mocks/mock_storage.go -package mocks github.com/kernelworx/psm/pkg/storage Datastore
package storage

import (
	"context"

	"github.com/kernelworx/psm/pkg/types"
)

// ConsistencyPreference selects the read consistency a caller requires.
// Authorization reads that gate a write must request HigherConsistency so a
// just-revoked share can never pass a stale check; listing reads may
// tolerate eventual consistency.
type ConsistencyPreference int

const (
	// MinimizeLatency permits an eventually consistent read.
	MinimizeLatency ConsistencyPreference = iota
	// HigherConsistency demands a strongly consistent read.
	HigherConsistency
)

// ReadOptions carries per-read options through the adapter.
type ReadOptions struct {
	Consistency ConsistencyPreference
}

// AccountsBackend manages identity records. Account ids are stored with the
// ACCOUNT# prefix.
type AccountsBackend interface {
	// GetAccount returns the account with the given id.
	// If none exists, it must return ErrNotFound.
	GetAccount(ctx context.Context, accountID string, opts ReadOptions) (*types.Account, error)

	// GetAccountByEmail returns the account with the given email via the
	// email secondary index. If none exists, it must return ErrNotFound.
	GetAccountByEmail(ctx context.Context, email string, opts ReadOptions) (*types.Account, error)

	// PutAccount writes the full account record, replacing any existing row.
	PutAccount(ctx context.Context, account *types.Account) error
}

// ProfilesBackend manages seller profiles. A profile occupies two rows: the
// ownership row keyed (ownerAccountId, profileId) and the metadata row keyed
// profileId alone (the owner-agnostic secondary index).
type ProfilesBackend interface {
	// GetProfile returns the profile under the composite ownership key.
	GetProfile(ctx context.Context, ownerAccountID, profileID string, opts ReadOptions) (*types.SellerProfile, error)

	// GetProfileByID returns the profile via the profileId index, regardless
	// of owner. If none exists, it must return ErrNotFound.
	GetProfileByID(ctx context.Context, profileID string, opts ReadOptions) (*types.SellerProfile, error)

	// ListProfilesByOwner returns all profiles owned by the account.
	ListProfilesByOwner(ctx context.Context, ownerAccountID string, opts ReadOptions) ([]*types.SellerProfile, error)

	// PutProfile writes both the ownership row and the metadata row.
	PutProfile(ctx context.Context, profile *types.SellerProfile) error

	// DeleteProfileOwnership removes the ownership row only.
	DeleteProfileOwnership(ctx context.Context, ownerAccountID, profileID string) error

	// DeleteProfileMetadata removes the metadata row only. In the profile
	// delete cascade this is the last write issued.
	DeleteProfileMetadata(ctx context.Context, profileID string) error
}

// SharesBackend manages access grants. Shares are keyed by the
// (profileId, targetAccountId) pair, so at most one row exists per pair and
// concurrent check-then-create races collapse to a single row.
type SharesBackend interface {
	// GetShare returns the share for the exact pair.
	// If none exists, it must return ErrNotFound.
	GetShare(ctx context.Context, profileID, targetAccountID string, opts ReadOptions) (*types.Share, error)

	// ListSharesByProfile returns all shares granted from the profile.
	ListSharesByProfile(ctx context.Context, profileID string, opts ReadOptions) ([]*types.Share, error)

	// ListSharesByTarget returns all shares granted to the account, via the
	// targetAccountId secondary index.
	ListSharesByTarget(ctx context.Context, targetAccountID string, opts ReadOptions) ([]*types.Share, error)

	// PutShare writes the share row, replacing an existing row for the pair.
	PutShare(ctx context.Context, share *types.Share) error

	// DeleteShare removes the share row for the pair. Deleting an absent row
	// is not an error.
	DeleteShare(ctx context.Context, profileID, targetAccountID string) error
}

// InvitesBackend manages redeemable invites keyed by invite code. Expired
// rows may linger until a store-level TTL sweep removes them; redemption
// re-checks expiry at the application level.
type InvitesBackend interface {
	// GetInvite returns the invite with the given code.
	// If none exists, it must return ErrNotFound.
	GetInvite(ctx context.Context, inviteCode string, opts ReadOptions) (*types.Invite, error)

	// ListInvitesByProfile returns all invites created for the profile.
	ListInvitesByProfile(ctx context.Context, profileID string, opts ReadOptions) ([]*types.Invite, error)

	// PutInvite writes the invite row.
	PutInvite(ctx context.Context, invite *types.Invite) error

	// MarkInviteUsed sets used=true on the invite row.
	// If the row is absent, it must return ErrNotFound.
	MarkInviteUsed(ctx context.Context, inviteCode string) error

	// DeleteInvite removes the invite row. Deleting an absent row is not an
	// error.
	DeleteInvite(ctx context.Context, inviteCode string) error
}

// CatalogsBackend manages product catalogs. Catalog rows are never hard
// deleted; MarkCatalogDeleted flips the soft-delete marker.
type CatalogsBackend interface {
	// GetCatalog returns the catalog with the given id, including
	// soft-deleted rows. If none exists, it must return ErrNotFound.
	GetCatalog(ctx context.Context, catalogID string, opts ReadOptions) (*types.Catalog, error)

	// ListPublicCatalogs returns all public, non-deleted catalogs.
	ListPublicCatalogs(ctx context.Context, opts ReadOptions) ([]*types.Catalog, error)

	// ListCatalogsByOwner returns all non-deleted catalogs owned by the
	// account.
	ListCatalogsByOwner(ctx context.Context, ownerAccountID string, opts ReadOptions) ([]*types.Catalog, error)

	// PutCatalog writes the full catalog record.
	PutCatalog(ctx context.Context, catalog *types.Catalog) error

	// MarkCatalogDeleted soft-deletes the catalog.
	// If the row is absent, it must return ErrNotFound.
	MarkCatalogDeleted(ctx context.Context, catalogID string) error
}

// CampaignsBackend manages sales campaigns keyed (profileId, campaignId),
// with secondary indexes on campaignId, catalogId and unitCampaignKey.
type CampaignsBackend interface {
	// GetCampaign returns the campaign under the composite key.
	GetCampaign(ctx context.Context, profileID, campaignID string, opts ReadOptions) (*types.Campaign, error)

	// GetCampaignByID returns the campaign via the campaignId index.
	// If none exists, it must return ErrNotFound.
	GetCampaignByID(ctx context.Context, campaignID string, opts ReadOptions) (*types.Campaign, error)

	// ListCampaignsByProfile returns all campaigns for the profile.
	ListCampaignsByProfile(ctx context.Context, profileID string, opts ReadOptions) ([]*types.Campaign, error)

	// ListCampaignsByCatalog returns all campaigns referencing the catalog.
	ListCampaignsByCatalog(ctx context.Context, catalogID string, opts ReadOptions) ([]*types.Campaign, error)

	// ListCampaignsByUnitKey returns all campaigns sharing the derived unit
	// campaign key.
	ListCampaignsByUnitKey(ctx context.Context, unitCampaignKey string, opts ReadOptions) ([]*types.Campaign, error)

	// PutCampaign writes the full campaign record.
	PutCampaign(ctx context.Context, campaign *types.Campaign) error

	// DeleteCampaign removes the campaign row.
	DeleteCampaign(ctx context.Context, profileID, campaignID string) error
}

// OrdersBackend manages orders keyed (campaignId, orderId), with secondary
// indexes on orderId and on (profileId, createdAt).
type OrdersBackend interface {
	// GetOrder returns the order under the composite key.
	GetOrder(ctx context.Context, campaignID, orderID string, opts ReadOptions) (*types.Order, error)

	// GetOrderByID returns the order via the orderId index.
	// If none exists, it must return ErrNotFound.
	GetOrderByID(ctx context.Context, orderID string, opts ReadOptions) (*types.Order, error)

	// ListOrdersByCampaign returns all orders within the campaign.
	ListOrdersByCampaign(ctx context.Context, campaignID string, opts ReadOptions) ([]*types.Order, error)

	// ListOrdersByProfile returns all orders for the profile ordered by
	// creation time.
	ListOrdersByProfile(ctx context.Context, profileID string, opts ReadOptions) ([]*types.Order, error)

	// PutOrder writes the full order record.
	PutOrder(ctx context.Context, order *types.Order) error

	// DeleteOrder removes the order row.
	DeleteOrder(ctx context.Context, campaignID, orderID string) error
}

// SharedCampaignsBackend manages publishable campaign templates keyed by
// share code.
type SharedCampaignsBackend interface {
	// GetSharedCampaign returns the template with the given code.
	// If none exists, it must return ErrNotFound.
	GetSharedCampaign(ctx context.Context, code string, opts ReadOptions) (*types.SharedCampaignTemplate, error)

	// ListSharedCampaignsByCreator returns all templates published by the
	// account.
	ListSharedCampaignsByCreator(ctx context.Context, accountID string, opts ReadOptions) ([]*types.SharedCampaignTemplate, error)

	// ListSharedCampaignsByUnitKey returns all templates sharing the derived
	// unit campaign key.
	ListSharedCampaignsByUnitKey(ctx context.Context, unitCampaignKey string, opts ReadOptions) ([]*types.SharedCampaignTemplate, error)

	// PutSharedCampaign writes the full template record.
	PutSharedCampaign(ctx context.Context, tpl *types.SharedCampaignTemplate) error

	// DeleteSharedCampaign removes the template row.
	DeleteSharedCampaign(ctx context.Context, code string) error
}

// Datastore is the aggregate item store adapter the core depends on.
type Datastore interface {
	AccountsBackend
	ProfilesBackend
	SharesBackend
	InvitesBackend
	CatalogsBackend
	CampaignsBackend
	OrdersBackend
	SharedCampaignsBackend

	// IsReady reports whether the datastore is ready to accept traffic.
	IsReady(ctx context.Context) (ReadinessStatus, error)

	// Close closes the datastore and cleans up any residual resources.
	Close()
}

// ReadinessStatus represents the readiness status of the datastore.
type ReadinessStatus struct {
	// Message is a human-friendly status message for the current status.
	Message string

	IsReady bool
}
