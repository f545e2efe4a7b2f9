// Package transform projects stored records into their outward shape: key
// prefixes stripped (legacy compound prefixes included), per-caller view
// annotations computed. Every function is pure and nil-tolerant, and always
// returns a copy so callers can never mutate a stored row through the view.
package transform

import (
	"github.com/kernelworx/psm/pkg/key"
	"github.com/kernelworx/psm/pkg/types"
)

// Account returns the outward view of an account.
func Account(a *types.Account) *types.Account {
	if a == nil {
		return nil
	}
	out := *a
	out.AccountID = key.StripPrefix(a.AccountID)
	return &out
}

// Profile returns the caller-specific view of a profile: ids stripped,
// IsOwner and Permissions computed. Owners always see both permissions.
func Profile(p *types.SellerProfile, callerAccountID string, permissions []types.Permission) *types.SellerProfile {
	if p == nil {
		return nil
	}
	out := *p
	out.OwnerAccountID = key.StripPrefix(p.OwnerAccountID)
	out.ProfileID = key.StripPrefix(p.ProfileID)
	out.IsOwner = isOwner(callerAccountID, p)
	if out.IsOwner {
		out.Permissions = []types.Permission{types.PermissionRead, types.PermissionWrite}
	} else {
		out.Permissions = types.NormalizePermissions(permissions)
	}
	return &out
}

// Profiles projects a listing for the caller. Permissions apply to every
// element, as listings are always scoped to a single grant.
func Profiles(ps []*types.SellerProfile, callerAccountID string, permissions []types.Permission) []*types.SellerProfile {
	out := make([]*types.SellerProfile, 0, len(ps))
	for _, p := range ps {
		out = append(out, Profile(p, callerAccountID, permissions))
	}
	return out
}

// Share returns the outward view of a share. Target account ids written by
// old clients carry SHARE# or SHARE#ACCOUNT# prefixes; StripPrefix handles
// both.
func Share(s *types.Share) *types.Share {
	if s == nil {
		return nil
	}
	out := *s
	out.ProfileID = key.StripPrefix(s.ProfileID)
	out.TargetAccountID = key.StripPrefix(s.TargetAccountID)
	out.CreatedBy = key.StripPrefix(s.CreatedBy)
	out.Permissions = types.NormalizePermissions(s.Permissions)
	return &out
}

func Shares(ss []*types.Share) []*types.Share {
	out := make([]*types.Share, 0, len(ss))
	for _, s := range ss {
		out = append(out, Share(s))
	}
	return out
}

// Invite returns the outward view of an invite.
func Invite(i *types.Invite) *types.Invite {
	if i == nil {
		return nil
	}
	out := *i
	out.ProfileID = key.StripPrefix(i.ProfileID)
	out.CreatedBy = key.StripPrefix(i.CreatedBy)
	out.Permissions = types.NormalizePermissions(i.Permissions)
	return &out
}

func Invites(is []*types.Invite) []*types.Invite {
	out := make([]*types.Invite, 0, len(is))
	for _, i := range is {
		out = append(out, Invite(i))
	}
	return out
}

// Catalog returns the outward view of a catalog, products copied.
func Catalog(c *types.Catalog) *types.Catalog {
	if c == nil {
		return nil
	}
	out := *c
	out.CatalogID = key.StripPrefix(c.CatalogID)
	out.OwnerAccountID = key.StripPrefix(c.OwnerAccountID)
	out.Products = append([]types.Product(nil), c.Products...)
	return &out
}

func Catalogs(cs []*types.Catalog) []*types.Catalog {
	out := make([]*types.Catalog, 0, len(cs))
	for _, c := range cs {
		out = append(out, Catalog(c))
	}
	return out
}

// Campaign returns the outward view of a campaign.
func Campaign(c *types.Campaign) *types.Campaign {
	if c == nil {
		return nil
	}
	out := *c
	out.ProfileID = key.StripPrefix(c.ProfileID)
	out.CampaignID = key.StripPrefix(c.CampaignID)
	out.CatalogID = key.StripPrefix(c.CatalogID)
	return &out
}

func Campaigns(cs []*types.Campaign) []*types.Campaign {
	out := make([]*types.Campaign, 0, len(cs))
	for _, c := range cs {
		out = append(out, Campaign(c))
	}
	return out
}

// Order returns the outward view of an order, line items copied. Optional
// customer fields pass through verbatim; absent stays absent.
func Order(o *types.Order) *types.Order {
	if o == nil {
		return nil
	}
	out := *o
	out.CampaignID = key.StripPrefix(o.CampaignID)
	out.OrderID = key.StripPrefix(o.OrderID)
	out.ProfileID = key.StripPrefix(o.ProfileID)
	out.LineItems = append([]types.LineItem(nil), o.LineItems...)
	return &out
}

func Orders(os []*types.Order) []*types.Order {
	out := make([]*types.Order, 0, len(os))
	for _, o := range os {
		out = append(out, Order(o))
	}
	return out
}

// SharedCampaign returns the outward view of a shared campaign template.
func SharedCampaign(t *types.SharedCampaignTemplate) *types.SharedCampaignTemplate {
	if t == nil {
		return nil
	}
	out := *t
	out.CatalogID = key.StripPrefix(t.CatalogID)
	out.CreatedBy = key.StripPrefix(t.CreatedBy)
	return &out
}

func SharedCampaigns(ts []*types.SharedCampaignTemplate) []*types.SharedCampaignTemplate {
	out := make([]*types.SharedCampaignTemplate, 0, len(ts))
	for _, t := range ts {
		out = append(out, SharedCampaign(t))
	}
	return out
}

func isOwner(callerAccountID string, p *types.SellerProfile) bool {
	return p.OwnerAccountID == key.WithPrefix(key.Account, callerAccountID) ||
		p.OwnerAccountID == callerAccountID
}
