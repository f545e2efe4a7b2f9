// Package types contains the entity records managed by the Popcorn Sales
// Manager core. Identifier fields hold their storage representation (with
// type prefixes); the transform package strips them before records are
// returned to callers.
package types

import (
	"strings"
	"time"
)

// Permission is a single grant level carried by a Share.
type Permission string

const (
	PermissionRead  Permission = "READ"
	PermissionWrite Permission = "WRITE"
)

// NormalizePermissions upper-cases and de-duplicates a permission list,
// dropping values that are neither READ nor WRITE. Historical share rows
// carry lower-cased values.
func NormalizePermissions(perms []Permission) []Permission {
	var out []Permission
	seen := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		up := Permission(strings.ToUpper(string(p)))
		if up != PermissionRead && up != PermissionWrite {
			continue
		}
		if _, ok := seen[up]; ok {
			continue
		}
		seen[up] = struct{}{}
		out = append(out, up)
	}
	return out
}

// HasPermission reports whether perms satisfies the required level.
// WRITE implies READ.
func HasPermission(perms []Permission, required Permission) bool {
	for _, p := range NormalizePermissions(perms) {
		if p == required {
			return true
		}
		if required == PermissionRead && p == PermissionWrite {
			return true
		}
	}
	return false
}

// Account is the identity record for an authenticated subject.
type Account struct {
	AccountID   string `json:"accountId"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
	Preferences string `json:"preferences,omitempty"` // free-form JSON document

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SellerProfile is a named seller managed by exactly one owning account.
// IsOwner and Permissions are view-only annotations computed per caller;
// they are never persisted.
type SellerProfile struct {
	OwnerAccountID string `json:"ownerAccountId"`
	ProfileID      string `json:"profileId"`
	SellerName     string `json:"sellerName"`
	UnitType       string `json:"unitType,omitempty"`
	UnitNumber     string `json:"unitNumber,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`

	IsOwner     bool         `json:"isOwner"`
	Permissions []Permission `json:"permissions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Share grants a target account access to a seller profile. At most one
// Share exists per (profileId, targetAccountId) pair.
type Share struct {
	ProfileID       string       `json:"profileId"`
	TargetAccountID string       `json:"targetAccountId"`
	Permissions     []Permission `json:"permissions"`
	CreatedBy       string       `json:"createdBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Invite is a redeemable, time-limited stand-in for a direct share. Once
// used or past ExpiresAt it is inert even if the row still exists.
type Invite struct {
	InviteCode  string       `json:"inviteCode"`
	ProfileID   string       `json:"profileId"`
	Permissions []Permission `json:"permissions"`
	CreatedBy   string       `json:"createdBy"`
	ExpiresAt   int64        `json:"expiresAt"` // epoch seconds
	Used        bool         `json:"used"`

	CreatedAt time.Time `json:"createdAt"`
}

// Redeemable reports whether the invite can still be redeemed at time now.
func (i *Invite) Redeemable(now time.Time) bool {
	return !i.Used && now.Unix() < i.ExpiresAt
}

// CatalogType distinguishes admin-curated catalogs from user-created ones.
type CatalogType string

const (
	CatalogTypeAdminManaged CatalogType = "ADMIN_MANAGED"
	CatalogTypeUserCreated  CatalogType = "USER_CREATED"
)

// Product is one sellable item inside a catalog.
type Product struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Catalog is a reusable product list. Catalogs are soft-deleted only so that
// historical campaigns keep a resolvable reference.
type Catalog struct {
	CatalogID      string      `json:"catalogId"`
	CatalogName    string      `json:"catalogName"`
	Products       []Product   `json:"products"`
	OwnerAccountID string      `json:"ownerAccountId,omitempty"` // empty for admin-managed
	CatalogType    CatalogType `json:"catalogType"`
	IsPublic       bool        `json:"isPublic"`
	IsDeleted      bool        `json:"isDeleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product returns the product with the given id, or nil.
func (c *Catalog) Product(productID string) *Product {
	for i := range c.Products {
		if c.Products[i].ProductID == productID {
			return &c.Products[i]
		}
	}
	return nil
}

// Campaign is a sales period for a profile against one catalog.
// TotalOrders and TotalRevenue are denormalized counters maintained by the
// order mutation path; they are never recomputed from a scan.
type Campaign struct {
	ProfileID       string `json:"profileId"`
	CampaignID      string `json:"campaignId"`
	CampaignName    string `json:"campaignName"`
	CatalogID       string `json:"catalogId"`
	UnitType        string `json:"unitType,omitempty"`
	UnitNumber      string `json:"unitNumber,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	Year            int    `json:"year,omitempty"`
	UnitCampaignKey string `json:"unitCampaignKey,omitempty"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`

	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LineItem is one order line with the product name and price snapshotted at
// order time, decoupled from future catalog edits.
type LineItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Subtotal     float64 `json:"subtotal"`
}

// Order is a single customer purchase within a campaign. TotalAmount is
// always computed server-side.
type Order struct {
	CampaignID      string     `json:"campaignId"`
	OrderID         string     `json:"orderId"`
	ProfileID       string     `json:"profileId"`
	CustomerName    string     `json:"customerName"`
	CustomerPhone   string     `json:"customerPhone,omitempty"`
	CustomerAddress string     `json:"customerAddress,omitempty"`
	OrderDate       string     `json:"orderDate,omitempty"`
	PaymentMethod   string     `json:"paymentMethod,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	LineItems       []LineItem `json:"lineItems"`
	TotalAmount     float64    `json:"totalAmount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SharedCampaignTemplate is a publishable campaign template other accounts
// can instantiate via its share code.
type SharedCampaignTemplate struct {
	SharedCampaignCode string `json:"sharedCampaignCode"`
	CampaignName       string `json:"campaignName"`
	CatalogID          string `json:"catalogId"`
	CreatedBy          string `json:"createdBy"`
	UnitCampaignKey    string `json:"unitCampaignKey,omitempty"`
	Description        string `json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
