// Package memory provides an ephemeral, memory-backed implementation of
// [storage.Datastore]. Instances may be safely shared by multiple
// goroutines.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

var tracer = otel.Tracer("psm/pkg/storage/memory")

// StorageOption configures a [MemoryBackend] instance.
type StorageOption func(ds *MemoryBackend)

// WithInviteSweepInterval enables a background sweep that physically removes
// expired invite rows, emulating a store-level TTL. Redemption never relies
// on the sweep; expiry is re-checked at the application level.
func WithInviteSweepInterval(interval time.Duration) StorageOption {
	return func(ds *MemoryBackend) { ds.inviteSweepInterval = interval }
}

func pairKey(a, b string) string {
	return a + "|" + b
}

// MemoryBackend is the in-memory [storage.Datastore].
type MemoryBackend struct {
	// map: accountId => account
	accounts      map[string]*types.Account // GUARDED_BY(mutexAccounts).
	mutexAccounts sync.RWMutex

	// ownership rows: (ownerAccountId | profileId) => profile
	profiles map[string]*types.SellerProfile // GUARDED_BY(mutexProfiles).
	// metadata rows (profileId index): profileId => profile
	profileMeta   map[string]*types.SellerProfile // GUARDED_BY(mutexProfiles).
	mutexProfiles sync.RWMutex

	// map: (profileId | targetAccountId) => share
	shares      map[string]*types.Share // GUARDED_BY(mutexShares).
	mutexShares sync.RWMutex

	// map: inviteCode => invite
	invites      map[string]*types.Invite // GUARDED_BY(mutexInvites).
	mutexInvites sync.RWMutex

	// map: catalogId => catalog
	catalogs      map[string]*types.Catalog // GUARDED_BY(mutexCatalogs).
	mutexCatalogs sync.RWMutex

	// map: campaignId => campaign
	campaigns      map[string]*types.Campaign // GUARDED_BY(mutexCampaigns).
	mutexCampaigns sync.RWMutex

	// map: orderId => order
	orders      map[string]*types.Order // GUARDED_BY(mutexOrders).
	mutexOrders sync.RWMutex

	// map: sharedCampaignCode => template
	sharedCampaigns      map[string]*types.SharedCampaignTemplate // GUARDED_BY(mutexSharedCampaigns).
	mutexSharedCampaigns sync.RWMutex

	inviteSweepInterval time.Duration
	sweepDone           chan struct{}
	sweepOnce           sync.Once
}

var _ storage.Datastore = (*MemoryBackend)(nil)

// New creates a new [MemoryBackend] given the options.
func New(opts ...StorageOption) storage.Datastore {
	ds := &MemoryBackend{
		accounts:        make(map[string]*types.Account),
		profiles:        make(map[string]*types.SellerProfile),
		profileMeta:     make(map[string]*types.SellerProfile),
		shares:          make(map[string]*types.Share),
		invites:         make(map[string]*types.Invite),
		catalogs:        make(map[string]*types.Catalog),
		campaigns:       make(map[string]*types.Campaign),
		orders:          make(map[string]*types.Order),
		sharedCampaigns: make(map[string]*types.SharedCampaignTemplate),
		sweepDone:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(ds)
	}

	if ds.inviteSweepInterval > 0 {
		go ds.sweepInvites()
	}

	return ds
}

// Close stops the invite sweep, if one is running.
func (s *MemoryBackend) Close() {
	s.sweepOnce.Do(func() { close(s.sweepDone) })
}

// IsReady see [storage.Datastore].IsReady.
func (s *MemoryBackend) IsReady(_ context.Context) (storage.ReadinessStatus, error) {
	return storage.ReadinessStatus{IsReady: true}, nil
}

func (s *MemoryBackend) sweepInvites() {
	ticker := time.NewTicker(s.inviteSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.sweepDone:
			return
		case now := <-ticker.C:
			s.mutexInvites.Lock()
			for code, inv := range s.invites {
				if now.Unix() >= inv.ExpiresAt {
					delete(s.invites, code)
				}
			}
			s.mutexInvites.Unlock()
		}
	}
}

// GetAccount see [storage.AccountsBackend].GetAccount.
func (s *MemoryBackend) GetAccount(ctx context.Context, accountID string, _ storage.ReadOptions) (*types.Account, error) {
	_, span := tracer.Start(ctx, "memory.GetAccount")
	defer span.End()

	s.mutexAccounts.RLock()
	defer s.mutexAccounts.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyAccount(account), nil
}

// GetAccountByEmail see [storage.AccountsBackend].GetAccountByEmail.
func (s *MemoryBackend) GetAccountByEmail(ctx context.Context, email string, _ storage.ReadOptions) (*types.Account, error) {
	_, span := tracer.Start(ctx, "memory.GetAccountByEmail")
	defer span.End()

	s.mutexAccounts.RLock()
	defer s.mutexAccounts.RUnlock()

	for _, account := range s.accounts {
		if strings.EqualFold(account.Email, email) {
			return copyAccount(account), nil
		}
	}
	return nil, storage.ErrNotFound
}

// PutAccount see [storage.AccountsBackend].PutAccount.
func (s *MemoryBackend) PutAccount(ctx context.Context, account *types.Account) error {
	_, span := tracer.Start(ctx, "memory.PutAccount")
	defer span.End()

	s.mutexAccounts.Lock()
	defer s.mutexAccounts.Unlock()

	s.accounts[account.AccountID] = copyAccount(account)
	return nil
}

// GetProfile see [storage.ProfilesBackend].GetProfile.
func (s *MemoryBackend) GetProfile(ctx context.Context, ownerAccountID, profileID string, _ storage.ReadOptions) (*types.SellerProfile, error) {
	_, span := tracer.Start(ctx, "memory.GetProfile")
	defer span.End()

	s.mutexProfiles.RLock()
	defer s.mutexProfiles.RUnlock()

	profile, ok := s.profiles[pairKey(ownerAccountID, profileID)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyProfile(profile), nil
}

// GetProfileByID see [storage.ProfilesBackend].GetProfileByID.
func (s *MemoryBackend) GetProfileByID(ctx context.Context, profileID string, _ storage.ReadOptions) (*types.SellerProfile, error) {
	_, span := tracer.Start(ctx, "memory.GetProfileByID")
	defer span.End()

	s.mutexProfiles.RLock()
	defer s.mutexProfiles.RUnlock()

	profile, ok := s.profileMeta[profileID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyProfile(profile), nil
}

// ListProfilesByOwner see [storage.ProfilesBackend].ListProfilesByOwner.
func (s *MemoryBackend) ListProfilesByOwner(ctx context.Context, ownerAccountID string, _ storage.ReadOptions) ([]*types.SellerProfile, error) {
	_, span := tracer.Start(ctx, "memory.ListProfilesByOwner")
	defer span.End()

	s.mutexProfiles.RLock()
	defer s.mutexProfiles.RUnlock()

	var out []*types.SellerProfile
	for _, profile := range s.profiles {
		if profile.OwnerAccountID == ownerAccountID {
			out = append(out, copyProfile(profile))
		}
	}
	sortByCreated(out, func(p *types.SellerProfile) time.Time { return p.CreatedAt })
	return out, nil
}

// PutProfile see [storage.ProfilesBackend].PutProfile.
func (s *MemoryBackend) PutProfile(ctx context.Context, profile *types.SellerProfile) error {
	_, span := tracer.Start(ctx, "memory.PutProfile")
	defer span.End()

	s.mutexProfiles.Lock()
	defer s.mutexProfiles.Unlock()

	cp := copyProfile(profile)
	s.profiles[pairKey(cp.OwnerAccountID, cp.ProfileID)] = cp
	s.profileMeta[cp.ProfileID] = cp
	return nil
}

// DeleteProfileOwnership see [storage.ProfilesBackend].DeleteProfileOwnership.
func (s *MemoryBackend) DeleteProfileOwnership(ctx context.Context, ownerAccountID, profileID string) error {
	_, span := tracer.Start(ctx, "memory.DeleteProfileOwnership")
	defer span.End()

	s.mutexProfiles.Lock()
	defer s.mutexProfiles.Unlock()

	delete(s.profiles, pairKey(ownerAccountID, profileID))
	return nil
}

// DeleteProfileMetadata see [storage.ProfilesBackend].DeleteProfileMetadata.
func (s *MemoryBackend) DeleteProfileMetadata(ctx context.Context, profileID string) error {
	_, span := tracer.Start(ctx, "memory.DeleteProfileMetadata")
	defer span.End()

	s.mutexProfiles.Lock()
	defer s.mutexProfiles.Unlock()

	delete(s.profileMeta, profileID)
	return nil
}

// GetShare see [storage.SharesBackend].GetShare.
func (s *MemoryBackend) GetShare(ctx context.Context, profileID, targetAccountID string, _ storage.ReadOptions) (*types.Share, error) {
	_, span := tracer.Start(ctx, "memory.GetShare")
	defer span.End()

	s.mutexShares.RLock()
	defer s.mutexShares.RUnlock()

	share, ok := s.shares[pairKey(profileID, targetAccountID)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyShare(share), nil
}

// ListSharesByProfile see [storage.SharesBackend].ListSharesByProfile.
func (s *MemoryBackend) ListSharesByProfile(ctx context.Context, profileID string, _ storage.ReadOptions) ([]*types.Share, error) {
	_, span := tracer.Start(ctx, "memory.ListSharesByProfile")
	defer span.End()

	s.mutexShares.RLock()
	defer s.mutexShares.RUnlock()

	var out []*types.Share
	for _, share := range s.shares {
		if share.ProfileID == profileID {
			out = append(out, copyShare(share))
		}
	}
	sortByCreated(out, func(sh *types.Share) time.Time { return sh.CreatedAt })
	return out, nil
}

// ListSharesByTarget see [storage.SharesBackend].ListSharesByTarget.
func (s *MemoryBackend) ListSharesByTarget(ctx context.Context, targetAccountID string, _ storage.ReadOptions) ([]*types.Share, error) {
	_, span := tracer.Start(ctx, "memory.ListSharesByTarget")
	defer span.End()

	s.mutexShares.RLock()
	defer s.mutexShares.RUnlock()

	var out []*types.Share
	for _, share := range s.shares {
		if share.TargetAccountID == targetAccountID {
			out = append(out, copyShare(share))
		}
	}
	sortByCreated(out, func(sh *types.Share) time.Time { return sh.CreatedAt })
	return out, nil
}

// PutShare see [storage.SharesBackend].PutShare.
func (s *MemoryBackend) PutShare(ctx context.Context, share *types.Share) error {
	_, span := tracer.Start(ctx, "memory.PutShare")
	defer span.End()

	s.mutexShares.Lock()
	defer s.mutexShares.Unlock()

	cp := copyShare(share)
	s.shares[pairKey(cp.ProfileID, cp.TargetAccountID)] = cp
	return nil
}

// DeleteShare see [storage.SharesBackend].DeleteShare.
func (s *MemoryBackend) DeleteShare(ctx context.Context, profileID, targetAccountID string) error {
	_, span := tracer.Start(ctx, "memory.DeleteShare")
	defer span.End()

	s.mutexShares.Lock()
	defer s.mutexShares.Unlock()

	delete(s.shares, pairKey(profileID, targetAccountID))
	return nil
}

// GetInvite see [storage.InvitesBackend].GetInvite.
func (s *MemoryBackend) GetInvite(ctx context.Context, inviteCode string, _ storage.ReadOptions) (*types.Invite, error) {
	_, span := tracer.Start(ctx, "memory.GetInvite")
	defer span.End()

	s.mutexInvites.RLock()
	defer s.mutexInvites.RUnlock()

	invite, ok := s.invites[inviteCode]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyInvite(invite), nil
}

// ListInvitesByProfile see [storage.InvitesBackend].ListInvitesByProfile.
func (s *MemoryBackend) ListInvitesByProfile(ctx context.Context, profileID string, _ storage.ReadOptions) ([]*types.Invite, error) {
	_, span := tracer.Start(ctx, "memory.ListInvitesByProfile")
	defer span.End()

	s.mutexInvites.RLock()
	defer s.mutexInvites.RUnlock()

	var out []*types.Invite
	for _, invite := range s.invites {
		if invite.ProfileID == profileID {
			out = append(out, copyInvite(invite))
		}
	}
	sortByCreated(out, func(i *types.Invite) time.Time { return i.CreatedAt })
	return out, nil
}

// PutInvite see [storage.InvitesBackend].PutInvite.
func (s *MemoryBackend) PutInvite(ctx context.Context, invite *types.Invite) error {
	_, span := tracer.Start(ctx, "memory.PutInvite")
	defer span.End()

	s.mutexInvites.Lock()
	defer s.mutexInvites.Unlock()

	s.invites[invite.InviteCode] = copyInvite(invite)
	return nil
}

// MarkInviteUsed see [storage.InvitesBackend].MarkInviteUsed.
func (s *MemoryBackend) MarkInviteUsed(ctx context.Context, inviteCode string) error {
	_, span := tracer.Start(ctx, "memory.MarkInviteUsed")
	defer span.End()

	s.mutexInvites.Lock()
	defer s.mutexInvites.Unlock()

	invite, ok := s.invites[inviteCode]
	if !ok {
		return storage.ErrNotFound
	}
	invite.Used = true
	return nil
}

// DeleteInvite see [storage.InvitesBackend].DeleteInvite.
func (s *MemoryBackend) DeleteInvite(ctx context.Context, inviteCode string) error {
	_, span := tracer.Start(ctx, "memory.DeleteInvite")
	defer span.End()

	s.mutexInvites.Lock()
	defer s.mutexInvites.Unlock()

	delete(s.invites, inviteCode)
	return nil
}

// GetCatalog see [storage.CatalogsBackend].GetCatalog.
func (s *MemoryBackend) GetCatalog(ctx context.Context, catalogID string, _ storage.ReadOptions) (*types.Catalog, error) {
	_, span := tracer.Start(ctx, "memory.GetCatalog")
	defer span.End()

	s.mutexCatalogs.RLock()
	defer s.mutexCatalogs.RUnlock()

	catalog, ok := s.catalogs[catalogID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyCatalog(catalog), nil
}

// ListPublicCatalogs see [storage.CatalogsBackend].ListPublicCatalogs.
func (s *MemoryBackend) ListPublicCatalogs(ctx context.Context, _ storage.ReadOptions) ([]*types.Catalog, error) {
	_, span := tracer.Start(ctx, "memory.ListPublicCatalogs")
	defer span.End()

	s.mutexCatalogs.RLock()
	defer s.mutexCatalogs.RUnlock()

	var out []*types.Catalog
	for _, catalog := range s.catalogs {
		if catalog.IsPublic && !catalog.IsDeleted {
			out = append(out, copyCatalog(catalog))
		}
	}
	sortByCreated(out, func(c *types.Catalog) time.Time { return c.CreatedAt })
	return out, nil
}

// ListCatalogsByOwner see [storage.CatalogsBackend].ListCatalogsByOwner.
func (s *MemoryBackend) ListCatalogsByOwner(ctx context.Context, ownerAccountID string, _ storage.ReadOptions) ([]*types.Catalog, error) {
	_, span := tracer.Start(ctx, "memory.ListCatalogsByOwner")
	defer span.End()

	s.mutexCatalogs.RLock()
	defer s.mutexCatalogs.RUnlock()

	var out []*types.Catalog
	for _, catalog := range s.catalogs {
		if catalog.OwnerAccountID == ownerAccountID && !catalog.IsDeleted {
			out = append(out, copyCatalog(catalog))
		}
	}
	sortByCreated(out, func(c *types.Catalog) time.Time { return c.CreatedAt })
	return out, nil
}

// PutCatalog see [storage.CatalogsBackend].PutCatalog.
func (s *MemoryBackend) PutCatalog(ctx context.Context, catalog *types.Catalog) error {
	_, span := tracer.Start(ctx, "memory.PutCatalog")
	defer span.End()

	s.mutexCatalogs.Lock()
	defer s.mutexCatalogs.Unlock()

	s.catalogs[catalog.CatalogID] = copyCatalog(catalog)
	return nil
}

// MarkCatalogDeleted see [storage.CatalogsBackend].MarkCatalogDeleted.
func (s *MemoryBackend) MarkCatalogDeleted(ctx context.Context, catalogID string) error {
	_, span := tracer.Start(ctx, "memory.MarkCatalogDeleted")
	defer span.End()

	s.mutexCatalogs.Lock()
	defer s.mutexCatalogs.Unlock()

	catalog, ok := s.catalogs[catalogID]
	if !ok {
		return storage.ErrNotFound
	}
	catalog.IsDeleted = true
	return nil
}

// GetCampaign see [storage.CampaignsBackend].GetCampaign.
func (s *MemoryBackend) GetCampaign(ctx context.Context, profileID, campaignID string, _ storage.ReadOptions) (*types.Campaign, error) {
	_, span := tracer.Start(ctx, "memory.GetCampaign")
	defer span.End()

	s.mutexCampaigns.RLock()
	defer s.mutexCampaigns.RUnlock()

	campaign, ok := s.campaigns[campaignID]
	if !ok || campaign.ProfileID != profileID {
		return nil, storage.ErrNotFound
	}
	return copyCampaign(campaign), nil
}

// GetCampaignByID see [storage.CampaignsBackend].GetCampaignByID.
func (s *MemoryBackend) GetCampaignByID(ctx context.Context, campaignID string, _ storage.ReadOptions) (*types.Campaign, error) {
	_, span := tracer.Start(ctx, "memory.GetCampaignByID")
	defer span.End()

	s.mutexCampaigns.RLock()
	defer s.mutexCampaigns.RUnlock()

	campaign, ok := s.campaigns[campaignID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyCampaign(campaign), nil
}

// ListCampaignsByProfile see [storage.CampaignsBackend].ListCampaignsByProfile.
func (s *MemoryBackend) ListCampaignsByProfile(ctx context.Context, profileID string, _ storage.ReadOptions) ([]*types.Campaign, error) {
	_, span := tracer.Start(ctx, "memory.ListCampaignsByProfile")
	defer span.End()

	return s.listCampaigns(func(c *types.Campaign) bool { return c.ProfileID == profileID }), nil
}

// ListCampaignsByCatalog see [storage.CampaignsBackend].ListCampaignsByCatalog.
func (s *MemoryBackend) ListCampaignsByCatalog(ctx context.Context, catalogID string, _ storage.ReadOptions) ([]*types.Campaign, error) {
	_, span := tracer.Start(ctx, "memory.ListCampaignsByCatalog")
	defer span.End()

	return s.listCampaigns(func(c *types.Campaign) bool { return c.CatalogID == catalogID }), nil
}

// ListCampaignsByUnitKey see [storage.CampaignsBackend].ListCampaignsByUnitKey.
func (s *MemoryBackend) ListCampaignsByUnitKey(ctx context.Context, unitCampaignKey string, _ storage.ReadOptions) ([]*types.Campaign, error) {
	_, span := tracer.Start(ctx, "memory.ListCampaignsByUnitKey")
	defer span.End()

	return s.listCampaigns(func(c *types.Campaign) bool { return c.UnitCampaignKey == unitCampaignKey }), nil
}

func (s *MemoryBackend) listCampaigns(match func(*types.Campaign) bool) []*types.Campaign {
	s.mutexCampaigns.RLock()
	defer s.mutexCampaigns.RUnlock()

	var out []*types.Campaign
	for _, campaign := range s.campaigns {
		if match(campaign) {
			out = append(out, copyCampaign(campaign))
		}
	}
	sortByCreated(out, func(c *types.Campaign) time.Time { return c.CreatedAt })
	return out
}

// PutCampaign see [storage.CampaignsBackend].PutCampaign.
func (s *MemoryBackend) PutCampaign(ctx context.Context, campaign *types.Campaign) error {
	_, span := tracer.Start(ctx, "memory.PutCampaign")
	defer span.End()

	s.mutexCampaigns.Lock()
	defer s.mutexCampaigns.Unlock()

	s.campaigns[campaign.CampaignID] = copyCampaign(campaign)
	return nil
}

// DeleteCampaign see [storage.CampaignsBackend].DeleteCampaign.
func (s *MemoryBackend) DeleteCampaign(ctx context.Context, profileID, campaignID string) error {
	_, span := tracer.Start(ctx, "memory.DeleteCampaign")
	defer span.End()

	s.mutexCampaigns.Lock()
	defer s.mutexCampaigns.Unlock()

	if campaign, ok := s.campaigns[campaignID]; ok && campaign.ProfileID == profileID {
		delete(s.campaigns, campaignID)
	}
	return nil
}

// GetOrder see [storage.OrdersBackend].GetOrder.
func (s *MemoryBackend) GetOrder(ctx context.Context, campaignID, orderID string, _ storage.ReadOptions) (*types.Order, error) {
	_, span := tracer.Start(ctx, "memory.GetOrder")
	defer span.End()

	s.mutexOrders.RLock()
	defer s.mutexOrders.RUnlock()

	order, ok := s.orders[orderID]
	if !ok || order.CampaignID != campaignID {
		return nil, storage.ErrNotFound
	}
	return copyOrder(order), nil
}

// GetOrderByID see [storage.OrdersBackend].GetOrderByID.
func (s *MemoryBackend) GetOrderByID(ctx context.Context, orderID string, _ storage.ReadOptions) (*types.Order, error) {
	_, span := tracer.Start(ctx, "memory.GetOrderByID")
	defer span.End()

	s.mutexOrders.RLock()
	defer s.mutexOrders.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyOrder(order), nil
}

// ListOrdersByCampaign see [storage.OrdersBackend].ListOrdersByCampaign.
func (s *MemoryBackend) ListOrdersByCampaign(ctx context.Context, campaignID string, _ storage.ReadOptions) ([]*types.Order, error) {
	_, span := tracer.Start(ctx, "memory.ListOrdersByCampaign")
	defer span.End()

	return s.listOrders(func(o *types.Order) bool { return o.CampaignID == campaignID }), nil
}

// ListOrdersByProfile see [storage.OrdersBackend].ListOrdersByProfile.
func (s *MemoryBackend) ListOrdersByProfile(ctx context.Context, profileID string, _ storage.ReadOptions) ([]*types.Order, error) {
	_, span := tracer.Start(ctx, "memory.ListOrdersByProfile")
	defer span.End()

	return s.listOrders(func(o *types.Order) bool { return o.ProfileID == profileID }), nil
}

func (s *MemoryBackend) listOrders(match func(*types.Order) bool) []*types.Order {
	s.mutexOrders.RLock()
	defer s.mutexOrders.RUnlock()

	var out []*types.Order
	for _, order := range s.orders {
		if match(order) {
			out = append(out, copyOrder(order))
		}
	}
	sortByCreated(out, func(o *types.Order) time.Time { return o.CreatedAt })
	return out
}

// PutOrder see [storage.OrdersBackend].PutOrder.
func (s *MemoryBackend) PutOrder(ctx context.Context, order *types.Order) error {
	_, span := tracer.Start(ctx, "memory.PutOrder")
	defer span.End()

	s.mutexOrders.Lock()
	defer s.mutexOrders.Unlock()

	s.orders[order.OrderID] = copyOrder(order)
	return nil
}

// DeleteOrder see [storage.OrdersBackend].DeleteOrder.
func (s *MemoryBackend) DeleteOrder(ctx context.Context, campaignID, orderID string) error {
	_, span := tracer.Start(ctx, "memory.DeleteOrder")
	defer span.End()

	s.mutexOrders.Lock()
	defer s.mutexOrders.Unlock()

	if order, ok := s.orders[orderID]; ok && order.CampaignID == campaignID {
		delete(s.orders, orderID)
	}
	return nil
}

// GetSharedCampaign see [storage.SharedCampaignsBackend].GetSharedCampaign.
func (s *MemoryBackend) GetSharedCampaign(ctx context.Context, code string, _ storage.ReadOptions) (*types.SharedCampaignTemplate, error) {
	_, span := tracer.Start(ctx, "memory.GetSharedCampaign")
	defer span.End()

	s.mutexSharedCampaigns.RLock()
	defer s.mutexSharedCampaigns.RUnlock()

	tpl, ok := s.sharedCampaigns[code]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copySharedCampaign(tpl), nil
}

// ListSharedCampaignsByCreator see [storage.SharedCampaignsBackend].ListSharedCampaignsByCreator.
func (s *MemoryBackend) ListSharedCampaignsByCreator(ctx context.Context, accountID string, _ storage.ReadOptions) ([]*types.SharedCampaignTemplate, error) {
	_, span := tracer.Start(ctx, "memory.ListSharedCampaignsByCreator")
	defer span.End()

	return s.listSharedCampaigns(func(t *types.SharedCampaignTemplate) bool { return t.CreatedBy == accountID }), nil
}

// ListSharedCampaignsByUnitKey see [storage.SharedCampaignsBackend].ListSharedCampaignsByUnitKey.
func (s *MemoryBackend) ListSharedCampaignsByUnitKey(ctx context.Context, unitCampaignKey string, _ storage.ReadOptions) ([]*types.SharedCampaignTemplate, error) {
	_, span := tracer.Start(ctx, "memory.ListSharedCampaignsByUnitKey")
	defer span.End()

	return s.listSharedCampaigns(func(t *types.SharedCampaignTemplate) bool { return t.UnitCampaignKey == unitCampaignKey }), nil
}

func (s *MemoryBackend) listSharedCampaigns(match func(*types.SharedCampaignTemplate) bool) []*types.SharedCampaignTemplate {
	s.mutexSharedCampaigns.RLock()
	defer s.mutexSharedCampaigns.RUnlock()

	var out []*types.SharedCampaignTemplate
	for _, tpl := range s.sharedCampaigns {
		if match(tpl) {
			out = append(out, copySharedCampaign(tpl))
		}
	}
	sortByCreated(out, func(t *types.SharedCampaignTemplate) time.Time { return t.CreatedAt })
	return out
}

// PutSharedCampaign see [storage.SharedCampaignsBackend].PutSharedCampaign.
func (s *MemoryBackend) PutSharedCampaign(ctx context.Context, tpl *types.SharedCampaignTemplate) error {
	_, span := tracer.Start(ctx, "memory.PutSharedCampaign")
	defer span.End()

	s.mutexSharedCampaigns.Lock()
	defer s.mutexSharedCampaigns.Unlock()

	s.sharedCampaigns[tpl.SharedCampaignCode] = copySharedCampaign(tpl)
	return nil
}

// DeleteSharedCampaign see [storage.SharedCampaignsBackend].DeleteSharedCampaign.
func (s *MemoryBackend) DeleteSharedCampaign(ctx context.Context, code string) error {
	_, span := tracer.Start(ctx, "memory.DeleteSharedCampaign")
	defer span.End()

	s.mutexSharedCampaigns.Lock()
	defer s.mutexSharedCampaigns.Unlock()

	delete(s.sharedCampaigns, code)
	return nil
}

// Records are copied on every read and write so callers can never alias the
// store's internal state.

func copyAccount(a *types.Account) *types.Account {
	cp := *a
	return &cp
}

func copyProfile(p *types.SellerProfile) *types.SellerProfile {
	cp := *p
	cp.Permissions = append([]types.Permission(nil), p.Permissions...)
	return &cp
}

func copyShare(sh *types.Share) *types.Share {
	cp := *sh
	cp.Permissions = append([]types.Permission(nil), sh.Permissions...)
	return &cp
}

func copyInvite(i *types.Invite) *types.Invite {
	cp := *i
	cp.Permissions = append([]types.Permission(nil), i.Permissions...)
	return &cp
}

func copyCatalog(c *types.Catalog) *types.Catalog {
	cp := *c
	cp.Products = append([]types.Product(nil), c.Products...)
	return &cp
}

func copyCampaign(c *types.Campaign) *types.Campaign {
	cp := *c
	return &cp
}

func copyOrder(o *types.Order) *types.Order {
	cp := *o
	cp.LineItems = append([]types.LineItem(nil), o.LineItems...)
	return &cp
}

func copySharedCampaign(t *types.SharedCampaignTemplate) *types.SharedCampaignTemplate {
	cp := *t
	return &cp
}

func sortByCreated[T any](items []*T, createdAt func(*T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).Before(createdAt(items[j]))
	})
}
