// Package server wires the command and query pipelines into one façade the
// transport layer calls. Every method expects the caller's identity in the
// context (see pkg/authclaims) and returns gRPC-status errors from
// pkg/server/errors.
package server

import (
	"context"
	"errors"

	"github.com/kernelworx/psm/pkg/logger"
	"github.com/kernelworx/psm/pkg/server/commands"
	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

// ErrNilDatastore is returned when the server is constructed without a
// datastore.
var ErrNilDatastore = errors.New("a datastore option must be provided")

type Server struct {
	datastore           storage.Datastore
	logger              logger.Logger
	sharedCampaignLimit int

	getMyAccount        *commands.GetMyAccountCommand
	updateMyAccount     *commands.UpdateMyAccountCommand
	updateMyPreferences *commands.UpdateMyPreferencesCommand

	createProfile   *commands.CreateSellerProfileCommand
	getProfile      *commands.GetProfileQuery
	listMyProfiles  *commands.ListMyProfilesQuery
	updateProfile   *commands.UpdateSellerProfileCommand
	deleteProfile   *commands.DeleteSellerProfileCommand
	transferProfile *commands.TransferProfileOwnershipCommand

	shareProfile        *commands.ShareProfileDirectCommand
	revokeShare         *commands.RevokeShareCommand
	listMyShares        *commands.ListMySharesQuery
	listSharesByProfile *commands.ListSharesByProfileQuery

	createInvite         *commands.CreateProfileInviteCommand
	deleteInvite         *commands.DeleteProfileInviteCommand
	redeemInvite         *commands.RedeemProfileInviteCommand
	listInvitesByProfile *commands.ListInvitesByProfileQuery

	createCatalog      *commands.CreateCatalogCommand
	updateCatalog      *commands.UpdateCatalogCommand
	deleteCatalog      *commands.DeleteCatalogCommand
	getCatalog         *commands.GetCatalogQuery
	listPublicCatalogs *commands.ListPublicCatalogsQuery
	listMyCatalogs     *commands.ListMyCatalogsQuery
	listCatalogsInUse  *commands.ListCatalogsInUseQuery
	listUnitCatalogs   *commands.ListUnitCatalogsQuery

	createCampaign         *commands.CreateCampaignCommand
	getCampaign            *commands.GetCampaignQuery
	updateCampaign         *commands.UpdateCampaignCommand
	deleteCampaign         *commands.DeleteCampaignCommand
	listCampaignsByProfile *commands.ListCampaignsByProfileQuery

	createOrder          *commands.CreateOrderCommand
	getOrder             *commands.GetOrderQuery
	updateOrder          *commands.UpdateOrderCommand
	deleteOrder          *commands.DeleteOrderCommand
	listOrdersByCampaign *commands.ListOrdersByCampaignQuery
	listOrdersByProfile  *commands.ListOrdersByProfileQuery

	createSharedCampaign  *commands.CreateSharedCampaignCommand
	getSharedCampaign     *commands.GetSharedCampaignQuery
	updateSharedCampaign  *commands.UpdateSharedCampaignCommand
	deleteSharedCampaign  *commands.DeleteSharedCampaignCommand
	listMySharedCampaigns *commands.ListMySharedCampaignsQuery
	findSharedCampaigns   *commands.FindSharedCampaignsQuery
}

// ServerOption configures the server at construction time.
type ServerOption func(s *Server)

// WithDatastore sets the backing datastore. Required.
func WithDatastore(ds storage.Datastore) ServerOption {
	return func(s *Server) {
		s.datastore = ds
	}
}

// WithLogger sets the structured logger. Defaults to a noop logger.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// WithSharedCampaignLimit overrides the per-account cap on published
// campaign templates.
func WithSharedCampaignLimit(limit int) ServerOption {
	return func(s *Server) {
		s.sharedCampaignLimit = limit
	}
}

// MustNewServerWithOpts panics if the server cannot be constructed. Intended
// for main() and tests.
func MustNewServerWithOpts(opts ...ServerOption) *Server {
	s, err := NewServerWithOpts(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func NewServerWithOpts(opts ...ServerOption) (*Server, error) {
	s := &Server{
		logger:              logger.NewNoopLogger(),
		sharedCampaignLimit: commands.DefaultSharedCampaignLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.datastore == nil {
		return nil, ErrNilDatastore
	}

	ds, log := s.datastore, s.logger

	s.getMyAccount = commands.NewGetMyAccountCommand(ds, log)
	s.updateMyAccount = commands.NewUpdateMyAccountCommand(ds, log)
	s.updateMyPreferences = commands.NewUpdateMyPreferencesCommand(ds, log)

	s.createProfile = commands.NewCreateSellerProfileCommand(ds, log)
	s.getProfile = commands.NewGetProfileQuery(ds, log)
	s.listMyProfiles = commands.NewListMyProfilesQuery(ds, log)
	s.updateProfile = commands.NewUpdateSellerProfileCommand(ds, log)
	s.deleteProfile = commands.NewDeleteSellerProfileCommand(ds, log)
	s.transferProfile = commands.NewTransferProfileOwnershipCommand(ds, log)

	s.shareProfile = commands.NewShareProfileDirectCommand(ds, log)
	s.revokeShare = commands.NewRevokeShareCommand(ds, log)
	s.listMyShares = commands.NewListMySharesQuery(ds, log)
	s.listSharesByProfile = commands.NewListSharesByProfileQuery(ds, log)

	s.createInvite = commands.NewCreateProfileInviteCommand(ds, log)
	s.deleteInvite = commands.NewDeleteProfileInviteCommand(ds, log)
	s.redeemInvite = commands.NewRedeemProfileInviteCommand(ds, log)
	s.listInvitesByProfile = commands.NewListInvitesByProfileQuery(ds, log)

	s.createCatalog = commands.NewCreateCatalogCommand(ds, log)
	s.updateCatalog = commands.NewUpdateCatalogCommand(ds, log)
	s.deleteCatalog = commands.NewDeleteCatalogCommand(ds, log)
	s.getCatalog = commands.NewGetCatalogQuery(ds, log)
	s.listPublicCatalogs = commands.NewListPublicCatalogsQuery(ds, log)
	s.listMyCatalogs = commands.NewListMyCatalogsQuery(ds, log)
	s.listCatalogsInUse = commands.NewListCatalogsInUseQuery(ds, log)
	s.listUnitCatalogs = commands.NewListUnitCatalogsQuery(ds, log)

	s.createCampaign = commands.NewCreateCampaignCommand(ds, log)
	s.getCampaign = commands.NewGetCampaignQuery(ds, log)
	s.updateCampaign = commands.NewUpdateCampaignCommand(ds, log)
	s.deleteCampaign = commands.NewDeleteCampaignCommand(ds, log)
	s.listCampaignsByProfile = commands.NewListCampaignsByProfileQuery(ds, log)

	s.createOrder = commands.NewCreateOrderCommand(ds, log)
	s.getOrder = commands.NewGetOrderQuery(ds, log)
	s.updateOrder = commands.NewUpdateOrderCommand(ds, log)
	s.deleteOrder = commands.NewDeleteOrderCommand(ds, log)
	s.listOrdersByCampaign = commands.NewListOrdersByCampaignQuery(ds, log)
	s.listOrdersByProfile = commands.NewListOrdersByProfileQuery(ds, log)

	s.createSharedCampaign = commands.NewCreateSharedCampaignCommand(ds, log,
		commands.WithSharedCampaignLimit(s.sharedCampaignLimit))
	s.getSharedCampaign = commands.NewGetSharedCampaignQuery(ds, log)
	s.updateSharedCampaign = commands.NewUpdateSharedCampaignCommand(ds, log)
	s.deleteSharedCampaign = commands.NewDeleteSharedCampaignCommand(ds, log)
	s.listMySharedCampaigns = commands.NewListMySharedCampaignsQuery(ds, log)
	s.findSharedCampaigns = commands.NewFindSharedCampaignsQuery(ds, log)

	return s, nil
}

// IsReady reports whether the backing datastore can serve traffic.
func (s *Server) IsReady(ctx context.Context) (bool, error) {
	status, err := s.datastore.IsReady(ctx)
	if err != nil {
		return false, err
	}
	return status.IsReady, nil
}

func (s *Server) GetMyAccount(ctx context.Context, req *commands.GetMyAccountRequest) (*types.Account, error) {
	return s.getMyAccount.Execute(ctx, req)
}

func (s *Server) UpdateMyAccount(ctx context.Context, req *commands.UpdateMyAccountRequest) (*types.Account, error) {
	return s.updateMyAccount.Execute(ctx, req)
}

func (s *Server) UpdateMyPreferences(ctx context.Context, req *commands.UpdateMyPreferencesRequest) (*types.Account, error) {
	return s.updateMyPreferences.Execute(ctx, req)
}

func (s *Server) CreateSellerProfile(ctx context.Context, req *commands.CreateSellerProfileRequest) (*types.SellerProfile, error) {
	return s.createProfile.Execute(ctx, req)
}

func (s *Server) GetProfile(ctx context.Context, req *commands.GetProfileRequest) (*types.SellerProfile, error) {
	return s.getProfile.Execute(ctx, req)
}

func (s *Server) ListMyProfiles(ctx context.Context) ([]*types.SellerProfile, error) {
	return s.listMyProfiles.Execute(ctx)
}

func (s *Server) UpdateSellerProfile(ctx context.Context, req *commands.UpdateSellerProfileRequest) (*types.SellerProfile, error) {
	return s.updateProfile.Execute(ctx, req)
}

func (s *Server) DeleteSellerProfile(ctx context.Context, req *commands.DeleteSellerProfileRequest) (*commands.DeleteSellerProfileResponse, error) {
	return s.deleteProfile.Execute(ctx, req)
}

func (s *Server) TransferProfileOwnership(ctx context.Context, req *commands.TransferProfileOwnershipRequest) (*types.SellerProfile, error) {
	return s.transferProfile.Execute(ctx, req)
}

func (s *Server) ShareProfileDirect(ctx context.Context, req *commands.ShareProfileDirectRequest) (*types.Share, error) {
	return s.shareProfile.Execute(ctx, req)
}

func (s *Server) RevokeShare(ctx context.Context, req *commands.RevokeShareRequest) (*commands.RevokeShareResponse, error) {
	return s.revokeShare.Execute(ctx, req)
}

func (s *Server) ListMyShares(ctx context.Context) ([]*types.Share, error) {
	return s.listMyShares.Execute(ctx)
}

func (s *Server) ListSharesByProfile(ctx context.Context, req *commands.ListSharesByProfileRequest) ([]*types.Share, error) {
	return s.listSharesByProfile.Execute(ctx, req)
}

func (s *Server) CreateProfileInvite(ctx context.Context, req *commands.CreateProfileInviteRequest) (*types.Invite, error) {
	return s.createInvite.Execute(ctx, req)
}

func (s *Server) DeleteProfileInvite(ctx context.Context, req *commands.DeleteProfileInviteRequest) (*commands.DeleteProfileInviteResponse, error) {
	return s.deleteInvite.Execute(ctx, req)
}

func (s *Server) RedeemProfileInvite(ctx context.Context, req *commands.RedeemProfileInviteRequest) (*types.Share, error) {
	return s.redeemInvite.Execute(ctx, req)
}

func (s *Server) ListInvitesByProfile(ctx context.Context, req *commands.ListInvitesByProfileRequest) ([]*types.Invite, error) {
	return s.listInvitesByProfile.Execute(ctx, req)
}

func (s *Server) CreateCatalog(ctx context.Context, req *commands.CreateCatalogRequest) (*types.Catalog, error) {
	return s.createCatalog.Execute(ctx, req)
}

func (s *Server) UpdateCatalog(ctx context.Context, req *commands.UpdateCatalogRequest) (*types.Catalog, error) {
	return s.updateCatalog.Execute(ctx, req)
}

func (s *Server) DeleteCatalog(ctx context.Context, req *commands.DeleteCatalogRequest) (*commands.DeleteCatalogResponse, error) {
	return s.deleteCatalog.Execute(ctx, req)
}

func (s *Server) GetCatalog(ctx context.Context, req *commands.GetCatalogRequest) (*types.Catalog, error) {
	return s.getCatalog.Execute(ctx, req)
}

func (s *Server) ListPublicCatalogs(ctx context.Context) ([]*types.Catalog, error) {
	return s.listPublicCatalogs.Execute(ctx)
}

func (s *Server) ListMyCatalogs(ctx context.Context) ([]*types.Catalog, error) {
	return s.listMyCatalogs.Execute(ctx)
}

func (s *Server) ListCatalogsInUse(ctx context.Context) ([]string, error) {
	return s.listCatalogsInUse.Execute(ctx)
}

func (s *Server) ListUnitCatalogs(ctx context.Context, req *commands.ListUnitCatalogsRequest) ([]*types.Catalog, error) {
	return s.listUnitCatalogs.Execute(ctx, req)
}

func (s *Server) CreateCampaign(ctx context.Context, req *commands.CreateCampaignRequest) (*types.Campaign, error) {
	return s.createCampaign.Execute(ctx, req)
}

func (s *Server) GetCampaign(ctx context.Context, req *commands.GetCampaignRequest) (*types.Campaign, error) {
	return s.getCampaign.Execute(ctx, req)
}

func (s *Server) UpdateCampaign(ctx context.Context, req *commands.UpdateCampaignRequest) (*types.Campaign, error) {
	return s.updateCampaign.Execute(ctx, req)
}

func (s *Server) DeleteCampaign(ctx context.Context, req *commands.DeleteCampaignRequest) (*commands.DeleteCampaignResponse, error) {
	return s.deleteCampaign.Execute(ctx, req)
}

func (s *Server) ListCampaignsByProfile(ctx context.Context, req *commands.ListCampaignsByProfileRequest) ([]*types.Campaign, error) {
	return s.listCampaignsByProfile.Execute(ctx, req)
}

func (s *Server) CreateOrder(ctx context.Context, req *commands.CreateOrderRequest) (*types.Order, error) {
	return s.createOrder.Execute(ctx, req)
}

func (s *Server) GetOrder(ctx context.Context, req *commands.GetOrderRequest) (*types.Order, error) {
	return s.getOrder.Execute(ctx, req)
}

func (s *Server) UpdateOrder(ctx context.Context, req *commands.UpdateOrderRequest) (*types.Order, error) {
	return s.updateOrder.Execute(ctx, req)
}

func (s *Server) DeleteOrder(ctx context.Context, req *commands.DeleteOrderRequest) (*commands.DeleteOrderResponse, error) {
	return s.deleteOrder.Execute(ctx, req)
}

func (s *Server) ListOrdersByCampaign(ctx context.Context, req *commands.ListOrdersByCampaignRequest) ([]*types.Order, error) {
	return s.listOrdersByCampaign.Execute(ctx, req)
}

func (s *Server) ListOrdersByProfile(ctx context.Context, req *commands.ListOrdersByProfileRequest) ([]*types.Order, error) {
	return s.listOrdersByProfile.Execute(ctx, req)
}

func (s *Server) CreateSharedCampaign(ctx context.Context, req *commands.CreateSharedCampaignRequest) (*types.SharedCampaignTemplate, error) {
	return s.createSharedCampaign.Execute(ctx, req)
}

func (s *Server) GetSharedCampaign(ctx context.Context, req *commands.GetSharedCampaignRequest) (*types.SharedCampaignTemplate, error) {
	return s.getSharedCampaign.Execute(ctx, req)
}

func (s *Server) UpdateSharedCampaign(ctx context.Context, req *commands.UpdateSharedCampaignRequest) (*types.SharedCampaignTemplate, error) {
	return s.updateSharedCampaign.Execute(ctx, req)
}

func (s *Server) DeleteSharedCampaign(ctx context.Context, req *commands.DeleteSharedCampaignRequest) (*commands.DeleteSharedCampaignResponse, error) {
	return s.deleteSharedCampaign.Execute(ctx, req)
}

func (s *Server) ListMySharedCampaigns(ctx context.Context) ([]*types.SharedCampaignTemplate, error) {
	return s.listMySharedCampaigns.Execute(ctx)
}

func (s *Server) FindSharedCampaigns(ctx context.Context, req *commands.FindSharedCampaignsRequest) ([]*types.SharedCampaignTemplate, error) {
	return s.findSharedCampaigns.Execute(ctx, req)
}
