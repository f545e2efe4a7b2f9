package commands

import (
	"context"

	"github.com/kernelworx/psm/internal/authz"
	"github.com/kernelworx/psm/pkg/key"
	"github.com/kernelworx/psm/pkg/logger"
	"github.com/kernelworx/psm/pkg/pipeline"
	serverErrors "github.com/kernelworx/psm/pkg/server/errors"
	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

const (
	stashCascadeShares    = "cascadeShares"
	stashCascadeInvites   = "cascadeInvites"
	stashCascadeCampaigns = "cascadeCampaigns"
	stashCascadeOrders    = "cascadeOrders"
)

// DeleteSellerProfileCommand removes a profile and everything hanging off
// it. Owner only. The cascade runs in a strict order ending with the
// metadata row, so a partially applied cascade always leaves the profile
// itself still resolvable: collect shares and invites, delete shares, delete
// invites, collect campaigns, delete orders per campaign, delete campaigns,
// delete the ownership row, delete the metadata row last. Committed
// deletions are not rolled back on a later failure.
type DeleteSellerProfileCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewDeleteSellerProfileCommand(datastore storage.Datastore, logger logger.Logger) *DeleteSellerProfileCommand {
	return &DeleteSellerProfileCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type DeleteSellerProfileRequest struct {
	ProfileID string
}

// DeleteSellerProfileResponse reports what the cascade removed.
type DeleteSellerProfileResponse struct {
	ProfileID        string `json:"profileId"`
	DeletedShares    int    `json:"deletedShares"`
	DeletedInvites   int    `json:"deletedInvites"`
	DeletedCampaigns int    `json:"deletedCampaigns"`
	DeletedOrders    int    `json:"deletedOrders"`
}

func (c *DeleteSellerProfileCommand) Execute(ctx context.Context, req *DeleteSellerProfileRequest) (*DeleteSellerProfileResponse, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("DeleteSellerProfile", c.logger,
		authz.OwnerOnly{Store: c.datastore, ProfileID: req.ProfileID, Action: "delete this profile"},
		pipeline.StepFunc{StepName: "CollectShares", Fn: c.collectShares},
		pipeline.StepFunc{StepName: "CollectInvites", Fn: c.collectInvites},
		pipeline.StepFunc{StepName: "DeleteShares", Fn: c.deleteShares},
		pipeline.StepFunc{StepName: "DeleteInvites", Fn: c.deleteInvites},
		pipeline.StepFunc{StepName: "CollectCampaigns", Fn: c.collectCampaigns},
		pipeline.StepFunc{StepName: "DeleteOrders", Fn: c.deleteOrders},
		pipeline.StepFunc{StepName: "DeleteCampaigns", Fn: c.deleteCampaigns},
		pipeline.StepFunc{StepName: "DeleteOwnershipRow", Fn: c.deleteOwnershipRow},
		pipeline.StepFunc{StepName: "DeleteMetadataRow", Fn: c.deleteMetadataRow},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*DeleteSellerProfileResponse), nil
}

func stashedProfile(exec *pipeline.Exec) (*types.SellerProfile, error) {
	v, ok := exec.Get(authz.StashProfile)
	if !ok {
		return nil, serverErrors.MissingStashValue(authz.StashProfile)
	}
	return v.(*types.SellerProfile), nil
}

func (c *DeleteSellerProfileCommand) collectShares(ctx context.Context, exec *pipeline.Exec) (any, error) {
	profile, err := stashedProfile(exec)
	if err != nil {
		return nil, err
	}
	shares, err := c.datastore.ListSharesByProfile(ctx, profile.ProfileID, storage.ReadOptions{Consistency: storage.HigherConsistency})
	if err != nil {
		return nil, serverErrors.HandleError("", err)
	}
	exec.Set(stashCascadeShares, shares)
	return nil, nil
}

func (c *DeleteSellerProfileCommand) collectInvites(ctx context.Context, exec *pipeline.Exec) (any, error) {
	profile, err := stashedProfile(exec)
	if err != nil {
		return nil, err
	}
	invites, err := c.datastore.ListInvitesByProfile(ctx, profile.ProfileID, storage.ReadOptions{Consistency: storage.HigherConsistency})
	if err != nil {
		return nil, serverErrors.HandleError("", err)
	}
	exec.Set(stashCascadeInvites, invites)
	return nil, nil
}

func (c *DeleteSellerProfileCommand) deleteShares(ctx context.Context, exec *pipeline.Exec) (any, error) {
	v, ok := exec.Get(stashCascadeShares)
	if !ok {
		return nil, serverErrors.MissingStashValue(stashCascadeShares)
	}
	for _, share := range v.([]*types.Share) {
		if err := c.datastore.DeleteShare(ctx, share.ProfileID, share.TargetAccountID); err != nil {
			return nil, serverErrors.HandleError("", err)
		}
	}
	return nil, nil
}

func (c *DeleteSellerProfileCommand) deleteInvites(ctx context.Context, exec *pipeline.Exec) (any, error) {
	v, ok := exec.Get(stashCascadeInvites)
	if !ok {
		return nil, serverErrors.MissingStashValue(stashCascadeInvites)
	}
	for _, invite := range v.([]*types.Invite) {
		if err := c.datastore.DeleteInvite(ctx, invite.InviteCode); err != nil {
			return nil, serverErrors.HandleError("", err)
		}
	}
	return nil, nil
}

func (c *DeleteSellerProfileCommand) collectCampaigns(ctx context.Context, exec *pipeline.Exec) (any, error) {
	profile, err := stashedProfile(exec)
	if err != nil {
		return nil, err
	}
	campaigns, err := c.datastore.ListCampaignsByProfile(ctx, profile.ProfileID, storage.ReadOptions{Consistency: storage.HigherConsistency})
	if err != nil {
		return nil, serverErrors.HandleError("", err)
	}
	exec.Set(stashCascadeCampaigns, campaigns)
	return nil, nil
}

func (c *DeleteSellerProfileCommand) deleteOrders(ctx context.Context, exec *pipeline.Exec) (any, error) {
	v, ok := exec.Get(stashCascadeCampaigns)
	if !ok {
		return nil, serverErrors.MissingStashValue(stashCascadeCampaigns)
	}
	deleted := 0
	for _, campaign := range v.([]*types.Campaign) {
		orders, err := c.datastore.ListOrdersByCampaign(ctx, campaign.CampaignID, storage.ReadOptions{Consistency: storage.HigherConsistency})
		if err != nil {
			return nil, serverErrors.HandleError("", err)
		}
		for _, order := range orders {
			if err := c.datastore.DeleteOrder(ctx, order.CampaignID, order.OrderID); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			deleted++
		}
	}
	exec.Set(stashCascadeOrders, deleted)
	return nil, nil
}

func (c *DeleteSellerProfileCommand) deleteCampaigns(ctx context.Context, exec *pipeline.Exec) (any, error) {
	v, ok := exec.Get(stashCascadeCampaigns)
	if !ok {
		return nil, serverErrors.MissingStashValue(stashCascadeCampaigns)
	}
	for _, campaign := range v.([]*types.Campaign) {
		if err := c.datastore.DeleteCampaign(ctx, campaign.ProfileID, campaign.CampaignID); err != nil {
			return nil, serverErrors.HandleError("", err)
		}
	}
	return nil, nil
}

func (c *DeleteSellerProfileCommand) deleteOwnershipRow(ctx context.Context, exec *pipeline.Exec) (any, error) {
	profile, err := stashedProfile(exec)
	if err != nil {
		return nil, err
	}
	if err := c.datastore.DeleteProfileOwnership(ctx, profile.OwnerAccountID, profile.ProfileID); err != nil {
		return nil, serverErrors.HandleError("", err)
	}
	return nil, nil
}

func (c *DeleteSellerProfileCommand) deleteMetadataRow(ctx context.Context, exec *pipeline.Exec) (any, error) {
	profile, err := stashedProfile(exec)
	if err != nil {
		return nil, err
	}
	if err := c.datastore.DeleteProfileMetadata(ctx, profile.ProfileID); err != nil {
		return nil, serverErrors.HandleError("", err)
	}

	shares, _ := exec.Get(stashCascadeShares)
	invites, _ := exec.Get(stashCascadeInvites)
	campaigns, _ := exec.Get(stashCascadeCampaigns)
	orders, _ := exec.Get(stashCascadeOrders)
	return &DeleteSellerProfileResponse{
		ProfileID:        key.StripPrefix(profile.ProfileID),
		DeletedShares:    len(shares.([]*types.Share)),
		DeletedInvites:   len(invites.([]*types.Invite)),
		DeletedCampaigns: len(campaigns.([]*types.Campaign)),
		DeletedOrders:    orders.(int),
	}, nil
}
