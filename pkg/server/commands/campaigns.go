package commands

import (
	"context"
	"errors"

	"github.com/kernelworx/psm/internal/authz"
	"github.com/kernelworx/psm/internal/transform"
	"github.com/kernelworx/psm/pkg/id"
	"github.com/kernelworx/psm/pkg/key"
	"github.com/kernelworx/psm/pkg/logger"
	"github.com/kernelworx/psm/pkg/pipeline"
	serverErrors "github.com/kernelworx/psm/pkg/server/errors"
	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

// deriveUnitCampaignKey computes the discovery key for a campaign from its
// profile's unit fields. Campaigns without a complete unit identity are not
// discoverable by unit and get no key.
func deriveUnitCampaignKey(profile *types.SellerProfile, year int) string {
	if profile.UnitType == "" || profile.UnitNumber == "" || year == 0 {
		return ""
	}
	return key.UnitCampaignKey(profile.UnitType, profile.UnitNumber, profile.City, profile.State, year)
}

// fetchCampaignByID loads a campaign via the campaignId index and stashes
// it. Used by every campaign and order pipeline that starts from an id.
func fetchCampaignByID(store storage.CampaignsBackend, campaignID string) pipeline.StepFunc {
	return pipeline.StepFunc{StepName: "FetchCampaign", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
		prefixed := key.WithPrefix(key.Campaign, campaignID)
		campaign, err := store.GetCampaignByID(ctx, prefixed, storage.ReadOptions{Consistency: storage.HigherConsistency})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, serverErrors.CampaignNotFound(key.StripPrefix(prefixed))
			}
			return nil, serverErrors.HandleError("", err)
		}
		exec.Set(stashCampaign, campaign)
		return campaign, nil
	}}
}

// fetchCampaignProfile bridges a stashed campaign into the standard profile
// authorization steps.
func fetchCampaignProfile(store storage.ProfilesBackend) pipeline.StepFunc {
	return pipeline.StepFunc{StepName: "FetchProfile", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
		v, ok := exec.Get(stashCampaign)
		if !ok {
			return nil, serverErrors.MissingStashValue(stashCampaign)
		}
		campaign := v.(*types.Campaign)
		return authz.FetchProfile{Store: store, ProfileID: campaign.ProfileID}.Run(ctx, exec)
	}}
}

func stashedCampaign(exec *pipeline.Exec) (*types.Campaign, error) {
	v, ok := exec.Get(stashCampaign)
	if !ok {
		return nil, serverErrors.MissingStashValue(stashCampaign)
	}
	return v.(*types.Campaign), nil
}

// CreateCampaignCommand opens a sales campaign on a profile against one
// catalog. Requires write access to the profile.
type CreateCampaignCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewCreateCampaignCommand(datastore storage.Datastore, logger logger.Logger) *CreateCampaignCommand {
	return &CreateCampaignCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type CreateCampaignRequest struct {
	ProfileID    string
	CampaignName string
	CatalogID    string
	Year         int
	StartDate    string
	EndDate      string

	// SharedCampaignCode optionally instantiates a published template: the
	// template's name and catalog win over the request fields. With
	// ShareWithCreator set the template creator also gets a READ share on
	// the profile, unless they already hold one or own the profile.
	SharedCampaignCode string
	ShareWithCreator   bool
}

func (c *CreateCampaignCommand) Execute(ctx context.Context, req *CreateCampaignRequest) (*types.Campaign, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("CreateCampaign", c.logger,
		authz.FetchProfile{Store: c.datastore, ProfileID: req.ProfileID},
		authz.ProfileAccess{Store: c.datastore, Level: authz.LevelWrite},
		pipeline.StepFunc{StepName: "ResolveTemplate", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			if req.SharedCampaignCode == "" {
				return nil, nil
			}
			tpl, err := c.datastore.GetSharedCampaign(ctx, req.SharedCampaignCode, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, serverErrors.SharedCampaignNotFound(req.SharedCampaignCode)
				}
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashTemplate, tpl)
			return tpl, nil
		}},
		pipeline.StepFunc{StepName: "ValidateInput", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			if _, ok := exec.Get(stashTemplate); ok {
				return nil, nil
			}
			if req.CampaignName == "" {
				return nil, serverErrors.MissingRequiredField("campaignName")
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "ResolveCatalog", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			catalogID := req.CatalogID
			if v, ok := exec.Get(stashTemplate); ok {
				catalogID = v.(*types.SharedCampaignTemplate).CatalogID
			}
			catalog, err := resolveCatalog(ctx, c.datastore, catalogID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, serverErrors.CatalogNotFound(key.StripPrefix(catalogID))
				}
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashCatalog, catalog)
			return catalog, nil
		}},
		pipeline.StepFunc{StepName: "PutCampaign", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			v, ok := exec.Get(stashCatalog)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashCatalog)
			}
			catalog := v.(*types.Catalog)

			campaignName := req.CampaignName
			if t, ok := exec.Get(stashTemplate); ok {
				campaignName = t.(*types.SharedCampaignTemplate).CampaignName
			}

			ts := now()
			campaign := &types.Campaign{
				ProfileID:       profile.ProfileID,
				CampaignID:      id.NewCampaignID(),
				CampaignName:    campaignName,
				CatalogID:       catalog.CatalogID,
				UnitType:        profile.UnitType,
				UnitNumber:      profile.UnitNumber,
				City:            profile.City,
				State:           profile.State,
				Year:            req.Year,
				UnitCampaignKey: deriveUnitCampaignKey(profile, req.Year),
				StartDate:       req.StartDate,
				EndDate:         req.EndDate,
				CreatedAt:       ts,
				UpdatedAt:       ts,
			}
			if err := c.datastore.PutCampaign(ctx, campaign); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashCampaign, campaign)
			return campaign, nil
		}},
		pipeline.StepFunc{StepName: "ShareWithCreator", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			campaign, err := stashedCampaign(exec)
			if err != nil {
				return nil, err
			}
			v, ok := exec.Get(stashTemplate)
			if !req.ShareWithCreator || !ok {
				return transform.Campaign(campaign), nil
			}
			tpl := v.(*types.SharedCampaignTemplate)
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}

			// The creator may already own or hold a share on the profile;
			// an existing grant is never downgraded.
			creatorID := key.WithPrefix(key.Account, tpl.CreatedBy)
			if authz.IsOwner(key.StripPrefix(creatorID), profile) {
				return transform.Campaign(campaign), nil
			}
			_, err = c.datastore.GetShare(ctx, profile.ProfileID, creatorID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err == nil {
				return transform.Campaign(campaign), nil
			}
			if !errors.Is(err, storage.ErrNotFound) {
				return nil, serverErrors.HandleError("", err)
			}

			ts := now()
			share := &types.Share{
				ProfileID:       profile.ProfileID,
				TargetAccountID: creatorID,
				Permissions:     []types.Permission{types.PermissionRead},
				CreatedBy:       key.WithPrefix(key.Account, exec.CallerAccountID),
				CreatedAt:       ts,
				UpdatedAt:       ts,
			}
			if err := c.datastore.PutShare(ctx, share); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Campaign(campaign), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Campaign), nil
}

// GetCampaignQuery returns one campaign. Requires read access to the owning
// profile.
type GetCampaignQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewGetCampaignQuery(datastore storage.Datastore, logger logger.Logger) *GetCampaignQuery {
	return &GetCampaignQuery{
		datastore: datastore,
		logger:    logger,
	}
}

type GetCampaignRequest struct {
	CampaignID string
}

func (q *GetCampaignQuery) Execute(ctx context.Context, req *GetCampaignRequest) (*types.Campaign, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("GetCampaign", q.logger,
		fetchCampaignByID(q.datastore, req.CampaignID),
		fetchCampaignProfile(q.datastore),
		authz.ProfileAccess{Store: q.datastore, Level: authz.LevelRead},
		pipeline.StepFunc{StepName: "ProjectCampaign", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			campaign, err := stashedCampaign(exec)
			if err != nil {
				return nil, err
			}
			return transform.Campaign(campaign), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Campaign), nil
}

// UpdateCampaignCommand updates campaign fields. Requires write access.
// Changing the year re-derives the unit campaign key.
type UpdateCampaignCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewUpdateCampaignCommand(datastore storage.Datastore, logger logger.Logger) *UpdateCampaignCommand {
	return &UpdateCampaignCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type UpdateCampaignRequest struct {
	CampaignID   string
	CampaignName *string
	Year         *int
	StartDate    *string
	EndDate      *string
}

func (c *UpdateCampaignCommand) Execute(ctx context.Context, req *UpdateCampaignRequest) (*types.Campaign, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("UpdateCampaign", c.logger,
		fetchCampaignByID(c.datastore, req.CampaignID),
		fetchCampaignProfile(c.datastore),
		authz.ProfileAccess{Store: c.datastore, Level: authz.LevelWrite},
		pipeline.StepFunc{StepName: "ApplyAndPut", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			campaign, err := stashedCampaign(exec)
			if err != nil {
				return nil, err
			}
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}

			if req.CampaignName != nil {
				if *req.CampaignName == "" {
					return nil, serverErrors.MissingRequiredField("campaignName")
				}
				campaign.CampaignName = *req.CampaignName
			}
			if req.Year != nil {
				campaign.Year = *req.Year
				campaign.UnitCampaignKey = deriveUnitCampaignKey(profile, *req.Year)
			}
			if req.StartDate != nil {
				campaign.StartDate = *req.StartDate
			}
			if req.EndDate != nil {
				campaign.EndDate = *req.EndDate
			}
			campaign.UpdatedAt = now()
			if err := c.datastore.PutCampaign(ctx, campaign); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Campaign(campaign), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Campaign), nil
}

// DeleteCampaignCommand removes a campaign and its orders. Orders go first;
// the campaign row last, so an interrupted delete never strands orders
// without their campaign.
type DeleteCampaignCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewDeleteCampaignCommand(datastore storage.Datastore, logger logger.Logger) *DeleteCampaignCommand {
	return &DeleteCampaignCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type DeleteCampaignRequest struct {
	CampaignID string
}

type DeleteCampaignResponse struct {
	CampaignID    string `json:"campaignId"`
	DeletedOrders int    `json:"deletedOrders"`
}

func (c *DeleteCampaignCommand) Execute(ctx context.Context, req *DeleteCampaignRequest) (*DeleteCampaignResponse, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("DeleteCampaign", c.logger,
		fetchCampaignByID(c.datastore, req.CampaignID),
		fetchCampaignProfile(c.datastore),
		authz.ProfileAccess{Store: c.datastore, Level: authz.LevelWrite},
		pipeline.StepFunc{StepName: "DeleteOrders", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			campaign, err := stashedCampaign(exec)
			if err != nil {
				return nil, err
			}
			orders, err := c.datastore.ListOrdersByCampaign(ctx, campaign.CampaignID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			for _, order := range orders {
				if err := c.datastore.DeleteOrder(ctx, order.CampaignID, order.OrderID); err != nil {
					return nil, serverErrors.HandleError("", err)
				}
			}
			exec.Set(stashCascadeOrders, len(orders))
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "DeleteCampaign", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			campaign, err := stashedCampaign(exec)
			if err != nil {
				return nil, err
			}
			if err := c.datastore.DeleteCampaign(ctx, campaign.ProfileID, campaign.CampaignID); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			deleted, _ := exec.Get(stashCascadeOrders)
			return &DeleteCampaignResponse{
				CampaignID:    key.StripPrefix(campaign.CampaignID),
				DeletedOrders: deleted.(int),
			}, nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*DeleteCampaignResponse), nil
}

// ListCampaignsByProfileQuery lists a profile's campaigns. Requires read
// access.
type ListCampaignsByProfileQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewListCampaignsByProfileQuery(datastore storage.Datastore, logger logger.Logger) *ListCampaignsByProfileQuery {
	return &ListCampaignsByProfileQuery{
		datastore: datastore,
		logger:    logger,
	}
}

type ListCampaignsByProfileRequest struct {
	ProfileID string
}

func (q *ListCampaignsByProfileQuery) Execute(ctx context.Context, req *ListCampaignsByProfileRequest) ([]*types.Campaign, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListCampaignsByProfile", q.logger,
		authz.FetchProfile{Store: q.datastore, ProfileID: req.ProfileID},
		authz.ProfileAccess{Store: q.datastore, Level: authz.LevelRead},
		pipeline.StepFunc{StepName: "ListCampaigns", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			campaigns, err := q.datastore.ListCampaignsByProfile(ctx, profile.ProfileID, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Campaigns(campaigns), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.Campaign), nil
}
