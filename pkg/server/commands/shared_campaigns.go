package commands

import (
	"context"
	"errors"

	"github.com/kernelworx/psm/internal/transform"
	"github.com/kernelworx/psm/pkg/id"
	"github.com/kernelworx/psm/pkg/key"
	"github.com/kernelworx/psm/pkg/logger"
	"github.com/kernelworx/psm/pkg/pipeline"
	serverErrors "github.com/kernelworx/psm/pkg/server/errors"
	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

// DefaultSharedCampaignLimit caps how many templates one account can have
// published at a time.
const DefaultSharedCampaignLimit = 10

const stashTemplate = "sharedCampaign"

// templateCreatorOrAdmin gates template mutations to the publishing account.
func templateCreatorOrAdmin(exec *pipeline.Exec, tpl *types.SharedCampaignTemplate, action string) error {
	if exec.IsAdmin {
		return nil
	}
	if tpl.CreatedBy == key.WithPrefix(key.Account, exec.CallerAccountID) || tpl.CreatedBy == exec.CallerAccountID {
		return nil
	}
	return serverErrors.OnlySharedCampaignCreatorCan(action)
}

func fetchTemplate(store storage.SharedCampaignsBackend, code string) pipeline.StepFunc {
	return pipeline.StepFunc{StepName: "FetchTemplate", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
		tpl, err := store.GetSharedCampaign(ctx, code, storage.ReadOptions{Consistency: storage.HigherConsistency})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, serverErrors.SharedCampaignNotFound(code)
			}
			return nil, serverErrors.HandleError("", err)
		}
		exec.Set(stashTemplate, tpl)
		return tpl, nil
	}}
}

func stashedTemplate(exec *pipeline.Exec) (*types.SharedCampaignTemplate, error) {
	v, ok := exec.Get(stashTemplate)
	if !ok {
		return nil, serverErrors.MissingStashValue(stashTemplate)
	}
	return v.(*types.SharedCampaignTemplate), nil
}

// CreateSharedCampaignCommand publishes a campaign template under a fresh
// share code. Each account can hold a bounded number of published templates.
type CreateSharedCampaignCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
	limit     int
}

type CreateSharedCampaignOption func(*CreateSharedCampaignCommand)

// WithSharedCampaignLimit overrides the per-account template cap.
func WithSharedCampaignLimit(limit int) CreateSharedCampaignOption {
	return func(c *CreateSharedCampaignCommand) {
		c.limit = limit
	}
}

func NewCreateSharedCampaignCommand(datastore storage.Datastore, logger logger.Logger, opts ...CreateSharedCampaignOption) *CreateSharedCampaignCommand {
	c := &CreateSharedCampaignCommand{
		datastore: datastore,
		logger:    logger,
		limit:     DefaultSharedCampaignLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CreateSharedCampaignRequest struct {
	CampaignName string
	CatalogID    string
	Description  string

	// Unit fields feed the discovery key; all but year may be blank, in
	// which case the template is only reachable by its share code.
	UnitType   string
	UnitNumber string
	City       string
	State      string
	Year       int
}

func (c *CreateSharedCampaignCommand) Execute(ctx context.Context, req *CreateSharedCampaignRequest) (*types.SharedCampaignTemplate, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("CreateSharedCampaign",
		c.logger,
		pipeline.StepFunc{StepName: "CheckLimit", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			if req.CampaignName == "" {
				return nil, serverErrors.MissingRequiredField("campaignName")
			}
			existing, err := c.datastore.ListSharedCampaignsByCreator(ctx,
				key.WithPrefix(key.Account, exec.CallerAccountID),
				storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			if len(existing) >= c.limit {
				return nil, serverErrors.SharedCampaignLimitExceeded(c.limit)
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "ResolveCatalog", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			catalog, err := resolveCatalog(ctx, c.datastore, req.CatalogID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, serverErrors.CatalogNotFound(key.StripPrefix(req.CatalogID))
				}
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashCatalog, catalog)
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "FetchAccount", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			// An authenticated caller always has an account row, so a miss
			// here is an internal inconsistency, not a caller error.
			account, err := c.datastore.GetAccount(ctx,
				key.WithPrefix(key.Account, exec.CallerAccountID),
				storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashAccount, account)
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "PutTemplate", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashCatalog)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashCatalog)
			}
			catalog := v.(*types.Catalog)

			var unitKey string
			if req.UnitType != "" && req.UnitNumber != "" && req.Year != 0 {
				unitKey = key.UnitCampaignKey(req.UnitType, req.UnitNumber, req.City, req.State, req.Year)
			}

			ts := now()
			tpl := &types.SharedCampaignTemplate{
				SharedCampaignCode: id.NewSharedCampaignCode(),
				CampaignName:       req.CampaignName,
				CatalogID:          catalog.CatalogID,
				CreatedBy:          key.WithPrefix(key.Account, exec.CallerAccountID),
				UnitCampaignKey:    unitKey,
				Description:        req.Description,
				CreatedAt:          ts,
				UpdatedAt:          ts,
			}
			if err := c.datastore.PutSharedCampaign(ctx, tpl); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.SharedCampaign(tpl), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.SharedCampaignTemplate), nil
}

// GetSharedCampaignQuery returns a template by share code. The code itself
// is the capability; any authenticated caller holding it may read.
type GetSharedCampaignQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewGetSharedCampaignQuery(datastore storage.Datastore, logger logger.Logger) *GetSharedCampaignQuery {
	return &GetSharedCampaignQuery{
		datastore: datastore,
		logger:    logger,
	}
}

type GetSharedCampaignRequest struct {
	SharedCampaignCode string
}

func (q *GetSharedCampaignQuery) Execute(ctx context.Context, req *GetSharedCampaignRequest) (*types.SharedCampaignTemplate, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("GetSharedCampaign", q.logger,
		fetchTemplate(q.datastore, req.SharedCampaignCode),
		pipeline.StepFunc{StepName: "ProjectTemplate", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			tpl, err := stashedTemplate(exec)
			if err != nil {
				return nil, err
			}
			return transform.SharedCampaign(tpl), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.SharedCampaignTemplate), nil
}

// UpdateSharedCampaignCommand edits a published template. Creator-only.
type UpdateSharedCampaignCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewUpdateSharedCampaignCommand(datastore storage.Datastore, logger logger.Logger) *UpdateSharedCampaignCommand {
	return &UpdateSharedCampaignCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type UpdateSharedCampaignRequest struct {
	SharedCampaignCode string
	CampaignName       *string
	Description        *string
}

func (c *UpdateSharedCampaignCommand) Execute(ctx context.Context, req *UpdateSharedCampaignRequest) (*types.SharedCampaignTemplate, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("UpdateSharedCampaign", c.logger,
		fetchTemplate(c.datastore, req.SharedCampaignCode),
		pipeline.StepFunc{StepName: "Authorize", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			tpl, err := stashedTemplate(exec)
			if err != nil {
				return nil, err
			}
			return nil, templateCreatorOrAdmin(exec, tpl, "update it")
		}},
		pipeline.StepFunc{StepName: "ApplyAndPut", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			tpl, err := stashedTemplate(exec)
			if err != nil {
				return nil, err
			}
			if req.CampaignName != nil {
				if *req.CampaignName == "" {
					return nil, serverErrors.MissingRequiredField("campaignName")
				}
				tpl.CampaignName = *req.CampaignName
			}
			if req.Description != nil {
				tpl.Description = *req.Description
			}
			tpl.UpdatedAt = now()
			if err := c.datastore.PutSharedCampaign(ctx, tpl); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.SharedCampaign(tpl), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.SharedCampaignTemplate), nil
}

// DeleteSharedCampaignCommand unpublishes a template. Creator-only.
// Campaigns already instantiated from it are untouched.
type DeleteSharedCampaignCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewDeleteSharedCampaignCommand(datastore storage.Datastore, logger logger.Logger) *DeleteSharedCampaignCommand {
	return &DeleteSharedCampaignCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type DeleteSharedCampaignRequest struct {
	SharedCampaignCode string
}

type DeleteSharedCampaignResponse struct {
	SharedCampaignCode string `json:"sharedCampaignCode"`
	Deleted            bool   `json:"deleted"`
}

func (c *DeleteSharedCampaignCommand) Execute(ctx context.Context, req *DeleteSharedCampaignRequest) (*DeleteSharedCampaignResponse, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("DeleteSharedCampaign", c.logger,
		fetchTemplate(c.datastore, req.SharedCampaignCode),
		pipeline.StepFunc{StepName: "Authorize", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			tpl, err := stashedTemplate(exec)
			if err != nil {
				return nil, err
			}
			return nil, templateCreatorOrAdmin(exec, tpl, "delete it")
		}},
		pipeline.StepFunc{StepName: "DeleteTemplate", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			tpl, err := stashedTemplate(exec)
			if err != nil {
				return nil, err
			}
			if err := c.datastore.DeleteSharedCampaign(ctx, tpl.SharedCampaignCode); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return &DeleteSharedCampaignResponse{
				SharedCampaignCode: tpl.SharedCampaignCode,
				Deleted:            true,
			}, nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*DeleteSharedCampaignResponse), nil
}

// ListMySharedCampaignsQuery lists the caller's published templates.
type ListMySharedCampaignsQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewListMySharedCampaignsQuery(datastore storage.Datastore, logger logger.Logger) *ListMySharedCampaignsQuery {
	return &ListMySharedCampaignsQuery{
		datastore: datastore,
		logger:    logger,
	}
}

func (q *ListMySharedCampaignsQuery) Execute(ctx context.Context) ([]*types.SharedCampaignTemplate, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListMySharedCampaigns", q.logger,
		pipeline.StepFunc{StepName: "ListTemplates", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			tpls, err := q.datastore.ListSharedCampaignsByCreator(ctx,
				key.WithPrefix(key.Account, exec.CallerAccountID),
				storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.SharedCampaigns(tpls), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.SharedCampaignTemplate), nil
}

// FindSharedCampaignsQuery discovers templates published for a unit's
// campaign year.
type FindSharedCampaignsQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewFindSharedCampaignsQuery(datastore storage.Datastore, logger logger.Logger) *FindSharedCampaignsQuery {
	return &FindSharedCampaignsQuery{
		datastore: datastore,
		logger:    logger,
	}
}

type FindSharedCampaignsRequest struct {
	UnitType   string
	UnitNumber string
	City       string
	State      string
	Year       int
}

func (q *FindSharedCampaignsQuery) Execute(ctx context.Context, req *FindSharedCampaignsRequest) ([]*types.SharedCampaignTemplate, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("FindSharedCampaigns", q.logger,
		pipeline.StepFunc{StepName: "ValidateInput", Fn: func(_ context.Context, _ *pipeline.Exec) (any, error) {
			if req.UnitType == "" {
				return nil, serverErrors.MissingRequiredField("unitType")
			}
			if req.UnitNumber == "" {
				return nil, serverErrors.MissingRequiredField("unitNumber")
			}
			if req.Year == 0 {
				return nil, serverErrors.MissingRequiredField("year")
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "ListByUnitKey", Fn: func(ctx context.Context, _ *pipeline.Exec) (any, error) {
			unitKey := key.UnitCampaignKey(req.UnitType, req.UnitNumber, req.City, req.State, req.Year)
			tpls, err := q.datastore.ListSharedCampaignsByUnitKey(ctx, unitKey, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.SharedCampaigns(tpls), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.SharedCampaignTemplate), nil
}
