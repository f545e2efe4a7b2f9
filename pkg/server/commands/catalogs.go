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

// catalogOwnerOrAdmin authorizes a catalog mutation: admin-managed catalogs
// take the admin claim, user-created catalogs take the owning account or an
// admin.
func catalogOwnerOrAdmin(exec *pipeline.Exec, catalog *types.Catalog, action string) error {
	if catalog.CatalogType == types.CatalogTypeAdminManaged {
		if !exec.IsAdmin {
			return serverErrors.ErrAdminRequired
		}
		return nil
	}

	callerID := key.WithPrefix(key.Account, exec.CallerAccountID)
	if catalog.OwnerAccountID == callerID || catalog.OwnerAccountID == exec.CallerAccountID || exec.IsAdmin {
		return nil
	}
	return serverErrors.OnlyCatalogOwnerCan(action)
}

// CreateCatalogCommand creates a product catalog. Admin-managed catalogs
// require the admin claim and are owned by no account.
type CreateCatalogCommand struct {
	catalogsBackend storage.CatalogsBackend
	logger          logger.Logger
}

func NewCreateCatalogCommand(catalogsBackend storage.CatalogsBackend, logger logger.Logger) *CreateCatalogCommand {
	return &CreateCatalogCommand{
		catalogsBackend: catalogsBackend,
		logger:          logger,
	}
}

type CreateCatalogRequest struct {
	CatalogName  string
	Products     []types.Product
	IsPublic     bool
	AdminManaged bool
}

func (c *CreateCatalogCommand) Execute(ctx context.Context, req *CreateCatalogRequest) (*types.Catalog, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("CreateCatalog", c.logger,
		pipeline.StepFunc{StepName: "ValidateInput", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			if req.CatalogName == "" {
				return nil, serverErrors.MissingRequiredField("catalogName")
			}
			if req.AdminManaged && !exec.IsAdmin {
				return nil, serverErrors.ErrAdminRequired
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "PutCatalog", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			ts := now()
			catalog := &types.Catalog{
				CatalogID:   id.NewCatalogID(),
				CatalogName: req.CatalogName,
				Products:    append([]types.Product(nil), req.Products...),
				CatalogType: types.CatalogTypeUserCreated,
				IsPublic:    req.IsPublic,
				CreatedAt:   ts,
				UpdatedAt:   ts,
			}
			if req.AdminManaged {
				catalog.CatalogType = types.CatalogTypeAdminManaged
			} else {
				catalog.OwnerAccountID = key.WithPrefix(key.Account, exec.CallerAccountID)
			}
			if err := c.catalogsBackend.PutCatalog(ctx, catalog); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Catalog(catalog), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Catalog), nil
}

// UpdateCatalogCommand replaces catalog fields, products included.
type UpdateCatalogCommand struct {
	catalogsBackend storage.CatalogsBackend
	logger          logger.Logger
}

func NewUpdateCatalogCommand(catalogsBackend storage.CatalogsBackend, logger logger.Logger) *UpdateCatalogCommand {
	return &UpdateCatalogCommand{
		catalogsBackend: catalogsBackend,
		logger:          logger,
	}
}

type UpdateCatalogRequest struct {
	CatalogID   string
	CatalogName *string
	Products    []types.Product
	IsPublic    *bool
}

func (c *UpdateCatalogCommand) Execute(ctx context.Context, req *UpdateCatalogRequest) (*types.Catalog, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("UpdateCatalog", c.logger,
		pipeline.StepFunc{StepName: "FetchCatalog", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			catalog, err := resolveCatalog(ctx, c.catalogsBackend, req.CatalogID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, serverErrors.CatalogNotFound(key.StripPrefix(req.CatalogID))
				}
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashCatalog, catalog)
			return catalog, nil
		}},
		pipeline.StepFunc{StepName: "Authorize", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashCatalog)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashCatalog)
			}
			return nil, catalogOwnerOrAdmin(exec, v.(*types.Catalog), "update this catalog")
		}},
		pipeline.StepFunc{StepName: "ApplyAndPut", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashCatalog)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashCatalog)
			}
			catalog := v.(*types.Catalog)
			if req.CatalogName != nil {
				if *req.CatalogName == "" {
					return nil, serverErrors.MissingRequiredField("catalogName")
				}
				catalog.CatalogName = *req.CatalogName
			}
			if req.Products != nil {
				catalog.Products = append([]types.Product(nil), req.Products...)
			}
			if req.IsPublic != nil {
				catalog.IsPublic = *req.IsPublic
			}
			catalog.UpdatedAt = now()
			if err := c.catalogsBackend.PutCatalog(ctx, catalog); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Catalog(catalog), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Catalog), nil
}

// DeleteCatalogCommand soft-deletes a catalog. The delete is refused while
// any campaign still references the catalog, under either id form.
type DeleteCatalogCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewDeleteCatalogCommand(datastore storage.Datastore, logger logger.Logger) *DeleteCatalogCommand {
	return &DeleteCatalogCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type DeleteCatalogRequest struct {
	CatalogID string
}

type DeleteCatalogResponse struct {
	CatalogID string `json:"catalogId"`
	Deleted   bool   `json:"deleted"`
}

func (c *DeleteCatalogCommand) Execute(ctx context.Context, req *DeleteCatalogRequest) (*DeleteCatalogResponse, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("DeleteCatalog", c.logger,
		pipeline.StepFunc{StepName: "FetchCatalog", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			catalog, err := resolveCatalog(ctx, c.datastore, req.CatalogID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, serverErrors.CatalogNotFound(key.StripPrefix(req.CatalogID))
				}
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashCatalog, catalog)
			return catalog, nil
		}},
		pipeline.StepFunc{StepName: "Authorize", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashCatalog)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashCatalog)
			}
			return nil, catalogOwnerOrAdmin(exec, v.(*types.Catalog), "delete this catalog")
		}},
		pipeline.StepFunc{StepName: "CheckUsage", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashCatalog)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashCatalog)
			}
			catalog := v.(*types.Catalog)

			// Old campaigns reference raw catalog ids.
			for _, catalogID := range []string{catalog.CatalogID, key.StripPrefix(catalog.CatalogID)} {
				campaigns, err := c.datastore.ListCampaignsByCatalog(ctx, catalogID, storage.ReadOptions{Consistency: storage.HigherConsistency})
				if err != nil {
					return nil, serverErrors.HandleError("", err)
				}
				if len(campaigns) > 0 {
					return nil, serverErrors.ErrCatalogInUse
				}
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "MarkDeleted", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashCatalog)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashCatalog)
			}
			catalog := v.(*types.Catalog)
			if err := c.datastore.MarkCatalogDeleted(ctx, catalog.CatalogID); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return &DeleteCatalogResponse{
				CatalogID: key.StripPrefix(catalog.CatalogID),
				Deleted:   true,
			}, nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*DeleteCatalogResponse), nil
}

// GetCatalogQuery resolves a catalog by id, raw form first. Soft-deleted
// catalogs still resolve so historical campaigns and orders keep a working
// reference.
type GetCatalogQuery struct {
	catalogsBackend storage.CatalogsBackend
	logger          logger.Logger
}

func NewGetCatalogQuery(catalogsBackend storage.CatalogsBackend, logger logger.Logger) *GetCatalogQuery {
	return &GetCatalogQuery{
		catalogsBackend: catalogsBackend,
		logger:          logger,
	}
}

type GetCatalogRequest struct {
	CatalogID string
}

func (q *GetCatalogQuery) Execute(ctx context.Context, req *GetCatalogRequest) (*types.Catalog, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("GetCatalog", q.logger,
		pipeline.StepFunc{StepName: "ResolveCatalog", Fn: func(ctx context.Context, _ *pipeline.Exec) (any, error) {
			catalog, err := resolveCatalog(ctx, q.catalogsBackend, req.CatalogID, storage.ReadOptions{})
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, serverErrors.CatalogNotFound(key.StripPrefix(req.CatalogID))
				}
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Catalog(catalog), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Catalog), nil
}

// ListPublicCatalogsQuery lists public catalogs, soft-deleted excluded.
type ListPublicCatalogsQuery struct {
	catalogsBackend storage.CatalogsBackend
	logger          logger.Logger
}

func NewListPublicCatalogsQuery(catalogsBackend storage.CatalogsBackend, logger logger.Logger) *ListPublicCatalogsQuery {
	return &ListPublicCatalogsQuery{
		catalogsBackend: catalogsBackend,
		logger:          logger,
	}
}

func (q *ListPublicCatalogsQuery) Execute(ctx context.Context) ([]*types.Catalog, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListPublicCatalogs", q.logger,
		pipeline.StepFunc{StepName: "ListPublic", Fn: func(ctx context.Context, _ *pipeline.Exec) (any, error) {
			catalogs, err := q.catalogsBackend.ListPublicCatalogs(ctx, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Catalogs(catalogs), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.Catalog), nil
}

// ListMyCatalogsQuery lists the caller's catalogs, soft-deleted excluded.
type ListMyCatalogsQuery struct {
	catalogsBackend storage.CatalogsBackend
	logger          logger.Logger
}

func NewListMyCatalogsQuery(catalogsBackend storage.CatalogsBackend, logger logger.Logger) *ListMyCatalogsQuery {
	return &ListMyCatalogsQuery{
		catalogsBackend: catalogsBackend,
		logger:          logger,
	}
}

func (q *ListMyCatalogsQuery) Execute(ctx context.Context) ([]*types.Catalog, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListMyCatalogs", q.logger,
		pipeline.StepFunc{StepName: "ListByOwner", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			ownerID := key.WithPrefix(key.Account, exec.CallerAccountID)
			catalogs, err := q.catalogsBackend.ListCatalogsByOwner(ctx, ownerID, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Catalogs(catalogs), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.Catalog), nil
}
