package commands

import (
	"context"
	"sort"

	"github.com/kernelworx/psm/internal/authz"
	"github.com/kernelworx/psm/internal/transform"
	"github.com/kernelworx/psm/pkg/key"
	"github.com/kernelworx/psm/pkg/logger"
	"github.com/kernelworx/psm/pkg/pipeline"
	serverErrors "github.com/kernelworx/psm/pkg/server/errors"
	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

// ListCatalogsInUseQuery returns the id of every catalog referenced by a
// campaign on a profile the caller owns or holds a share on. The result
// feeds catalog pickers, so it is ids only, deduplicated and sorted.
type ListCatalogsInUseQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewListCatalogsInUseQuery(datastore storage.Datastore, logger logger.Logger) *ListCatalogsInUseQuery {
	return &ListCatalogsInUseQuery{
		datastore: datastore,
		logger:    logger,
	}
}

func (q *ListCatalogsInUseQuery) Execute(ctx context.Context) ([]string, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListCatalogsInUse", q.logger,
		pipeline.StepFunc{StepName: "CollectCatalogIDs", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			callerID := key.WithPrefix(key.Account, exec.CallerAccountID)

			profiles, err := q.datastore.ListProfilesByOwner(ctx, callerID, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			profileIDs := make([]string, 0, len(profiles))
			for _, profile := range profiles {
				profileIDs = append(profileIDs, profile.ProfileID)
			}

			shares, err := q.datastore.ListSharesByTarget(ctx, callerID, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			for _, share := range shares {
				profileIDs = append(profileIDs, share.ProfileID)
			}

			seen := make(map[string]struct{})
			for _, profileID := range profileIDs {
				campaigns, err := q.datastore.ListCampaignsByProfile(ctx, profileID, storage.ReadOptions{})
				if err != nil {
					return nil, serverErrors.HandleError("", err)
				}
				for _, campaign := range campaigns {
					if campaign.CatalogID == "" {
						continue
					}
					seen[key.StripPrefix(campaign.CatalogID)] = struct{}{}
				}
			}

			ids := make([]string, 0, len(seen))
			for catalogID := range seen {
				ids = append(ids, catalogID)
			}
			sort.Strings(ids)
			return ids, nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// ListUnitCatalogsQuery lists the catalogs used by a unit's campaigns in a
// given year, restricted to campaigns on profiles the caller can read.
// Profiles the caller cannot see are skipped silently rather than denied, so
// the listing never reveals which inaccessible profiles exist.
type ListUnitCatalogsQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewListUnitCatalogsQuery(datastore storage.Datastore, logger logger.Logger) *ListUnitCatalogsQuery {
	return &ListUnitCatalogsQuery{
		datastore: datastore,
		logger:    logger,
	}
}

type ListUnitCatalogsRequest struct {
	UnitType   string
	UnitNumber string
	City       string
	State      string
	Year       int
}

func (q *ListUnitCatalogsQuery) Execute(ctx context.Context, req *ListUnitCatalogsRequest) ([]*types.Catalog, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListUnitCatalogs", q.logger,
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
		pipeline.StepFunc{StepName: "CollectCatalogs", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			unitKey := key.UnitCampaignKey(req.UnitType, req.UnitNumber, req.City, req.State, req.Year)
			campaigns, err := q.datastore.ListCampaignsByUnitKey(ctx, unitKey, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}

			seen := make(map[string]struct{})
			var catalogs []*types.Catalog
			for _, campaign := range campaigns {
				if campaign.CatalogID == "" {
					continue
				}
				if _, ok := seen[key.StripPrefix(campaign.CatalogID)]; ok {
					continue
				}
				if !q.callerCanRead(ctx, exec, campaign.ProfileID) {
					continue
				}
				seen[key.StripPrefix(campaign.CatalogID)] = struct{}{}

				catalog, err := resolveCatalog(ctx, q.datastore, campaign.CatalogID, storage.ReadOptions{})
				if err != nil {
					// A dangling catalog reference degrades the listing, not
					// the whole query.
					q.logger.WarnWithContext(ctx, "skipping unresolvable catalog reference")
					continue
				}
				catalogs = append(catalogs, catalog)
			}

			sort.Slice(catalogs, func(i, j int) bool {
				return catalogs[i].CatalogName < catalogs[j].CatalogName
			})
			return transform.Catalogs(catalogs), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.Catalog), nil
}

func (q *ListUnitCatalogsQuery) callerCanRead(ctx context.Context, exec *pipeline.Exec, profileID string) bool {
	profile, err := q.datastore.GetProfileByID(ctx, profileID, storage.ReadOptions{})
	if err != nil {
		return false
	}
	if authz.IsOwner(exec.CallerAccountID, profile) {
		return true
	}
	share, err := q.datastore.GetShare(ctx, profile.ProfileID,
		key.WithPrefix(key.Account, exec.CallerAccountID), storage.ReadOptions{})
	if err != nil {
		return false
	}
	return types.HasPermission(share.Permissions, types.PermissionRead)
}
