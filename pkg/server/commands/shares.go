package commands

import (
	"context"
	"errors"

	"github.com/kernelworx/psm/internal/authz"
	"github.com/kernelworx/psm/internal/transform"
	"github.com/kernelworx/psm/pkg/key"
	"github.com/kernelworx/psm/pkg/logger"
	"github.com/kernelworx/psm/pkg/pipeline"
	serverErrors "github.com/kernelworx/psm/pkg/server/errors"
	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

// ShareProfileDirectCommand grants a named account access to a profile by
// email without an invite. Owner only.
type ShareProfileDirectCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewShareProfileDirectCommand(datastore storage.Datastore, logger logger.Logger) *ShareProfileDirectCommand {
	return &ShareProfileDirectCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type ShareProfileDirectRequest struct {
	ProfileID   string
	TargetEmail string
	Permissions []types.Permission
}

func (c *ShareProfileDirectCommand) Execute(ctx context.Context, req *ShareProfileDirectRequest) (*types.Share, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ShareProfileDirect", c.logger,
		authz.OwnerOnly{Store: c.datastore, ProfileID: req.ProfileID, Action: "share this profile"},
		pipeline.StepFunc{StepName: "ValidatePermissions", Fn: func(_ context.Context, _ *pipeline.Exec) (any, error) {
			if len(types.NormalizePermissions(req.Permissions)) == 0 {
				return nil, serverErrors.EmptyPermissions()
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "ResolveTargetAccount", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			target, err := c.datastore.GetAccountByEmail(ctx, req.TargetEmail, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, serverErrors.AccountNotFoundByEmail(req.TargetEmail)
				}
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashTarget, target)
			return target, nil
		}},
		pipeline.StepFunc{StepName: "CheckExistingShare", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			v, ok := exec.Get(stashTarget)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashTarget)
			}
			target := v.(*types.Account)

			_, err = c.datastore.GetShare(ctx, profile.ProfileID, target.AccountID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err == nil {
				return nil, serverErrors.ErrShareExists
			}
			if !errors.Is(err, storage.ErrNotFound) {
				return nil, serverErrors.HandleError("", err)
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "PutShare", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			v, ok := exec.Get(stashTarget)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashTarget)
			}
			target := v.(*types.Account)

			ts := now()
			share := &types.Share{
				ProfileID:       profile.ProfileID,
				TargetAccountID: target.AccountID,
				Permissions:     types.NormalizePermissions(req.Permissions),
				CreatedBy:       key.WithPrefix(key.Account, exec.CallerAccountID),
				CreatedAt:       ts,
				UpdatedAt:       ts,
			}
			if err := c.datastore.PutShare(ctx, share); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Share(share), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Share), nil
}

// RevokeShareCommand removes a grant. Owner only; a revoked grantee loses
// access on their very next request because authorization reads are strongly
// consistent.
type RevokeShareCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewRevokeShareCommand(datastore storage.Datastore, logger logger.Logger) *RevokeShareCommand {
	return &RevokeShareCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type RevokeShareRequest struct {
	ProfileID       string
	TargetAccountID string
}

type RevokeShareResponse struct {
	ProfileID       string `json:"profileId"`
	TargetAccountID string `json:"targetAccountId"`
	Revoked         bool   `json:"revoked"`
}

func (c *RevokeShareCommand) Execute(ctx context.Context, req *RevokeShareRequest) (*RevokeShareResponse, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	targetID := key.WithPrefix(key.Account, req.TargetAccountID)

	p := pipeline.New("RevokeShare", c.logger,
		authz.OwnerOnly{Store: c.datastore, ProfileID: req.ProfileID, Action: "revoke shares"},
		pipeline.StepFunc{StepName: "FetchShare", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			_, err = c.datastore.GetShare(ctx, profile.ProfileID, targetID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, serverErrors.ShareNotFound(key.StripPrefix(targetID))
				}
				return nil, serverErrors.HandleError("", err)
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "DeleteShare", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			if err := c.datastore.DeleteShare(ctx, profile.ProfileID, targetID); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return &RevokeShareResponse{
				ProfileID:       key.StripPrefix(profile.ProfileID),
				TargetAccountID: key.StripPrefix(targetID),
				Revoked:         true,
			}, nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*RevokeShareResponse), nil
}

// ListMySharesQuery lists the grants held by the caller across all profiles.
type ListMySharesQuery struct {
	sharesBackend storage.SharesBackend
	logger        logger.Logger
}

func NewListMySharesQuery(sharesBackend storage.SharesBackend, logger logger.Logger) *ListMySharesQuery {
	return &ListMySharesQuery{
		sharesBackend: sharesBackend,
		logger:        logger,
	}
}

func (q *ListMySharesQuery) Execute(ctx context.Context) ([]*types.Share, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListMyShares", q.logger,
		pipeline.StepFunc{StepName: "ListByTarget", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			targetID := key.WithPrefix(key.Account, exec.CallerAccountID)
			shares, err := q.sharesBackend.ListSharesByTarget(ctx, targetID, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Shares(shares), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.Share), nil
}

// ListSharesByProfileQuery lists the grants on one profile. Owners and WRITE
// grantees only; a READ grant is not enough to enumerate who else has
// access.
type ListSharesByProfileQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewListSharesByProfileQuery(datastore storage.Datastore, logger logger.Logger) *ListSharesByProfileQuery {
	return &ListSharesByProfileQuery{
		datastore: datastore,
		logger:    logger,
	}
}

type ListSharesByProfileRequest struct {
	ProfileID string
}

func (q *ListSharesByProfileQuery) Execute(ctx context.Context, req *ListSharesByProfileRequest) ([]*types.Share, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListSharesByProfile", q.logger,
		authz.FetchProfile{Store: q.datastore, ProfileID: req.ProfileID},
		authz.ProfileAccess{Store: q.datastore, Level: authz.LevelWrite},
		pipeline.StepFunc{StepName: "ListShares", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			shares, err := q.datastore.ListSharesByProfile(ctx, profile.ProfileID, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Shares(shares), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.Share), nil
}
