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

// CreateSellerProfileCommand creates a profile owned by the caller.
type CreateSellerProfileCommand struct {
	profilesBackend storage.ProfilesBackend
	logger          logger.Logger
}

func NewCreateSellerProfileCommand(profilesBackend storage.ProfilesBackend, logger logger.Logger) *CreateSellerProfileCommand {
	return &CreateSellerProfileCommand{
		profilesBackend: profilesBackend,
		logger:          logger,
	}
}

type CreateSellerProfileRequest struct {
	SellerName string
	UnitType   string
	UnitNumber string
	City       string
	State      string
}

func (c *CreateSellerProfileCommand) Execute(ctx context.Context, req *CreateSellerProfileRequest) (*types.SellerProfile, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("CreateSellerProfile", c.logger,
		pipeline.StepFunc{StepName: "ValidateInput", Fn: func(_ context.Context, _ *pipeline.Exec) (any, error) {
			if req.SellerName == "" {
				return nil, serverErrors.MissingRequiredField("sellerName")
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "PutProfile", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			ts := now()
			profile := &types.SellerProfile{
				OwnerAccountID: key.WithPrefix(key.Account, exec.CallerAccountID),
				ProfileID:      id.NewProfileID(),
				SellerName:     req.SellerName,
				UnitType:       req.UnitType,
				UnitNumber:     req.UnitNumber,
				City:           req.City,
				State:          req.State,
				CreatedAt:      ts,
				UpdatedAt:      ts,
			}
			if err := c.profilesBackend.PutProfile(ctx, profile); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Profile(profile, exec.CallerAccountID, nil), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.SellerProfile), nil
}

// GetProfileQuery returns one profile with per-caller view annotations.
type GetProfileQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewGetProfileQuery(datastore storage.Datastore, logger logger.Logger) *GetProfileQuery {
	return &GetProfileQuery{
		datastore: datastore,
		logger:    logger,
	}
}

type GetProfileRequest struct {
	ProfileID string
}

func (q *GetProfileQuery) Execute(ctx context.Context, req *GetProfileRequest) (*types.SellerProfile, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("GetProfile", q.logger,
		authz.FetchProfile{Store: q.datastore, ProfileID: req.ProfileID},
		authz.ProfileAccess{Store: q.datastore, Level: authz.LevelRead},
		pipeline.StepFunc{StepName: "ProjectProfile", Fn: projectProfile},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.SellerProfile), nil
}

// projectProfile turns the stashed profile plus authorization annotations
// into the caller-facing view. Shared by the profile read pipelines.
func projectProfile(_ context.Context, exec *pipeline.Exec) (any, error) {
	v, ok := exec.Get(authz.StashProfile)
	if !ok {
		return nil, serverErrors.MissingStashValue(authz.StashProfile)
	}
	profile := v.(*types.SellerProfile)

	var perms []types.Permission
	if p, ok := exec.Get(authz.StashPermissions); ok {
		perms = p.([]types.Permission)
	}
	return transform.Profile(profile, exec.CallerAccountID, perms), nil
}

// ListMyProfilesQuery lists the profiles the caller owns.
type ListMyProfilesQuery struct {
	profilesBackend storage.ProfilesBackend
	logger          logger.Logger
}

func NewListMyProfilesQuery(profilesBackend storage.ProfilesBackend, logger logger.Logger) *ListMyProfilesQuery {
	return &ListMyProfilesQuery{
		profilesBackend: profilesBackend,
		logger:          logger,
	}
}

func (q *ListMyProfilesQuery) Execute(ctx context.Context) ([]*types.SellerProfile, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListMyProfiles", q.logger,
		pipeline.StepFunc{StepName: "ListByOwner", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			ownerID := key.WithPrefix(key.Account, exec.CallerAccountID)
			profiles, err := q.profilesBackend.ListProfilesByOwner(ctx, ownerID, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Profiles(profiles, exec.CallerAccountID, nil), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.SellerProfile), nil
}

// UpdateSellerProfileCommand updates profile fields. Requires write access;
// a WRITE share is sufficient, ownership is not required.
type UpdateSellerProfileCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewUpdateSellerProfileCommand(datastore storage.Datastore, logger logger.Logger) *UpdateSellerProfileCommand {
	return &UpdateSellerProfileCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type UpdateSellerProfileRequest struct {
	ProfileID  string
	SellerName *string
	UnitType   *string
	UnitNumber *string
	City       *string
	State      *string
}

func (c *UpdateSellerProfileCommand) Execute(ctx context.Context, req *UpdateSellerProfileRequest) (*types.SellerProfile, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("UpdateSellerProfile", c.logger,
		authz.FetchProfile{Store: c.datastore, ProfileID: req.ProfileID},
		authz.ProfileAccess{Store: c.datastore, Level: authz.LevelWrite},
		pipeline.StepFunc{StepName: "ApplyAndPut", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(authz.StashProfile)
			if !ok {
				return nil, serverErrors.MissingStashValue(authz.StashProfile)
			}
			profile := v.(*types.SellerProfile)
			if req.SellerName != nil {
				if *req.SellerName == "" {
					return nil, serverErrors.MissingRequiredField("sellerName")
				}
				profile.SellerName = *req.SellerName
			}
			if req.UnitType != nil {
				profile.UnitType = *req.UnitType
			}
			if req.UnitNumber != nil {
				profile.UnitNumber = *req.UnitNumber
			}
			if req.City != nil {
				profile.City = *req.City
			}
			if req.State != nil {
				profile.State = *req.State
			}
			profile.UpdatedAt = now()
			if err := c.datastore.PutProfile(ctx, profile); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(authz.StashProfile, profile)
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "ProjectProfile", Fn: projectProfile},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.SellerProfile), nil
}

// TransferProfileOwnershipCommand re-keys the ownership row to a new owner.
// Platform admins only.
type TransferProfileOwnershipCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewTransferProfileOwnershipCommand(datastore storage.Datastore, logger logger.Logger) *TransferProfileOwnershipCommand {
	return &TransferProfileOwnershipCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type TransferProfileOwnershipRequest struct {
	ProfileID         string
	NewOwnerAccountID string
}

func (c *TransferProfileOwnershipCommand) Execute(ctx context.Context, req *TransferProfileOwnershipRequest) (*types.SellerProfile, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("TransferProfileOwnership", c.logger,
		authz.AdminOnly{},
		pipeline.StepFunc{StepName: "FetchProfile", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profileID := key.WithPrefix(key.Profile, req.ProfileID)
			profile, err := c.datastore.GetProfileByID(ctx, profileID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, serverErrors.ProfileNotFound(key.StripPrefix(profileID))
				}
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(authz.StashProfile, profile)
			return profile, nil
		}},
		pipeline.StepFunc{StepName: "ReKeyOwnership", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(authz.StashProfile)
			if !ok {
				return nil, serverErrors.MissingStashValue(authz.StashProfile)
			}
			profile := v.(*types.SellerProfile)
			previousOwner := profile.OwnerAccountID

			profile.OwnerAccountID = key.WithPrefix(key.Account, req.NewOwnerAccountID)
			profile.UpdatedAt = now()

			// The new ownership row lands before the old one goes away; a
			// crash in between leaves an extra row, never a missing one.
			if err := c.datastore.PutProfile(ctx, profile); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			if previousOwner != profile.OwnerAccountID {
				if err := c.datastore.DeleteProfileOwnership(ctx, previousOwner, profile.ProfileID); err != nil {
					return nil, serverErrors.HandleError("", err)
				}
			}
			return transform.Profile(profile, req.NewOwnerAccountID, nil), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.SellerProfile), nil
}
