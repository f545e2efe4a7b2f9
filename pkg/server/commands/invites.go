package commands

import (
	"context"
	"errors"
	"time"

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

// DefaultInviteTTL is applied when a create request does not set an expiry.
const DefaultInviteTTL = 7 * 24 * time.Hour

// CreateProfileInviteCommand mints a redeemable invite code for a profile.
// Owner only.
type CreateProfileInviteCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewCreateProfileInviteCommand(datastore storage.Datastore, logger logger.Logger) *CreateProfileInviteCommand {
	return &CreateProfileInviteCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type CreateProfileInviteRequest struct {
	ProfileID   string
	Permissions []types.Permission

	// TTL bounds redeemability; zero means DefaultInviteTTL.
	TTL time.Duration
}

func (c *CreateProfileInviteCommand) Execute(ctx context.Context, req *CreateProfileInviteRequest) (*types.Invite, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("CreateProfileInvite", c.logger,
		authz.OwnerOnly{Store: c.datastore, ProfileID: req.ProfileID, Action: "create invites"},
		pipeline.StepFunc{StepName: "ValidatePermissions", Fn: func(_ context.Context, _ *pipeline.Exec) (any, error) {
			if len(types.NormalizePermissions(req.Permissions)) == 0 {
				return nil, serverErrors.EmptyPermissions()
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "PutInvite", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}

			ttl := req.TTL
			if ttl <= 0 {
				ttl = DefaultInviteTTL
			}
			ts := now()
			invite := &types.Invite{
				InviteCode:  id.NewInviteCode(),
				ProfileID:   profile.ProfileID,
				Permissions: types.NormalizePermissions(req.Permissions),
				CreatedBy:   key.WithPrefix(key.Account, exec.CallerAccountID),
				ExpiresAt:   ts.Add(ttl).Unix(),
				CreatedAt:   ts,
			}
			if err := c.datastore.PutInvite(ctx, invite); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Invite(invite), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Invite), nil
}

// DeleteProfileInviteCommand withdraws an unredeemed invite. Owner only; the
// invite must belong to the named profile.
type DeleteProfileInviteCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewDeleteProfileInviteCommand(datastore storage.Datastore, logger logger.Logger) *DeleteProfileInviteCommand {
	return &DeleteProfileInviteCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type DeleteProfileInviteRequest struct {
	ProfileID  string
	InviteCode string
}

type DeleteProfileInviteResponse struct {
	InviteCode string `json:"inviteCode"`
	Deleted    bool   `json:"deleted"`
}

func (c *DeleteProfileInviteCommand) Execute(ctx context.Context, req *DeleteProfileInviteRequest) (*DeleteProfileInviteResponse, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("DeleteProfileInvite", c.logger,
		authz.OwnerOnly{Store: c.datastore, ProfileID: req.ProfileID, Action: "delete invites"},
		pipeline.StepFunc{StepName: "FetchInvite", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			invite, err := c.datastore.GetInvite(ctx, req.InviteCode, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, serverErrors.ErrInviteNotFound
				}
				return nil, serverErrors.HandleError("", err)
			}
			// An invite for some other profile is indistinguishable from a
			// missing one.
			if invite.ProfileID != profile.ProfileID {
				return nil, serverErrors.ErrInviteNotFound
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "DeleteInvite", Fn: func(ctx context.Context, _ *pipeline.Exec) (any, error) {
			if err := c.datastore.DeleteInvite(ctx, req.InviteCode); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return &DeleteProfileInviteResponse{InviteCode: req.InviteCode, Deleted: true}, nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*DeleteProfileInviteResponse), nil
}

// RedeemProfileInviteCommand converts an invite code into a share for the
// caller. Used and expired invites fail with one indistinguishable error;
// expiry is re-checked here even though the store sweeps expired rows.
type RedeemProfileInviteCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewRedeemProfileInviteCommand(datastore storage.Datastore, logger logger.Logger) *RedeemProfileInviteCommand {
	return &RedeemProfileInviteCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type RedeemProfileInviteRequest struct {
	InviteCode string
}

func (c *RedeemProfileInviteCommand) Execute(ctx context.Context, req *RedeemProfileInviteRequest) (*types.Share, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("RedeemProfileInvite", c.logger,
		pipeline.StepFunc{StepName: "FetchInvite", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			invite, err := c.datastore.GetInvite(ctx, req.InviteCode, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, serverErrors.ErrInviteNotFound
				}
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashInvite, invite)
			return invite, nil
		}},
		pipeline.StepFunc{StepName: "CheckRedeemable", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashInvite)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashInvite)
			}
			if !v.(*types.Invite).Redeemable(now()) {
				return nil, serverErrors.ErrInviteNotRedeemable
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "CheckExistingShare", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashInvite)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashInvite)
			}
			invite := v.(*types.Invite)
			callerID := key.WithPrefix(key.Account, exec.CallerAccountID)

			_, err := c.datastore.GetShare(ctx, invite.ProfileID, callerID, storage.ReadOptions{Consistency: storage.HigherConsistency})
			if err == nil {
				return nil, serverErrors.ErrShareExists
			}
			if !errors.Is(err, storage.ErrNotFound) {
				return nil, serverErrors.HandleError("", err)
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "PutShare", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			v, ok := exec.Get(stashInvite)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashInvite)
			}
			invite := v.(*types.Invite)

			ts := now()
			share := &types.Share{
				ProfileID:       invite.ProfileID,
				TargetAccountID: key.WithPrefix(key.Account, exec.CallerAccountID),
				Permissions:     types.NormalizePermissions(invite.Permissions),
				CreatedBy:       invite.CreatedBy,
				CreatedAt:       ts,
				UpdatedAt:       ts,
			}
			if err := c.datastore.PutShare(ctx, share); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashShare, share)
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "MarkInviteUsed", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			// The share is already committed; a failure here leaves a
			// redeemable invite rather than a grantee without access.
			if err := c.datastore.MarkInviteUsed(ctx, req.InviteCode); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			v, ok := exec.Get(stashShare)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashShare)
			}
			return transform.Share(v.(*types.Share)), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Share), nil
}

// ListInvitesByProfileQuery lists open invites for a profile. Owners and
// WRITE grantees only.
type ListInvitesByProfileQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewListInvitesByProfileQuery(datastore storage.Datastore, logger logger.Logger) *ListInvitesByProfileQuery {
	return &ListInvitesByProfileQuery{
		datastore: datastore,
		logger:    logger,
	}
}

type ListInvitesByProfileRequest struct {
	ProfileID string
}

func (q *ListInvitesByProfileQuery) Execute(ctx context.Context, req *ListInvitesByProfileRequest) ([]*types.Invite, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListInvitesByProfile", q.logger,
		authz.FetchProfile{Store: q.datastore, ProfileID: req.ProfileID},
		authz.ProfileAccess{Store: q.datastore, Level: authz.LevelWrite},
		pipeline.StepFunc{StepName: "ListInvites", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			invites, err := q.datastore.ListInvitesByProfile(ctx, profile.ProfileID, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Invites(invites), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.Invite), nil
}
