package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kernelworx/psm/internal/mocks"
	"github.com/kernelworx/psm/pkg/logger"
	serverErrors "github.com/kernelworx/psm/pkg/server/errors"
	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

func TestCreateProfileInvite(t *testing.T) {
	profile := &types.SellerProfile{
		OwnerAccountID: "ACCOUNT#owner",
		ProfileID:      "PROFILE#p1",
	}

	t.Run("owner_mints_invite_with_default_ttl", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		var stored *types.Invite
		ds.EXPECT().PutInvite(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, invite *types.Invite) error {
				stored = invite
				return nil
			})

		cmd := NewCreateProfileInviteCommand(ds, logger.NewNoopLogger())
		invite, err := cmd.Execute(authedContext("owner"), &CreateProfileInviteRequest{
			ProfileID:   "p1",
			Permissions: []types.Permission{"read"},
		})
		require.NoError(t, err)

		require.NotEmpty(t, invite.InviteCode)
		require.Equal(t, []types.Permission{types.PermissionRead}, stored.Permissions)
		require.Equal(t, "ACCOUNT#owner", stored.CreatedBy)

		wantExpiry := time.Now().Add(DefaultInviteTTL).Unix()
		require.InDelta(t, wantExpiry, stored.ExpiresAt, 5)
	})

	t.Run("share_grantee_cannot_mint", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)

		cmd := NewCreateProfileInviteCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("grantee"), &CreateProfileInviteRequest{
			ProfileID:   "p1",
			Permissions: []types.Permission{"READ"},
		})
		require.ErrorContains(t, err, "Only profile owner can create invites")
	})

	t.Run("empty_permissions_rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)

		cmd := NewCreateProfileInviteCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateProfileInviteRequest{
			ProfileID:   "p1",
			Permissions: []types.Permission{"BOGUS"},
		})
		require.Error(t, err)
	})
}

func TestRedeemProfileInvite(t *testing.T) {
	freshInvite := func() *types.Invite {
		return &types.Invite{
			InviteCode:  "01J0000000000000000000TEST",
			ProfileID:   "PROFILE#p1",
			Permissions: []types.Permission{types.PermissionWrite},
			CreatedBy:   "ACCOUNT#owner",
			ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		}
	}

	t.Run("creates_share_then_marks_invite_used", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		invite := freshInvite()

		ds.EXPECT().GetInvite(gomock.Any(), invite.InviteCode, strongRead).Return(invite, nil)
		ds.EXPECT().GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#grantee", strongRead).
			Return(nil, storage.ErrNotFound)
		gomock.InOrder(
			ds.EXPECT().PutShare(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ any, share *types.Share) error {
					require.Equal(t, "ACCOUNT#grantee", share.TargetAccountID)
					require.Equal(t, []types.Permission{types.PermissionWrite}, share.Permissions)
					return nil
				}),
			ds.EXPECT().MarkInviteUsed(gomock.Any(), invite.InviteCode).Return(nil),
		)

		cmd := NewRedeemProfileInviteCommand(ds, logger.NewNoopLogger())
		share, err := cmd.Execute(authedContext("grantee"), &RedeemProfileInviteRequest{InviteCode: invite.InviteCode})
		require.NoError(t, err)
		require.Equal(t, "p1", share.ProfileID)
	})

	t.Run("expired_invite_not_redeemable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		invite := freshInvite()
		invite.ExpiresAt = time.Now().Add(-time.Minute).Unix()

		ds.EXPECT().GetInvite(gomock.Any(), invite.InviteCode, strongRead).Return(invite, nil)

		cmd := NewRedeemProfileInviteCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("grantee"), &RedeemProfileInviteRequest{InviteCode: invite.InviteCode})
		require.ErrorIs(t, err, serverErrors.ErrInviteNotRedeemable)
	})

	t.Run("used_invite_fails_with_the_same_error_as_expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		invite := freshInvite()
		invite.Used = true

		ds.EXPECT().GetInvite(gomock.Any(), invite.InviteCode, strongRead).Return(invite, nil)

		cmd := NewRedeemProfileInviteCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("grantee"), &RedeemProfileInviteRequest{InviteCode: invite.InviteCode})
		require.ErrorIs(t, err, serverErrors.ErrInviteNotRedeemable)
	})

	t.Run("existing_share_blocks_redemption", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		invite := freshInvite()

		ds.EXPECT().GetInvite(gomock.Any(), invite.InviteCode, strongRead).Return(invite, nil)
		ds.EXPECT().GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#grantee", strongRead).
			Return(&types.Share{ProfileID: "PROFILE#p1", TargetAccountID: "ACCOUNT#grantee"}, nil)

		cmd := NewRedeemProfileInviteCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("grantee"), &RedeemProfileInviteRequest{InviteCode: invite.InviteCode})
		require.ErrorIs(t, err, serverErrors.ErrShareExists)
	})
}

func TestDeleteProfileInvite(t *testing.T) {
	profile := &types.SellerProfile{
		OwnerAccountID: "ACCOUNT#owner",
		ProfileID:      "PROFILE#p1",
	}

	t.Run("invite_for_another_profile_reads_as_missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetInvite(gomock.Any(), "code-1", strongRead).Return(&types.Invite{
			InviteCode: "code-1",
			ProfileID:  "PROFILE#other",
		}, nil)

		cmd := NewDeleteProfileInviteCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &DeleteProfileInviteRequest{
			ProfileID:  "p1",
			InviteCode: "code-1",
		})
		require.ErrorIs(t, err, serverErrors.ErrInviteNotFound)
	})

	t.Run("owner_deletes_own_invite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetInvite(gomock.Any(), "code-1", strongRead).Return(&types.Invite{
			InviteCode: "code-1",
			ProfileID:  "PROFILE#p1",
		}, nil)
		ds.EXPECT().DeleteInvite(gomock.Any(), "code-1").Return(nil)

		cmd := NewDeleteProfileInviteCommand(ds, logger.NewNoopLogger())
		resp, err := cmd.Execute(authedContext("owner"), &DeleteProfileInviteRequest{
			ProfileID:  "p1",
			InviteCode: "code-1",
		})
		require.NoError(t, err)
		require.True(t, resp.Deleted)
	})
}
