package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/status"

	"github.com/kernelworx/psm/internal/mocks"
	"github.com/kernelworx/psm/pkg/pipeline"
	serverErrors "github.com/kernelworx/psm/pkg/server/errors"
	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

func TestFetchProfile(t *testing.T) {
	t.Run("stashes_profile_on_hit", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		profile := &types.SellerProfile{
			OwnerAccountID: "ACCOUNT#owner",
			ProfileID:      "PROFILE#p1",
		}
		mockDatastore.EXPECT().
			GetProfileByID(gomock.Any(), "PROFILE#p1", storage.ReadOptions{Consistency: storage.HigherConsistency}).
			Return(profile, nil)

		exec := pipeline.NewExec("caller")
		got, err := FetchProfile{Store: mockDatastore, ProfileID: "p1"}.Run(context.Background(), exec)
		require.NoError(t, err)
		require.Equal(t, profile, got)

		stashed, ok := exec.Get(StashProfile)
		require.True(t, ok)
		require.Equal(t, profile, stashed)
	})

	t.Run("missing_profile_denies_without_revealing_existence", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		mockDatastore.EXPECT().
			GetProfileByID(gomock.Any(), "PROFILE#ghost", gomock.Any()).
			Return(nil, storage.ErrNotFound)

		_, err := FetchProfile{Store: mockDatastore, ProfileID: "ghost"}.Run(context.Background(), pipeline.NewExec("caller"))
		require.ErrorIs(t, err, serverErrors.ErrProfileAccessDenied)
	})

	t.Run("prefix_applied_once_to_already_prefixed_id", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		mockDatastore.EXPECT().
			GetProfileByID(gomock.Any(), "PROFILE#p1", gomock.Any()).
			Return(&types.SellerProfile{ProfileID: "PROFILE#p1"}, nil)

		_, err := FetchProfile{Store: mockDatastore, ProfileID: "PROFILE#p1"}.Run(context.Background(), pipeline.NewExec("caller"))
		require.NoError(t, err)
	})
}

func TestProfileAccess(t *testing.T) {
	newExecWithProfile := func(callerAccountID string, profile *types.SellerProfile) *pipeline.Exec {
		exec := pipeline.NewExec(callerAccountID)
		exec.Set(StashProfile, profile)
		return exec
	}

	t.Run("owner_short_circuits_without_share_read", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		// No GetShare expectation: any share read fails the test.
		profile := &types.SellerProfile{
			OwnerAccountID: "ACCOUNT#owner",
			ProfileID:      "PROFILE#p1",
		}
		exec := newExecWithProfile("owner", profile)

		_, err := ProfileAccess{Store: mockDatastore, Level: LevelWrite}.Run(context.Background(), exec)
		require.NoError(t, err)

		isOwner, ok := exec.Get(StashIsOwner)
		require.True(t, ok)
		require.Equal(t, true, isOwner)

		perms, ok := exec.Get(StashPermissions)
		require.True(t, ok)
		require.Equal(t, []types.Permission{types.PermissionRead, types.PermissionWrite}, perms)
	})

	t.Run("legacy_unprefixed_owner_id_still_matches", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		profile := &types.SellerProfile{
			OwnerAccountID: "owner",
			ProfileID:      "PROFILE#p1",
		}
		exec := newExecWithProfile("owner", profile)

		_, err := ProfileAccess{Store: mockDatastore, Level: LevelWrite}.Run(context.Background(), exec)
		require.NoError(t, err)
	})

	t.Run("read_share_grants_read_level", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		profile := &types.SellerProfile{
			OwnerAccountID: "ACCOUNT#owner",
			ProfileID:      "PROFILE#p1",
		}
		mockDatastore.EXPECT().
			GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#friend", storage.ReadOptions{Consistency: storage.HigherConsistency}).
			Return(&types.Share{Permissions: []types.Permission{types.PermissionRead}}, nil)

		exec := newExecWithProfile("friend", profile)
		_, err := ProfileAccess{Store: mockDatastore, Level: LevelRead}.Run(context.Background(), exec)
		require.NoError(t, err)

		isOwner, ok := exec.Get(StashIsOwner)
		require.True(t, ok)
		require.Equal(t, false, isOwner)
	})

	t.Run("read_share_denied_write_level", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		profile := &types.SellerProfile{
			OwnerAccountID: "ACCOUNT#owner",
			ProfileID:      "PROFILE#p1",
		}
		mockDatastore.EXPECT().
			GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#friend", gomock.Any()).
			Return(&types.Share{Permissions: []types.Permission{types.PermissionRead}}, nil)

		exec := newExecWithProfile("friend", profile)
		_, err := ProfileAccess{Store: mockDatastore, Level: LevelWrite}.Run(context.Background(), exec)
		require.ErrorIs(t, err, serverErrors.ErrProfileAccessDenied)
	})

	t.Run("write_share_implies_read", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		profile := &types.SellerProfile{
			OwnerAccountID: "ACCOUNT#owner",
			ProfileID:      "PROFILE#p1",
		}
		mockDatastore.EXPECT().
			GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#friend", gomock.Any()).
			Return(&types.Share{Permissions: []types.Permission{types.PermissionWrite}}, nil)

		exec := newExecWithProfile("friend", profile)
		_, err := ProfileAccess{Store: mockDatastore, Level: LevelRead}.Run(context.Background(), exec)
		require.NoError(t, err)
	})

	t.Run("lowercase_stored_permissions_honored", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		profile := &types.SellerProfile{
			OwnerAccountID: "ACCOUNT#owner",
			ProfileID:      "PROFILE#p1",
		}
		mockDatastore.EXPECT().
			GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#friend", gomock.Any()).
			Return(&types.Share{Permissions: []types.Permission{"write"}}, nil)

		exec := newExecWithProfile("friend", profile)
		_, err := ProfileAccess{Store: mockDatastore, Level: LevelWrite}.Run(context.Background(), exec)
		require.NoError(t, err)
	})

	t.Run("no_share_denied_with_same_error_as_missing_profile", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		profile := &types.SellerProfile{
			OwnerAccountID: "ACCOUNT#owner",
			ProfileID:      "PROFILE#p1",
		}
		mockDatastore.EXPECT().
			GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#stranger", gomock.Any()).
			Return(nil, storage.ErrNotFound)

		exec := newExecWithProfile("stranger", profile)
		_, unsharedErr := ProfileAccess{Store: mockDatastore, Level: LevelRead}.Run(context.Background(), exec)
		require.Error(t, unsharedErr)

		mockDatastore.EXPECT().
			GetProfileByID(gomock.Any(), "PROFILE#ghost", gomock.Any()).
			Return(nil, storage.ErrNotFound)
		_, missingErr := FetchProfile{Store: mockDatastore, ProfileID: "ghost"}.Run(context.Background(), pipeline.NewExec("stranger"))
		require.Error(t, missingErr)

		// Identical status code and message in both denial paths.
		unsharedStatus := status.Convert(unsharedErr)
		missingStatus := status.Convert(missingErr)
		require.Equal(t, missingStatus.Code(), unsharedStatus.Code())
		require.Equal(t, missingStatus.Message(), unsharedStatus.Message())
	})

	t.Run("empty_permissions_share_denied", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		profile := &types.SellerProfile{
			OwnerAccountID: "ACCOUNT#owner",
			ProfileID:      "PROFILE#p1",
		}
		mockDatastore.EXPECT().
			GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#friend", gomock.Any()).
			Return(&types.Share{Permissions: nil}, nil)

		exec := newExecWithProfile("friend", profile)
		_, err := ProfileAccess{Store: mockDatastore, Level: LevelRead}.Run(context.Background(), exec)
		require.ErrorIs(t, err, serverErrors.ErrProfileAccessDenied)
	})

	t.Run("missing_stash_is_internal_error", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		_, err := ProfileAccess{Store: mockDatastore, Level: LevelRead}.Run(context.Background(), pipeline.NewExec("caller"))
		require.Error(t, err)
	})
}

func TestOwnerOnly(t *testing.T) {
	t.Run("owner_passes", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		profile := &types.SellerProfile{
			OwnerAccountID: "ACCOUNT#owner",
			ProfileID:      "PROFILE#p1",
		}
		mockDatastore.EXPECT().
			GetProfileByID(gomock.Any(), "PROFILE#p1", storage.ReadOptions{Consistency: storage.HigherConsistency}).
			Return(profile, nil)

		exec := pipeline.NewExec("owner")
		got, err := OwnerOnly{Store: mockDatastore, ProfileID: "p1", Action: "create invites"}.Run(context.Background(), exec)
		require.NoError(t, err)
		require.Equal(t, profile, got)
	})

	t.Run("write_share_holder_denied_with_owner_message", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		profile := &types.SellerProfile{
			OwnerAccountID: "ACCOUNT#owner",
			ProfileID:      "PROFILE#p1",
		}
		mockDatastore.EXPECT().
			GetProfileByID(gomock.Any(), "PROFILE#p1", gomock.Any()).
			Return(profile, nil)

		exec := pipeline.NewExec("friend")
		_, err := OwnerOnly{Store: mockDatastore, ProfileID: "p1", Action: "delete this profile"}.Run(context.Background(), exec)
		require.Error(t, err)
		require.Equal(t, "Only profile owner can delete this profile", status.Convert(err).Message())
	})

	t.Run("missing_profile_is_not_found", func(t *testing.T) {
		mockController := gomock.NewController(t)
		defer mockController.Finish()
		mockDatastore := mocks.NewMockDatastore(mockController)

		mockDatastore.EXPECT().
			GetProfileByID(gomock.Any(), "PROFILE#ghost", gomock.Any()).
			Return(nil, storage.ErrNotFound)

		exec := pipeline.NewExec("owner")
		_, err := OwnerOnly{Store: mockDatastore, ProfileID: "ghost", Action: "create invites"}.Run(context.Background(), exec)
		require.Error(t, err)
		require.NotErrorIs(t, err, serverErrors.ErrProfileAccessDenied)
	})
}

func TestAdminOnly(t *testing.T) {
	t.Run("admin_passes", func(t *testing.T) {
		exec := pipeline.NewExec("admin")
		exec.IsAdmin = true
		_, err := AdminOnly{}.Run(context.Background(), exec)
		require.NoError(t, err)
	})

	t.Run("non_admin_denied", func(t *testing.T) {
		_, err := AdminOnly{}.Run(context.Background(), pipeline.NewExec("user"))
		require.ErrorIs(t, err, serverErrors.ErrAdminRequired)
	})
}
