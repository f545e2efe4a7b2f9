package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kernelworx/psm/internal/mocks"
	"github.com/kernelworx/psm/pkg/logger"
	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

func TestCreateCampaign(t *testing.T) {
	profile := &types.SellerProfile{
		OwnerAccountID: "ACCOUNT#owner",
		ProfileID:      "PROFILE#p1",
		UnitType:       "Troop",
		UnitNumber:     "101",
		City:           "Springfield",
		State:          "IL",
	}
	catalog := &types.Catalog{CatalogID: "CATALOG#cat1"}

	t.Run("derives_unit_key_from_profile_and_year", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat1", strongRead).Return(catalog, nil)
		var stored *types.Campaign
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, campaign *types.Campaign) error {
				stored = campaign
				return nil
			})

		cmd := NewCreateCampaignCommand(ds, logger.NewNoopLogger())
		campaign, err := cmd.Execute(authedContext("owner"), &CreateCampaignRequest{
			ProfileID:    "p1",
			CampaignName: "Fall 2025",
			CatalogID:    "CATALOG#cat1",
			Year:         2025,
		})
		require.NoError(t, err)

		require.Equal(t, "TROOP#101#SPRINGFIELD#IL#2025", stored.UnitCampaignKey)
		require.Zero(t, stored.TotalOrders)
		require.Zero(t, stored.TotalRevenue)
		require.Equal(t, "Fall 2025", campaign.CampaignName)
	})

	t.Run("no_unit_key_without_a_year", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat1", strongRead).Return(catalog, nil)
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, campaign *types.Campaign) error {
				require.Empty(t, campaign.UnitCampaignKey)
				return nil
			})

		cmd := NewCreateCampaignCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateCampaignRequest{
			ProfileID:    "p1",
			CampaignName: "Open Ended",
			CatalogID:    "CATALOG#cat1",
		})
		require.NoError(t, err)
	})

	t.Run("write_share_may_create_campaigns", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#helper", strongRead).
			Return(&types.Share{Permissions: []types.Permission{types.PermissionWrite}}, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat1", strongRead).Return(catalog, nil)
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).Return(nil)

		cmd := NewCreateCampaignCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("helper"), &CreateCampaignRequest{
			ProfileID:    "p1",
			CampaignName: "Helper Run",
			CatalogID:    "CATALOG#cat1",
			Year:         2025,
		})
		require.NoError(t, err)
	})

	t.Run("template_code_prefills_name_and_catalog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		tpl := &types.SharedCampaignTemplate{
			SharedCampaignCode: "01J0000000000000000000CODE",
			CampaignName:       "Fall Classic",
			CatalogID:          "CATALOG#tpl-cat",
			CreatedBy:          "ACCOUNT#creator",
		}

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetSharedCampaign(gomock.Any(), tpl.SharedCampaignCode, strongRead).Return(tpl, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#tpl-cat", strongRead).
			Return(&types.Catalog{CatalogID: "CATALOG#tpl-cat"}, nil)
		var stored *types.Campaign
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, campaign *types.Campaign) error {
				stored = campaign
				return nil
			})

		cmd := NewCreateCampaignCommand(ds, logger.NewNoopLogger())
		campaign, err := cmd.Execute(authedContext("owner"), &CreateCampaignRequest{
			ProfileID:          "p1",
			CampaignName:       "Overridden Anyway",
			CatalogID:          "CATALOG#cat1",
			Year:               2025,
			StartDate:          "2025-09-01",
			SharedCampaignCode: tpl.SharedCampaignCode,
		})
		require.NoError(t, err)

		// Template fields win over the request; dates stay caller-supplied.
		require.Equal(t, "Fall Classic", stored.CampaignName)
		require.Equal(t, "CATALOG#tpl-cat", stored.CatalogID)
		require.Equal(t, "2025-09-01", stored.StartDate)
		require.Equal(t, "Fall Classic", campaign.CampaignName)
	})

	t.Run("template_supplies_the_required_name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		tpl := &types.SharedCampaignTemplate{
			SharedCampaignCode: "01J0000000000000000000CODE",
			CampaignName:       "Fall Classic",
			CatalogID:          "CATALOG#tpl-cat",
			CreatedBy:          "ACCOUNT#creator",
		}

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetSharedCampaign(gomock.Any(), tpl.SharedCampaignCode, strongRead).Return(tpl, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#tpl-cat", strongRead).
			Return(&types.Catalog{CatalogID: "CATALOG#tpl-cat"}, nil)
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).Return(nil)

		cmd := NewCreateCampaignCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateCampaignRequest{
			ProfileID:          "p1",
			Year:               2025,
			SharedCampaignCode: tpl.SharedCampaignCode,
		})
		require.NoError(t, err)
	})

	t.Run("share_with_creator_grants_read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		tpl := &types.SharedCampaignTemplate{
			SharedCampaignCode: "01J0000000000000000000CODE",
			CampaignName:       "Fall Classic",
			CatalogID:          "CATALOG#tpl-cat",
			CreatedBy:          "ACCOUNT#creator",
		}

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetSharedCampaign(gomock.Any(), tpl.SharedCampaignCode, strongRead).Return(tpl, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#tpl-cat", strongRead).
			Return(&types.Catalog{CatalogID: "CATALOG#tpl-cat"}, nil)
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).Return(nil)
		ds.EXPECT().GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#creator", strongRead).
			Return(nil, storage.ErrNotFound)
		ds.EXPECT().PutShare(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, share *types.Share) error {
				require.Equal(t, "PROFILE#p1", share.ProfileID)
				require.Equal(t, "ACCOUNT#creator", share.TargetAccountID)
				require.Equal(t, []types.Permission{types.PermissionRead}, share.Permissions)
				require.Equal(t, "ACCOUNT#owner", share.CreatedBy)
				return nil
			})

		cmd := NewCreateCampaignCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateCampaignRequest{
			ProfileID:          "p1",
			Year:               2025,
			SharedCampaignCode: tpl.SharedCampaignCode,
			ShareWithCreator:   true,
		})
		require.NoError(t, err)
	})

	t.Run("existing_creator_share_left_untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		tpl := &types.SharedCampaignTemplate{
			SharedCampaignCode: "01J0000000000000000000CODE",
			CampaignName:       "Fall Classic",
			CatalogID:          "CATALOG#tpl-cat",
			CreatedBy:          "ACCOUNT#creator",
		}

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetSharedCampaign(gomock.Any(), tpl.SharedCampaignCode, strongRead).Return(tpl, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#tpl-cat", strongRead).
			Return(&types.Catalog{CatalogID: "CATALOG#tpl-cat"}, nil)
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).Return(nil)
		ds.EXPECT().GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#creator", strongRead).
			Return(&types.Share{
				ProfileID:       "PROFILE#p1",
				TargetAccountID: "ACCOUNT#creator",
				Permissions:     []types.Permission{types.PermissionWrite},
			}, nil)
		// No PutShare. A creator who already holds a grant keeps it as is.

		cmd := NewCreateCampaignCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateCampaignRequest{
			ProfileID:          "p1",
			Year:               2025,
			SharedCampaignCode: tpl.SharedCampaignCode,
			ShareWithCreator:   true,
		})
		require.NoError(t, err)
	})

	t.Run("creator_owning_the_profile_gets_no_share", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		tpl := &types.SharedCampaignTemplate{
			SharedCampaignCode: "01J0000000000000000000CODE",
			CampaignName:       "Fall Classic",
			CatalogID:          "CATALOG#tpl-cat",
			CreatedBy:          "ACCOUNT#owner",
		}

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetSharedCampaign(gomock.Any(), tpl.SharedCampaignCode, strongRead).Return(tpl, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#tpl-cat", strongRead).
			Return(&types.Catalog{CatalogID: "CATALOG#tpl-cat"}, nil)
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).Return(nil)
		// No GetShare or PutShare.

		cmd := NewCreateCampaignCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateCampaignRequest{
			ProfileID:          "p1",
			Year:               2025,
			SharedCampaignCode: tpl.SharedCampaignCode,
			ShareWithCreator:   true,
		})
		require.NoError(t, err)
	})

	t.Run("unknown_template_code_rejected_before_write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetSharedCampaign(gomock.Any(), "no-such-code", strongRead).
			Return(nil, storage.ErrNotFound)

		cmd := NewCreateCampaignCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateCampaignRequest{
			ProfileID:          "p1",
			Year:               2025,
			SharedCampaignCode: "no-such-code",
		})
		require.Error(t, err)
		require.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("missing_catalog_rejected_before_write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "cat-404", strongRead).Return(nil, storage.ErrNotFound)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat-404", strongRead).Return(nil, storage.ErrNotFound)

		cmd := NewCreateCampaignCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateCampaignRequest{
			ProfileID:    "p1",
			CampaignName: "No Catalog",
			CatalogID:    "cat-404",
		})
		require.Error(t, err)
		require.Equal(t, codes.NotFound, status.Code(err))
	})
}

func TestGetCampaign(t *testing.T) {
	t.Run("read_access_required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign := &types.Campaign{ProfileID: "PROFILE#p1", CampaignID: "CAMPAIGN#c1", CampaignName: "Fall"}
		profile := &types.SellerProfile{OwnerAccountID: "ACCOUNT#owner", ProfileID: "PROFILE#p1"}

		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#stranger", strongRead).
			Return(nil, storage.ErrNotFound)

		q := NewGetCampaignQuery(ds, logger.NewNoopLogger())
		_, err := q.Execute(authedContext("stranger"), &GetCampaignRequest{CampaignID: "c1"})
		require.Error(t, err)
		require.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("missing_campaign_maps_to_not_found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c404", strongRead).Return(nil, storage.ErrNotFound)

		q := NewGetCampaignQuery(ds, logger.NewNoopLogger())
		_, err := q.Execute(authedContext("owner"), &GetCampaignRequest{CampaignID: "c404"})
		require.Error(t, err)
		require.Equal(t, codes.NotFound, status.Code(err))
	})
}
