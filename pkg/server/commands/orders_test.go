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

var strongRead = storage.ReadOptions{Consistency: storage.HigherConsistency}

func orderFixtures() (*types.Campaign, *types.SellerProfile, *types.Catalog) {
	campaign := &types.Campaign{
		ProfileID:  "PROFILE#p1",
		CampaignID: "CAMPAIGN#c1",
		CatalogID:  "CATALOG#cat1",
	}
	profile := &types.SellerProfile{
		OwnerAccountID: "ACCOUNT#owner",
		ProfileID:      "PROFILE#p1",
	}
	catalog := &types.Catalog{
		CatalogID: "CATALOG#cat1",
		Products: []types.Product{
			{ProductID: "prod-1", ProductName: "Kettle Corn", Price: 4.75},
			{ProductID: "prod-2", ProductName: "Caramel Corn", Price: 6.00},
		},
	}
	return campaign, profile, catalog
}

func TestCreateOrder(t *testing.T) {
	t.Run("computes_total_and_snapshots_products", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, catalog := orderFixtures()

		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat1", strongRead).Return(catalog, nil)

		var stored *types.Order
		ds.EXPECT().PutOrder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, order *types.Order) error {
				stored = order
				return nil
			})
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, c *types.Campaign) error {
				require.Equal(t, 1, c.TotalOrders)
				require.InDelta(t, 9.50, c.TotalRevenue, 1e-9)
				return nil
			})

		cmd := NewCreateOrderCommand(ds, logger.NewNoopLogger())
		order, err := cmd.Execute(authedContext("owner"), &CreateOrderRequest{
			CampaignID:    "c1",
			CustomerName:  "Pat",
			PaymentMethod: "Cash",
			LineItems:     []types.LineItem{{ProductID: "prod-1", Quantity: 2}},
		})
		require.NoError(t, err)

		require.InDelta(t, 9.50, order.TotalAmount, 1e-9)
		require.Len(t, stored.LineItems, 1)
		require.Equal(t, "Kettle Corn", stored.LineItems[0].ProductName)
		require.InDelta(t, 4.75, stored.LineItems[0].PricePerUnit, 1e-9)
		require.InDelta(t, 9.50, stored.LineItems[0].Subtotal, 1e-9)
		require.Equal(t, "PROFILE#p1", stored.ProfileID)
	})

	t.Run("zero_quantity_rejected_before_any_write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, catalog := orderFixtures()

		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat1", strongRead).Return(catalog, nil)
		// No PutOrder or PutCampaign expectation. The validation failure must
		// stop the pipeline before the write steps.

		cmd := NewCreateOrderCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateOrderRequest{
			CampaignID:    "c1",
			CustomerName:  "Pat",
			PaymentMethod: "Cash",
			LineItems:     []types.LineItem{{ProductID: "prod-1", Quantity: 0}},
		})
		require.Error(t, err)
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("unknown_product_rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, catalog := orderFixtures()

		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat1", strongRead).Return(catalog, nil)

		cmd := NewCreateOrderCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateOrderRequest{
			CampaignID:    "c1",
			CustomerName:  "Pat",
			PaymentMethod: "Cash",
			LineItems:     []types.LineItem{{ProductID: "prod-404", Quantity: 1}},
		})
		require.Error(t, err)
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("unregistered_payment_method_rejected_before_any_write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, _ := orderFixtures()

		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetAccount(gomock.Any(), "ACCOUNT#owner", strongRead).Return(&types.Account{
			AccountID:   "ACCOUNT#owner",
			Preferences: `{"paymentMethods":[{"name":"Venmo","qrCodeUrl":"https://img/venmo"}]}`,
		}, nil)
		// No PutOrder or PutCampaign expectation. An unknown method must stop
		// the pipeline before anything is written.

		cmd := NewCreateOrderCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateOrderRequest{
			CampaignID:    "c1",
			CustomerName:  "Pat",
			PaymentMethod: "Zelle",
			LineItems:     []types.LineItem{{ProductID: "prod-1", Quantity: 1}},
		})
		require.Error(t, err)
		require.Equal(t, codes.InvalidArgument, status.Code(err))
		require.ErrorContains(t, err, "Zelle")
	})

	t.Run("method_registered_on_owner_account_accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, catalog := orderFixtures()

		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetAccount(gomock.Any(), "ACCOUNT#owner", strongRead).Return(&types.Account{
			AccountID:   "ACCOUNT#owner",
			Preferences: `{"paymentMethods":[{"name":"Venmo","qrCodeUrl":"https://img/venmo"}]}`,
		}, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat1", strongRead).Return(catalog, nil)
		ds.EXPECT().PutOrder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, order *types.Order) error {
				require.Equal(t, "Venmo", order.PaymentMethod)
				return nil
			})
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).Return(nil)

		cmd := NewCreateOrderCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateOrderRequest{
			CampaignID:    "c1",
			CustomerName:  "Pat",
			PaymentMethod: "Venmo",
			LineItems:     []types.LineItem{{ProductID: "prod-1", Quantity: 1}},
		})
		require.NoError(t, err)
	})

	t.Run("builtin_method_matched_case_insensitively", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, catalog := orderFixtures()

		// Built-in methods never hit the account row, so no GetAccount
		// expectation.
		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat1", strongRead).Return(catalog, nil)
		ds.EXPECT().PutOrder(gomock.Any(), gomock.Any()).Return(nil)
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).Return(nil)

		cmd := NewCreateOrderCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateOrderRequest{
			CampaignID:    "c1",
			CustomerName:  "Pat",
			PaymentMethod: "CHECK",
			LineItems:     []types.LineItem{{ProductID: "prod-1", Quantity: 1}},
		})
		require.NoError(t, err)
	})

	t.Run("missing_payment_method_rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, _ := orderFixtures()

		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)

		cmd := NewCreateOrderCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &CreateOrderRequest{
			CampaignID:   "c1",
			CustomerName: "Pat",
			LineItems:    []types.LineItem{{ProductID: "prod-1", Quantity: 1}},
		})
		require.Error(t, err)
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("non_owner_without_write_share_denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, _ := orderFixtures()

		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#stranger", strongRead).
			Return(nil, storage.ErrNotFound)

		cmd := NewCreateOrderCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("stranger"), &CreateOrderRequest{
			CampaignID:    "c1",
			CustomerName:  "Pat",
			PaymentMethod: "Cash",
			LineItems:     []types.LineItem{{ProductID: "prod-1", Quantity: 1}},
		})
		require.Error(t, err)
		require.Equal(t, codes.PermissionDenied, status.Code(err))
	})
}

func TestUpdateOrder(t *testing.T) {
	t.Run("replacing_line_items_adjusts_campaign_revenue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, catalog := orderFixtures()
		campaign.TotalOrders = 1
		campaign.TotalRevenue = 9.50
		order := &types.Order{
			CampaignID:  "CAMPAIGN#c1",
			OrderID:     "ORDER#o1",
			ProfileID:   "PROFILE#p1",
			TotalAmount: 9.50,
		}

		ds.EXPECT().GetOrderByID(gomock.Any(), "ORDER#o1", strongRead).Return(order, nil)
		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat1", strongRead).Return(catalog, nil)
		ds.EXPECT().PutOrder(gomock.Any(), gomock.Any()).Return(nil)
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, c *types.Campaign) error {
				require.Equal(t, 1, c.TotalOrders)
				require.InDelta(t, 4.75, c.TotalRevenue, 1e-9)
				return nil
			})

		cmd := NewUpdateOrderCommand(ds, logger.NewNoopLogger())
		updated, err := cmd.Execute(authedContext("owner"), &UpdateOrderRequest{
			OrderID:   "o1",
			LineItems: []types.LineItem{{ProductID: "prod-1", Quantity: 1}},
		})
		require.NoError(t, err)
		require.InDelta(t, 4.75, updated.TotalAmount, 1e-9)
	})

	t.Run("field_only_update_leaves_campaign_untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, catalog := orderFixtures()
		order := &types.Order{
			CampaignID:   "CAMPAIGN#c1",
			OrderID:      "ORDER#o1",
			ProfileID:    "PROFILE#p1",
			CustomerName: "Pat",
			TotalAmount:  9.50,
		}

		ds.EXPECT().GetOrderByID(gomock.Any(), "ORDER#o1", strongRead).Return(order, nil)
		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat1", strongRead).Return(catalog, nil)
		ds.EXPECT().PutOrder(gomock.Any(), gomock.Any()).Return(nil)
		// Total unchanged, so no PutCampaign.

		cmd := NewUpdateOrderCommand(ds, logger.NewNoopLogger())
		updated, err := cmd.Execute(authedContext("owner"), &UpdateOrderRequest{
			OrderID: "o1",
			Notes:   strptr("leave at the door"),
		})
		require.NoError(t, err)
		require.Equal(t, "leave at the door", updated.Notes)
		require.Equal(t, "Pat", updated.CustomerName)
	})

	t.Run("blank_customer_name_rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, catalog := orderFixtures()
		order := &types.Order{
			CampaignID: "CAMPAIGN#c1",
			OrderID:    "ORDER#o1",
			ProfileID:  "PROFILE#p1",
		}

		ds.EXPECT().GetOrderByID(gomock.Any(), "ORDER#o1", strongRead).Return(order, nil)
		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetCatalog(gomock.Any(), "CATALOG#cat1", strongRead).Return(catalog, nil)

		cmd := NewUpdateOrderCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &UpdateOrderRequest{
			OrderID:      "o1",
			CustomerName: strptr(""),
		})
		require.Error(t, err)
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("switching_to_unregistered_payment_method_rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, _ := orderFixtures()
		order := &types.Order{
			CampaignID:    "CAMPAIGN#c1",
			OrderID:       "ORDER#o1",
			ProfileID:     "PROFILE#p1",
			PaymentMethod: "Cash",
		}

		ds.EXPECT().GetOrderByID(gomock.Any(), "ORDER#o1", strongRead).Return(order, nil)
		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetAccount(gomock.Any(), "ACCOUNT#owner", strongRead).Return(&types.Account{
			AccountID:   "ACCOUNT#owner",
			Preferences: `{"paymentMethods":[{"name":"Venmo"}]}`,
		}, nil)
		// No PutOrder. The order keeps its current method.

		cmd := NewUpdateOrderCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &UpdateOrderRequest{
			OrderID:       "o1",
			PaymentMethod: strptr("Zelle"),
		})
		require.Error(t, err)
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestDeleteOrder(t *testing.T) {
	t.Run("decrements_campaign_counters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, _ := orderFixtures()
		campaign.TotalOrders = 3
		campaign.TotalRevenue = 20.00
		order := &types.Order{
			CampaignID:  "CAMPAIGN#c1",
			OrderID:     "ORDER#o1",
			ProfileID:   "PROFILE#p1",
			TotalAmount: 9.50,
		}

		ds.EXPECT().GetOrderByID(gomock.Any(), "ORDER#o1", strongRead).Return(order, nil)
		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		gomock.InOrder(
			ds.EXPECT().DeleteOrder(gomock.Any(), "CAMPAIGN#c1", "ORDER#o1").Return(nil),
			ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ any, c *types.Campaign) error {
					require.Equal(t, 2, c.TotalOrders)
					require.InDelta(t, 10.50, c.TotalRevenue, 1e-9)
					return nil
				}),
		)

		cmd := NewDeleteOrderCommand(ds, logger.NewNoopLogger())
		resp, err := cmd.Execute(authedContext("owner"), &DeleteOrderRequest{OrderID: "o1"})
		require.NoError(t, err)
		require.True(t, resp.Deleted)
		require.Equal(t, "o1", resp.OrderID)
	})

	t.Run("counters_never_go_negative", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		campaign, profile, _ := orderFixtures()
		campaign.TotalOrders = 0
		campaign.TotalRevenue = 5.00
		order := &types.Order{
			CampaignID:  "CAMPAIGN#c1",
			OrderID:     "ORDER#o1",
			ProfileID:   "PROFILE#p1",
			TotalAmount: 9.50,
		}

		ds.EXPECT().GetOrderByID(gomock.Any(), "ORDER#o1", strongRead).Return(order, nil)
		ds.EXPECT().GetCampaignByID(gomock.Any(), "CAMPAIGN#c1", strongRead).Return(campaign, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().DeleteOrder(gomock.Any(), "CAMPAIGN#c1", "ORDER#o1").Return(nil)
		ds.EXPECT().PutCampaign(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, c *types.Campaign) error {
				require.Equal(t, 0, c.TotalOrders)
				require.Zero(t, c.TotalRevenue)
				return nil
			})

		cmd := NewDeleteOrderCommand(ds, logger.NewNoopLogger())
		_, err := cmd.Execute(authedContext("owner"), &DeleteOrderRequest{OrderID: "o1"})
		require.NoError(t, err)
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("read_share_is_enough", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)
		_, profile, _ := orderFixtures()
		order := &types.Order{
			CampaignID:   "CAMPAIGN#c1",
			OrderID:      "ORDER#o1",
			ProfileID:    "PROFILE#p1",
			CustomerName: "Pat",
		}

		ds.EXPECT().GetOrderByID(gomock.Any(), "ORDER#o1", strongRead).Return(order, nil)
		ds.EXPECT().GetProfileByID(gomock.Any(), "PROFILE#p1", strongRead).Return(profile, nil)
		ds.EXPECT().GetShare(gomock.Any(), "PROFILE#p1", "ACCOUNT#grantee", strongRead).
			Return(&types.Share{
				ProfileID:       "PROFILE#p1",
				TargetAccountID: "ACCOUNT#grantee",
				Permissions:     []types.Permission{types.PermissionRead},
			}, nil)

		q := NewGetOrderQuery(ds, logger.NewNoopLogger())
		got, err := q.Execute(authedContext("grantee"), &GetOrderRequest{OrderID: "o1"})
		require.NoError(t, err)
		require.Equal(t, "Pat", got.CustomerName)
	})

	t.Run("missing_order_maps_to_not_found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ds := mocks.NewMockDatastore(ctrl)

		ds.EXPECT().GetOrderByID(gomock.Any(), "ORDER#o404", strongRead).Return(nil, storage.ErrNotFound)

		q := NewGetOrderQuery(ds, logger.NewNoopLogger())
		_, err := q.Execute(authedContext("owner"), &GetOrderRequest{OrderID: "o404"})
		require.Error(t, err)
		require.Equal(t, codes.NotFound, status.Code(err))
	})
}
