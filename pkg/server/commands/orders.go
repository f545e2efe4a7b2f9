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

const (
	stashLineItems  = "lineItems"
	stashOrderTotal = "orderTotal"
)

// fetchOrderByID loads an order via the orderId index and stashes it.
func fetchOrderByID(store storage.OrdersBackend, orderID string) pipeline.StepFunc {
	return pipeline.StepFunc{StepName: "FetchOrder", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
		prefixed := key.WithPrefix(key.Order, orderID)
		order, err := store.GetOrderByID(ctx, prefixed, storage.ReadOptions{Consistency: storage.HigherConsistency})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, serverErrors.OrderNotFound(key.StripPrefix(prefixed))
			}
			return nil, serverErrors.HandleError("", err)
		}
		exec.Set(stashOrder, order)
		return order, nil
	}}
}

// fetchOrderCampaign bridges a stashed order into the campaign fetch.
func fetchOrderCampaign(store storage.CampaignsBackend) pipeline.StepFunc {
	return pipeline.StepFunc{StepName: "FetchCampaign", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
		v, ok := exec.Get(stashOrder)
		if !ok {
			return nil, serverErrors.MissingStashValue(stashOrder)
		}
		order := v.(*types.Order)
		campaign, err := store.GetCampaignByID(ctx, order.CampaignID, storage.ReadOptions{Consistency: storage.HigherConsistency})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, serverErrors.CampaignNotFound(key.StripPrefix(order.CampaignID))
			}
			return nil, serverErrors.HandleError("", err)
		}
		exec.Set(stashCampaign, campaign)
		return campaign, nil
	}}
}

// resolveCampaignCatalog resolves the stashed campaign's catalog, raw id
// first.
func resolveCampaignCatalog(store storage.CatalogsBackend) pipeline.StepFunc {
	return pipeline.StepFunc{StepName: "ResolveCatalog", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
		campaign, err := stashedCampaign(exec)
		if err != nil {
			return nil, err
		}
		catalog, err := resolveCatalog(ctx, store, campaign.CatalogID, storage.ReadOptions{Consistency: storage.HigherConsistency})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, serverErrors.CatalogNotFound(key.StripPrefix(campaign.CatalogID))
			}
			return nil, serverErrors.HandleError("", err)
		}
		exec.Set(stashCatalog, catalog)
		return catalog, nil
	}}
}

func stashedOrder(exec *pipeline.Exec) (*types.Order, error) {
	v, ok := exec.Get(stashOrder)
	if !ok {
		return nil, serverErrors.MissingStashValue(stashOrder)
	}
	return v.(*types.Order), nil
}

// CreateOrderCommand records a customer purchase. Line items are validated
// against the campaign's catalog and enriched with snapshotted product name
// and price before any write; the campaign's denormalized counters are
// bumped after the order lands.
type CreateOrderCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewCreateOrderCommand(datastore storage.Datastore, logger logger.Logger) *CreateOrderCommand {
	return &CreateOrderCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type CreateOrderRequest struct {
	CampaignID      string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	OrderDate       string
	PaymentMethod   string
	Notes           string

	// LineItems carry only ProductID and Quantity; everything else is
	// computed server-side.
	LineItems []types.LineItem
}

func (c *CreateOrderCommand) Execute(ctx context.Context, req *CreateOrderRequest) (*types.Order, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("CreateOrder",
		c.logger,
		fetchCampaignByID(c.datastore, req.CampaignID),
		fetchCampaignProfile(c.datastore),
		authz.ProfileAccess{Store: c.datastore, Level: authz.LevelWrite},
		pipeline.StepFunc{StepName: "ValidatePaymentMethod", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			return nil, validatePaymentMethod(ctx, c.datastore, profile.OwnerAccountID, req.PaymentMethod)
		}},
		resolveCampaignCatalog(c.datastore),
		pipeline.StepFunc{StepName: "ValidateLineItems", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			if req.CustomerName == "" {
				return nil, serverErrors.MissingRequiredField("customerName")
			}
			v, ok := exec.Get(stashCatalog)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashCatalog)
			}
			enriched, total, err := validateLineItems(req.LineItems, v.(*types.Catalog))
			if err != nil {
				return nil, err
			}
			exec.Set(stashLineItems, enriched)
			exec.Set(stashOrderTotal, total)
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "PutOrder", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			campaign, err := stashedCampaign(exec)
			if err != nil {
				return nil, err
			}
			items, _ := exec.Get(stashLineItems)
			total, _ := exec.Get(stashOrderTotal)

			ts := now()
			order := &types.Order{
				CampaignID:      campaign.CampaignID,
				OrderID:         id.NewOrderID(),
				ProfileID:       campaign.ProfileID,
				CustomerName:    req.CustomerName,
				CustomerPhone:   req.CustomerPhone,
				CustomerAddress: req.CustomerAddress,
				OrderDate:       req.OrderDate,
				PaymentMethod:   req.PaymentMethod,
				Notes:           req.Notes,
				LineItems:       items.([]types.LineItem),
				TotalAmount:     total.(float64),
				CreatedAt:       ts,
				UpdatedAt:       ts,
			}
			if err := c.datastore.PutOrder(ctx, order); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			exec.Set(stashOrder, order)
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "BumpCampaignCounters", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			campaign, err := stashedCampaign(exec)
			if err != nil {
				return nil, err
			}
			order, err := stashedOrder(exec)
			if err != nil {
				return nil, err
			}
			campaign.TotalOrders++
			campaign.TotalRevenue += order.TotalAmount
			campaign.UpdatedAt = now()
			if err := c.datastore.PutCampaign(ctx, campaign); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Order(order), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Order), nil
}

// GetOrderQuery returns one order. Requires read access to the owning
// profile.
type GetOrderQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewGetOrderQuery(datastore storage.Datastore, logger logger.Logger) *GetOrderQuery {
	return &GetOrderQuery{
		datastore: datastore,
		logger:    logger,
	}
}

type GetOrderRequest struct {
	OrderID string
}

func (q *GetOrderQuery) Execute(ctx context.Context, req *GetOrderRequest) (*types.Order, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("GetOrder", q.logger,
		fetchOrderByID(q.datastore, req.OrderID),
		pipeline.StepFunc{StepName: "FetchProfile", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			order, err := stashedOrder(exec)
			if err != nil {
				return nil, err
			}
			return authz.FetchProfile{Store: q.datastore, ProfileID: order.ProfileID}.Run(ctx, exec)
		}},
		authz.ProfileAccess{Store: q.datastore, Level: authz.LevelRead},
		pipeline.StepFunc{StepName: "ProjectOrder", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			order, err := stashedOrder(exec)
			if err != nil {
				return nil, err
			}
			return transform.Order(order), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Order), nil
}

// UpdateOrderCommand updates an order in place. New line items are
// re-validated and re-snapshotted against the campaign's catalog and the
// campaign revenue counter is adjusted by the difference.
type UpdateOrderCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewUpdateOrderCommand(datastore storage.Datastore, logger logger.Logger) *UpdateOrderCommand {
	return &UpdateOrderCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type UpdateOrderRequest struct {
	OrderID         string
	CustomerName    *string
	CustomerPhone   *string
	CustomerAddress *string
	OrderDate       *string
	PaymentMethod   *string
	Notes           *string

	// LineItems nil leaves the items untouched.
	LineItems []types.LineItem
}

func (c *UpdateOrderCommand) Execute(ctx context.Context, req *UpdateOrderRequest) (*types.Order, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("UpdateOrder", c.logger,
		fetchOrderByID(c.datastore, req.OrderID),
		fetchOrderCampaign(c.datastore),
		fetchCampaignProfile(c.datastore),
		authz.ProfileAccess{Store: c.datastore, Level: authz.LevelWrite},
		pipeline.StepFunc{StepName: "ValidatePaymentMethod", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			if req.PaymentMethod == nil {
				return nil, nil
			}
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			return nil, validatePaymentMethod(ctx, c.datastore, profile.OwnerAccountID, *req.PaymentMethod)
		}},
		resolveCampaignCatalog(c.datastore),
		pipeline.StepFunc{StepName: "ValidateLineItems", Fn: func(_ context.Context, exec *pipeline.Exec) (any, error) {
			if req.LineItems == nil {
				return nil, nil
			}
			v, ok := exec.Get(stashCatalog)
			if !ok {
				return nil, serverErrors.MissingStashValue(stashCatalog)
			}
			enriched, total, err := validateLineItems(req.LineItems, v.(*types.Catalog))
			if err != nil {
				return nil, err
			}
			exec.Set(stashLineItems, enriched)
			exec.Set(stashOrderTotal, total)
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "ApplyAndPut", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			order, err := stashedOrder(exec)
			if err != nil {
				return nil, err
			}
			campaign, err := stashedCampaign(exec)
			if err != nil {
				return nil, err
			}

			previousTotal := order.TotalAmount
			if req.CustomerName != nil {
				if *req.CustomerName == "" {
					return nil, serverErrors.MissingRequiredField("customerName")
				}
				order.CustomerName = *req.CustomerName
			}
			if req.CustomerPhone != nil {
				order.CustomerPhone = *req.CustomerPhone
			}
			if req.CustomerAddress != nil {
				order.CustomerAddress = *req.CustomerAddress
			}
			if req.OrderDate != nil {
				order.OrderDate = *req.OrderDate
			}
			if req.PaymentMethod != nil {
				order.PaymentMethod = *req.PaymentMethod
			}
			if req.Notes != nil {
				order.Notes = *req.Notes
			}
			if items, ok := exec.Get(stashLineItems); ok {
				total, _ := exec.Get(stashOrderTotal)
				order.LineItems = items.([]types.LineItem)
				order.TotalAmount = total.(float64)
			}
			order.UpdatedAt = now()
			if err := c.datastore.PutOrder(ctx, order); err != nil {
				return nil, serverErrors.HandleError("", err)
			}

			if order.TotalAmount != previousTotal {
				campaign.TotalRevenue += order.TotalAmount - previousTotal
				campaign.UpdatedAt = now()
				if err := c.datastore.PutCampaign(ctx, campaign); err != nil {
					return nil, serverErrors.HandleError("", err)
				}
			}
			return transform.Order(order), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*types.Order), nil
}

// DeleteOrderCommand removes an order and decrements the campaign counters.
type DeleteOrderCommand struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewDeleteOrderCommand(datastore storage.Datastore, logger logger.Logger) *DeleteOrderCommand {
	return &DeleteOrderCommand{
		datastore: datastore,
		logger:    logger,
	}
}

type DeleteOrderRequest struct {
	OrderID string
}

type DeleteOrderResponse struct {
	OrderID string `json:"orderId"`
	Deleted bool   `json:"deleted"`
}

func (c *DeleteOrderCommand) Execute(ctx context.Context, req *DeleteOrderRequest) (*DeleteOrderResponse, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("DeleteOrder", c.logger,
		fetchOrderByID(c.datastore, req.OrderID),
		fetchOrderCampaign(c.datastore),
		fetchCampaignProfile(c.datastore),
		authz.ProfileAccess{Store: c.datastore, Level: authz.LevelWrite},
		pipeline.StepFunc{StepName: "DeleteOrder", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			order, err := stashedOrder(exec)
			if err != nil {
				return nil, err
			}
			if err := c.datastore.DeleteOrder(ctx, order.CampaignID, order.OrderID); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return nil, nil
		}},
		pipeline.StepFunc{StepName: "DecrementCampaignCounters", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			order, err := stashedOrder(exec)
			if err != nil {
				return nil, err
			}
			campaign, err := stashedCampaign(exec)
			if err != nil {
				return nil, err
			}
			campaign.TotalOrders--
			campaign.TotalRevenue -= order.TotalAmount
			if campaign.TotalOrders < 0 {
				campaign.TotalOrders = 0
			}
			if campaign.TotalRevenue < 0 {
				campaign.TotalRevenue = 0
			}
			campaign.UpdatedAt = now()
			if err := c.datastore.PutCampaign(ctx, campaign); err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return &DeleteOrderResponse{
				OrderID: key.StripPrefix(order.OrderID),
				Deleted: true,
			}, nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.(*DeleteOrderResponse), nil
}

// ListOrdersByCampaignQuery lists a campaign's orders. Requires read access
// to the owning profile.
type ListOrdersByCampaignQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewListOrdersByCampaignQuery(datastore storage.Datastore, logger logger.Logger) *ListOrdersByCampaignQuery {
	return &ListOrdersByCampaignQuery{
		datastore: datastore,
		logger:    logger,
	}
}

type ListOrdersByCampaignRequest struct {
	CampaignID string
}

func (q *ListOrdersByCampaignQuery) Execute(ctx context.Context, req *ListOrdersByCampaignRequest) ([]*types.Order, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListOrdersByCampaign", q.logger,
		fetchCampaignByID(q.datastore, req.CampaignID),
		fetchCampaignProfile(q.datastore),
		authz.ProfileAccess{Store: q.datastore, Level: authz.LevelRead},
		pipeline.StepFunc{StepName: "ListOrders", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			campaign, err := stashedCampaign(exec)
			if err != nil {
				return nil, err
			}
			orders, err := q.datastore.ListOrdersByCampaign(ctx, campaign.CampaignID, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Orders(orders), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.Order), nil
}

// ListOrdersByProfileQuery lists a profile's orders across campaigns,
// ordered by creation time. Requires read access.
type ListOrdersByProfileQuery struct {
	datastore storage.Datastore
	logger    logger.Logger
}

func NewListOrdersByProfileQuery(datastore storage.Datastore, logger logger.Logger) *ListOrdersByProfileQuery {
	return &ListOrdersByProfileQuery{
		datastore: datastore,
		logger:    logger,
	}
}

type ListOrdersByProfileRequest struct {
	ProfileID string
}

func (q *ListOrdersByProfileQuery) Execute(ctx context.Context, req *ListOrdersByProfileRequest) ([]*types.Order, error) {
	exec, err := execFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := pipeline.New("ListOrdersByProfile", q.logger,
		authz.FetchProfile{Store: q.datastore, ProfileID: req.ProfileID},
		authz.ProfileAccess{Store: q.datastore, Level: authz.LevelRead},
		pipeline.StepFunc{StepName: "ListOrders", Fn: func(ctx context.Context, exec *pipeline.Exec) (any, error) {
			profile, err := stashedProfile(exec)
			if err != nil {
				return nil, err
			}
			orders, err := q.datastore.ListOrdersByProfile(ctx, profile.ProfileID, storage.ReadOptions{})
			if err != nil {
				return nil, serverErrors.HandleError("", err)
			}
			return transform.Orders(orders), nil
		}},
	)

	result, err := p.Execute(ctx, exec)
	if err != nil {
		return nil, err
	}
	return result.([]*types.Order), nil
}
