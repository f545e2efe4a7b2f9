// Package commands implements every operation as an explicit ordered
// pipeline over the shared stash. Composition is always a fixed step list
// declared at the call site; steps never invoke each other directly.
package commands

import (
	"context"
	"errors"
	"time"

	"github.com/kernelworx/psm/internal/authn"
	"github.com/kernelworx/psm/pkg/authclaims"
	"github.com/kernelworx/psm/pkg/key"
	"github.com/kernelworx/psm/pkg/pipeline"
	serverErrors "github.com/kernelworx/psm/pkg/server/errors"
	"github.com/kernelworx/psm/pkg/storage"
	"github.com/kernelworx/psm/pkg/types"
)

// Stash keys shared across command pipelines. Keys owned by the authz steps
// live in internal/authz.
const (
	stashAccount  = "account"
	stashCatalog  = "catalog"
	stashCampaign = "campaign"
	stashOrder    = "order"
	stashInvite   = "invite"
	stashShare    = "share"
	stashTarget   = "targetAccount"
)

// execFromContext builds the per-invocation exec from the verified claims.
// Operations are only reachable through the authenticated surface, so absent
// claims mean a wiring bug upstream, but we still refuse to run.
func execFromContext(ctx context.Context) (*pipeline.Exec, error) {
	claims, ok := authclaims.AuthClaimsFromContext(ctx)
	if !ok || claims.Subject == "" {
		return nil, authn.ErrUnauthenticated
	}
	exec := pipeline.NewExec(claims.Subject)
	exec.IsAdmin = claims.IsAdmin
	return exec, nil
}

// resolveCatalog looks the catalog up by the id exactly as given, then falls
// back to the CATALOG#-prefixed form. Campaigns written by old clients store
// raw catalog ids.
func resolveCatalog(ctx context.Context, store storage.CatalogsBackend, catalogID string, opts storage.ReadOptions) (*types.Catalog, error) {
	catalog, err := store.GetCatalog(ctx, catalogID, opts)
	if err == nil {
		return catalog, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	prefixed := key.WithPrefix(key.Catalog, catalogID)
	if prefixed == catalogID {
		return nil, err
	}
	return store.GetCatalog(ctx, prefixed, opts)
}

// validateLineItems checks quantities and resolves every product against the
// catalog, returning enriched line items with snapshotted name and price and
// the server-computed order total. No writes happen before this step
// succeeds.
func validateLineItems(items []types.LineItem, catalog *types.Catalog) ([]types.LineItem, float64, error) {
	if len(items) == 0 {
		return nil, 0, serverErrors.ErrEmptyLineItems
	}

	enriched := make([]types.LineItem, 0, len(items))
	var total float64
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, 0, serverErrors.InvalidQuantity(item.ProductID, item.Quantity)
		}
		product := catalog.Product(item.ProductID)
		if product == nil {
			return nil, 0, serverErrors.ProductNotInCatalog(item.ProductID)
		}
		subtotal := product.Price * float64(item.Quantity)
		enriched = append(enriched, types.LineItem{
			ProductID:    item.ProductID,
			ProductName:  product.ProductName,
			Quantity:     item.Quantity,
			PricePerUnit: product.Price,
			Subtotal:     subtotal,
		})
		total += subtotal
	}
	return enriched, total, nil
}

func now() time.Time {
	return time.Now().UTC()
}
