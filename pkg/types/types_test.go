package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizePermissions(t *testing.T) {
	t.Run("upper_cases_legacy_values", func(t *testing.T) {
		require.Equal(t, []Permission{PermissionRead, PermissionWrite},
			NormalizePermissions([]Permission{"read", "write"}))
	})

	t.Run("drops_unknown_values", func(t *testing.T) {
		require.Equal(t, []Permission{PermissionRead},
			NormalizePermissions([]Permission{"READ", "ADMIN", ""}))
	})

	t.Run("de_duplicates", func(t *testing.T) {
		require.Equal(t, []Permission{PermissionWrite},
			NormalizePermissions([]Permission{"WRITE", "write", "WRITE"}))
	})

	t.Run("empty_in_empty_out", func(t *testing.T) {
		require.Empty(t, NormalizePermissions(nil))
	})
}

func TestHasPermission(t *testing.T) {
	t.Run("write_implies_read", func(t *testing.T) {
		require.True(t, HasPermission([]Permission{PermissionWrite}, PermissionRead))
	})

	t.Run("read_does_not_imply_write", func(t *testing.T) {
		require.False(t, HasPermission([]Permission{PermissionRead}, PermissionWrite))
	})

	t.Run("lower_cased_stored_value_counts", func(t *testing.T) {
		require.True(t, HasPermission([]Permission{"write"}, PermissionWrite))
	})

	t.Run("no_permissions_grants_nothing", func(t *testing.T) {
		require.False(t, HasPermission(nil, PermissionRead))
	})
}

func TestInviteRedeemable(t *testing.T) {
	now := time.Now()

	t.Run("fresh_invite_is_redeemable", func(t *testing.T) {
		inv := &Invite{ExpiresAt: now.Add(time.Hour).Unix()}
		require.True(t, inv.Redeemable(now))
	})

	t.Run("used_invite_is_not", func(t *testing.T) {
		inv := &Invite{ExpiresAt: now.Add(time.Hour).Unix(), Used: true}
		require.False(t, inv.Redeemable(now))
	})

	t.Run("expired_invite_is_not", func(t *testing.T) {
		inv := &Invite{ExpiresAt: now.Add(-time.Second).Unix()}
		require.False(t, inv.Redeemable(now))
	})
}

func TestCatalogProduct(t *testing.T) {
	catalog := &Catalog{Products: []Product{
		{ProductID: "p1", ProductName: "Caramel Corn", Price: 10},
		{ProductID: "p2", ProductName: "Kettle Corn", Price: 4.75},
	}}

	t.Run("finds_by_exact_id", func(t *testing.T) {
		p := catalog.Product("p2")
		require.NotNil(t, p)
		require.Equal(t, "Kettle Corn", p.ProductName)
	})

	t.Run("missing_id_returns_nil", func(t *testing.T) {
		require.Nil(t, catalog.Product("p3"))
	})
}
