package key

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithPrefix(t *testing.T) {
	t.Run("adds_the_kind_prefix", func(t *testing.T) {
		require.Equal(t, "ACCOUNT#abc", WithPrefix(Account, "abc"))
	})

	t.Run("idempotent_on_already_prefixed_id", func(t *testing.T) {
		require.Equal(t, "PROFILE#abc", WithPrefix(Profile, WithPrefix(Profile, "abc")))
	})

	t.Run("empty_input_stays_empty", func(t *testing.T) {
		require.Equal(t, "", WithPrefix(Catalog, ""))
	})
}

func TestStripPrefix(t *testing.T) {
	t.Run("strips_the_kind_prefix", func(t *testing.T) {
		require.Equal(t, "abc", StripPrefix("CAMPAIGN#abc"))
	})

	t.Run("legacy_share_account_prefix_strips_fully", func(t *testing.T) {
		require.Equal(t, "abc", StripPrefix("SHARE#ACCOUNT#abc"))
	})

	t.Run("legacy_share_prefix_strips", func(t *testing.T) {
		require.Equal(t, "abc", StripPrefix("SHARE#abc"))
	})

	t.Run("raw_id_passes_through", func(t *testing.T) {
		require.Equal(t, "abc", StripPrefix("abc"))
	})

	t.Run("empty_input_stays_empty", func(t *testing.T) {
		require.Equal(t, "", StripPrefix(""))
	})

	t.Run("round_trips_with_prefix", func(t *testing.T) {
		for _, kind := range []Kind{Account, Profile, Campaign, Order, Catalog, Invite} {
			require.Equal(t, "raw-1", StripPrefix(WithPrefix(kind, "raw-1")))
		}
	})
}

func TestHasPrefix(t *testing.T) {
	require.True(t, HasPrefix(Order, "ORDER#1"))
	require.False(t, HasPrefix(Order, "CATALOG#1"))
	require.False(t, HasPrefix(Order, "1"))
}

func TestUnitCampaignKey(t *testing.T) {
	t.Run("components_upper_cased_and_trimmed", func(t *testing.T) {
		require.Equal(t, "TROOP#101#SPRINGFIELD#IL#2025",
			UnitCampaignKey(" troop ", "101", "Springfield", "il", 2025))
	})

	t.Run("same_unit_same_year_collides_by_design", func(t *testing.T) {
		a := UnitCampaignKey("pack", "9", "Austin", "TX", 2024)
		b := UnitCampaignKey("PACK", "9", "austin", "tx", 2024)
		require.Equal(t, a, b)
	})
}
