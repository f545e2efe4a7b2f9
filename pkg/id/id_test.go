package id

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	t.Run("generated_id_is_valid", func(t *testing.T) {
		require.True(t, IsValid(New()))
	})

	t.Run("non_ulid_is_invalid", func(t *testing.T) {
		require.False(t, IsValid("foobar"))
	})
}

func TestPrefixedIDs(t *testing.T) {
	t.Run("profile_id_carries_prefix", func(t *testing.T) {
		id := NewProfileID()
		require.True(t, strings.HasPrefix(id, "PROFILE#"))
		require.True(t, IsValid(strings.TrimPrefix(id, "PROFILE#")))
	})

	t.Run("campaign_id_carries_prefix", func(t *testing.T) {
		require.True(t, strings.HasPrefix(NewCampaignID(), "CAMPAIGN#"))
	})

	t.Run("catalog_id_carries_prefix", func(t *testing.T) {
		require.True(t, strings.HasPrefix(NewCatalogID(), "CATALOG#"))
	})

	t.Run("order_id_is_prefixed_uuid", func(t *testing.T) {
		id := NewOrderID()
		require.True(t, strings.HasPrefix(id, "ORDER#"))
		_, err := uuid.Parse(strings.TrimPrefix(id, "ORDER#"))
		require.NoError(t, err)
	})

	t.Run("invite_code_is_unprefixed", func(t *testing.T) {
		require.NotContains(t, NewInviteCode(), "#")
	})

	t.Run("shared_campaign_code_is_unprefixed", func(t *testing.T) {
		require.NotContains(t, NewSharedCampaignCode(), "#")
	})
}

func TestThatProbablyNoCollisionsHappen(t *testing.T) {
	now := time.Now()
	length := 10000
	m := make(map[string]struct{}, length)
	for i := 0; i < length; i++ {
		m[NewFromTime(now)] = struct{}{}
	}

	if len(m) != length {
		t.Error("ids collided!!")
	}
}
