package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsmaelSWO/league-backend/internal/domain"
	"github.com/IsmaelSWO/league-backend/internal/repository/testutil"
)

func TestPlayerRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	players := NewPlayerRepository(testDB.DB)
	ctx := context.Background()

	owner := testutil.CreateTestUser("owner")
	require.NoError(t, users.Create(ctx, owner))

	t.Run("player not found", func(t *testing.T) {
		player, err := players.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, player)
	})

	t.Run("owned player round trip", func(t *testing.T) {
		original := testutil.CreateTestPlayer("Joaquín", 3000, owner)
		require.NoError(t, players.Create(ctx, original))

		player, err := players.GetByID(ctx, original.ID)
		require.NoError(t, err)
		require.NotNil(t, player)

		assert.Equal(t, original.Title, player.Title)
		assert.Equal(t, int64(3000), player.Clausula)
		assert.Equal(t, int64(3000), player.ClausulaInicial)
		assert.False(t, player.Transferible)
		assert.Equal(t, original.Expires, player.Expires)
		require.NotNil(t, player.CreatorID)
		assert.Equal(t, owner.ID, *player.CreatorID)
		assert.Nil(t, player.OwnerDiscard)
		assert.Nil(t, player.DiscardExpiresDate)
		assert.Empty(t, player.Ofertas)
	})

	t.Run("discarded player round trip", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour)
		original := testutil.CreateTestDiscardedPlayer("Fekir", owner, expiry)
		require.NoError(t, players.Create(ctx, original))

		player, err := players.GetByID(ctx, original.ID)
		require.NoError(t, err)
		require.NotNil(t, player)

		assert.Nil(t, player.CreatorID)
		require.NotNil(t, player.OwnerDiscard)
		assert.Equal(t, owner.ID, *player.OwnerDiscard)
		require.NotNil(t, player.DiscardExpiresDate)
		assert.Equal(t, expiry.UnixMilli(), *player.DiscardExpiresDate)
		assert.True(t, player.IsDiscarded())
	})
}

func TestPlayerRepository_Listings(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	players := NewPlayerRepository(testDB.DB)
	ctx := context.Background()

	owner := testutil.CreateTestUser("owner")
	other := testutil.CreateTestUser("other")
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, other))

	cheap := testutil.CreateTestPlayer("Cheap", 1000, owner)
	listed := testutil.CreateTestPlayer("Listed", 5000, owner)
	free := testutil.CreateTestPlayer("Free", 3000, nil)
	free.Team = domain.TeamWithoutClub
	foreign := testutil.CreateTestPlayer("Foreign", 9000, other)

	for _, p := range []*domain.Player{cheap, listed, free, foreign} {
		require.NoError(t, players.Create(ctx, p))
	}
	require.NoError(t, users.AddPlayer(ctx, owner.ID, listed.ID))
	require.NoError(t, users.AddPlayer(ctx, owner.ID, cheap.ID))
	require.NoError(t, players.UpdateTransferible(ctx, listed.ID, true, 4000))

	t.Run("by creator in roster order", func(t *testing.T) {
		got, err := players.GetByCreator(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, listed.ID, got[0].ID)
		assert.Equal(t, cheap.ID, got[1].ID)
	})

	t.Run("market holds listed and club-less players", func(t *testing.T) {
		got, err := players.GetMarket(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, listed.ID, got[0].ID)
		assert.Equal(t, int64(4000), got[0].MarketValue)
		assert.True(t, got[0].Transferible)
		assert.Equal(t, free.ID, got[1].ID)
	})

	t.Run("all sorted by clause", func(t *testing.T) {
		got, err := players.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, foreign.ID, got[0].ID)
		assert.Equal(t, listed.ID, got[1].ID)
		assert.Equal(t, free.ID, got[2].ID)
		assert.Equal(t, cheap.ID, got[3].ID)
	})
}

func TestPlayerRepository_ExpiredDiscards(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	players := NewPlayerRepository(testDB.DB)
	ctx := context.Background()

	owner := testutil.CreateTestUser("owner")
	require.NoError(t, users.Create(ctx, owner))

	now := time.Now()
	expired := testutil.CreateTestDiscardedPlayer("Expired", owner, now.Add(-time.Minute))
	pending := testutil.CreateTestDiscardedPlayer("Pending", owner, now.Add(time.Hour))
	require.NoError(t, players.Create(ctx, expired))
	require.NoError(t, players.Create(ctx, pending))

	got, err := players.GetExpiredDiscards(ctx, now.UnixMilli())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, expired.ID, got[0].ID)
}

func TestPlayerRepository_UpdatesAndOffers(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	players := NewPlayerRepository(testDB.DB)
	offers := NewOfferRepository(testDB.DB)
	ctx := context.Background()

	owner := testutil.CreateTestUser("owner")
	bidder := testutil.CreateTestUser("bidder")
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, bidder))

	player := testutil.CreateTestPlayer("Joaquín", 3000, owner)
	require.NoError(t, players.Create(ctx, player))

	require.NoError(t, players.UpdateClause(ctx, player.ID, 4500))
	assert.Error(t, players.UpdateClause(ctx, uuid.New(), 1))

	first := testutil.CreateTestOffer(bidder, player, 100)
	second := testutil.CreateTestOffer(bidder, player, 200)
	require.NoError(t, offers.Create(ctx, first))
	require.NoError(t, offers.Create(ctx, second))
	require.NoError(t, players.AddOffer(ctx, player.ID, second.ID))
	require.NoError(t, players.AddOffer(ctx, player.ID, first.ID))

	got, err := players.GetByID(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4500), got.Clausula)
	assert.Equal(t, []uuid.UUID{second.ID, first.ID}, got.Ofertas)

	t.Run("delete is restricted while references remain", func(t *testing.T) {
		assert.Error(t, players.Delete(ctx, player.ID))
	})

	require.NoError(t, players.RemoveOffer(ctx, player.ID, second.ID))
	got, err = players.GetByID(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID}, got.Ofertas)

	require.NoError(t, players.ClearOffers(ctx, player.ID))
	removed, err := offers.DeleteByPlayer(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	require.NoError(t, players.Delete(ctx, player.ID))
	got, err = players.GetByID(ctx, player.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
