package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpatel744/auctioneer/go/internal/models"
	"github.com/kpatel744/auctioneer/go/internal/store"
)

func testRoom(id string) *models.Room {
	return &models.Room{
		RoomID:     id,
		AccessType: models.AccessTypePublic,
		RoomConfig: models.RoomConfig{NumTeams: 2, Budget: 12000, MaxPlayers: 25, MaxOverseas: 8},
		Teams:      map[string]*models.Team{},
	}
}

func testPlayer(name string) *models.Player {
	return &models.Player{
		PlayerSnapshot: models.PlayerSnapshot{
			ID:        uuid.New(),
			Name:      name,
			PlayerSet: "Set 1",
			BasePrice: 50,
			Country:   "India",
		},
		OriginalSet: "Set 1",
	}
}

func TestRoomCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	room := testRoom("r1")
	require.NoError(t, s.Rooms().CreateRoom(ctx, room))
	assert.ErrorIs(t, s.Rooms().CreateRoom(ctx, testRoom("r1")), store.ErrExists)

	got, err := s.Rooms().GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.RoomID)
	assert.Equal(t, int64(1), got.Version)

	_, err = s.Rooms().GetRoom(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Rooms().DeleteRoom(ctx, "r1"))
	assert.ErrorIs(t, s.Rooms().DeleteRoom(ctx, "r1"), store.ErrNotFound)
}

func TestRoomUpdateVersionCheck(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Rooms().CreateRoom(ctx, testRoom("r1")))

	a, err := s.Rooms().GetRoom(ctx, "r1")
	require.NoError(t, err)
	b, err := s.Rooms().GetRoom(ctx, "r1")
	require.NoError(t, err)

	a.Teams["Team A"] = &models.Team{Name: "Team A", Purse: 12000}
	require.NoError(t, s.Rooms().UpdateRoom(ctx, a))

	b.Teams["Team B"] = &models.Team{Name: "Team B", Purse: 12000}
	assert.ErrorIs(t, s.Rooms().UpdateRoom(ctx, b), store.ErrConflict)

	got, err := s.Rooms().GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Contains(t, got.Teams, "Team A")
	assert.NotContains(t, got.Teams, "Team B")
}

func TestReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	room := testRoom("r1")
	room.Teams["Team A"] = &models.Team{Name: "Team A", Purse: 12000}
	require.NoError(t, s.Rooms().CreateRoom(ctx, room))

	got, err := s.Rooms().GetRoom(ctx, "r1")
	require.NoError(t, err)
	got.Teams["Team A"].Purse = 0

	again, err := s.Rooms().GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(12000), again.Teams["Team A"].Purse)
}

func TestTransactRoomRetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	room := testRoom("r1")
	room.Teams["Team A"] = &models.Team{Name: "Team A", Purse: 12000}
	require.NoError(t, s.Rooms().CreateRoom(ctx, room))

	// Forty concurrent debits of 10 against the same purse; every one must
	// land exactly once.
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.TransactRoom(ctx, s.Rooms(), "r1", func(r *models.Room) error {
				r.Teams["Team A"].Purse -= 10
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Rooms().GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(11600), got.Teams["Team A"].Purse)
}

func TestPlayerPool(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	p1 := testPlayer("A Player")
	p2 := testPlayer("B Player")
	p2.PlayerSet = "Set 2"
	require.NoError(t, s.Players().CreatePlayer(ctx, "r1", p1))
	require.NoError(t, s.Players().CreatePlayer(ctx, "r1", p2))

	all, err := s.Players().ListPlayers(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	set2, err := s.Players().ListPlayersBySet(ctx, "r1", "Set 2")
	require.NoError(t, err)
	require.Len(t, set2, 1)
	assert.Equal(t, "B Player", set2[0].Name)

	// Pools are scoped per room.
	other, err := s.Players().ListPlayers(ctx, "r2")
	require.NoError(t, err)
	assert.Empty(t, other)

	got, err := s.Players().GetPlayer(ctx, "r1", p1.ID)
	require.NoError(t, err)
	price := int64(60)
	got.SoldPrice = &price
	require.NoError(t, s.Players().UpdatePlayer(ctx, "r1", got))

	stale := p1.Clone()
	stale.Version = 1
	assert.ErrorIs(t, s.Players().UpdatePlayer(ctx, "r1", stale), store.ErrConflict)

	require.NoError(t, s.Players().DeletePlayer(ctx, "r1", p1.ID))
	_, err = s.Players().GetPlayer(ctx, "r1", p1.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteRoomDropsPool(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Rooms().CreateRoom(ctx, testRoom("r1")))
	require.NoError(t, s.Players().CreatePlayer(ctx, "r1", testPlayer("A Player")))

	require.NoError(t, s.Rooms().DeleteRoom(ctx, "r1"))
	pool, err := s.Players().ListPlayers(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, pool)
}
