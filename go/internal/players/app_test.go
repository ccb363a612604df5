package players

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpatel744/auctioneer/go/internal/store/memory"
)

func newApp() *App {
	return NewApp(memory.NewStore().Players())
}

func TestCreatePlayerAppliesDefaults(t *testing.T) {
	app := newApp()

	player, err := app.CreatePlayer(context.Background(), CreatePlayerRequest{
		RoomID:    "room-1",
		Name:      "J Bumrah",
		BasePrice: 200,
	})
	require.NoError(t, err)

	assert.Equal(t, "Set 1", player.PlayerSet)
	assert.Equal(t, "Set 1", player.OriginalSet)
	assert.Equal(t, "M", player.Category)
	assert.Equal(t, "Bat", player.Role)
	assert.Equal(t, "India", player.Country)
	assert.NotEqual(t, uuid.Nil, player.ID)
	assert.Nil(t, player.SoldPrice)
	assert.Nil(t, player.Status)
}

func TestCreatePlayerValidation(t *testing.T) {
	app := newApp()
	ctx := context.Background()

	_, err := app.CreatePlayer(ctx, CreatePlayerRequest{RoomID: "room-1", BasePrice: 50})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = app.CreatePlayer(ctx, CreatePlayerRequest{RoomID: "room-1", Name: "X"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = app.CreatePlayer(ctx, CreatePlayerRequest{Name: "X", BasePrice: 50})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreatePlayersBatchRejectsBadRow(t *testing.T) {
	app := newApp()
	ctx := context.Background()

	_, err := app.CreatePlayers(ctx, "room-1", []CreatePlayerRequest{
		{Name: "A", BasePrice: 50},
		{Name: "", BasePrice: 50},
	})
	require.Error(t, err)

	// Nothing from the rejected batch was imported.
	pool, err := app.ListPlayers(ctx, "room-1")
	require.NoError(t, err)
	assert.Empty(t, pool)

	created, err := app.CreatePlayers(ctx, "room-1", []CreatePlayerRequest{
		{Name: "A", BasePrice: 50},
		{Name: "B", BasePrice: 75, PlayerSet: "Set 2", Country: "Australia"},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)
}

func TestListPlayersBySet(t *testing.T) {
	app := newApp()
	ctx := context.Background()

	_, err := app.CreatePlayers(ctx, "room-1", []CreatePlayerRequest{
		{Name: "A", BasePrice: 50},
		{Name: "B", BasePrice: 50, PlayerSet: "Set 2"},
	})
	require.NoError(t, err)

	set2, err := app.ListPlayersBySet(ctx, "room-1", "Set 2")
	require.NoError(t, err)
	require.Len(t, set2, 1)
	assert.Equal(t, "B", set2[0].Name)
}

func TestUpdatePlayer(t *testing.T) {
	app := newApp()
	ctx := context.Background()

	player, err := app.CreatePlayer(ctx, CreatePlayerRequest{RoomID: "room-1", Name: "A", BasePrice: 50})
	require.NoError(t, err)

	newPrice := int64(150)
	newSet := "Set 3"
	updated, err := app.UpdatePlayer(ctx, "room-1", player.ID, UpdatePlayerRequest{
		BasePrice: &newPrice,
		PlayerSet: &newSet,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150), updated.BasePrice)
	assert.Equal(t, "Set 3", updated.PlayerSet)
	assert.Equal(t, "Set 3", updated.OriginalSet)

	empty := ""
	_, err = app.UpdatePlayer(ctx, "room-1", player.ID, UpdatePlayerRequest{Name: &empty})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = app.UpdatePlayer(ctx, "room-1", uuid.New(), UpdatePlayerRequest{PlayerSet: &newSet})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestDeletePlayer(t *testing.T) {
	app := newApp()
	ctx := context.Background()

	player, err := app.CreatePlayer(ctx, CreatePlayerRequest{RoomID: "room-1", Name: "A", BasePrice: 50})
	require.NoError(t, err)

	require.NoError(t, app.DeletePlayer(ctx, "room-1", player.ID))
	assert.ErrorIs(t, app.DeletePlayer(ctx, "room-1", player.ID), ErrPlayerNotFound)

	_, err = app.GetPlayer(ctx, "room-1", player.ID)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
