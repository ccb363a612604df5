package lot

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpatel744/auctioneer/go/internal/auction/ledger"
	"github.com/kpatel744/auctioneer/go/internal/models"
)

// newRoom builds a two-team room ready for a lot.
func newRoom() *models.Room {
	return &models.Room{
		RoomID:       "room-1",
		AuctionState: models.AuctionStateNotStarted,
		AccessType:   models.AccessTypePublic,
		RoomConfig: models.RoomConfig{
			NumTeams:    2,
			Budget:      12000,
			MaxPlayers:  25,
			MaxOverseas: 8,
		},
		Teams: map[string]*models.Team{
			"Team A": {Name: "Team A", Purse: 12000},
			"Team B": {Name: "Team B", Purse: 12000},
		},
		AuctionMode: models.AuctionModeAuto,
		AccessMode:  models.AccessModeMax,
	}
}

func newPlayer(basePrice int64, country string) *models.Player {
	return &models.Player{
		PlayerSnapshot: models.PlayerSnapshot{
			ID:        uuid.New(),
			Name:      "V Kohli",
			PlayerSet: "Set 2",
			Category:  "M",
			Role:      "Bat",
			BasePrice: basePrice,
			Country:   country,
		},
		OriginalSet: "Set 2",
	}
}

func openLot(t *testing.T, room *models.Room, player *models.Player) {
	t.Helper()
	require.NoError(t, Select(room, player.Snapshot()))
}

func TestSelectClearsLotFields(t *testing.T) {
	room := newRoom()
	player := newPlayer(50, "India")

	// Dirty the lot to simulate a just-resolved round.
	bid := int64(90)
	team := "Team A"
	status := models.LotStatusSold
	room.CurrentBid = &bid
	room.CurrentBidTeam = &team
	room.Lot.Status = &status
	room.ActiveBidders = []string{"Team A", "Team B"}

	require.NoError(t, Select(room, player.Snapshot()))

	assert.Nil(t, room.CurrentBid)
	assert.Nil(t, room.CurrentBidTeam)
	assert.Nil(t, room.Lot.Status)
	assert.Nil(t, room.ActiveBidders)
	require.NotNil(t, room.CurrentPlayer)
	assert.Equal(t, player.ID, room.CurrentPlayer.ID)
}

func TestSelectRejectsEmptySnapshot(t *testing.T) {
	room := newRoom()
	err := Select(room, models.PlayerSnapshot{})
	assert.ErrorIs(t, err, ErrNoPlayerSelected)
}

func TestBidOpeningAndOutbidding(t *testing.T) {
	room := newRoom()
	openLot(t, room, newPlayer(50, "India"))

	// Opening bid at base price.
	require.NoError(t, Bid(room, "Team A", 50))
	require.NotNil(t, room.CurrentBid)
	assert.Equal(t, int64(50), *room.CurrentBid)
	assert.Equal(t, "Team A", *room.CurrentBidTeam)

	// Outbid must strictly exceed.
	err := Bid(room, "Team B", 50)
	assert.ErrorIs(t, err, ErrBidTooLow)

	require.NoError(t, Bid(room, "Team B", 60))
	assert.Equal(t, int64(60), *room.CurrentBid)
	assert.Equal(t, "Team B", *room.CurrentBidTeam)
}

func TestBidGuards(t *testing.T) {
	t.Run("no player selected", func(t *testing.T) {
		room := newRoom()
		assert.ErrorIs(t, Bid(room, "Team A", 50), ErrNoPlayerSelected)
	})

	t.Run("opening bid below base price", func(t *testing.T) {
		room := newRoom()
		openLot(t, room, newPlayer(200, "India"))
		assert.ErrorIs(t, Bid(room, "Team A", 150), ErrBidTooLow)
	})

	t.Run("self outbid", func(t *testing.T) {
		room := newRoom()
		openLot(t, room, newPlayer(50, "India"))
		require.NoError(t, Bid(room, "Team A", 50))
		assert.ErrorIs(t, Bid(room, "Team A", 60), ErrSelfOutbid)
	})

	t.Run("purse exceeded", func(t *testing.T) {
		room := newRoom()
		room.Teams["Team A"].Purse = 40
		openLot(t, room, newPlayer(50, "India"))
		assert.ErrorIs(t, Bid(room, "Team A", 50), ErrInsufficientPurse)
	})

	t.Run("manual mode", func(t *testing.T) {
		room := newRoom()
		room.AuctionMode = models.AuctionModeManual
		openLot(t, room, newPlayer(50, "India"))
		assert.ErrorIs(t, Bid(room, "Team A", 50), ErrManualMode)
	})

	t.Run("unknown team", func(t *testing.T) {
		room := newRoom()
		openLot(t, room, newPlayer(50, "India"))
		assert.ErrorIs(t, Bid(room, "Team Z", 50), ErrTeamNotFound)
	})

	t.Run("roster full", func(t *testing.T) {
		room := newRoom()
		room.MaxPlayers = 1
		room.Teams["Team A"].History = []models.PurchaseRecord{{PlayerID: uuid.New(), Price: 10}}
		openLot(t, room, newPlayer(50, "India"))
		assert.ErrorIs(t, Bid(room, "Team A", 50), ErrRosterFull)
	})

	t.Run("overseas quota full", func(t *testing.T) {
		room := newRoom()
		room.MaxOverseas = 1
		room.Teams["Team A"].History = []models.PurchaseRecord{
			{PlayerID: uuid.New(), Price: 10, Country: "Australia"},
		}
		openLot(t, room, newPlayer(50, "England"))
		assert.ErrorIs(t, Bid(room, "Team A", 50), ErrOverseasFull)

		// Domestic players are unaffected by the overseas cap.
		openLot(t, room, newPlayer(50, "India"))
		assert.NoError(t, Bid(room, "Team A", 50))
	})

	t.Run("resolved lot", func(t *testing.T) {
		room := newRoom()
		player := newPlayer(50, "India")
		openLot(t, room, player)
		require.NoError(t, Bid(room, "Team A", 50))
		require.NoError(t, MarkSold(room, player))
		assert.ErrorIs(t, Bid(room, "Team B", 60), ErrLotNotOpen)
	})
}

func TestMarkSold(t *testing.T) {
	room := newRoom()
	player := newPlayer(50, "India")
	openLot(t, room, player)

	require.NoError(t, Bid(room, "Team A", 50))
	require.NoError(t, Bid(room, "Team B", 60))
	require.NoError(t, MarkSold(room, player))

	teamB := room.Teams["Team B"]
	assert.Equal(t, int64(11940), teamB.Purse)
	require.Len(t, teamB.History, 1)
	assert.Equal(t, int64(60), teamB.History[0].Price)
	assert.Equal(t, player.ID, teamB.History[0].PlayerID)
	require.NoError(t, ledger.CheckInvariants(teamB, room.Budget))

	require.NotNil(t, room.Lot.Status)
	assert.Equal(t, models.LotStatusSold, *room.Lot.Status)

	require.NotNil(t, player.SoldPrice)
	assert.Equal(t, int64(60), *player.SoldPrice)
	assert.Equal(t, "Team B", *player.Team)
	assert.Equal(t, models.LotStatusSold, *player.Status)
}

func TestMarkSoldWithoutBid(t *testing.T) {
	room := newRoom()
	player := newPlayer(50, "India")
	openLot(t, room, player)

	assert.ErrorIs(t, MarkSold(room, player), ErrNoBid)
	assert.Nil(t, room.Lot.Status)
}

func TestMarkUnsold(t *testing.T) {
	room := newRoom()
	player := newPlayer(50, "India")
	player.OriginalSet = ""
	openLot(t, room, player)

	require.NoError(t, MarkUnsold(room, player))

	require.NotNil(t, room.Lot.Status)
	assert.Equal(t, models.LotStatusUnsold, *room.Lot.Status)
	assert.Equal(t, "UnSold", player.PlayerSet)
	assert.Equal(t, "Set 2", player.OriginalSet)
	assert.Nil(t, player.SoldPrice)
	assert.Nil(t, player.Team)
}

func TestMarkUnsoldRejectedWithBidPresent(t *testing.T) {
	room := newRoom()
	player := newPlayer(50, "India")
	openLot(t, room, player)
	require.NoError(t, Bid(room, "Team A", 50))

	err := MarkUnsold(room, player)
	assert.ErrorIs(t, err, ErrBidPresent)

	// No state change.
	assert.Nil(t, room.Lot.Status)
	assert.Equal(t, "Set 2", player.PlayerSet)
	require.NotNil(t, room.CurrentBid)
	assert.Equal(t, int64(50), *room.CurrentBid)
}

func TestResetAfterSoldRoundTrip(t *testing.T) {
	room := newRoom()
	player := newPlayer(100, "India")
	openLot(t, room, player)

	require.NoError(t, Bid(room, "Team A", 100))
	require.NoError(t, MarkSold(room, player))
	require.NoError(t, Reset(room, player))

	teamA := room.Teams["Team A"]
	assert.Equal(t, int64(12000), teamA.Purse)
	assert.Empty(t, teamA.History)
	require.NoError(t, ledger.CheckInvariants(teamA, room.Budget))

	assert.Equal(t, "Set 2", player.PlayerSet)
	assert.Nil(t, player.SoldPrice)
	assert.Nil(t, player.Team)
	assert.Nil(t, player.Status)

	// Lot returns to OPEN with the same player still displayed.
	assert.Nil(t, room.CurrentBid)
	assert.Nil(t, room.CurrentBidTeam)
	assert.Nil(t, room.Lot.Status)
	assert.Nil(t, room.ActiveBidders)
	require.NotNil(t, room.CurrentPlayer)
	assert.Equal(t, player.ID, room.CurrentPlayer.ID)
}

func TestResetAfterUnsoldRestoresSet(t *testing.T) {
	room := newRoom()
	player := newPlayer(50, "India")
	openLot(t, room, player)

	require.NoError(t, MarkUnsold(room, player))
	assert.Equal(t, "UnSold", player.PlayerSet)

	require.NoError(t, Reset(room, player))
	assert.Equal(t, "Set 2", player.PlayerSet)
	assert.Nil(t, room.Lot.Status)
	assert.True(t, room.IsOpen())
}

func TestResetVoidsStrayBid(t *testing.T) {
	room := newRoom()
	player := newPlayer(50, "India")
	openLot(t, room, player)
	require.NoError(t, Bid(room, "Team A", 50))

	require.NoError(t, Reset(room, player))
	assert.Nil(t, room.CurrentBid)
	assert.Nil(t, room.CurrentBidTeam)
	assert.Equal(t, int64(12000), room.Teams["Team A"].Purse)
}

func TestResetWithNothingToUndo(t *testing.T) {
	room := newRoom()
	player := newPlayer(50, "India")
	openLot(t, room, player)

	assert.ErrorIs(t, Reset(room, player), ErrNothingToReset)
}

func TestResetIdempotentAfterPartialWrite(t *testing.T) {
	// Sale reached the room but the pool write was lost: the player doc
	// still looks untouched. Reset must refund the purse and leave the
	// player doc consistent.
	room := newRoom()
	player := newPlayer(100, "India")
	openLot(t, room, player)
	require.NoError(t, Bid(room, "Team A", 100))

	phantom := player.Clone()
	require.NoError(t, MarkSold(room, phantom)) // pool write "lost"

	require.NoError(t, Reset(room, player))
	assert.Equal(t, int64(12000), room.Teams["Team A"].Purse)
	assert.Nil(t, player.SoldPrice)
	assert.Equal(t, "Set 2", player.PlayerSet)
}
