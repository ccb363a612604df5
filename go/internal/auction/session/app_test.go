package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpatel744/auctioneer/go/internal/auction/bidengine"
	"github.com/kpatel744/auctioneer/go/internal/auction/room"
	"github.com/kpatel744/auctioneer/go/internal/models"
	"github.com/kpatel744/auctioneer/go/internal/store/memory"
)

type fixture struct {
	sessions *App
	rooms    *room.App
	store    *memory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	rooms := room.NewApp(s.Rooms(), s.Players(), nil, bidengine.DefaultLadder())
	return &fixture{
		sessions: NewApp(NewMemoryStorage(), rooms, bidengine.DefaultLadder()),
		rooms:    rooms,
		store:    s,
	}
}

func (f *fixture) createRoom(t *testing.T) {
	t.Helper()
	_, err := f.rooms.CreateRoom(context.Background(), room.CreateRoomRequest{
		RoomID: "room-1", DeviceID: "host-device", NumTeams: 2,
	})
	require.NoError(t, err)
}

func (f *fixture) openLot(t *testing.T, basePrice int64) uuid.UUID {
	t.Helper()
	player := &models.Player{
		PlayerSnapshot: models.PlayerSnapshot{
			ID:        uuid.New(),
			Name:      "S Gill",
			PlayerSet: "Set 1",
			BasePrice: basePrice,
			Country:   "India",
		},
		OriginalSet: "Set 1",
	}
	require.NoError(t, f.store.Players().CreatePlayer(context.Background(), "room-1", player))
	_, err := f.rooms.SelectPlayer(context.Background(), room.SelectPlayerRequest{
		RoomID: "room-1", DeviceID: "host-device", PlayerID: player.ID,
	})
	require.NoError(t, err)
	return player.ID
}

func TestJoinAndResume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createRoom(t)

	sess, rm, err := f.sessions.Join(ctx, "device-1", room.JoinTeamRequest{
		RoomID: "room-1", TeamName: "Team A",
	})
	require.NoError(t, err)
	assert.Equal(t, "Team A", sess.TeamName)
	assert.Contains(t, rm.Teams, "Team A")

	sess, rm, err = f.sessions.Resume(ctx, "device-1")
	require.NoError(t, err)
	assert.Equal(t, "room-1", sess.RoomID)
	assert.Contains(t, rm.Teams, "Team A")

	_, _, err = f.sessions.Resume(ctx, "unknown-device")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResumeAfterTeamRemoved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createRoom(t)

	_, _, err := f.sessions.Join(ctx, "device-1", room.JoinTeamRequest{
		RoomID: "room-1", TeamName: "Team A",
	})
	require.NoError(t, err)

	_, err = f.rooms.RemoveTeam(ctx, "room-1", "host-device", "Team A")
	require.NoError(t, err)

	_, _, err = f.sessions.Resume(ctx, "device-1")
	assert.ErrorIs(t, err, ErrRemovedParticipant)

	// The stale binding is gone; the next resume reports no session.
	_, _, err = f.sessions.Resume(ctx, "device-1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResumeAfterRoomDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createRoom(t)

	_, _, err := f.sessions.Join(ctx, "device-1", room.JoinTeamRequest{
		RoomID: "room-1", TeamName: "Team A",
	})
	require.NoError(t, err)

	require.NoError(t, f.rooms.DeleteRoom(ctx, "room-1", "host-device"))

	_, _, err = f.sessions.Resume(ctx, "device-1")
	assert.ErrorIs(t, err, room.ErrRoomNotFound)

	_, _, err = f.sessions.Resume(ctx, "device-1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestBidThroughSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createRoom(t)

	_, _, err := f.sessions.Join(ctx, "device-1", room.JoinTeamRequest{RoomID: "room-1", TeamName: "Team A"})
	require.NoError(t, err)
	_, _, err = f.sessions.Join(ctx, "device-2", room.JoinTeamRequest{RoomID: "room-1", TeamName: "Team B"})
	require.NoError(t, err)
	f.openLot(t, 50)

	rm, err := f.sessions.Bid(ctx, "device-1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(50), *rm.CurrentBid)

	observed := int64(50)
	rm, err = f.sessions.Bid(ctx, "device-2", &observed)
	require.NoError(t, err)
	assert.Equal(t, int64(60), *rm.CurrentBid)
	assert.Equal(t, "Team B", *rm.CurrentBidTeam)

	// A device that saw the pre-bid lot is rejected.
	_, err = f.sessions.Bid(ctx, "device-1", nil)
	assert.ErrorIs(t, err, room.ErrBidConflict)
}

func TestEnterExitThroughSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createRoom(t)

	_, _, err := f.sessions.Join(ctx, "device-1", room.JoinTeamRequest{RoomID: "room-1", TeamName: "Team A"})
	require.NoError(t, err)
	f.openLot(t, 50)

	rm, err := f.sessions.Enter(ctx, "device-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Team A"}, rm.ActiveBidders)

	rm, err = f.sessions.Exit(ctx, "device-1")
	require.NoError(t, err)
	assert.Empty(t, rm.ActiveBidders)
}

func TestEligibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createRoom(t)

	_, _, err := f.sessions.Join(ctx, "device-1", room.JoinTeamRequest{RoomID: "room-1", TeamName: "Team A"})
	require.NoError(t, err)
	_, _, err = f.sessions.Join(ctx, "device-2", room.JoinTeamRequest{RoomID: "room-1", TeamName: "Team B"})
	require.NoError(t, err)

	// No lot open yet.
	el, err := f.sessions.Eligibility(ctx, "device-1")
	require.NoError(t, err)
	assert.False(t, el.CanBid)
	assert.Equal(t, "no open lot", el.Reason)

	f.openLot(t, 50)

	el, err = f.sessions.Eligibility(ctx, "device-1")
	require.NoError(t, err)
	assert.True(t, el.CanBid)
	assert.Equal(t, int64(50), el.NextBid)

	// After bidding, the holder is blocked and the rival sees the next step.
	_, err = f.sessions.Bid(ctx, "device-1", nil)
	require.NoError(t, err)

	el, err = f.sessions.Eligibility(ctx, "device-1")
	require.NoError(t, err)
	assert.False(t, el.CanBid)
	assert.Equal(t, "team holds the current bid", el.Reason)

	el, err = f.sessions.Eligibility(ctx, "device-2")
	require.NoError(t, err)
	assert.True(t, el.CanBid)
	assert.Equal(t, int64(60), el.NextBid)
}

func TestEvaluateInsufficientPurse(t *testing.T) {
	rm := &models.Room{
		RoomID:     "room-1",
		RoomConfig: models.RoomConfig{NumTeams: 2, Budget: 100, MaxPlayers: 25, MaxOverseas: 8},
		Teams: map[string]*models.Team{
			"Team A": {Name: "Team A", Purse: 40},
		},
	}
	bid := int64(90)
	holder := "Team B"
	rm.CurrentPlayer = &models.PlayerSnapshot{ID: uuid.New(), Name: "X", BasePrice: 50, Country: "India"}
	rm.CurrentBid = &bid
	rm.CurrentBidTeam = &holder

	el := Evaluate(rm, "Team A", bidengine.DefaultLadder())
	assert.False(t, el.CanBid)
	assert.Equal(t, "insufficient purse", el.Reason)
}
