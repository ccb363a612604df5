package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kpatel744/auctioneer/go/internal/auction/events"
)

func TestEventTypeMapping(t *testing.T) {
	for _, name := range []string{
		events.TypeRoomCreated,
		events.TypeTeamJoined,
		events.TypeTeamRemoved,
		events.TypeLotOpened,
		events.TypeBidPlaced,
		events.TypeLotSold,
		events.TypeLotUnsold,
		events.TypeLotReset,
		events.TypeBidderEntered,
		events.TypeBidderExited,
		events.TypeConfigChanged,
		events.TypeAuctionEnded,
		events.TypeRoomDeleted,
	} {
		et, err := eventTypeFromString(name)
		require.NoError(t, err, name)
		require.Equal(t, name, string(et))
	}

	_, err := eventTypeFromString("TrophyAwarded")
	require.Error(t, err)
}

func TestParseEventPayload(t *testing.T) {
	placed := events.BidPlacedPayload{
		RoomID:   "room-1",
		PlayerID: "4f1c0f36-9a0e-4a0e-9d6f-2d4f4e6a1b22",
		TeamName: "Strikers",
		Amount:   125,
		JumpBid:  true,
		PlacedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(placed)
	require.NoError(t, err)

	event := &RoomEvent{
		ID:        "evt-1",
		RoomID:    "room-1",
		Type:      EventTypeBidPlaced,
		Timestamp: time.Now(),
		Data:      data,
	}

	parsed, err := ParseEventPayload(event)
	require.NoError(t, err)
	payload, ok := parsed.(*events.BidPlacedPayload)
	require.True(t, ok)
	require.Equal(t, placed.TeamName, payload.TeamName)
	require.Equal(t, placed.Amount, payload.Amount)
	require.True(t, payload.JumpBid)
}

func TestParseEventPayloadPresenceShapes(t *testing.T) {
	presence := events.BidderPresencePayload{RoomID: "room-1", TeamName: "Titans", At: time.Now().UTC()}
	data, err := json.Marshal(presence)
	require.NoError(t, err)

	for _, et := range []EventType{EventTypeBidderEntered, EventTypeBidderExited} {
		parsed, err := ParseEventPayload(&RoomEvent{ID: "evt", RoomID: "room-1", Type: et, Data: data})
		require.NoError(t, err)
		payload, ok := parsed.(*events.BidderPresencePayload)
		require.True(t, ok)
		require.Equal(t, "Titans", payload.TeamName)
	}
}

func TestParseEventPayloadUnknownType(t *testing.T) {
	_, err := ParseEventPayload(&RoomEvent{Type: EventType("TrophyAwarded"), Data: []byte(`{}`)})
	require.Error(t, err)
}
