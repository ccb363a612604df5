package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kpatel744/auctioneer/go/internal/auction/events"
)

// EventType represents the type of room event pushed to WebSocket clients
type EventType string

const (
	EventTypeRoomCreated   EventType = "RoomCreated"
	EventTypeTeamJoined    EventType = "TeamJoined"
	EventTypeTeamRemoved   EventType = "TeamRemoved"
	EventTypeLotOpened     EventType = "LotOpened"
	EventTypeBidPlaced     EventType = "BidPlaced"
	EventTypeLotSold       EventType = "LotSold"
	EventTypeLotUnsold     EventType = "LotUnsold"
	EventTypeLotReset      EventType = "LotReset"
	EventTypeBidderEntered EventType = "BidderEntered"
	EventTypeBidderExited  EventType = "BidderExited"
	EventTypeConfigChanged EventType = "ConfigChanged"
	EventTypeAuctionEnded  EventType = "AuctionEnded"
	EventTypeRoomDeleted   EventType = "RoomDeleted"
)

// RoomEvent represents an event frame sent to room subscribers
type RoomEvent struct {
	ID        string          `json:"id"`
	RoomID    string          `json:"room_id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// eventTypeFromString maps an outbox event type to the WebSocket event type
func eventTypeFromString(eventType string) (EventType, error) {
	switch eventType {
	case events.TypeRoomCreated:
		return EventTypeRoomCreated, nil
	case events.TypeTeamJoined:
		return EventTypeTeamJoined, nil
	case events.TypeTeamRemoved:
		return EventTypeTeamRemoved, nil
	case events.TypeLotOpened:
		return EventTypeLotOpened, nil
	case events.TypeBidPlaced:
		return EventTypeBidPlaced, nil
	case events.TypeLotSold:
		return EventTypeLotSold, nil
	case events.TypeLotUnsold:
		return EventTypeLotUnsold, nil
	case events.TypeLotReset:
		return EventTypeLotReset, nil
	case events.TypeBidderEntered:
		return EventTypeBidderEntered, nil
	case events.TypeBidderExited:
		return EventTypeBidderExited, nil
	case events.TypeConfigChanged:
		return EventTypeConfigChanged, nil
	case events.TypeAuctionEnded:
		return EventTypeAuctionEnded, nil
	case events.TypeRoomDeleted:
		return EventTypeRoomDeleted, nil
	default:
		return "", fmt.Errorf("unknown event type: %s", eventType)
	}
}

// ParseEventPayload parses the raw payload of a room event into its typed form
func ParseEventPayload(event *RoomEvent) (interface{}, error) {
	switch event.Type {
	case EventTypeRoomCreated:
		var payload events.RoomCreatedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal RoomCreated payload: %w", err)
		}
		return &payload, nil
	case EventTypeTeamJoined:
		var payload events.TeamJoinedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal TeamJoined payload: %w", err)
		}
		return &payload, nil
	case EventTypeTeamRemoved:
		var payload events.TeamRemovedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal TeamRemoved payload: %w", err)
		}
		return &payload, nil
	case EventTypeLotOpened:
		var payload events.LotOpenedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal LotOpened payload: %w", err)
		}
		return &payload, nil
	case EventTypeBidPlaced:
		var payload events.BidPlacedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal BidPlaced payload: %w", err)
		}
		return &payload, nil
	case EventTypeLotSold:
		var payload events.LotSoldPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal LotSold payload: %w", err)
		}
		return &payload, nil
	case EventTypeLotUnsold:
		var payload events.LotUnsoldPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal LotUnsold payload: %w", err)
		}
		return &payload, nil
	case EventTypeLotReset:
		var payload events.LotResetPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal LotReset payload: %w", err)
		}
		return &payload, nil
	case EventTypeBidderEntered, EventTypeBidderExited:
		var payload events.BidderPresencePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal bidder presence payload: %w", err)
		}
		return &payload, nil
	case EventTypeConfigChanged:
		var payload events.ConfigChangedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal ConfigChanged payload: %w", err)
		}
		return &payload, nil
	case EventTypeAuctionEnded:
		var payload events.AuctionEndedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal AuctionEnded payload: %w", err)
		}
		return &payload, nil
	case EventTypeRoomDeleted:
		var payload events.RoomDeletedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal RoomDeleted payload: %w", err)
		}
		return &payload, nil
	default:
		return nil, fmt.Errorf("unknown event type: %s", event.Type)
	}
}
