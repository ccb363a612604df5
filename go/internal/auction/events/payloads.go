package events

import (
	"time"
)

// Event types carried through the outbox and fanned out to room subscribers.
const (
	TypeRoomCreated   = "RoomCreated"
	TypeTeamJoined    = "TeamJoined"
	TypeTeamRemoved   = "TeamRemoved"
	TypeLotOpened     = "LotOpened"
	TypeBidPlaced     = "BidPlaced"
	TypeLotSold       = "LotSold"
	TypeLotUnsold     = "LotUnsold"
	TypeLotReset      = "LotReset"
	TypeBidderEntered = "BidderEntered"
	TypeBidderExited  = "BidderExited"
	TypeConfigChanged = "ConfigChanged"
	TypeAuctionEnded  = "AuctionEnded"
	TypeRoomDeleted   = "RoomDeleted"
)

// Event payload types shared between the auction and gateway packages

// RoomCreatedPayload is the payload for a RoomCreated event
type RoomCreatedPayload struct {
	RoomID     string    `json:"room_id"`
	AccessType string    `json:"access_type"`
	NumTeams   int       `json:"num_teams"`
	Budget     int64     `json:"budget"`
	CreatedAt  time.Time `json:"created_at"`
}

// TeamJoinedPayload is the payload for a TeamJoined event
type TeamJoinedPayload struct {
	RoomID    string    `json:"room_id"`
	TeamName  string    `json:"team_name"`
	Theme     string    `json:"theme,omitempty"`
	TeamCount int       `json:"team_count"`
	JoinedAt  time.Time `json:"joined_at"`
}

// TeamRemovedPayload is the payload for a TeamRemoved event
type TeamRemovedPayload struct {
	RoomID    string    `json:"room_id"`
	TeamName  string    `json:"team_name"`
	RemovedAt time.Time `json:"removed_at"`
}

// LotOpenedPayload is the payload for a LotOpened event
type LotOpenedPayload struct {
	RoomID     string    `json:"room_id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	PlayerSet  string    `json:"player_set"`
	BasePrice  int64     `json:"base_price"`
	OpenedAt   time.Time `json:"opened_at"`
}

// BidPlacedPayload is the payload for a BidPlaced event
type BidPlacedPayload struct {
	RoomID   string    `json:"room_id"`
	PlayerID string    `json:"player_id"`
	TeamName string    `json:"team_name"`
	Amount   int64     `json:"amount"`
	JumpBid  bool      `json:"jump_bid,omitempty"`
	HostSet  bool      `json:"host_set,omitempty"`
	PlacedAt time.Time `json:"placed_at"`
}

// LotSoldPayload is the payload for a LotSold event
type LotSoldPayload struct {
	RoomID     string    `json:"room_id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	TeamName   string    `json:"team_name"`
	Price      int64     `json:"price"`
	SoldAt     time.Time `json:"sold_at"`
}

// LotUnsoldPayload is the payload for a LotUnsold event
type LotUnsoldPayload struct {
	RoomID     string    `json:"room_id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	UnsoldAt   time.Time `json:"unsold_at"`
}

// LotResetPayload is the payload for a LotReset event
type LotResetPayload struct {
	RoomID   string    `json:"room_id"`
	PlayerID string    `json:"player_id"`
	ResetAt  time.Time `json:"reset_at"`
}

// BidderPresencePayload is the payload for BidderEntered and BidderExited events
type BidderPresencePayload struct {
	RoomID   string    `json:"room_id"`
	TeamName string    `json:"team_name"`
	At       time.Time `json:"at"`
}

// ConfigChangedPayload is the payload for a ConfigChanged event
type ConfigChangedPayload struct {
	RoomID         string    `json:"room_id"`
	AuctionMode    string    `json:"auction_mode"`
	JumpBidAllowed bool      `json:"jump_bid_allowed"`
	AccessType     string    `json:"access_type"`
	AccessMode     string    `json:"access_mode"`
	ChangedAt      time.Time `json:"changed_at"`
}

// AuctionEndedPayload is the payload for an AuctionEnded event
type AuctionEndedPayload struct {
	RoomID  string    `json:"room_id"`
	EndedAt time.Time `json:"ended_at"`
}

// RoomDeletedPayload is the payload for a RoomDeleted event
type RoomDeletedPayload struct {
	RoomID    string    `json:"room_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
