package room

import (
	"github.com/google/uuid"

	"github.com/kpatel744/auctioneer/go/internal/models"
)

// CreateRoomRequest carries the host's configuration for a new room.
type CreateRoomRequest struct {
	RoomID         string             `json:"roomId"`
	DeviceID       string             `json:"deviceId"`
	AccessType     models.AccessType  `json:"accessType"`
	NumTeams       int                `json:"numTeams"`
	Budget         int64              `json:"budget"`
	MaxPlayers     int                `json:"maxPlayers"`
	MaxOverseas    int                `json:"maxOverseas"`
	AuctionMode    models.AuctionMode `json:"auctionMode"`
	JumpBidAllowed bool               `json:"jumpBidAllowed"`
	AccessMode     models.AccessMode  `json:"accessMode"`
}

// JoinTeamRequest registers a team in a room.
type JoinTeamRequest struct {
	RoomID   string `json:"roomId"`
	TeamName string `json:"teamName"`
	Theme    string `json:"theme,omitempty"`
}

// AutoBidRequest submits the next ladder increment on behalf of a team.
// ObservedBid is the bid the device last saw; a mismatch rejects the bid
// instead of silently stacking increments.
type AutoBidRequest struct {
	RoomID      string `json:"roomId"`
	TeamName    string `json:"teamName"`
	ObservedBid *int64 `json:"observedBid"`
}

// JumpBidRequest submits an arbitrary amount above the standing bid.
type JumpBidRequest struct {
	RoomID      string `json:"roomId"`
	TeamName    string `json:"teamName"`
	Amount      int64  `json:"amount"`
	ObservedBid *int64 `json:"observedBid"`
}

// ManualBidRequest is the host setting bid and team directly in manual mode.
type ManualBidRequest struct {
	RoomID   string `json:"roomId"`
	DeviceID string `json:"deviceId"`
	TeamName string `json:"teamName"`
	Amount   int64  `json:"amount"`
}

// AdjustDirection nudges the standing bid one ladder step.
type AdjustDirection string

const (
	AdjustUp   AdjustDirection = "up"
	AdjustDown AdjustDirection = "down"
)

// AdjustBidRequest is the host stepping the standing bid up or down.
type AdjustBidRequest struct {
	RoomID    string          `json:"roomId"`
	DeviceID  string          `json:"deviceId"`
	Direction AdjustDirection `json:"direction"`
}

// SelectPlayerRequest puts a player up as the current lot.
type SelectPlayerRequest struct {
	RoomID   string    `json:"roomId"`
	DeviceID string    `json:"deviceId"`
	PlayerID uuid.UUID `json:"playerId"`
}

// ConfigUpdateRequest toggles room settings mid-auction.
type ConfigUpdateRequest struct {
	RoomID         string              `json:"roomId"`
	DeviceID       string              `json:"deviceId"`
	AuctionMode    *models.AuctionMode `json:"auctionMode,omitempty"`
	JumpBidAllowed *bool               `json:"jumpBidAllowed,omitempty"`
	AccessType     *models.AccessType  `json:"accessType,omitempty"`
	AccessMode     *models.AccessMode  `json:"accessMode,omitempty"`
}
