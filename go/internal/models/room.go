package models

import (
	"time"
)

// AccessType controls who may operate the host controls of a room.
type AccessType string

const (
	AccessTypePublic  AccessType = "public"
	AccessTypePrivate AccessType = "private"
)

// AuctionMode selects how bids reach the lot. In auto mode bidder devices
// self-increment; in manual mode the host sets bid and team directly.
type AuctionMode string

const (
	AuctionModeAuto   AuctionMode = "auto"
	AuctionModeManual AuctionMode = "manual"
)

// AccessMode is the host's team-count policy. It is stored and displayed but
// deliberately not enforced on join, matching observed behavior upstream.
type AccessMode string

const (
	AccessModeMin AccessMode = "min"
	AccessModeMax AccessMode = "max"
)

// AuctionState is the room-level terminal flag, independent of per-lot status.
type AuctionState string

const (
	AuctionStateNotStarted AuctionState = "notStarted"
	AuctionStateEnded      AuctionState = "ended"
)

// RoomConfig holds the host's auction configuration. Immutable after the
// auction starts in practice; nothing enforces that mid-auction.
type RoomConfig struct {
	NumTeams    int   `json:"numTeams"`
	Budget      int64 `json:"budget"`
	MaxPlayers  int   `json:"maxPlayers"`
	MaxOverseas int   `json:"maxOverseas"`
}

// Room is the single unit of consistency for one auction session: config,
// teams (with purses) and the embedded lot all live in one document so a
// sale's purse debit and status change commit together.
type Room struct {
	RoomID       string       `json:"roomId"`
	AuctionState AuctionState `json:"auctionState"`
	AccessType   AccessType   `json:"accessType"`
	CreatedBy    string       `json:"createdBy"`
	RoomConfig
	Teams map[string]*Team `json:"teams"`
	Lot
	AuctionMode    AuctionMode `json:"auctionMode"`
	JumpBidAllowed bool        `json:"jumpBidAllowed"`
	AccessMode     AccessMode  `json:"accessMode"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`

	// Version backs optimistic concurrency in the store; it is not part of
	// the document schema.
	Version int64 `json:"-"`
}

// Team returns the named team, or nil.
func (r *Room) Team(name string) *Team {
	if r.Teams == nil {
		return nil
	}
	return r.Teams[name]
}

// TeamCount returns the number of joined teams.
func (r *Room) TeamCount() int {
	return len(r.Teams)
}

// IsHostDevice reports whether the device may use mutating host controls.
// Public rooms leave the controls open; private rooms restrict them to the
// creating device.
func (r *Room) IsHostDevice(deviceID string) bool {
	if r.AccessType != AccessTypePrivate {
		return true
	}
	return r.CreatedBy == deviceID
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate shared state outside a transaction.
func (r *Room) Clone() *Room {
	cp := *r
	if r.Teams != nil {
		cp.Teams = make(map[string]*Team, len(r.Teams))
		for name, t := range r.Teams {
			cp.Teams[name] = t.Clone()
		}
	}
	cp.Lot = *r.Lot.Clone()
	return &cp
}
