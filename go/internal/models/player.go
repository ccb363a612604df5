package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayerSnapshot is the sanitized view of a player installed on a lot when
// the host puts the player up. It is frozen for the duration of the lot; a
// new selection always replaces the whole snapshot.
type PlayerSnapshot struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	JerseyNumber string    `json:"jerseyNumber"`
	PlayerSet    string    `json:"playerSet"`
	Category     string    `json:"category"`
	Role         string    `json:"role"`
	BasePrice    int64     `json:"basePrice"`
	Country      string    `json:"country"`
	ImageURL     *string   `json:"imageURL"`
}

// Player is a global pool document. Rooms snapshot it for the lot; the pool
// copy carries the post-auction write-backs (sold price, winning team,
// status) and the pre-auction grouping so an unsold player can later be
// returned from the holding set to its set of origin.
type Player struct {
	PlayerSnapshot
	OriginalSet string     `json:"originalSet"`
	SoldPrice   *int64     `json:"soldPrice"`
	Team        *string    `json:"team"`
	Status      *LotStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`

	Version int64 `json:"-"`
}

// Snapshot returns the lot-safe view of the player.
func (p *Player) Snapshot() PlayerSnapshot {
	return p.PlayerSnapshot
}

// Clone returns a deep copy of the player document.
func (p *Player) Clone() *Player {
	cp := *p
	if p.ImageURL != nil {
		u := *p.ImageURL
		cp.ImageURL = &u
	}
	if p.SoldPrice != nil {
		v := *p.SoldPrice
		cp.SoldPrice = &v
	}
	if p.Team != nil {
		t := *p.Team
		cp.Team = &t
	}
	if p.Status != nil {
		s := *p.Status
		cp.Status = &s
	}
	return &cp
}
