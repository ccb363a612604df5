package models

import "github.com/google/uuid"

// PurchaseRecord is one entry in a team's purchase history. The player id is
// the undo key: a reset removes the matching entry by player identity.
type PurchaseRecord struct {
	PlayerID   uuid.UUID `json:"id"`
	PlayerName string    `json:"playerName"`
	Price      int64     `json:"price"`
	Country    string    `json:"country"`
}

// Team is one bidding participant inside a room. Purse starts at the room
// budget and only moves through completed purchases and their undos.
type Team struct {
	Name    string           `json:"name"`
	Theme   string           `json:"theme"`
	Purse   int64            `json:"purse"`
	History []PurchaseRecord `json:"history"`
}

// Clone returns a deep copy of the team.
func (t *Team) Clone() *Team {
	cp := *t
	if t.History != nil {
		cp.History = make([]PurchaseRecord, len(t.History))
		copy(cp.History, t.History)
	}
	return &cp
}
