package models

// LotStatus is the resolution of a lot. A nil status means the lot is still
// open for bidding.
type LotStatus string

const (
	LotStatusSold   LotStatus = "SOLD"
	LotStatusUnsold LotStatus = "UNSOLD"
)

// Lot is the current auction round, embedded in the room document. It holds
// exactly one player under active or just-resolved bidding.
//
// A bid normally carries its team. The one exception is a host-adjusted
// price, which sets CurrentBid with a nil CurrentBidTeam until a team bids.
type Lot struct {
	CurrentPlayer  *PlayerSnapshot `json:"currentPlayer"`
	CurrentBid     *int64          `json:"currentBid"`
	CurrentBidTeam *string         `json:"currentBidTeam"`
	Status         *LotStatus      `json:"status"`
	ActiveBidders  []string        `json:"activeBidders,omitempty"`
}

// HasPlayer reports whether a player is on the block.
func (l *Lot) HasPlayer() bool { return l.CurrentPlayer != nil }

// HasBid reports whether any team has bid on the current lot.
func (l *Lot) HasBid() bool { return l.CurrentBid != nil }

// IsOpen reports whether the lot accepts bids: a player is selected and no
// resolution has been recorded.
func (l *Lot) IsOpen() bool { return l.CurrentPlayer != nil && l.Status == nil }

// IsResolved reports whether the lot ended SOLD or UNSOLD.
func (l *Lot) IsResolved() bool { return l.Status != nil }

// ClearBid drops the bid and bidding team together.
func (l *Lot) ClearBid() {
	l.CurrentBid = nil
	l.CurrentBidTeam = nil
}

// Clone returns a deep copy of the lot.
func (l *Lot) Clone() *Lot {
	cp := *l
	if l.CurrentPlayer != nil {
		snap := *l.CurrentPlayer
		cp.CurrentPlayer = &snap
	}
	if l.CurrentBid != nil {
		bid := *l.CurrentBid
		cp.CurrentBid = &bid
	}
	if l.CurrentBidTeam != nil {
		team := *l.CurrentBidTeam
		cp.CurrentBidTeam = &team
	}
	if l.Status != nil {
		status := *l.Status
		cp.Status = &status
	}
	if l.ActiveBidders != nil {
		cp.ActiveBidders = make([]string, len(l.ActiveBidders))
		copy(cp.ActiveBidders, l.ActiveBidders)
	}
	return &cp
}
