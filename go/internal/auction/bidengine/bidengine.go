// Package bidengine computes legal bid values: the tiered auto-increment
// ladder, host-side decrements and jump-bid validation. Pure functions, no
// I/O and no room state.
package bidengine

import (
	"errors"
	"fmt"
)

// ErrJumpBidRejected is returned for a jump bid that is non-positive or
// exceeds the team's purse.
var ErrJumpBidRejected = errors.New("jump bid exceeds purse or is non-positive")

// Tier maps a price bracket to a step size. A price below Below moves in
// increments of Step. Brackets are evaluated on the pre-increment price.
type Tier struct {
	Below int64 `yaml:"below" json:"below"`
	Step  int64 `yaml:"step" json:"step"`
}

// Ladder is the increment schedule for an auction. Tiers keep early
// low-value bidding brisk while high-value bidding moves in coarse steps;
// FinalStep applies above the last tier.
type Ladder struct {
	Tiers     []Tier `yaml:"tiers" json:"tiers"`
	FinalStep int64  `yaml:"finalStep" json:"finalStep"`
}

// DefaultLadder returns the standard schedule: +10 below 100, +25 below
// 1500, +50 beyond.
func DefaultLadder() Ladder {
	return Ladder{
		Tiers: []Tier{
			{Below: 100, Step: 10},
			{Below: 1500, Step: 25},
		},
		FinalStep: 50,
	}
}

// Validate rejects ladders that could stall the auction.
func (l Ladder) Validate() error {
	var prev int64
	for _, t := range l.Tiers {
		if t.Step <= 0 {
			return fmt.Errorf("tier below %d has non-positive step %d", t.Below, t.Step)
		}
		if t.Below <= prev {
			return fmt.Errorf("tier bounds must be strictly increasing, got %d after %d", t.Below, prev)
		}
		prev = t.Below
	}
	if l.FinalStep <= 0 {
		return fmt.Errorf("final step must be positive, got %d", l.FinalStep)
	}
	return nil
}

// Increment returns the step to add at the given pre-increment price.
func (l Ladder) Increment(price int64) int64 {
	for _, t := range l.Tiers {
		if price < t.Below {
			return t.Step
		}
	}
	return l.FinalStep
}

// NextAutoBid returns the next legal auto bid. With no bid on the lot the
// opening bid is the base price; otherwise the current bid plus its tier
// increment. A current bid below the base price (host-adjusted down) snaps
// back to the base price.
func (l Ladder) NextAutoBid(currentBid *int64, basePrice int64) int64 {
	if currentBid == nil || *currentBid < basePrice {
		return basePrice
	}
	return *currentBid + l.Increment(*currentBid)
}

// DecreaseBid mirrors the increment ladder downward, never below floor.
// Host-only pre-bid adjustment; bidder sessions never decrement.
func (l Ladder) DecreaseBid(currentBid *int64, floor int64) int64 {
	if currentBid == nil || *currentBid <= floor {
		return floor
	}
	next := *currentBid - l.Increment(*currentBid)
	if next < floor {
		return floor
	}
	return next
}

// ApplyJumpBid validates a bidder-chosen amount that need not follow the
// ladder. Accepted iff 0 < requested <= purse.
func ApplyJumpBid(requested, purse int64) (int64, error) {
	if requested <= 0 || requested > purse {
		return 0, fmt.Errorf("jump bid %d with purse %d: %w", requested, purse, ErrJumpBidRejected)
	}
	return requested, nil
}
