// Package ledger tracks per-team purse balances and purchase history.
// Pure data and invariant checks; the room coordinator decides when a
// purchase or refund actually happens.
package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kpatel744/auctioneer/go/internal/models"
)

var (
	// ErrInsufficientPurse means a debit would take the purse negative.
	ErrInsufficientPurse = errors.New("insufficient purse")

	// ErrNoPurchase means a refund found no history entry for the player.
	ErrNoPurchase = errors.New("no purchase recorded for player")
)

// overseasHome is the country that does not count against the overseas cap.
const overseasHome = "India"

// Debit records a completed purchase: the purse drops by the price and the
// record is appended to the team's history. The purse is never allowed to
// go negative.
func Debit(t *models.Team, rec models.PurchaseRecord) error {
	if rec.Price > t.Purse {
		return fmt.Errorf("debit %d from purse %d: %w", rec.Price, t.Purse, ErrInsufficientPurse)
	}
	t.Purse -= rec.Price
	t.History = append(t.History, rec)
	return nil
}

// Refund undoes the purchase of the given player: the matching history
// entry is removed by player identity and its price restored to the purse.
func Refund(t *models.Team, playerID uuid.UUID) (models.PurchaseRecord, error) {
	for i, rec := range t.History {
		if rec.PlayerID == playerID {
			t.Purse += rec.Price
			t.History = append(t.History[:i], t.History[i+1:]...)
			return rec, nil
		}
	}
	return models.PurchaseRecord{}, fmt.Errorf("player %s: %w", playerID, ErrNoPurchase)
}

// Spent returns the total the team has paid across its history.
func Spent(t *models.Team) int64 {
	var total int64
	for _, rec := range t.History {
		total += rec.Price
	}
	return total
}

// OverseasCount returns how many bought players count against the overseas
// cap.
func OverseasCount(t *models.Team) int {
	n := 0
	for _, rec := range t.History {
		if rec.Country != overseasHome {
			n++
		}
	}
	return n
}

// CheckInvariants verifies purse conservation for a team against the room
// budget: the purse never goes negative and purse plus everything spent
// equals the initial budget.
func CheckInvariants(t *models.Team, budget int64) error {
	if t.Purse < 0 {
		return fmt.Errorf("team %s purse is negative: %d", t.Name, t.Purse)
	}
	if got := t.Purse + Spent(t); got != budget {
		return fmt.Errorf("team %s purse %d plus spent %d does not match budget %d",
			t.Name, t.Purse, Spent(t), budget)
	}
	return nil
}
