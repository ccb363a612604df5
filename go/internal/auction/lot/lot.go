// Package lot implements the auction round state machine: EMPTY -> OPEN ->
// RESOLVED(SOLD|UNSOLD), with RESET returning a resolved (or stray-bid) lot
// to OPEN. Transitions mutate the room document, and for resolution also the
// player pool document, but perform no I/O themselves; the room coordinator
// applies them inside store transactions.
package lot

import (
	"errors"
	"fmt"

	"github.com/kpatel744/auctioneer/go/internal/auction/ledger"
	"github.com/kpatel744/auctioneer/go/internal/models"
)

// unsoldHoldingSet is where an unsold player is parked until a reset or a
// later round returns it to its set of origin.
const unsoldHoldingSet = "UnSold"

// defaultSet is the fallback grouping when a player carries no set at all.
const defaultSet = "Set 1"

var (
	ErrNoPlayerSelected  = errors.New("no player selected on the lot")
	ErrLotNotOpen        = errors.New("lot is not open for bidding")
	ErrLotResolved       = errors.New("lot already resolved")
	ErrManualMode        = errors.New("bids are host-set in manual mode")
	ErrBidTooLow         = errors.New("bid does not exceed current price")
	ErrInsufficientPurse = errors.New("bid exceeds team purse")
	ErrSelfOutbid        = errors.New("team already holds the current bid")
	ErrRosterFull        = errors.New("team roster is full")
	ErrOverseasFull      = errors.New("team overseas quota is full")
	ErrTeamNotFound      = errors.New("team not joined in this room")
	ErrNoBid             = errors.New("no bid on the lot")
	ErrBidPresent        = errors.New("a bid is present on the lot")
	ErrNothingToReset    = errors.New("nothing on the lot to reset")
)

// Select puts a player on the block, replacing whatever the lot held. Every
// per-round field is cleared so devices joining mid-round see a clean state.
// Active bidders are cleared too: sessions drop their entered flag on
// observing the player change, so carrying the old list forward would only
// show stale names.
func Select(room *models.Room, snap models.PlayerSnapshot) error {
	if snap.Name == "" {
		return fmt.Errorf("select: empty player snapshot: %w", ErrNoPlayerSelected)
	}
	room.CurrentPlayer = &snap
	room.ClearBid()
	room.Lot.Status = nil
	room.ActiveBidders = nil
	return nil
}

// Bid applies a validated bid from a team. Only legal while the lot is OPEN
// in auto mode. The amount must strictly exceed the current effective price:
// the opening bid may equal the base price, every later bid must beat the
// standing one. The team must cover the amount, must not already hold the
// bid, and must have roster and overseas headroom.
func Bid(room *models.Room, teamName string, amount int64) error {
	if !room.HasPlayer() {
		return ErrNoPlayerSelected
	}
	if room.IsResolved() {
		return fmt.Errorf("bid after %s: %w", *room.Lot.Status, ErrLotNotOpen)
	}
	if room.AuctionMode == models.AuctionModeManual {
		return ErrManualMode
	}
	team := room.Team(teamName)
	if team == nil {
		return fmt.Errorf("bid by %q: %w", teamName, ErrTeamNotFound)
	}
	if room.HasBid() {
		// A host-adjusted price carries no team; it is only a floor to beat.
		if room.CurrentBidTeam != nil && *room.CurrentBidTeam == teamName {
			return ErrSelfOutbid
		}
		if amount <= *room.CurrentBid {
			return fmt.Errorf("bid %d against standing %d: %w", amount, *room.CurrentBid, ErrBidTooLow)
		}
	} else if amount < room.CurrentPlayer.BasePrice {
		return fmt.Errorf("opening bid %d below base %d: %w", amount, room.CurrentPlayer.BasePrice, ErrBidTooLow)
	}
	if amount > team.Purse {
		return fmt.Errorf("bid %d with purse %d: %w", amount, team.Purse, ErrInsufficientPurse)
	}
	if len(team.History) >= room.MaxPlayers {
		return ErrRosterFull
	}
	if room.CurrentPlayer.Country != "India" && ledger.OverseasCount(team) >= room.MaxOverseas {
		return ErrOverseasFull
	}
	room.CurrentBid = &amount
	room.CurrentBidTeam = &teamName
	return nil
}

// HostBid places a bid on behalf of a team in manual mode. The host is free
// to set any amount at or above base price; purse and quota checks still
// apply.
func HostBid(room *models.Room, teamName string, amount int64) error {
	if !room.HasPlayer() {
		return ErrNoPlayerSelected
	}
	if room.IsResolved() {
		return fmt.Errorf("bid after %s: %w", *room.Lot.Status, ErrLotNotOpen)
	}
	team := room.Team(teamName)
	if team == nil {
		return fmt.Errorf("bid by %q: %w", teamName, ErrTeamNotFound)
	}
	if amount < room.CurrentPlayer.BasePrice {
		return fmt.Errorf("bid %d below base %d: %w", amount, room.CurrentPlayer.BasePrice, ErrBidTooLow)
	}
	if amount > team.Purse {
		return fmt.Errorf("bid %d with purse %d: %w", amount, team.Purse, ErrInsufficientPurse)
	}
	if len(team.History) >= room.MaxPlayers {
		return ErrRosterFull
	}
	if room.CurrentPlayer.Country != "India" && ledger.OverseasCount(team) >= room.MaxOverseas {
		return ErrOverseasFull
	}
	room.CurrentBid = &amount
	room.CurrentBidTeam = &teamName
	return nil
}

// MarkSold resolves the lot to the current high bidder: the winning team's
// purse is debited, a history record appended, the player document updated
// with the sale, and the lot status set to SOLD. Preconditions are
// caller-guarded; a nil player (snapshot without a pool document) skips the
// pool write-back.
func MarkSold(room *models.Room, player *models.Player) error {
	if !room.HasPlayer() {
		return ErrNoPlayerSelected
	}
	if room.IsResolved() {
		return fmt.Errorf("sold after %s: %w", *room.Lot.Status, ErrLotResolved)
	}
	if !room.HasBid() || room.CurrentBidTeam == nil {
		return ErrNoBid
	}
	teamName := *room.CurrentBidTeam
	team := room.Team(teamName)
	if team == nil {
		return fmt.Errorf("sold to %q: %w", teamName, ErrTeamNotFound)
	}
	price := *room.CurrentBid
	snap := room.CurrentPlayer
	if err := ledger.Debit(team, models.PurchaseRecord{
		PlayerID:   snap.ID,
		PlayerName: snap.Name,
		Price:      price,
		Country:    snap.Country,
	}); err != nil {
		return err
	}
	status := models.LotStatusSold
	room.Lot.Status = &status

	if player != nil {
		ApplySold(player, teamName, price)
	}
	return nil
}

// ApplySold writes a sale onto the player document. Absolute assignments so
// a replay after a partial failure converges on the same state.
func ApplySold(player *models.Player, teamName string, price int64) {
	status := models.LotStatusSold
	player.SoldPrice = &price
	player.Team = &teamName
	player.Status = &status
}

// MarkUnsold resolves a lot that attracted no bids: the player moves to the
// holding set (its set of origin preserved in OriginalSet), sold fields are
// cleared and the lot status set to UNSOLD. Rejected while a bid stands.
func MarkUnsold(room *models.Room, player *models.Player) error {
	if !room.HasPlayer() {
		return ErrNoPlayerSelected
	}
	if room.IsResolved() {
		return fmt.Errorf("unsold after %s: %w", *room.Lot.Status, ErrLotResolved)
	}
	if room.HasBid() {
		return fmt.Errorf("unsold with bid %d standing: %w", *room.CurrentBid, ErrBidPresent)
	}
	status := models.LotStatusUnsold
	room.Lot.Status = &status

	if player != nil {
		ApplyUnsold(player)
	}
	return nil
}

// ApplyUnsold moves the player document to the holding set, preserving its
// set of origin.
func ApplyUnsold(player *models.Player) {
	status := models.LotStatusUnsold
	if player.OriginalSet == "" {
		player.OriginalSet = fallbackSet(player.PlayerSet)
	}
	player.PlayerSet = unsoldHoldingSet
	player.SoldPrice = nil
	player.Team = nil
	player.Status = &status
}

// Reset voids the lot's resolution, or a stray bid the host wants gone, and
// returns the lot to OPEN with the same player displayed. Undoing a sale
// refunds the purse and drops the matching history entry; undoing either
// resolution returns the player to its set of origin. Each undo step checks
// its own precondition so a reset stays safe to apply after a partial
// write (room updated, player write lost, or the reverse).
func Reset(room *models.Room, player *models.Player) error {
	if !room.HasPlayer() {
		return ErrNoPlayerSelected
	}
	if !room.IsResolved() && !room.HasBid() {
		return ErrNothingToReset
	}
	snap := room.CurrentPlayer

	if room.Lot.Status != nil && *room.Lot.Status == models.LotStatusSold && room.CurrentBidTeam != nil {
		if team := room.Team(*room.CurrentBidTeam); team != nil {
			// Refund only if the sale actually reached the history.
			if _, err := ledger.Refund(team, snap.ID); err != nil && !errors.Is(err, ledger.ErrNoPurchase) {
				return err
			}
		}
	}

	if player != nil && room.IsResolved() {
		ApplyReset(player)
	}

	room.ClearBid()
	room.Lot.Status = nil
	room.ActiveBidders = nil
	return nil
}

// ApplyReset returns the player document to its pre-lot state.
func ApplyReset(player *models.Player) {
	player.SoldPrice = nil
	player.Team = nil
	player.Status = nil
	player.PlayerSet = fallbackSet(player.OriginalSet)
}

func fallbackSet(set string) string {
	if set == "" {
		return defaultSet
	}
	return set
}
