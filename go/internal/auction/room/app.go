package room

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kpatel744/auctioneer/go/internal/auction/bidengine"
	"github.com/kpatel744/auctioneer/go/internal/auction/events"
	"github.com/kpatel744/auctioneer/go/internal/auction/lot"
	"github.com/kpatel744/auctioneer/go/internal/models"
	"github.com/kpatel744/auctioneer/go/internal/store"
)

// Room defaults applied when the host leaves fields unset.
const (
	DefaultBudget      = 12000
	DefaultMaxPlayers  = 25
	DefaultMaxOverseas = 8
)

// EventSink receives room events after a successful mutation. Delivery is
// best effort; a failed emit is logged, never rolled back.
type EventSink interface {
	Emit(ctx context.Context, roomID, eventType string, payload any) error
}

// App coordinates all room mutations. Every write goes through the store's
// compare-and-update transaction, so two devices racing on the same room
// never lose a change silently.
type App struct {
	rooms   store.RoomRepository
	players store.PlayerRepository
	sink    EventSink
	ladder  bidengine.Ladder
}

// NewApp creates a new room App
func NewApp(rooms store.RoomRepository, players store.PlayerRepository, sink EventSink, ladder bidengine.Ladder) *App {
	return &App{
		rooms:   rooms,
		players: players,
		sink:    sink,
		ladder:  ladder,
	}
}

// CreateRoom creates a new room with validation and defaults
func (a *App) CreateRoom(ctx context.Context, req CreateRoomRequest) (*models.Room, error) {
	if req.RoomID == "" {
		return nil, fmt.Errorf("roomId is required: %w", ErrValidation)
	}
	if req.DeviceID == "" {
		return nil, fmt.Errorf("deviceId is required: %w", ErrValidation)
	}
	if req.NumTeams <= 0 {
		return nil, fmt.Errorf("numTeams must be positive: %w", ErrValidation)
	}
	if req.Budget == 0 {
		req.Budget = DefaultBudget
	}
	if req.Budget < 0 {
		return nil, fmt.Errorf("budget must be positive: %w", ErrValidation)
	}
	if req.MaxPlayers <= 0 {
		req.MaxPlayers = DefaultMaxPlayers
	}
	if req.MaxOverseas <= 0 {
		req.MaxOverseas = DefaultMaxOverseas
	}
	if req.AccessType == "" {
		req.AccessType = models.AccessTypePublic
	}
	if req.AuctionMode == "" {
		req.AuctionMode = models.AuctionModeAuto
	}
	if req.AccessMode == "" {
		req.AccessMode = models.AccessModeMax
	}

	now := time.Now().UTC()
	room := &models.Room{
		RoomID:       req.RoomID,
		AuctionState: models.AuctionStateNotStarted,
		AccessType:   req.AccessType,
		CreatedBy:    req.DeviceID,
		RoomConfig: models.RoomConfig{
			NumTeams:    req.NumTeams,
			Budget:      req.Budget,
			MaxPlayers:  req.MaxPlayers,
			MaxOverseas: req.MaxOverseas,
		},
		Teams:          make(map[string]*models.Team),
		AuctionMode:    req.AuctionMode,
		JumpBidAllowed: req.JumpBidAllowed,
		AccessMode:     req.AccessMode,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := a.rooms.CreateRoom(ctx, room); err != nil {
		if errors.Is(err, store.ErrExists) {
			return nil, fmt.Errorf("room %q: %w", req.RoomID, ErrRoomExists)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	log.Printf("Created room %s (%s, %d teams, budget %d)", room.RoomID, room.AccessType, room.NumTeams, room.Budget)

	a.emit(ctx, room.RoomID, events.TypeRoomCreated, events.RoomCreatedPayload{
		RoomID:     room.RoomID,
		AccessType: string(room.AccessType),
		NumTeams:   room.NumTeams,
		Budget:     room.Budget,
		CreatedAt:  now,
	})
	return room, nil
}

// GetRoom retrieves a room by ID
func (a *App) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := a.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, a.mapRoomErr(roomID, err)
	}
	return room, nil
}

// ListRooms lists all rooms
func (a *App) ListRooms(ctx context.Context) ([]*models.Room, error) {
	rooms, err := a.rooms.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// JoinTeam registers a team in a room. The team's purse starts at the room
// budget.
func (a *App) JoinTeam(ctx context.Context, req JoinTeamRequest) (*models.Room, error) {
	if req.TeamName == "" {
		return nil, fmt.Errorf("teamName is required: %w", ErrValidation)
	}

	room, err := store.TransactRoom(ctx, a.rooms, req.RoomID, func(room *models.Room) error {
		if room.AuctionState == models.AuctionStateEnded {
			return ErrAuctionEnded
		}
		if room.Team(req.TeamName) != nil {
			return fmt.Errorf("team %q: %w", req.TeamName, ErrDuplicateTeam)
		}
		if room.TeamCount() >= room.NumTeams {
			return fmt.Errorf("room has %d of %d teams: %w", room.TeamCount(), room.NumTeams, ErrRoomFull)
		}
		if room.Teams == nil {
			room.Teams = make(map[string]*models.Team)
		}
		room.Teams[req.TeamName] = &models.Team{
			Name:  req.TeamName,
			Theme: req.Theme,
			Purse: room.Budget,
		}
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(req.RoomID, err)
	}

	log.Printf("Team %s joined room %s (%d/%d)", req.TeamName, req.RoomID, room.TeamCount(), room.NumTeams)

	a.emit(ctx, req.RoomID, events.TypeTeamJoined, events.TeamJoinedPayload{
		RoomID:    req.RoomID,
		TeamName:  req.TeamName,
		Theme:     req.Theme,
		TeamCount: room.TeamCount(),
		JoinedAt:  room.UpdatedAt,
	})
	return room, nil
}

// SelectPlayer puts a player up as the current lot, clearing any previous
// bid state.
func (a *App) SelectPlayer(ctx context.Context, req SelectPlayerRequest) (*models.Room, error) {
	player, err := a.players.GetPlayer(ctx, req.RoomID, req.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	room, err := store.TransactRoom(ctx, a.rooms, req.RoomID, func(room *models.Room) error {
		if !room.IsHostDevice(req.DeviceID) {
			return ErrNotHost
		}
		if room.AuctionState == models.AuctionStateEnded {
			return ErrAuctionEnded
		}
		if err := lot.Select(room, player.Snapshot()); err != nil {
			return err
		}
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(req.RoomID, err)
	}

	a.emit(ctx, req.RoomID, events.TypeLotOpened, events.LotOpenedPayload{
		RoomID:     req.RoomID,
		PlayerID:   player.ID.String(),
		PlayerName: player.Name,
		PlayerSet:  player.PlayerSet,
		BasePrice:  player.BasePrice,
		OpenedAt:   room.UpdatedAt,
	})
	return room, nil
}

// SubmitAutoBid places the next ladder increment for a team. The bid is
// keyed on the bid value the device last observed: if another team got in
// first the submission fails with ErrBidConflict instead of stacking a
// second increment on top.
func (a *App) SubmitAutoBid(ctx context.Context, req AutoBidRequest) (*models.Room, error) {
	var amount int64
	room, err := store.TransactRoom(ctx, a.rooms, req.RoomID, func(room *models.Room) error {
		if room.AuctionState == models.AuctionStateEnded {
			return ErrAuctionEnded
		}
		if !room.HasPlayer() {
			return lot.ErrNoPlayerSelected
		}
		if !bidEqual(req.ObservedBid, room.CurrentBid) {
			return fmt.Errorf("observed %s, standing %s: %w",
				fmtBid(req.ObservedBid), fmtBid(room.CurrentBid), ErrBidConflict)
		}
		amount = a.ladder.NextAutoBid(room.CurrentBid, room.CurrentPlayer.BasePrice)
		if err := lot.Bid(room, req.TeamName, amount); err != nil {
			return err
		}
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(req.RoomID, err)
	}

	a.emit(ctx, req.RoomID, events.TypeBidPlaced, events.BidPlacedPayload{
		RoomID:   req.RoomID,
		PlayerID: room.CurrentPlayer.ID.String(),
		TeamName: req.TeamName,
		Amount:   amount,
		PlacedAt: room.UpdatedAt,
	})
	return room, nil
}

// SubmitJumpBid places an arbitrary amount above the standing bid, when the
// room allows it.
func (a *App) SubmitJumpBid(ctx context.Context, req JumpBidRequest) (*models.Room, error) {
	var amount int64
	room, err := store.TransactRoom(ctx, a.rooms, req.RoomID, func(room *models.Room) error {
		if room.AuctionState == models.AuctionStateEnded {
			return ErrAuctionEnded
		}
		if !room.JumpBidAllowed {
			return ErrJumpBidDisabled
		}
		if !room.HasPlayer() {
			return lot.ErrNoPlayerSelected
		}
		if !bidEqual(req.ObservedBid, room.CurrentBid) {
			return fmt.Errorf("observed %s, standing %s: %w",
				fmtBid(req.ObservedBid), fmtBid(room.CurrentBid), ErrBidConflict)
		}
		team := room.Team(req.TeamName)
		if team == nil {
			return fmt.Errorf("bid by %q: %w", req.TeamName, lot.ErrTeamNotFound)
		}
		var err error
		amount, err = bidengine.ApplyJumpBid(req.Amount, team.Purse)
		if err != nil {
			return err
		}
		if err := lot.Bid(room, req.TeamName, amount); err != nil {
			return err
		}
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(req.RoomID, err)
	}

	a.emit(ctx, req.RoomID, events.TypeBidPlaced, events.BidPlacedPayload{
		RoomID:   req.RoomID,
		PlayerID: room.CurrentPlayer.ID.String(),
		TeamName: req.TeamName,
		Amount:   amount,
		JumpBid:  true,
		PlacedAt: room.UpdatedAt,
	})
	return room, nil
}

// HostSetManualBid sets bid and team directly, for rooms running in manual
// mode where the host relays bids called out in person.
func (a *App) HostSetManualBid(ctx context.Context, req ManualBidRequest) (*models.Room, error) {
	room, err := store.TransactRoom(ctx, a.rooms, req.RoomID, func(room *models.Room) error {
		if !room.IsHostDevice(req.DeviceID) {
			return ErrNotHost
		}
		if room.AuctionState == models.AuctionStateEnded {
			return ErrAuctionEnded
		}
		if room.AuctionMode != models.AuctionModeManual {
			return fmt.Errorf("room is in %s mode: %w", room.AuctionMode, ErrWrongMode)
		}
		if err := lot.HostBid(room, req.TeamName, req.Amount); err != nil {
			return err
		}
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(req.RoomID, err)
	}

	a.emit(ctx, req.RoomID, events.TypeBidPlaced, events.BidPlacedPayload{
		RoomID:   req.RoomID,
		PlayerID: room.CurrentPlayer.ID.String(),
		TeamName: req.TeamName,
		Amount:   req.Amount,
		HostSet:  true,
		PlacedAt: room.UpdatedAt,
	})
	return room, nil
}

// HostAdjustBid steps the standing bid one ladder increment up or down
// without changing the holding team. Stepping down stops at the player's
// base price.
func (a *App) HostAdjustBid(ctx context.Context, req AdjustBidRequest) (*models.Room, error) {
	var amount int64
	room, err := store.TransactRoom(ctx, a.rooms, req.RoomID, func(room *models.Room) error {
		if !room.IsHostDevice(req.DeviceID) {
			return ErrNotHost
		}
		if room.AuctionState == models.AuctionStateEnded {
			return ErrAuctionEnded
		}
		if !room.HasPlayer() {
			return lot.ErrNoPlayerSelected
		}
		if room.IsResolved() {
			return fmt.Errorf("adjust after %s: %w", *room.Lot.Status, lot.ErrLotNotOpen)
		}
		switch req.Direction {
		case AdjustUp:
			amount = a.ladder.NextAutoBid(room.CurrentBid, room.CurrentPlayer.BasePrice)
		case AdjustDown:
			amount = a.ladder.DecreaseBid(room.CurrentBid, room.CurrentPlayer.BasePrice)
		default:
			return fmt.Errorf("direction %q: %w", req.Direction, ErrValidation)
		}
		if room.CurrentBidTeam != nil {
			if team := room.Team(*room.CurrentBidTeam); team != nil && amount > team.Purse {
				return fmt.Errorf("bid %d with purse %d: %w", amount, team.Purse, lot.ErrInsufficientPurse)
			}
		}
		room.CurrentBid = &amount
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(req.RoomID, err)
	}

	teamName := ""
	if room.CurrentBidTeam != nil {
		teamName = *room.CurrentBidTeam
	}
	a.emit(ctx, req.RoomID, events.TypeBidPlaced, events.BidPlacedPayload{
		RoomID:   req.RoomID,
		PlayerID: room.CurrentPlayer.ID.String(),
		TeamName: teamName,
		Amount:   amount,
		HostSet:  true,
		PlacedAt: room.UpdatedAt,
	})
	return room, nil
}

// ResolveSold closes the lot to the current high bidder: purse debit, team
// history and lot status commit atomically in the room document, then the
// sale is written to the player document. A crash between the two writes is
// recoverable with ResetLot.
func (a *App) ResolveSold(ctx context.Context, roomID, deviceID string) (*models.Room, error) {
	var (
		price    int64
		teamName string
		playerID uuid.UUID
	)
	room, err := store.TransactRoom(ctx, a.rooms, roomID, func(room *models.Room) error {
		if !room.IsHostDevice(deviceID) {
			return ErrNotHost
		}
		if err := lot.MarkSold(room, nil); err != nil {
			return err
		}
		price = *room.CurrentBid
		teamName = *room.CurrentBidTeam
		playerID = room.CurrentPlayer.ID
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(roomID, err)
	}

	if _, err := store.TransactPlayer(ctx, a.players, roomID, playerID, func(p *models.Player) error {
		lot.ApplySold(p, teamName, price)
		return nil
	}); err != nil {
		log.Printf("Sold %s in room %s but player update failed: %v", playerID, roomID, err)
		return room, fmt.Errorf("sale recorded, failed to update player: %w", err)
	}

	log.Printf("Sold %s to %s for %d in room %s", playerID, teamName, price, roomID)

	a.emit(ctx, roomID, events.TypeLotSold, events.LotSoldPayload{
		RoomID:     roomID,
		PlayerID:   playerID.String(),
		PlayerName: room.CurrentPlayer.Name,
		TeamName:   teamName,
		Price:      price,
		SoldAt:     room.UpdatedAt,
	})
	return room, nil
}

// ResolveUnsold closes a lot that drew no bids and parks the player in the
// holding set.
func (a *App) ResolveUnsold(ctx context.Context, roomID, deviceID string) (*models.Room, error) {
	var playerID uuid.UUID
	room, err := store.TransactRoom(ctx, a.rooms, roomID, func(room *models.Room) error {
		if !room.IsHostDevice(deviceID) {
			return ErrNotHost
		}
		if err := lot.MarkUnsold(room, nil); err != nil {
			return err
		}
		playerID = room.CurrentPlayer.ID
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(roomID, err)
	}

	if _, err := store.TransactPlayer(ctx, a.players, roomID, playerID, func(p *models.Player) error {
		lot.ApplyUnsold(p)
		return nil
	}); err != nil {
		log.Printf("Unsold %s in room %s but player update failed: %v", playerID, roomID, err)
		return room, fmt.Errorf("lot closed, failed to update player: %w", err)
	}

	a.emit(ctx, roomID, events.TypeLotUnsold, events.LotUnsoldPayload{
		RoomID:     roomID,
		PlayerID:   playerID.String(),
		PlayerName: room.CurrentPlayer.Name,
		UnsoldAt:   room.UpdatedAt,
	})
	return room, nil
}

// ResetLot undoes the lot's resolution, or voids a stray bid, returning the
// lot to open with the same player displayed.
func (a *App) ResetLot(ctx context.Context, roomID, deviceID string) (*models.Room, error) {
	var (
		playerID    uuid.UUID
		wasResolved bool
	)
	room, err := store.TransactRoom(ctx, a.rooms, roomID, func(room *models.Room) error {
		if !room.IsHostDevice(deviceID) {
			return ErrNotHost
		}
		wasResolved = room.IsResolved()
		if err := lot.Reset(room, nil); err != nil {
			return err
		}
		playerID = room.CurrentPlayer.ID
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(roomID, err)
	}

	if wasResolved {
		if _, err := store.TransactPlayer(ctx, a.players, roomID, playerID, func(p *models.Player) error {
			lot.ApplyReset(p)
			return nil
		}); err != nil {
			log.Printf("Reset lot in room %s but player update failed: %v", roomID, err)
			return room, fmt.Errorf("lot reset, failed to update player: %w", err)
		}
	}

	a.emit(ctx, roomID, events.TypeLotReset, events.LotResetPayload{
		RoomID:   roomID,
		PlayerID: playerID.String(),
		ResetAt:  room.UpdatedAt,
	})
	return room, nil
}

// UpdateConfig toggles room settings. Only fields present in the request
// change.
func (a *App) UpdateConfig(ctx context.Context, req ConfigUpdateRequest) (*models.Room, error) {
	if req.AuctionMode != nil && *req.AuctionMode != models.AuctionModeAuto && *req.AuctionMode != models.AuctionModeManual {
		return nil, fmt.Errorf("auctionMode %q: %w", *req.AuctionMode, ErrValidation)
	}
	if req.AccessType != nil && *req.AccessType != models.AccessTypePublic && *req.AccessType != models.AccessTypePrivate {
		return nil, fmt.Errorf("accessType %q: %w", *req.AccessType, ErrValidation)
	}
	if req.AccessMode != nil && *req.AccessMode != models.AccessModeMin && *req.AccessMode != models.AccessModeMax {
		return nil, fmt.Errorf("accessMode %q: %w", *req.AccessMode, ErrValidation)
	}

	room, err := store.TransactRoom(ctx, a.rooms, req.RoomID, func(room *models.Room) error {
		if !room.IsHostDevice(req.DeviceID) {
			return ErrNotHost
		}
		if req.AuctionMode != nil {
			room.AuctionMode = *req.AuctionMode
		}
		if req.JumpBidAllowed != nil {
			room.JumpBidAllowed = *req.JumpBidAllowed
		}
		if req.AccessType != nil {
			room.AccessType = *req.AccessType
		}
		if req.AccessMode != nil {
			room.AccessMode = *req.AccessMode
		}
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(req.RoomID, err)
	}

	a.emit(ctx, req.RoomID, events.TypeConfigChanged, events.ConfigChangedPayload{
		RoomID:         req.RoomID,
		AuctionMode:    string(room.AuctionMode),
		JumpBidAllowed: room.JumpBidAllowed,
		AccessType:     string(room.AccessType),
		AccessMode:     string(room.AccessMode),
		ChangedAt:      room.UpdatedAt,
	})
	return room, nil
}

// EndAuction marks the room's auction as over. Joins are rejected afterwards;
// the room stays readable for summaries.
func (a *App) EndAuction(ctx context.Context, roomID, deviceID string) (*models.Room, error) {
	room, err := store.TransactRoom(ctx, a.rooms, roomID, func(room *models.Room) error {
		if !room.IsHostDevice(deviceID) {
			return ErrNotHost
		}
		room.AuctionState = models.AuctionStateEnded
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(roomID, err)
	}

	log.Printf("Auction ended in room %s", roomID)

	a.emit(ctx, roomID, events.TypeAuctionEnded, events.AuctionEndedPayload{
		RoomID:  roomID,
		EndedAt: room.UpdatedAt,
	})
	return room, nil
}

// RemoveTeam drops a team from the room. A standing bid held by the team is
// voided; its purchase history goes with it.
func (a *App) RemoveTeam(ctx context.Context, roomID, deviceID, teamName string) (*models.Room, error) {
	room, err := store.TransactRoom(ctx, a.rooms, roomID, func(room *models.Room) error {
		if !room.IsHostDevice(deviceID) {
			return ErrNotHost
		}
		if room.Team(teamName) == nil {
			return fmt.Errorf("team %q: %w", teamName, lot.ErrTeamNotFound)
		}
		if room.CurrentBidTeam != nil && *room.CurrentBidTeam == teamName {
			room.ClearBid()
		}
		room.ActiveBidders = removeBidder(room.ActiveBidders, teamName)
		delete(room.Teams, teamName)
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(roomID, err)
	}

	a.emit(ctx, roomID, events.TypeTeamRemoved, events.TeamRemovedPayload{
		RoomID:    roomID,
		TeamName:  teamName,
		RemovedAt: room.UpdatedAt,
	})
	return room, nil
}

// DeleteRoom removes the room and its player pool.
func (a *App) DeleteRoom(ctx context.Context, roomID, deviceID string) error {
	room, err := a.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return a.mapRoomErr(roomID, err)
	}
	if !room.IsHostDevice(deviceID) {
		return ErrNotHost
	}

	if err := a.rooms.DeleteRoom(ctx, roomID); err != nil {
		return a.mapRoomErr(roomID, err)
	}

	log.Printf("Deleted room %s", roomID)

	a.emit(ctx, roomID, events.TypeRoomDeleted, events.RoomDeletedPayload{
		RoomID:    roomID,
		DeletedAt: time.Now().UTC(),
	})
	return nil
}

// EnterBidding marks a team as actively bidding on the current lot.
func (a *App) EnterBidding(ctx context.Context, roomID, teamName string) (*models.Room, error) {
	room, err := store.TransactRoom(ctx, a.rooms, roomID, func(room *models.Room) error {
		if room.Team(teamName) == nil {
			return fmt.Errorf("team %q: %w", teamName, lot.ErrTeamNotFound)
		}
		if !room.IsOpen() {
			return fmt.Errorf("enter bidding: %w", lot.ErrLotNotOpen)
		}
		for _, name := range room.ActiveBidders {
			if name == teamName {
				return nil
			}
		}
		room.ActiveBidders = append(room.ActiveBidders, teamName)
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(roomID, err)
	}

	a.emit(ctx, roomID, events.TypeBidderEntered, events.BidderPresencePayload{
		RoomID:   roomID,
		TeamName: teamName,
		At:       room.UpdatedAt,
	})
	return room, nil
}

// ExitBidding withdraws a team from the current lot.
func (a *App) ExitBidding(ctx context.Context, roomID, teamName string) (*models.Room, error) {
	room, err := store.TransactRoom(ctx, a.rooms, roomID, func(room *models.Room) error {
		if room.Team(teamName) == nil {
			return fmt.Errorf("team %q: %w", teamName, lot.ErrTeamNotFound)
		}
		room.ActiveBidders = removeBidder(room.ActiveBidders, teamName)
		room.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, a.mapRoomErr(roomID, err)
	}

	a.emit(ctx, roomID, events.TypeBidderExited, events.BidderPresencePayload{
		RoomID:   roomID,
		TeamName: teamName,
		At:       room.UpdatedAt,
	})
	return room, nil
}

func (a *App) emit(ctx context.Context, roomID, eventType string, payload any) {
	if a.sink == nil {
		return
	}
	if err := a.sink.Emit(ctx, roomID, eventType, payload); err != nil {
		log.Printf("Failed to emit %s event for room %s: %v", eventType, roomID, err)
	}
}

func (a *App) mapRoomErr(roomID string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("room %q: %w", roomID, ErrRoomNotFound)
	}
	return err
}

func bidEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func fmtBid(v *int64) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *v)
}

func removeBidder(bidders []string, teamName string) []string {
	out := bidders[:0]
	for _, name := range bidders {
		if name != teamName {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
