package session

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kpatel744/auctioneer/go/internal/auction/bidengine"
	"github.com/kpatel744/auctioneer/go/internal/auction/ledger"
	"github.com/kpatel744/auctioneer/go/internal/auction/room"
	"github.com/kpatel744/auctioneer/go/internal/models"
)

// ErrRemovedParticipant is returned when a device resumes a session whose
// team is no longer in the room. The stale binding is dropped so the device
// falls back to the join screen.
var ErrRemovedParticipant = errors.New("team was removed from the room")

// Coordinator defines what the session layer needs from the room app.
type Coordinator interface {
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)
	JoinTeam(ctx context.Context, req room.JoinTeamRequest) (*models.Room, error)
	SubmitAutoBid(ctx context.Context, req room.AutoBidRequest) (*models.Room, error)
	SubmitJumpBid(ctx context.Context, req room.JumpBidRequest) (*models.Room, error)
	EnterBidding(ctx context.Context, roomID, teamName string) (*models.Room, error)
	ExitBidding(ctx context.Context, roomID, teamName string) (*models.Room, error)
}

// App binds devices to their room and team. A device joins once; every later
// request and reconnect resolves through the stored binding, never through
// client-supplied team names.
type App struct {
	storage Storage
	coord   Coordinator
	ladder  bidengine.Ladder
}

// NewApp creates a new session App
func NewApp(storage Storage, coord Coordinator, ladder bidengine.Ladder) *App {
	return &App{
		storage: storage,
		coord:   coord,
		ladder:  ladder,
	}
}

// Join registers the team in the room and binds the device to it.
func (a *App) Join(ctx context.Context, deviceID string, req room.JoinTeamRequest) (*models.DeviceSession, *models.Room, error) {
	if deviceID == "" {
		return nil, nil, fmt.Errorf("deviceId is required: %w", room.ErrValidation)
	}

	rm, err := a.coord.JoinTeam(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	sess := &models.DeviceSession{
		DeviceID: deviceID,
		RoomID:   req.RoomID,
		TeamName: req.TeamName,
	}
	if err := a.storage.Put(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("joined but failed to store session: %w", err)
	}

	log.Printf("Device %s joined room %s as %s", deviceID, req.RoomID, req.TeamName)
	return sess, rm, nil
}

// Resume resolves the device's stored binding against the live room. A
// binding whose room is gone, or whose team was removed by the host, is
// dropped.
func (a *App) Resume(ctx context.Context, deviceID string) (*models.DeviceSession, *models.Room, error) {
	sess, err := a.storage.Get(ctx, deviceID)
	if err != nil {
		return nil, nil, err
	}

	rm, err := a.coord.GetRoom(ctx, sess.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			_ = a.storage.Delete(ctx, deviceID)
		}
		return nil, nil, err
	}

	if sess.Joined() && rm.Team(sess.TeamName) == nil {
		_ = a.storage.Delete(ctx, deviceID)
		return nil, nil, fmt.Errorf("team %q in room %s: %w", sess.TeamName, sess.RoomID, ErrRemovedParticipant)
	}

	return sess, rm, nil
}

// Bid submits the next auto increment for the device's team.
func (a *App) Bid(ctx context.Context, deviceID string, observedBid *int64) (*models.Room, error) {
	sess, _, err := a.Resume(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return a.coord.SubmitAutoBid(ctx, room.AutoBidRequest{
		RoomID:      sess.RoomID,
		TeamName:    sess.TeamName,
		ObservedBid: observedBid,
	})
}

// JumpBid submits an arbitrary amount for the device's team.
func (a *App) JumpBid(ctx context.Context, deviceID string, amount int64, observedBid *int64) (*models.Room, error) {
	sess, _, err := a.Resume(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return a.coord.SubmitJumpBid(ctx, room.JumpBidRequest{
		RoomID:      sess.RoomID,
		TeamName:    sess.TeamName,
		Amount:      amount,
		ObservedBid: observedBid,
	})
}

// Enter marks the device's team as actively bidding on the current lot.
func (a *App) Enter(ctx context.Context, deviceID string) (*models.Room, error) {
	sess, _, err := a.Resume(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return a.coord.EnterBidding(ctx, sess.RoomID, sess.TeamName)
}

// Exit withdraws the device's team from the current lot.
func (a *App) Exit(ctx context.Context, deviceID string) (*models.Room, error) {
	sess, _, err := a.Resume(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return a.coord.ExitBidding(ctx, sess.RoomID, sess.TeamName)
}

// Leave drops the device's binding. The team stays in the room.
func (a *App) Leave(ctx context.Context, deviceID string) error {
	return a.storage.Delete(ctx, deviceID)
}

// Eligibility reports whether the device's team could place the next auto
// bid, and why not otherwise. Drives the bid button state on the device.
func (a *App) Eligibility(ctx context.Context, deviceID string) (Eligibility, error) {
	sess, rm, err := a.Resume(ctx, deviceID)
	if err != nil {
		return Eligibility{}, err
	}
	return Evaluate(rm, sess.TeamName, a.ladder), nil
}

// Eligibility is the bid button state for one team on the current lot.
type Eligibility struct {
	CanBid  bool   `json:"canBid"`
	NextBid int64  `json:"nextBid,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Evaluate computes bid eligibility from room state alone.
func Evaluate(rm *models.Room, teamName string, ladder bidengine.Ladder) Eligibility {
	team := rm.Team(teamName)
	if team == nil {
		return Eligibility{Reason: "team not in room"}
	}
	if rm.AuctionState == models.AuctionStateEnded {
		return Eligibility{Reason: "auction has ended"}
	}
	if !rm.HasPlayer() || rm.IsResolved() {
		return Eligibility{Reason: "no open lot"}
	}
	if rm.AuctionMode == models.AuctionModeManual {
		return Eligibility{Reason: "bids are host-set in manual mode"}
	}
	if rm.CurrentBidTeam != nil && *rm.CurrentBidTeam == teamName {
		return Eligibility{Reason: "team holds the current bid"}
	}

	next := ladder.NextAutoBid(rm.CurrentBid, rm.CurrentPlayer.BasePrice)
	if next > team.Purse {
		return Eligibility{Reason: "insufficient purse"}
	}
	if len(team.History) >= rm.MaxPlayers {
		return Eligibility{Reason: "roster is full"}
	}
	if rm.CurrentPlayer.Country != "India" && ledger.OverseasCount(team) >= rm.MaxOverseas {
		return Eligibility{Reason: "overseas quota is full"}
	}

	return Eligibility{CanBid: true, NextBid: next}
}
