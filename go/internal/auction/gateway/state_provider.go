package gateway

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kpatel744/auctioneer/go/internal/auction/bidengine"
	"github.com/kpatel744/auctioneer/go/internal/auction/registry"
	"github.com/kpatel744/auctioneer/go/internal/auction/room"
	"github.com/kpatel744/auctioneer/go/internal/models"
	"github.com/kpatel744/auctioneer/go/internal/players"
)

// RoomStateProvider implements StateProvider on top of the room coordinator
type RoomStateProvider struct {
	rooms    *room.App
	pool     *players.App
	registry *registry.App
	ladder   bidengine.Ladder
}

// NewRoomStateProvider creates a new room state provider
func NewRoomStateProvider(rooms *room.App, pool *players.App, reg *registry.App, ladder bidengine.Ladder) *RoomStateProvider {
	return &RoomStateProvider{
		rooms:    rooms,
		pool:     pool,
		registry: reg,
		ladder:   ladder,
	}
}

// GetRoomState retrieves the complete snapshot of a room
func (p *RoomStateProvider) GetRoomState(ctx context.Context, roomID string) (*RoomStateResponse, error) {
	rm, err := p.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	response := &RoomStateResponse{
		RoomID:       rm.RoomID,
		AuctionState: string(rm.AuctionState),
		AuctionMode:  string(rm.AuctionMode),
		Teams:        teamStates(rm),
		Metadata: map[string]interface{}{
			"access_type":      string(rm.AccessType),
			"num_teams":        rm.NumTeams,
			"budget":           rm.Budget,
			"max_players":      rm.MaxPlayers,
			"max_overseas":     rm.MaxOverseas,
			"jump_bid_allowed": rm.JumpBidAllowed,
		},
		FetchedAt: time.Now(),
	}

	if rm.HasPlayer() {
		lot := &CurrentLotInfo{
			PlayerID:       rm.CurrentPlayer.ID.String(),
			PlayerName:     rm.CurrentPlayer.Name,
			PlayerSet:      rm.CurrentPlayer.PlayerSet,
			BasePrice:      rm.CurrentPlayer.BasePrice,
			CurrentBid:     rm.CurrentBid,
			CurrentBidTeam: rm.CurrentBidTeam,
		}
		if rm.Status != nil {
			lot.Status = string(*rm.Status)
		} else {
			lot.NextBid = p.ladder.NextAutoBid(rm.CurrentBid, rm.CurrentPlayer.BasePrice)
		}
		response.CurrentLot = lot
	}

	pool, err := p.pool.ListPlayers(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for _, pl := range pool {
		switch {
		case pl.Status != nil && *pl.Status == models.LotStatusSold:
			response.SoldCount++
		case pl.Status != nil && *pl.Status == models.LotStatusUnsold:
			response.UnsoldCount++
		default:
			response.PoolCount++
		}
	}

	return response, nil
}

// GetActiveRooms retrieves summaries of rooms whose auctions have not ended
func (p *RoomStateProvider) GetActiveRooms(ctx context.Context) ([]registry.RoomSummary, error) {
	summaries, err := p.registry.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list room summaries: %w", err)
	}

	active := make([]registry.RoomSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.AuctionState == models.AuctionStateEnded {
			continue
		}
		active = append(active, s)
	}
	return active, nil
}

// teamStates flattens the team map into a stable, name-ordered slice
func teamStates(rm *models.Room) []TeamStateInfo {
	bidding := make(map[string]bool, len(rm.ActiveBidders))
	for _, name := range rm.ActiveBidders {
		bidding[name] = true
	}

	teams := make([]TeamStateInfo, 0, len(rm.Teams))
	for _, t := range rm.Teams {
		teams = append(teams, TeamStateInfo{
			Name:        t.Name,
			Theme:       t.Theme,
			Purse:       t.Purse,
			PlayerCount: len(t.History),
			Bidding:     bidding[t.Name],
		})
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}
