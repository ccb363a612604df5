// Package registry provides cross-room listings and housekeeping, the
// operator-facing view over the room store.
package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kpatel744/auctioneer/go/internal/models"
	"github.com/kpatel744/auctioneer/go/internal/store"
)

// RoomSummary is the listing row for one room: enough to render a lobby or
// an admin table without shipping team histories around.
type RoomSummary struct {
	RoomID       string              `json:"roomId"`
	AccessType   models.AccessType   `json:"accessType"`
	AuctionState models.AuctionState `json:"auctionState"`
	AuctionMode  models.AuctionMode  `json:"auctionMode"`
	TeamCount    int                 `json:"teamCount"`
	NumTeams     int                 `json:"numTeams"`
	Budget       int64               `json:"budget"`
	LotOpen      bool                `json:"lotOpen"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// App handles registry queries and housekeeping
type App struct {
	rooms   store.RoomRepository
	players store.PlayerRepository
}

// NewApp creates a new registry App
func NewApp(rooms store.RoomRepository, players store.PlayerRepository) *App {
	return &App{
		rooms:   rooms,
		players: players,
	}
}

// ListSummaries returns one row per room.
func (a *App) ListSummaries(ctx context.Context) ([]RoomSummary, error) {
	rooms, err := a.rooms.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, Summarize(room))
	}
	return summaries, nil
}

// PurgeStale deletes ended rooms whose last activity is older than maxAge,
// along with their player pools. Returns the IDs removed.
func (a *App) PurgeStale(ctx context.Context, maxAge time.Duration) ([]string, error) {
	rooms, err := a.rooms.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	cutoff := time.Now().UTC().Add(-maxAge)
	var purged []string
	for _, room := range rooms {
		if room.AuctionState != models.AuctionStateEnded || room.UpdatedAt.After(cutoff) {
			continue
		}
		if err := a.rooms.DeleteRoom(ctx, room.RoomID); err != nil {
			log.Warn().Err(err).Str("room_id", room.RoomID).Msg("failed to purge stale room")
			continue
		}
		purged = append(purged, room.RoomID)
	}

	if len(purged) > 0 {
		log.Info().Int("count", len(purged)).Msg("purged stale rooms")
	}
	return purged, nil
}

// Summarize builds the listing row for one room.
func Summarize(room *models.Room) RoomSummary {
	return RoomSummary{
		RoomID:       room.RoomID,
		AccessType:   room.AccessType,
		AuctionState: room.AuctionState,
		AuctionMode:  room.AuctionMode,
		TeamCount:    room.TeamCount(),
		NumTeams:     room.NumTeams,
		Budget:       room.Budget,
		LotOpen:      room.IsOpen(),
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}
}
