// Package memory provides an in-process Store, used by tests and by
// single-node deployments that do not need durability.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kpatel744/auctioneer/go/internal/models"
	"github.com/kpatel744/auctioneer/go/internal/store"
)

type Store struct {
	mu      sync.RWMutex
	rooms   map[string]*models.Room
	players map[string]map[uuid.UUID]*models.Player
}

func NewStore() *Store {
	return &Store{
		rooms:   make(map[string]*models.Room),
		players: make(map[string]map[uuid.UUID]*models.Player),
	}
}

func (s *Store) Rooms() store.RoomRepository     { return (*roomRepo)(s) }
func (s *Store) Players() store.PlayerRepository { return (*playerRepo)(s) }

type roomRepo Store

func (r *roomRepo) CreateRoom(_ context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[room.RoomID]; ok {
		return fmt.Errorf("room %q: %w", room.RoomID, store.ErrExists)
	}
	room.Version = 1
	r.rooms[room.RoomID] = room.Clone()
	return nil
}

func (r *roomRepo) GetRoom(_ context.Context, roomID string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", roomID, store.ErrNotFound)
	}
	return room.Clone(), nil
}

func (r *roomRepo) ListRooms(_ context.Context) ([]*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
	return out, nil
}

func (r *roomRepo) UpdateRoom(_ context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rooms[room.RoomID]
	if !ok {
		return fmt.Errorf("room %q: %w", room.RoomID, store.ErrNotFound)
	}
	if stored.Version != room.Version {
		return fmt.Errorf("room %q at version %d, have %d: %w",
			room.RoomID, stored.Version, room.Version, store.ErrConflict)
	}
	room.Version++
	r.rooms[room.RoomID] = room.Clone()
	return nil
}

func (r *roomRepo) DeleteRoom(_ context.Context, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[roomID]; !ok {
		return fmt.Errorf("room %q: %w", roomID, store.ErrNotFound)
	}
	delete(r.rooms, roomID)
	delete(r.players, roomID)
	return nil
}

type playerRepo Store

func (p *playerRepo) CreatePlayer(_ context.Context, roomID string, player *models.Player) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.players[roomID]
	if !ok {
		pool = make(map[uuid.UUID]*models.Player)
		p.players[roomID] = pool
	}
	if _, ok := pool[player.ID]; ok {
		return fmt.Errorf("player %s: %w", player.ID, store.ErrExists)
	}
	player.Version = 1
	pool[player.ID] = player.Clone()
	return nil
}

func (p *playerRepo) GetPlayer(_ context.Context, roomID string, playerID uuid.UUID) (*models.Player, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	player, ok := p.players[roomID][playerID]
	if !ok {
		return nil, fmt.Errorf("player %s: %w", playerID, store.ErrNotFound)
	}
	return player.Clone(), nil
}

func (p *playerRepo) ListPlayers(_ context.Context, roomID string) ([]*models.Player, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pool := p.players[roomID]
	out := make([]*models.Player, 0, len(pool))
	for _, player := range pool {
		out = append(out, player.Clone())
	}
	sortPlayers(out)
	return out, nil
}

func (p *playerRepo) ListPlayersBySet(_ context.Context, roomID string, set string) ([]*models.Player, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []*models.Player
	for _, player := range p.players[roomID] {
		if player.PlayerSet == set {
			out = append(out, player.Clone())
		}
	}
	sortPlayers(out)
	return out, nil
}

func (p *playerRepo) UpdatePlayer(_ context.Context, roomID string, player *models.Player) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	stored, ok := p.players[roomID][player.ID]
	if !ok {
		return fmt.Errorf("player %s: %w", player.ID, store.ErrNotFound)
	}
	if stored.Version != player.Version {
		return fmt.Errorf("player %s at version %d, have %d: %w",
			player.ID, stored.Version, player.Version, store.ErrConflict)
	}
	player.Version++
	p.players[roomID][player.ID] = player.Clone()
	return nil
}

func (p *playerRepo) DeletePlayer(_ context.Context, roomID string, playerID uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.players[roomID][playerID]; !ok {
		return fmt.Errorf("player %s: %w", playerID, store.ErrNotFound)
	}
	delete(p.players[roomID], playerID)
	return nil
}

func (p *playerRepo) DeletePlayers(_ context.Context, roomID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.players, roomID)
	return nil
}

func sortPlayers(players []*models.Player) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].PlayerSet != players[j].PlayerSet {
			return players[i].PlayerSet < players[j].PlayerSet
		}
		return players[i].Name < players[j].Name
	})
}
