package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kpatel744/auctioneer/go/internal/models"
)

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrConflict is returned when a compare-and-update lost the race: the
	// document changed since it was read.
	ErrConflict = errors.New("document version conflict")
	// ErrExists is returned when creating a document under an ID that is
	// already taken.
	ErrExists = errors.New("document already exists")
)

// maxTransactRetries bounds the optimistic retry loop in Transact helpers.
const maxTransactRetries = 5

// RoomRepository stores room documents. Reads hand back copies the caller
// owns; writes are versioned compare-and-update so concurrent mutations of
// the same room never silently overwrite each other.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)
	ListRooms(ctx context.Context) ([]*models.Room, error)
	// UpdateRoom writes room back iff its Version still matches the stored
	// document, returning ErrConflict otherwise. On success the room's
	// Version is advanced.
	UpdateRoom(ctx context.Context, room *models.Room) error
	DeleteRoom(ctx context.Context, roomID string) error
}

// PlayerRepository stores player pool documents, scoped per room.
type PlayerRepository interface {
	CreatePlayer(ctx context.Context, roomID string, player *models.Player) error
	GetPlayer(ctx context.Context, roomID string, playerID uuid.UUID) (*models.Player, error)
	ListPlayers(ctx context.Context, roomID string) ([]*models.Player, error)
	ListPlayersBySet(ctx context.Context, roomID string, set string) ([]*models.Player, error)
	UpdatePlayer(ctx context.Context, roomID string, player *models.Player) error
	DeletePlayer(ctx context.Context, roomID string, playerID uuid.UUID) error
	DeletePlayers(ctx context.Context, roomID string) error
}

// Store bundles the repositories a service layer needs.
type Store interface {
	Rooms() RoomRepository
	Players() PlayerRepository
}

// TransactRoom runs fn against a fresh read of the room and writes the result
// back under version check, retrying on ErrConflict. fn must be safe to run
// more than once; any error from fn aborts the transaction unchanged.
func TransactRoom(ctx context.Context, repo RoomRepository, roomID string, fn func(room *models.Room) error) (*models.Room, error) {
	var lastErr error
	for attempt := 0; attempt < maxTransactRetries; attempt++ {
		room, err := repo.GetRoom(ctx, roomID)
		if err != nil {
			return nil, err
		}
		if err := fn(room); err != nil {
			return nil, err
		}
		if err := repo.UpdateRoom(ctx, room); err != nil {
			if errors.Is(err, ErrConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return room, nil
	}
	return nil, lastErr
}

// TransactPlayer is TransactRoom for a player document.
func TransactPlayer(ctx context.Context, repo PlayerRepository, roomID string, playerID uuid.UUID, fn func(player *models.Player) error) (*models.Player, error) {
	var lastErr error
	for attempt := 0; attempt < maxTransactRetries; attempt++ {
		player, err := repo.GetPlayer(ctx, roomID, playerID)
		if err != nil {
			return nil, err
		}
		if err := fn(player); err != nil {
			return nil, err
		}
		if err := repo.UpdatePlayer(ctx, roomID, player); err != nil {
			if errors.Is(err, ErrConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return player, nil
	}
	return nil, lastErr
}
