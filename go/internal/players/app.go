package players

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kpatel744/auctioneer/go/internal/models"
	"github.com/kpatel744/auctioneer/go/internal/store"
)

// Defaults applied to players created with sparse data, typically a bulk
// upload with only names and prices.
const (
	DefaultSet      = "Set 1"
	DefaultCategory = "M"
	DefaultRole     = "Bat"
	DefaultCountry  = "India"
)

var (
	ErrValidation     = errors.New("invalid player")
	ErrPlayerNotFound = errors.New("player not found")
)

// App handles player pool business logic
type App struct {
	repo store.PlayerRepository
}

// NewApp creates a new players App
func NewApp(repo store.PlayerRepository) *App {
	return &App{
		repo: repo,
	}
}

// CreatePlayer adds a player to the room's pool with defaults applied.
func (a *App) CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, error) {
	player, err := a.build(req)
	if err != nil {
		return nil, err
	}
	if err := a.repo.CreatePlayer(ctx, req.RoomID, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

// CreatePlayers adds a batch of players, typically from an upload. The batch
// is validated up front so a bad row rejects the whole upload instead of
// importing half of it.
func (a *App) CreatePlayers(ctx context.Context, roomID string, reqs []CreatePlayerRequest) ([]*models.Player, error) {
	built := make([]*models.Player, 0, len(reqs))
	for i, req := range reqs {
		req.RoomID = roomID
		player, err := a.build(req)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		built = append(built, player)
	}
	for _, player := range built {
		if err := a.repo.CreatePlayer(ctx, roomID, player); err != nil {
			return nil, fmt.Errorf("failed to create player %q: %w", player.Name, err)
		}
	}
	log.Printf("Imported %d players into room %s", len(built), roomID)
	return built, nil
}

// GetPlayer retrieves a player by ID
func (a *App) GetPlayer(ctx context.Context, roomID string, playerID uuid.UUID) (*models.Player, error) {
	player, err := a.repo.GetPlayer(ctx, roomID, playerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// ListPlayers lists the room's full pool.
func (a *App) ListPlayers(ctx context.Context, roomID string) ([]*models.Player, error) {
	players, err := a.repo.ListPlayers(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// ListPlayersBySet lists the pool filtered to one set, including the unsold
// holding set.
func (a *App) ListPlayersBySet(ctx context.Context, roomID, set string) ([]*models.Player, error) {
	players, err := a.repo.ListPlayersBySet(ctx, roomID, set)
	if err != nil {
		return nil, fmt.Errorf("failed to list players by set: %w", err)
	}
	return players, nil
}

// UpdatePlayer edits pool fields of a player.
func (a *App) UpdatePlayer(ctx context.Context, roomID string, playerID uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("name cannot be empty: %w", ErrValidation)
	}
	if req.BasePrice != nil && *req.BasePrice <= 0 {
		return nil, fmt.Errorf("basePrice must be positive: %w", ErrValidation)
	}

	player, err := store.TransactPlayer(ctx, a.repo, roomID, playerID, func(p *models.Player) error {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.JerseyNumber != nil {
			p.JerseyNumber = *req.JerseyNumber
		}
		if req.PlayerSet != nil {
			p.PlayerSet = *req.PlayerSet
			p.OriginalSet = *req.PlayerSet
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.Role != nil {
			p.Role = *req.Role
		}
		if req.BasePrice != nil {
			p.BasePrice = *req.BasePrice
		}
		if req.Country != nil {
			p.Country = *req.Country
		}
		if req.ImageURL != nil {
			p.ImageURL = req.ImageURL
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return player, nil
}

// DeletePlayer removes a player from the pool.
func (a *App) DeletePlayer(ctx context.Context, roomID string, playerID uuid.UUID) error {
	if err := a.repo.DeletePlayer(ctx, roomID, playerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
		}
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}

func (a *App) build(req CreatePlayerRequest) (*models.Player, error) {
	if req.RoomID == "" {
		return nil, fmt.Errorf("roomId is required: %w", ErrValidation)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if req.BasePrice <= 0 {
		return nil, fmt.Errorf("basePrice must be positive: %w", ErrValidation)
	}
	if req.PlayerSet == "" {
		req.PlayerSet = DefaultSet
	}
	if req.Category == "" {
		req.Category = DefaultCategory
	}
	if req.Role == "" {
		req.Role = DefaultRole
	}
	if req.Country == "" {
		req.Country = DefaultCountry
	}

	return &models.Player{
		PlayerSnapshot: models.PlayerSnapshot{
			ID:           uuid.New(),
			Name:         req.Name,
			JerseyNumber: req.JerseyNumber,
			PlayerSet:    req.PlayerSet,
			Category:     req.Category,
			Role:         req.Role,
			BasePrice:    req.BasePrice,
			Country:      req.Country,
			ImageURL:     req.ImageURL,
		},
		OriginalSet: req.PlayerSet,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
