package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OutboxRepository defines what the app layer needs from the repository
type OutboxRepository interface {
	InsertEvent(ctx context.Context, roomID, eventType string, payload []byte) error
	FetchUnsent(ctx context.Context, limit int32) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, ids []uuid.UUID) error
}

// App handles outbox business logic
type App struct {
	repo OutboxRepository
}

// NewApp creates a new outbox App
func NewApp(repo OutboxRepository) *App {
	return &App{
		repo: repo,
	}
}

// Emit marshals payload and stores it for delivery to roomID's subscribers.
func (a *App) Emit(ctx context.Context, roomID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("invalid %s payload: %w", eventType, err)
	}
	if len(data) == 0 || string(data) == "null" {
		return fmt.Errorf("invalid %s payload: empty", eventType)
	}

	if err := a.repo.InsertEvent(ctx, roomID, eventType, data); err != nil {
		return fmt.Errorf("failed to insert %s event: %w", eventType, err)
	}

	log.Debug().
		Str("room_id", roomID).
		Str("event_type", eventType).
		Msg("outbox event inserted")

	return nil
}

// FetchUnsentEvents fetches unsent outbox events
func (a *App) FetchUnsentEvents(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	events, err := a.repo.FetchUnsent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent events: %w", err)
	}

	if len(events) > 0 {
		log.Debug().
			Int("count", len(events)).
			Msg("fetched unsent outbox events")
	}

	return events, nil
}

// MarkEventsSent marks a batch of outbox events as sent
func (a *App) MarkEventsSent(ctx context.Context, ids []uuid.UUID) error {
	if err := a.repo.MarkSent(ctx, ids); err != nil {
		return fmt.Errorf("failed to mark events as sent: %w", err)
	}
	return nil
}
