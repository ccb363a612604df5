package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sqlc-dev/pqtype"

	"github.com/kpatel744/auctioneer/go/internal/sqlutil"
)

const outboxSchema = `
CREATE TABLE IF NOT EXISTS auction_outbox (
	id         UUID PRIMARY KEY,
	room_id    TEXT NOT NULL,
	event_type TEXT NOT NULL,
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	sent_at    TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS auction_outbox_unsent_idx ON auction_outbox (created_at) WHERE sent_at IS NULL;
`

// Repository persists outbox events in Postgres. The worker drains it in
// created-at order; duplicate delivery is deduped downstream by event ID.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the outbox table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, outboxSchema)
	return err
}

func (r *Repository) InsertEvent(ctx context.Context, roomID, eventType string, payload []byte) error {
	q := `
	INSERT INTO auction_outbox (id, room_id, event_type, payload)
	VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, q, uuid.New(), roomID, eventType, payload)
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}

func (r *Repository) FetchUnsent(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	q := `
	SELECT id, room_id, event_type, payload, created_at
	  FROM auction_outbox
	 WHERE sent_at IS NULL
	 ORDER BY created_at
	 LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var (
			event   OutboxEvent
			payload pqtype.NullRawMessage
		)
		if err := rows.Scan(&event.ID, &event.RoomID, &event.EventType, &payload, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		event.Payload = sqlutil.FromNullRawMessage(payload)
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *Repository) MarkSent(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	q := `UPDATE auction_outbox SET sent_at = now() WHERE id = ANY($1)`
	if _, err := r.db.ExecContext(ctx, q, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to mark outbox events as sent: %w", err)
	}
	return nil
}

func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	q := `
	SELECT id, room_id, event_type, payload, created_at, sent_at
	  FROM auction_outbox
	 WHERE id = $1
	`
	var (
		event   OutboxEvent
		payload pqtype.NullRawMessage
		sentAt  sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&event.ID, &event.RoomID, &event.EventType, &payload, &event.CreatedAt, &sentAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("outbox event %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outbox event by ID: %w", err)
	}
	event.Payload = sqlutil.FromNullRawMessage(payload)
	event.SentAt = sqlutil.FromNullTime(sentAt)
	return &event, nil
}
