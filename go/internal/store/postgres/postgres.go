// Package postgres stores room and player documents as JSONB rows with a
// version column for optimistic compare-and-update.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kpatel744/auctioneer/go/internal/models"
	"github.com/kpatel744/auctioneer/go/internal/store"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	room_id    TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	version    BIGINT NOT NULL DEFAULT 1,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS players (
	room_id    TEXT NOT NULL,
	player_id  UUID NOT NULL,
	player_set TEXT NOT NULL,
	doc        JSONB NOT NULL,
	version    BIGINT NOT NULL DEFAULT 1,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (room_id, player_id)
);

CREATE INDEX IF NOT EXISTS players_room_set_idx ON players (room_id, player_set);
`

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the document tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *Store) Rooms() store.RoomRepository     { return &roomRepo{pool: s.pool} }
func (s *Store) Players() store.PlayerRepository { return &playerRepo{pool: s.pool} }

type roomRepo struct {
	pool *pgxpool.Pool
}

func (r *roomRepo) CreateRoom(ctx context.Context, room *models.Room) error {
	doc, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("marshal room: %w", err)
	}
	q := `INSERT INTO rooms (room_id, doc, version) VALUES ($1, $2, 1)`
	if _, err := r.pool.Exec(ctx, q, room.RoomID, doc); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("room %q: %w", room.RoomID, store.ErrExists)
		}
		return err
	}
	room.Version = 1
	return nil
}

func (r *roomRepo) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	q := `SELECT doc, version FROM rooms WHERE room_id = $1`
	var (
		doc     []byte
		version int64
	)
	err := r.pool.QueryRow(ctx, q, roomID).Scan(&doc, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("room %q: %w", roomID, store.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var room models.Room
	if err := json.Unmarshal(doc, &room); err != nil {
		return nil, fmt.Errorf("unmarshal room %q: %w", roomID, err)
	}
	room.Version = version
	return &room, nil
}

func (r *roomRepo) ListRooms(ctx context.Context) ([]*models.Room, error) {
	q := `SELECT doc, version FROM rooms ORDER BY room_id`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Room
	for rows.Next() {
		var (
			doc     []byte
			version int64
		)
		if err := rows.Scan(&doc, &version); err != nil {
			return nil, err
		}
		var room models.Room
		if err := json.Unmarshal(doc, &room); err != nil {
			return nil, fmt.Errorf("unmarshal room: %w", err)
		}
		room.Version = version
		out = append(out, &room)
	}
	return out, rows.Err()
}

func (r *roomRepo) UpdateRoom(ctx context.Context, room *models.Room) error {
	doc, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("marshal room: %w", err)
	}
	q := `
	UPDATE rooms
	   SET doc = $1, version = version + 1, updated_at = now()
	 WHERE room_id = $2 AND version = $3
	`
	tag, err := r.pool.Exec(ctx, q, doc, room.RoomID, room.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, room.RoomID, room.Version)
	}
	room.Version++
	return nil
}

// missOrConflict disambiguates a zero-row update: the room is gone, or
// someone else advanced its version first.
func (r *roomRepo) missOrConflict(ctx context.Context, roomID string, have int64) error {
	var stored int64
	err := r.pool.QueryRow(ctx, `SELECT version FROM rooms WHERE room_id = $1`, roomID).Scan(&stored)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("room %q: %w", roomID, store.ErrNotFound)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("room %q at version %d, have %d: %w", roomID, stored, have, store.ErrConflict)
}

func (r *roomRepo) DeleteRoom(ctx context.Context, roomID string) error {
	return pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM players WHERE room_id = $1`, roomID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM rooms WHERE room_id = $1`, roomID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("room %q: %w", roomID, store.ErrNotFound)
		}
		return nil
	})
}

type playerRepo struct {
	pool *pgxpool.Pool
}

func (p *playerRepo) CreatePlayer(ctx context.Context, roomID string, player *models.Player) error {
	doc, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("marshal player: %w", err)
	}
	q := `INSERT INTO players (room_id, player_id, player_set, doc, version) VALUES ($1, $2, $3, $4, 1)`
	if _, err := p.pool.Exec(ctx, q, roomID, player.ID, player.PlayerSet, doc); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("player %s: %w", player.ID, store.ErrExists)
		}
		return err
	}
	player.Version = 1
	return nil
}

func (p *playerRepo) GetPlayer(ctx context.Context, roomID string, playerID uuid.UUID) (*models.Player, error) {
	q := `SELECT doc, version FROM players WHERE room_id = $1 AND player_id = $2`
	var (
		doc     []byte
		version int64
	)
	err := p.pool.QueryRow(ctx, q, roomID, playerID).Scan(&doc, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", playerID, store.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var player models.Player
	if err := json.Unmarshal(doc, &player); err != nil {
		return nil, fmt.Errorf("unmarshal player %s: %w", playerID, err)
	}
	player.Version = version
	return &player, nil
}

func (p *playerRepo) ListPlayers(ctx context.Context, roomID string) ([]*models.Player, error) {
	q := `SELECT doc, version FROM players WHERE room_id = $1 ORDER BY player_set, doc->>'name'`
	return p.queryPlayers(ctx, q, roomID)
}

func (p *playerRepo) ListPlayersBySet(ctx context.Context, roomID string, set string) ([]*models.Player, error) {
	q := `SELECT doc, version FROM players WHERE room_id = $1 AND player_set = $2 ORDER BY doc->>'name'`
	return p.queryPlayers(ctx, q, roomID, set)
}

func (p *playerRepo) queryPlayers(ctx context.Context, q string, args ...any) ([]*models.Player, error) {
	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Player
	for rows.Next() {
		var (
			doc     []byte
			version int64
		)
		if err := rows.Scan(&doc, &version); err != nil {
			return nil, err
		}
		var player models.Player
		if err := json.Unmarshal(doc, &player); err != nil {
			return nil, fmt.Errorf("unmarshal player: %w", err)
		}
		player.Version = version
		out = append(out, &player)
	}
	return out, rows.Err()
}

func (p *playerRepo) UpdatePlayer(ctx context.Context, roomID string, player *models.Player) error {
	doc, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("marshal player: %w", err)
	}
	q := `
	UPDATE players
	   SET doc = $1, player_set = $2, version = version + 1, updated_at = now()
	 WHERE room_id = $3 AND player_id = $4 AND version = $5
	`
	tag, err := p.pool.Exec(ctx, q, doc, player.PlayerSet, roomID, player.ID, player.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var stored int64
		err := p.pool.QueryRow(ctx,
			`SELECT version FROM players WHERE room_id = $1 AND player_id = $2`,
			roomID, player.ID).Scan(&stored)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("player %s: %w", player.ID, store.ErrNotFound)
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("player %s at version %d, have %d: %w", player.ID, stored, player.Version, store.ErrConflict)
	}
	player.Version++
	return nil
}

func (p *playerRepo) DeletePlayer(ctx context.Context, roomID string, playerID uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM players WHERE room_id = $1 AND player_id = $2`, roomID, playerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("player %s: %w", playerID, store.ErrNotFound)
	}
	return nil
}

func (p *playerRepo) DeletePlayers(ctx context.Context, roomID string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM players WHERE room_id = $1`, roomID)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
