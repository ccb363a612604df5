package outbox

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-process outbox, used by tests and by deployments
// running on the memory document store.
type MemoryRepository struct {
	mu     sync.Mutex
	events []OutboxEvent
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) InsertEvent(_ context.Context, roomID, eventType string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, OutboxEvent{
		ID:        uuid.New(),
		RoomID:    roomID,
		EventType: eventType,
		Payload:   append([]byte(nil), payload...),
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (r *MemoryRepository) FetchUnsent(_ context.Context, limit int32) ([]OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []OutboxEvent
	for _, event := range r.events {
		if event.SentAt != nil {
			continue
		}
		out = append(out, event)
		if int32(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRepository) MarkSent(_ context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	for _, id := range ids {
		for i := range r.events {
			if r.events[i].ID == id {
				r.events[i].SentAt = &now
			}
		}
	}
	return nil
}
