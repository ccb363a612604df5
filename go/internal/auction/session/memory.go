package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/kpatel744/auctioneer/go/internal/models"
)

// MemoryStorage is an in-process session store for tests and single-node
// deployments.
type MemoryStorage struct {
	mu       sync.RWMutex
	sessions map[string]models.DeviceSession
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{sessions: make(map[string]models.DeviceSession)}
}

func (s *MemoryStorage) Get(_ context.Context, deviceID string) (*models.DeviceSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[deviceID]
	if !ok {
		return nil, fmt.Errorf("device %q: %w", deviceID, ErrNoSession)
	}
	cp := sess
	return &cp, nil
}

func (s *MemoryStorage) Put(_ context.Context, sess *models.DeviceSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.DeviceID] = *sess
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, deviceID)
	return nil
}
