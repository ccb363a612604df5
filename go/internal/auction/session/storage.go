package session

import (
	"context"
	"errors"

	"github.com/kpatel744/auctioneer/go/internal/models"
)

// ErrNoSession is returned when the device has no stored binding.
var ErrNoSession = errors.New("no session for device")

// Storage persists device sessions so a reloaded or reconnected device lands
// back in its room as the same team.
type Storage interface {
	Get(ctx context.Context, deviceID string) (*models.DeviceSession, error)
	Put(ctx context.Context, sess *models.DeviceSession) error
	Delete(ctx context.Context, deviceID string) error
}
