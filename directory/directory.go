// directory/directory.go
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/wfunc/drawguess/models"
)

// Room configuration bounds, enforced on creation.
const (
	MinCapacity    = 2
	MaxCapacity    = 12
	MinGameMinutes = 1
	MaxGameMinutes = 60
)

// ErrRoomNotFound is returned by Lookup when no room has the code.
var ErrRoomNotFound = errors.New("room not found")

// Directory is the external room directory the session engine consults
// when a room is about to start: it maps a room code to the capacity and
// total game time the room was created with.
type Directory interface {
	Lookup(ctx context.Context, roomCode string) (models.RoomConfig, error)
	Create(ctx context.Context, roomCode string, capacity, totalGameTimeMinutes int) error
	Close() error
}

// Validate checks the creation bounds.
func Validate(capacity, totalGameTimeMinutes int) error {
	if capacity < MinCapacity || capacity > MaxCapacity {
		return fmt.Errorf("invalid max players: must be between %d and %d", MinCapacity, MaxCapacity)
	}
	if totalGameTimeMinutes < MinGameMinutes || totalGameTimeMinutes > MaxGameMinutes {
		return fmt.Errorf("invalid total game time: must be between %d and %d minutes", MinGameMinutes, MaxGameMinutes)
	}
	return nil
}
