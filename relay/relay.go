// relay/relay.go
package relay

import (
	"sync"

	"github.com/wfunc/drawguess/broadcast"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/network"
)

// Relay buffers the current round's strokes and fans them out. The
// buffer exists so a client joining or reconnecting mid-round can be
// brought to the exact canvas state without disturbing anyone else.
type Relay struct {
	mutex   sync.Mutex
	strokes []models.Stroke
	b       broadcast.Broadcaster
}

func New(b broadcast.Broadcaster) *Relay {
	return &Relay{b: b}
}

// Record appends one stroke to the replay buffer.
func (r *Relay) Record(s models.Stroke) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.strokes = append(r.strokes, s)
}

// Clear empties the replay buffer. Called on round start and on an
// explicit clear from the drawer.
func (r *Relay) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.strokes = nil
}

// BroadcastStroke relays a stroke to everyone except its origin.
func (r *Relay) BroadcastStroke(origin network.Connection, s models.Stroke) {
	r.b.BroadcastExcept(origin, network.MsgTypeStrokeBroadcast, s)
}

// Replay sends one clear signal followed by every buffered stroke, in
// recorded order, to the given connection alone.
func (r *Relay) Replay(conn network.Connection) {
	r.mutex.Lock()
	strokes := make([]models.Stroke, len(r.strokes))
	copy(strokes, r.strokes)
	r.mutex.Unlock()

	r.b.SendTo(conn, network.MsgTypeCanvasCleared, nil)
	for _, s := range strokes {
		r.b.SendTo(conn, network.MsgTypeStrokeBroadcast, s)
	}
}

// Len reports the number of buffered strokes.
func (r *Relay) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.strokes)
}
