// broadcast/broadcast.go
package broadcast

import (
	"encoding/json"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/roster"
)

// Broadcaster fans messages out to a room's connected players. An
// interface so game code can be tested with a recording double.
type Broadcaster interface {
	Broadcast(msgID uint16, v interface{})
	BroadcastExcept(origin network.Connection, msgID uint16, v interface{})
	SendTo(conn network.Connection, msgID uint16, v interface{})
}

// RosterBroadcaster delivers to every connected entry of one roster.
type RosterBroadcaster struct {
	roster *roster.Roster
}

func NewRosterBroadcaster(r *roster.Roster) *RosterBroadcaster {
	return &RosterBroadcaster{roster: r}
}

func (b *RosterBroadcaster) Broadcast(msgID uint16, v interface{}) {
	b.BroadcastExcept(nil, msgID, v)
}

// BroadcastExcept skips the origin connection; the origin already
// applied the event locally (e.g. the drawer's own stroke).
func (b *RosterBroadcaster) BroadcastExcept(origin network.Connection, msgID uint16, v interface{}) {
	data, ok := marshal(msgID, v)
	if !ok {
		return
	}

	for _, p := range b.roster.Connected() {
		if p.Conn == nil || p.Conn == origin {
			continue
		}
		if err := p.Conn.Send(msgID, data); err != nil {
			// Send failures surface as a disconnect on the read side;
			// keep delivering to the rest of the room.
			continue
		}
	}
}

func (b *RosterBroadcaster) SendTo(conn network.Connection, msgID uint16, v interface{}) {
	if conn == nil {
		return
	}
	data, ok := marshal(msgID, v)
	if !ok {
		return
	}
	if err := conn.Send(msgID, data); err != nil {
		logger.Log.Debugf("Direct send of message %d failed: %v", msgID, err)
	}
}

func marshal(msgID uint16, v interface{}) ([]byte, bool) {
	if v == nil {
		return nil, true
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Log.Errorf("Error marshalling message %d: %v", msgID, err)
		return nil, false
	}
	return data, true
}
