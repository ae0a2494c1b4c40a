// roster/roster.go
package roster

import (
	"sync"

	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/network"
)

// Player is one roster entry. The connection handle is transient and
// replaced on reconnect; the id and roster position are stable.
type Player struct {
	ID        string
	Name      string
	Conn      network.Connection
	Connected bool
}

// Roster is the ordered player list of one room. Order is append order
// of first join and is never rearranged; drawer rotation indexes into
// the connected subsequence at the moment it is computed.
type Roster struct {
	mutex   sync.RWMutex
	players []*Player
}

func New() *Roster {
	return &Roster{}
}

// Join adds a player or, if the id is already present, reattaches it to
// the given connection (the reconnect path). Returns the entry and
// whether this was a reconnect.
func (r *Roster) Join(playerID, displayName string, conn network.Connection) (*Player, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, p := range r.players {
		if p.ID == playerID {
			p.Conn = conn
			p.Connected = true
			if displayName != "" {
				p.Name = displayName
			}
			return p, true
		}
	}

	p := &Player{ID: playerID, Name: displayName, Conn: conn, Connected: true}
	r.players = append(r.players, p)
	return p, false
}

// MarkDisconnected flips the connected flag. The entry stays in place so
// the player can reconnect with the same id, score and roster position.
// Returns true when every entry is now disconnected, which is the signal
// to tear the whole room down.
func (r *Roster) MarkDisconnected(playerID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, p := range r.players {
		if p.ID == playerID {
			p.Connected = false
			break
		}
	}

	for _, p := range r.players {
		if p.Connected {
			return false
		}
	}
	return len(r.players) > 0
}

func (r *Roster) Get(playerID string) (*Player, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, p := range r.players {
		if p.ID == playerID {
			return p, true
		}
	}
	return nil, false
}

// Connected returns the connected subsequence in roster order.
func (r *Roster) Connected() []*Player {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	connected := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.Connected {
			connected = append(connected, p)
		}
	}
	return connected
}

func (r *Roster) ConnectedCount() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	count := 0
	for _, p := range r.players {
		if p.Connected {
			count++
		}
	}
	return count
}

// All returns every entry, connected or not, in roster order.
func (r *Roster) All() []*Player {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	all := make([]*Player, len(r.players))
	copy(all, r.players)
	return all
}

func (r *Roster) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.players)
}

// Views is the public projection broadcast as the player list.
func (r *Roster) Views() []models.PlayerView {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	views := make([]models.PlayerView, 0, len(r.players))
	for _, p := range r.players {
		views = append(views, models.PlayerView{ID: p.ID, Name: p.Name, Connected: p.Connected})
	}
	return views
}
