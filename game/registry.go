// game/registry.go
package game

import (
	"sync"

	"github.com/wfunc/drawguess/directory"
	"github.com/wfunc/drawguess/logger"
)

// Registry is the only process-wide mutable structure: the map from
// room code to its live session. Every other piece of state is owned by
// exactly one session and never shared across rooms.
type Registry struct {
	mutex    sync.RWMutex
	rooms    map[string]*Session
	dir      directory.Directory
	settings Settings
	stats    Stats
}

func NewRegistry(dir directory.Directory, settings Settings, stats Stats) *Registry {
	return &Registry{
		rooms:    make(map[string]*Session),
		dir:      dir,
		settings: settings,
		stats:    stats,
	}
}

// GetOrCreate returns the room's session, creating it on first join.
// The second result reports whether a new session was created.
func (r *Registry) GetOrCreate(code string) (*Session, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if sess, exists := r.rooms[code]; exists {
		return sess, false
	}

	sess := NewSession(code, r.dir, r.settings, r.stats, func() {
		r.remove(code)
	})
	r.rooms[code] = sess
	logger.Log.Infof("Created session for room %s", code)
	return sess, true
}

func (r *Registry) Get(code string) (*Session, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	sess, exists := r.rooms[code]
	return sess, exists
}

// Destroy removes and closes a room session.
func (r *Registry) Destroy(code string) {
	r.mutex.Lock()
	sess, exists := r.rooms[code]
	delete(r.rooms, code)
	r.mutex.Unlock()

	if exists {
		sess.Close()
	}
}

func (r *Registry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.rooms)
}

// remove drops the map entry without closing; used as the session's
// self-destruction hook (the session is already closing itself).
func (r *Registry) remove(code string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.rooms[code]; exists {
		delete(r.rooms, code)
		logger.Log.Infof("Removed session for room %s", code)
	}
}
