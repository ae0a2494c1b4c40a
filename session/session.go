// session/session.go
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/wfunc/drawguess/network"
)

// Session is the per-connection context. Identity fields are bound once,
// at join time, instead of being mutated ad hoc on the raw connection.
type Session struct {
	ID         string
	Conn       network.Connection
	CreatedAt  time.Time
	LastActive time.Time

	mutex       sync.RWMutex
	playerID    string
	displayName string
	roomCode    string
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

// Bind attaches the player identity and room to this connection. Called
// exactly once per join; a reconnect arrives on a fresh connection with
// a fresh session, so rebinding is not supported.
func (s *Session) Bind(playerID, displayName, roomCode string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.playerID = playerID
	s.displayName = displayName
	s.roomCode = roomCode
}

func (s *Session) PlayerID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.playerID
}

func (s *Session) DisplayName() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.displayName
}

func (s *Session) RoomCode() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.roomCode
}

func (s *Session) Send(msgID uint16, data []byte) error {
	s.LastActive = time.Now()
	return s.Conn.Send(msgID, data)
}

// SendJSON marshals v and sends it on this session's connection.
func (s *Session) SendJSON(msgID uint16, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Send(msgID, data)
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager tracks every live connection by session id.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
