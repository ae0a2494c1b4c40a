package relay

import (
	"encoding/json"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/wfunc/drawguess/broadcast"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/roster"
)

func TestMain(m *testing.M) {
	logger.InitDevelopment()
	os.Exit(m.Run())
}

type sentMessage struct {
	MsgID uint16
	Data  []byte
}

// MockConnection records everything sent through it.
type MockConnection struct {
	mutex sync.Mutex
	sent  []sentMessage
}

func (m *MockConnection) Send(msgID uint16, data []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sent = append(m.sent, sentMessage{MsgID: msgID, Data: data})
	return nil
}

func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func (m *MockConnection) messages() []sentMessage {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make([]sentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

func stroke(x, y float64) models.Stroke {
	color := "#000000"
	return models.Stroke{X: x, Y: y, Color: &color}
}

func newTestRelay(conns ...*MockConnection) (*Relay, *roster.Roster) {
	r := roster.New()
	for i, conn := range conns {
		r.Join(string(rune('a'+i)), "player", conn)
	}
	return New(broadcast.NewRosterBroadcaster(r)), r
}

func TestRelay_RecordAndClear(t *testing.T) {
	relay, _ := newTestRelay()

	relay.Record(stroke(1, 2))
	relay.Record(stroke(3, 4))
	if relay.Len() != 2 {
		t.Fatalf("Expected 2 buffered strokes, got %d", relay.Len())
	}

	relay.Clear()
	if relay.Len() != 0 {
		t.Fatalf("Expected empty buffer after Clear, got %d", relay.Len())
	}
}

func TestRelay_BroadcastStrokeSkipsOrigin(t *testing.T) {
	origin := &MockConnection{}
	other := &MockConnection{}
	relay, _ := newTestRelay(origin, other)

	relay.BroadcastStroke(origin, stroke(5, 6))

	if len(origin.messages()) != 0 {
		t.Error("Origin connection should not receive its own stroke")
	}

	msgs := other.messages()
	if len(msgs) != 1 || msgs[0].MsgID != network.MsgTypeStrokeBroadcast {
		t.Fatalf("Expected exactly one stroke on the other connection, got %+v", msgs)
	}
}

func TestRelay_ReplayIsClearThenHistoryInOrder(t *testing.T) {
	member := &MockConnection{}
	relay, _ := newTestRelay(member)

	recorded := []models.Stroke{stroke(1, 1), stroke(2, 2), stroke(3, 3)}
	for _, s := range recorded {
		relay.Record(s)
	}

	late := &MockConnection{}
	relay.Replay(late)

	msgs := late.messages()
	if len(msgs) != len(recorded)+1 {
		t.Fatalf("Expected %d messages (clear + strokes), got %d", len(recorded)+1, len(msgs))
	}
	if msgs[0].MsgID != network.MsgTypeCanvasCleared {
		t.Fatalf("Replay must start with a clear signal, got msg %d", msgs[0].MsgID)
	}
	for i, s := range recorded {
		if msgs[i+1].MsgID != network.MsgTypeStrokeBroadcast {
			t.Fatalf("Message %d: expected a stroke, got msg %d", i+1, msgs[i+1].MsgID)
		}
		var got models.Stroke
		if err := json.Unmarshal(msgs[i+1].Data, &got); err != nil {
			t.Fatalf("Message %d: invalid stroke payload: %v", i+1, err)
		}
		if got.X != s.X || got.Y != s.Y {
			t.Errorf("Message %d: expected stroke (%v,%v), got (%v,%v)", i+1, s.X, s.Y, got.X, got.Y)
		}
	}

	// Replay goes to the late connection alone.
	if len(member.messages()) != 0 {
		t.Error("Replay must not disturb existing room members")
	}
}
