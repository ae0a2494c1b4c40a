package roster

import (
	"net"
	"testing"
	"time"

	"github.com/wfunc/drawguess/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct{}

func (m *MockConnection) Send(msgID uint16, data []byte) error { return nil }
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestRoster_JoinPreservesOrder(t *testing.T) {
	r := New()
	r.Join("a", "Alice", &MockConnection{})
	r.Join("b", "Bob", &MockConnection{})
	r.Join("c", "Carol", &MockConnection{})

	all := r.All()
	if len(all) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(all))
	}
	for i, want := range []string{"a", "b", "c"} {
		if all[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, all[i].ID)
		}
	}
}

func TestRoster_RejoinIsReconnectNotDuplicate(t *testing.T) {
	r := New()
	first := &MockConnection{}
	second := &MockConnection{}

	r.Join("a", "Alice", first)
	r.Join("b", "Bob", &MockConnection{})
	r.MarkDisconnected("a")

	p, reconnected := r.Join("a", "Alice", second)
	if !reconnected {
		t.Fatal("Expected a rejoin with the same id to be a reconnect")
	}
	if p.Conn != second {
		t.Error("Reconnect should replace the connection handle")
	}
	if !p.Connected {
		t.Error("Reconnect should mark the player connected")
	}
	if r.Len() != 2 {
		t.Errorf("Expected 2 entries after reconnect, got %d", r.Len())
	}
	// Roster position is stable across reconnects.
	if all := r.All(); all[0].ID != "a" {
		t.Errorf("Expected player a to keep position 0, got %s", all[0].ID)
	}
}

func TestRoster_ConnectedSubsequence(t *testing.T) {
	r := New()
	r.Join("a", "Alice", &MockConnection{})
	r.Join("b", "Bob", &MockConnection{})
	r.Join("c", "Carol", &MockConnection{})

	r.MarkDisconnected("b")

	connected := r.Connected()
	if len(connected) != 2 {
		t.Fatalf("Expected 2 connected players, got %d", len(connected))
	}
	if connected[0].ID != "a" || connected[1].ID != "c" {
		t.Errorf("Expected connected subsequence [a c], got [%s %s]", connected[0].ID, connected[1].ID)
	}
	if r.ConnectedCount() != 2 {
		t.Errorf("Expected connected count 2, got %d", r.ConnectedCount())
	}
}

func TestRoster_MarkDisconnectedSignalsAbandonment(t *testing.T) {
	r := New()
	r.Join("a", "Alice", &MockConnection{})
	r.Join("b", "Bob", &MockConnection{})

	if abandoned := r.MarkDisconnected("a"); abandoned {
		t.Fatal("Room should not be abandoned while a player remains connected")
	}
	if abandoned := r.MarkDisconnected("b"); !abandoned {
		t.Fatal("Room should be abandoned once every entry is disconnected")
	}
}

func TestRoster_MarkDisconnectedOnEmptyRoster(t *testing.T) {
	r := New()
	if abandoned := r.MarkDisconnected("ghost"); abandoned {
		t.Fatal("An empty roster is not an abandoned room")
	}
}

func TestRoster_Views(t *testing.T) {
	r := New()
	r.Join("a", "Alice", &MockConnection{})
	r.Join("b", "Bob", &MockConnection{})
	r.MarkDisconnected("b")

	views := r.Views()
	if len(views) != 2 {
		t.Fatalf("Expected 2 views, got %d", len(views))
	}
	if views[0].ID != "a" || !views[0].Connected {
		t.Errorf("Unexpected view for a: %+v", views[0])
	}
	if views[1].ID != "b" || views[1].Connected {
		t.Errorf("Unexpected view for b: %+v", views[1])
	}
}
