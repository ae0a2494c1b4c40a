package game

import (
	"testing"

	"github.com/wfunc/drawguess/models"
)

func newTestRegistry() *Registry {
	dir := &stubDirectory{cfg: models.RoomConfig{Capacity: 2, TotalGameTimeMinutes: 1}}
	return NewRegistry(dir, testSettings(), nil)
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := newTestRegistry()

	first, created := r.GetOrCreate("room-1")
	if !created {
		t.Fatal("First lookup should create the session")
	}
	second, created := r.GetOrCreate("room-1")
	if created {
		t.Fatal("Second lookup must not create a new session")
	}
	if first != second {
		t.Fatal("Expected the same session instance for the same code")
	}
	if r.Count() != 1 {
		t.Fatalf("Expected 1 room, got %d", r.Count())
	}

	if _, created := r.GetOrCreate("room-2"); !created {
		t.Fatal("A different code should create a new session")
	}
	if r.Count() != 2 {
		t.Fatalf("Expected 2 rooms, got %d", r.Count())
	}
}

func TestRegistry_Get(t *testing.T) {
	r := newTestRegistry()

	if _, exists := r.Get("missing"); exists {
		t.Fatal("Get must not create sessions")
	}

	created, _ := r.GetOrCreate("room-1")
	got, exists := r.Get("room-1")
	if !exists || got != created {
		t.Fatal("Get should return the created session")
	}
}

func TestRegistry_DestroyClosesAndRemoves(t *testing.T) {
	r := newTestRegistry()
	sess, _ := r.GetOrCreate("room-1")

	r.Destroy("room-1")

	if r.Count() != 0 {
		t.Fatalf("Expected empty registry after Destroy, got %d", r.Count())
	}
	if sess.Phase() != PhaseEnded {
		t.Errorf("Destroyed session should read as ended, got %s", sess.Phase())
	}

	// Destroying an unknown code is a no-op.
	r.Destroy("room-1")
}

func TestRegistry_AbandonedRoomRemovesItself(t *testing.T) {
	r := newTestRegistry()
	room, _ := r.GetOrCreate("room-1")

	a := joinPlayer(room, "a", "Alice")
	b := joinPlayer(room, "b", "Bob")
	waitFor(t, "match to start", func() bool { return room.Phase() == PhaseActive })

	room.HandleDisconnect(a.sess)
	room.HandleDisconnect(b.sess)

	if room.Phase() != PhaseEnded {
		t.Errorf("Abandoned room should be destroyed, got %s", room.Phase())
	}
	if r.Count() != 0 {
		t.Errorf("Abandoned room should remove itself from the registry, got %d entries", r.Count())
	}
}
