package slides

import (
	"errors"
	"testing"
	"time"
)

func TestStore_CreateGetSession(t *testing.T) {
	s := NewStore()
	sess, err := s.CreateSession(testImages(3))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.ID == "" {
		t.Error("session ID is empty")
	}
	got, ok := s.GetSession(sess.ID)
	if !ok || got != sess {
		t.Fatal("GetSession did not return the created session")
	}
	if _, ok := s.GetSession("nonexistent"); ok {
		t.Error("GetSession should return false for missing ID")
	}

	other, _ := s.CreateSession(testImages(3))
	if other.ID == sess.ID {
		t.Error("sessions should get distinct IDs")
	}
}

func TestStore_CreateSession_NoSlides(t *testing.T) {
	s := NewStore()
	if _, err := s.CreateSession(nil); !errors.Is(err, ErrNoSlides) {
		t.Fatalf("err = %v, want ErrNoSlides", err)
	}
}

func TestStore_UnknownSession(t *testing.T) {
	s := NewStore()
	if err := s.Mount("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Mount err = %v", err)
	}
	if _, err := s.Toggle("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Toggle err = %v", err)
	}
	if _, err := s.SetMode("missing", Video); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("SetMode err = %v", err)
	}
	if err := s.Paginate("missing", 1); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Paginate err = %v", err)
	}
	s.Release("missing")
	if s.Unmount("missing") {
		t.Error("Unmount should report false for missing session")
	}
}

func TestStore_ToggleKeepsPageAndPublishesMode(t *testing.T) {
	s := NewStore()
	sess, _ := s.CreateSession(testImages(3))
	hub, _ := s.Broadcaster(sess.ID)
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	for i := 0; i < 5; i++ {
		if err := s.Paginate(sess.ID, 1); err != nil {
			t.Fatal(err)
		}
		<-ch
	}

	m, err := s.Toggle(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if m != Video {
		t.Fatalf("Toggle returned %v, want video", m)
	}
	ev := <-ch
	if ev.Kind != EventMode || ev.Mode != Video || ev.Page != 5 {
		t.Errorf("event %+v, want mode event at page 5", ev)
	}
	if sess.Page() != 5 {
		t.Errorf("Page %d, want 5", sess.Page())
	}
}

func TestStore_SetModeUnchangedPublishesNothing(t *testing.T) {
	s := NewStore()
	sess, _ := s.CreateSession(testImages(2))
	hub, _ := s.Broadcaster(sess.ID)
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	if _, err := s.SetMode(sess.ID, Showcase); err != nil {
		t.Fatal(err)
	}
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestStore_MountedLoopPaginates(t *testing.T) {
	s := NewStore()
	sess, _ := s.CreateSession(testImages(3))
	if _, err := s.SetMode(sess.ID, Video); err != nil {
		t.Fatal(err)
	}
	hub, _ := s.Broadcaster(sess.ID)
	ch := hub.Subscribe()

	if err := s.Mount(sess.ID); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := s.Mount(sess.ID); err != nil {
		t.Fatalf("second Mount: %v", err)
	}
	if !s.Mounted(sess.ID) {
		t.Fatal("session should be mounted")
	}
	defer s.Unmount(sess.ID)

	select {
	case ev := <-ch:
		if ev.Kind != EventSlide || ev.Page != 1 {
			t.Errorf("event %+v, want slide event for page 1", ev)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the timer to paginate")
	}
}

func TestStore_ReleaseStopsTimerWhenLastViewerLeaves(t *testing.T) {
	s := NewStore()
	sess, _ := s.CreateSession(testImages(3))
	hub, _ := s.Broadcaster(sess.ID)
	a := hub.Subscribe()
	b := hub.Subscribe()
	_ = s.Mount(sess.ID)

	hub.Unsubscribe(a)
	s.Release(sess.ID)
	if !s.Mounted(sess.ID) {
		t.Fatal("timer should keep running while a viewer remains")
	}
	hub.Unsubscribe(b)
	s.Release(sess.ID)
	if s.Mounted(sess.ID) {
		t.Fatal("timer should stop when the last viewer leaves")
	}
	if _, ok := s.GetSession(sess.ID); !ok {
		t.Fatal("released session should remain until swept")
	}
}

func TestStore_Sweep(t *testing.T) {
	s := NewStore()
	now := time.Now().UTC()
	s.now = func() time.Time { return now }

	idle, _ := s.CreateSession(testImages(1))
	watched, _ := s.CreateSession(testImages(1))
	hub, _ := s.Broadcaster(watched.ID)
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	if n := s.Sweep(time.Minute); n != 0 {
		t.Fatalf("Sweep removed %d fresh sessions", n)
	}

	now = now.Add(2 * time.Minute)
	if n := s.Sweep(time.Minute); n != 1 {
		t.Fatalf("Sweep removed %d, want 1", n)
	}
	if _, ok := s.GetSession(idle.ID); ok {
		t.Error("idle session should be swept")
	}
	if _, ok := s.GetSession(watched.ID); !ok {
		t.Error("watched session should survive the sweep")
	}
}

func TestStore_UnmountClosesSubscribers(t *testing.T) {
	s := NewStore()
	sess, _ := s.CreateSession(testImages(2))
	hub, _ := s.Broadcaster(sess.ID)
	ch := hub.Subscribe()
	_ = s.Mount(sess.ID)

	if !s.Unmount(sess.ID) {
		t.Fatal("Unmount should report the session")
	}
	if _, open := <-ch; open {
		t.Error("subscriber channel should close on unmount")
	}
	if _, ok := s.GetSession(sess.ID); ok {
		t.Error("session should be gone after Unmount")
	}
}
