package emu

import (
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNotificationsDrain(t *testing.T) {
	n := NewNotifications()

	n.Post(FrameRendered)
	n.Post(SessionStarted)
	n.SetTitle("first")
	n.Post(FrameRendered)
	n.Post(LayoutChanged)
	n.Post(SessionPaused)
	n.SetTitle("second")
	n.Post(SessionPaused)

	var got []Notification
	n.Drain(func(nt Notification) { got = append(got, nt) })

	want := []Notification{
		{Event: SessionStarted},
		{Event: SessionPaused},
		{Event: SessionPaused},
		{Event: TitleChanged, Text: "second"},
		{Event: LayoutChanged},
		{Event: FrameRendered},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Drain() mismatch (-want +got):\n%s", diff)
	}

	got = got[:0]
	n.Drain(func(nt Notification) { got = append(got, nt) })
	if len(got) != 0 {
		t.Errorf("second Drain() = %v, want nothing", got)
	}
}

func TestNotificationsPostFromDrain(t *testing.T) {
	n := NewNotifications()
	n.Post(SessionStarted)

	var got []Event
	n.Drain(func(nt Notification) {
		got = append(got, nt.Event)
		n.Post(LayoutChanged)
	})
	n.Drain(func(nt Notification) { got = append(got, nt.Event) })

	if diff := cmp.Diff([]Event{SessionStarted, LayoutChanged}, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestNotificationsWake(t *testing.T) {
	n := NewNotifications()
	var wakes atomic.Int32
	n.OnPost(func() { wakes.Add(1) })

	n.Post(FrameRendered)
	n.Post(FrameRendered)
	n.SetTitle("title")
	if got := wakes.Load(); got != 1 {
		t.Fatalf("woken %d times before drain, want 1", got)
	}

	n.Drain(func(Notification) {})
	n.Post(SessionStopped)
	if got := wakes.Load(); got != 2 {
		t.Fatalf("woken %d times after drain, want 2", got)
	}
}

func TestEventString(t *testing.T) {
	if got := FullscreenToggled.String(); got != "FullscreenToggled" {
		t.Errorf("String() = %q", got)
	}
	if got := eventCount.String(); got != "Event(10)" {
		t.Errorf("String() = %q", got)
	}
}
