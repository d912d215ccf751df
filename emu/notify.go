package emu

import (
	"fmt"
	"sync"
)

// Event identifies a notification sent to the interactive thread.
type Event uint8

const (
	// Edge-triggered events are delivered once per Post, in order.
	SessionStarted Event = iota
	SessionStopped
	SessionPaused
	SessionResumed
	SessionReset
	FullscreenToggled
	LimitFPSChanged

	// Coalesced events are delivered at most once per Drain.
	TitleChanged
	LayoutChanged
	FrameRendered

	eventCount
)

var eventNames = [eventCount]string{
	"SessionStarted",
	"SessionStopped",
	"SessionPaused",
	"SessionResumed",
	"SessionReset",
	"FullscreenToggled",
	"LimitFPSChanged",
	"TitleChanged",
	"LayoutChanged",
	"FrameRendered",
}

func (e Event) String() string {
	if e < eventCount {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", uint8(e))
}

func (e Event) coalesced() bool { return e >= TitleChanged && e < eventCount }

// A Notification is an event delivered by Notifications.Drain. Text is only
// set for TitleChanged.
type Notification struct {
	Event Event
	Text  string
}

// Notifications carries events from any goroutine to the interactive thread,
// which drains them once per tick.
type Notifications struct {
	mu      sync.Mutex
	edges   []Notification
	pending [eventCount]bool
	title   string

	// set once the wake hook has been called, until the next drain.
	signaled bool
	wake     func()

	tmp []Notification
}

func NewNotifications() *Notifications {
	return &Notifications{}
}

// OnPost sets the function called after an event is posted, when the queue
// was empty. It's called from the posting goroutine, so it must be safe for
// concurrent use and must not block.
func (n *Notifications) OnPost(wake func()) {
	n.mu.Lock()
	n.wake = wake
	n.mu.Unlock()
}

// Post queues ev. Coalesced events already pending are not queued again.
func (n *Notifications) Post(ev Event) {
	n.mu.Lock()
	if ev.coalesced() {
		n.pending[ev] = true
	} else {
		n.edges = append(n.edges, Notification{Event: ev})
	}
	wake := n.signal()
	n.mu.Unlock()

	if wake != nil {
		wake()
	}
}

// SetTitle posts a TitleChanged event. Only the latest title is delivered.
func (n *Notifications) SetTitle(text string) {
	n.mu.Lock()
	n.title = text
	n.pending[TitleChanged] = true
	wake := n.signal()
	n.mu.Unlock()

	if wake != nil {
		wake()
	}
}

// signal returns the wake hook if it must be called. n.mu must be held.
func (n *Notifications) signal() func() {
	if n.signaled || n.wake == nil {
		return nil
	}
	n.signaled = true
	return n.wake
}

// Drain calls fn for each pending notification, edge-triggered ones first in
// the order they were posted, then coalesced ones. fn is called without any
// lock held and may post new events, which are delivered by the next Drain.
func (n *Notifications) Drain(fn func(Notification)) {
	n.mu.Lock()
	list := append(n.tmp[:0], n.edges...)
	n.edges = n.edges[:0]
	for ev := TitleChanged; ev < eventCount; ev++ {
		if !n.pending[ev] {
			continue
		}
		n.pending[ev] = false
		nt := Notification{Event: ev}
		if ev == TitleChanged {
			nt.Text = n.title
		}
		list = append(list, nt)
	}
	n.signaled = false
	n.mu.Unlock()

	for _, nt := range list {
		fn(nt)
	}

	// Drain is only called from the interactive thread.
	n.mu.Lock()
	n.tmp = list[:0]
	n.mu.Unlock()
}
