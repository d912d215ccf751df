package emu

import (
	"slices"
	"sync"

	"dsfront/hw/input"
)

type inputKind uint8

const (
	touchMove inputKind = iota
	touchRelease
	keyPress
	keyRelease
)

type inputEvent struct {
	kind inputKind
	x, y int
	key  input.Key
}

// inputQueue carries input events from the interactive thread to the
// execution thread. Pushing never blocks: when the queue is full, the oldest
// pending touch position is dropped, or the oldest event if there's none.
type inputQueue struct {
	mu     sync.Mutex
	events []inputEvent
	max    int
}

const inputQueueSize = 64

func newInputQueue(size int) *inputQueue {
	return &inputQueue{
		events: make([]inputEvent, 0, size),
		max:    size,
	}
}

func (q *inputQueue) push(ev inputEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) >= q.max {
		i := slices.IndexFunc(q.events, func(ev inputEvent) bool { return ev.kind == touchMove })
		if i < 0 {
			i = 0
		}
		q.events = slices.Delete(q.events, i, i+1)
	}
	q.events = append(q.events, ev)
}

// drain appends all pending events to buf and empties the queue.
func (q *inputQueue) drain(buf []inputEvent) []inputEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	buf = append(buf, q.events...)
	q.events = q.events[:0]
	return buf
}

func (q *inputQueue) clear() {
	q.mu.Lock()
	q.events = q.events[:0]
	q.mu.Unlock()
}

// dispatch forwards ev to the core.
func (ev inputEvent) dispatch(core Core) {
	switch ev.kind {
	case touchMove:
		core.InjectTouch(ev.x, ev.y)
	case touchRelease:
		core.ReleaseTouch()
	case keyPress:
		core.InjectKey(ev.key, true)
	case keyRelease:
		core.InjectKey(ev.key, false)
	}
}
