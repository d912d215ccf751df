package emu

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"dsfront/hw/input"
)

func TestInputQueueOverflow(t *testing.T) {
	q := newInputQueue(4)

	q.push(inputEvent{kind: keyPress, key: input.KeyA})
	q.push(inputEvent{kind: touchMove, x: 1, y: 1})
	q.push(inputEvent{kind: touchMove, x: 2, y: 2})
	q.push(inputEvent{kind: keyRelease, key: input.KeyA})
	q.push(inputEvent{kind: touchMove, x: 3, y: 3}) // drops (1,1)
	q.push(inputEvent{kind: touchRelease})         // drops (2,2)

	want := []inputEvent{
		{kind: keyPress, key: input.KeyA},
		{kind: keyRelease, key: input.KeyA},
		{kind: touchMove, x: 3, y: 3},
		{kind: touchRelease},
	}
	got := q.drain(nil)
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(inputEvent{})); diff != "" {
		t.Errorf("drain() mismatch (-want +got):\n%s", diff)
	}
	if got := q.drain(nil); len(got) != 0 {
		t.Errorf("queue not empty after drain: %v", got)
	}
}

func TestInputQueueOverflowWithoutMoves(t *testing.T) {
	q := newInputQueue(2)
	q.push(inputEvent{kind: keyPress, key: input.KeyA})
	q.push(inputEvent{kind: keyPress, key: input.KeyB})
	q.push(inputEvent{kind: keyPress, key: input.KeyX})

	want := []inputEvent{
		{kind: keyPress, key: input.KeyB},
		{kind: keyPress, key: input.KeyX},
	}
	if diff := cmp.Diff(want, q.drain(nil), cmp.AllowUnexported(inputEvent{})); diff != "" {
		t.Errorf("drain() mismatch (-want +got):\n%s", diff)
	}
}
