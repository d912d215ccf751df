package emu

import (
	"image/color"
	"sync"
	"testing"
)

func TestFrameExchange(t *testing.T) {
	fx := NewFrameExchange()

	if _, fresh := fx.Acquire(); fresh {
		t.Fatal("Acquire() on an empty exchange returned a fresh frame")
	}

	fx.Back().Top().Set(0, 0, color.RGBA{R: 1, A: 255})
	fx.Publish()
	fx.Back().Top().Set(0, 0, color.RGBA{R: 2, A: 255})
	fx.Publish()

	// Only the latest frame is seen.
	fp, fresh := fx.Acquire()
	if !fresh {
		t.Fatal("Acquire() after Publish() returned a stale frame")
	}
	if fp.Seq != 2 {
		t.Errorf("Seq = %d, want 2", fp.Seq)
	}
	if r := fp.Top().RGBAAt(0, 0).R; r != 2 {
		t.Errorf("pixel red = %d, want 2", r)
	}

	fp2, fresh := fx.Acquire()
	if fresh || fp2 != fp {
		t.Errorf("second Acquire() = %p, %v, want %p, false", fp2, fresh, fp)
	}

	// The producer never gets the buffer being read.
	for range 5 {
		if fx.Back() == fp {
			t.Fatal("Back() returned the acquired buffer")
		}
		fx.Publish()
	}
}

func TestFrameExchangeConcurrent(t *testing.T) {
	fx := NewFrameExchange()
	const frames = 2000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range frames {
			fp := fx.Back()
			v := uint8(i)
			fp.Top().Pix[0] = v
			fp.Bottom().Pix[0] = v
			fx.Publish()
		}
	}()

	var last uint64
	for last < frames {
		fp, fresh := fx.Acquire()
		if !fresh {
			continue
		}
		if fp.Seq <= last {
			t.Fatalf("Seq went from %d to %d", last, fp.Seq)
		}
		last = fp.Seq
		if top, bottom := fp.Top().Pix[0], fp.Bottom().Pix[0]; top != bottom || top != uint8(fp.Seq-1) {
			t.Fatalf("frame %d: torn buffer (top %d, bottom %d)", fp.Seq, top, bottom)
		}
	}
	wg.Wait()
}
