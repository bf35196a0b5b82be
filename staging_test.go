// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package minibox_test

import (
	"testing"

	"code.hybscloud.com/minibox"
	"code.hybscloud.com/minibox/internal/alloc"
)

func TestReserveThenWrite(t *testing.T) {
	s := minibox.Reserve[pair]()
	bx := s.Write(pair{a: 3, b: 4})
	if got := bx.Ref().b; got != 4 {
		t.Fatalf("Ref().b: got %d, want 4", got)
	}
	bx.Drop()
}

func TestReserveBoxedThenWrite(t *testing.T) {
	allocs0, _ := alloc.Stats()

	s := minibox.Reserve[blob]()
	allocs1, _ := alloc.Stats()
	if got := allocs1 - allocs0; got != 1 {
		t.Fatalf("allocations during Reserve: got %d, want 1", got)
	}

	var v blob
	v[100] = 0x7f
	bx := s.Write(v)
	if got := bx.Ref()[100]; got != 0x7f {
		t.Fatalf("Ref()[100]: got %#x, want 0x7f", got)
	}

	// Write reuses the reservation; no further allocation.
	allocs2, _ := alloc.Stats()
	if got := allocs2 - allocs1; got != 0 {
		t.Fatalf("allocations during Write: got %d, want 0", got)
	}
	bx.Drop()
}

func TestWriteOverwritesWithoutDropping(t *testing.T) {
	before := inlineDrops.Load()

	// Staged storage never held a live value, so Write must not drop the
	// bytes it replaces.
	s := minibox.Reserve[inlineDropper]()
	bx := s.Write(inlineDropper(9))
	if got := inlineDrops.Load() - before; got != 0 {
		t.Fatalf("drops during Write: got %d, want 0", got)
	}
	bx.Drop()
	if got := inlineDrops.Load() - before; got != 1 {
		t.Fatalf("drops after box drop: got %d, want 1", got)
	}
}

func TestEstablishInPlaceThenAssumeInit(t *testing.T) {
	s := minibox.Reserve[blob]()

	// Establish the value by external means, then trust it.
	for i := range s.Ref() {
		s.Ref()[i] = byte(i)
	}
	bx := s.AssumeInit()

	if got := bx.Ref()[255]; got != 255 {
		t.Fatalf("Ref()[255]: got %d, want 255", got)
	}
	bx.Drop()
}

func TestDiscardReleasesReservation(t *testing.T) {
	allocs0, frees0 := alloc.Stats()

	s := minibox.Reserve[blob]()
	s.Discard()

	allocs1, frees1 := alloc.Stats()
	if got := allocs1 - allocs0; got != 1 {
		t.Fatalf("allocations: got %d, want 1", got)
	}
	if got := frees1 - frees0; got != 1 {
		t.Fatalf("frees: got %d, want 1", got)
	}
}

func TestDiscardRunsNoDrop(t *testing.T) {
	before := inlineDrops.Load()

	s := minibox.Reserve[inlineDropper]()
	s.Discard()

	if got := inlineDrops.Load() - before; got != 0 {
		t.Fatalf("drops during Discard: got %d, want 0", got)
	}
}

func TestReserveZeroedIsZero(t *testing.T) {
	s := minibox.ReserveZeroed[[64]byte]()
	for i, got := range s.Ref() {
		if got != 0 {
			t.Fatalf("reserved byte %d: got %d, want 0", i, got)
		}
	}
	bx := s.AssumeInit()
	bx.Drop()
}
