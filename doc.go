// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package minibox provides a single-owner container that skips heap
// allocation when the contained value fits in a machine word.
//
// Box[T] is almost a drop-in replacement for an owned heap pointer. A type
// is classified once, per type, into one of three storage strategies:
//
//   - Zero: zero-sized types need no storage at all and never allocate
//   - Inline: word-sized pointer-free types live in the box's own word
//   - Boxed: everything else is heap-allocated as usual
//
// Every subsequent operation (dereference, move-out, decompose, drop)
// re-derives its behavior from that classification alone. A box is exactly
// one word, with no hidden state beyond it.
//
// # Quick Start
//
//	type pair struct {
//	    a uint8
//	    b uint32
//	}
//
//	bx := minibox.New(pair{a: 31, b: 0x90abcdef}) // Inline: no allocation
//	fmt.Println(bx.Ref().a)
//
//	big := minibox.New([1024]byte{})              // Boxed: one allocation
//	defer big.Drop()
//
// # Storage classes
//
// Inline storage moves with the handle: copy the box and the value's
// address changes. Boxed storage is address-stable across handle moves.
// Stable[T] reports which contract applies to a type.
//
//	bx := minibox.New(uint32(7))
//	p0 := bx.Ref()
//	moved := bx
//	p1 := moved.Ref() // different address: inline bytes moved with it
//	_, _ = p0, p1
//
// # Ownership
//
// A box is strictly single-owner. Consuming operations (Drop, IntoInner,
// IntoRaw) invalidate the handle they consume. The decompose/recompose
// pair moves the drop obligation across an unsafe boundary without running
// it:
//
//	raw := bx.IntoRaw()          // bx is dead; caller owns the slot
//	bx2 := minibox.FromRaw(raw)  // obligation reclaimed, exactly once
//	bx2.Drop()
//
// # Staging
//
// Reserve obtains storage before a value exists; Write is the one
// sanctioned transition to an initialized box. Decoding can establish the
// value in place instead and then assume it initialized:
//
//	s := minibox.Reserve[[1024]byte]()
//	if err := dec.Decode(s.Ref()); err != nil {
//	    s.Discard()
//	    return err
//	}
//	bx := s.AssumeInit()
//
// # Destructors
//
// Types implementing Dropper get their Drop called exactly once when the
// owning box is dropped, whatever the storage class. Aggregates fan out to
// their elements explicitly; Go has no structural drop.
//
// # Failure model
//
// No core operation returns an error. Allocator exhaustion on the boxed
// path is fatal, misuse that can be caught cheaply panics (NewZeroSized on
// a sized type, double free), and everything else is a documented
// precondition whose violation is undefined behavior — the same trade a
// raw pointer makes, which is the point: the container must cost nothing
// over the allocation it replaces.
package minibox
