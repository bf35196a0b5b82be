// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package minibox

import (
	"unsafe"

	"code.hybscloud.com/minibox/internal/alloc"
)

// Staging is a box whose storage is reserved but whose bytes are not yet a
// valid T. It is the tagged-phase form of [Box]: the uninitialized state
// lives in the type, not in a runtime flag.
//
// A staging container becomes a Box only through [Staging.Write] or, when
// the caller has established a value by other means (for example by
// decoding into [Staging.Ref]), through [Staging.AssumeInit].
type Staging[T any] struct {
	ptr Ptr[T]
}

// Reserve allocates storage for a T without writing a value: a heap cell
// for boxed class, nothing at all otherwise.
//
// Allocation failure on the boxed path is fatal (see internal/alloc); a
// staging container is never observably half-allocated.
func Reserve[T any]() Staging[T] {
	switch ClassOf[T]() {
	case ClassZero, ClassInline:
		return Staging[T]{}
	default:
		cell := new(T)
		word := alloc.Alloc(alloc.LayoutOf[T](), unsafe.Pointer(cell))
		return Staging[T]{ptr: Ptr[T]{word: word}}
	}
}

// ReserveZeroed is Reserve with the storage guaranteed to be all-zero
// bytes. Whether those bytes form a valid T is the caller's problem;
// [NewZeroed] discharges it through the [Zeroable] catalog.
func ReserveZeroed[T any]() Staging[T] {
	switch ClassOf[T]() {
	case ClassZero, ClassInline:
		return Staging[T]{}
	default:
		cell := new(T)
		word := alloc.AllocZeroed(alloc.LayoutOf[T](), unsafe.Pointer(cell))
		return Staging[T]{ptr: Ptr[T]{word: word}}
	}
}

// Write stores value into the reserved slot and returns the initialized
// box. Whatever bytes were in the slot are overwritten without dropping —
// correct because staged storage never held a live value. This is the one
// sanctioned reserved→initialized transition. The receiver is consumed.
func (s Staging[T]) Write(value T) Box[T] {
	b := Box[T](s)
	*b.ptr.Ref() = value
	return b
}

// AssumeInit reinterprets the staged slot as initialized without writing
// anything.
//
// The caller must have already established a valid T in the slot (for
// example through [Staging.Ref]). Violating that is undefined behavior,
// exactly as if a raw slot were misclassified. The receiver is consumed.
func (s Staging[T]) AssumeInit() Box[T] {
	return Box[T](s)
}

// Ref exposes the reserved storage so a value can be established in place
// by external means (decoding into it, copying bytes in) before
// [Staging.AssumeInit]. Reading through the pointer before a value exists
// yields whatever bytes the reservation produced.
func (s *Staging[T]) Ref() *T {
	return s.ptr.Ref()
}

// Discard releases the reservation without ever treating the bytes as a
// value: no drop runs, boxed-class cells are returned to the allocator.
// The receiver is consumed.
func (s *Staging[T]) Discard() {
	p := s.ptr
	s.ptr = Ptr[T]{}
	if ClassOf[T]() == ClassBoxed {
		alloc.Free(p.word, alloc.LayoutOf[T]())
	}
}
