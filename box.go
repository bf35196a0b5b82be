// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package minibox

import (
	"unsafe"

	"code.hybscloud.com/minibox/internal/alloc"
)

// Box is a single-owner container that stores T inline in its own word
// when T is no larger, no more aligned, and no more pointerful than a
// machine word, and heap-allocates otherwise. Zero-sized values are never
// allocated at all.
//
// A Box is exactly one word. There is no hidden state: every operation
// derives its behavior from ClassOf[T], never from a stored flag.
//
// Ownership is strict single-owner. Copying a Box copies the word and with
// it the drop obligation; exactly one of the copies may be dropped or
// consumed. Consuming operations (Drop, IntoInner, IntoRaw) invalidate the
// receiver by zeroing its word; using a consumed handle afterwards is a
// precondition violation, not a checked error.
//
// The container forwards, rather than grants, thread-safety: a Box may
// cross goroutines or be shared for concurrent reads exactly when a plain
// T may.
type Box[T any] struct {
	ptr Ptr[T]
}

// New stores value in a fresh Box.
func New[T any](value T) Box[T] {
	return Reserve[T]().Write(value)
}

// With reserves storage first and only then calls produce for the value.
// This matters when reservation is skipped entirely (zero or inline class)
// or must precede an expensive construction.
func With[T any](produce func() T) Box[T] {
	s := Reserve[T]()
	return s.Write(produce())
}

// NewZeroSized stores a value of a statically zero-sized type without any
// allocation and without ever materializing a pointer.
//
// Panics if ClassOf[T] is not ClassZero.
func NewZeroSized[T any](value T) Box[T] {
	if ClassOf[T]() != ClassZero {
		panic("minibox: NewZeroSized on a type with nonzero size")
	}
	_ = value // zero bytes of state; the box now owns the drop obligation
	return Box[T]{}
}

// Adopt takes ownership of an already-allocated *v and canonicalizes its
// representation for ClassOf[T]: zero- and inline-class values are moved
// out of the cell (which is left to the collector), boxed-class cells are
// registered with the allocator table as-is.
//
// After Adopt the caller must not use v; the box owns it.
func Adopt[T any](v *T) Box[T] {
	switch ClassOf[T]() {
	case ClassZero:
		return Box[T]{}
	case ClassInline:
		return New(*v)
	default:
		word := alloc.Alloc(alloc.LayoutOf[T](), unsafe.Pointer(v))
		return Box[T]{ptr: Ptr[T]{word: word}}
	}
}

// Ref returns a pointer to the contained value. It always succeeds.
//
// For inline storage the pointer aims into the box itself and is
// invalidated when the handle moves; see [Stable].
func (b *Box[T]) Ref() *T {
	return b.ptr.Ref()
}

// IntoRaw disassembles the box into its raw slot without dropping the
// value, transferring the drop obligation to the caller. The receiver is
// invalidated. The returned Ptr is always valid to pass to [FromRaw]
// exactly once.
func (b *Box[T]) IntoRaw() Ptr[T] {
	p := b.ptr
	b.ptr = Ptr[T]{}
	return p
}

// FromRaw reassembles a box from a raw slot, reclaiming the drop
// obligation.
//
// The slot must come from IntoRaw on a box of the same T and must not be
// recomposed more than once; ownership must not alias.
func FromRaw[T any](p Ptr[T]) Box[T] {
	return Box[T]{ptr: p}
}

// IntoInner consumes the box and moves the contained value out. The value
// itself is not dropped; the caller owns it now. Boxed-class storage is
// released after the move.
func (b *Box[T]) IntoInner() T {
	p := b.IntoRaw()
	v := *p.Ref()
	if ClassOf[T]() == ClassBoxed {
		alloc.Free(p.word, alloc.LayoutOf[T]())
	}
	return v
}

// Drop destroys the box: the contained value's Drop runs (if T implements
// [Dropper]) at the class-appropriate address, then boxed-class storage is
// released. Must run exactly once per live box; this is the single point
// where the slot's ownership is discharged.
func (b *Box[T]) Drop() {
	p := b.IntoRaw()
	dropIn(p.Ref())
	if ClassOf[T]() == ClassBoxed {
		alloc.Free(p.word, alloc.LayoutOf[T]())
	}
}

// Clone returns a new box holding a copy of the contained value.
func (b *Box[T]) Clone() Box[T] {
	return Reserve[T]().Write(*b.Ref())
}

// dropIn runs the value's destructor, when it has one, in place.
//
// Go has no structural drop: an aggregate whose elements need dropping
// must implement Dropper itself and fan out to the elements.
func dropIn[T any](addr *T) {
	if d, ok := any(addr).(Dropper); ok {
		d.Drop()
	}
}
