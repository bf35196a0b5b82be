// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package minibox

import "unsafe"

// anchor backs every zero-sized referent. The address is non-null and
// 64-bit aligned, which covers the alignment of any Go type, and is never
// read or written through; a zero-sized access touches no bytes.
var anchor uint64

// dangling returns the well-known referent for zero-sized values, so that
// reference-producing code never hands out a nil pointer.
func dangling[T any]() *T {
	return (*T)(unsafe.Pointer(&anchor))
}

// Ptr is the raw one-word representation of a stored T, without the drop
// obligation carried by [Box].
//
// The meaning of the word depends entirely on ClassOf[T]:
//
//   - ClassZero: the bits are irrelevant and may be uninitialized
//   - ClassInline: the word is the value's bytes and must hold an
//     initialized T whenever a reference is taken
//   - ClassBoxed: the word is the address of a heap cell registered with
//     the allocator table (see internal/alloc)
//
// Interpreting a Ptr under any other class than the one its producing type
// yields corrupts memory. That contract is documented here, on the
// primitive, rather than enforced by it.
//
// Copying a Ptr copies the word only. It performs no deep copy and confers
// no ownership; at most one copy may ever be handed back to [FromRaw].
type Ptr[T any] struct {
	word uintptr
}

// RawPtr builds a Ptr from a raw word.
//
// The caller must supply a bit pattern valid for ClassOf[T] as described on
// [Ptr]. The usual source of a valid word is [Ptr.Raw].
func RawPtr[T any](word uintptr) Ptr[T] {
	return Ptr[T]{word: word}
}

// Raw returns the slot as a raw word.
//
// For ClassZero the slot's real bits may be meaningless, so Raw returns the
// type's alignment instead — a well-known non-null constant. The result is
// always accepted by [RawPtr] for the same T.
func (p Ptr[T]) Raw() uintptr {
	var v T
	if ClassOf[T]() == ClassZero {
		return uintptr(unsafe.Alignof(v))
	}
	return p.word
}

// Ref reinterprets the slot as a *T.
//
// Inline slots yield the address of the word itself, boxed slots yield the
// heap cell, and zero-sized slots yield the dangling anchor. The returned
// pointer is valid only while the Ptr (for inline storage) and the
// ownership of the cell (for boxed storage) are.
//
// The caller must uphold the class contract on [Ptr]; for ClassInline the
// word must hold a fully initialized value.
func (p *Ptr[T]) Ref() *T {
	switch ClassOf[T]() {
	case ClassZero:
		return dangling[T]()
	case ClassInline:
		return (*T)(unsafe.Pointer(&p.word))
	default:
		// The cell stays GC-live through the allocator table for as long
		// as it is registered, so the word is a valid address here.
		return (*T)(unsafe.Pointer(p.word))
	}
}
