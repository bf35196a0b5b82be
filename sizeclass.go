// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package minibox

import (
	"reflect"
	"sync"
	"unsafe"
)

// SizeClass is the storage strategy of a [Box] or [Ptr].
//
// The class is a pure function of the element type: it never depends on the
// value and never changes for a given type. Every operation on a Box or Ptr
// derives its behavior from the class alone — there is no stored runtime
// tag, and a slot must never be reinterpreted under a different class than
// the one its producing type yields.
type SizeClass uint8

const (
	// ClassZero means the type has zero size. No storage is needed; the
	// slot word carries no ownership and its bits may be anything.
	ClassZero SizeClass = iota

	// ClassInline means the value's bytes are stored directly in the slot
	// word. No allocation occurs. The word may contain uninitialized
	// padding if the type itself has padding.
	ClassInline

	// ClassBoxed means the slot word holds the address of a heap cell
	// owned through the process-wide allocator table.
	ClassBoxed
)

// String returns the class name.
func (c SizeClass) String() string {
	switch c {
	case ClassZero:
		return "Zero"
	case ClassInline:
		return "Inline"
	case ClassBoxed:
		return "Boxed"
	default:
		return "Invalid"
	}
}

const (
	wordSize  = unsafe.Sizeof(uintptr(0))
	wordAlign = unsafe.Alignof(uintptr(0))
)

// ClassOf computes the storage strategy for T.
//
// Rule, in precedence order:
//
//  1. size 0                                  → ClassZero
//  2. size ≤ word, align ≤ word, pointer-free → ClassInline
//  3. otherwise                               → ClassBoxed
//
// The pointer-free condition has no counterpart in the plain size/align
// rule and exists for the garbage collector's sake: inline bytes live in an
// unscanned uintptr word, so a type carrying Go pointers must go through
// the boxed path where the collector can see them. A pointer-sized *T or
// string is therefore ClassBoxed even though it would fit the word.
//
// Size and alignment comparisons are compile-time constants per
// instantiation; pointer-free-ness is computed once per type and memoized.
func ClassOf[T any]() SizeClass {
	var v T
	switch {
	case unsafe.Sizeof(v) == 0:
		return ClassZero
	case unsafe.Sizeof(v) <= wordSize && unsafe.Alignof(v) <= wordAlign && pointerFree[T]():
		return ClassInline
	default:
		return ClassBoxed
	}
}

// Stable reports whether the address of the contained value survives moves
// of the handle. Zero and Boxed storage is address-stable; Inline storage
// moves with the handle, so anything keeping interior pointers (or any
// self-referential use) must not move an inline box while they live.
func Stable[T any]() bool {
	return ClassOf[T]() != ClassInline
}

var pointerFreeCache sync.Map // reflect.Type → bool

func pointerFree[T any]() bool {
	t := reflect.TypeFor[T]()
	if v, ok := pointerFreeCache.Load(t); ok {
		return v.(bool)
	}
	free := typePointerFree(t)
	pointerFreeCache.Store(t, free)
	return free
}

func typePointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || typePointerFree(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !typePointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// Chan, Func, Interface, Map, Pointer, Slice, String, UnsafePointer
		return false
	}
}
