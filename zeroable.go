// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package minibox

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// Zeroable is the catalog of types for which all-zero bytes form a valid
// value. It gates [NewZeroed] at compile time: a type outside the catalog
// does not instantiate.
//
// The catalog is a closed whitelist: primitive integers and floats, bool,
// raw pointers, the atomix atomic types (whose zero value is their zero
// state), and a ladder of fixed-size arrays of zeroable elements. Go
// constraints cannot express "array of any zeroable element", so the
// ladder enumerates the shapes the library promises, the way the catalog
// in any language ends up enumerating what it vouches for.
type Zeroable interface {
	~bool |
		~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr |
		~float32 | ~float64 | ~complex64 | ~complex128 |
		unsafe.Pointer |
		atomix.Bool | atomix.Int32 | atomix.Int64 |
		atomix.Uint64 | atomix.Uintptr |
		[2]byte | [4]byte | [8]byte | [16]byte | [32]byte | [64]byte |
		[128]byte | [256]byte | [512]byte | [1024]byte |
		[2]uint32 | [4]uint32 | [8]uint32 |
		[2]uint64 | [4]uint64 | [8]uint64 | [16]uint64
}

// NewZeroed builds a box over T's zero value without an explicit write:
// storage is reserved zeroed and the catalog guarantees those bytes are
// already a valid T, which discharges the AssumeInit precondition.
func NewZeroed[T Zeroable]() Box[T] {
	return ReserveZeroed[T]().AssumeInit()
}
