// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package minibox_test

import (
	"testing"

	"code.hybscloud.com/minibox"
)

// =============================================================================
// Construction + drop, per storage class
// =============================================================================

func BenchmarkNewZero(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		bx := minibox.New(empty{})
		bx.Drop()
	}
}

func BenchmarkNewInline(b *testing.B) {
	b.ResetTimer()
	for i := range b.N {
		bx := minibox.New(uint64(i))
		bx.Drop()
	}
}

func BenchmarkNewBoxed(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		bx := minibox.New(blob{})
		bx.Drop()
	}
}

// BenchmarkNewBoxedBaseline is the plain allocation the boxed path wraps;
// the delta over this is the cost of the ownership table.
func BenchmarkNewBoxedBaseline(b *testing.B) {
	var sink *blob
	b.ResetTimer()
	for range b.N {
		sink = new(blob)
	}
	_ = sink
}

// =============================================================================
// Access
// =============================================================================

func BenchmarkRefInline(b *testing.B) {
	bx := minibox.New(uint64(42))
	defer bx.Drop()

	var sum uint64
	b.ResetTimer()
	for range b.N {
		sum += *bx.Ref()
	}
	_ = sum
}

func BenchmarkRefBoxed(b *testing.B) {
	bx := minibox.New(blob{1: 1})
	defer bx.Drop()

	var sum byte
	b.ResetTimer()
	for range b.N {
		sum += bx.Ref()[1]
	}
	_ = sum
}

// =============================================================================
// Raw cycle
// =============================================================================

func BenchmarkRawCycleInline(b *testing.B) {
	b.ResetTimer()
	for i := range b.N {
		bx := minibox.New(uintptr(i) + 1)
		rebuilt := minibox.FromRaw(bx.IntoRaw())
		rebuilt.Drop()
	}
}

func BenchmarkRawCycleBoxed(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		bx := minibox.New(blob{})
		rebuilt := minibox.FromRaw(bx.IntoRaw())
		rebuilt.Drop()
	}
}
