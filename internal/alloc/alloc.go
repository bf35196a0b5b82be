// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package alloc is the process-wide allocator boundary for boxed storage.
//
// Go's runtime allocator cannot hand out cells with caller-managed
// lifetime, so the boxed path allocates cells with new and registers them
// here. The table holds each cell as an unsafe.Pointer, which keeps it
// GC-live for exactly as long as ownership is outstanding; Free removes
// the entry and returns the cell to the collector. Addresses are stable
// for the lifetime of a registration (the Go heap does not move objects).
//
// The package also carries allocation accounting and a test trap so that
// no-allocation properties can be asserted from the outside.
package alloc

import (
	"fmt"
	"os"
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Layout describes the size and alignment of an allocation request.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// LayoutOf returns the layout of T.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{Size: unsafe.Sizeof(v), Align: unsafe.Alignof(v)}
}

const shardCount = 64

// shard is one stripe of the pin table. The spinlock word is uncontended
// in the common case (a register and a release per box lifetime), so a
// full mutex is not worth its footprint.
type shard struct {
	lock  atomix.Uint64
	cells map[uintptr]unsafe.Pointer
}

func (s *shard) acquire() {
	sw := spin.Wait{}
	for !s.lock.CompareAndSwapAcqRel(0, 1) {
		sw.Once()
	}
}

func (s *shard) release() {
	s.lock.StoreRelease(0)
}

var (
	shards [shardCount]shard

	allocs     atomix.Int64
	frees      atomix.Int64
	allocBytes atomix.Int64

	// trap, when set, is consulted before every registration. Returning
	// false routes the request to HandleAllocError. Test-only; must not be
	// changed while allocations are in flight.
	trap func(Layout) bool
)

func init() {
	for i := range shards {
		shards[i].cells = make(map[uintptr]unsafe.Pointer)
	}
}

func shardFor(addr uintptr) *shard {
	// Drop the low bits that are always zero under word alignment.
	return &shards[(addr>>4)%shardCount]
}

// Alloc registers cell, a freshly allocated instance matching l, and
// returns its address. The table keeps the cell live until Free.
//
// Registering the same cell twice panics: that is a double ownership bug
// in the caller, not a recoverable condition.
func Alloc(l Layout, cell unsafe.Pointer) uintptr {
	return register(l, cell)
}

// AllocZeroed is the allocate-zeroed entry point. Cells obtained from the
// Go runtime arrive zeroed already, so the two entry points differ only in
// contract: a cell registered through AllocZeroed is promised to be
// all-zero bytes, one registered through Alloc is not promised anything.
func AllocZeroed(l Layout, cell unsafe.Pointer) uintptr {
	return register(l, cell)
}

func register(l Layout, cell unsafe.Pointer) uintptr {
	if trap != nil && !trap(l) {
		HandleAllocError(l)
	}

	addr := uintptr(cell)
	s := shardFor(addr)
	s.acquire()
	if _, dup := s.cells[addr]; dup {
		s.release()
		panic("minibox/alloc: cell registered twice")
	}
	s.cells[addr] = cell
	s.release()

	allocs.Add(1)
	allocBytes.Add(int64(l.Size))
	return addr
}

// Free releases the registration for addr, returning the cell to the
// collector. Freeing an address that is not registered panics — it is
// either a double free or a foreign pointer.
func Free(addr uintptr, l Layout) {
	s := shardFor(addr)
	s.acquire()
	_, ok := s.cells[addr]
	if ok {
		delete(s.cells, addr)
	}
	s.release()

	if !ok {
		panic("minibox/alloc: free of unregistered cell")
	}
	frees.Add(1)
	allocBytes.Add(-int64(l.Size))
}

// Stats returns the lifetime allocation and release counts.
func Stats() (allocCount, freeCount int64) {
	return allocs.Load(), frees.Load()
}

// Live returns the number of currently registered cells.
func Live() int64 {
	return allocs.Load() - frees.Load()
}

// LiveBytes returns the registered payload bytes.
func LiveBytes() int64 {
	return allocBytes.Load()
}

// SetTrap installs f as the allocation trap and returns the previous one.
// A nil trap admits everything. Traps exist for tests: a trap that panics
// asserts a no-allocation path, a trap that returns false exercises the
// fatal exhaustion route.
func SetTrap(f func(Layout) bool) func(Layout) bool {
	prev := trap
	trap = f
	return prev
}

// HandleAllocError is the fatal path for allocator exhaustion. A single
// fixed-size cell failing to allocate is a systemic resource crisis with
// no sensible local recovery, so the process terminates. Never returns.
func HandleAllocError(l Layout) {
	fmt.Fprintf(os.Stderr, "minibox: allocation failed (size=%d align=%d)\n", l.Size, l.Align)
	os.Exit(2)
}
