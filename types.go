// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package minibox

// Dropper is implemented by contained types that need a destructor.
//
// When a [Box] is destroyed, the contained value's Drop runs exactly once,
// through the class-appropriate address: the dangling anchor for
// zero-sized types, the slot word for inline storage, the heap cell for
// boxed storage. Types without the method simply have their storage
// released.
//
// Go performs no structural drop. An aggregate whose elements carry drop
// obligations must implement Dropper itself and fan out:
//
//	type handles [16]handle
//
//	func (h *handles) Drop() {
//	    for i := range h {
//	        h[i].Drop()
//	    }
//	}
//
// [Box] itself implements Dropper, so boxes nest: dropping an outer box
// drops the inner one.
type Dropper interface {
	// Drop releases the value's resources. Called at most once per owned
	// value; the value must not be used afterwards.
	Drop()
}
