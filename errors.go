// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package minibox

import "errors"

// ErrUnsupported reports that a forwarded capability is not implemented by
// the contained value — for example calling [Box.Read] on a box whose
// element is not an io.Reader.
//
// This is the only error value the package ever returns, and it belongs to
// the forwarding surface alone: the core container operations are either
// infallible, fatal (allocator exhaustion), or documented preconditions
// whose violation is not reported at all.
//
// This is an alias for [errors.ErrUnsupported] for ecosystem consistency.
var ErrUnsupported = errors.ErrUnsupported

// IsUnsupported reports whether err indicates a missing forwarded
// capability, with wrapped error support.
func IsUnsupported(err error) bool {
	return errors.Is(err, errors.ErrUnsupported)
}
