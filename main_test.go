// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package minibox_test

import (
	"fmt"
	"os"
	"testing"

	"code.hybscloud.com/minibox/internal/alloc"
)

// TestMain verifies the package-wide ownership discipline: after every
// test has dropped what it constructed, no boxed cell may remain
// registered. A nonzero count here is a leak in the library or a test.
func TestMain(m *testing.M) {
	code := m.Run()
	if code == 0 {
		if live := alloc.Live(); live != 0 {
			fmt.Fprintf(os.Stderr, "minibox_test: %d boxed cell(s) leaked (%d bytes)\n",
				live, alloc.LiveBytes())
			code = 1
		}
	}
	os.Exit(code)
}
