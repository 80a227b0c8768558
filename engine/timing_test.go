// Copyright © 2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"testing"
	"time"
)

func TestTimingZeroClearsCounters(t *testing.T) {
	tm := Timing{Elapsed: time.Second, Update: time.Millisecond, Renders: 3}
	tm.Zero()
	if tm.Elapsed != 0 || tm.Update != 0 || tm.Render != 0 || tm.Renders != 0 {
		t.Errorf("expected all fields zeroed, got %+v", tm)
	}
}
