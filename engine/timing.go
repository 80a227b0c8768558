// Copyright © 2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"fmt"
	"time"
)

// Timing collects main loop numbers between updates. Applications are
// expected to track and smooth these values over a number of frames.
type Timing struct {
	Elapsed time.Duration // Total loop time since last reset.
	Update  time.Duration // Time spent in physics + game update.
	Render  time.Duration // Time spent recording and submitting draws.
	Renders int           // Render requests since last reset.
}

// Zero resets all counters, ready for the next accumulation window.
func (t *Timing) Zero() {
	t.Elapsed = 0
	t.Update = 0
	t.Render = 0
	t.Renders = 0
}

// Dump prints the accumulated timing in milliseconds.
func (t *Timing) Dump() {
	const ms = 1000.0
	fmt.Printf("E:%2.4f U:%2.4f R:%2.4f #:%d\n",
		t.Elapsed.Seconds()*ms, t.Update.Seconds()*ms, t.Render.Seconds()*ms, t.Renders)
}
