// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import "github.com/gazed/corevu/shaderpipe"

// Renderpass identifies the backend renderpass a run of same-shader draws
// targets. Pass resolution (which renderpass a shader targets) is a
// backend concern; scene only records which pass is current as shaders
// change and makes no begin or end call on the backend.
type Renderpass struct {
	Handle shaderpipe.Handle
}

// passResolver maps a shader to the renderpass it draws into. Render-to-
// texture shaders (shadow maps, post-process) resolve to a different
// renderpass than the main color pass; a frontend with only one pass can
// use a resolver that always returns the same Renderpass.
type passResolver func(shader *shaderpipe.Shader) *Renderpass

// passTracker records the renderpass currently in use: enter replaces it
// and finish clears it. Neither calls the Device, which has no renderpass
// begin or end method.
type passTracker struct {
	dev     shaderpipe.Device
	cmd     shaderpipe.CommandBuffer
	current *Renderpass
}

func newPassTracker(dev shaderpipe.Device, cmd shaderpipe.CommandBuffer) *passTracker {
	return &passTracker{dev: dev, cmd: cmd}
}

// enter records rp as the current renderpass. No renderpass is begun on
// the backend: shaderpipe.Device's SPI exposes command buffer and
// descriptor binding only.
func (t *passTracker) enter(rp *Renderpass) {
	t.current = rp
}

// finish clears the current renderpass; no end call reaches the backend.
func (t *passTracker) finish() {
	t.current = nil
}
