// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package platform declares the shim the engine loop polls once per
// iteration for window, input, timing, and raw-page services. It mirrors
// teacher's device.Device interface shape; no implementation ships here,
// only the consumed surface.
package platform

// AudioDeviceSpec describes the fixed format the engine asks the
// platform to open an audio output stream with.
type AudioDeviceSpec struct {
	SampleRate     int
	Channels       int
	BitsPerSample  int
	RingBufferSecs float64
}

// Input is a snapshot of button/key state taken once per Update call.
// Down maps a button/key name to the number of update ticks it has been
// held; a released key reports vu's RELEASED sentinel bias so callers can
// recover total-down-time by subtracting it.
type Input struct {
	Down     map[string]int
	MouseX   int
	MouseY   int
	ScrollDX float64
	ScrollDY float64
	Resized  bool
}

// Platform is the external shim the engine loop consumes. Every method is
// expected to be called from the main loop thread only.
type Platform interface {
	// Initialize opens the application window and readies input polling.
	Initialize(appName string) error

	// Shutdown releases the window and any platform-owned resources.
	Shutdown()

	// Update pumps the platform message queue and returns false once the
	// user has requested the application close (escape key, window close
	// button, OS termination signal).
	Update() bool

	// AbsoluteTime returns a monotonic clock reading in seconds.
	AbsoluteTime() float64

	// SetFullscreen toggles fullscreen presentation.
	SetFullscreen(full bool)

	// WindowSize returns the current drawable size in pixels.
	WindowSize() (width, height int)

	// WindowOffset returns the window's position relative to the
	// desktop's bottom-left corner.
	WindowOffset() (x, y int)

	// Minimized reports whether the window is currently minimized; the
	// loop skips rendering (but not physics) while true.
	Minimized() bool

	// AllocatePages reserves bytes rounded up to the platform page size.
	AllocatePages(bytes int64) ([]byte, error)

	// FreePages releases memory returned by AllocatePages.
	FreePages(b []byte)

	// OpenAudioDevice opens the platform's audio output ring buffer at
	// the requested format.
	OpenAudioDevice(spec AudioDeviceSpec) (AudioDevice, error)

	// PollInput returns the button-state snapshot gathered since the
	// last call.
	PollInput() Input
}

// AudioDevice is the ring-buffer handle OpenAudioDevice returns; it
// satisfies audiomix.Device so the mixer can drive it directly.
type AudioDevice interface {
	Cursors() (play, write uint32, ok bool)
	Lock(byteToLock, bytesToWrite uint32) (region1, region2 []byte)
	Unlock(region1, region2 []byte)
}
