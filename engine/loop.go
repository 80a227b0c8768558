// Copyright © 2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package engine drives the fixed-cadence orchestration of input,
// physics, game update, audio mixing, and scene rendering, grounded on
// teacher's vu_macos.go/vu_windows.go run-loop shape
// (prevFrameStart/running/runLoop) and app.go's application/App/Director
// component-manager composition.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gazed/corevu/platform"
)

// catchUpCap bounds how much simulation time a single slow frame may
// demand, matching original_source's Engine.cpp top-level frame
// sequencing cap.
const catchUpCap = 0.1

// Engine owns the platform shim, the run loop, and the App it drives.
// Run does not return until the Director requests shutdown or a
// callback fails.
type Engine struct {
	app            *App
	platform       platform.Platform
	prevFrameStart time.Time
	running        bool
}

// Run initializes the platform, opens the audio device, builds the App,
// calls Director.Create, and then runs the loop until shutdown. The
// returned error is non-nil when platform initialization, opening the
// audio device, or Director.Create fails. Once the loop is running, every
// stop (a Shutdown() request, a false Update return, a platform close, or
// a logged render failure) ends with a nil error.
func Run(name string, director Director, pf platform.Platform, renderer Renderer, settings Settings, log *slog.Logger) error {
	if err := pf.Initialize(name); err != nil {
		return fmt.Errorf("engine: initialize platform: %w", err)
	}

	app := newApp(director, pf, renderer, settings, log)

	dev, err := pf.OpenAudioDevice(platform.AudioDeviceSpec{
		SampleRate:     48000,
		Channels:       settings.ChannelCount,
		BitsPerSample:  16,
		RingBufferSecs: 0.5,
	})
	if err != nil {
		pf.Shutdown()
		return fmt.Errorf("engine: open audio device: %w", err)
	}
	app.audioDev = dev

	if err := director.Create(app); err != nil {
		pf.Shutdown()
		return fmt.Errorf("engine: create: %w", err)
	}

	eng := &Engine{app: app, platform: pf}
	eng.prevFrameStart = time.Now()
	eng.running = true

	for eng.running {
		if !eng.runLoop() {
			eng.running = false
		}
	}
	eng.dispose()
	return app.stopErr
}

// runLoop executes exactly one iteration: time advance, input poll,
// platform message pump, physics step, game update, audio update, scene
// render (skipped while minimized), then sleep to the target frametime.
// It returns false to request the engine stop.
func (e *Engine) runLoop() bool {
	app := e.app
	start := time.Now()
	elapsed := start.Sub(e.prevFrameStart).Seconds()
	e.prevFrameStart = start

	in := e.platform.PollInput()
	if !e.platform.Update() {
		return false
	}

	dt := elapsed
	if dt > catchUpCap {
		dt = catchUpCap
	}

	updateStart := time.Now()
	app.World.Step(dt)
	if !app.director.Update(app, in, dt) {
		return false
	}
	if app.Stopped() {
		return false
	}
	app.prof.Update += time.Since(updateStart)

	if err := app.Mixer.Update(app.audioDev, 0, dt); err != nil {
		app.Log.Error("audio update failed", "err", err)
	}

	if !e.platform.Minimized() {
		renderStart := time.Now()
		if !e.renderFrame() {
			return false
		}
		app.prof.Render += time.Since(renderStart)
		app.prof.Renders++
	}

	app.prof.Elapsed += time.Since(start)

	targetFrametime := app.Settings.TargetFrametime
	budget := targetFrametime - time.Since(start).Seconds()
	if budget > 0 {
		time.Sleep(time.Duration(budget * float64(time.Second)))
	}
	return true
}

// renderFrame asks the Renderer for a command buffer, draws the scene
// into it, and submits. A false return triggers orderly shutdown, per
// the render-failure-is-fatal contract.
func (e *Engine) renderFrame() bool {
	app := e.app
	cmd, err := app.renderer.BeginFrame()
	if err != nil {
		app.Log.Error("begin frame failed", "err", err)
		return false
	}
	_, err = app.Scene.DrawFrame(app.renderer.Device(), cmd, app.renderer.FrameNumber(), app.renderer.Resources())
	if err != nil {
		app.Log.Error("draw frame failed", "err", err)
		return false
	}
	if err := app.renderer.EndFrame(cmd); err != nil {
		app.Log.Error("end frame failed", "err", err)
		return false
	}
	app.Scene.Reset()
	return true
}

// dispose shuts down the platform shim, the first component initialized
// and the only one with an explicit shutdown. The audio device and
// renderer are owned by the platform shim and go down with it.
func (e *Engine) dispose() {
	e.platform.Shutdown()
}
