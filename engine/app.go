// Copyright © 2017 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

// app.go holds the component managers and runs application state updates,
// mirroring teacher's application/App/Director split: the application
// owns entity-ish subsystems, the Director is the game's callback.

import (
	"log/slog"

	"github.com/gazed/corevu/audiomix"
	"github.com/gazed/corevu/mem"
	"github.com/gazed/corevu/physics2d"
	"github.com/gazed/corevu/platform"
	"github.com/gazed/corevu/resource"
	"github.com/gazed/corevu/scene"
	"github.com/gazed/corevu/shaderpipe"
)

// Director is implemented by the hosting game and registered once with
// the engine. Update is called once per loop iteration, right after the
// physics step, with that iteration's capped time step.
type Director interface {
	// Create runs once after the platform, physics world, scene, and
	// mixer are ready, before the first Update.
	Create(app *App) error

	// Update processes input and advances game state. A false return
	// requests an orderly shutdown.
	Update(app *App, in platform.Input, dt float64) bool
}

// Renderer is the consumed shader-pipeline SPI surface plus the
// bookkeeping the frontend needs to record one frame: a Device, a
// command buffer for the frame, the frame counter Material.needsUpdate
// gates on, and the pipeline/descriptor resources keyed per shader.
type Renderer interface {
	Device() shaderpipe.Device
	BeginFrame() (shaderpipe.CommandBuffer, error)
	EndFrame(cmd shaderpipe.CommandBuffer) error
	FrameNumber() uint64
	Resources() map[*shaderpipe.Shader]*scene.ShaderResources
}

// App is the component-manager composition root: one instance per
// running game, created by New and passed to the Director's callbacks.
type App struct {
	Settings Settings
	Log      *slog.Logger

	Mem       *mem.Allocator
	Resources *resource.Registry
	World     *physics2d.World
	Scene     *scene.Scene
	Mixer     *audiomix.Mixer

	platform platform.Platform
	renderer Renderer
	audioDev platform.AudioDevice

	director Director
	stop     bool
	stopErr  error

	prof Timing
}

// newApp wires the component managers together; called once by Run.
func newApp(director Director, pf platform.Platform, renderer Renderer, settings Settings, log *slog.Logger) *App {
	app := &App{
		Settings:  settings,
		Log:       log,
		Mem:       mem.New(int64(64<<20), int64(4<<20)),
		Resources: resource.NewRegistry(),
		World:     physics2d.NewWorld(),
		Scene:     scene.NewScene(scene.NewCamera()),
		Mixer:     audiomix.NewMixer(0.5, settings.TargetFrametime),
		platform:  pf,
		renderer:  renderer,
		director:  director,
	}
	app.Mixer.MasterVolume = settings.MasterVolume
	app.Mixer.MusicVolume = settings.MusicVolume
	app.Mixer.SfxVolume = settings.SfxVolume
	return app
}

// Shutdown is an application request to close down the engine; the loop
// notices Stopped() on its next iteration boundary.
func (a *App) Shutdown() { a.stop = true }

// Stopped reports whether Shutdown was called.
func (a *App) Stopped() bool { return a.stop }

// Times returns the timing stats accumulated since the last Timing.Zero
// call.
func (a *App) Times() *Timing { return &a.prof }
