// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"github.com/gazed/corevu/mathx"
	"github.com/gazed/corevu/shaderpipe"
)

// Camera is the scene's single view: a projection and view transform
// plus the ambient light color applied to every drawable. Overlay marks
// a camera used for 2D UI rendering; the scene does not read it, so it
// has no effect on draw order.
type Camera struct {
	Projection   *mathx.M4
	View         *mathx.M4
	Position     mathx.V3
	AmbientColor [4]float32
	Overlay      bool
}

// NewCamera returns an identity-projection, identity-view camera.
func NewCamera() *Camera {
	return &Camera{Projection: mathx.NewM4I(), View: mathx.NewM4I()}
}

// SetOrtho replaces the camera's projection with an orthographic one
// spanning the given clip planes, the standard projection for a 2D scene
// viewed without perspective.
func (c *Camera) SetOrtho(left, right, bottom, top, near, far float64) {
	c.Projection.Ortho(left, right, bottom, top, near, far)
}

// globalValues assembles this camera's contribution to a shader run's
// global uniform upload. textures supplies the run's bound global
// texture maps, owned by the leading material in the run.
func (c *Camera) globalValues(textures map[string]shaderpipe.Handle) shaderpipe.GlobalValues {
	return shaderpipe.GlobalValues{
		Projection:   toFloats16(c.Projection),
		View:         toFloats16(c.View),
		AmbientColor: c.AmbientColor,
		ViewPosition: [3]float32{float32(c.Position.X), float32(c.Position.Y), float32(c.Position.Z)},
		Textures:     textures,
	}
}

// toFloats16 flattens a row-addressable M4 into the column-major 16
// floats shader uniform buffers expect.
func toFloats16(m *mathx.M4) [16]float32 {
	return [16]float32{
		float32(m.Xx), float32(m.Xy), float32(m.Xz), float32(m.Xw),
		float32(m.Yx), float32(m.Yy), float32(m.Yz), float32(m.Yw),
		float32(m.Zx), float32(m.Zy), float32(m.Zz), float32(m.Zw),
		float32(m.Wx), float32(m.Wy), float32(m.Wz), float32(m.Ww),
	}
}
