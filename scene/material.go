// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package scene batches draw-eligible entities by material, sequences
// renderpasses by shader, and drives per-frame resource flow into a
// shaderpipe.Device backend, using a flat per-material bucket list
// since this engine has no scene-graph parenting to flatten.
package scene

import "github.com/gazed/corevu/shaderpipe"

// Material groups a shader with the per-instance values it needs at
// draw time: diffuse color, shininess, and its bound texture maps.
// renderFrameNumber guards redundant per-instance uniform uploads across
// frames that reuse the same material without changing it.
type Material struct {
	Shader *shaderpipe.Shader

	DiffuseColor [4]float32
	Shininess    float32

	GlobalTextureMaps   map[string]shaderpipe.Handle
	InstanceTextureMaps map[string]shaderpipe.Handle

	Instance          uint32
	RenderOrder       int
	renderFrameNumber uint64
}

// NewMaterial returns a Material bound to shader with empty texture maps.
func NewMaterial(shader *shaderpipe.Shader) *Material {
	return &Material{
		Shader:              shader,
		GlobalTextureMaps:   map[string]shaderpipe.Handle{},
		InstanceTextureMaps: map[string]shaderpipe.Handle{},
	}
}

// needsUpdate reports whether this material's instance uniforms must be
// re-uploaded for frameNumber, and marks it current if so.
func (m *Material) needsUpdate(frameNumber uint64) bool {
	if m.renderFrameNumber == frameNumber {
		return false
	}
	m.renderFrameNumber = frameNumber
	return true
}

func (m *Material) instanceValues() shaderpipe.InstanceValues {
	return shaderpipe.InstanceValues{
		DiffuseColor: m.DiffuseColor,
		Shininess:    m.Shininess,
		Textures:     m.InstanceTextureMaps,
	}
}
