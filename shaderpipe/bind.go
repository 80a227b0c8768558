// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package shaderpipe

import (
	"fmt"
	"math"
)

// Handle is an opaque backend object: a shader module, pipeline,
// descriptor set layout, descriptor set, buffer, or image. Its meaning
// is defined entirely by which Device method returned it.
type Handle uint64

// CommandBuffer is an opaque recording target passed to BindDescriptorSet
// and the surrounding Begin/End/Submit calls.
type CommandBuffer uint64

// DescriptorBinding describes one slot of a descriptor set layout, the
// input to CreateDescriptorSetLayout.
type DescriptorBinding struct {
	Binding uint32
	Type    DescriptorType
	Count   uint32
}

// DescriptorWrite is one descriptor update, the input to
// UpdateDescriptorSet.
type DescriptorWrite struct {
	Set     Handle
	Binding uint32
	Buffer  Handle
	Offset  uint32
	Size    uint32
	Image   Handle
}

// Device is the backend surface shaderpipe drives: shader module and
// pipeline creation, descriptor set management, buffer/image writes, and
// command buffer lifecycle. A Vulkan-backed implementation satisfies it
// with a thin wrapper over the driver's real calls.
type Device interface {
	CreateShaderModule(code []byte) (Handle, error)
	CreatePipeline(shader *Shader, renderpass, layout Handle) (Handle, error)
	CreateDescriptorSetLayout(bindings []DescriptorBinding) (Handle, error)
	AllocateDescriptorSet(layout Handle) (Handle, error)
	UpdateDescriptorSet(writes []DescriptorWrite) error
	BindDescriptorSet(cmd CommandBuffer, set Handle, index uint32) error

	WriteBuffer(handle Handle, offset uint32, data []byte) error
	CreateImage(width, height int, format string, usage string) (Handle, error)
	TransitionImage(cmd CommandBuffer, image Handle, usage string) error

	PushConstants(cmd CommandBuffer, offset uint32, data []byte) error

	BeginCommandBuffer() (CommandBuffer, error)
	EndCommandBuffer(cmd CommandBuffer) error
	Submit(cmd CommandBuffer) error
	Present() error
}

// DescriptorSetLayouts builds one CreateDescriptorSetLayout input list
// per descriptor set index the shader references.
func (s *Shader) DescriptorSetLayouts() map[uint32][]DescriptorBinding {
	out := make(map[uint32][]DescriptorBinding)
	for _, d := range s.Descriptors {
		out[d.Set] = append(out[d.Set], DescriptorBinding{Binding: d.Binding, Type: d.Type, Count: 1})
	}
	if s.Bindless {
		out[s.BindlessSet] = append(out[s.BindlessSet], DescriptorBinding{
			Binding: s.BindlessBinding, Type: DescriptorCombinedImageSampler, Count: 0,
		})
	}
	return out
}

// GlobalValues supplies the per-frame values ApplyGlobals writes into the
// shader's global uniform block: camera matrices, ambient light, and any
// other named global a shader declares.
type GlobalValues struct {
	Projection   [16]float32
	View         [16]float32
	AmbientColor [4]float32
	ViewPosition [3]float32
	Mode         uint32

	// Textures maps a global sampler uniform's name to a bound image
	// handle, for shaders that sample a fixed global texture (shadow
	// maps, lookup tables) rather than a per-material one.
	Textures map[string]Handle
}

// InstanceValues supplies the per-material-instance values
// ApplyMaterialInstances writes: diffuse color, shininess, and bound
// texture maps, keyed by sampler uniform name.
type InstanceValues struct {
	DiffuseColor [4]float32
	Shininess    float32
	Textures     map[string]Handle
}

// ApplyGlobals writes every global-scope uniform this shader declares
// into the global uniform buffer and binds its global texture maps.
// Unrecognized uniform names are left at zero, matching a shader that
// declares a global it doesn't use.
func (s *Shader) ApplyGlobals(dev Device, buffer Handle, values GlobalValues, writes *[]DescriptorWrite) error {
	for _, u := range s.Uniforms[ScopeGlobal] {
		switch {
		case u.Name == "projection":
			if err := writeFloats(dev, buffer, u.Offset, values.Projection[:]); err != nil {
				return err
			}
		case u.Name == "view":
			if err := writeFloats(dev, buffer, u.Offset, values.View[:]); err != nil {
				return err
			}
		case u.Name == "ambientColor":
			if err := writeFloats(dev, buffer, u.Offset, values.AmbientColor[:]); err != nil {
				return err
			}
		case u.Name == "viewPosition":
			if err := writeFloats(dev, buffer, u.Offset, values.ViewPosition[:]); err != nil {
				return err
			}
		case u.Name == "mode":
			if err := dev.WriteBuffer(buffer, u.Offset, encodeUint32(values.Mode)); err != nil {
				return err
			}
		case u.Type == FieldSampler:
			if img, ok := values.Textures[u.Name]; ok {
				*writes = append(*writes, DescriptorWrite{Binding: u.Binding, Image: img})
			}
		}
	}
	return nil
}

// ApplyMaterialInstances writes every instance-scope uniform into the
// instance uniform buffer when needsUpdate is set (the caller tracks
// this per Material.renderFrameNumber to skip redundant uploads), and
// always queues its texture descriptor writes.
func (s *Shader) ApplyMaterialInstances(dev Device, buffer Handle, values InstanceValues, needsUpdate bool, writes *[]DescriptorWrite) error {
	if len(s.Uniforms[ScopeInstance]) == 0 && len(values.Textures) == 0 {
		return nil
	}
	for _, u := range s.Uniforms[ScopeInstance] {
		if u.Type == FieldSampler {
			if img, ok := values.Textures[u.Name]; ok {
				*writes = append(*writes, DescriptorWrite{Binding: u.Binding, Image: img})
			}
			continue
		}
		if !needsUpdate {
			continue
		}
		switch u.Name {
		case "diffuseColor":
			if err := writeFloats(dev, buffer, u.Offset, values.DiffuseColor[:]); err != nil {
				return err
			}
		case "shininess":
			if err := dev.WriteBuffer(buffer, u.Offset, encodeFloat32(values.Shininess)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyMaterialLocals uploads the shader's "model" push constant inline
// on the given command buffer. Shaders without a push constant named
// "model" are left untouched.
func (s *Shader) ApplyMaterialLocals(dev Device, cmd CommandBuffer, model [16]float32) error {
	for _, pc := range s.PushConstants {
		if pc.Name != "model" {
			continue
		}
		if pc.Size < 64 {
			return fmt.Errorf("shaderpipe: model push constant too small (%d bytes)", pc.Size)
		}
		return dev.PushConstants(cmd, pc.Offset, encodeFloats(model[:]))
	}
	return nil
}

func writeFloats(dev Device, buffer Handle, offset uint32, values []float32) error {
	return dev.WriteBuffer(buffer, offset, encodeFloats(values))
}

func encodeFloats(values []float32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		putFloat32(out[i*4:], v)
	}
	return out
}

func encodeFloat32(v float32) []byte {
	out := make([]byte, 4)
	putFloat32(out, v)
	return out
}

func encodeUint32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func putFloat32(b []byte, v float32) {
	bits := math.Float32bits(v)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}
