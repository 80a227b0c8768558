// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/gazed/corevu/shaderpipe"
)

type fakeDevice struct {
	descriptorBinds int
	bufferWrites    int
	pushConstants   int
}

func (d *fakeDevice) CreateShaderModule(code []byte) (shaderpipe.Handle, error) { return 0, nil }
func (d *fakeDevice) CreatePipeline(s *shaderpipe.Shader, rp, l shaderpipe.Handle) (shaderpipe.Handle, error) {
	return 0, nil
}
func (d *fakeDevice) CreateDescriptorSetLayout(b []shaderpipe.DescriptorBinding) (shaderpipe.Handle, error) {
	return 0, nil
}
func (d *fakeDevice) AllocateDescriptorSet(layout shaderpipe.Handle) (shaderpipe.Handle, error) {
	return 0, nil
}
func (d *fakeDevice) UpdateDescriptorSet(writes []shaderpipe.DescriptorWrite) error { return nil }
func (d *fakeDevice) BindDescriptorSet(cmd shaderpipe.CommandBuffer, set shaderpipe.Handle, index uint32) error {
	d.descriptorBinds++
	return nil
}
func (d *fakeDevice) WriteBuffer(handle shaderpipe.Handle, offset uint32, data []byte) error {
	d.bufferWrites++
	return nil
}
func (d *fakeDevice) CreateImage(w, h int, format, usage string) (shaderpipe.Handle, error) {
	return 0, nil
}
func (d *fakeDevice) TransitionImage(cmd shaderpipe.CommandBuffer, image shaderpipe.Handle, usage string) error {
	return nil
}
func (d *fakeDevice) PushConstants(cmd shaderpipe.CommandBuffer, offset uint32, data []byte) error {
	d.pushConstants++
	return nil
}
func (d *fakeDevice) BeginCommandBuffer() (shaderpipe.CommandBuffer, error) { return 0, nil }
func (d *fakeDevice) EndCommandBuffer(cmd shaderpipe.CommandBuffer) error  { return nil }
func (d *fakeDevice) Submit(cmd shaderpipe.CommandBuffer) error            { return nil }
func (d *fakeDevice) Present() error                                      { return nil }

func TestDrawFrameCountsDrawsAndVertices(t *testing.T) {
	shader := &shaderpipe.Shader{Name: "lit", PushConstants: []shaderpipe.PushConstant{
		{Name: "model", Size: 64, Offset: 0},
	}}
	mat := NewMaterial(shader)
	mesh := &Mesh{VertexCount: 24}

	s := NewScene(NewCamera())
	s.Add(Drawable{Mesh: mesh, Material: mat})
	s.Add(Drawable{Mesh: mesh, Material: mat})

	dev := &fakeDevice{}
	resources := map[*shaderpipe.Shader]*ShaderResources{
		shader: {Renderpass: &Renderpass{}},
	}

	stats, err := s.DrawFrame(dev, shaderpipe.CommandBuffer(1), 1, resources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.DrawCalls != 2 {
		t.Errorf("expected 2 draw calls, got %d", stats.DrawCalls)
	}
	if stats.Vertices != 48 {
		t.Errorf("expected 48 vertices, got %d", stats.Vertices)
	}
	if dev.pushConstants != 2 {
		t.Errorf("expected 2 push constant uploads, got %d", dev.pushConstants)
	}
}

func TestDrawFrameMissingResourcesErrors(t *testing.T) {
	shader := &shaderpipe.Shader{Name: "unbound"}
	mat := NewMaterial(shader)
	mesh := &Mesh{VertexCount: 3}

	s := NewScene(NewCamera())
	s.Add(Drawable{Mesh: mesh, Material: mat})

	dev := &fakeDevice{}
	if _, err := s.DrawFrame(dev, shaderpipe.CommandBuffer(1), 1, map[*shaderpipe.Shader]*ShaderResources{}); err == nil {
		t.Errorf("expected error for unbound shader resources")
	}
}

func TestMaterialNeedsUpdateOncePerFrame(t *testing.T) {
	shader := &shaderpipe.Shader{Name: "s"}
	mat := NewMaterial(shader)
	if !mat.needsUpdate(1) {
		t.Errorf("expected first call for frame 1 to need update")
	}
	if mat.needsUpdate(1) {
		t.Errorf("expected second call for frame 1 to be up to date")
	}
	if !mat.needsUpdate(2) {
		t.Errorf("expected frame 2 to need update again")
	}
}
