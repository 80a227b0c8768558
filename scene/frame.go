// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"fmt"

	"github.com/gazed/corevu/shaderpipe"
)

// ShaderResources are the backend handles a shader needs bound before
// its draw run: the pipeline it was built with, the renderpass it draws
// into, and the uniform buffers/descriptor sets its global and instance
// scopes write through. These are created once when a shader is loaded
// (shaderpipe.Build plus the CreatePipeline/CreateDescriptorSetLayout
// calls) and looked up by DrawFrame every frame.
type ShaderResources struct {
	Pipeline       shaderpipe.Handle
	Renderpass     *Renderpass
	GlobalBuffer   shaderpipe.Handle
	GlobalSet      shaderpipe.Handle
	InstanceBuffer shaderpipe.Handle
	InstanceSet    shaderpipe.Handle
}

// Stats reports how much work the last DrawFrame call issued.
type Stats struct {
	DrawCalls int
	Vertices  int
}

// DrawFrame executes the per-frame draw algorithm: batches already
// built by Add are sorted into shader runs, each run's renderpass is
// entered once, global uniforms are applied per run, and each batch's
// instance uniforms are applied only when its material is dirty for
// frameNumber before recording its draws. A failed BeginFrame should
// keep the caller from invoking DrawFrame at all for that frame; a
// failure returned here should terminate the loop per the frame
// contract.
func (s *Scene) DrawFrame(dev shaderpipe.Device, cmd shaderpipe.CommandBuffer, frameNumber uint64, resources map[*shaderpipe.Shader]*ShaderResources) (Stats, error) {
	var stats Stats
	runs := s.buildRuns()
	tracker := newPassTracker(dev, cmd)

	for _, run := range runs {
		shader := run.batches[0].material.Shader
		res, ok := resources[shader]
		if !ok {
			return stats, fmt.Errorf("scene: no resources bound for shader %q", shader.Name)
		}

		tracker.enter(res.Renderpass)
		if err := dev.BindDescriptorSet(cmd, res.GlobalSet, 0); err != nil {
			return stats, fmt.Errorf("scene: bind global descriptor set: %w", err)
		}

		globals := s.Camera.globalValues(run.batches[0].material.GlobalTextureMaps)
		var globalWrites []shaderpipe.DescriptorWrite
		if err := shader.ApplyGlobals(dev, res.GlobalBuffer, globals, &globalWrites); err != nil {
			return stats, fmt.Errorf("scene: apply globals: %w", err)
		}
		if len(globalWrites) > 0 {
			if err := dev.UpdateDescriptorSet(globalWrites); err != nil {
				return stats, fmt.Errorf("scene: update global descriptor set: %w", err)
			}
		}

		for _, b := range run.batches {
			mat := b.material
			needsUpdate := mat.needsUpdate(frameNumber)

			var instanceWrites []shaderpipe.DescriptorWrite
			if err := shader.ApplyMaterialInstances(dev, res.InstanceBuffer, mat.instanceValues(), needsUpdate, &instanceWrites); err != nil {
				return stats, fmt.Errorf("scene: apply material instance: %w", err)
			}
			if len(instanceWrites) > 0 {
				if err := dev.UpdateDescriptorSet(instanceWrites); err != nil {
					return stats, fmt.Errorf("scene: update instance descriptor set: %w", err)
				}
			}
			if err := dev.BindDescriptorSet(cmd, res.InstanceSet, mat.Instance); err != nil {
				return stats, fmt.Errorf("scene: bind instance descriptor set: %w", err)
			}

			for _, d := range b.draws {
				if err := shader.ApplyMaterialLocals(dev, cmd, d.Model); err != nil {
					return stats, fmt.Errorf("scene: apply material locals: %w", err)
				}
				stats.DrawCalls++
				stats.Vertices += d.Mesh.VertexCount
			}
		}
	}

	tracker.finish()
	return stats, nil
}
