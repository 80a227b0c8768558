// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import "sort"

// batch is one material's run of drawables for the current frame.
type batch struct {
	material *Material
	draws    []Drawable
}

// Scene is the set of draw-eligible entities for one frame, grouped by
// material, plus the single camera that views them. Add is called once
// per drawable per frame; Reset keeps the same backing arrays across
// frames to avoid per-frame allocation.
type Scene struct {
	Camera *Camera

	order   []*Material // materials in first-seen order, for stable iteration
	batches map[*Material]*batch
}

// NewScene returns an empty scene viewed by camera.
func NewScene(camera *Camera) *Scene {
	return &Scene{Camera: camera, batches: map[*Material]*batch{}}
}

// Add appends a (modelMatrix, mesh) drawable to its material's bucket.
func (s *Scene) Add(d Drawable) {
	b, ok := s.batches[d.Material]
	if !ok {
		b = &batch{material: d.Material}
		s.batches[d.Material] = b
		s.order = append(s.order, d.Material)
	}
	b.draws = append(b.draws, d)
}

// Reset clears every batch's draw list while keeping the allocated
// backing arrays, ready to accumulate the next frame's drawables.
func (s *Scene) Reset() {
	for _, m := range s.order {
		s.batches[m].draws = s.batches[m].draws[:0]
	}
}

// shaderRun is a contiguous sequence of batches that share one shader,
// the unit BeginRenderpass/EndRenderpass bracket a render pass around.
type shaderRun struct {
	batches []*batch
}

// buildRuns sorts the scene's non-empty batches by shader (renderOrder
// tiebreak) and groups contiguous same-shader batches into runs.
func (s *Scene) buildRuns() []shaderRun {
	active := make([]*batch, 0, len(s.order))
	for _, m := range s.order {
		if b := s.batches[m]; len(b.draws) > 0 {
			active = append(active, b)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		si, sj := active[i].material.Shader, active[j].material.Shader
		if si != sj && si.Name != sj.Name {
			return si.Name < sj.Name
		}
		return active[i].material.RenderOrder < active[j].material.RenderOrder
	})

	var runs []shaderRun
	for _, b := range active {
		if len(runs) > 0 && runs[len(runs)-1].batches[0].material.Shader == b.material.Shader {
			last := &runs[len(runs)-1]
			last.batches = append(last.batches, b)
			continue
		}
		runs = append(runs, shaderRun{batches: []*batch{b}})
	}
	return runs
}
