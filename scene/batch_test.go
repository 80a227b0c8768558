// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/gazed/corevu/shaderpipe"
)

func TestSceneBuildRunsGroupsByShaderStable(t *testing.T) {
	shaderA := &shaderpipe.Shader{Name: "a"}
	shaderB := &shaderpipe.Shader{Name: "b"}
	m1 := NewMaterial(shaderA)
	m2 := NewMaterial(shaderB)

	mesh := &Mesh{VertexCount: 3}
	s := NewScene(NewCamera())
	s.Add(Drawable{Mesh: mesh, Material: m1})
	s.Add(Drawable{Mesh: mesh, Material: m1})
	s.Add(Drawable{Mesh: mesh, Material: m2})

	runs := s.buildRuns()
	if len(runs) != 2 {
		t.Fatalf("expected 2 shader runs, got %d", len(runs))
	}
	if len(runs[0].batches) != 1 || len(runs[0].batches[0].draws) != 2 {
		t.Errorf("expected first run to have the 2-draw m1 batch, got %+v", runs[0])
	}
	if len(runs[1].batches) != 1 || len(runs[1].batches[0].draws) != 1 {
		t.Errorf("expected second run to have the 1-draw m2 batch, got %+v", runs[1])
	}
}

func TestSceneResetKeepsBatchesEmpty(t *testing.T) {
	shader := &shaderpipe.Shader{Name: "a"}
	m := NewMaterial(shader)
	mesh := &Mesh{VertexCount: 3}
	s := NewScene(NewCamera())
	s.Add(Drawable{Mesh: mesh, Material: m})
	s.Reset()
	runs := s.buildRuns()
	if len(runs) != 0 {
		t.Errorf("expected no active runs after reset, got %d", len(runs))
	}
}

func TestSceneEmptyBatchesExcludedFromRuns(t *testing.T) {
	shader := &shaderpipe.Shader{Name: "a"}
	m := NewMaterial(shader)
	s := NewScene(NewCamera())
	s.batches[m] = &batch{material: m}
	s.order = append(s.order, m)
	if runs := s.buildRuns(); len(runs) != 0 {
		t.Errorf("expected empty batch to be skipped, got %d runs", len(runs))
	}
}
