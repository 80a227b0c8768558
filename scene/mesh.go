// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import "github.com/gazed/corevu/resource"

// Mesh is the subset of a loaded mesh resource the scene frontend needs
// to issue a draw call: its GPU buffer handle and vertex/index counts.
// Geometry loading and buffer upload belong to the resource registry
// (resource.Registry); scene only ever reads mesh metadata to draw it.
type Mesh struct {
	Handle      resource.Handle
	VertexCount int
	IndexCount  int
	DrawMode    int // backend-defined: triangles, lines, points, ...
}

// Drawable is one instance of a mesh drawn with a material at a given
// world transform: the `(modelMatrix, mesh)` pair the batching step
// appends to a material's bucket.
type Drawable struct {
	Mesh     *Mesh
	Material *Material
	Model    [16]float32 // column-major model matrix
	ToCamera float64     // distance to camera; draws are not sorted by it
}
