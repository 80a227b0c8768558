// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package resource

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gazed/corevu/mathx"
)

// MeshData is the CPU-side geometry a mesh loader hands to the renderer
// for GPU buffer upload. Indices refer into Positions/Normals/UVs, which
// are all indexed starting at 0 and kept parallel to each other.
type MeshData struct {
	Name      string
	Positions []float32 // 3 floats per vertex
	Normals   []float32 // 3 floats per vertex
	UVs       []float32 // 2 floats per vertex, empty if the source had none
	Indices   []uint16
}

// objFace is one triangle's three "v/t/n" index strings.
type objFace struct {
	points [3]string
}

// ParseObj reads a single-object Wavefront OBJ mesh: vertex positions,
// normals, optional texture coordinates, and triangle faces. Only the
// first object in a multi-object file is returned; files with quads or
// polygons beyond triangles are not supported.
func ParseObj(r io.Reader) (*MeshData, error) {
	name := "mesh"
	var positions, normals []mathx.V3
	var uvs []uvPair
	var faces []objFace

	seenObject := false
	scanner := bufio.NewScanner(r)
scan:
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "o":
			if seenObject {
				break scan // only the first object is returned
			}
			seenObject = true
			if len(fields) >= 2 {
				name = fields[1]
			}
		case "v":
			var x, y, z float64
			if _, err := fmt.Sscanf(line, "v %f %f %f", &x, &y, &z); err != nil {
				return nil, fmt.Errorf("resource: bad obj vertex %q: %w", line, err)
			}
			positions = append(positions, mathx.V3{X: x, Y: y, Z: z})
		case "vn":
			var x, y, z float64
			if _, err := fmt.Sscanf(line, "vn %f %f %f", &x, &y, &z); err != nil {
				return nil, fmt.Errorf("resource: bad obj normal %q: %w", line, err)
			}
			normals = append(normals, mathx.V3{X: x, Y: y, Z: z})
		case "vt":
			var u, v float64
			if _, err := fmt.Sscanf(line, "vt %f %f", &u, &v); err != nil {
				return nil, fmt.Errorf("resource: bad obj texcoord %q: %w", line, err)
			}
			uvs = append(uvs, uvPair{u, 1 - v})
		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("resource: only triangular faces are supported: %q", line)
			}
			faces = append(faces, objFace{points: [3]string{fields[1], fields[2], fields[3]}})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("resource: reading obj: %w", err)
	}
	if len(positions) == 0 || len(faces) == 0 {
		return nil, fmt.Errorf("resource: obj file has no vertex or face data")
	}
	return buildMeshData(name, positions, normals, uvs, faces)
}

type uvPair struct{ u, v float64 }

// buildMeshData flattens face/vertex/normal/uv references into parallel,
// zero-indexed arrays, merging duplicate (vertex, texcoord) pairs and
// accumulating the normal at each merged vertex as the sum of the
// normals of every face that shares it.
func buildMeshData(name string, positions, normals []mathx.V3, uvs []uvPair, faces []objFace) (*MeshData, error) {
	data := &MeshData{Name: name}
	seen := map[string]uint16{}

	for _, face := range faces {
		for _, point := range face.points {
			vi, ti, ni, err := parseObjIndex(point)
			if err != nil {
				return nil, err
			}
			if vi < 0 || vi >= len(positions) {
				return nil, fmt.Errorf("resource: vertex index %d out of range", vi+1)
			}
			key := fmt.Sprintf("%d/%d", vi, ti)
			idx, ok := seen[key]
			if !ok {
				idx = uint16(len(data.Positions) / 3)
				seen[key] = idx
				p := positions[vi]
				data.Positions = append(data.Positions, float32(p.X), float32(p.Y), float32(p.Z))
				var n mathx.V3
				if ni >= 0 && ni < len(normals) {
					n = normals[ni]
				}
				data.Normals = append(data.Normals, float32(n.X), float32(n.Y), float32(n.Z))
				if ti >= 0 && ti < len(uvs) {
					data.UVs = append(data.UVs, float32(uvs[ti].u), float32(uvs[ti].v))
				}
			} else if ni >= 0 && ni < len(normals) {
				// Average the normal across every face sharing this vertex.
				o := int(idx) * 3
				sum := mathx.V3{
					X: float64(data.Normals[o]) + normals[ni].X,
					Y: float64(data.Normals[o+1]) + normals[ni].Y,
					Z: float64(data.Normals[o+2]) + normals[ni].Z,
				}
				sum.Unit()
				data.Normals[o], data.Normals[o+1], data.Normals[o+2] = float32(sum.X), float32(sum.Y), float32(sum.Z)
			}
			data.Indices = append(data.Indices, idx)
		}
	}
	return data, nil
}

// parseObjIndex turns a face point string ("v/t/n" or "v//n") into
// 0-based indices, returning -1 for any component the point omits.
func parseObjIndex(point string) (v, t, n int, err error) {
	v, t, n = -1, -1, -1
	if _, err = fmt.Sscanf(point, "%d//%d", &v, &n); err == nil {
		return v - 1, t, n - 1, nil
	}
	if _, err = fmt.Sscanf(point, "%d/%d/%d", &v, &t, &n); err == nil {
		return v - 1, t - 1, n - 1, nil
	}
	return 0, 0, 0, fmt.Errorf("resource: unparseable face index %q", point)
}

// meshLoader implements Loader for KindMesh, parsing OBJ files from a
// base directory into MeshData for the renderer to upload.
type meshLoader struct {
	baseDir string
}

// NewMeshLoader creates a Loader that resolves mesh names relative to
// baseDir.
func NewMeshLoader(baseDir string) Loader {
	return &meshLoader{baseDir: baseDir}
}

func (l *meshLoader) Load(name string) (any, error) {
	f, err := os.Open(filepath.Join(l.baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("resource: open mesh %s: %w", name, err)
	}
	defer f.Close()
	return ParseObj(f)
}

func (l *meshLoader) Release(payload any) {}
