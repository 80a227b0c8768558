// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package resource

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MaterialData is the CPU-side description a Wavefront MTL file yields:
// enough to populate a scene.Material's diffuse color and shininess once
// the caller has a shader to bind it to.
type MaterialData struct {
	Name         string
	DiffuseColor [4]float32
	Shininess    float32
}

// ParseMtl reads the first material block of a Wavefront MTL file,
// supporting the Kd (diffuse), d (alpha), and Ns (specular exponent)
// directives; ambient and specular color (Ka/Ks) have no equivalent on
// scene.Material, so they are ignored here.
func ParseMtl(r io.Reader) (*MaterialData, error) {
	data := &MaterialData{DiffuseColor: [4]float32{1, 1, 1, 1}}
	found := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "newmtl":
			if found {
				return data, nil // only the first material block is read
			}
			if len(fields) >= 2 {
				data.Name = fields[1]
				found = true
			}
		case "Kd":
			var r, g, b float32
			if _, err := fmt.Sscanf(line, "Kd %f %f %f", &r, &g, &b); err != nil {
				return nil, fmt.Errorf("resource: bad mtl diffuse %q: %w", line, err)
			}
			data.DiffuseColor[0], data.DiffuseColor[1], data.DiffuseColor[2] = r, g, b
		case "d":
			a, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, fmt.Errorf("resource: bad mtl alpha %q: %w", line, err)
			}
			data.DiffuseColor[3] = float32(a)
		case "Ns":
			ns, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, fmt.Errorf("resource: bad mtl shininess %q: %w", line, err)
			}
			data.Shininess = float32(ns)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("resource: reading mtl: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("resource: mtl file has no newmtl block")
	}
	return data, nil
}

// materialLoader implements Loader for KindMaterial, parsing MTL files
// from a base directory.
type materialLoader struct {
	baseDir string
}

// NewMaterialLoader creates a Loader that resolves material names
// relative to baseDir.
func NewMaterialLoader(baseDir string) Loader {
	return &materialLoader{baseDir: baseDir}
}

func (l *materialLoader) Load(name string) (any, error) {
	f, err := os.Open(filepath.Join(l.baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("resource: open material %s: %w", name, err)
	}
	defer f.Close()
	return ParseMtl(f)
}

func (l *materialLoader) Release(payload any) {}
