// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package resource is the engine's name-keyed asset registry: textures,
// meshes, materials, shaders, fonts, and sounds are loaded lazily on
// first request and refcounted so that shared assets are released only
// when the last user is done with them.
package resource

import (
	"fmt"
	"log/slog"
)

// Kind identifies which bucket of the registry a resource lives in.
type Kind int

const (
	KindTexture Kind = iota
	KindMesh
	KindMaterial
	KindShader
	KindFont
	KindSound
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindMesh:
		return "mesh"
	case KindMaterial:
		return "material"
	case KindShader:
		return "shader"
	case KindFont:
		return "font"
	case KindSound:
		return "sound"
	}
	return "unknown"
}

// Handle references a single registry entry. The zero Handle is never
// valid; Load always returns a non-zero id on success.
type Handle struct {
	kind Kind
	id   uint32
}

// Loader produces the in-memory payload for a resource the first time it
// is requested by name. Release is called once the entry's refcount
// drops to zero, after the payload has already been removed from the
// registry, to free any GPU-side resource the payload holds.
type Loader interface {
	Load(name string) (any, error)
	Release(payload any)
}

type entry struct {
	name    string
	refs    int
	payload any
}

// Registry is a name to handle map per resource Kind. Entries are loaded
// lazily and kept alive by refcount; Load on an already-cached name just
// increments the count and returns the existing handle.
type Registry struct {
	loaders [kindCount]Loader
	byName  [kindCount]map[string]uint32
	entries [kindCount]map[uint32]*entry
	nextID  uint32
}

// NewRegistry creates an empty registry. Bind loaders for each Kind you
// intend to Load before calling Load.
func NewRegistry() *Registry {
	r := &Registry{}
	for k := range r.byName {
		r.byName[k] = make(map[string]uint32)
		r.entries[k] = make(map[uint32]*entry)
	}
	return r
}

// Bind registers the Loader responsible for producing and releasing
// payloads of the given Kind.
func (r *Registry) Bind(kind Kind, loader Loader) {
	r.loaders[kind] = loader
}

// Load returns a refcounted handle for name, loading it through the
// Kind's bound Loader on first request. The returned handle's refcount
// must be matched with a corresponding Release.
func (r *Registry) Load(kind Kind, name string) (Handle, error) {
	if id, ok := r.byName[kind][name]; ok {
		r.entries[kind][id].refs++
		return Handle{kind: kind, id: id}, nil
	}
	loader := r.loaders[kind]
	if loader == nil {
		return Handle{}, fmt.Errorf("resource: no loader bound for %s", kind)
	}
	payload, err := loader.Load(name)
	if err != nil {
		return Handle{}, fmt.Errorf("resource: load %s %q: %w", kind, name, err)
	}
	r.nextID++
	id := r.nextID
	r.entries[kind][id] = &entry{name: name, refs: 1, payload: payload}
	r.byName[kind][name] = id
	return Handle{kind: kind, id: id}, nil
}

// Payload returns the in-memory value associated with a handle.
func (r *Registry) Payload(h Handle) any {
	if e, ok := r.entries[h.kind][h.id]; ok {
		return e.payload
	}
	return nil
}

// Release decrements a handle's refcount, freeing the entry and invoking
// the Kind's Loader.Release once the count reaches zero.
func (r *Registry) Release(h Handle) {
	e, ok := r.entries[h.kind][h.id]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(r.entries[h.kind], h.id)
	delete(r.byName[h.kind], e.name)
	if loader := r.loaders[h.kind]; loader != nil {
		loader.Release(e.payload)
	}
}

// Pin holds a handle alive across the registry lifetime without ever
// releasing it, used for default assets (a white texture, a default
// material shader) created at init that every scene can fall back to.
type Pin struct {
	Handle Handle
	Name   string
}

// LoadDefault loads name through kind's loader and logs a warning instead
// of returning an error, since a missing default asset is a startup
// configuration bug rather than a recoverable per-draw condition.
func (r *Registry) LoadDefault(kind Kind, name string) Pin {
	h, err := r.Load(kind, name)
	if err != nil {
		slog.Warn("resource: failed to load default asset", "kind", kind, "name", name, "err", err)
	}
	return Pin{Handle: h, Name: name}
}
