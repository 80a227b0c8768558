// Copyright © 2024 Galvanized Logic Inc.

package resource

import "testing"

type countingLoader struct {
	loads, releases int
}

func (l *countingLoader) Load(name string) (any, error) {
	l.loads++
	return "payload:" + name, nil
}
func (l *countingLoader) Release(payload any) { l.releases++ }

func TestLoadCachesByName(t *testing.T) {
	loader := &countingLoader{}
	r := NewRegistry()
	r.Bind(KindTexture, loader)

	h1, err := r.Load(KindTexture, "wall.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := r.Load(KindTexture, "wall.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 != h2 {
		t.Errorf("expected repeated Load of the same name to return the same handle")
	}
	if loader.loads != 1 {
		t.Errorf("expected the loader to run once, ran %d times", loader.loads)
	}
}

func TestReleaseFreesOnZeroRefcount(t *testing.T) {
	loader := &countingLoader{}
	r := NewRegistry()
	r.Bind(KindTexture, loader)

	h, _ := r.Load(KindTexture, "wall.png")
	r.Load(KindTexture, "wall.png") // second reference

	r.Release(h)
	if loader.releases != 0 {
		t.Errorf("expected no release while a reference remains")
	}
	r.Release(h)
	if loader.releases != 1 {
		t.Errorf("expected exactly one release once refcount hits zero, got %d", loader.releases)
	}
	if r.Payload(h) != nil {
		t.Errorf("expected payload gone after final release")
	}
}

func TestLoadMissingLoaderErrors(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Load(KindMesh, "thing.obj"); err == nil {
		t.Errorf("expected an error when no loader is bound")
	}
}

func TestLoadAfterFullReleaseReloads(t *testing.T) {
	loader := &countingLoader{}
	r := NewRegistry()
	r.Bind(KindTexture, loader)

	h, _ := r.Load(KindTexture, "wall.png")
	r.Release(h)
	if _, err := r.Load(KindTexture, "wall.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loader.loads != 2 {
		t.Errorf("expected a fresh load after full release, got %d loads", loader.loads)
	}
}
