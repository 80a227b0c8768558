// Copyright © 2024 Galvanized Logic Inc.

// Package mem implements the engine's process-wide allocator: four
// fixed-size-class pools for dynamic allocations plus a bump-only linear
// arena for allocations that live for the whole process. All allocation
// routed through this package is tagged by subsystem so Stats can report
// per-tag byte, alloc, and free counts. The core runs cooperative
// single-threaded (see the engine package), so none of this package's
// bookkeeping is synchronized.
package mem

// Tag identifies the subsystem an allocation belongs to, for accounting
// purposes only — it has no effect on where an allocation is placed.
type Tag uint8

// Tags mirror the engine's major subsystems.
const (
	TagUnknown Tag = iota
	TagDataStruct
	TagRenderer
	TagTexture
	TagAudio
	TagPhysics
	TagGameObject
	TagUI
	TagResource
	TagGame
	tagCount
)

func (t Tag) String() string {
	switch t {
	case TagUnknown:
		return "Unknown"
	case TagDataStruct:
		return "DataStruct"
	case TagRenderer:
		return "Renderer"
	case TagTexture:
		return "Texture"
	case TagAudio:
		return "Audio"
	case TagPhysics:
		return "Physics"
	case TagGameObject:
		return "GameObject"
	case TagUI:
		return "UI"
	case TagResource:
		return "Resource"
	case TagGame:
		return "Game"
	default:
		return "Unknown"
	}
}

// Stats reports allocation activity for a single tag.
type Stats struct {
	Bytes  int64
	Allocs int64
	Frees  int64
}

// Allocator is the process-wide memory allocator. The zero value is not
// usable; create one with New.
type Allocator struct {
	arena *arena
	pools [4]*pool
	stats [tagCount]Stats

	hostAllocs int64
	hostFrees  int64
}

// New creates an Allocator with a backing budget of totalBytes, split
// between the four dynamic size-class pools and a static linear arena.
// The 4 MiB class gets roughly totalBytes/20, the 256 KiB class 15% of
// what remains, the 16 KiB class 30% of what remains after that, and the
// 1 KiB class whatever is left over. The linear arena is a separate
// buffer of arenaBytes, not taken out of totalBytes.
func New(totalBytes, arenaBytes int64) *Allocator {
	budget := totalBytes
	class4M := budget / 20
	budget -= class4M
	class256K := budget * 15 / 100
	budget -= class256K
	class16K := budget * 30 / 100
	budget -= class16K
	class1K := budget

	a := &Allocator{arena: newArena(arenaBytes)}
	a.pools[0] = newPool(1<<10, class1K/(1<<10))
	a.pools[1] = newPool(16<<10, class16K/(16<<10))
	a.pools[2] = newPool(256<<10, class256K/(256<<10))
	a.pools[3] = newPool(4<<20, class4M/(4<<20))
	return a
}

// Allocate returns a zero-initialized byte slice of at least size bytes,
// tagged for accounting. It picks the smallest size class that fits size;
// if that class is full it promotes to the next larger class; if every
// class is exhausted it falls back to make([]byte, size) directly. Stats
// counts a fallback like any other allocation of its tag; it does not
// report fallbacks separately.
func (a *Allocator) Allocate(size int64, tag Tag) []byte {
	for i, p := range a.pools {
		if size > p.slotSize {
			continue
		}
		for ; i < len(a.pools); i++ {
			if slot, ok := a.pools[i].acquire(); ok {
				a.record(tag, a.pools[i].slotSize)
				return slot[:size]
			}
		}
		break
	}
	a.hostAllocs++
	a.record(tag, size)
	return make([]byte, size)
}

// Free releases a slice previously returned by Allocate. It identifies the
// owning pool by address range; a slice the allocator doesn't own (i.e.
// one that fell back to the host allocator) is simply dropped, matching
// Go's garbage collector taking over.
func (a *Allocator) Free(b []byte, tag Tag) {
	if len(b) == 0 {
		return
	}
	for _, p := range a.pools {
		if p.owns(b) {
			p.release(b)
			a.stats[tag].Frees++
			return
		}
	}
	a.hostFrees++
	a.stats[tag].Frees++
}

// LinearAllocate bumps the static arena pointer and returns a zeroed slice
// of size bytes. Linear allocations are never freed individually; the
// whole arena is released at process shutdown by simply dropping the
// Allocator.
func (a *Allocator) LinearAllocate(size int64) []byte {
	return a.arena.allocate(size)
}

// Stats returns a snapshot of per-tag allocation counters.
func (a *Allocator) Stats(tag Tag) Stats { return a.stats[tag] }

func (a *Allocator) record(tag Tag, size int64) {
	a.stats[tag].Bytes += size
	a.stats[tag].Allocs++
}
