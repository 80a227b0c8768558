// Copyright © 2024 Galvanized Logic Inc.

package mem

import "unsafe"

// pool is one fixed size class: a single backing buffer cut into slotCount
// equal slots of slotSize bytes, with a free-index stack tracking which
// slots are currently unused. Every live pointer into the class lies in
// exactly one slot, so ownership and the zero-fragmentation guarantee both
// fall out of the fixed layout.
type pool struct {
	buf      []byte
	slotSize int64
	free     []int32 // stack of free slot indices
}

func newPool(slotSize, slotCount int64) *pool {
	if slotCount <= 0 {
		slotCount = 1
	}
	p := &pool{
		buf:      make([]byte, slotSize*slotCount),
		slotSize: slotSize,
		free:     make([]int32, slotCount),
	}
	for i := range p.free {
		p.free[i] = int32(len(p.free) - 1 - i)
	}
	return p
}

// acquire pops a free slot and returns it, already zeroed from the last
// release (or never used). ok is false if the class is exhausted.
func (p *pool) acquire() (slot []byte, ok bool) {
	if len(p.free) == 0 {
		return nil, false
	}
	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	start := int64(idx) * p.slotSize
	return p.buf[start : start+p.slotSize], true
}

// owns reports whether b's backing array lies within this pool's buffer.
func (p *pool) owns(b []byte) bool {
	if len(p.buf) == 0 || len(b) == 0 {
		return false
	}
	base := uintptr(unsafe.Pointer(&p.buf[0]))
	ptr := uintptr(unsafe.Pointer(&b[0]))
	return ptr >= base && ptr < base+uintptr(len(p.buf))
}

// release zeros a previously acquired slot and returns its index to the
// free stack.
func (p *pool) release(b []byte) {
	base := uintptr(unsafe.Pointer(&p.buf[0]))
	ptr := uintptr(unsafe.Pointer(&b[0]))
	idx := int32((ptr - base) / uintptr(p.slotSize))

	start := int64(idx) * p.slotSize
	slot := p.buf[start : start+p.slotSize]
	for i := range slot {
		slot[i] = 0
	}
	p.free = append(p.free, idx)
}
