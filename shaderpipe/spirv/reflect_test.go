// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package spirv

import (
	"encoding/binary"
	"testing"
)

// builder assembles a tiny SPIR-V module word stream for testing, using
// only the opcodes reflect.go understands.
type builder struct {
	words []uint32
	next  uint32
}

func newBuilder() *builder {
	return &builder{next: 1}
}

func (b *builder) id() uint32 {
	id := b.next
	b.next++
	return id
}

func (b *builder) inst(op Opcode, operands ...uint32) {
	wordCount := uint32(len(operands) + 1)
	b.words = append(b.words, wordCount<<16|uint32(op))
	b.words = append(b.words, operands...)
}

func packString(s string) []uint32 {
	buf := []byte(s)
	buf = append(buf, 0)
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	words := make([]uint32, len(buf)/4)
	for i := range words {
		words[i] = uint32(buf[i*4]) | uint32(buf[i*4+1])<<8 | uint32(buf[i*4+2])<<16 | uint32(buf[i*4+3])<<24
	}
	return words
}

func (b *builder) bytes() []byte {
	header := []uint32{MagicNumber, 0x00010300, 0, b.next, 0}
	all := append(header, b.words...)
	out := make([]byte, len(all)*4)
	for i, w := range all {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func TestReflectVertexInputAndUniformBlock(t *testing.T) {
	b := newBuilder()

	floatType := b.id()
	b.inst(OpTypeFloat, floatType, 32)
	vec3Type := b.id()
	b.inst(OpTypeVector, vec3Type, floatType, 3)

	ptrInputVec3 := b.id()
	b.inst(OpTypePointer, ptrInputVec3, uint32(StorageClassInput), vec3Type)
	positionVar := b.id()
	b.inst(OpVariable, ptrInputVec3, positionVar, uint32(StorageClassInput))
	b.inst(OpName, append([]uint32{positionVar}, packString("position")...)...)
	b.inst(OpDecorate, positionVar, uint32(DecorationLocation), 0)

	structType := b.id()
	b.inst(OpTypeStruct, structType, vec3Type)
	b.inst(OpMemberDecorate, structType, 0, uint32(DecorationOffset), 0)
	b.inst(OpDecorate, structType, uint32(DecorationBlock))

	ptrUniform := b.id()
	b.inst(OpTypePointer, ptrUniform, uint32(StorageClassUniform), structType)
	uboVar := b.id()
	b.inst(OpVariable, ptrUniform, uboVar, uint32(StorageClassUniform))
	b.inst(OpName, uboVar, packString("Globals")[0])
	b.inst(OpDecorate, uboVar, uint32(DecorationDescriptorSet), 0)
	b.inst(OpDecorate, uboVar, uint32(DecorationBinding), 0)

	nameWords := packString("main")
	entryOperands := append([]uint32{uint32(ExecutionModelVertex), 99}, nameWords...)
	b.inst(OpEntryPoint, entryOperands...)

	mod, err := Reflect(b.bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mod.EntryPoints) != 1 || mod.EntryPoints[0].Name != "main" {
		t.Fatalf("expected one entry point named main, got %+v", mod.EntryPoints)
	}
	if mod.EntryPoints[0].Model != ExecutionModelVertex {
		t.Errorf("expected vertex execution model, got %v", mod.EntryPoints[0].Model)
	}

	if got := mod.Name(positionVar); got != "position" {
		t.Errorf("expected variable name position, got %q", got)
	}
	if sc := mod.VariableStorageClass(positionVar); sc != StorageClassInput {
		t.Errorf("expected Input storage class, got %v", sc)
	}
	loc, ok := mod.Decoration(positionVar, DecorationLocation)
	if !ok || loc[0] != 0 {
		t.Errorf("expected location 0 on position, got %v ok=%v", loc, ok)
	}

	if sc := mod.VariableStorageClass(uboVar); sc != StorageClassUniform {
		t.Errorf("expected Uniform storage class, got %v", sc)
	}
	set, ok := mod.Decoration(uboVar, DecorationDescriptorSet)
	if !ok || set[0] != 0 {
		t.Errorf("expected descriptor set 0, got %v ok=%v", set, ok)
	}
	binding, ok := mod.Decoration(uboVar, DecorationBinding)
	if !ok || binding[0] != 0 {
		t.Errorf("expected binding 0, got %v ok=%v", binding, ok)
	}

	uboType := mod.VariableType(uboVar)
	members := mod.StructMembers(uboType)
	if len(members) != 1 || members[0] != vec3Type {
		t.Errorf("expected one vec3 member, got %v", members)
	}
	if size := mod.TypeSizeBytes(vec3Type); size != 12 {
		t.Errorf("expected vec3 size 12 bytes, got %d", size)
	}
}

func TestReflectComputeLocalSize(t *testing.T) {
	b := newBuilder()
	nameWords := packString("cs_main")
	entryOperands := append([]uint32{uint32(ExecutionModelGLCompute), 1}, nameWords...)
	b.inst(OpEntryPoint, entryOperands...)
	b.inst(OpExecutionMode, 1, ExecutionModeLocalSize, 8, 8, 1)

	mod, err := Reflect(b.bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ep := mod.EntryPoints[0]
	if ep.LocalSizeX != 8 || ep.LocalSizeY != 8 || ep.LocalSizeZ != 1 {
		t.Errorf("expected local size (8,8,1), got (%d,%d,%d)", ep.LocalSizeX, ep.LocalSizeY, ep.LocalSizeZ)
	}
}

func TestReflectRejectsBadMagic(t *testing.T) {
	bad := make([]byte, 24)
	if _, err := Reflect(bad); err == nil {
		t.Errorf("expected error for bad magic number")
	}
}
