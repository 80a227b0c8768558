// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package spirv

import (
	"encoding/binary"
	"fmt"
)

// typeInfo records the shape of one OpType* result, enough to compute a
// byte width and recognize vectors/matrices/arrays/structs/images.
type typeInfo struct {
	op            Opcode
	width         uint32 // int/float bit width, or 0 for composite types
	componentType uint32 // element type id for vector/matrix/array
	componentCount uint32 // vector component count, matrix column count, or array length
	memberTypes   []uint32
}

type variable struct {
	id           uint32
	pointerType  uint32
	storageClass StorageClass
	name         string
}

// EntryPoint is one OpEntryPoint declaration: a named shader stage
// rooted at a function id.
type EntryPoint struct {
	Model ExecutionModel
	Name  string

	// LocalSize is populated from OpExecutionMode LocalSize for compute
	// entry points; zero otherwise.
	LocalSizeX, LocalSizeY, LocalSizeZ uint32
}

// Module is the result of walking a SPIR-V binary once: every id's name,
// type, storage class, and decorations, plus the module's entry points.
// Reflection output is deterministic for a given input: Module fields are
// populated strictly in instruction-stream order.
type Module struct {
	EntryPoints []EntryPoint

	names            map[uint32]string
	types            map[uint32]typeInfo
	pointerPointee   map[uint32]uint32
	pointerStorage   map[uint32]StorageClass
	variables        map[uint32]*variable
	decorations      map[uint32]map[Decoration][]uint32
	memberDecorations map[uint32]map[uint32]map[Decoration][]uint32 // struct type id -> member -> decoration -> operands
	constants        map[uint32]uint32
}

// Reflect parses a SPIR-V binary (as a byte stream, little or big endian
// per its header) and returns its Module metadata.
func Reflect(code []byte) (*Module, error) {
	if len(code) < 20 || len(code)%4 != 0 {
		return nil, fmt.Errorf("spirv: invalid module length %d", len(code))
	}
	order := binary.ByteOrder(binary.LittleEndian)
	if binary.LittleEndian.Uint32(code[0:4]) != MagicNumber {
		if binary.BigEndian.Uint32(code[0:4]) == MagicNumber {
			order = binary.BigEndian
		} else {
			return nil, fmt.Errorf("spirv: bad magic number")
		}
	}

	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = order.Uint32(code[i*4 : i*4+4])
	}

	m := &Module{
		names:             make(map[uint32]string),
		types:             make(map[uint32]typeInfo),
		pointerPointee:    make(map[uint32]uint32),
		pointerStorage:    make(map[uint32]StorageClass),
		variables:         make(map[uint32]*variable),
		decorations:       make(map[uint32]map[Decoration][]uint32),
		memberDecorations: make(map[uint32]map[uint32]map[Decoration][]uint32),
		constants:         make(map[uint32]uint32),
	}

	// Header: magic, version, generator, bound, schema.
	i := 5
	for i < len(words) {
		first := words[i]
		wordCount := int(first >> 16)
		op := Opcode(first & 0xffff)
		if wordCount == 0 || i+wordCount > len(words) {
			return nil, fmt.Errorf("spirv: malformed instruction at word %d", i)
		}
		operands := words[i+1 : i+wordCount]
		m.visit(op, operands)
		i += wordCount
	}
	return m, nil
}

func (m *Module) visit(op Opcode, ops []uint32) {
	switch op {
	case OpName:
		if len(ops) >= 2 {
			m.names[ops[0]] = decodeString(ops[1:])
		}
	case OpEntryPoint:
		if len(ops) >= 3 {
			model := ExecutionModel(ops[0])
			name := decodeString(ops[2:])
			m.EntryPoints = append(m.EntryPoints, EntryPoint{Model: model, Name: name})
		}
	case OpExecutionMode:
		if len(ops) >= 2 && ops[1] == ExecutionModeLocalSize && len(ops) >= 5 {
			for idx := range m.EntryPoints {
				if m.EntryPoints[idx].Model != ExecutionModelGLCompute {
					continue
				}
				m.EntryPoints[idx].LocalSizeX = ops[2]
				m.EntryPoints[idx].LocalSizeY = ops[3]
				m.EntryPoints[idx].LocalSizeZ = ops[4]
			}
		}
	case OpTypeInt:
		if len(ops) >= 2 {
			m.types[ops[0]] = typeInfo{op: op, width: ops[1]}
		}
	case OpTypeFloat:
		if len(ops) >= 2 {
			m.types[ops[0]] = typeInfo{op: op, width: ops[1]}
		}
	case OpTypeVector:
		if len(ops) >= 3 {
			m.types[ops[0]] = typeInfo{op: op, componentType: ops[1], componentCount: ops[2]}
		}
	case OpTypeMatrix:
		if len(ops) >= 3 {
			m.types[ops[0]] = typeInfo{op: op, componentType: ops[1], componentCount: ops[2]}
		}
	case OpTypeArray:
		if len(ops) >= 3 {
			count := m.constants[ops[2]]
			m.types[ops[0]] = typeInfo{op: op, componentType: ops[1], componentCount: count}
		}
	case OpTypeRuntimeArray:
		if len(ops) >= 2 {
			m.types[ops[0]] = typeInfo{op: op, componentType: ops[1]}
		}
	case OpTypeStruct:
		if len(ops) >= 1 {
			members := append([]uint32(nil), ops[1:]...)
			m.types[ops[0]] = typeInfo{op: op, memberTypes: members}
		}
	case OpTypeImage, OpTypeSampler, OpTypeSampledImage, OpTypeVoid, OpTypeBool:
		if len(ops) >= 1 {
			m.types[ops[0]] = typeInfo{op: op}
		}
	case OpTypePointer:
		if len(ops) >= 3 {
			m.pointerPointee[ops[0]] = ops[2]
			m.pointerStorage[ops[0]] = StorageClass(ops[1])
		}
	case OpConstant:
		if len(ops) >= 3 {
			m.constants[ops[1]] = ops[2]
		}
	case OpVariable:
		if len(ops) >= 3 {
			id := ops[1]
			v := &variable{id: id, pointerType: ops[0], storageClass: StorageClass(ops[2]), name: m.names[id]}
			m.variables[id] = v
		}
	case OpDecorate:
		if len(ops) >= 2 {
			id, dec := ops[0], Decoration(ops[1])
			if m.decorations[id] == nil {
				m.decorations[id] = make(map[Decoration][]uint32)
			}
			m.decorations[id][dec] = append([]uint32(nil), ops[2:]...)
		}
	case OpMemberDecorate:
		if len(ops) >= 3 {
			typeID, member, dec := ops[0], ops[1], Decoration(ops[2])
			if m.memberDecorations[typeID] == nil {
				m.memberDecorations[typeID] = make(map[uint32]map[Decoration][]uint32)
			}
			if m.memberDecorations[typeID][member] == nil {
				m.memberDecorations[typeID][member] = make(map[Decoration][]uint32)
			}
			m.memberDecorations[typeID][member][dec] = append([]uint32(nil), ops[3:]...)
		}
	}
}

// decodeString reads a NUL-terminated UTF-8 string packed little-endian
// across the given words, the literal-string encoding SPIR-V uses for
// every instruction operand of kind LiteralString.
func decodeString(words []uint32) string {
	buf := make([]byte, 0, len(words)*4)
	for _, w := range words {
		for shift := 0; shift < 32; shift += 8 {
			b := byte(w >> shift)
			if b == 0 {
				return string(buf)
			}
			buf = append(buf, b)
		}
	}
	return string(buf)
}

// Name returns the OpName-assigned name of id, or "" if it has none.
func (m *Module) Name(id uint32) string { return m.names[id] }

// typeSizeBytes returns the byte size of a scalar/vector/matrix type,
// used to accumulate vertex binding strides.
func (m *Module) typeSizeBytes(typeID uint32) uint32 {
	t, ok := m.types[typeID]
	if !ok {
		return 0
	}
	switch t.op {
	case OpTypeInt, OpTypeFloat:
		return t.width / 8
	case OpTypeVector:
		return m.typeSizeBytes(t.componentType) * t.componentCount
	case OpTypeMatrix:
		return m.typeSizeBytes(t.componentType) * t.componentCount
	case OpTypeArray:
		return m.typeSizeBytes(t.componentType) * t.componentCount
	}
	return 0
}

// matrixColumns returns the column count of a matrix type, or 1 for any
// non-matrix type, used to expand a matrix input into consecutive
// attribute locations.
func (m *Module) matrixColumns(typeID uint32) uint32 {
	if t, ok := m.types[typeID]; ok && t.op == OpTypeMatrix {
		return t.componentCount
	}
	return 1
}

// Variables returns every OpVariable id in the module, in ascending id
// order so layout derivation is stable across runs.
func (m *Module) Variables() []uint32 {
	ids := make([]uint32, 0, len(m.variables))
	for id := range m.variables {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// VariableStorageClass reports the storage class a variable was declared
// with.
func (m *Module) VariableStorageClass(id uint32) StorageClass {
	if v, ok := m.variables[id]; ok {
		return v.storageClass
	}
	return StorageClassUniformConstant
}

// VariableType returns the type id a variable's pointer ultimately
// points at (the dereferenced type, not the pointer type itself).
func (m *Module) VariableType(id uint32) uint32 {
	v, ok := m.variables[id]
	if !ok {
		return 0
	}
	return m.pointerPointee[v.pointerType]
}

// Decoration returns the operands of a decoration applied to id, and
// whether it was present at all.
func (m *Module) Decoration(id uint32, dec Decoration) ([]uint32, bool) {
	ops, ok := m.decorations[id][dec]
	return ops, ok
}

// MemberDecoration returns the operands of a decoration applied to one
// member of a struct type, and whether it was present.
func (m *Module) MemberDecoration(typeID, member uint32, dec Decoration) ([]uint32, bool) {
	byMember, ok := m.memberDecorations[typeID]
	if !ok {
		return nil, false
	}
	ops, ok := byMember[member][dec]
	return ops, ok
}

// StructMembers returns the member type ids of a struct type, or nil if
// typeID is not a struct.
func (m *Module) StructMembers(typeID uint32) []uint32 {
	if t, ok := m.types[typeID]; ok && t.op == OpTypeStruct {
		return t.memberTypes
	}
	return nil
}

// IsMatrix reports whether typeID names an OpTypeMatrix.
func (m *Module) IsMatrix(typeID uint32) bool {
	t, ok := m.types[typeID]
	return ok && t.op == OpTypeMatrix
}

// IsResourceType reports whether typeID is an image, sampler, or
// combined sampled-image type (the types bound through UniformConstant
// variables rather than uniform buffers).
func (m *Module) IsResourceType(typeID uint32) bool {
	t, ok := m.types[typeID]
	return ok && (t.op == OpTypeImage || t.op == OpTypeSampler || t.op == OpTypeSampledImage)
}

// TypeSizeBytes exports typeSizeBytes for callers outside the package.
func (m *Module) TypeSizeBytes(typeID uint32) uint32 { return m.typeSizeBytes(typeID) }

// MatrixColumns exports matrixColumns for callers outside the package.
func (m *Module) MatrixColumns(typeID uint32) uint32 { return m.matrixColumns(typeID) }

// VectorComponentCount returns a vector type's component count, or 1 for
// any non-vector type.
func (m *Module) VectorComponentCount(typeID uint32) uint32 {
	if t, ok := m.types[typeID]; ok && t.op == OpTypeVector {
		return t.componentCount
	}
	return 1
}

// ScalarWidthBits returns the bit width of an int/float type, tracing
// through a vector or matrix to its component type.
func (m *Module) ScalarWidthBits(typeID uint32) uint32 {
	t, ok := m.types[typeID]
	if !ok {
		return 0
	}
	switch t.op {
	case OpTypeInt, OpTypeFloat:
		return t.width
	case OpTypeVector, OpTypeMatrix, OpTypeArray:
		return m.ScalarWidthBits(t.componentType)
	}
	return 0
}

// IsFloat reports whether typeID's scalar component is a float (as
// opposed to an integer), tracing through vectors and matrices.
func (m *Module) IsFloat(typeID uint32) bool {
	t, ok := m.types[typeID]
	if !ok {
		return false
	}
	switch t.op {
	case OpTypeFloat:
		return true
	case OpTypeInt:
		return false
	case OpTypeVector, OpTypeMatrix, OpTypeArray:
		return m.IsFloat(t.componentType)
	}
	return false
}

// ResourceKind classifies an OpTypeImage/OpTypeSampledImage/OpTypeSampler
// type, returning "" for anything else.
func (m *Module) ResourceKind(typeID uint32) string {
	t, ok := m.types[typeID]
	if !ok {
		return ""
	}
	switch t.op {
	case OpTypeSampledImage:
		return "sampledImage"
	case OpTypeImage:
		return "image"
	case OpTypeSampler:
		return "sampler"
	}
	return ""
}
