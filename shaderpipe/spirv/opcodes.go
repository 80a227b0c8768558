// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package spirv walks a compiled SPIR-V module's instruction stream once
// and records, per result id, the type/storage/decoration metadata the
// shader pipeline needs to build vertex bindings, descriptor layouts, and
// push constant ranges without a driver round trip.
package spirv

// Opcode is a SPIR-V instruction opcode, the low 16 bits of an
// instruction's first word.
type Opcode uint16

// Opcodes this reflector names. OpMemberName is declared but not
// interpreted, so struct member names are not recorded. Everything else
// is skipped by word count without interpretation.
const (
	OpName             Opcode = 5
	OpMemberName       Opcode = 6
	OpEntryPoint       Opcode = 15
	OpExecutionMode    Opcode = 16
	OpTypeVoid         Opcode = 19
	OpTypeBool         Opcode = 20
	OpTypeInt          Opcode = 21
	OpTypeFloat        Opcode = 22
	OpTypeVector       Opcode = 23
	OpTypeMatrix       Opcode = 24
	OpTypeImage        Opcode = 25
	OpTypeSampler      Opcode = 26
	OpTypeSampledImage Opcode = 27
	OpTypeArray        Opcode = 28
	OpTypeRuntimeArray Opcode = 29
	OpTypeStruct       Opcode = 30
	OpTypePointer      Opcode = 32
	OpConstant         Opcode = 43
	OpVariable         Opcode = 59
	OpDecorate         Opcode = 71
	OpMemberDecorate   Opcode = 72
)

// StorageClass identifies where a pointer type's pointee lives.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassPushConstant    StorageClass = 9
	StorageClassStorageBuffer   StorageClass = 12
)

// Decoration identifies an OpDecorate/OpMemberDecorate operand kind.
type Decoration uint32

const (
	DecorationBlock         Decoration = 2
	DecorationBufferBlock   Decoration = 3
	DecorationLocation      Decoration = 30
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset        Decoration = 35
)

// ExecutionModel identifies a shader stage's entry point kind.
type ExecutionModel uint32

const (
	ExecutionModelVertex    ExecutionModel = 0
	ExecutionModelFragment  ExecutionModel = 4
	ExecutionModelGLCompute ExecutionModel = 5
)

// ExecutionMode operand kinds relevant to reflection.
const (
	ExecutionModeLocalSize uint32 = 17
)

// MagicNumber identifies a well-formed SPIR-V module.
const MagicNumber uint32 = 0x07230203
