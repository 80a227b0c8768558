// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package shaderpipe builds immutable pipeline and descriptor-set layout
// metadata from reflected SPIR-V modules, and applies per-frame, per-
// instance, and per-draw values against it. It turns the output of
// shaderpipe/spirv into the shapes a backend pipeline layout and
// descriptor writer need, without ever reading shader source text.
package shaderpipe

import (
	"fmt"
	"sort"

	"github.com/gazed/corevu/shaderpipe/spirv"
)

// FieldType names the scalar/vector/matrix/resource shape of an
// attribute, uniform, or push constant field.
type FieldType int

const (
	FieldUnknown FieldType = iota
	FieldFloat32
	FieldInt32
	FieldUint32
	FieldVector2
	FieldVector3
	FieldVector4
	FieldMatrix4
	FieldSampler
	FieldCustom
)

func (t FieldType) String() string {
	switch t {
	case FieldFloat32:
		return "float32"
	case FieldInt32:
		return "int32"
	case FieldUint32:
		return "uint32"
	case FieldVector2:
		return "vector2"
	case FieldVector3:
		return "vector3"
	case FieldVector4:
		return "vector4"
	case FieldMatrix4:
		return "matrix4"
	case FieldSampler:
		return "sampler"
	case FieldCustom:
		return "custom"
	}
	return "unknown"
}

// Scope distinguishes uniforms set once per frame from uniforms set per
// material instance.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeInstance
	scopeCount
)

// DescriptorType names the backend descriptor kind a shader variable
// binds to.
type DescriptorType int

const (
	DescriptorUniformBuffer DescriptorType = iota
	DescriptorStorageBuffer
	DescriptorCombinedImageSampler
	DescriptorStorageImage
	DescriptorInputAttachment
)

// Attribute is one vertex-input location.
type Attribute struct {
	Name     string
	Type     FieldType
	Location uint32
	Size     uint32
}

// VertexBinding groups attributes sharing a vertex-buffer slot: its own
// binding for position/normal/tangent/texcoord/color, a shared
// "combined" binding for everything else per-vertex, and a separate
// per-instance binding for attributes at or past instanceLocation.
type VertexBinding struct {
	Index       uint32
	Stride      uint32
	PerInstance bool
	Attributes  []Attribute
}

// Uniform is one member of a global or instance uniform block.
type Uniform struct {
	Name     string
	Scope    Scope
	Type     FieldType
	Offset   uint32
	Location uint32 // texture slot within its scope, for FieldSampler
	Size     uint32
	Set      uint32
	Binding  uint32
}

// PushConstant is one push-constant range.
type PushConstant struct {
	Name   string
	Type   FieldType
	Size   uint32
	Offset uint32
}

// Descriptor is one non-input shader variable's binding slot.
type Descriptor struct {
	Set     uint32
	Binding uint32
	Type    DescriptorType
	Name    string
	Scope   Scope
}

// BindlessSet and BindlessBinding are the reserved descriptor slot for
// the bindless combined-image-sampler / storage-image table.
const (
	BindlessSet     = 1
	BindlessBinding = 10
)

// Shader is the fully reflected, immutable description of a shader
// program assembled from one or more SPIR-V stage modules. Once built it
// never changes: the pipeline and descriptor-set layouts it describes
// are fixed for the shader's lifetime.
type Shader struct {
	Name string

	Attributes      []Attribute
	VertexBindings  []VertexBinding
	Uniforms        [scopeCount][]Uniform
	GlobalUboSize   uint32
	InstanceUboSize uint32

	Descriptors      []Descriptor
	Bindless         bool
	BindlessSet      uint32
	BindlessBinding  uint32
	PushConstants    []PushConstant
	PushConstantSize uint32

	OutputCount uint32

	ComputeLocalSize [3]uint32

	InstanceLocation uint32
}

// Stage pairs a SPIR-V binary with the execution model it was compiled
// for.
type Stage struct {
	Model spirv.ExecutionModel
	Code  []byte
}

// Build reflects every stage and derives a Shader's vertex bindings,
// descriptor set layout, and push constant ranges. instanceLocation is
// the shader-config threshold (spec key `instanceLocation`) above which
// a vertex-stage input location is treated as per-instance data.
func Build(name string, stages []Stage, instanceLocation uint32) (*Shader, error) {
	s := &Shader{Name: name, InstanceLocation: instanceLocation,
		BindlessSet: BindlessSet, BindlessBinding: BindlessBinding}

	bindingIndex := make(map[string]int)
	seenDescriptors := make(map[[2]uint32]bool)

	for _, stage := range stages {
		mod, err := spirv.Reflect(stage.Code)
		if err != nil {
			return nil, fmt.Errorf("shaderpipe: stage %v: %w", stage.Model, err)
		}

		if stage.Model == spirv.ExecutionModelGLCompute {
			for _, ep := range mod.EntryPoints {
				if ep.Model == spirv.ExecutionModelGLCompute {
					s.ComputeLocalSize = [3]uint32{ep.LocalSizeX, ep.LocalSizeY, ep.LocalSizeZ}
				}
			}
		}

		for _, id := range mod.Variables() {
			sc := mod.VariableStorageClass(id)
			typeID := mod.VariableType(id)
			varName := mod.Name(id)

			switch sc {
			case spirv.StorageClassInput:
				if stage.Model != spirv.ExecutionModelVertex {
					continue
				}
				loc, ok := mod.Decoration(id, spirv.DecorationLocation)
				if !ok {
					continue
				}
				addAttribute(s, mod, bindingIndex, varName, typeID, loc[0])

			case spirv.StorageClassOutput:
				if stage.Model == spirv.ExecutionModelFragment {
					s.OutputCount++
				}

			case spirv.StorageClassPushConstant:
				addPushConstant(s, mod, varName, typeID)

			case spirv.StorageClassUniform, spirv.StorageClassUniformConstant, spirv.StorageClassStorageBuffer:
				set, binding := uint32(0), uint32(0)
				if v, ok := mod.Decoration(id, spirv.DecorationDescriptorSet); ok {
					set = v[0]
				}
				if v, ok := mod.Decoration(id, spirv.DecorationBinding); ok {
					binding = v[0]
				}
				key := [2]uint32{set, binding}
				if seenDescriptors[key] {
					continue
				}
				seenDescriptors[key] = true

				if set == BindlessSet && binding == BindlessBinding {
					s.Bindless = true
					continue
				}

				dtype := descriptorType(mod, sc, typeID)
				s.Descriptors = append(s.Descriptors, Descriptor{
					Set: set, Binding: binding, Type: dtype, Name: varName,
					Scope: descriptorScope(set),
				})

				if dtype == DescriptorUniformBuffer || dtype == DescriptorStorageBuffer {
					addUniformBlockMembers(s, mod, typeID, descriptorScope(set), set, binding)
				}
			}
		}
	}

	sort.SliceStable(s.Descriptors, func(i, j int) bool {
		if s.Descriptors[i].Set != s.Descriptors[j].Set {
			return s.Descriptors[i].Set < s.Descriptors[j].Set
		}
		return s.Descriptors[i].Binding < s.Descriptors[j].Binding
	})

	return s, nil
}

func descriptorScope(set uint32) Scope {
	if set == 0 {
		return ScopeGlobal
	}
	return ScopeInstance
}

func descriptorType(mod *spirv.Module, sc spirv.StorageClass, typeID uint32) DescriptorType {
	switch mod.ResourceKind(typeID) {
	case "sampledImage", "sampler":
		return DescriptorCombinedImageSampler
	case "image":
		return DescriptorStorageImage
	}
	if sc == spirv.StorageClassStorageBuffer {
		return DescriptorStorageBuffer
	}
	if _, ok := mod.Decoration(typeID, spirv.DecorationBufferBlock); ok {
		return DescriptorStorageBuffer
	}
	return DescriptorUniformBuffer
}

// groupFor assigns a vertex attribute to its binding group name per the
// position/normal/tangent/texcoord/color/combined/instance convention.
func groupFor(name string, location, instanceLocation uint32) (group string, perInstance bool) {
	if location >= instanceLocation {
		return "instance", true
	}
	switch name {
	case "position", "normal", "tangent", "texcoord", "color":
		return name, false
	}
	return "combined", false
}

func addAttribute(s *Shader, mod *spirv.Module, bindingIndex map[string]int, name string, typeID, location uint32) {
	columns := mod.MatrixColumns(typeID)
	elemSize := mod.TypeSizeBytes(typeID) / maxu(columns, 1)
	fieldType := classify(mod, typeID)

	for c := uint32(0); c < columns; c++ {
		loc := location + c
		group, perInstance := groupFor(name, loc, s.InstanceLocation)

		idx, ok := bindingIndex[group]
		if !ok {
			idx = len(s.VertexBindings)
			bindingIndex[group] = idx
			s.VertexBindings = append(s.VertexBindings, VertexBinding{
				Index: uint32(idx), PerInstance: perInstance,
			})
		}

		attr := Attribute{Name: name, Type: fieldType, Location: loc, Size: elemSize}
		s.Attributes = append(s.Attributes, attr)
		b := &s.VertexBindings[idx]
		b.Attributes = append(b.Attributes, attr)
		b.Stride += elemSize
	}
}

func addPushConstant(s *Shader, mod *spirv.Module, name string, typeID uint32) {
	size := mod.TypeSizeBytes(typeID)
	if size == 0 {
		size = 4
	}
	offset := alignUp(s.PushConstantSize, 4)
	s.PushConstants = append(s.PushConstants, PushConstant{
		Name: name, Type: classify(mod, typeID), Size: size, Offset: offset,
	})
	s.PushConstantSize = offset + size
}

func addUniformBlockMembers(s *Shader, mod *spirv.Module, structType uint32, scope Scope, set, binding uint32) {
	members := mod.StructMembers(structType)
	if members == nil {
		return
	}
	for i, memberType := range members {
		offset := uint32(0)
		if ops, ok := mod.MemberDecoration(structType, uint32(i), spirv.DecorationOffset); ok {
			offset = ops[0]
		}
		size := mod.TypeSizeBytes(memberType)
		u := Uniform{
			Scope: scope, Type: classify(mod, memberType),
			Offset: offset, Size: size, Set: set, Binding: binding,
		}
		if scope == ScopeGlobal {
			s.GlobalUboSize = maxu(s.GlobalUboSize, offset+size)
		} else {
			s.InstanceUboSize = maxu(s.InstanceUboSize, offset+size)
		}
		s.Uniforms[scope] = append(s.Uniforms[scope], u)
	}
}

func classify(mod *spirv.Module, typeID uint32) FieldType {
	switch mod.ResourceKind(typeID) {
	case "sampledImage", "sampler", "image":
		return FieldSampler
	}
	if mod.MatrixColumns(typeID) == 4 && mod.VectorComponentCount(typeID) == 4 {
		return FieldMatrix4
	}
	switch mod.VectorComponentCount(typeID) {
	case 2:
		return FieldVector2
	case 3:
		return FieldVector3
	case 4:
		return FieldVector4
	}
	if mod.IsFloat(typeID) {
		return FieldFloat32
	}
	if mod.ScalarWidthBits(typeID) > 0 {
		return FieldUint32
	}
	return FieldCustom
}

func alignUp(v, align uint32) uint32 {
	if align == 0 {
		return v
	}
	rem := v % align
	if rem == 0 {
		return v
	}
	return v + (align - rem)
}

func maxu(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
