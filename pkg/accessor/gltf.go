package accessor

import (
	"fmt"

	"github.com/qmuntal/gltf"
)

// FromGLTFComponent maps a glTF component type to the registry.
// glTF core has no INT or DOUBLE storage, so those never appear here.
func FromGLTFComponent(c gltf.ComponentType) (ComponentType, error) {
	switch c {
	case gltf.ComponentByte:
		return Int8, nil
	case gltf.ComponentUbyte:
		return UInt8, nil
	case gltf.ComponentShort:
		return Int16, nil
	case gltf.ComponentUshort:
		return UInt16, nil
	case gltf.ComponentUint:
		return UInt32, nil
	case gltf.ComponentFloat:
		return Float32, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized glTF component type %d", ErrMalformedAccessor, c)
	}
}

// FromGLTFType maps a glTF accessor type to the registry.
func FromGLTFType(t gltf.AccessorType) (ElementType, error) {
	switch t {
	case gltf.AccessorScalar:
		return Scalar, nil
	case gltf.AccessorVec2:
		return Vec2, nil
	case gltf.AccessorVec3:
		return Vec3, nil
	case gltf.AccessorVec4:
		return Vec4, nil
	case gltf.AccessorMat2:
		return Mat2, nil
	case gltf.AccessorMat3:
		return Mat3, nil
	case gltf.AccessorMat4:
		return Mat4, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized glTF accessor type %d", ErrMalformedAccessor, t)
	}
}

// DecodeIndex decodes accessor index from the document's buffer data.
// The returned view aliases the buffer bytes owned by doc.
func DecodeIndex(doc *gltf.Document, index int) (*TypedView, error) {
	if index < 0 || index >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor index %d out of range", ErrMalformedAccessor, index)
	}
	src := doc.Accessors[index]

	comp, err := FromGLTFComponent(src.ComponentType)
	if err != nil {
		return nil, err
	}
	elem, err := FromGLTFType(src.Type)
	if err != nil {
		return nil, err
	}

	if src.BufferView == nil {
		return nil, fmt.Errorf("%w: accessor %d has no buffer view", ErrMalformedAccessor, index)
	}
	if int(*src.BufferView) >= len(doc.BufferViews) {
		return nil, fmt.Errorf("%w: accessor %d references missing buffer view %d",
			ErrMalformedAccessor, index, *src.BufferView)
	}
	view := doc.BufferViews[*src.BufferView]

	if int(view.Buffer) >= len(doc.Buffers) {
		return nil, fmt.Errorf("%w: buffer view references missing buffer %d",
			ErrMalformedAccessor, view.Buffer)
	}
	data := doc.Buffers[view.Buffer].Data

	acc := Accessor{
		ByteOffset:    int(src.ByteOffset),
		ComponentType: comp,
		ElementType:   elem,
		Count:         int(src.Count),
	}
	viewOffset, viewLength := int(view.ByteOffset), int(view.ByteLength)

	// Interleaved buffer views cannot be exposed as a contiguous view.
	if tight := elem.Components() * comp.ByteSize(); view.ByteStride != 0 && int(view.ByteStride) != tight {
		return nil, fmt.Errorf("%w: accessor %d uses byte stride %d (tight packing required)",
			ErrMalformedAccessor, index, view.ByteStride)
	}

	if viewOffset+viewLength > len(data) {
		return nil, fmt.Errorf("%w: buffer view span [%d..%d) exceeds buffer length %d",
			ErrMalformedAccessor, viewOffset, viewOffset+viewLength, len(data))
	}
	if acc.ByteOffset+acc.ByteLen() > viewLength {
		return nil, fmt.Errorf("%w: accessor %d span exceeds buffer view length %d",
			ErrMalformedAccessor, index, viewLength)
	}

	return Decode(data[viewOffset:viewOffset+viewLength], acc)
}
