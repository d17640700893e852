// Package accessor decodes typed numeric accessors from raw glTF buffer bytes.
//
// Decoded views alias the source buffer (no copy); the buffer must stay alive
// and unmodified for as long as any view derived from it is in use.
package accessor

import (
	"errors"
	"fmt"
)

// Accessor decode errors.
var (
	ErrMalformedAccessor = errors.New("malformed accessor")
	ErrUnknownTag        = errors.New("unknown component type tag")
)

// ComponentType identifies the numeric storage kind of an accessor component.
type ComponentType uint8

// Component type constants. The set is closed: every value has exactly one
// byte width and one wire tag.
const (
	Int8 ComponentType = iota
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Float32
	Float64
)

// componentInfo is the registry entry for one component type.
type componentInfo struct {
	size int
	tag  string
}

var componentTable = [...]componentInfo{
	Int8:    {1, "BYTE"},
	UInt8:   {1, "UNSIGNED_BYTE"},
	Int16:   {2, "SHORT"},
	UInt16:  {2, "UNSIGNED_SHORT"},
	Int32:   {4, "INT"},
	UInt32:  {4, "UNSIGNED_INT"},
	Float32: {4, "FLOAT"},
	Float64: {8, "DOUBLE"},
}

// Valid reports whether c is a member of the registry.
func (c ComponentType) Valid() bool {
	return int(c) < len(componentTable)
}

// ByteSize returns the width of one component in bytes.
func (c ComponentType) ByteSize() int {
	if !c.Valid() {
		return 0
	}
	return componentTable[c].size
}

// Tag returns the wire-format tag used in feature table JSON headers.
func (c ComponentType) Tag() string {
	if !c.Valid() {
		return ""
	}
	return componentTable[c].tag
}

// String returns the wire tag, or Unknown(n) for out-of-range values.
func (c ComponentType) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
	return componentTable[c].tag
}

// IsInteger reports whether c is one of the integer kinds, i.e. whether the
// normalized flag applies to it.
func (c ComponentType) IsInteger() bool {
	return c != Float32 && c != Float64 && c.Valid()
}

// IsUnsigned reports whether c is an unsigned integer kind.
func (c ComponentType) IsUnsigned() bool {
	return c == UInt8 || c == UInt16 || c == UInt32
}

// ComponentTypeFromTag resolves a wire tag back to its component type.
func ComponentTypeFromTag(tag string) (ComponentType, error) {
	for c, info := range componentTable {
		if info.tag == tag {
			return ComponentType(c), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
}

// ElementType identifies the per-element component layout of an accessor.
type ElementType uint8

// Element type constants.
const (
	Scalar ElementType = iota
	Vec2
	Vec3
	Vec4
	Mat2
	Mat3
	Mat4
)

var elementComponents = [...]int{
	Scalar: 1,
	Vec2:   2,
	Vec3:   3,
	Vec4:   4,
	Mat2:   4,
	Mat3:   9,
	Mat4:   16,
}

var elementNames = [...]string{
	Scalar: "SCALAR",
	Vec2:   "VEC2",
	Vec3:   "VEC3",
	Vec4:   "VEC4",
	Mat2:   "MAT2",
	Mat3:   "MAT3",
	Mat4:   "MAT4",
}

// Valid reports whether e is a member of the registry.
func (e ElementType) Valid() bool {
	return int(e) < len(elementComponents)
}

// Components returns the number of components in one element.
func (e ElementType) Components() int {
	if !e.Valid() {
		return 0
	}
	return elementComponents[e]
}

// String returns the glTF type name, or Unknown(n) for out-of-range values.
func (e ElementType) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Unknown(%d)", uint8(e))
	}
	return elementNames[e]
}
