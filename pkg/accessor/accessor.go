package accessor

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Accessor describes a typed view into a binary buffer.
type Accessor struct {
	ByteOffset    int
	ComponentType ComponentType
	ElementType   ElementType
	Count         int
}

// ByteLen returns the total byte span of the accessor's data.
func (a Accessor) ByteLen() int {
	return a.Count * a.ElementType.Components() * a.ComponentType.ByteSize()
}

// TypedView is a read-only typed view over a byte range of a buffer.
// It aliases the source bytes; it never copies.
type TypedView struct {
	data  []byte
	comp  ComponentType
	count int // total component count
}

// Decode returns a typed view over buf described by acc.
// The view aliases buf starting at acc.ByteOffset.
func Decode(buf []byte, acc Accessor) (*TypedView, error) {
	if !acc.ComponentType.Valid() {
		return nil, fmt.Errorf("%w: unrecognized component type %d", ErrMalformedAccessor, acc.ComponentType)
	}
	if !acc.ElementType.Valid() {
		return nil, fmt.Errorf("%w: unrecognized element type %d", ErrMalformedAccessor, acc.ElementType)
	}
	if acc.ByteOffset < 0 || acc.Count < 0 {
		return nil, fmt.Errorf("%w: negative offset or count", ErrMalformedAccessor)
	}

	byteLen := acc.ByteLen()
	if acc.ByteOffset+byteLen > len(buf) {
		return nil, fmt.Errorf("%w: span [%d..%d) exceeds buffer length %d",
			ErrMalformedAccessor, acc.ByteOffset, acc.ByteOffset+byteLen, len(buf))
	}

	return &TypedView{
		data:  buf[acc.ByteOffset : acc.ByteOffset+byteLen],
		comp:  acc.ComponentType,
		count: acc.Count * acc.ElementType.Components(),
	}, nil
}

// Len returns the total number of components in the view.
func (v *TypedView) Len() int {
	return v.count
}

// ComponentType returns the storage kind of the view's components.
func (v *TypedView) ComponentType() ComponentType {
	return v.comp
}

// Bytes returns the raw little-endian payload. The slice aliases the source
// buffer; callers must not mutate it.
func (v *TypedView) Bytes() []byte {
	return v.data
}

// Uint reads component i as an unsigned integer, widening as needed.
// Only meaningful for the unsigned integer kinds.
func (v *TypedView) Uint(i int) uint64 {
	off := i * v.comp.ByteSize()
	switch v.comp {
	case UInt8:
		return uint64(v.data[off])
	case UInt16:
		return uint64(binary.LittleEndian.Uint16(v.data[off:]))
	case UInt32:
		return uint64(binary.LittleEndian.Uint32(v.data[off:]))
	default:
		return uint64(v.Int(i))
	}
}

// Int reads component i as a signed integer, widening as needed.
func (v *TypedView) Int(i int) int64 {
	off := i * v.comp.ByteSize()
	switch v.comp {
	case Int8:
		return int64(int8(v.data[off]))
	case Int16:
		return int64(int16(binary.LittleEndian.Uint16(v.data[off:])))
	case Int32:
		return int64(int32(binary.LittleEndian.Uint32(v.data[off:])))
	case UInt8, UInt16, UInt32:
		return int64(v.Uint(i))
	default:
		return int64(v.Float(i))
	}
}

// Float reads component i as a float, widening integers without normalization.
func (v *TypedView) Float(i int) float64 {
	off := i * v.comp.ByteSize()
	switch v.comp {
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(v.data[off:])))
	case Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(v.data[off:]))
	case UInt8, UInt16, UInt32:
		return float64(v.Uint(i))
	default:
		return float64(v.Int(i))
	}
}

// FloatNormalized reads component i applying the component type's
// normalization rule: signed integers map to [-1,1], unsigned to [0,1],
// floats are returned as-is.
func (v *TypedView) FloatNormalized(i int) float64 {
	switch v.comp {
	case Int8:
		return math.Max(float64(v.Int(i))/127, -1)
	case Int16:
		return math.Max(float64(v.Int(i))/32767, -1)
	case Int32:
		return math.Max(float64(v.Int(i))/2147483647, -1)
	case UInt8:
		return float64(v.Uint(i)) / 255
	case UInt16:
		return float64(v.Uint(i)) / 65535
	case UInt32:
		return float64(v.Uint(i)) / 4294967295
	default:
		return v.Float(i)
	}
}
