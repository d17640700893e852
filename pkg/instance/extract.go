package instance

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/kereth/tilesmith/pkg/accessor"
	"github.com/kereth/tilesmith/pkg/featuretable"
	"github.com/kereth/tilesmith/pkg/gpuinstancing"
	vecmath "github.com/kereth/tilesmith/pkg/math"
)

// Feature table property names for the instancing semantics.
const (
	PropPosition    = "POSITION"
	PropNormalUp    = "NORMAL_UP"
	PropNormalRight = "NORMAL_RIGHT"
	PropScale       = "SCALE_NON_UNIFORM"
	PropBatchID     = "BATCH_ID"
)

// Extract decodes the instancing attributes bound by ext into feature table
// properties, in the order POSITION, NORMAL_UP, NORMAL_RIGHT,
// SCALE_NON_UNIFORM, BATCH_ID. Absent attributes are omitted. Any decode
// failure aborts the whole node; no partial result is returned.
func Extract(doc *gltf.Document, ext *gpuinstancing.GPUInstancing) ([]featuretable.Property, error) {
	var props []featuretable.Property

	if idx, ok := ext.Accessor(gpuinstancing.AttrTranslation); ok {
		view, err := accessor.DecodeIndex(doc, idx)
		if err != nil {
			return nil, fmt.Errorf("decoding TRANSLATION: %w", err)
		}
		props = append(props, featuretable.New(PropPosition, view.ComponentType(), view.Bytes()))
	}

	if idx, ok := ext.Accessor(gpuinstancing.AttrRotation); ok {
		view, err := accessor.DecodeIndex(doc, idx)
		if err != nil {
			return nil, fmt.Errorf("decoding ROTATION: %w", err)
		}
		up, right, err := deriveNormals(view)
		if err != nil {
			return nil, err
		}
		props = append(props,
			featuretable.New(PropNormalUp, accessor.Float32, up),
			featuretable.New(PropNormalRight, accessor.Float32, right))
	}

	if idx, ok := ext.Accessor(gpuinstancing.AttrScale); ok {
		view, err := accessor.DecodeIndex(doc, idx)
		if err != nil {
			return nil, fmt.Errorf("decoding SCALE: %w", err)
		}
		props = append(props, featuretable.New(PropScale, view.ComponentType(), view.Bytes()))
	}

	if idx, ok := ext.BatchID(); ok {
		view, err := accessor.DecodeIndex(doc, idx)
		if err != nil {
			return nil, fmt.Errorf("decoding batch id: %w", err)
		}
		props = append(props, batchIDProperty(view))
	}

	return props, nil
}

// deriveNormals computes the per-instance up and right basis vectors from a
// quaternion accessor. Quaternions stored as normalized integers are rescaled
// to [-1,1] before the matrix expansion; floats are used as-is. Both outputs
// are float32 triples regardless of the source storage type.
func deriveNormals(view *accessor.TypedView) (up, right []byte, err error) {
	if view.Len()%4 != 0 {
		return nil, nil, fmt.Errorf("%w: rotation accessor with %d components (quaternions need 4)",
			accessor.ErrMalformedAccessor, view.Len())
	}

	normalized := view.ComponentType().IsInteger()
	component := func(i int) float32 {
		if normalized {
			return float32(view.FloatNormalized(i))
		}
		return float32(view.Float(i))
	}

	count := view.Len() / 4
	up = make([]byte, 0, count*12)
	right = make([]byte, 0, count*12)

	for i := 0; i < count; i++ {
		q := vecmath.Quat{
			X: component(i * 4),
			Y: component(i*4 + 1),
			Z: component(i*4 + 2),
			W: component(i*4 + 3),
		}
		up = appendVec3(up, q.Up())
		right = appendVec3(right, q.Right())
	}
	return up, right, nil
}

// batchIDProperty passes unsigned identifier storage through unchanged and
// widens everything else into a fresh uint32 array, so the packer always
// sees an unsigned integer buffer.
func batchIDProperty(view *accessor.TypedView) featuretable.Property {
	if view.ComponentType().IsUnsigned() {
		return featuretable.NewTagged(PropBatchID, view.ComponentType(), view.Bytes())
	}

	data := make([]byte, view.Len()*4)
	for i := 0; i < view.Len(); i++ {
		var id uint32
		if view.ComponentType().IsInteger() {
			id = uint32(view.Int(i))
		} else {
			id = uint32(view.Float(i))
		}
		binary.LittleEndian.PutUint32(data[i*4:], id)
	}
	return featuretable.NewTagged(PropBatchID, accessor.UInt32, data)
}

func appendVec3(dst []byte, v vecmath.Vec3) []byte {
	var b [12]byte
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.Z))
	return append(dst, b[:]...)
}
