// Package gpuinstancing implements decoding of the EXT_mesh_gpu_instancing
// glTF extension, which maps per-instance attribute semantics to accessors.
package gpuinstancing

import (
	"encoding/json"

	"github.com/qmuntal/gltf"
)

// ExtensionName is the key of the extension in a node's extensions object.
const ExtensionName = "EXT_mesh_gpu_instancing"

// Attribute semantics defined by the extension. Application-specific
// semantics are prefixed with an underscore; both common batch-id spellings
// are supported.
const (
	AttrTranslation = "TRANSLATION"
	AttrRotation    = "ROTATION"
	AttrScale       = "SCALE"
	AttrBatchID     = "_BATCHID"
	AttrFeatureID   = "_FEATURE_ID_0"
)

func init() {
	gltf.RegisterExtension(ExtensionName, Unmarshal)
}

// GPUInstancing holds the extension's attribute-to-accessor-index mapping.
type GPUInstancing struct {
	Attributes map[string]int `json:"attributes"`
}

// Unmarshal decodes the extension JSON. Registered with qmuntal/gltf so the
// decoder produces a typed value instead of a raw message.
func Unmarshal(data []byte) (interface{}, error) {
	ext := new(GPUInstancing)
	if err := json.Unmarshal(data, ext); err != nil {
		return nil, err
	}
	return ext, nil
}

// Accessor returns the accessor index bound to the given semantic.
func (g *GPUInstancing) Accessor(semantic string) (int, bool) {
	idx, ok := g.Attributes[semantic]
	return idx, ok
}

// BatchID returns the batch identifier accessor index, probing the legacy
// _BATCHID spelling before _FEATURE_ID_0.
func (g *GPUInstancing) BatchID() (int, bool) {
	if idx, ok := g.Attributes[AttrBatchID]; ok {
		return idx, true
	}
	idx, ok := g.Attributes[AttrFeatureID]
	return idx, ok
}

// FromNode extracts the decoded extension from a node, handling both the
// registered typed form and a raw message from documents assembled in memory.
func FromNode(node *gltf.Node) (*GPUInstancing, bool) {
	raw, ok := node.Extensions[ExtensionName]
	if !ok {
		return nil, false
	}
	switch ext := raw.(type) {
	case *GPUInstancing:
		return ext, true
	case json.RawMessage:
		decoded, err := Unmarshal(ext)
		if err != nil {
			return nil, false
		}
		return decoded.(*GPUInstancing), true
	default:
		return nil, false
	}
}
