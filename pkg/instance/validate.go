// Package instance extracts per-instance rendering attributes from glTF
// nodes carrying the GPU instancing extension and prepares them for feature
// table packing.
package instance

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/kereth/tilesmith/pkg/gpuinstancing"
)

// ErrUnsupportedAsset marks assets outside the pipeline's capabilities, as
// opposed to corrupt input. Callers should skip the asset, not retry.
var ErrUnsupportedAsset = errors.New("unsupported asset")

// Validate checks the preconditions the extraction pipeline relies on.
// It must run before any extraction begins.
func Validate(doc *gltf.Document) error {
	if len(doc.Buffers) != 1 {
		return fmt.Errorf("%w: expected exactly one buffer, found %d", ErrUnsupportedAsset, len(doc.Buffers))
	}
	if len(doc.Scenes) == 0 {
		return fmt.Errorf("%w: document has no scene", ErrUnsupportedAsset)
	}

	instanced := 0
	for _, node := range doc.Nodes {
		if _, ok := gpuinstancing.FromNode(node); ok {
			instanced++
		}
	}
	if instanced > 1 {
		return fmt.Errorf("%w: %d instanced nodes (one feature table per asset)", ErrUnsupportedAsset, instanced)
	}

	return nil
}

// FindInstanced locates the node carrying the instancing extension.
func FindInstanced(doc *gltf.Document) (int, *gpuinstancing.GPUInstancing, error) {
	for i, node := range doc.Nodes {
		if ext, ok := gpuinstancing.FromNode(node); ok {
			return i, ext, nil
		}
	}
	return 0, nil, fmt.Errorf("%w: no instanced node found", ErrUnsupportedAsset)
}
