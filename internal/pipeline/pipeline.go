// Package pipeline orchestrates the asset transformation: validate the
// document, extract per-instance attributes, pack the feature table, prune
// the scene graph, and assemble the tile container.
package pipeline

import (
	"bytes"
	"fmt"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/kereth/tilesmith/pkg/featuretable"
	"github.com/kereth/tilesmith/pkg/instance"
	"github.com/kereth/tilesmith/pkg/tile"
)

// Builder runs the extraction pipeline over parsed glTF documents.
type Builder struct {
	log *zap.Logger
}

// New returns a Builder logging to log. A nil logger disables logging.
func New(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log}
}

// Build transforms doc into a packed instanced tile. The document is
// modified in place: its scene graph is pruned down to the instanced node.
// Failures are all-or-nothing; no partial tile is ever returned.
func (b *Builder) Build(doc *gltf.Document) ([]byte, error) {
	if err := instance.Validate(doc); err != nil {
		return nil, err
	}

	nodeIdx, ext, err := instance.FindInstanced(doc)
	if err != nil {
		return nil, err
	}
	b.log.Debug("located instanced node",
		zap.Int("node", nodeIdx),
		zap.Int("attributes", len(ext.Attributes)))

	props, err := instance.Extract(doc, ext)
	if err != nil {
		return nil, fmt.Errorf("extracting instance attributes: %w", err)
	}

	table, err := featuretable.Pack(props)
	if err != nil {
		return nil, fmt.Errorf("packing feature table: %w", err)
	}

	instance.Prune(doc, nodeIdx)

	glb, err := encodeGLB(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding pruned glTF: %w", err)
	}

	data, err := tile.Encode(table, glb)
	if err != nil {
		return nil, err
	}

	b.log.Info("packed tile",
		zap.Int("properties", len(props)),
		zap.Int("feature_table_bytes", table.Len()),
		zap.Int("glb_bytes", len(glb)),
		zap.Int("tile_bytes", len(data)))
	return data, nil
}

func encodeGLB(doc *gltf.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
