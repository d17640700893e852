package instance

import (
	"errors"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/kereth/tilesmith/pkg/gpuinstancing"
)

func instancedNode() *gltf.Node {
	return &gltf.Node{Extensions: gltf.Extensions{
		gpuinstancing.ExtensionName: &gpuinstancing.GPUInstancing{
			Attributes: map[string]int{gpuinstancing.AttrTranslation: 0},
		},
	}}
}

func TestValidate(t *testing.T) {
	valid := &gltf.Document{
		Buffers: []*gltf.Buffer{{}},
		Scenes:  []*gltf.Scene{{}},
		Nodes:   []*gltf.Node{instancedNode()},
	}
	if err := Validate(valid); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}

	tests := []struct {
		name string
		doc  *gltf.Document
	}{
		{
			"no buffers",
			&gltf.Document{Scenes: []*gltf.Scene{{}}},
		},
		{
			"multiple buffers",
			&gltf.Document{Buffers: []*gltf.Buffer{{}, {}}, Scenes: []*gltf.Scene{{}}},
		},
		{
			"missing scene",
			&gltf.Document{Buffers: []*gltf.Buffer{{}}},
		},
		{
			"multiple instanced nodes",
			&gltf.Document{
				Buffers: []*gltf.Buffer{{}},
				Scenes:  []*gltf.Scene{{}},
				Nodes:   []*gltf.Node{instancedNode(), instancedNode()},
			},
		},
	}

	for _, tc := range tests {
		if err := Validate(tc.doc); !errors.Is(err, ErrUnsupportedAsset) {
			t.Errorf("%s: expected ErrUnsupportedAsset, got %v", tc.name, err)
		}
	}
}

func TestFindInstanced(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{{}, instancedNode(), {}},
	}

	idx, ext, err := FindInstanced(doc)
	if err != nil {
		t.Fatalf("FindInstanced failed: %v", err)
	}
	if idx != 1 || ext == nil {
		t.Errorf("FindInstanced = %d,%v", idx, ext)
	}

	empty := &gltf.Document{Nodes: []*gltf.Node{{}}}
	if _, _, err := FindInstanced(empty); !errors.Is(err, ErrUnsupportedAsset) {
		t.Errorf("expected ErrUnsupportedAsset, got %v", err)
	}
}
