package instance

import (
	"testing"

	"github.com/qmuntal/gltf"
)

// pruneDoc builds:
//
//	0 (root) ─ 1 ─ 3 (kept)
//	         └ 2 ─ 4
//	5 (root)
func pruneDoc() *gltf.Document {
	return &gltf.Document{
		Nodes: []*gltf.Node{
			{Children: []uint32{1, 2}},
			{Children: []uint32{3}},
			{Children: []uint32{4}},
			{},
			{},
			{},
		},
		Scenes: []*gltf.Scene{{Nodes: []uint32{0, 5}}},
	}
}

func TestPrune_KeepsAncestorChain(t *testing.T) {
	doc := pruneDoc()
	Prune(doc, 3)

	scene := doc.Scenes[0]
	if len(scene.Nodes) != 1 || scene.Nodes[0] != 0 {
		t.Fatalf("scene roots = %v, expected [0]", scene.Nodes)
	}
	if got := doc.Nodes[0].Children; len(got) != 1 || got[0] != 1 {
		t.Errorf("node 0 children = %v, expected [1]", got)
	}
	if got := doc.Nodes[1].Children; len(got) != 1 || got[0] != 3 {
		t.Errorf("node 1 children = %v, expected [3]", got)
	}
	if got := doc.Nodes[2].Children; len(got) != 0 {
		t.Errorf("node 2 children = %v, expected pruned subtree", got)
	}
}

func TestPrune_KeptNodeIsRoot(t *testing.T) {
	doc := pruneDoc()
	Prune(doc, 5)

	scene := doc.Scenes[0]
	if len(scene.Nodes) != 1 || scene.Nodes[0] != 5 {
		t.Errorf("scene roots = %v, expected [5]", scene.Nodes)
	}
}

func TestPrune_Idempotent(t *testing.T) {
	doc := pruneDoc()
	Prune(doc, 3)

	first := append([]uint32(nil), doc.Scenes[0].Nodes...)
	Prune(doc, 3)

	second := doc.Scenes[0].Nodes
	if len(first) != len(second) {
		t.Fatalf("second prune changed root count: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("second prune changed roots: %v vs %v", first, second)
		}
	}
	if got := doc.Nodes[0].Children; len(got) != 1 || got[0] != 1 {
		t.Errorf("node 0 children after reprune = %v", got)
	}
}

func TestPrune_AbsentChildListsTreatedAsEmpty(t *testing.T) {
	doc := &gltf.Document{
		Nodes:  []*gltf.Node{{}, {}},
		Scenes: []*gltf.Scene{{Nodes: []uint32{0, 1}}},
	}
	Prune(doc, 1)

	if got := doc.Scenes[0].Nodes; len(got) != 1 || got[0] != 1 {
		t.Errorf("scene roots = %v, expected [1]", got)
	}
}
