package instance

import "github.com/qmuntal/gltf"

// Prune removes from every scene each node that is neither the kept node nor
// an ancestor of it. Child lists are visited post-order and rebuilt rather
// than mutated index-by-index. Pruning an already-pruned tree is a no-op.
func Prune(doc *gltf.Document, keep int) {
	for _, scene := range doc.Scenes {
		scene.Nodes = pruneIDs(doc, scene.Nodes, uint32(keep))
	}
}

func pruneIDs(doc *gltf.Document, ids []uint32, keep uint32) []uint32 {
	var kept []uint32
	for _, id := range ids {
		if int(id) >= len(doc.Nodes) {
			continue
		}
		node := doc.Nodes[id]
		node.Children = pruneIDs(doc, node.Children, keep)

		// A node survives iff it is the kept node or still has a
		// surviving descendant.
		if id == keep || len(node.Children) > 0 {
			kept = append(kept, id)
		}
	}
	return kept
}
