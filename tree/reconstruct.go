package tree

// Reconstruct builds a simplified copy of subtree root in a new arena.
// Only non-terminal nodes with type names listed in keep are copied, as Reconstructed nodes
// holding their text computed with replacements (see Node.Text).
// Children of other non-terminals are spliced into the nearest kept ancestor,
// terminal and failure nodes are dropped.
// Returns top-level copied nodes, they are linked as siblings and have no parent.
// Source tree is not modified.
func Reconstruct(root Node, keep []string, replacements map[string]string) []Node {
	if !root.IsValid() {
		return nil
	}

	keepSet := make(map[string]bool, len(keep))
	for _, k := range keep {
		keepSet[k] = true
	}

	src := root.arena
	dst := NewArena(src.src)
	var copyNode func(id ID) []ID
	copyNode = func(id ID) []ID {
		r := &src.nodes[id]
		if r.kind == Terminal || r.kind == Failure {
			return nil
		}

		var children []ID
		for _, c := range r.children {
			children = append(children, copyNode(c)...)
		}

		if !keepSet[r.typeName] {
			return children
		}

		text := r.text
		if r.kind == NonTerm {
			text = src.Node(id).Text(replacements)
		}
		nid := dst.newReconstructed(r.typeName, r.start, r.end, r.num, text, children)
		if len(r.attrs) > 0 {
			nr := &dst.nodes[nid]
			nr.attrs = make(map[string]string, len(r.attrs))
			for k, v := range r.attrs {
				nr.attrs[k] = v
			}
		}
		return []ID{nid}
	}

	tops := copyNode(root.id)
	res := make([]Node, len(tops))
	for i, id := range tops {
		dst.Complete(id)
		r := &dst.nodes[id]
		if i > 0 {
			r.prev = tops[i-1]
		}
		if i < len(tops)-1 {
			r.next = tops[i+1]
		}
		res[i] = dst.Node(id)
	}
	return res
}
