package champ

import "slices"

// entries is the workhorse node of the trie. It stores pairs directly (entryMap/items) and
// sub-nodes (nodeMap/nodes). Both arrays are compacted: the position of a bit's item is
// the number of bits set below it.
type entries[K, V any] struct {
	entryMap uint32
	nodeMap  uint32
	items    []pair[K, V]
	nodes    []node[K, V]
	edit     *owner
}

func (n *entries[K, V]) kind() nodeKind { return entriesKind }

func (n *entries[K, V]) owned(edit *owner) bool {
	return edit != nil && n.edit == edit
}

// with returns a node with the given content. If the builder owns n, n is
// modified in place.
func (n *entries[K, V]) with(edit *owner, entryMap, nodeMap uint32, items []pair[K, V],
	nodes []node[K, V]) *entries[K, V] {
	//
	if n.owned(edit) {
		n.entryMap, n.nodeMap, n.items, n.nodes = entryMap, nodeMap, items, nodes
		return n
	}
	if edit != nil { // the new node will be edited in place; it must not share arrays with n
		items, nodes = slices.Clone(items), slices.Clone(nodes)
	}
	return &entries[K, V]{
		entryMap: entryMap,
		nodeMap:  nodeMap,
		items:    items,
		nodes:    nodes,
		edit:     edit,
	}
}

func (n *entries[K, V]) get(key K, hash uint32, at cursor, keys Hasher[K]) (V, bool) {
	bit := at.bit(hash)
	if n.entryMap&bit != 0 {
		item := n.items[index(n.entryMap, bit)]
		if keys.Equal(item.key, key) {
			return item.value, true
		}
	} else if n.nodeMap&bit != 0 {
		return n.nodes[index(n.nodeMap, bit)].get(key, hash, at.next(), keys)
	}
	var zero V
	return zero, false
}

func (n *entries[K, V]) update(c *change[K, V], hash uint32, at cursor) (node[K, V], int, error) {
	bit := at.bit(hash)
	owned := n.owned(c.edit)
	switch {
	case n.entryMap&bit != 0: // slot holds an entry
		i := index(n.entryMap, bit)
		current := n.items[i]
		if c.keys.Equal(current.key, c.item.key) {
			if !c.mode.replaces() {
				if c.mode == modeAdd {
					return n, 0, keyExists(c.item.key)
				}
				return n, 0, nil
			}
			items := replaceAt(n.items, i, c.item, owned)
			return n.with(c.edit, n.entryMap, n.nodeMap, items, n.nodes), 0, nil
		}
		if !c.mode.inserts() {
			if c.mode == modeSetItem {
				return n, 0, keyNotFound(c.item.key)
			}
			return n, 0, nil
		}
		// different key on the same branch ⇒ push both down into a new sub-node
		sub := merge(current, c.item, c.keys.Hash(current.key), hash, at, c.edit)
		items := removeAt(n.items, i, owned)
		nodes := insertAt(n.nodes, index(n.nodeMap, bit), sub, owned)
		return n.with(c.edit, n.entryMap&^bit, n.nodeMap|bit, items, nodes), 1, nil
	case n.nodeMap&bit != 0: // slot holds a sub-node
		i := index(n.nodeMap, bit)
		child := n.nodes[i]
		updated, delta, err := child.update(c, hash, at.next())
		if err != nil || updated == child {
			return n, delta, err
		}
		nodes := replaceAt(n.nodes, i, updated, owned)
		return n.with(c.edit, n.entryMap, n.nodeMap, n.items, nodes), delta, nil
	}
	if !c.mode.inserts() {
		if c.mode == modeSetItem {
			return n, 0, keyNotFound(c.item.key)
		}
		return n, 0, nil
	}
	items := insertAt(n.items, index(n.entryMap, bit), c.item, owned)
	return n.with(c.edit, n.entryMap|bit, n.nodeMap, items, n.nodes), 1, nil
}

func (n *entries[K, V]) remove(key K, hash uint32, at cursor, keys Hasher[K]) (node[K, V], int) {
	bit := at.bit(hash)
	switch {
	case n.entryMap&bit != 0:
		i := index(n.entryMap, bit)
		if !keys.Equal(n.items[i].key, key) {
			return n, 0
		}
		if len(n.items) == 1 && len(n.nodes) == 0 {
			return empty[K, V]{}, -1
		}
		items := removeAt(n.items, i, false)
		return n.with(nil, n.entryMap&^bit, n.nodeMap, items, n.nodes), -1
	case n.nodeMap&bit != 0:
		i := index(n.nodeMap, bit)
		child := n.nodes[i]
		updated, delta := child.remove(key, hash, at.next(), keys)
		if updated == child {
			return n, 0
		}
		switch sub := updated.(type) {
		case *entries[K, V]:
			if len(sub.items) == 1 && len(sub.nodes) == 0 {
				// Path compression: pull the single remaining leaf up into this node.
				// If this node is a wrapper for the child only, it becomes a single-entry
				// node itself, which in turn will be absorbed by its parent. The entry
				// goes to this node's branch bit, not to the bit the child used for it.
				tracer().Debugf("path compression @ level %d", at.level())
				items := insertAt(n.items, index(n.entryMap, bit), sub.items[0], false)
				nodes := removeAt(n.nodes, i, false)
				return n.with(nil, n.entryMap|bit, n.nodeMap&^bit, items, nodes), delta
			}
		case empty[K, V]:
			if len(n.items) == 0 && len(n.nodes) == 1 {
				return updated, delta
			}
			nodes := removeAt(n.nodes, i, false)
			return n.with(nil, n.entryMap, n.nodeMap&^bit, n.items, nodes), delta
		}
		nodes := replaceAt(n.nodes, i, updated, false)
		return n.with(nil, n.entryMap, n.nodeMap, n.items, nodes), delta
	}
	return n, 0
}

func (n *entries[K, V]) each(yield func(K, V) bool) bool {
	for _, item := range n.items {
		if !yield(item.key, item.value) {
			return false
		}
	}
	for _, child := range n.nodes {
		if !child.each(yield) {
			return false
		}
	}
	return true
}

// merge creates a sub-node for two pairs of different keys which share a branch bit at
// level at. The new node lives one level below at. If the hashes keep colliding until the
// slices of the hash are used up, the pairs end up in a collision bucket.
func merge[K, V any](a, b pair[K, V], ha, hb uint32, at cursor, edit *owner) node[K, V] {
	if at.exhausted() {
		tracer().Debugf("merge @ level %d: hash collision, creating bucket", at.level())
		return &collision[K, V]{
			hash:  ha,
			items: []pair[K, V]{a, b},
			edit:  edit,
		}
	}
	next := at.next()
	ia, ib := next.index(ha), next.index(hb)
	if ia == ib { // still sharing a branch ⇒ wrap and go one level deeper
		return &entries[K, V]{
			nodeMap: bitFor(ia),
			nodes:   []node[K, V]{merge(a, b, ha, hb, next, edit)},
			edit:    edit,
		}
	}
	items := []pair[K, V]{a, b}
	if ib < ia {
		items[0], items[1] = b, a
	}
	return &entries[K, V]{
		entryMap: bitFor(ia) | bitFor(ib),
		items:    items,
		edit:     edit,
	}
}
