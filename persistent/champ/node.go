package champ

/*
Remarks:
--------

- Nodes are never modified after they have become reachable from a Map. The only exception
  is the builder (see builder.go), which owns freshly created nodes through an edit token.

- Node operations return the receiver itself if nothing changed. Callers rely on this
  to skip copying.

- An entries node never overlaps its bitmaps: entryMap & nodeMap == 0.

*/

// Hasher is the capability a map needs for its keys.
// Hash has to be consistent with Equal: equal keys must have equal hashes.
type Hasher[K any] interface {
	Hash(K) uint32
	Equal(a, b K) bool
}

type nodeKind uint8

const (
	emptyKind nodeKind = iota
	entriesKind
	collisionKind
)

func (k nodeKind) String() string {
	switch k {
	case emptyKind:
		return "empty"
	case entriesKind:
		return "entries"
	case collisionKind:
		return "collision"
	}
	return "?"
}

type updateMode uint8

const (
	modeAdd updateMode = iota
	modeTryAdd
	modeAddOrUpdate
	modeSetItem
	modeTrySetItem
)

// replaces is true for modes which overwrite the value of an existing key.
func (mode updateMode) replaces() bool {
	return mode == modeAddOrUpdate || mode == modeSetItem || mode == modeTrySetItem
}

// inserts is true for modes which insert an absent key.
func (mode updateMode) inserts() bool {
	return mode == modeAdd || mode == modeTryAdd || mode == modeAddOrUpdate
}

type pair[K, V any] struct {
	key   K
	value V
}

// owner is an edit token. Nodes carrying a live token may be modified in place
// by the builder holding the token.
type owner struct {
	_ byte // must not be zero-sized: pointers to distinct tokens have to differ
}

// change is a single update travelling down the trie.
type change[K, V any] struct {
	mode updateMode
	item pair[K, V]
	keys Hasher[K]
	edit *owner // nil outside of the builder
}

// node is one of empty, *entries or *collision.
type node[K, V any] interface {
	kind() nodeKind
	get(key K, hash uint32, at cursor, keys Hasher[K]) (V, bool)
	update(c *change[K, V], hash uint32, at cursor) (node[K, V], int, error)
	remove(key K, hash uint32, at cursor, keys Hasher[K]) (node[K, V], int)
	each(yield func(K, V) bool) bool
}

// --- Empty -----------------------------------------------------------------

// empty is the node of a map without entries. It is zero-sized, thus all empty
// nodes of a type compare equal.
type empty[K, V any] struct{}

func (empty[K, V]) kind() nodeKind { return emptyKind }

func (empty[K, V]) get(K, uint32, cursor, Hasher[K]) (V, bool) {
	var zero V
	return zero, false
}

func (e empty[K, V]) update(c *change[K, V], hash uint32, at cursor) (node[K, V], int, error) {
	if !c.mode.inserts() {
		if c.mode == modeSetItem {
			return e, 0, keyNotFound(c.item.key)
		}
		return e, 0, nil
	}
	return singleton(c.item, hash, at, c.edit), 1, nil
}

func (e empty[K, V]) remove(K, uint32, cursor, Hasher[K]) (node[K, V], int) {
	return e, 0
}

func (empty[K, V]) each(func(K, V) bool) bool {
	return true
}

// singleton creates an entries node holding item as its only entry.
func singleton[K, V any](item pair[K, V], hash uint32, at cursor, edit *owner) *entries[K, V] {
	return &entries[K, V]{
		entryMap: at.bit(hash),
		items:    []pair[K, V]{item},
		edit:     edit,
	}
}

// --- Collision -------------------------------------------------------------

// collision holds pairs whose hashes cannot be told apart at the maximum depth of the trie.
type collision[K, V any] struct {
	hash  uint32
	items []pair[K, V]
	edit  *owner
}

func (n *collision[K, V]) kind() nodeKind { return collisionKind }

func (n *collision[K, V]) find(key K, keys Hasher[K]) int {
	for i, item := range n.items {
		if keys.Equal(item.key, key) {
			return i
		}
	}
	return -1
}

func (n *collision[K, V]) get(key K, _ uint32, _ cursor, keys Hasher[K]) (V, bool) {
	if i := n.find(key, keys); i >= 0 {
		return n.items[i].value, true
	}
	var zero V
	return zero, false
}

func (n *collision[K, V]) update(c *change[K, V], hash uint32, at cursor) (node[K, V], int, error) {
	owned := c.edit != nil && n.edit == c.edit
	if i := n.find(c.item.key, c.keys); i >= 0 {
		if !c.mode.replaces() {
			if c.mode == modeAdd {
				return n, 0, keyExists(c.item.key)
			}
			return n, 0, nil
		}
		items := replaceAt(n.items, i, c.item, owned)
		if owned {
			n.items = items
			return n, 0, nil
		}
		return &collision[K, V]{hash: n.hash, items: items, edit: c.edit}, 0, nil
	}
	if !c.mode.inserts() {
		if c.mode == modeSetItem {
			return n, 0, keyNotFound(c.item.key)
		}
		return n, 0, nil
	}
	items := insertAt(n.items, len(n.items), c.item, owned)
	if owned {
		n.items = items
		return n, 1, nil
	}
	return &collision[K, V]{hash: n.hash, items: items, edit: c.edit}, 1, nil
}

func (n *collision[K, V]) remove(key K, hash uint32, at cursor, keys Hasher[K]) (node[K, V], int) {
	i := n.find(key, keys)
	if i < 0 {
		return n, 0
	}
	switch len(n.items) {
	case 1:
		return empty[K, V]{}, -1
	case 2:
		// a bucket of one is not a collision any more
		rest := n.items[1-i]
		tracer().Debugf("collision bucket @ level %d collapses to single entry", at.level())
		return singleton(rest, keys.Hash(rest.key), at, nil), -1
	}
	return &collision[K, V]{hash: n.hash, items: removeAt(n.items, i, false)}, -1
}

func (n *collision[K, V]) each(yield func(K, V) bool) bool {
	for _, item := range n.items {
		if !yield(item.key, item.value) {
			return false
		}
	}
	return true
}
