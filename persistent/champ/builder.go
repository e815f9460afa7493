package champ

// builder constructs a map from a sequence of pairs without copying nodes on every
// insertion. Nodes created by the builder carry its edit token and are modified in
// place by subsequent insertions. Once frozen, the token is dropped and the nodes
// become immutable like any other node.
//
// Only insertions which cannot fail are supported: a builder never has to roll back.
type builder[K, V any] struct {
	root  node[K, V]
	count int
	keys  Hasher[K]
	mode  updateMode
	edit  *owner
}

func newBuilder[K, V any](keys Hasher[K], overwrite bool) *builder[K, V] {
	assertThat(keys != nil, "builder needs a key hasher")
	mode := modeTryAdd
	if overwrite {
		mode = modeAddOrUpdate
	}
	return &builder[K, V]{
		root: empty[K, V]{},
		keys: keys,
		mode: mode,
		edit: &owner{},
	}
}

func (b *builder[K, V]) put(key K, value V) {
	assertThat(b.edit != nil, "builder used after freeze")
	c := change[K, V]{
		mode: b.mode,
		item: pair[K, V]{key: key, value: value},
		keys: b.keys,
		edit: b.edit,
	}
	root, delta, err := b.root.update(&c, b.keys.Hash(key), 0)
	assertThat(err == nil, "builder insertion failed: %v", err)
	b.root = root
	b.count += delta
}

// freeze hands the trie over to a map. The builder is unusable afterwards.
func (b *builder[K, V]) freeze(p props[V]) Map[K, V] {
	assertThat(b.edit != nil, "builder frozen twice")
	tracer().Debugf("builder freezes trie with %d entries", b.count)
	m := newMap(b.root, b.count, b.keys, p)
	b.edit, b.root = nil, nil
	return m
}
