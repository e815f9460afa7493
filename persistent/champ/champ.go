package champ

import (
	"fmt"
	"iter"
	"strings"

	"github.com/npillmayer/champ/maybe"
	"github.com/npillmayer/champ/result"
	"go.uber.org/atomic"
)

// Map is an immutable persistent hash map. Every modifying operation returns a new
// incarnation of the map and leaves the receiver untouched. Maps are cheap to copy and
// safe for concurrent use.
//
// The zero value of Map is an empty map without a key hasher. It may be read from,
// but inserting into it panics. Use Immutable to create usable maps.
type Map[K, V any] struct {
	root  node[K, V]
	count int
	keys  Hasher[K]
	props props[V]
	hash  *atomic.Uint32 // memoized HashCode, 0 = not yet computed
}

// Immutable creates an empty map for keys hashed and compared by keys.
// Use it like this:
//
//     m := champ.Immutable[string, int](hasher.String())
//     m = m.AddOrUpdate("Galaxy", 42)
//     value, found := m.Lookup("Galaxy")   // returns 42, true
//
func Immutable[K, V any](keys Hasher[K], opts ...Option[V]) Map[K, V] {
	assertThat(keys != nil, "map needs a key hasher")
	return newMap[K, V](empty[K, V]{}, 0, keys, configure(opts))
}

// FromPairs creates a map from a sequence of pairs. If a key occurs more than once,
// the first occurrence wins.
func FromPairs[K, V any](keys Hasher[K], pairs iter.Seq2[K, V], opts ...Option[V]) Map[K, V] {
	b := newBuilder[K, V](keys, false)
	for k, v := range pairs {
		b.put(k, v)
	}
	return b.freeze(configure(opts))
}

func newMap[K, V any](root node[K, V], count int, keys Hasher[K], p props[V]) Map[K, V] {
	return Map[K, V]{
		root:  root,
		count: count,
		keys:  keys,
		props: p,
		hash:  atomic.NewUint32(0),
	}
}

// derive creates a new incarnation of m, sharing configuration with m.
func (m Map[K, V]) derive(root node[K, V], count int) Map[K, V] {
	assertThat(count >= 0, "negative item count %d", count)
	return newMap(root, count, m.keys, m.props)
}

func (m Map[K, V]) rootNode() node[K, V] {
	if m.root == nil {
		return empty[K, V]{}
	}
	return m.root
}

// Len returns the number of entries in m.
func (m Map[K, V]) Len() int {
	return m.count
}

// IsEmpty is true if m has no entries.
func (m Map[K, V]) IsEmpty() bool {
	return m.count == 0
}

// Clear returns an empty map with the configuration of m.
func (m Map[K, V]) Clear() Map[K, V] {
	return m.derive(empty[K, V]{}, 0)
}

// --- Lookup ----------------------------------------------------------------

// Lookup returns the value associated with key. If key is not present, the zero value
// of V will be returned, together with found=false.
func (m Map[K, V]) Lookup(key K) (value V, found bool) {
	if m.keys == nil {
		return value, false
	}
	return m.rootNode().get(key, m.keys.Hash(key), 0, m.keys)
}

// Find returns the value associated with key, or Nothing if key is not present.
func (m Map[K, V]) Find(key K) maybe.Maybe[V] {
	if v, found := m.Lookup(key); found {
		return maybe.Just(v)
	}
	return maybe.Nothing[V]()
}

// Get returns the value associated with key. If key is not present, a *KeyError
// wrapping ErrKeyNotFound is returned.
func (m Map[K, V]) Get(key K) (V, error) {
	v, found := m.Lookup(key)
	if !found {
		return v, keyNotFound(key)
	}
	return v, nil
}

// Fetch is like Get, but wraps the outcome into a Result.
func (m Map[K, V]) Fetch(key K) result.Result[V] {
	v, err := m.Get(key)
	return result.Of(v, err)
}

// ContainsKey is true if key is present in m.
func (m Map[K, V]) ContainsKey(key K) bool {
	_, found := m.Lookup(key)
	return found
}

// Contains is true if key is present in m and associated with a value equal to value.
func (m Map[K, V]) Contains(key K, value V) bool {
	v, found := m.Lookup(key)
	return found && m.props.equal(v, value)
}

// --- Modification ----------------------------------------------------------

func (m Map[K, V]) update(key K, value V, mode updateMode) (Map[K, V], error) {
	assertThat(m.keys != nil, "map has not been created with a key hasher")
	c := change[K, V]{
		mode: mode,
		item: pair[K, V]{key: key, value: value},
		keys: m.keys,
	}
	root, delta, err := m.rootNode().update(&c, m.keys.Hash(key), 0)
	if err != nil {
		return m, err
	}
	if root == m.root {
		return m, nil // no need for modification
	}
	return m.derive(root, m.count+delta), nil
}

// Add returns a copy of m with key associated to value. If key is already present,
// m is returned unchanged, together with a *KeyError wrapping ErrKeyExists.
func (m Map[K, V]) Add(key K, value V) (Map[K, V], error) {
	return m.update(key, value, modeAdd)
}

// TryAdd returns a copy of m with key associated to value. If key is already present,
// m is returned unchanged.
func (m Map[K, V]) TryAdd(key K, value V) Map[K, V] {
	r, _ := m.update(key, value, modeTryAdd)
	return r
}

// AddOrUpdate returns a copy of m with key associated to value, replacing an
// existing value for key.
func (m Map[K, V]) AddOrUpdate(key K, value V) Map[K, V] {
	r, _ := m.update(key, value, modeAddOrUpdate)
	return r
}

// AddOrUpdateWith returns a copy of m with key associated to some(v), if key is
// associated with v in m, or to none() otherwise.
func (m Map[K, V]) AddOrUpdateWith(key K, some func(V) V, none func() V) Map[K, V] {
	if v, found := m.Lookup(key); found {
		return m.AddOrUpdate(key, some(v))
	}
	return m.AddOrUpdate(key, none())
}

// SetItem returns a copy of m with the value for an existing key replaced by value.
// If key is not present, m is returned unchanged, together with a *KeyError wrapping
// ErrKeyNotFound.
func (m Map[K, V]) SetItem(key K, value V) (Map[K, V], error) {
	return m.update(key, value, modeSetItem)
}

// SetItemWith returns a copy of m with the value v for an existing key replaced by f(v).
// If key is not present, m is returned unchanged, together with a *KeyError wrapping
// ErrKeyNotFound.
func (m Map[K, V]) SetItemWith(key K, f func(V) V) (Map[K, V], error) {
	v, err := m.Get(key)
	if err != nil {
		return m, err
	}
	return m.SetItem(key, f(v))
}

// TrySetItem returns a copy of m with the value for key replaced by value.
// If key is not present, m is returned unchanged.
func (m Map[K, V]) TrySetItem(key K, value V) Map[K, V] {
	r, _ := m.update(key, value, modeTrySetItem)
	return r
}

// TrySetItemWith returns a copy of m with the value v for key replaced by f(v).
// If key is not present, m is returned unchanged.
func (m Map[K, V]) TrySetItemWith(key K, f func(V) V) Map[K, V] {
	if v, found := m.Lookup(key); found {
		return m.TrySetItem(key, f(v))
	}
	return m
}

// FindOrAdd returns the value associated with key, if present. Otherwise it adds key
// with value and returns the new map together with value.
func (m Map[K, V]) FindOrAdd(key K, value V) (Map[K, V], V) {
	if v, found := m.Lookup(key); found {
		return m, v
	}
	return m.TryAdd(key, value), value
}

// FindOrAddWith is like FindOrAdd, but calls none only if key is absent.
func (m Map[K, V]) FindOrAddWith(key K, none func() V) (Map[K, V], V) {
	if v, found := m.Lookup(key); found {
		return m, v
	}
	v := none()
	return m.TryAdd(key, v), v
}

// FindOrMaybeAdd returns the value associated with key, if present. Otherwise it calls
// none and adds key only if none returns a value.
func (m Map[K, V]) FindOrMaybeAdd(key K, none func() maybe.Maybe[V]) (Map[K, V], maybe.Maybe[V]) {
	if v, found := m.Lookup(key); found {
		return m, maybe.Just(v)
	}
	mv := none()
	if v, ok := mv.Get(); ok {
		return m.TryAdd(key, v), mv
	}
	return m, mv
}

// Remove returns a copy of m without key. If key is not present, m is returned
// unchanged.
func (m Map[K, V]) Remove(key K) Map[K, V] {
	if m.keys == nil || m.count == 0 {
		return m
	}
	root, delta := m.rootNode().remove(key, m.keys.Hash(key), 0, m.keys)
	if root == m.root {
		return m // no need for modification
	}
	return m.derive(root, m.count+delta)
}

// --- Ranges ----------------------------------------------------------------

func (m Map[K, V]) updateRange(pairs iter.Seq2[K, V], mode updateMode) (Map[K, V], error) {
	r := m
	for k, v := range pairs {
		var err error
		if r, err = r.update(k, v, mode); err != nil {
			return m, err
		}
	}
	return r, nil
}

// AddRange adds all pairs, from left to right. If any key is already present, m is
// returned unchanged, together with a *KeyError wrapping ErrKeyExists.
func (m Map[K, V]) AddRange(pairs iter.Seq2[K, V]) (Map[K, V], error) {
	return m.updateRange(pairs, modeAdd)
}

// TryAddRange adds all pairs with keys not yet present.
func (m Map[K, V]) TryAddRange(pairs iter.Seq2[K, V]) Map[K, V] {
	r, _ := m.updateRange(pairs, modeTryAdd)
	return r
}

// AddOrUpdateRange adds all pairs, replacing values of present keys.
func (m Map[K, V]) AddOrUpdateRange(pairs iter.Seq2[K, V]) Map[K, V] {
	r, _ := m.updateRange(pairs, modeAddOrUpdate)
	return r
}

// SetItems replaces the values of all keys in pairs. If any key is not present, m is
// returned unchanged, together with a *KeyError wrapping ErrKeyNotFound.
func (m Map[K, V]) SetItems(pairs iter.Seq2[K, V]) (Map[K, V], error) {
	return m.updateRange(pairs, modeSetItem)
}

// TrySetItems replaces the values of all keys in pairs which are present in m.
func (m Map[K, V]) TrySetItems(pairs iter.Seq2[K, V]) Map[K, V] {
	r, _ := m.updateRange(pairs, modeTrySetItem)
	return r
}

// TrySetItemsWith replaces the value v of every key in keys which is present in m by f(v).
func (m Map[K, V]) TrySetItemsWith(keys iter.Seq[K], f func(V) V) Map[K, V] {
	r := m
	for k := range keys {
		r = r.TrySetItemWith(k, f)
	}
	return r
}

// RemoveRange removes all keys.
func (m Map[K, V]) RemoveRange(keys iter.Seq[K]) Map[K, V] {
	r := m
	for k := range keys {
		r = r.Remove(k)
	}
	return r
}

// Append returns the union of m and other. For keys present in both maps, the value
// of m is kept.
func (m Map[K, V]) Append(other Map[K, V]) Map[K, V] {
	return m.TryAddRange(other.All())
}

// Subtract returns m without all the keys present in other.
func (m Map[K, V]) Subtract(other Map[K, V]) Map[K, V] {
	return m.RemoveRange(other.Keys())
}

// Filter returns a map holding the pairs of m for which pred is true.
func (m Map[K, V]) Filter(pred func(K, V) bool) Map[K, V] {
	if m.keys == nil {
		return m
	}
	b := newBuilder[K, V](m.keys, false)
	for k, v := range m.All() {
		if pred(k, v) {
			b.put(k, v)
		}
	}
	return b.freeze(m.props)
}

// MapValues returns a map with the keys of m, each associated with f applied to its
// value in m.
func MapValues[K, V, U any](m Map[K, V], f func(K, V) U, opts ...Option[U]) Map[K, U] {
	assertThat(m.keys != nil, "map has not been created with a key hasher")
	b := newBuilder[K, U](m.keys, true)
	for k, v := range m.All() {
		b.put(k, f(k, v))
	}
	return b.freeze(configure(opts))
}

// --- Iteration -------------------------------------------------------------

// All returns an iterator over the pairs of m. Iteration order depends on the
// structure of the underlying trie and is stable for a given map.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	root := m.rootNode()
	return func(yield func(K, V) bool) {
		root.each(yield)
	}
}

// Keys returns an iterator over the keys of m, in the order of All.
func (m Map[K, V]) Keys() iter.Seq[K] {
	root := m.rootNode()
	return func(yield func(K) bool) {
		root.each(func(k K, _ V) bool {
			return yield(k)
		})
	}
}

// Values returns an iterator over the values of m, in the order of All.
func (m Map[K, V]) Values() iter.Seq[V] {
	root := m.rootNode()
	return func(yield func(V) bool) {
		root.each(func(_ K, v V) bool {
			return yield(v)
		})
	}
}

// String lists at most the first 50 pairs of m.
func (m Map[K, V]) String() string {
	const maxShown = 50
	b := strings.Builder{}
	b.WriteByte('[')
	i := 0
	for k, v := range m.All() {
		if i == maxShown {
			b.WriteString(" ...")
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "(%v, %v)", k, v)
		i++
	}
	b.WriteByte(']')
	return b.String()
}
