package champ

import (
	"math/bits"
	"testing"

	"github.com/npillmayer/champ/persistent/champ/hasher"
)

// test helpers

func intEqual(a, b int) bool { return a == b }

// shiftedInts hashes k to k << shift, leaving the lower bits of all hashes equal.
func shiftedInts(shift uint) hasher.FuncHasher[int] {
	return hasher.Func(func(k int) uint32 { return uint32(k) << shift }, intEqual)
}

// lowEntropyInts hashes to 10 bits only, producing deep tries with collisions.
func lowEntropyInts() hasher.FuncHasher[int] {
	return hasher.Func(func(k int) uint32 { return (uint32(k) * 0x9e3779b1) & 0x3ff }, intEqual)
}

// fixedHashes hashes strings by a lookup table.
func fixedHashes(hashes map[string]uint32) hasher.FuncHasher[string] {
	return hasher.Func(func(k string) uint32 { return hashes[k] },
		func(a, b string) bool { return a == b })
}

func collect[K comparable, V any](m Map[K, V]) map[K]V {
	c := make(map[K]V, m.Len())
	for k, v := range m.All() {
		c[k] = v
	}
	return c
}

// checkInvariants walks the trie of m and checks its structural invariants.
func checkInvariants[K, V any](t *testing.T, m Map[K, V]) {
	t.Helper()
	n := checkNode(t, m.rootNode(), 0, true, m.keys, 0, 0)
	if n != m.Len() {
		t.Errorf("expected trie to hold %d leaves, has %d", m.Len(), n)
	}
}

func checkNode[K, V any](t *testing.T, n node[K, V], at cursor, isRoot bool, keys Hasher[K],
	prefixMask, prefix uint32) int {
	//
	t.Helper()
	checkPrefix := func(key K) {
		if h := keys.Hash(key); h&prefixMask != prefix {
			t.Errorf("key %v with hash %032b is off its path %032b", key, h, prefix)
		}
	}
	switch n := n.(type) {
	case empty[K, V]:
		if !isRoot {
			t.Errorf("empty node below root @ level %d", at.level())
		}
		return 0
	case *collision[K, V]:
		if len(n.items) < 2 {
			t.Errorf("collision bucket with %d items @ level %d", len(n.items), at.level())
		}
		for _, item := range n.items {
			checkPrefix(item.key)
		}
		return len(n.items)
	case *entries[K, V]:
		if n.entryMap&n.nodeMap != 0 {
			t.Errorf("bitmaps overlap @ level %d: %032b & %032b", at.level(), n.entryMap, n.nodeMap)
		}
		if len(n.items) != bits.OnesCount32(n.entryMap) || len(n.nodes) != bits.OnesCount32(n.nodeMap) {
			t.Errorf("arrays are not compacted @ level %d", at.level())
			return 0
		}
		if !isRoot && len(n.items) == 1 && len(n.nodes) == 0 {
			t.Errorf("uncompressed single-entry node @ level %d", at.level())
		}
		if !isRoot && len(n.items) == 0 && len(n.nodes) == 0 {
			t.Errorf("empty entries node @ level %d", at.level())
		}
		count := len(n.items)
		bitmap := n.entryMap
		for _, item := range n.items { // items are ordered by ascending branch bit
			bit := uint32(1) << bits.TrailingZeros32(bitmap)
			bitmap &^= bit
			if at.bit(keys.Hash(item.key)) != bit {
				t.Errorf("key %v stored at wrong branch @ level %d", item.key, at.level())
			}
			checkPrefix(item.key)
		}
		bitmap = n.nodeMap
		for _, child := range n.nodes {
			i := uint32(bits.TrailingZeros32(bitmap))
			bitmap &^= 1 << i
			mask := prefixMask | levelMask<<uint32(at)
			count += checkNode(t, child, at.next(), false, keys, mask, prefix|i<<uint32(at))
		}
		return count
	}
	t.Errorf("unknown node type %T", n)
	return 0
}
