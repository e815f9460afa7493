package champ

import "math/bits"

const (
	bitsPerLevel uint32 = 5 // will produce nodes with a branching factor of 2 ^ 5 = 32
	levelMask    uint32 = 1<<bitsPerLevel - 1
	maxOffset    uint32 = 25 // beyond this, 5-bit slices start re-using the top bits
)

// cursor tracks how many low-order bits of a key's hash have been consumed
// on the way down the trie.
type cursor uint32

func (c cursor) next() cursor {
	return c + cursor(bitsPerLevel)
}

// index is the branch index of hash at the cursor's level, in [0…31].
func (c cursor) index(hash uint32) uint32 {
	return (hash >> uint32(c)) & levelMask
}

// bit is the bitmap bit of hash at the cursor's level.
func (c cursor) bit(hash uint32) uint32 {
	return bitFor(c.index(hash))
}

// exhausted is true if a merge at this level has to fall back to a collision bucket.
func (c cursor) exhausted() bool {
	return uint32(c) >= maxOffset
}

func (c cursor) level() int {
	return int(uint32(c) / bitsPerLevel)
}

func bitFor(i uint32) uint32 {
	return 1 << i
}

// index maps a bitmap bit to its position in a compacted array: the number of
// bits set in bitmap below bit.
func index(bitmap, bit uint32) int {
	return bits.OnesCount32(bitmap & (bit - 1))
}

// --- Compacted arrays ------------------------------------------------------

// insertAt returns s with x inserted at position i. If inplace is set, the
// caller owns s exclusively and its backing array may be re-used.
func insertAt[T any](s []T, i int, x T, inplace bool) []T {
	if inplace && len(s) < cap(s) {
		s = s[:len(s)+1]
		copy(s[i+1:], s[i:])
		s[i] = x
		return s
	}
	c := make([]T, len(s)+1)
	copy(c, s[:i])
	c[i] = x
	copy(c[i+1:], s[i:])
	return c
}

// removeAt returns s without the item at position i.
func removeAt[T any](s []T, i int, inplace bool) []T {
	if len(s) == 0 {
		return s
	}
	if inplace {
		l := len(s) - 1
		copy(s[i:], s[i+1:])
		var zero T
		s[l] = zero
		return s[:l]
	}
	c := make([]T, len(s)-1)
	copy(c, s[:i])
	copy(c[i:], s[i+1:])
	return c
}

// replaceAt returns s with the item at position i set to x.
func replaceAt[T any](s []T, i int, x T, inplace bool) []T {
	if inplace {
		s[i] = x
		return s
	}
	c := make([]T, len(s))
	copy(c, s)
	c[i] = x
	return c
}
