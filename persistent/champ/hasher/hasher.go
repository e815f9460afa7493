/*
Package hasher provides key hashers for package champ.

A hasher bundles a 32-bit hash function with an equality test for a type of keys.
Hashes have to be consistent with equality: equal keys must have equal hashes.

Hashes for strings and byte slices are derived from xxHash, integers are scrambled
by a 64-bit finalizer. Comparable uses hash/maphash, which is seeded randomly per
process: its hashes must not be persisted.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package hasher

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// fold reduces a 64-bit hash to 32 bits, keeping entropy from both halves.
func fold(h uint64) uint32 {
	return uint32(h) ^ uint32(h>>32)
}

// --- Strings and bytes -----------------------------------------------------

// StringHasher hashes strings.
type StringHasher struct{}

// String returns a hasher for string keys.
func String() StringHasher {
	return StringHasher{}
}

func (StringHasher) Hash(s string) uint32 {
	return fold(xxhash.Sum64String(s))
}

func (StringHasher) Equal(a, b string) bool {
	return a == b
}

// BytesHasher hashes byte slices by content.
type BytesHasher struct{}

// Bytes returns a hasher for []byte keys. Clients must not modify keys
// after they have been inserted into a map.
func Bytes() BytesHasher {
	return BytesHasher{}
}

func (BytesHasher) Hash(b []byte) uint32 {
	return fold(xxhash.Sum64(b))
}

func (BytesHasher) Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}

// --- Integers --------------------------------------------------------------

// IntegerHasher hashes integer types.
type IntegerHasher[T constraints.Integer] struct{}

// Integer returns a hasher for integer keys.
func Integer[T constraints.Integer]() IntegerHasher[T] {
	return IntegerHasher[T]{}
}

func (IntegerHasher[T]) Hash(n T) uint32 {
	return fold(mix64(uint64(n)))
}

func (IntegerHasher[T]) Equal(a, b T) bool {
	return a == b
}

// mix64 is the finalizer of MurmurHash3 (64 bit).
func mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// --- Others ----------------------------------------------------------------

var seed = maphash.MakeSeed()

// ComparableHasher hashes any comparable type.
type ComparableHasher[T comparable] struct {
	seed maphash.Seed
}

// Comparable returns a hasher for keys of a comparable type, e.g. structs.
// Equality is Go's == operator.
func Comparable[T comparable]() ComparableHasher[T] {
	return ComparableHasher[T]{seed: seed}
}

func (h ComparableHasher[T]) Hash(x T) uint32 {
	return fold(maphash.Comparable(h.seed, x))
}

func (ComparableHasher[T]) Equal(a, b T) bool {
	return a == b
}

// FuncHasher wraps a pair of client functions.
type FuncHasher[T any] struct {
	hash  func(T) uint32
	equal func(a, b T) bool
}

// Func returns a hasher using hash and equal.
func Func[T any](hash func(T) uint32, equal func(a, b T) bool) FuncHasher[T] {
	if hash == nil || equal == nil {
		panic("hasher: Func needs both a hash and an equality function")
	}
	return FuncHasher[T]{hash: hash, equal: equal}
}

func (h FuncHasher[T]) Hash(x T) uint32 {
	return h.hash(x)
}

func (h FuncHasher[T]) Equal(a, b T) bool {
	return h.equal(a, b)
}

// ConstantHasher hashes every key to the same value. Maps using it degrade to a
// single collision bucket; it is meant for testing.
type ConstantHasher[T comparable] struct {
	h uint32
}

// Constant returns a hasher with a fixed hash h.
func Constant[T comparable](h uint32) ConstantHasher[T] {
	return ConstantHasher[T]{h: h}
}

func (c ConstantHasher[T]) Hash(T) uint32 {
	return c.h
}

func (ConstantHasher[T]) Equal(a, b T) bool {
	return a == b
}
