package champ

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// props holds the per-map configuration for values.
type props[V any] struct {
	valueEq   func(a, b V) bool
	valueHash func(V) uint32
}

func (p props[V]) equal(a, b V) bool {
	if p.valueEq != nil {
		return p.valueEq(a, b)
	}
	return cmp.Equal(a, b, deepValues)
}

// deepValues lets cmp.Equal look into unexported struct fields instead of panicking.
var deepValues = cmp.Exporter(func(reflect.Type) bool { return true })

func (p props[V]) hash(v V) uint32 {
	if p.valueHash != nil {
		return p.valueHash(v)
	}
	return 0
}

// Option is a type to help initializing maps at creation time.
type Option[V any] func(props[V]) props[V]

// Values is an option to set the hashing and equality of values, used for comparing
// maps (Equal, Contains) and for HashCode.
// Without it, values are compared with go-cmp's cmp.Equal and do not contribute
// to a map's hash code.
//
// Use it like this:
//
//     m := champ.Immutable[string, int](hasher.String(), champ.Values[int](hasher.Integer[int]()))
//
func Values[V any](h Hasher[V]) Option[V] {
	return func(p props[V]) props[V] {
		if h != nil {
			p.valueEq = h.Equal
			p.valueHash = h.Hash
		}
		return p
	}
}

// ValueEquality is an option to set the equality of values only.
func ValueEquality[V any](eq func(a, b V) bool) Option[V] {
	return func(p props[V]) props[V] {
		p.valueEq = eq
		return p
	}
}

func configure[V any](opts []Option[V]) props[V] {
	var p props[V]
	for _, option := range opts {
		p = option(p)
	}
	return p
}
