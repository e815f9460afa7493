/*
Package maybe implements an optional value type.

A Maybe either holds a value (Just) or it does not (Nothing). Maps return
a Maybe from lookups:

    switch m := dict.Find("Galaxy").Match(); m {
    case m.Just(&v):
        …
    case m.Nothing():
        …
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package maybe

// Maybe is an optional value of type T.
type Maybe[T any] interface {
	Match() Matcher[T]
	Get() (T, bool)
	IsJust() bool
	WithDefault(T) T
	Map(func(T) T) Maybe[T]
}

type maybe[T any] struct {
	value T
	tag   bool
}

// Just wraps x.
func Just[T any](x T) Maybe[T] {
	return maybe[T]{value: x, tag: true}
}

// Nothing is the absent value of type T.
func Nothing[T any]() Maybe[T] {
	return maybe[T]{tag: false}
}

func (m maybe[T]) Match() Matcher[T] {
	return matcher[T]{m: m}
}

// Get unwraps m, in the manner of a map lookup.
func (m maybe[T]) Get() (T, bool) {
	return m.value, m.tag
}

func (m maybe[T]) IsJust() bool {
	return m.tag
}

func (m maybe[T]) WithDefault(def T) T {
	if m.tag {
		return m.value
	}
	return def
}

func (m maybe[T]) Map(f func(T) T) Maybe[T] {
	if m.tag {
		return Just(f(m.value))
	}
	return m
}

// AndThen chains a computation which may itself produce nothing.
func AndThen[T, S any](f func(T) Maybe[S], x Maybe[T]) Maybe[S] {
	if v, ok := x.Get(); ok {
		return f(v)
	}
	return Nothing[S]()
}

// Map converts the value of x, if any, to type S.
func Map[T, S any](f func(T) S, x Maybe[T]) Maybe[S] {
	if v, ok := x.Get(); ok {
		return Just(f(v))
	}
	return Nothing[S]()
}

// --- Matching --------------------------------------------------------------

// Matcher supports pattern-matching of Maybes in switch statements.
type Matcher[T any] interface {
	Just(*T) Matcher[T]
	Nothing() Matcher[T]
}

type matcher[T any] struct {
	m maybe[T]
}

func (mm matcher[T]) Just(v *T) Matcher[T] {
	if mm.m.tag {
		*v = mm.m.value
		return mm
	}
	return nil
}

func (mm matcher[T]) Nothing() Matcher[T] {
	if !mm.m.tag {
		return mm
	}
	return nil
}
