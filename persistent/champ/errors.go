package champ

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyExists is flagged by strict insertion when a key is already present.
	ErrKeyExists = errors.New("key already exists in map")
	// ErrKeyNotFound is flagged by strict replacement and access when a key is absent.
	ErrKeyNotFound = errors.New("key does not exist in map")
	// ErrNoHasher is flagged when decoding into a map which has not been set up with a Hasher.
	ErrNoHasher = errors.New("map has no key hasher")
)

// KeyError is returned by map operations failing for a certain key.
// It wraps ErrKeyExists or ErrKeyNotFound.
type KeyError[K any] struct {
	Key K
	Err error
}

func (e *KeyError[K]) Error() string {
	return fmt.Sprintf("%s: %v", e.Err.Error(), e.Key)
}

func (e *KeyError[K]) Unwrap() error {
	return e.Err
}

func keyExists[K any](key K) error {
	return &KeyError[K]{Key: key, Err: ErrKeyExists}
}

func keyNotFound[K any](key K) error {
	return &KeyError[K]{Key: key, Err: ErrKeyNotFound}
}
