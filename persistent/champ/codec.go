package champ

import (
	"github.com/fxamacker/cbor/v2"
)

// wirePair is the CBOR representation of a pair: a two-element array.
type wirePair[K, V any] struct {
	_     struct{} `cbor:",toarray"`
	Key   K
	Value V
}

// MarshalCBOR encodes m as a CBOR array of [key, value] arrays, in iteration order.
func (m Map[K, V]) MarshalCBOR() ([]byte, error) {
	pairs := make([]wirePair[K, V], 0, m.count)
	for k, v := range m.All() {
		pairs = append(pairs, wirePair[K, V]{Key: k, Value: v})
	}
	return cbor.Marshal(pairs)
}

// UnmarshalCBOR decodes data as produced by MarshalCBOR into m, replacing its content.
// m has to be created with a key hasher beforehand:
//
//     m := champ.Immutable[string, int](hasher.String())
//     err := cbor.Unmarshal(data, &m)
//
// If a key occurs more than once, the first occurrence wins.
func (m *Map[K, V]) UnmarshalCBOR(data []byte) error {
	if m.keys == nil {
		return ErrNoHasher
	}
	var pairs []wirePair[K, V]
	if err := cbor.Unmarshal(data, &pairs); err != nil {
		return err
	}
	b := newBuilder[K, V](m.keys, false)
	for _, p := range pairs {
		b.put(p.Key, p.Value)
	}
	*m = b.freeze(m.props)
	tracer().Debugf("decoded map with %d entries from %d pairs", m.count, len(pairs))
	return nil
}
