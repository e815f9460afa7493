package champ

// Equal is true if m and other hold the same keys, each associated with equal values.
// Keys are looked up in other, thus the result does not depend on the shape of the tries.
// Values are compared with the equality configured for m (see option Values).
func (m Map[K, V]) Equal(other Map[K, V]) bool {
	if m.count != other.count {
		return false
	}
	if m.count == 0 || m.root == other.root {
		return true
	}
	for k, v := range m.All() {
		w, found := other.Lookup(k)
		if !found || !m.props.equal(v, w) {
			return false
		}
	}
	return true
}

// HashCode returns a hash of the content of m. Maps which are Equal have equal hash
// codes, given they are configured with the same hashers. The hash is calculated at
// most once per map incarnation.
func (m Map[K, V]) HashCode() uint32 {
	if m.hash != nil {
		if h := m.hash.Load(); h != 0 {
			return h
		}
	}
	h := mix32(uint32(m.count))
	if m.keys != nil {
		for k, v := range m.All() {
			// summing makes the hash independent of iteration order
			h += mix32(m.keys.Hash(k)*31 + m.props.hash(v))
		}
	}
	if m.hash != nil {
		m.hash.Store(h) // racing writers store the same value
	}
	return h
}

// mix32 is the finalizer of MurmurHash3.
func mix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}
