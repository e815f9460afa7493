/*
Package champ implements an immutable persistent hash map, based on a
CHAMP trie (Compressed Hash-Array Mapped Prefix trie).

Every “modification” of a map (insertion, replacement or deletion) returns a new
incarnation of the map, leaving the original unmodified. New and old map share
all the nodes of the trie which are not on the path to the modified entry. Copying a map
is therefore O(1), and maps may be read concurrently without any locking.

Keys are hashed to 32 bits. Each level of the trie consumes 5 bits of a key's hash
and stores entries and sub-nodes in arrays compacted by a pair of bitmaps. Keys with
hashes which cannot be told apart by slicing end up in collision buckets.

Clients supply hashing and equality of keys with a Hasher, which is handed to the
map at creation time:

    m := champ.Immutable[string, int](hasher.String())
    m = m.AddOrUpdate("Galaxy", 42)
    v, found := m.Lookup("Galaxy")   // returns 42, true

Package hasher provides hashers for frequently used key types.

Iteration order is determined by the shape of the trie, not by the order of keys.
Two maps with equal content may iterate in different order, if they have been
built by different sequences of operations.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package champ

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fp.champ'.
func tracer() tracing.Trace {
	return tracing.Select("fp.champ")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("champ: "+msg, msgargs...)
		panic(msg)
	}
}
