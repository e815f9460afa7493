/*
Immutable persistent data structures are data structures which can be copied and modified
efficiently, leaving the original unchanged. Functional programming languages like Lisp have long
relied on using them.

Persistent immutable data structures offer structural sharing: if two incarnations of a
structure are mostly copies of each other, most of the memory they take up is shared between
them. Making a copy is therefore cheap in terms of space and time, and concurrent readers
need no coordination.

Sub-package champ implements a persistent hash map on top of a CHAMP trie.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package persistent
