package champ

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders the trie underlying m, for debugging.
func (m Map[K, V]) Dump() string {
	header := fmt.Sprintf("\nMap(count=%d)\n", m.count)
	printer := tp.New()
	dumpNode(printer, m.rootNode(), 0)
	return header + printer.String() + "\n"
}

func dumpNode[K, V any](printer tp.Tree, n node[K, V], at cursor) {
	switch n := n.(type) {
	case empty[K, V]:
		printer.AddNode("∅")
	case *collision[K, V]:
		branch := printer.AddBranch(fmt.Sprintf("collision #%08x", n.hash))
		for _, item := range n.items {
			branch.AddNode(fmt.Sprintf("%v: %v", item.key, item.value))
		}
	case *entries[K, V]:
		branch := printer.AddBranch(fmt.Sprintf("entries @%d  data=%032b  nodes=%032b",
			at.level(), n.entryMap, n.nodeMap))
		for _, item := range n.items {
			branch.AddNode(fmt.Sprintf("%v: %v", item.key, item.value))
		}
		for _, child := range n.nodes {
			dumpNode(branch, child, at.next())
		}
	}
}
