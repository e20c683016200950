package foldertree

import (
	"github.com/foldertree/foldertree/internal/childset"
	"github.com/foldertree/foldertree/pkg/synclock"
)

// node is a single folder. It carries its own synchronization
// primitive, a non-owning back-reference to its parent (nil for the
// root), and the map of its direct children. A node's identity is
// stable across Move: moving relinks the child in the two parents'
// children sets and rewrites parent, but never allocates a new node.
type node struct {
	lock     *synclock.Lock
	parent   *node
	children *childset.Set[*node]
}

func newNode(parent *node) *node {
	return &node{
		lock:     synclock.New(),
		parent:   parent,
		children: childset.New[*node](),
	}
}
