// Package foldertree implements an in-memory hierarchical directory
// tree supporting concurrent List, Create, Remove and Move operations
// over slash-delimited folder paths. The concurrency protocol - a
// bounded-waiting readers/writers discipline per node, hand-over-hand
// path acquisition, and a subtree-quiescence barrier for Remove and
// Move - lives in pkg/synclock and this package's locker.go; this
// file composes those primitives into the four public operations.
package foldertree

import (
	"github.com/sirupsen/logrus"

	"github.com/foldertree/foldertree/internal/pathspec"
)

// Tree is a rooted directory tree. The zero value is not usable;
// construct with New. A Tree must be torn down with Free once no
// other goroutine holds any lock within it.
type Tree struct {
	root                *node
	maxFolderNameLength int
	log                 *logrus.Logger
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithMaxFolderNameLength overrides the default component-length
// bound (pathspec.MaxFolderNameLength).
func WithMaxFolderNameLength(n int) Option {
	return func(t *Tree) { t.maxFolderNameLength = n }
}

// WithLogger overrides the default logrus logger used for debug-level
// operation tracing. The synchronization core itself never logs;
// only this orchestration layer does.
func WithLogger(l *logrus.Logger) Option {
	return func(t *Tree) { t.log = l }
}

// New returns a fresh Tree containing only the root folder "/".
func New(opts ...Option) *Tree {
	t := &Tree{
		root:                newNode(nil),
		maxFolderNameLength: pathspec.MaxFolderNameLength,
		log:                 logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Free recursively tears down the tree. Its precondition is that no
// other goroutine holds any lock anywhere in the tree; Free does not
// itself synchronize against concurrent operations.
func (t *Tree) Free() {
	freeNode(t.root)
	t.root = nil
}

func freeNode(n *node) {
	if n == nil {
		return
	}
	n.children.Each(func(_ string, child *node) {
		freeNode(child)
	})
	n.parent = nil
}

// Stats is a diagnostic snapshot of the whole tree's lock state,
// rolled up from every node's synclock.Snapshot. It supplements each
// node's own counters with a tree-wide aggregate, useful for tests
// asserting global quiescence and for operational visibility.
type Stats struct {
	NodeCount    int
	ReadHeld     int
	WriteHeld    int
	ReadWaiting  int
	WriteWaiting int
}

// Quiescent reports whether every node's lock state is at rest: no
// locks held, no waiters parked.
func (s Stats) Quiescent() bool {
	return s.ReadHeld == 0 && s.WriteHeld == 0 && s.ReadWaiting == 0 && s.WriteWaiting == 0
}

// Stats walks the whole tree collecting a Stats snapshot. Like Free,
// it assumes no concurrent mutation of the children maps it walks,
// though it tolerates concurrent lock acquisition/release on
// individual nodes (each node's counters are read under that node's
// own mutex via Snapshot).
func (t *Tree) Stats() Stats {
	var s Stats
	var walk func(n *node)
	walk = func(n *node) {
		s.NodeCount++
		snap := n.lock.Snapshot()
		s.ReadHeld += snap.ReadCount
		s.WriteHeld += snap.WriteCount
		s.ReadWaiting += snap.ReadWait
		s.WriteWaiting += snap.WriteWait
		n.children.Each(func(_ string, child *node) {
			walk(child)
		})
	}
	walk(t.root)
	return s
}

// releaseWriteAncestors unlocks n (held as a writer) and then every
// ancestor of n up to the root (held as readers), mirroring the
// release sequence every write-based operation performs.
func releaseWriteAncestors(n *node) {
	n.lock.WriteUnlock()
	if n.parent != nil {
		readUnlockPredecessors(n.parent)
	}
}

// releaseWriteChainUntil unlocks n (held as a writer) and its
// ancestors as readers up to, but not including, stop. If n == stop,
// the lock was reused from the caller and nothing is released here.
func releaseWriteChainUntil(n, stop *node) {
	if n == stop {
		return
	}
	n.lock.WriteUnlock()
	if n.parent != nil {
		readUnlockPredecessorsUntil(n.parent, stop)
	}
}

// List returns the newline-joined names of path's direct children, or
// an error (EInvalid or ENotFound) if path cannot be resolved to a
// folder.
func (t *Tree) List(path string) (string, error) {
	if !pathspec.IsValid(path, t.maxFolderNameLength) {
		return "", EInvalid
	}

	n, ok := readLockPath(t.root, path)
	if !ok {
		return "", ENotFound
	}
	contents := n.children.ContentsString()
	readUnlockPredecessors(n)

	t.log.WithField("path", path).Debug("foldertree: list")
	return contents, nil
}

// Create adds a new, empty folder at path.
func (t *Tree) Create(path string) error {
	if !pathspec.IsValid(path, t.maxFolderNameLength) {
		return EInvalid
	}
	if path == pathspec.Root {
		return EExists
	}

	parentPath, name, _ := pathspec.SplitParent(path)
	parent, ok := readWriteLockPath(t.root, parentPath)
	if !ok {
		return ENotFound
	}

	if _, exists := parent.children.Get(name); exists {
		releaseWriteAncestors(parent)
		return EExists
	}

	child := newNode(parent)
	parent.children.Insert(name, child)
	releaseWriteAncestors(parent)

	t.log.WithField("path", path).Debug("foldertree: create")
	return nil
}

// Remove deletes the empty folder at path.
func (t *Tree) Remove(path string) error {
	if !pathspec.IsValid(path, t.maxFolderNameLength) {
		return EInvalid
	}

	parentPath, name, ok := pathspec.SplitParent(path)
	if !ok {
		// path was "/".
		return EBusy
	}

	parent, ok := readWriteLockPath(t.root, parentPath)
	if !ok {
		return ENotFound
	}

	victim, exists := parent.children.Get(name)
	if !exists {
		releaseWriteAncestors(parent)
		return ENotFound
	}

	// Holding parent's write lock blocks any new traverser from
	// entering victim; drain whoever is already in flight.
	victim.lock.SubtreeWait()

	if victim.children.Len() > 0 {
		releaseWriteAncestors(parent)
		return ENotEmpty
	}

	parent.children.Remove(name)
	victim.parent = nil
	releaseWriteAncestors(parent)

	t.log.WithField("path", path).Debug("foldertree: remove")
	return nil
}
