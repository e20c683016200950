package foldertree

import "github.com/foldertree/foldertree/internal/pathspec"

// readLockPath performs the hand-over-hand read-lock traversal: at
// each hop it read-locks the current node, then looks up the next
// component under that lock before moving on. It
// returns the target node with the full root-to-leaf chain
// read-locked, or (nil, false) if some component is missing - in
// which case every node locked so far has already been released, in
// leaf-to-root order, before returning.
func readLockPath(root *node, path string) (*node, bool) {
	cur := root
	cur.lock.ReadLock()
	rest := path

	for {
		first, next, ok := pathspec.Split(rest)
		if !ok {
			// rest was "/": cur is the target, already read-locked.
			return cur, true
		}
		child, found := cur.children.Get(first)
		if !found {
			readUnlockPredecessors(cur)
			return nil, false
		}
		child.lock.ReadLock()
		cur = child
		rest = next
	}
}

// readWriteLockPath is readLockPath's write variant: every ancestor
// of the target is read-locked, and the target itself is
// write-locked directly (never read-locked then upgraded). If path is
// "/" the root is the target and is write-locked with no ancestors to
// hold.
func readWriteLockPath(root *node, path string) (*node, bool) {
	if path == pathspec.Root {
		root.lock.WriteLock()
		return root, true
	}

	cur := root
	cur.lock.ReadLock()
	rest := path

	for {
		first, next, ok := pathspec.Split(rest)
		if !ok {
			// Unreachable: rest != "/" going into the loop, and we
			// return as soon as next == "/" below, so this branch
			// never fires for a validated path.
			return cur, true
		}
		child, found := cur.children.Get(first)
		if !found {
			readUnlockPredecessors(cur)
			return nil, false
		}
		if next == pathspec.Root {
			child.lock.WriteLock()
			return child, true
		}
		child.lock.ReadLock()
		cur = child
		rest = next
	}
}

// readWriteLockPathExcluding descends from start (already held by the
// caller, typically as a write lock on the lowest common ancestor in
// Move) along the relative path, write-locking the terminal node and
// read-locking every intermediate node in between. exclusionRoot's
// lock is never acquired or released here - it is the caller's
// responsibility. If path is "/", start is itself the target and is
// returned as-is, reusing the caller's already-held lock.
func readWriteLockPathExcluding(start *node, path string, exclusionRoot *node) (*node, bool) {
	if path == pathspec.Root {
		return start, true
	}

	cur := start
	rest := path

	for {
		first, next, ok := pathspec.Split(rest)
		if !ok {
			return cur, true
		}
		child, found := cur.children.Get(first)
		if !found {
			readUnlockPredecessorsUntil(cur, exclusionRoot)
			return nil, false
		}
		if next == pathspec.Root {
			child.lock.WriteLock()
			return child, true
		}
		child.lock.ReadLock()
		cur = child
		rest = next
	}
}

// readUnlockPredecessors read-unlocks n, then its parent, then its
// parent's parent, and so on up to and including the root. It relies
// on parent being a stable back-reference, so the walk needs no
// separately recorded chain of held locks.
func readUnlockPredecessors(n *node) {
	for n != nil {
		n.lock.ReadUnlock()
		n = n.parent
	}
}

// readUnlockPredecessorsUntil is readUnlockPredecessors, but it halts
// immediately upon reaching stop without unlocking it - used to
// release a partial descent from Move's lowest-common-ancestor pivot
// without touching the pivot's own (write) lock.
func readUnlockPredecessorsUntil(n, stop *node) {
	for n != nil && n != stop {
		n.lock.ReadUnlock()
		n = n.parent
	}
}
