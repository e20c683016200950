package foldertree

import "github.com/foldertree/foldertree/internal/pathspec"

// Move relocates the folder at source to target (see DESIGN.md "Move
// direction resolution" for why the two ancestor-relationship checks
// below are assigned the way they are):
//
//   - source is a strict ancestor of target (target occupies a
//     successor position of source) is fast-failed as ESuccessor,
//     purely syntactically, regardless of whether either node exists.
//   - target is a strict ancestor of source is the aliasing case that
//     requires a lock to resolve: EExists if source exists (target,
//     being its ancestor, trivially exists too), ENotFound otherwise.
func (t *Tree) Move(source, target string) error {
	if !pathspec.IsValid(source, t.maxFolderNameLength) || !pathspec.IsValid(target, t.maxFolderNameLength) {
		return EInvalid
	}
	if source == pathspec.Root {
		return EBusy
	}
	if target == pathspec.Root {
		return EExists
	}
	if pathspec.IsStrictPrefix(source, target) {
		return ESuccessor
	}

	if source == target {
		// Moving a folder onto itself succeeds when it exists.
		if err := t.moveAliasExists(source); err == ENotFound {
			return err
		}
		return nil
	}
	if pathspec.IsStrictPrefix(target, source) {
		return t.moveAliasExists(source)
	}

	return t.moveGeneral(source, target)
}

// moveAliasExists resolves an aliasing case by read-locking the path
// to path and reporting whether it exists, unlocking fully either way.
func (t *Tree) moveAliasExists(path string) error {
	n, ok := readLockPath(t.root, path)
	if !ok {
		return ENotFound
	}
	readUnlockPredecessors(n)
	return EExists
}

func (t *Tree) moveGeneral(source, target string) error {
	sp, sn, _ := pathspec.SplitParent(source)
	tp, tn, _ := pathspec.SplitParent(target)
	lcpPath := pathspec.LongestCommonPrefix(sp, tp)

	lcp, ok := readWriteLockPath(t.root, lcpPath)
	if !ok {
		return ENotFound
	}

	sourceParent, ok := readWriteLockPathExcluding(lcp, pathspec.RelativeTo(lcpPath, sp), lcp)
	if !ok {
		releaseWriteAncestors(lcp)
		return ENotFound
	}

	sourceNode, exists := sourceParent.children.Get(sn)
	if !exists {
		releaseWriteChainUntil(sourceParent, lcp)
		releaseWriteAncestors(lcp)
		return ENotFound
	}

	// Holding sourceParent's write lock blocks any new traverser
	// from entering sourceNode; drain whoever is already in flight
	// before we consider the node and its subtree quiescent.
	sourceNode.lock.SubtreeWait()

	targetParent, ok := readWriteLockPathExcluding(lcp, pathspec.RelativeTo(lcpPath, tp), lcp)
	if !ok {
		releaseWriteChainUntil(sourceParent, lcp)
		releaseWriteAncestors(lcp)
		return ENotFound
	}

	if _, exists := targetParent.children.Get(tn); exists {
		releaseWriteChainUntil(targetParent, lcp)
		releaseWriteChainUntil(sourceParent, lcp)
		releaseWriteAncestors(lcp)
		return EExists
	}

	// Linearization point: both parents and the common pivot are
	// held exclusively, so this relinking is atomic with respect to
	// every other operation.
	sourceParent.children.Remove(sn)
	targetParent.children.Insert(tn, sourceNode)
	sourceNode.parent = targetParent

	releaseWriteChainUntil(sourceParent, lcp)
	releaseWriteChainUntil(targetParent, lcp)
	releaseWriteAncestors(lcp)

	t.log.WithField("source", source).WithField("target", target).Debug("foldertree: move")
	return nil
}
