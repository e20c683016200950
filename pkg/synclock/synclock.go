// Package synclock implements the per-node reader/writer/subtree
// synchronization primitive that the folder tree is built on.
//
// A Lock guards a single tree node. Readers may hold it concurrently;
// a writer excludes all readers and the other writer. A third
// discipline, SubtreeWait, lets a caller that already holds a write
// lock on the node's parent block until it is the sole participant
// left inside this node's subtree - the barrier that Remove and Move
// use to make sure a folder has no in-flight traversers before it is
// unlinked or relocated.
//
// The three disciplines share one mutex and three condition
// variables, following the same shape as ilock.Mutex: callers loop on
// a condvar re-checking the counters rather than trusting a single
// wakeup, which tolerates both spurious wakeups and the cascade-wake
// pattern described below.
package synclock

import (
	"sync"

	"github.com/pkg/errors"
)

// Lock is the reader/writer/subtree synchronization primitive
// attached to one tree node. The zero value is not usable; construct
// with New.
type Lock struct {
	mu sync.Mutex

	readCV    *sync.Cond
	writeCV   *sync.Cond
	subtreeCV *sync.Cond

	readCount  int
	writeCount int
	readWait   int
	writeWait  int

	// subtreeCount is a coarse ticket: every ReadLock, WriteLock or
	// SubtreeWait call increments it on entry and decrements it on
	// release. It counts participants anywhere in this node's
	// subtree that the path-composition layer has charged to this
	// node (see pkg/foldertree's path lockers).
	subtreeCount int
}

// New returns a freshly initialized Lock with all counters at zero.
func New() *Lock {
	l := &Lock{}
	l.readCV = sync.NewCond(&l.mu)
	l.writeCV = sync.NewCond(&l.mu)
	l.subtreeCV = sync.NewCond(&l.mu)
	return l
}

// errCounterInvariant is raised when a release call observes a
// counter that the acquisition protocol guarantees can never happen.
// It is never expected to fire; it exists so that a violated
// invariant fails loudly instead of corrupting the tree silently.
var errCounterInvariant = errors.New("synclock: counter invariant violated")

// ReadLock blocks until the node can be entered as a reader. A reader
// that arrives while a writer holds the node or is waiting for it
// queues behind that writer (the writer-prefers rule that keeps
// writers from starving); once woken, it proceeds as soon as no writer
// holds the node, even if another writer has queued meanwhile. It
// always increments subtreeCount exactly once per call, matched by
// the following ReadUnlock.
func (l *Lock) ReadLock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.subtreeCount++
	if l.writeCount > 0 || l.writeWait > 0 {
		l.readWait++
		l.readCV.Wait()
		for l.writeCount > 0 {
			l.readCV.Wait()
		}
		l.readWait--
	}
	l.readCount++
	// Cascade wake: if another reader is queued behind us, let it
	// proceed immediately rather than waiting for a writer to
	// broadcast. This is a latency optimization, not a correctness
	// requirement - a broadcast on WriteUnlock would be equally
	// correct.
	l.readCV.Signal()
}

// ReadUnlock releases a reader hold acquired by ReadLock.
func (l *Lock) ReadUnlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.readCount <= 0 {
		panic(errors.Wrap(errCounterInvariant, "ReadUnlock with readCount <= 0"))
	}
	l.readCount--
	if l.readCount == 0 {
		l.writeCV.Signal()
	}

	l.subtreeCount--
	if l.subtreeCount <= 1 {
		l.subtreeCV.Signal()
	}
}

// WriteLock blocks until the node can be entered exclusively: no
// reader and no writer currently hold it.
func (l *Lock) WriteLock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.subtreeCount++
	for l.writeCount > 0 || l.readCount > 0 {
		l.writeWait++
		l.writeCV.Wait()
		l.writeWait--
	}
	l.writeCount = 1
}

// WriteUnlock releases an exclusive hold acquired by WriteLock.
func (l *Lock) WriteUnlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writeCount != 1 {
		panic(errors.Wrap(errCounterInvariant, "WriteUnlock with writeCount != 1"))
	}
	l.writeCount = 0

	if l.readWait > 0 {
		// Start the reader cascade rather than handing the node
		// straight back to a writer.
		l.readCV.Signal()
	} else {
		l.writeCV.Signal()
	}

	l.subtreeCount--
	if l.subtreeCount <= 1 {
		l.subtreeCV.Signal()
	}
}

// SubtreeWait blocks until this node is the sole subtree participant
// - i.e. until subtreeCount drops to 1, counting the waiter itself.
// Callers use this only while holding the write lock on the node's
// parent, which prevents any new traverser from entering this node
// while the wait is outstanding, guaranteeing termination once
// current in-flight operations finish.
func (l *Lock) SubtreeWait() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.subtreeCount++
	for l.subtreeCount > 1 {
		l.subtreeCV.Wait()
	}
	l.subtreeCount--
}

// Snapshot is a point-in-time copy of a Lock's counters, used by
// diagnostics (see foldertree.Tree.Stats) and by tests asserting
// quiescence.
type Snapshot struct {
	ReadCount    int
	WriteCount   int
	ReadWait     int
	WriteWait    int
	SubtreeCount int
}

// Snapshot returns the current counter values under the node mutex.
func (l *Lock) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		ReadCount:    l.readCount,
		WriteCount:   l.writeCount,
		ReadWait:     l.readWait,
		WriteWait:    l.writeWait,
		SubtreeCount: l.subtreeCount,
	}
}

// Quiescent reports whether every counter is at its resting value
// (all zero). It is used by tests to check the global "counter
// quiescence" invariant when no operation is in flight.
func (s Snapshot) Quiescent() bool {
	return s.ReadCount == 0 && s.WriteCount == 0 && s.ReadWait == 0 &&
		s.WriteWait == 0 && s.SubtreeCount == 0
}
