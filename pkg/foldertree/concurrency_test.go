package foldertree

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedPathAlphabet builds a small fixed path alphabet: a handful of
// top-level folders plus a couple of grandchildren under each, so
// Move/Create/Remove have interesting ancestor relationships to
// collide on.
func fixedPathAlphabet() []string {
	var paths []string
	tops := []string{"d0", "d1", "d2", "d3", "d4", "d5", "d6", "d7", "d8", "d9"}
	for _, top := range tops {
		paths = append(paths, "/"+top+"/")
	}
	for _, top := range tops {
		for i := 0; i < 4 && len(paths) < 50; i++ {
			paths = append(paths, "/"+top+"/c"+string(rune('0'+i))+"/")
		}
	}
	return paths[:50]
}

type opLog struct {
	seq    int64
	kind   string // "create", "remove", "move", "list"
	a, b   string
	result error // nil means SUCCESS
}

// dumpTree recursively lists every folder reachable from path and
// returns a canonical path -> sorted children-name map. It assumes no
// concurrent mutation is in flight, which the stress test's caller
// guarantees by dumping only after all workers have finished.
func dumpTree(t *testing.T, tree *Tree, path string, out map[string][]string) {
	t.Helper()
	contents, err := tree.List(path)
	require.NoError(t, err)
	var names []string
	if contents != "" {
		names = strings.Split(contents, "\n")
	}
	sort.Strings(names)
	out[path] = names
	for _, name := range names {
		dumpTree(t, tree, path+name+"/", out)
	}
}

func TestConcurrencyStressLinearizes(t *testing.T) {
	if testing.Short() {
		t.Skip("stress test skipped in -short mode")
	}

	alphabet := fixedPathAlphabet()
	tree := New()

	const workers = 12
	const duration = 300 * time.Millisecond

	var seqCounter int64
	var logs []opLog
	var logsMu sync.Mutex

	record := func(kind, a, b string, result error) {
		seq := atomic.AddInt64(&seqCounter, 1)
		logsMu.Lock()
		logs = append(logs, opLog{seq: seq, kind: kind, a: a, b: b, result: result})
		logsMu.Unlock()
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(seed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
				}
				a := alphabet[r.Intn(len(alphabet))]
				switch r.Intn(4) {
				case 0:
					record("create", a, "", tree.Create(a))
				case 1:
					record("remove", a, "", tree.Remove(a))
				case 2:
					b := alphabet[r.Intn(len(alphabet))]
					record("move", a, b, tree.Move(a, b))
				case 3:
					_, err := tree.List(a)
					record("list", a, "", err)
				}
			}
		}(int64(w) + 1)
	}

	time.Sleep(duration)
	close(stop)
	wg.Wait()

	// No operation may return anything outside the documented
	// taxonomy; Code values satisfy error, and nil denotes SUCCESS.
	for _, l := range logs {
		if l.result == nil {
			continue
		}
		_, ok := l.result.(Code)
		assert.True(t, ok, "unexpected error type from %s(%q,%q): %v", l.kind, l.a, l.b, l.result)
	}

	// Counter quiescence: once every worker has returned, every
	// node's lock state must be back at rest.
	assert.True(t, tree.Stats().Quiescent())

	// Replay the recorded completion order against a fresh oracle and
	// check each operation's result is reproducible given that order,
	// and that the final tree shapes agree - our witness that some
	// sequential interleaving of the concurrent run produced the
	// observed outcomes.
	sort.Slice(logs, func(i, j int) bool { return logs[i].seq < logs[j].seq })
	oracle := New()
	for _, l := range logs {
		var got error
		switch l.kind {
		case "create":
			got = oracle.Create(l.a)
		case "remove":
			got = oracle.Remove(l.a)
		case "move":
			got = oracle.Move(l.a, l.b)
		case "list":
			_, got = oracle.List(l.a)
		}
		assert.Equal(t, l.result, got, "non-linearizable: %s(%q,%q) expected %v got %v", l.kind, l.a, l.b, l.result, got)
	}

	actual := map[string][]string{}
	dumpTree(t, tree, "/", actual)
	expected := map[string][]string{}
	dumpTree(t, oracle, "/", expected)
	assert.Equal(t, expected, actual)
}
