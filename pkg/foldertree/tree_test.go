package foldertree

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listNames(t *testing.T, tree *Tree, path string) []string {
	t.Helper()
	contents, err := tree.List(path)
	require.NoError(t, err)
	if contents == "" {
		return nil
	}
	names := strings.Split(contents, "\n")
	sort.Strings(names)
	return names
}

func TestBasicCreateAndList(t *testing.T) {
	tree := New()

	require.NoError(t, tree.Create("/a/"))
	require.NoError(t, tree.Create("/b/"))
	require.NoError(t, tree.Create("/a/x/"))

	assert.Equal(t, []string{"a", "b"}, listNames(t, tree, "/"))
	assert.Equal(t, []string{"x"}, listNames(t, tree, "/a/"))
	assert.Equal(t, []string(nil), listNames(t, tree, "/a/x/"))

	_, err := tree.List("/a/x/y/")
	assert.ErrorIs(t, err, ENotFound)
}

func TestCreateErrorCodes(t *testing.T) {
	tree := New()

	assert.ErrorIs(t, tree.Create("/a/b/c/"), ENotFound)

	require.NoError(t, tree.Create("/a/"))
	assert.ErrorIs(t, tree.Create("/a/"), EExists)

	assert.ErrorIs(t, tree.Create("//"), EInvalid)
}

func TestRemoveSemantics(t *testing.T) {
	tree := New()

	require.NoError(t, tree.Create("/a/"))
	require.NoError(t, tree.Create("/a/b/"))

	assert.ErrorIs(t, tree.Remove("/a/"), ENotEmpty)
	assert.NoError(t, tree.Remove("/a/b/"))
	assert.NoError(t, tree.Remove("/a/"))
	assert.ErrorIs(t, tree.Remove("/a/"), ENotFound)
	assert.ErrorIs(t, tree.Remove("/"), EBusy)
}

func TestMoveBasic(t *testing.T) {
	tree := New()

	require.NoError(t, tree.Create("/a/"))
	require.NoError(t, tree.Create("/a/x/"))
	require.NoError(t, tree.Create("/b/"))

	require.NoError(t, tree.Move("/a/x/", "/b/x/"))
	assert.Equal(t, []string(nil), listNames(t, tree, "/a/"))
	assert.Equal(t, []string{"x"}, listNames(t, tree, "/b/"))

	require.NoError(t, tree.Move("/b/x/", "/a/x/"))
	assert.Equal(t, []string{"x"}, listNames(t, tree, "/a/"))
	assert.Equal(t, []string(nil), listNames(t, tree, "/b/"))
}

func TestMoveSuccessorRules(t *testing.T) {
	tree := New()

	require.NoError(t, tree.Create("/a/"))
	require.NoError(t, tree.Create("/a/b/"))

	assert.ErrorIs(t, tree.Move("/a/", "/a/b/c/"), ESuccessor)
	assert.ErrorIs(t, tree.Move("/a/b/", "/a/"), EExists)
	assert.NoError(t, tree.Move("/a/", "/a/"))
	assert.ErrorIs(t, tree.Move("/x/", "/a/"), ENotFound)
}

func TestMoveSelfNonexistent(t *testing.T) {
	tree := New()
	assert.ErrorIs(t, tree.Move("/nope/", "/nope/"), ENotFound)
}

func TestMoveBoundary(t *testing.T) {
	tree := New()
	assert.ErrorIs(t, tree.Move("/", "/a/"), EBusy)
	assert.ErrorIs(t, tree.Move("/a/", "/"), EExists)
}

func TestInvalidPathsTakeNoLocks(t *testing.T) {
	tree := New()
	invalidPaths := []string{"", "//", "/a!/", "/a", "a/", "/a//b/"}
	for _, p := range invalidPaths {
		_, err := tree.List(p)
		assert.ErrorIs(t, err, EInvalid, "path=%q", p)
		assert.ErrorIs(t, tree.Create(p), EInvalid, "path=%q", p)
		assert.ErrorIs(t, tree.Remove(p), EInvalid, "path=%q", p)
		assert.ErrorIs(t, tree.Move(p, "/x/"), EInvalid, "path=%q", p)
		assert.ErrorIs(t, tree.Move("/x/", p), EInvalid, "path=%q", p)
	}
	assert.True(t, tree.Stats().Quiescent())
}

func TestCreateRemoveRoundTrip(t *testing.T) {
	tree := New()
	before := listNames(t, tree, "/")

	require.NoError(t, tree.Create("/fresh/"))
	require.NoError(t, tree.Remove("/fresh/"))

	assert.Equal(t, before, listNames(t, tree, "/"))
	assert.True(t, tree.Stats().Quiescent())
}

func TestMoveRoundTrip(t *testing.T) {
	tree := New()
	require.NoError(t, tree.Create("/a/"))

	require.NoError(t, tree.Move("/a/", "/b/"))
	require.NoError(t, tree.Move("/b/", "/a/"))

	assert.Equal(t, []string{"a"}, listNames(t, tree, "/"))
	assert.True(t, tree.Stats().Quiescent())
}

func TestListIdempotent(t *testing.T) {
	tree := New()
	require.NoError(t, tree.Create("/a/"))
	require.NoError(t, tree.Create("/b/"))

	first := listNames(t, tree, "/")
	second := listNames(t, tree, "/")
	assert.Equal(t, first, second)
}

func TestParentLinkCoherenceAfterMove(t *testing.T) {
	tree := New()
	require.NoError(t, tree.Create("/a/"))
	require.NoError(t, tree.Create("/a/x/"))
	require.NoError(t, tree.Create("/b/"))
	require.NoError(t, tree.Move("/a/x/", "/b/x/"))

	xNode, exists := tree.root.children.Get("b")
	require.True(t, exists)
	movedX, exists := xNode.children.Get("x")
	require.True(t, exists)
	assert.Same(t, xNode, movedX.parent)
}

func TestFreeTearsDownTree(t *testing.T) {
	tree := New()
	require.NoError(t, tree.Create("/a/"))
	require.NoError(t, tree.Create("/a/b/"))
	tree.Free()
	assert.Nil(t, tree.root)
}
