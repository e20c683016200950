// Package childset implements the child-name to child-node map used
// by each folder: get, insert, remove, size and iteration. It is a
// thin, deliberately non-thread-safe wrapper over a Go map; callers
// hold the owning node's lock.
package childset

import "strings"

// Set maps a folder's direct child names to an opaque value type V,
// the same node type owning the set so callers keep the generic
// instantiation local to the foldertree package.
type Set[V any] struct {
	m map[string]V
}

// New returns an empty Set.
func New[V any]() *Set[V] {
	return &Set[V]{m: make(map[string]V)}
}

// Get returns the child named name, if present.
func (s *Set[V]) Get(name string) (V, bool) {
	v, ok := s.m[name]
	return v, ok
}

// Insert adds or replaces the child named name.
func (s *Set[V]) Insert(name string, v V) {
	s.m[name] = v
}

// Remove deletes the child named name, if present.
func (s *Set[V]) Remove(name string) {
	delete(s.m, name)
}

// Len returns the number of direct children.
func (s *Set[V]) Len() int {
	return len(s.m)
}

// Each calls fn once per child, in unspecified order - callers must
// not rely on any particular ordering of a folder's children.
func (s *Set[V]) Each(fn func(name string, v V)) {
	for name, v := range s.m {
		fn(name, v)
	}
}

// ContentsString renders the child names as a newline-joined string;
// the delimiter is fixed as "\n".
func (s *Set[V]) ContentsString() string {
	names := make([]string, 0, len(s.m))
	for name := range s.m {
		names = append(names, name)
	}
	return strings.Join(names, "\n")
}
