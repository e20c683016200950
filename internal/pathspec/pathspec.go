// Package pathspec implements folder-path syntax and manipulation:
// IsValid, Split and SplitParent. Every folder path is a nonempty
// string of the form "/(component/)*", always beginning and ending
// with a slash; the root is "/".
package pathspec

import "strings"

// MaxFolderNameLength bounds a single path component's length by
// default; internal/config allows overriding it at tree construction
// time.
const MaxFolderNameLength = 255

// Root is the path denoting the tree's root folder.
const Root = "/"

func isValidComponent(c string, maxLen int) bool {
	if len(c) == 0 || len(c) > maxLen {
		return false
	}
	for _, r := range c {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

// IsValid reports whether path is a syntactically well-formed folder
// path: "/" alone, or "/" followed by one or more "component/"
// segments, each a bounded-length identifier. maxLen bounds each
// component's length; pass pathspec.MaxFolderNameLength for the
// default.
func IsValid(path string, maxLen int) bool {
	if path == "" || path[0] != '/' || path[len(path)-1] != '/' {
		return false
	}
	if path == Root {
		return true
	}
	trimmed := path[1 : len(path)-1]
	for _, c := range strings.Split(trimmed, "/") {
		if !isValidComponent(c, maxLen) {
			return false
		}
	}
	return true
}

// Split returns the first path component and the remainder of path,
// which begins with "/". If path is "/", rest is "" and ok is false:
// the root has no first component to split off.
func Split(path string) (first, rest string, ok bool) {
	if path == Root {
		return "", "", false
	}
	trimmed := path[1:] // drop the leading slash
	idx := strings.IndexByte(trimmed, '/')
	// idx cannot be -1 for a valid path: every component is
	// slash-terminated.
	first = trimmed[:idx]
	rest = trimmed[idx:] // keeps the leading "/"
	return first, rest, true
}

// SplitParent returns the parent path and the last component of
// path. ok is false iff path is "/", which has no parent.
func SplitParent(path string) (parent, last string, ok bool) {
	if path == Root {
		return "", "", false
	}
	trimmed := path[1 : len(path)-1] // drop leading and trailing slash
	idx := strings.LastIndexByte(trimmed, '/')
	if idx < 0 {
		return Root, trimmed, true
	}
	return "/" + trimmed[:idx+1], trimmed[idx+1:], true
}

// IsStrictPrefix reports whether ancestor is a strict path-prefix of
// path - i.e. whether path names a node somewhere within ancestor's
// subtree, at a non-root depth beyond ancestor itself. Used by Move's
// fast-fail successor check and by its aliasing cases.
func IsStrictPrefix(ancestor, path string) bool {
	if ancestor == path {
		return false
	}
	return strings.HasPrefix(path, ancestor)
}

// LongestCommonPrefix returns the longest common path-prefix of a and
// b, expressed as a path (so it always ends in "/" and is a valid
// ancestor path of both, down to the shared root).
func LongestCommonPrefix(a, b string) string {
	i := 0
	shortest := a
	if len(b) < len(a) {
		shortest = b
	}
	for i < len(shortest) && a[i] == b[i] {
		i++
	}
	common := a[:i]
	// Back off to the last complete component boundary: a common
	// prefix must end right after a "/".
	if idx := strings.LastIndexByte(common, '/'); idx >= 0 {
		common = common[:idx+1]
	} else {
		common = Root
	}
	if common == "" {
		common = Root
	}
	return common
}

// RelativeTo returns the suffix of path that remains after removing
// the leading prefix, which must be a valid ancestor path of path
// (including path == prefix, in which case the relative path is
// "/", meaning "no further descent needed").
func RelativeTo(prefix, path string) string {
	if prefix == Root {
		return path
	}
	return Root + strings.TrimPrefix(path, prefix)
}
