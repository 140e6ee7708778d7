// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"sync"
)

// Separator delimits the segments of a namespace.
const Separator = "."

const escape = `\`

// Store is the shared configuration tree of a configuration session.
//
// A single instance is created by the host before any plugin is processed and
// is mutated in place by merges. Methods are safe for concurrent use; the map
// returned by [Store.Data] is the live tree and is not.
type Store struct {
	mu   sync.RWMutex
	data map[string]any
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string]any)}
}

// NewWithData returns a Store seeded with a deep copy of data.
func NewWithData(data map[string]any) *Store {
	s := New()
	deepMerge(s.data, data)
	return s
}

// Data returns the live configuration tree. Plugins receive this map in the
// configure phase; it reflects every merge applied so far.
func (s *Store) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data
}

// Snapshot returns a deep copy of the tree taken under the read lock.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneValue(s.data).(map[string]any)
}

// Merge deep-merges source into the store and returns the store for chaining.
// Incoming values are copied, so later merges never mutate source.
func (s *Store) Merge(source map[string]any) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	deepMerge(s.data, source)
	return s
}

// Configure merges cfg into the store. It is the store's setter for the
// configurator factory and never fails.
func (s *Store) Configure(cfg map[string]any) error {
	s.Merge(cfg)
	return nil
}

// Fetch resolves a dot-delimited namespace. It reports false when any segment
// is missing or traverses a non-mapping value. An empty namespace addresses
// the whole tree.
func (s *Store) Fetch(namespace string) (any, bool) {
	return s.FetchPath(splitNamespace(namespace)...)
}

// FetchPath resolves a namespace given as separate segments.
func (s *Store) FetchPath(segments ...string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lookup(s.data, segments)
}

// FetchOr resolves namespace and falls back to def when it is absent.
func (s *Store) FetchOr(namespace string, def any) any {
	if value, ok := s.Fetch(namespace); ok {
		return value
	}

	return def
}

// Put stores value at namespace, creating intermediate mappings and
// replacing non-mapping values found on the way.
func (s *Store) Put(namespace string, value any) *Store {
	segments := splitNamespace(namespace)
	if len(segments) == 0 {
		return s
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	put(s.data, segments, value)
	return s
}

// Remove deletes the value at namespace and reports whether it existed.
func (s *Store) Remove(namespace string) bool {
	segments := splitNamespace(namespace)
	if len(segments) == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := lookup(s.data, segments[:len(segments)-1])
	if !ok {
		return false
	}

	parentMap, ok := parent.(map[string]any)
	if !ok {
		return false
	}

	key := segments[len(segments)-1]
	if _, exists := parentMap[key]; !exists {
		return false
	}

	delete(parentMap, key)
	return true
}

// Flatten returns a single-level copy of the tree keyed by full paths.
// Keys are escaped with [EscapeKey] before joining, so a key that contains
// the separator never collides with a nested path. Empty mappings are kept
// as leaves so that [Expand] restores them.
func (s *Store) Flatten() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flat := make(map[string]any)
	flatten(s.data, "", true, flat)
	return flat
}

// Expand is the inverse of [Store.Flatten]: it builds a nested tree from
// escaped paths.
func Expand(flat map[string]any) map[string]any {
	tree := make(map[string]any)
	for path, value := range flat {
		put(tree, SplitPath(path), value)
	}

	return tree
}

// EscapeKey prefixes the separator and the escape character in key with a
// backslash.
func EscapeKey(key string) string {
	if !strings.ContainsAny(key, Separator+escape) {
		return key
	}

	var b strings.Builder
	for _, r := range key {
		if string(r) == Separator || string(r) == escape {
			b.WriteString(escape)
		}
		b.WriteRune(r)
	}

	return b.String()
}

// SplitPath splits a path produced by [Store.Flatten] into unescaped keys.
// It always returns at least one key.
func SplitPath(path string) []string {
	var (
		keys    []string
		current strings.Builder
		escaped bool
	)

	for _, r := range path {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case string(r) == escape:
			escaped = true
		case string(r) == Separator:
			keys = append(keys, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	return append(keys, current.String())
}

// NamespaceView returns the mapping stored under namespace, or nil when the
// namespace is absent or does not hold a mapping. The returned map is live.
func NamespaceView(s *Store, namespace string) map[string]any {
	value, ok := s.Fetch(namespace)
	if !ok {
		return nil
	}

	view, _ := value.(map[string]any)
	return view
}

func splitNamespace(namespace string) []string {
	if namespace == "" {
		return nil
	}

	return strings.Split(namespace, Separator)
}

func lookup(data map[string]any, segments []string) (any, bool) {
	var current any = data
	for _, segment := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

func flatten(data map[string]any, prefix string, root bool, out map[string]any) {
	for key, value := range data {
		path := EscapeKey(key)
		if !root {
			path = prefix + Separator + path
		}

		if nested, ok := value.(map[string]any); ok && len(nested) > 0 {
			flatten(nested, path, false, out)
			continue
		}
		out[path] = cloneValue(value)
	}
}

// put stores a copy of value under segments below data.
func put(data map[string]any, segments []string, value any) {
	current := data
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = cloneValue(value)
}
