// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package collect

import "sync"

// excludeList is a shared, mutex-protected, append-only accumulator of
// directory paths that registered themselves as excluded from the
// nearest enclosing task of one handler lineage. A directory's
// traversal goroutines for its subtree all hold a reference to the
// same excludeList, and the list is frozen (via Snapshot) only once,
// at the moment the enclosing task is actually built.
type excludeList struct {
	mu    sync.Mutex
	paths []string
}

func newExcludeList() *excludeList {
	return &excludeList{}
}

// Add registers path as excluded. Safe for concurrent use by sibling
// subdirectory goroutines.
func (e *excludeList) Add(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paths = append(e.paths, path)
}

// Snapshot returns a copy of the accumulated paths. Called once, after
// every descendant goroutine that could still call Add has joined.
func (e *excludeList) Snapshot() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.paths))
	copy(out, e.paths)
	return out
}
