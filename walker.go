// Package vers provides semantic versioning utilities for Git repositories.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package vers

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// WalkStep is a single (commit, depth) pair emitted by HistoryWalker.
// depth is the number of edges from HEAD along the walker's traversal.
type WalkStep struct {
	Commit plumbing.Hash
	Depth  uint64
}

// HistoryWalker produces a lazy, pull-driven breadth-first traversal of a
// commit's ancestry, first-parent biased. It holds its own queue and
// visited set; nothing about it is safe for concurrent use, nor does it
// need to be. The core is single-threaded throughout.
type HistoryWalker struct {
	repo    Repository
	queue   []WalkStep
	visited map[plumbing.Hash]bool
	shallow bool
}

// NewHistoryWalker starts a walk at head, depth 0.
func NewHistoryWalker(repo Repository, head plumbing.Hash) *HistoryWalker {
	return &HistoryWalker{
		repo:    repo,
		queue:   []WalkStep{{Commit: head, Depth: 0}},
		visited: map[plumbing.Hash]bool{head: true},
	}
}

// Next pulls the next step, enqueuing its parents (first parent first) for
// later emission. ok is false once the walk is exhausted; the consumer is
// free to stop pulling earlier than that.
func (w *HistoryWalker) Next() (WalkStep, bool, error) {
	if len(w.queue) == 0 {
		return WalkStep{}, false, nil
	}

	step := w.queue[0]
	w.queue = w.queue[1:]

	boundary, err := w.repo.IsShallowBoundary(step.Commit)
	if err != nil {
		return WalkStep{}, false, fmt.Errorf("%w: checking shallow boundary: %v", ErrRepositoryRead, err)
	}
	if boundary {
		w.shallow = true
		return step, true, nil
	}

	parents, err := w.repo.Parents(step.Commit)
	if err != nil {
		return WalkStep{}, false, fmt.Errorf("%w: reading parents of %s: %v", ErrRepositoryRead, step.Commit, err)
	}
	for _, parent := range parents {
		if w.visited[parent] {
			continue
		}
		w.visited[parent] = true
		w.queue = append(w.queue, WalkStep{Commit: parent, Depth: step.Depth + 1})
	}

	return step, true, nil
}

// Shallow reports whether the walk encountered a shallow boundary. Only
// meaningful after the walk has been driven to exhaustion (or at least
// past the boundary commit); a consumer that stops early because it found
// its answer before reaching a shallow commit will see false even on a
// shallow clone. That is correct: the truncation never affected the
// result.
func (w *HistoryWalker) Shallow() bool {
	return w.shallow
}
