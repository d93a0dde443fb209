// Package vers provides semantic versioning utilities for Git repositories.
//
// This file contains code adapted from pulumictl (https://github.com/pulumi/pulumictl)
// which is licensed under the Apache License 2.0. See NOTICE file for full attribution.
package vers

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Options configures a single version-calculation run.
type Options struct {
	// Repository is the Git repository to analyze.
	Repository *git.Repository

	// Commitish specifies which commit to treat as HEAD (default "HEAD").
	Commitish plumbing.Revision

	// Configuration controls version synthesis. Zero value is patch
	// auto-increment with no defaults populated; most callers should
	// start from DefaultConfiguration() and override fields.
	Configuration Configuration
}

// Result is the outcome of a single Calculate call.
type Result struct {
	Version  semver.Version
	Decision BaseDecision
	Warnings []Warning
}

// Calculate builds the tag index, walks history from HEAD, selects a
// base, and synthesizes the final version.
func Calculate(opts Options) (*Result, error) {
	if opts.Repository == nil {
		return nil, fmt.Errorf("%w: repository is required", ErrNoRepository)
	}
	if opts.Commitish == "" {
		opts.Commitish = "HEAD"
	}
	if err := opts.Configuration.Validate(); err != nil {
		return nil, err
	}

	repo, err := newGoGitRepository(opts.Repository, opts.Commitish)
	if err != nil {
		return nil, err
	}

	diag := &Diagnostics{}

	idx, err := BuildTagIndex(repo, opts.Configuration.TagPrefix, diag)
	if err != nil {
		return nil, err
	}

	head, err := repo.ResolveHead()
	if err != nil {
		return nil, fmt.Errorf("%w: resolving HEAD: %v", ErrRepositoryRead, err)
	}

	walker := NewHistoryWalker(repo, head)
	decision, err := SelectBase(walker, idx, diag)
	if err != nil {
		return nil, err
	}

	version, err := Synthesize(decision, opts.Configuration)
	if err != nil {
		return nil, err
	}

	return &Result{Version: version, Decision: decision, Warnings: diag.Warnings}, nil
}
