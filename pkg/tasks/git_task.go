// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/archmagece/dionysius-go/pkg/dconfig"
	"github.com/archmagece/dionysius-go/pkg/drivers"
)

// GitSaveTask describes saving (committing/pushing) one git repository,
// with a frozen exclude list gathered from every descendant directory
// that registered itself as excluded during collection.
type GitSaveTask struct {
	RepoPath             string
	ExcludeList          []string
	UnsavedBehavior      dconfig.OnUnsave
	ExtraExcludePatterns []string

	Driver drivers.GitDriver
}

// ExcludePatternOptions builds the git pathspecs
// (":(exclude)<relative-path>") that keep each excluded descendant out
// of `git add`, relative to RepoPath with path separators normalized to
// "/", plus any extra patterns passed in verbatim (from the CLI's -x
// flag).
func (t *GitSaveTask) ExcludePatternOptions() ([]string, error) {
	var opts []string
	for _, excluded := range t.ExcludeList {
		rel, err := filepath.Rel(t.RepoPath, excluded)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, fmt.Errorf("tasks: exclude path %q is not under repo path %q", excluded, t.RepoPath)
		}
		rel = filepath.ToSlash(rel)
		opts = append(opts, fmt.Sprintf(":(exclude)%s", rel))
	}
	opts = append(opts, t.ExtraExcludePatterns...)
	return opts, nil
}

// Preview renders "Git: <flags> file://<abs path>", where flags are the
// colored single-character status flags of drivers.RepoReport.Flags. If
// inspecting the repository fails it renders
// "Git: [?] [?] file://<abs path> (<error>)" instead.
func (t *GitSaveTask) Preview() (string, error) {
	abs, err := filepath.Abs(t.RepoPath)
	if err != nil {
		return "", err
	}
	report, err := t.Driver.Inspect(context.Background(), t.RepoPath)
	if err != nil {
		return fmt.Sprintf("Git: [?] [?] file://%s (%v)", abs, err), nil
	}
	return fmt.Sprintf("Git: %s file://%s", report.Flags(), abs), nil
}

// Execute runs the git save state machine: handle a dirty working tree
// per UnsavedBehavior, fetch upstream, compute ahead/behind, then push
// or report divergence.
func (t *GitSaveTask) Execute(ctx context.Context, capture *[]string) error {
	return t.Driver.Save(ctx, t.RepoPath, t.UnsavedBehavior, t.ExcludePatternOptionsOrPanic(), capture)
}

// ExcludePatternOptionsOrPanic returns ExcludePatternOptions and panics
// if it fails; such a failure is treated as an internal invariant
// violation. The options are not validated when the task is built.
func (t *GitSaveTask) ExcludePatternOptionsOrPanic() []string {
	opts, err := t.ExcludePatternOptions()
	if err != nil {
		// Exclude list membership is fixed at construction time.
		panic("tasks: GitSaveTask exclude options changed after construction: " + err.Error())
	}
	return opts
}
