// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package drivers is the execution boundary (component C7): the part
// of dionysius that actually shells out to git and borg. Everything
// above this package (tasks, collection, inheritance) works with plain
// values; only this package touches a subprocess.
//
// The ahead/behind and dirty-worktree detection here is grounded on
// pkg/repository/client.go's GetInfo/GetStatus/parseAheadBehind in the
// teacher codebase, reimplemented directly against
// internal/gitcmd.Executor rather than the teacher's broader
// Repository/Info/Status/Logger interface set, which carries far more
// surface (remotes, stash, describe, local branches) than the git save
// state machine in this repository needs.
package drivers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/archmagece/dionysius-go/internal/diag"
	dioerrors "github.com/archmagece/dionysius-go/internal/errors"
	"github.com/archmagece/dionysius-go/internal/gitcmd"
	"github.com/archmagece/dionysius-go/pkg/dconfig"
)

// RepoReport is the result of inspecting one repository's save state:
// whether its working tree or index carry uncommitted changes, and how
// far ahead/behind it is of its upstream.
type RepoReport struct {
	WorkingDirty bool
	IndexDirty   bool
	HasUpstream  bool
	AheadBy      int
	BehindBy     int
	StashCount   int
}

// Diverged reports whether the repo is both ahead and behind its
// upstream at once.
func (r RepoReport) Diverged() bool {
	return r.AheadBy > 0 && r.BehindBy > 0
}

// Confirmer asks a yes/no question interactively, used for
// on_unsave=ask. The CLI wires this to a huh.Confirm prompt; tests and
// non-interactive runs can wire a canned answer.
type Confirmer func(prompt string) (bool, error)

// GitDriver is the boundary pkg/tasks.GitSaveTask executes against.
type GitDriver interface {
	Inspect(ctx context.Context, repoPath string) (RepoReport, error)
	Save(ctx context.Context, repoPath string, onUnsave dconfig.OnUnsave, excludeOpts []string, capture *[]string) error
}

// GitExecutor implements GitDriver over a real git binary via
// internal/gitcmd.Executor.
type GitExecutor struct {
	exec    *gitcmd.Executor
	confirm Confirmer
}

// NewGitExecutor builds a GitExecutor. confirm may be nil if
// on_unsave=ask is never used by the caller; Save returns an error if
// it is needed but confirm is nil.
func NewGitExecutor(exec *gitcmd.Executor, confirm Confirmer) *GitExecutor {
	if exec == nil {
		exec = gitcmd.NewExecutor()
	}
	return &GitExecutor{exec: exec, confirm: confirm}
}

// Inspect reports a repository's dirty/ahead/behind state.
func (g *GitExecutor) Inspect(ctx context.Context, repoPath string) (RepoReport, error) {
	if !g.exec.IsGitRepository(ctx, repoPath) {
		return RepoReport{}, dioerrors.Wrap(fmt.Errorf("%s", repoPath), dioerrors.ErrNotGitRepository)
	}

	var report RepoReport

	status, err := g.exec.RunLines(ctx, repoPath, "status", "--porcelain")
	if err != nil {
		return RepoReport{}, err
	}
	for _, line := range status {
		if len(line) < 2 {
			continue
		}
		if line[0] != ' ' && line[0] != '?' {
			report.IndexDirty = true
		}
		if line[1] != ' ' {
			report.WorkingDirty = true
		}
	}

	if upstream, err := g.exec.RunOutput(ctx, repoPath, "rev-parse", "--abbrev-ref", "@{upstream}"); err == nil && upstream != "" {
		report.HasUpstream = true
		aheadBehind, err := g.exec.RunOutput(ctx, repoPath, "rev-list", "--left-right", "--count", "HEAD...@{upstream}")
		if err != nil {
			return RepoReport{}, err
		}
		ahead, behind, err := parseAheadBehind(aheadBehind)
		if err != nil {
			return RepoReport{}, err
		}
		report.AheadBy, report.BehindBy = ahead, behind
	}

	if stashes, err := g.exec.RunLines(ctx, repoPath, "stash", "list"); err == nil {
		report.StashCount = len(stashes)
	}

	return report, nil
}

// parseAheadBehind parses the tab-separated "AHEAD\tBEHIND" output of
// `git rev-list --left-right --count`, mirroring
// pkg/repository/client.go's parseAheadBehind: empty output means no
// upstream comparison is available and both counts are zero.
func parseAheadBehind(output string) (ahead, behind int, err error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return 0, 0, nil
	}
	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("drivers: malformed ahead/behind output %q", output)
	}
	ahead, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("drivers: parsing ahead count: %w", err)
	}
	behind, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("drivers: parsing behind count: %w", err)
	}
	return ahead, behind, nil
}

// Save runs the git save state machine:
//
//	INIT -> !tree_clean?  dispatch on onUnsave -> save: add
//	     -> !index_clean? dispatch on onUnsave (same dispatch) -> save: commit
//	     -> fetch upstream
//	     -> compute ahead/behind
//	     -> push, or report if diverged/behind, or no-op if already
//	        up to date
//	     -> DONE
//
// ignore and a declined ask only skip their own add/commit step; only
// interrupt aborts the whole save, since the original autosave_and_push
// always falls through to fetch/push regardless of how the dirty
// working tree or index was handled.
func (g *GitExecutor) Save(ctx context.Context, repoPath string, onUnsave dconfig.OnUnsave, excludeOpts []string, capture *[]string) error {
	report, err := g.Inspect(ctx, repoPath)
	if err != nil {
		return err
	}

	if report.WorkingDirty {
		proceed, err := g.handleDirty(repoPath, onUnsave, "working directory")
		if err != nil {
			return err
		}
		if proceed {
			addArgs := append([]string{"add", "-A"}, excludeOpts...)
			if err := g.run(ctx, repoPath, capture, addArgs...); err != nil {
				return dioerrors.Wrap(err, dioerrors.ErrTaskExecution)
			}
			// Staging changed the index; re-check it for the commit step.
			if capture != nil {
				report.IndexDirty = true
			} else if refreshed, err := g.Inspect(ctx, repoPath); err == nil {
				report.IndexDirty = refreshed.IndexDirty
			}
		}
	}

	if report.IndexDirty {
		proceed, err := g.handleDirty(repoPath, onUnsave, "index")
		if err != nil {
			return err
		}
		if proceed {
			if err := g.run(ctx, repoPath, capture, "commit", "-m", "dionysius: automated save"); err != nil {
				return dioerrors.Wrap(err, dioerrors.ErrTaskExecution)
			}
		}
	}

	if !report.HasUpstream {
		return nil
	}

	if err := g.run(ctx, repoPath, capture, "fetch"); err != nil {
		return dioerrors.Wrap(err, dioerrors.ErrTaskExecution)
	}

	refreshed, err := g.Inspect(ctx, repoPath)
	if err != nil {
		return err
	}

	switch {
	case refreshed.Diverged():
		return nil // reported via preview; pushing would require a merge decision out of scope.
	case refreshed.BehindBy > 0:
		return nil // caller is behind upstream; surfaced via preview, not auto-merged.
	case refreshed.AheadBy > 0:
		return g.run(ctx, repoPath, capture, "push")
	default:
		return nil // up to date.
	}
}

// handleDirty reports whether the caller should proceed with its own
// save step (add, or commit) for the given dirty part of the
// repository. Only interrupt returns an error; ignore and a declined
// ask both return (false, nil) so Save falls through to fetch/push
// instead of aborting.
func (g *GitExecutor) handleDirty(repoPath string, onUnsave dconfig.OnUnsave, what string) (bool, error) {
	switch onUnsave {
	case dconfig.OnUnsaveSave:
		return true, nil
	case dconfig.OnUnsaveIgnore:
		diag.Warn("leaving unsaved changes, continuing to fetch/push", "dir", repoPath, "what", what)
		return false, nil
	case dconfig.OnUnsaveInterrupt:
		return false, dioerrors.Wrap(fmt.Errorf("%s", repoPath), dioerrors.ErrDirtyWorkingTree)
	case dconfig.OnUnsaveAsk:
		if g.confirm == nil {
			return false, fmt.Errorf("drivers: on_unsave=ask requires an interactive confirmer")
		}
		ok, err := g.confirm(fmt.Sprintf("%s has uncommitted changes in its %s. Save them?", repoPath, what))
		if err != nil {
			return false, err
		}
		if !ok {
			diag.Warn("declined saving, continuing to fetch/push", "dir", repoPath, "what", what)
		}
		return ok, nil
	default:
		return false, fmt.Errorf("drivers: unknown on_unsave value %q: %w", onUnsave, dioerrors.ErrInternalInvariant)
	}
}

func (g *GitExecutor) run(ctx context.Context, repoPath string, capture *[]string, args ...string) error {
	if capture != nil {
		*capture = append(*capture, "git "+strings.Join(args, " "))
		return nil
	}
	_, err := g.exec.RunOutput(ctx, repoPath, args...)
	return err
}
