// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package collect

import (
	"path/filepath"

	"github.com/archmagece/dionysius-go/internal/diag"
	"github.com/archmagece/dionysius-go/pkg/dconfig"
	"github.com/archmagece/dionysius-go/pkg/pattern"
	"github.com/archmagece/dionysius-go/pkg/tasks"
)

// section is the handler-agnostic view of one handler's config block
// in a directory: the two on_recursion fields the resolution algebra
// cares about, plus whatever the task builder needs.
type section struct {
	assetsOnRecursion   dconfig.OnRecursion
	heritageOnRecursion dconfig.OnRecursion
}

// sectionFor extracts the section belonging to handler name, or nil if
// this directory's config does not declare one.
func (e *engine) sectionFor(cfg *dconfig.DirectoryConfig, name dconfig.HandlerName) *section {
	switch name {
	case dconfig.HandlerGit:
		if cfg.Git == nil {
			return nil
		}
		return &section{
			assetsOnRecursion:   cfg.Git.Assets.OnRecursion,
			heritageOnRecursion: cfg.Git.Heritage.OnRecursion,
		}
	case dconfig.HandlerBorg:
		if cfg.Borg == nil {
			return nil
		}
		return &section{
			assetsOnRecursion:   cfg.Borg.Assets.OnRecursion,
			heritageOnRecursion: cfg.Borg.Heritage.OnRecursion,
		}
	case dconfig.HandlerTrigger:
		if cfg.Trigger == nil {
			return nil
		}
		return &section{assetsOnRecursion: cfg.Trigger.Assets.OnRecursion}
	}
	return nil
}

// buildTask constructs the concrete PushTask for dir once the
// collection decision table has said CreateTask, given the frozen
// exclude list gathered from dir's own subtree.
func (e *engine) buildTask(dir string, cfg *dconfig.DirectoryConfig, name dconfig.HandlerName, _ *section, excludes []string) tasks.PushTask {
	switch name {
	case dconfig.HandlerGit:
		return &tasks.GitSaveTask{
			RepoPath:             dir,
			ExcludeList:          excludes,
			UnsavedBehavior:      cfg.Git.Assets.OnUnsave,
			ExtraExcludePatterns: extraGitPatterns(e.opts.ExtraExcludePatterns),
			Driver:               e.opts.GitDriver,
		}
	case dconfig.HandlerBorg:
		return &tasks.BorgCreateTask{
			Source:               dir,
			Target:               cfg.Borg.Target.Target,
			ExcludeList:          excludes,
			ExtraExcludePatterns: e.borgExtraPatterns(dir, cfg),
			Options:              e.opts.BorgOptions,
			Driver:               e.opts.BorgDriver,
		}
	case dconfig.HandlerTrigger:
		return &tasks.TriggerTask{CurrentDir: dir}
	}
	return nil
}

// extraGitPatterns mirrors the reference implementation's handling of
// CLI exclude patterns for the git handler: they are not valid git
// pathspecs in general, but the original renders each BorgPattern via
// its Display impl and appends it as a literal extra pattern string
// anyway, so this does the same rather than silently dropping them.
func extraGitPatterns(cli []pattern.BorgPattern) []string {
	if len(cli) == 0 {
		return nil
	}
	out := make([]string, len(cli))
	for i, p := range cli {
		out[i] = p.String()
	}
	return out
}

// borgExtraPatterns gathers a Borg task's extra exclude patterns:
// CLI-supplied patterns always, plus (when assets.extra_exclude_mode
// includes "git") the directory's own .gitignore converted to borg
// patterns. A .gitignore line that cannot convert (a negated "!" line
// has no borg equivalent) is warned about and dropped.
func (e *engine) borgExtraPatterns(dir string, cfg *dconfig.DirectoryConfig) []pattern.BorgPattern {
	out := append([]pattern.BorgPattern(nil), e.opts.ExtraExcludePatterns...)

	useGitignore := false
	for _, mode := range cfg.Borg.Assets.ExtraExcludeMode {
		if mode == "git" {
			useGitignore = true
			break
		}
	}
	if !useGitignore {
		return out
	}

	giPath := filepath.Join(dir, ".gitignore")
	patterns, err := pattern.ReadGitIgnore(giPath)
	if err != nil {
		return out
	}
	for _, gi := range patterns {
		bp, err := pattern.BorgFromGitIgnore(gi)
		if err != nil {
			diag.Warn("dropping .gitignore line with no borg equivalent", "dir", dir, "pattern", gi.Pattern, "err", err)
			continue
		}
		out = append(out, bp)
	}
	return out
}
