// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package dconfig

// defaultGitConfig mirrors GitConfig::default() in the original git
// handler: target absent (must be supplied by the file), trigger_by
// accepts both git and borg saves, on_unsave defaults to saving
// automatically, and on_recursion is "inherit" at both levels so a
// bare [git] section with no assets/heritage falls through to the
// parent's heritage.on_recursion (or "standalone" at the root).
func defaultGitConfig() *GitConfig {
	return &GitConfig{
		Target: nil,
		Assets: &GitAssets{
			TriggerBy:   []string{"git", "borg"},
			OnUnsave:    OnUnsaveSave,
			OnRecursion: OnRecursionInherit,
		},
		Heritage: &GitHeritage{
			OnRecursion: OnRecursionInherit,
			IgnoreChild: false,
		},
	}
}

// defaultBorgConfig mirrors BorgConfig::default(): trigger_by accepts
// only explicit borg saves, extra excludes are pulled from the
// directory's own .gitignore by default, and on_recursion is
// "inherit" at both levels.
func defaultBorgConfig() *BorgConfig {
	return &BorgConfig{
		Target: nil,
		Assets: &BorgAssets{
			TriggerBy:        []string{"borg"},
			ExtraExcludeMode: []string{"git"},
			OnRecursion:      OnRecursionInherit,
		},
		Heritage: &BorgHeritage{
			OnRecursion: OnRecursionInherit,
			IgnoreChild: false,
		},
	}
}

// gitDefaultConfig mirrors git_default_config(): the config used for a
// directory that has a .git directory but no dionysius.toml of its own.
// It wraps a completed default GitConfig with no trigger or borg
// sections.
func gitDefaultConfig() *DirectoryConfig {
	completed, err := defaultGitConfig().completion(&TargetConfig{Mode: "gitconfig", Target: "."})
	if err != nil {
		// defaultGitConfig is a compile-time constant shape; failing
		// completion here means the default itself is broken.
		panic("dconfig: built-in git default config failed completion: " + err.Error())
	}
	return &DirectoryConfig{Git: completed}
}
