// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package dconfig

import "fmt"

// completion fills in any missing scalar fields of g from
// defaultGitConfig, using target (the section's own [target] table, or
// nil if absent) to validate the one field that has no handler
// default: the save destination.
func (g *GitConfig) completion(target *TargetConfig) (*GitConfig, error) {
	result := &GitConfig{Target: target}

	if target == nil {
		return nil, fmt.Errorf("dconfig: git: target config is required")
	}
	if target.Target == "" {
		return nil, fmt.Errorf("dconfig: git: target cannot be empty")
	}
	if target.Mode != "gitconfig" && target.Mode != "path" {
		return nil, fmt.Errorf("dconfig: git: invalid target mode %q, must be \"gitconfig\" or \"path\"", target.Mode)
	}

	def := defaultGitConfigAssetsHeritage()

	assets := g.Assets
	if assets == nil {
		a := *def.Assets
		assets = &a
	} else {
		a := *assets
		if a.TriggerBy == nil {
			a.TriggerBy = def.Assets.TriggerBy
		}
		if a.OnUnsave == "" {
			a.OnUnsave = def.Assets.OnUnsave
		}
		if a.OnRecursion == "" {
			a.OnRecursion = def.Assets.OnRecursion
		}
		assets = &a
	}
	result.Assets = assets

	heritage := g.Heritage
	if heritage == nil {
		h := *def.Heritage
		heritage = &h
	} else {
		h := *heritage
		if h.OnRecursion == "" {
			h.OnRecursion = def.Heritage.OnRecursion
		}
		heritage = &h
	}
	result.Heritage = heritage

	return result, nil
}

// defaultGitConfigAssetsHeritage returns defaultGitConfig without
// forcing target resolution, used purely as a source of per-field
// fallbacks during completion.
func defaultGitConfigAssetsHeritage() *GitConfig {
	return defaultGitConfig()
}

func (b *BorgConfig) completion(target *TargetConfig) (*BorgConfig, error) {
	result := &BorgConfig{Target: target}

	if target == nil {
		return nil, fmt.Errorf("dconfig: borg: target config is required")
	}
	if target.Target == "" {
		return nil, fmt.Errorf("dconfig: borg: target cannot be empty")
	}
	if target.Mode != "path" {
		return nil, fmt.Errorf("dconfig: borg: invalid target mode %q, must be \"path\"", target.Mode)
	}

	def := defaultBorgConfig()

	assets := b.Assets
	if assets == nil {
		a := *def.Assets
		assets = &a
	} else {
		a := *assets
		if a.TriggerBy == nil {
			a.TriggerBy = def.Assets.TriggerBy
		}
		if a.ExtraExcludeMode == nil {
			a.ExtraExcludeMode = def.Assets.ExtraExcludeMode
		}
		if a.OnRecursion == "" {
			a.OnRecursion = def.Assets.OnRecursion
		}
		assets = &a
	}
	result.Assets = assets

	heritage := b.Heritage
	if heritage == nil {
		h := *def.Heritage
		heritage = &h
	} else {
		h := *heritage
		if h.OnRecursion == "" {
			h.OnRecursion = def.Heritage.OnRecursion
		}
		heritage = &h
	}
	result.Heritage = heritage

	return result, nil
}

func (t *TriggerConfig) completion() (*TriggerConfig, error) {
	result := &TriggerConfig{}
	if t.Assets == nil {
		result.Assets = &TriggerAssets{OnRecursion: OnRecursionStandalone}
		return result, nil
	}
	a := *t.Assets
	if a.OnRecursion == "" {
		a.OnRecursion = OnRecursionStandalone
	}
	result.Assets = &a
	return result, nil
}

// Complete returns a copy of c with every present handler section
// filled in with its defaults, returning an error naming the first
// section that could not be completed (most commonly, a missing or
// invalid [<handler>.target]).
func (c *DirectoryConfig) Complete() (*DirectoryConfig, error) {
	result := &DirectoryConfig{}

	if c.Trigger != nil {
		t, err := c.Trigger.completion()
		if err != nil {
			return nil, fmt.Errorf("trigger: %w", err)
		}
		result.Trigger = t
	}
	if c.Git != nil {
		g, err := c.Git.completion(c.Git.Target)
		if err != nil {
			return nil, fmt.Errorf("git: %w", err)
		}
		result.Git = g
	}
	if c.Borg != nil {
		b, err := c.Borg.completion(c.Borg.Target)
		if err != nil {
			return nil, fmt.Errorf("borg: %w", err)
		}
		result.Borg = b
	}
	return result, nil
}
