// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package dconfig models a per-directory dionysius.toml file: its three
// handler sections (trigger, git, borg), each carrying an own-task
// "assets" block and a descendant-influencing "heritage" block, plus
// the parsing, completion, and YAML debug-dump support around it.
//
// The original Rust implementation modeled DionysiusConfig as a
// reflection-driven struct (bevy_reflect's Struct trait) so it could
// iterate "whichever handler fields are present" generically. Go has no
// equivalent of that reflection without resorting to the reflect
// package, and the fields here are few and fixed, so DirectoryConfig
// instead exposes a small ordered registry (PushTaskConfigs) built from
// plain named fields — the "fixed registry... no runtime reflection
// required" replacement.
package dconfig

// OnRecursion is the five-valued policy governing how a task's own
// on_recursion behavior, and a handler's inherited on_recursion
// behavior, are resolved during traversal.
type OnRecursion string

const (
	OnRecursionSkip       OnRecursion = "skip"
	OnRecursionInclude    OnRecursion = "include"
	OnRecursionStandalone OnRecursion = "standalone"
	OnRecursionDouble     OnRecursion = "double"
	OnRecursionInherit    OnRecursion = "inherit"
)

// OnUnsave governs what the git driver does when it finds a dirty
// working tree or index at save time.
type OnUnsave string

const (
	OnUnsaveSave       OnUnsave = "save"
	OnUnsaveIgnore     OnUnsave = "ignore"
	OnUnsaveAsk        OnUnsave = "ask"
	OnUnsaveInterrupt  OnUnsave = "interrupt"
)

// TargetConfig names where a handler's task points: a filesystem path,
// interpreted according to Mode.
type TargetConfig struct {
	Mode   string `toml:"mode" yaml:"mode"`
	Target string `toml:"target" yaml:"target"`
}

// GitAssets is the git handler's own-task behavior: which triggers
// create a GitSaveTask here, and what to do about an unsaved working
// tree.
type GitAssets struct {
	TriggerBy   []string    `toml:"trigger_by" yaml:"trigger_by"`
	OnUnsave    OnUnsave    `toml:"on_unsave" yaml:"on_unsave"`
	OnRecursion OnRecursion `toml:"on_recursion" yaml:"on_recursion"`
}

// GitHeritage is the git handler's descendant-influencing behavior.
// Only OnRecursion is ever inherited by a child's "inherit" value.
// IgnoreChild is parsed and completed with a default, but collection
// does not consult it.
type GitHeritage struct {
	OnRecursion OnRecursion `toml:"on_recursion" yaml:"on_recursion"`
	IgnoreChild bool        `toml:"ignore_child" yaml:"ignore_child"`
}

// GitConfig is the git handler section of a dionysius.toml.
type GitConfig struct {
	Target   *TargetConfig `toml:"target" yaml:"target"`
	Assets   *GitAssets    `toml:"assets" yaml:"assets"`
	Heritage *GitHeritage  `toml:"heritage" yaml:"heritage"`
}

// BorgAssets is the borg handler's own-task behavior.
type BorgAssets struct {
	TriggerBy        []string    `toml:"trigger_by" yaml:"trigger_by"`
	ExtraExcludeMode []string    `toml:"extra_exclude_mode" yaml:"extra_exclude_mode"`
	OnRecursion      OnRecursion `toml:"on_recursion" yaml:"on_recursion"`
}

// BorgHeritage is the borg handler's descendant-influencing behavior.
// ExcludeList is parsed but has no effect on exclusion; collection
// logs a warning for each dionysius.toml that sets it, see DESIGN.md.
type BorgHeritage struct {
	ExcludeList []string    `toml:"exclude_list" yaml:"exclude_list"`
	OnRecursion OnRecursion `toml:"on_recursion" yaml:"on_recursion"`
	IgnoreChild bool        `toml:"ignore_child" yaml:"ignore_child"`
}

// BorgConfig is the borg handler section of a dionysius.toml.
type BorgConfig struct {
	Target   *TargetConfig `toml:"target" yaml:"target"`
	Assets   *BorgAssets   `toml:"assets" yaml:"assets"`
	Heritage *BorgHeritage `toml:"heritage" yaml:"heritage"`
}

// TriggerAssets carries only the recursion policy; trigger tasks have
// no other own-task behavior.
type TriggerAssets struct {
	OnRecursion OnRecursion `toml:"on_recursion" yaml:"on_recursion"`
}

// TriggerConfig is the trigger handler section. Unlike git and borg,
// trigger has no heritage section and never resolves "inherit" against
// a parent: a trigger section's on_recursion is resolved against the
// fixed root default, so "inherit" becomes standalone.
type TriggerConfig struct {
	Assets *TriggerAssets `toml:"assets" yaml:"assets"`
}

// DirectoryConfig is the parsed content of one dionysius.toml file. A
// directory that has a .git directory but no dionysius.toml gets the
// config returned by GitDefault instead, mirroring the original's
// git_default_config fallback.
type DirectoryConfig struct {
	Trigger *TriggerConfig `toml:"trigger" yaml:"trigger,omitempty"`
	Git     *GitConfig     `toml:"git" yaml:"git,omitempty"`
	Borg    *BorgConfig    `toml:"borg" yaml:"borg,omitempty"`
}

// HandlerName identifies one of the three handler sections, in the
// fixed iteration order trigger, git, borg.
type HandlerName string

const (
	HandlerTrigger HandlerName = "trigger"
	HandlerGit     HandlerName = "git"
	HandlerBorg    HandlerName = "borg"
)

// AllHandlers is the fixed dispatch order the collection engine walks
// every directory's sections in, per spec: trigger, git, borg.
var AllHandlers = []HandlerName{HandlerTrigger, HandlerGit, HandlerBorg}

// PushTaskConfigs returns the present handler sections in fixed order,
// replacing the original's bevy_reflect-driven
// DionysiusConfig::push_task_configs.
func (c *DirectoryConfig) PushTaskConfigs() []HandlerName {
	var names []HandlerName
	if c.Trigger != nil {
		names = append(names, HandlerTrigger)
	}
	if c.Git != nil {
		names = append(names, HandlerGit)
	}
	if c.Borg != nil {
		names = append(names, HandlerBorg)
	}
	return names
}

// AcceptedTrigger returns the run ids (task_type_id values) for which
// this directory's own section for handler name is processed: the
// section's assets.trigger_by for git and borg. Trigger sections
// themselves accept either "git" or "borg".
func (c *DirectoryConfig) AcceptedTrigger(name HandlerName) []string {
	switch name {
	case HandlerGit:
		if c.Git != nil && c.Git.Assets != nil {
			return c.Git.Assets.TriggerBy
		}
	case HandlerBorg:
		if c.Borg != nil && c.Borg.Assets != nil {
			return c.Borg.Assets.TriggerBy
		}
	case HandlerTrigger:
		return []string{"git", "borg"}
	}
	return nil
}
