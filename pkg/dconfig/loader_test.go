// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package dconfig

import (
	"os"
	"path/filepath"
	"testing"

	dioerrors "github.com/archmagece/dionysius-go/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return dir
}

func TestLoadForDirGitSection(t *testing.T) {
	dir := writeConfig(t, `
[git.target]
mode = "path"
target = "backup-remote"
`)
	cfg, err := LoadForDir(dir)
	if err != nil {
		t.Fatalf("LoadForDir: %v", err)
	}
	if cfg.Git == nil {
		t.Fatal("expected git section")
	}
	if cfg.Git.Assets.OnUnsave != OnUnsaveSave {
		t.Errorf("OnUnsave = %q, want default %q", cfg.Git.Assets.OnUnsave, OnUnsaveSave)
	}
	if len(cfg.Git.Assets.TriggerBy) != 2 {
		t.Errorf("TriggerBy = %v, want 2 defaults", cfg.Git.Assets.TriggerBy)
	}
	if cfg.Git.Heritage.OnRecursion != OnRecursionInherit {
		t.Errorf("Heritage.OnRecursion = %q, want inherit default", cfg.Git.Heritage.OnRecursion)
	}
}

func TestLoadForDirBorgSection(t *testing.T) {
	dir := writeConfig(t, `
[borg.target]
mode = "path"
target = "/mnt/backups/repo"

[borg.assets]
on_recursion = "standalone"
`)
	cfg, err := LoadForDir(dir)
	if err != nil {
		t.Fatalf("LoadForDir: %v", err)
	}
	if cfg.Borg.Assets.OnRecursion != OnRecursionStandalone {
		t.Errorf("OnRecursion = %q, want standalone (explicit, not defaulted)", cfg.Borg.Assets.OnRecursion)
	}
	if len(cfg.Borg.Assets.ExtraExcludeMode) != 1 || cfg.Borg.Assets.ExtraExcludeMode[0] != "git" {
		t.Errorf("ExtraExcludeMode = %v, want default [git]", cfg.Borg.Assets.ExtraExcludeMode)
	}
}

func TestLoadMissingTargetFails(t *testing.T) {
	dir := writeConfig(t, `
[git.assets]
on_unsave = "ignore"
`)
	_, err := LoadForDir(dir)
	if err == nil {
		t.Fatal("expected error for missing git target")
	}
	if !dioerrors.Is(err, dioerrors.ErrConfigIncomplete) {
		t.Errorf("expected ErrConfigIncomplete, got %v", err)
	}
}

func TestLoadInvalidTOMLFails(t *testing.T) {
	dir := writeConfig(t, `this is not valid toml === [[[`)
	_, err := LoadForDir(dir)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !dioerrors.Is(err, dioerrors.ErrConfigParse) {
		t.Errorf("expected ErrConfigParse, got %v", err)
	}
}

func TestLoadInvalidBorgTargetMode(t *testing.T) {
	dir := writeConfig(t, `
[borg.target]
mode = "gitconfig"
target = "x"
`)
	_, err := LoadForDir(dir)
	if err == nil {
		t.Fatal("expected error: borg target mode must be path")
	}
}

func TestExists(t *testing.T) {
	dir := writeConfig(t, "[trigger.assets]\non_recursion = \"double\"\n")
	if !Exists(dir) {
		t.Error("Exists() = false, want true")
	}
	if Exists(t.TempDir()) {
		t.Error("Exists() = true for empty dir, want false")
	}
}

func TestGitDefaultIsComplete(t *testing.T) {
	def := GitDefault()
	if def.Git == nil {
		t.Fatal("expected git section in default config")
	}
	if def.Git.Target == nil || def.Git.Target.Mode != "gitconfig" {
		t.Errorf("default git target = %+v", def.Git.Target)
	}
}

func TestDebugDumpRendersYAML(t *testing.T) {
	cfg, err := LoadForDir(writeConfig(t, `
[git.target]
mode = "path"
target = "origin"
`))
	if err != nil {
		t.Fatalf("LoadForDir: %v", err)
	}
	out, err := DebugDump(cfg)
	if err != nil {
		t.Fatalf("DebugDump: %v", err)
	}
	if out == "" {
		t.Error("expected non-empty YAML output")
	}
}
