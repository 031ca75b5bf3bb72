// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package collect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/archmagece/dionysius-go/pkg/dconfig"
	"github.com/archmagece/dionysius-go/pkg/drivers"
	"github.com/archmagece/dionysius-go/pkg/tasks"
)

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

type nopGitDriver struct{}

func (nopGitDriver) Inspect(ctx context.Context, repoPath string) (drivers.RepoReport, error) {
	return drivers.RepoReport{}, nil
}
func (nopGitDriver) Save(ctx context.Context, repoPath string, onUnsave dconfig.OnUnsave, excludeOpts []string, capture *[]string) error {
	return nil
}

func TestCollectGitStandaloneRegistersInParent(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/root"
`)
	mustMkdir(t, filepath.Join(root, ".git"))

	child := filepath.Join(root, "child")
	mustWriteFile(t, filepath.Join(child, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/child"
`)
	mustMkdir(t, filepath.Join(child, ".git"))

	out, err := Collect(context.Background(), root, dconfig.HandlerGit, Options{
		GitDriver: nopGitDriver{},
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 tasks, got %d", len(out))
	}

	var rootTask *tasks.GitSaveTask
	for _, tk := range out {
		if gt, ok := tk.(*tasks.GitSaveTask); ok && gt.RepoPath == root {
			rootTask = gt
		}
	}
	if rootTask == nil {
		t.Fatalf("no task found for root directory among %v", out)
	}
	if len(rootTask.ExcludeList) != 1 || rootTask.ExcludeList[0] != child {
		t.Errorf("root task excludes = %v, want [%s]", rootTask.ExcludeList, child)
	}
}

func TestCollectSkipExcludesWholeSubtree(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/root"
`)
	mustMkdir(t, filepath.Join(root, ".git"))

	skipped := filepath.Join(root, "skipped")
	mustWriteFile(t, filepath.Join(skipped, "dionysius.toml"), `
[git.assets]
on_recursion = "skip"

[git.heritage]
on_recursion = "skip"

[git.target]
mode = "path"
target = "/backup/skipped"
`)
	mustMkdir(t, filepath.Join(skipped, ".git"))

	grandchild := filepath.Join(skipped, "grandchild")
	mustWriteFile(t, filepath.Join(grandchild, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/grandchild"
`)
	mustMkdir(t, filepath.Join(grandchild, ".git"))

	out, err := Collect(context.Background(), root, dconfig.HandlerGit, Options{
		GitDriver: nopGitDriver{},
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want 1 task (skip must prevent descent), got %d: %v", len(out), out)
	}
	gt := out[0].(*tasks.GitSaveTask)
	if gt.RepoPath != root {
		t.Errorf("task.RepoPath = %q, want %q", gt.RepoPath, root)
	}
	if len(gt.ExcludeList) != 1 || gt.ExcludeList[0] != skipped {
		t.Errorf("root task excludes = %v, want [%s]", gt.ExcludeList, skipped)
	}
}

func TestCollectIncludeFoldsIntoParent(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/root"
`)
	mustMkdir(t, filepath.Join(root, ".git"))

	child := filepath.Join(root, "child")
	mustWriteFile(t, filepath.Join(child, "dionysius.toml"), `
[git.assets]
on_recursion = "include"

[git.heritage]
on_recursion = "include"

[git.target]
mode = "path"
target = "/backup/child"
`)
	mustMkdir(t, filepath.Join(child, ".git"))

	out, err := Collect(context.Background(), root, dconfig.HandlerGit, Options{
		GitDriver: nopGitDriver{},
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want 1 task (include creates none of its own and does not descend), got %d: %v", len(out), out)
	}
	gt := out[0].(*tasks.GitSaveTask)
	if gt.RepoPath != root {
		t.Errorf("task.RepoPath = %q, want %q", gt.RepoPath, root)
	}
	if len(gt.ExcludeList) != 0 {
		t.Errorf("root task excludes = %v, want none (include does not register)", gt.ExcludeList)
	}
}

// TestCollectIncludeDoesNotDescendPastNestedRepo verifies include stops
// traversal outright: a standalone repo nested below an include'd
// directory is never found, since the ancestor's task already covers it.
func TestCollectIncludeDoesNotDescendPastNestedRepo(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/root"
`)
	mustMkdir(t, filepath.Join(root, ".git"))

	child := filepath.Join(root, "child")
	mustWriteFile(t, filepath.Join(child, "dionysius.toml"), `
[git.assets]
on_recursion = "include"

[git.heritage]
on_recursion = "include"

[git.target]
mode = "path"
target = "/backup/child"
`)
	mustMkdir(t, filepath.Join(child, ".git"))

	grandchild := filepath.Join(child, "grandchild")
	mustWriteFile(t, filepath.Join(grandchild, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/grandchild"
`)
	mustMkdir(t, filepath.Join(grandchild, ".git"))

	out, err := Collect(context.Background(), root, dconfig.HandlerGit, Options{
		GitDriver: nopGitDriver{},
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want 1 task (include blocks descent, grandchild never visited), got %d: %v", len(out), out)
	}
}

func TestCollectTrivialFanOutFindsNestedRepos(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	mustWriteFile(t, filepath.Join(nested, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/nested"
`)
	mustMkdir(t, filepath.Join(nested, ".git"))

	out, err := Collect(context.Background(), root, dconfig.HandlerGit, Options{
		GitDriver: nopGitDriver{},
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want 1 task through trivial fan-out, got %d", len(out))
	}
}

func TestCollectSkipsHiddenDirsByDefault(t *testing.T) {
	root := t.TempDir()
	hidden := filepath.Join(root, ".hidden")
	mustWriteFile(t, filepath.Join(hidden, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/hidden"
`)
	mustMkdir(t, filepath.Join(hidden, ".git"))

	out, err := Collect(context.Background(), root, dconfig.HandlerGit, Options{
		GitDriver: nopGitDriver{},
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("want 0 tasks with hidden dirs excluded, got %d", len(out))
	}

	out, err = Collect(context.Background(), root, dconfig.HandlerGit, Options{
		GitDriver:    nopGitDriver{},
		SearchHidden: true,
	})
	if err != nil {
		t.Fatalf("Collect with SearchHidden: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want 1 task with SearchHidden, got %d", len(out))
	}
}

func TestCollectGitDefaultFallbackForBareRepo(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, ".git"))

	out, err := Collect(context.Background(), root, dconfig.HandlerGit, Options{
		GitDriver: nopGitDriver{},
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want 1 task via gitDefaultConfig fallback, got %d", len(out))
	}
}

// TestCollectTriggerRunVisitsEveryConfiguredHandler covers spec
// scenario 6: a directory with trigger, git, and borg all configured,
// collected for task_type_id="trigger", must produce all three tasks
// in the fixed order trigger, git, borg, since a trigger run bypasses
// every section's own trigger_by filter.
func TestCollectTriggerRunVisitsEveryConfiguredHandler(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "dionysius.toml"), `
[trigger.assets]
on_recursion = "standalone"

[git.target]
mode = "path"
target = "/backup/root"

[borg.target]
mode = "path"
target = "/backup/root"
`)
	mustMkdir(t, filepath.Join(root, ".git"))

	out, err := Collect(context.Background(), root, dconfig.HandlerTrigger, Options{
		GitDriver: nopGitDriver{},
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("want 3 tasks (trigger, git, borg), got %d: %v", len(out), out)
	}
	wantOrder := []string{"*tasks.TriggerTask", "*tasks.GitSaveTask", "*tasks.BorgCreateTask"}
	for i, t2 := range out {
		got := typeName(t2)
		if got != wantOrder[i] {
			t.Errorf("task[%d] = %s, want %s", i, got, wantOrder[i])
		}
	}
}

// TestCollectBorgRunAlsoEmitsGitWhenTriggerByAllows covers the
// trigger_by cross-activation the default git config declares: a
// "borg" run still produces the directory's GitSaveTask, because git's
// default trigger_by is [git, borg].
func TestCollectBorgRunAlsoEmitsGitWhenTriggerByAllows(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/root"

[borg.target]
mode = "path"
target = "/backup/root"
`)
	mustMkdir(t, filepath.Join(root, ".git"))

	out, err := Collect(context.Background(), root, dconfig.HandlerBorg, Options{
		GitDriver: nopGitDriver{},
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 tasks (git via trigger_by=[git,borg], plus borg itself), got %d: %v", len(out), out)
	}
}

// TestCollectGitRunRespectsBorgTriggerByDefault verifies the converse:
// borg's default trigger_by is [borg] only, so a "git" run must not
// emit the directory's BorgCreateTask.
func TestCollectGitRunRespectsBorgTriggerByDefault(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/root"

[borg.target]
mode = "path"
target = "/backup/root"
`)
	mustMkdir(t, filepath.Join(root, ".git"))

	out, err := Collect(context.Background(), root, dconfig.HandlerGit, Options{
		GitDriver: nopGitDriver{},
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want 1 task (git only, borg's trigger_by=[borg] rejects a git run), got %d: %v", len(out), out)
	}
	if _, ok := out[0].(*tasks.GitSaveTask); !ok {
		t.Errorf("task = %T, want *tasks.GitSaveTask", out[0])
	}
}

func typeName(t tasks.PushTask) string {
	switch t.(type) {
	case *tasks.TriggerTask:
		return "*tasks.TriggerTask"
	case *tasks.GitSaveTask:
		return "*tasks.GitSaveTask"
	case *tasks.BorgCreateTask:
		return "*tasks.BorgCreateTask"
	default:
		return "unknown"
	}
}

func TestCollectBorgRunWithGitOnlySectionCreatesNoBorgTask(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "dionysius.toml"), `
[git.target]
mode = "path"
target = "/backup/root"
`)
	mustMkdir(t, filepath.Join(root, ".git"))

	out, err := Collect(context.Background(), root, dconfig.HandlerBorg, Options{
		BorgDriver: nil,
	})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want 1 task (git's default trigger_by includes borg), got %d: %v", len(out), out)
	}
	if _, ok := out[0].(*tasks.GitSaveTask); !ok {
		t.Errorf("task = %T, want *tasks.GitSaveTask (no borg section, so no borg task)", out[0])
	}
}
