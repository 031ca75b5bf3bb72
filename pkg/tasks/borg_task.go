// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/archmagece/dionysius-go/pkg/drivers"
	"github.com/archmagece/dionysius-go/pkg/pattern"
)

// BorgCreateOptions are the borg create flags not directly named by
// config: acl and numeric_owner are carried forward from the reference
// implementation's BorgCreateOptions default (acl: true, numeric_owner:
// true, compression: "zstd"), supplementing what the distilled spec
// named explicitly (compression and excludes only).
type BorgCreateOptions struct {
	ACL           bool
	NumericOwner  bool
	Compression   string
}

// DefaultBorgCreateOptions mirrors BorgCreateOptions::default() in the
// reference implementation.
func DefaultBorgCreateOptions() BorgCreateOptions {
	return BorgCreateOptions{ACL: true, NumericOwner: true, Compression: "zstd"}
}

// BorgCreateTask describes one `borg create` invocation, with a frozen
// exclude list gathered the same way a GitSaveTask's is.
type BorgCreateTask struct {
	Source               string
	Target               string
	ExcludeList          []string
	ExtraExcludePatterns []pattern.BorgPattern
	Options              BorgCreateOptions

	Driver drivers.BorgDriver
}

// borgExcludePatterns relativizes every exclude-list path under Source
// into a PathFullMatch borg pattern, then appends ExtraExcludePatterns.
func (t *BorgCreateTask) borgExcludePatterns() ([]pattern.BorgPattern, error) {
	patterns := make([]pattern.BorgPattern, 0, len(t.ExcludeList)+len(t.ExtraExcludePatterns))
	for _, excluded := range t.ExcludeList {
		rel, err := filepath.Rel(t.Source, excluded)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, fmt.Errorf("tasks: exclude path %q must be under source path %q", excluded, t.Source)
		}
		rel = filepath.ToSlash(rel)
		patterns = append(patterns, pattern.BorgPattern{Kind: pattern.KindPathFullMatch, Value: rel})
	}
	patterns = append(patterns, t.ExtraExcludePatterns...)
	return patterns, nil
}

// ExcludePatternOptions renders each exclude pattern as a
// "--exclude <pattern>" pair, in the order borg create expects.
func (t *BorgCreateTask) ExcludePatternOptions() ([]string, error) {
	patterns, err := t.borgExcludePatterns()
	if err != nil {
		return nil, err
	}
	opts := make([]string, 0, len(patterns)*2)
	for _, p := range patterns {
		opts = append(opts, "--exclude", p.String())
	}
	return opts, nil
}

// Preview renders "Borg archive: [<source>] -> [<target>]".
func (t *BorgCreateTask) Preview() (string, error) {
	abs, err := filepath.Abs(t.Source)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Borg archive: [%s] -> [%s]", abs, t.Target), nil
}

// Execute runs (or, with capture non-nil, records) the borg create
// invocation:
//
//	borg create --stats --progress --one-file-system [--numeric-owner] \
//	  --compression <c> [--exclude <p>]... <target> <source>
func (t *BorgCreateTask) Execute(ctx context.Context, capture *[]string) error {
	opts, err := t.ExcludePatternOptions()
	if err != nil {
		return err
	}
	return t.Driver.Create(ctx, t.Source, t.Target, opts, t.Options.Compression, t.Options.NumericOwner, capture)
}
