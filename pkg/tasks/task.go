// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package tasks models the three push task descriptors the collection
// engine produces: GitSaveTask, BorgCreateTask, and TriggerTask. Each
// is an inert value object — building one never touches disk or runs a
// subprocess — exposing Preview, Execute, and ExcludePatternOptions,
// the same closed set of operations PushTask exposes in the reference
// implementation.
package tasks

import "context"

// PushTask is the common surface every task descriptor implements.
// Modeled as an interface over three concrete structs rather than the
// reference implementation's trait-object-free enum-like dispatch,
// since Go has no tagged-union sum type: this is the "closed variant"
// shape recommended when a fixed, known set of implementations is all
// that will ever exist.
type PushTask interface {
	// Preview renders a one-line human-readable summary of what
	// Execute would do, without doing it.
	Preview() (string, error)

	// Execute runs the task. If capture is non-nil, the task appends
	// the command line(s) it would have run to *capture instead of
	// actually running them. The CLI's -p/--preview path calls Preview,
	// not Execute, and the CLI runs Execute with a nil capture.
	Execute(ctx context.Context, capture *[]string) error

	// ExcludePatternOptions returns the command-line fragments that
	// exclude this task's own accumulated exclude list from its
	// underlying tool invocation (git pathspecs for GitSaveTask, borg
	// --exclude options for BorgCreateTask). TriggerTask has no
	// meaningful exclude pattern options, since it never shells out.
	ExcludePatternOptions() ([]string, error)
}
