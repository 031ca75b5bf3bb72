// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package errors provides sentinel errors and wrapping helpers used
// throughout dionysius-go. It mirrors the standard library's errors
// package for comparison (Is) while adding Wrap/WrapWithMessage helpers
// that attach a sentinel or a message to an underlying error without
// discarding it.
package errors

import (
	"errors"
	"fmt"
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Wrap associates err with target so that Is(Wrap(err, target), target)
// is true, while still allowing Is(Wrap(err, target), err) to hold for
// the original cause. If err is nil, target is returned unchanged. If
// target is nil, err is returned unchanged.
func Wrap(err, target error) error {
	if err == nil {
		return target
	}
	if target == nil {
		return err
	}
	return &wrapped{cause: err, target: target}
}

// WrapWithMessage attaches context to err without obscuring it from
// errors.Is/As. Returns nil if err is nil.
func WrapWithMessage(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

type wrapped struct {
	cause  error
	target error
}

func (w *wrapped) Error() string {
	return fmt.Sprintf("%s: %s", w.target.Error(), w.cause.Error())
}

func (w *wrapped) Unwrap() []error {
	return []error{w.target, w.cause}
}

// Sentinel errors for the dionysius task pipeline, one per category in
// the error handling design: config parsing, config completion,
// pattern conversion, task execution, and internal invariant failures.
// I/O failures are represented directly via wrapped *os.PathError /
// *fs.PathError values rather than a dedicated sentinel.
var (
	ErrNotFound = errors.New("not found")

	ErrConfigParse       = errors.New("dionysius.toml is not valid TOML")
	ErrConfigIncomplete  = errors.New("directory config is incomplete after completion")
	ErrPatternConversion = errors.New("pattern could not be converted")
	ErrTaskExecution     = errors.New("task execution failed")
	ErrInternalInvariant = errors.New("internal invariant violated")
)

// Git-specific sentinels used by the git driver (pkg/drivers) when
// classifying the state of a repository during the save state machine.
var (
	ErrNotGitRepository = errors.New("not a git repository")
	ErrDirtyWorkingTree  = errors.New("working tree has uncommitted changes")
	ErrBranchExists      = errors.New("branch already exists")
	ErrBranchNotFound    = errors.New("branch not found")
	ErrRemoteNotFound    = errors.New("remote not found")
	ErrMergeConflict     = errors.New("merge conflict")
	ErrDetachedHead      = errors.New("HEAD is detached")
)
