// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package drivers

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	dioerrors "github.com/archmagece/dionysius-go/internal/errors"
)

// BorgDriver is the boundary pkg/tasks.BorgCreateTask executes against.
type BorgDriver interface {
	Create(ctx context.Context, source, target string, excludeOpts []string, compression string, numericOwner bool, capture *[]string) error
}

// BorgExecutor implements BorgDriver by shelling out to the borg
// binary, the same subprocess-wrapping shape internal/gitcmd.Executor
// uses for git.
type BorgExecutor struct {
	binary string
}

// NewBorgExecutor builds a BorgExecutor. An empty binary defaults to
// "borg" resolved via PATH.
func NewBorgExecutor(binary string) *BorgExecutor {
	if binary == "" {
		binary = "borg"
	}
	return &BorgExecutor{binary: binary}
}

// Create runs (or records) `borg create --stats --progress
// --one-file-system [--numeric-owner] --compression <c> [--exclude
// <p>]... <target> <source>`, the exact flag set the reference
// implementation's BorgCreateTask::execute hard-codes, plus the
// --numeric-owner flag from BorgCreateOptions when set.
func (b *BorgExecutor) Create(ctx context.Context, source, target string, excludeOpts []string, compression string, numericOwner bool, capture *[]string) error {
	args := []string{"create", "--stats", "--progress", "--one-file-system"}
	if numericOwner {
		args = append(args, "--numeric-owner")
	}
	args = append(args, "--compression", compression)
	args = append(args, excludeOpts...)
	args = append(args, target, source)

	if capture != nil {
		*capture = append(*capture, b.binary+" "+strings.Join(args, " "))
		return nil
	}

	cmd := exec.CommandContext(ctx, b.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return dioerrors.WrapWithMessage(dioerrors.Wrap(err, dioerrors.ErrTaskExecution), stderr.String())
	}
	return nil
}
