// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package tasks

import (
	"context"
	"fmt"
	"path/filepath"

	dioerrors "github.com/archmagece/dionysius-go/internal/errors"
)

// TriggerTask is a phantom task: it records that a trigger section was
// processed at its directory and has no effect of its own. It never
// shells out.
type TriggerTask struct {
	CurrentDir string
}

// Preview renders "Trigger: <dir>".
func (t *TriggerTask) Preview() (string, error) {
	abs, err := filepath.Abs(t.CurrentDir)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Trigger: %s", abs), nil
}

// Execute does nothing: a trigger task has no action of its own.
func (t *TriggerTask) Execute(ctx context.Context, capture *[]string) error {
	return nil
}

// ExcludePatternOptions is never called on a TriggerTask; trigger
// sections never own an exclude list.
func (t *TriggerTask) ExcludePatternOptions() ([]string, error) {
	return nil, fmt.Errorf("tasks: TriggerTask has no exclude pattern options: %w", dioerrors.ErrInternalInvariant)
}
