// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package recursion implements the pure decision table driven by a
// resolved OnRecursion value: whether this directory should register
// itself in its parent's exclude list, whether a task should be
// created for it, and whether the collection engine should descend
// into its children at all. It is the Go counterpart of
// apply_recursion_strategy in the reference implementation.
package recursion

import (
	"fmt"

	dioerrors "github.com/archmagece/dionysius-go/internal/errors"
	"github.com/archmagece/dionysius-go/pkg/dconfig"
)

// Decision is the outcome of applying the recursion policy to one
// resolved OnRecursion value.
type Decision struct {
	// RegisterInParentExclude marks this directory as an entry in its
	// parent's own exclude list, so the parent's task (if any) does
	// not capture this subtree's content itself.
	RegisterInParentExclude bool

	// CreateTask marks that a task descriptor should be built for this
	// directory.
	CreateTask bool

	// Descend marks that the collection engine should continue
	// recursing into this directory's children at all. When false (the
	// "skip" case) the subtree is dropped from traversal entirely.
	Descend bool
}

// Apply implements the decision table:
//
//	skip        register, no task, no descend   (subtree excluded entirely)
//	include     no register, no task, no descend (ancestor task already covers it)
//	standalone  register, task, descend         (own task, own exclude list)
//	double      no register, task, descend      (own task AND still part of parent's)
//
// OnRecursionInherit must never reach this function; if it does, that
// is an internal invariant violation — the caller skipped resolving it
// via pkg/inherit first.
func Apply(resolved dconfig.OnRecursion) (Decision, error) {
	switch resolved {
	case dconfig.OnRecursionSkip:
		return Decision{RegisterInParentExclude: true, CreateTask: false, Descend: false}, nil
	case dconfig.OnRecursionInclude:
		return Decision{RegisterInParentExclude: false, CreateTask: false, Descend: false}, nil
	case dconfig.OnRecursionStandalone:
		return Decision{RegisterInParentExclude: true, CreateTask: true, Descend: true}, nil
	case dconfig.OnRecursionDouble:
		return Decision{RegisterInParentExclude: false, CreateTask: true, Descend: true}, nil
	case dconfig.OnRecursionInherit:
		return Decision{}, fmt.Errorf("recursion: unresolved \"inherit\" reached policy table: %w", dioerrors.ErrInternalInvariant)
	default:
		return Decision{}, fmt.Errorf("recursion: unknown on_recursion value %q: %w", resolved, dioerrors.ErrInternalInvariant)
	}
}
