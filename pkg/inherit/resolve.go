// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package inherit implements the parent -> child inheritance algebra
// over OnRecursion values. Of every field in a handler's assets and
// heritage blocks, only OnRecursion is ever inherited: everything else
// (trigger_by, on_unsave, exclude_list, ...) is fixed per directory by
// that directory's own dionysius.toml and never flows down from a
// parent, matching GitInheritableConfig::inherit_from /
// BorgInheritableConfig::inherit_from in the reference implementation,
// both of which touch only on_recursion.
//
// Git and Borg each carry their own independent inheritance chain: a
// directory's resolved git heritage.on_recursion is the ambient value
// handed to its children's git assets/heritage resolution, and
// likewise for borg; the two chains never cross. Trigger has no
// heritage section at all (TriggerInheriableConfig::inherit_from is
// unreachable in the original), so a trigger section's own_recursion
// must already be concrete, or it resolves against the fixed
// standalone root default, never against an ancestor.
package inherit

import (
	"fmt"

	dioerrors "github.com/archmagece/dionysius-go/internal/errors"
	"github.com/archmagece/dionysius-go/pkg/dconfig"
)

// RootAmbient is the effective heritage.on_recursion a directory with
// no parent section behaves as if it inherited, per spec: "inherit
// resolves to parent's heritage.on_recursion, or standalone if no
// parent section."
const RootAmbient = dconfig.OnRecursionStandalone

// Resolve resolves own against ambient (the caller's already-resolved
// heritage.on_recursion for this handler lineage, or RootAmbient at
// the traversal root). own must be a concrete OnRecursion value or
// OnRecursionInherit; any other value, or an ambient value that is
// itself still Inherit, is an internal invariant violation the caller
// should have prevented by always resolving top-down.
func Resolve(own, ambient dconfig.OnRecursion) (dconfig.OnRecursion, error) {
	switch own {
	case dconfig.OnRecursionSkip, dconfig.OnRecursionInclude, dconfig.OnRecursionStandalone, dconfig.OnRecursionDouble:
		return own, nil
	case dconfig.OnRecursionInherit:
		if ambient == "" || ambient == dconfig.OnRecursionInherit {
			return "", fmt.Errorf("inherit: ambient on_recursion unresolved (%q): %w", ambient, dioerrors.ErrInternalInvariant)
		}
		return ambient, nil
	default:
		return "", fmt.Errorf("inherit: unknown on_recursion value %q: %w", own, dioerrors.ErrInternalInvariant)
	}
}

// ResolveTrigger resolves a trigger section's on_recursion. Trigger
// never inherits from an ancestor: the value is resolved against
// RootAmbient, so "inherit" becomes standalone.
func ResolveTrigger(own dconfig.OnRecursion) (dconfig.OnRecursion, error) {
	return Resolve(own, RootAmbient)
}
