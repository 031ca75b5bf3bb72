// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package drivers

import (
	"fmt"
	"strings"

	"github.com/archmagece/dionysius-go/pkg/tui"
)

// Flags renders the single-character repo-status flag string the
// reference implementation's RepoWorkStatus/RepoCheck produced via the
// `colored` crate: W (working tree dirty), I (index has staged
// changes), A<n>/B<n> (ahead/behind counts, shown in red together when
// diverged), S<n> (stash count). An unknown flag position is rendered
// as a red "/".
func (r RepoReport) Flags() string {
	var b strings.Builder

	b.WriteString(flagOrPlaceholder(r.WorkingDirty, "W", tui.DirtyStyle))
	b.WriteString(flagOrPlaceholder(r.IndexDirty, "I", tui.DirtyStyle))

	if !r.HasUpstream {
		b.WriteString(tui.UnknownStyle.Render("/"))
	} else {
		ahead := fmt.Sprintf("A%d", r.AheadBy)
		behind := fmt.Sprintf("B%d", r.BehindBy)
		if r.Diverged() {
			b.WriteString(tui.DivergedStyle.Render(ahead))
			b.WriteString(tui.DivergedStyle.Render(behind))
		} else {
			if r.AheadBy > 0 {
				b.WriteString(tui.AheadStyle.Render(ahead))
			}
			if r.BehindBy > 0 {
				b.WriteString(tui.BehindStyle.Render(behind))
			}
		}
	}

	if r.StashCount > 0 {
		b.WriteString(tui.SubtleStyle.Render(fmt.Sprintf("S%d", r.StashCount)))
	}

	return b.String()
}

func flagOrPlaceholder(set bool, flag string, style interface{ Render(...string) string }) string {
	if !set {
		return ""
	}
	return style.Render(flag)
}
