// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package uiprint renders CLI output: headers, per-task preview lines,
// success/warning/error notices, and the interactive confirm prompt
// behind on_unsave = "ask". It is adapted from pkg/wizard's Printer in
// the teacher repo, trimmed to the vocabulary push/conf need and
// rebuilt on its own Unicode icon literals (the teacher's IconSuccess et al. are
// mojibake-corrupted UTF-8 escapes in the copied source and are not
// reused here).
package uiprint

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245"))

	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Printer renders status output to Out (stdout by default).
type Printer struct {
	Out io.Writer
}

// NewPrinter builds a Printer writing to stdout.
func NewPrinter() *Printer {
	return &Printer{Out: os.Stdout}
}

// PrintHeader prints a titled section header, e.g. "Preview: git push"
// before a collection's list of task previews.
func (p *Printer) PrintHeader(title string) {
	fmt.Fprintln(p.Out)
	fmt.Fprintln(p.Out, TitleStyle.Render(title))
}

// PrintTask prints one task's already-rendered preview line unchanged;
// the coloring lives in the task's own Preview() output (via
// drivers.RepoReport.Flags), not here.
func (p *Printer) PrintTask(line string) {
	fmt.Fprintln(p.Out, line)
}

func (p *Printer) PrintSuccess(msg string) {
	fmt.Fprintln(p.Out, SuccessStyle.Render(IconSuccess+" "+msg))
}

func (p *Printer) PrintError(msg string) {
	fmt.Fprintln(p.Out, ErrorStyle.Render(IconError+" "+msg))
}

func (p *Printer) PrintWarning(msg string) {
	fmt.Fprintln(p.Out, WarningStyle.Render(IconWarning+" "+msg))
}

func (p *Printer) PrintInfo(msg string) {
	fmt.Fprintln(p.Out, DimStyle.Render(IconInfo+" "+msg))
}

// PrintDivider prints a horizontal rule between a preview block and the
// execution summary that follows it.
func (p *Printer) PrintDivider() {
	fmt.Fprintln(p.Out, DimStyle.Render(strings.Repeat("-", 50)))
}

// ConfirmUnsave prompts the user with prompt and returns their answer,
// the interactive counterpart of on_unsave = "ask". Built on
// huh.NewConfirm the same way the teacher's wizard package drives its
// own yes/no prompts.
func ConfirmUnsave(prompt string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Save").
				Negative("Leave dirty").
				Value(&ok),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("uiprint: confirm prompt: %w", err)
	}
	return ok, nil
}
