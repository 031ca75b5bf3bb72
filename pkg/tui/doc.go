// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package tui provides the lipgloss styles and formatting helpers used
// to render a task preview's repository status flags and outcome
// icons.
package tui
