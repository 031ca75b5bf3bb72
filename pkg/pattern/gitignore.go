// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package pattern

import (
	"bufio"
	"os"
	"strings"
)

// ReadGitIgnore parses a .gitignore file into its patterns. Comment
// lines (starting with "#") and blank lines are skipped; everything
// else, including negated ("!") lines, is kept verbatim for the caller
// to convert or reject.
func ReadGitIgnore(path string) ([]GitIgnorePattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []GitIgnorePattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		patterns = append(patterns, GitIgnorePattern{Pattern: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}
