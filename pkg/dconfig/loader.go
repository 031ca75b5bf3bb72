// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package dconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	dioerrors "github.com/archmagece/dionysius-go/internal/errors"
)

// ConfigFileName is the name dionysius looks for in every directory it
// visits.
const ConfigFileName = "dionysius.toml"

// Load reads and parses path as a dionysius.toml file, then completes
// it. A parse failure is wrapped as dioerrors.ErrConfigParse; a
// completion failure is wrapped as dioerrors.ErrConfigIncomplete.
func Load(path string) (*DirectoryConfig, error) {
	raw, err := loadRaw(path)
	if err != nil {
		return nil, err
	}
	completed, err := raw.Complete()
	if err != nil {
		return nil, dioerrors.Wrap(err, dioerrors.ErrConfigIncomplete)
	}
	return completed, nil
}

func loadRaw(path string) (*DirectoryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg DirectoryConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, dioerrors.Wrap(err, dioerrors.ErrConfigParse)
	}
	return &cfg, nil
}

// LoadForDir loads dionysius.toml from dir, matching
// load_config_for_dir in the original.
func LoadForDir(dir string) (*DirectoryConfig, error) {
	return Load(filepath.Join(dir, ConfigFileName))
}

// Exists reports whether dir contains a dionysius.toml file.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// GitDefault returns the fallback config used for a directory that has
// a .git directory of its own but no dionysius.toml, mirroring
// git_default_config in the original.
func GitDefault() *DirectoryConfig {
	return gitDefaultConfig()
}

// DebugDump renders a completed DirectoryConfig as YAML, the format
// the `conf -i` command prints for human inspection. This repurposes
// the ambient YAML library for a job the TOML-based on-disk format
// does not itself need.
func DebugDump(cfg *DirectoryConfig) (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("dconfig: rendering debug dump: %w", err)
	}
	return string(out), nil
}
