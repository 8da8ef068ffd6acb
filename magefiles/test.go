//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// All runs every package's tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every package's tests with the race detector. The store and
// registry tests run concurrent writers alongside readers.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs every package's tests and writes a coverage profile to bin/.
func (Test) Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", profile)
}

// Check builds the binary and runs it against a scratch config directory:
// init writes the example schema, then types lists it.
func Check() error {
	mg.Deps(Build)
	dir, err := os.MkdirTemp("", "hgraph-check-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	bin := filepath.Join(binaryDir, binaryName)
	if err := sh.RunV(bin, "--config-dir", dir, "init"); err != nil {
		return err
	}
	return sh.RunV(bin, "--config-dir", dir, "types")
}
