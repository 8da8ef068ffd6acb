//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stats prints Go lines of code, production and test, per package directory.
func Stats() error {
	type counts struct {
		Prod int `json:"prod"`
		Test int `json:"test"`
	}
	perDir := map[string]*counts{}
	var total counts

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path == "vendor" || path == ".git" || path == binaryDir || strings.HasPrefix(path, "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasPrefix(path, "magefiles") {
			return nil
		}
		n, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		dir := filepath.Dir(path)
		c, ok := perDir[dir]
		if !ok {
			c = &counts{}
			perDir[dir] = c
		}
		if strings.HasSuffix(path, "_test.go") {
			c.Test += n
			total.Test += n
		} else {
			c.Prod += n
			total.Prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	line, err := json.Marshal(map[string]any{
		"go_loc_prod": total.Prod,
		"go_loc_test": total.Test,
		"go_loc":      total.Prod + total.Test,
		"packages":    perDir,
	})
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
