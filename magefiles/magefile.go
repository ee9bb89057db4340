//go:build mage

// Package main contains Mage build targets for citegrowth developer tooling.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "citegrowth"
	cmdPkg  = "./cmd/citegrowth"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests after vetting.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints non-blank Go lines per top-level directory, split into
// production and test code, plus the word count of the Markdown docs.
func Stats() error {
	prod := map[string]int{}
	test := map[string]int{}
	words := 0

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && (strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(path)
		switch ext := filepath.Ext(path); {
		case err != nil && (ext == ".go" || ext == ".md"):
			return fmt.Errorf("reading %s: %w", path, err)
		case ext == ".go":
			group := strings.SplitN(filepath.ToSlash(path), "/", 2)[0]
			if strings.HasSuffix(path, "_test.go") {
				test[group] += nonBlankLines(data)
			} else {
				prod[group] += nonBlankLines(data)
			}
		case ext == ".md":
			words += len(strings.Fields(string(data)))
		}
		return nil
	})
	if err != nil {
		return err
	}

	groups := make([]string, 0, len(prod))
	for g := range prod {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var totalProd, totalTest int
	for _, g := range groups {
		fmt.Printf("%-12s production %6d  tests %6d\n", g, prod[g], test[g])
		totalProd += prod[g]
		totalTest += test[g]
	}
	fmt.Printf("%-12s production %6d  tests %6d\n", "total", totalProd, totalTest)
	fmt.Printf("Words (documentation): %d\n", words)
	return nil
}

func nonBlankLines(data []byte) int {
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
