package project

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// InitFile marks a directory as a Python package.
const InitFile = "__init__.py"

// FindPackages lists the dotted names of all packages below dir, the way
// setuptools.find_packages does: a directory is a package when it holds an
// __init__.py, and the walk only descends through packages. Names matching
// one of the exclude glob patterns are left out; their subpackages are still
// visited.
func FindPackages(dir string, exclude []string) ([]string, error) {
	var packages []string
	if err := findPackages(dir, "", exclude, &packages); err != nil {
		return nil, err
	}
	sort.Strings(packages)
	return packages, nil
}

func findPackages(dir, prefix string, exclude []string, out *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() || strings.Contains(e.Name(), ".") {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		if !isPackage(sub) {
			continue
		}
		name := e.Name()
		if prefix != "" {
			name = prefix + "." + name
		}
		if !matchAny(exclude, name) {
			*out = append(*out, name)
		}
		if err := findPackages(sub, name, exclude, out); err != nil {
			return err
		}
	}
	return nil
}

func isPackage(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, InitFile))
	return err == nil && !info.IsDir()
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}
