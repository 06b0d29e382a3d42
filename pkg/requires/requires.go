// Package requires infers a project's install_requires list.
//
// The import scan itself is delegated to pipreqs, which writes
// requirements.txt. This package decides which top-level folders pipreqs
// should skip, then cleans its output: version pins are stripped, known-bad
// entries dropped, Windows-only packages given a platform marker, and the
// result deduplicated and sorted.
package requires

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogen/pkg/errors"
	"github.com/matzehuels/autogen/pkg/shell"
)

// FileName is the file pipreqs writes.
const FileName = "requirements.txt"

// WindowsMarker is appended to Windows-only requirements.
const WindowsMarker = ";platform_system=='Windows'"

// Options tunes how scanner output is cleaned.
type Options struct {
	WindowsOnly []string // packages that only install on Windows
	Exclude     []string // packages never emitted
}

// Clean turns raw requirements lines into a deduplicated, sorted
// install_requires list.
func Clean(lines []string, opts Options) []string {
	seen := make(map[string]bool)
	for _, line := range lines {
		name := unpin(line)
		if name == "" || invalid(name, opts.Exclude) {
			continue
		}
		seen[name] = true
	}

	for _, pkg := range opts.WindowsOnly {
		if seen[pkg] {
			delete(seen, pkg)
			seen[pkg+WindowsMarker] = true
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// unpin returns the project name of a requirement line without its version
// specifier. Comments, options and blank lines yield "".
func unpin(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' || line[0] == '-' {
		return ""
	}
	// the first character is never an operator; "~name" entries are kept
	// intact so invalid() can reject them
	if i := strings.IndexAny(line[1:], "=<>!~; \t"); i >= 0 {
		line = line[:i+1]
	}
	return line
}

// invalid reports scanner artefacts and excluded names.
func invalid(name string, exclude []string) bool {
	return strings.HasSuffix(name, ".egg") ||
		strings.HasPrefix(name, "~") ||
		slices.Contains(exclude, name)
}

// ParseFile reads a requirements file and cleans it.
func ParseFile(path string, opts Options) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s was not generated", filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return Clean(lines, opts), nil
}

// IgnoredFolders lists the top-level directories of dir that are not the root
// of a public package. pipreqs' --ignore only understands top-level names.
func IgnoredFolders(dir string, packages []string) ([]string, error) {
	roots := make(map[string]bool)
	for _, p := range packages {
		if strings.HasPrefix(p, "_") {
			continue
		}
		root, _, _ := strings.Cut(p, ".")
		roots[root] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ignored []string
	for _, e := range entries {
		if e.IsDir() && !roots[e.Name()] {
			ignored = append(ignored, e.Name())
		}
	}
	sort.Strings(ignored)
	return ignored, nil
}

// Scanner runs pipreqs over a project directory.
type Scanner struct {
	Dir     string       // project root
	Command string       // pipreqs command line
	Runner  shell.Runner // executes the scanner
	Options Options
	Logger  *log.Logger
}

// Infer regenerates requirements.txt (overwriting it) and returns the cleaned
// dependency list. packages are the dotted package names of the project.
func (s *Scanner) Infer(ctx context.Context, packages []string) ([]string, error) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	ignored, err := IgnoredFolders(s.Dir, packages)
	if err != nil {
		return nil, err
	}
	args := []string{".", "--force"}
	if len(ignored) > 0 {
		args = append(args, "--ignore", strings.Join(ignored, ","))
	}
	cmd, err := shell.Parse(s.Command, args...)
	if err != nil {
		return nil, err
	}

	logger.Debug("scanning imports", "cmd", cmd.String())
	if _, err := s.Runner.Run(ctx, cmd.In(s.Dir)); err != nil {
		return nil, err
	}

	reqs, err := ParseFile(filepath.Join(s.Dir, FileName), s.Options)
	if err != nil {
		return nil, err
	}
	logger.Debug("inferred requirements", "count", len(reqs))
	return reqs, nil
}
