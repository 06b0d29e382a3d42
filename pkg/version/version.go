// Package version reads, increments and writes the plain-text version file of
// a Python project.
//
// The file holds a single line "major.minor.patch". Incrementing a level adds
// one to it and resets every lower level to zero:
//
//	v, _ := version.Parse("1.2.3")
//	v.Bump(version.Minor) // 1.3.0
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/autogen/pkg/errors"
)

// FileName is the name of the version file in the project root.
const FileName = "version"

// Default is the version reported when no version file exists.
const Default = "0.0.0"

// Level selects which component of a version to increment.
type Level int

// Version levels, in the order they appear in the dotted string.
const (
	Major Level = iota
	Minor
	Patch
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel accepts a level by name ("major", "minor", "patch") or by
// index ("0", "1", "2").
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major", "0":
		return Major, nil
	case "minor", "1":
		return Minor, nil
	case "patch", "2":
		return Patch, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown version level %q (want major, minor or patch)", s)
}

// Version is a major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a dotted triple of non-negative integers. Surrounding
// whitespace is ignored.
func Parse(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Version{}, errors.New(errors.ErrCodeInvalidVersion, "version %q is not major.minor.patch", raw)
	}
	var nums [3]int
	for i, p := range parts {
		if !digitsOnly(p) {
			return Version{}, errors.New(errors.ErrCodeInvalidVersion, "version %q has invalid component %q", raw, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, errors.New(errors.ErrCodeInvalidVersion, "version %q has invalid component %q", raw, p)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// digitsOnly reports whether s is a non-empty run of ASCII digits. It keeps
// strconv from accepting signs such as "+1".
func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String formats the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns v incremented at level l with all lower levels zeroed.
func (v Version) Bump(l Level) (Version, error) {
	switch l {
	case Major:
		return Version{Major: v.Major + 1}, nil
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	}
	return v, errors.New(errors.ErrCodeInvalidInput, "unknown version level %d", int(l))
}

// Read returns the trimmed content of the version file in dir.
// A missing file yields Default and ok=false; other read errors are returned.
func Read(dir string) (s string, ok bool, err error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if os.IsNotExist(err) {
		return Default, false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(errors.ErrCodeInvalidVersion, err, "read %s", FileName)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// Write stores v in the version file in dir, without a trailing newline.
func Write(dir string, v Version) error {
	return os.WriteFile(filepath.Join(dir, FileName), []byte(v.String()), 0o644)
}

// BumpFile reads the version file in dir, increments it at level l and writes
// it back. A missing file is treated as Default.
func BumpFile(dir string, l Level) (Version, error) {
	raw, _, err := Read(dir)
	if err != nil {
		return Version{}, err
	}
	v, err := Parse(raw)
	if err != nil {
		return Version{}, err
	}
	next, err := v.Bump(l)
	if err != nil {
		return Version{}, err
	}
	if err := Write(dir, next); err != nil {
		return Version{}, err
	}
	return next, nil
}
