package version

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/autogen/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"1.2.3", Version{1, 2, 3}, false},
		{"0.0.0", Version{0, 0, 0}, false},
		{"10.20.30\n", Version{10, 20, 30}, false},
		{"1.2", Version{}, true},
		{"1.2.3.4", Version{}, true},
		{"1.x.3", Version{}, true},
		{"1.-2.3", Version{}, true},
		{"+1.2.3", Version{}, true},
		{"1.+2.3", Version{}, true},
		{"1. 2.3", Version{}, true},
		{"", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidVersion) {
				t.Errorf("Parse(%q) code = %s, want INVALID_VERSION", tt.input, errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		from  string
		level Level
		want  string
	}{
		{"1.2.3", Major, "2.0.0"},
		{"1.2.3", Minor, "1.3.0"},
		{"1.2.3", Patch, "1.2.4"},
		{"0.0.0", Patch, "0.0.1"},
		{"0.9.9", Minor, "0.10.0"},
	}

	for _, tt := range tests {
		t.Run(tt.from+"/"+tt.level.String(), func(t *testing.T) {
			v, err := Parse(tt.from)
			if err != nil {
				t.Fatal(err)
			}
			got, err := v.Bump(tt.level)
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tt.want {
				t.Errorf("Bump(%s) = %s, want %s", tt.level, got, tt.want)
			}
		})
	}
}

func TestBumpKeepsHigherZeroesLower(t *testing.T) {
	v := Version{4, 7, 9}
	for _, l := range []Level{Major, Minor, Patch} {
		got, err := v.Bump(l)
		if err != nil {
			t.Fatal(err)
		}
		before := []int{v.Major, v.Minor, v.Patch}
		after := []int{got.Major, got.Minor, got.Patch}
		for i := range before {
			switch {
			case i < int(l) && after[i] != before[i]:
				t.Errorf("%s: level %d changed %d -> %d", l, i, before[i], after[i])
			case i == int(l) && after[i] != before[i]+1:
				t.Errorf("%s: level %d = %d, want %d", l, i, after[i], before[i]+1)
			case i > int(l) && after[i] != 0:
				t.Errorf("%s: level %d = %d, want 0", l, i, after[i])
			}
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"major", Major, false},
		{"MINOR", Minor, false},
		{"patch", Patch, false},
		{"0", Major, false},
		{"1", Minor, false},
		{"2", Patch, false},
		{"3", 0, true},
		{"build", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadMissing(t *testing.T) {
	got, ok, err := Read(t.TempDir())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if ok {
		t.Error("ok = true for missing file")
	}
	if got != Default {
		t.Errorf("Read() = %q, want %q", got, Default)
	}
}

func TestBumpFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("1.2.3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := BumpFile(dir, Minor)
	if err != nil {
		t.Fatalf("BumpFile failed: %v", err)
	}
	if got.String() != "1.3.0" {
		t.Errorf("BumpFile() = %s, want 1.3.0", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1.3.0" {
		t.Errorf("file content = %q, want %q", data, "1.3.0")
	}
}

func TestBumpFileMissingStartsFromDefault(t *testing.T) {
	dir := t.TempDir()
	got, err := BumpFile(dir, Patch)
	if err != nil {
		t.Fatalf("BumpFile failed: %v", err)
	}
	if got.String() != "0.0.1" {
		t.Errorf("BumpFile() = %s, want 0.0.1", got)
	}
}

func TestBumpFileInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("one.two"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := BumpFile(dir, Patch)
	if !errors.Is(err, errors.ErrCodeInvalidVersion) {
		t.Errorf("BumpFile() error = %v, want INVALID_VERSION", err)
	}
}

func TestBumpFileSignedComponentUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("+1.2.3"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := BumpFile(dir, Patch); !errors.Is(err, errors.ErrCodeInvalidVersion) {
		t.Errorf("BumpFile() error = %v, want INVALID_VERSION", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "+1.2.3" {
		t.Errorf("version file rewritten to %q", data)
	}
}
