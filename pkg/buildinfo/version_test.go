package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "dev"
	if got := String(); got != "dev (built from source)" {
		t.Errorf("String() = %q for dev build", got)
	}

	Version = "v1.2.3"
	got := String()
	if !strings.HasPrefix(got, "v1.2.3 (commit: ") {
		t.Errorf("String() = %q, want release format", got)
	}
}
