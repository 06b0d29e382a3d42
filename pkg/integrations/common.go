package integrations

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/autogen/pkg/buildinfo"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the index has no such project.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, bad status).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the standard request timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// UserAgent identifies autogen to index operators.
func UserAgent() string {
	return "autogen/" + buildinfo.Version
}

// NormalizePkgName converts a project name to its PEP 503 canonical form:
// lowercase, with runs of "-", "_" and "." collapsed to a single "-".
func NormalizePkgName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	sep := false
	for _, r := range name {
		if r == '-' || r == '_' || r == '.' {
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('-')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}
