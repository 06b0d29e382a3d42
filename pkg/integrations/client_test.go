package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/autogen/pkg/httputil"
)

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	var ua string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		ua = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(nil, map[string]string{"User-Agent": "autogen/test"})
	client.http = server.Client()

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
	if ua != "autogen/test" {
		t.Errorf("User-Agent = %q, want autogen/test", ua)
	}
}

func TestClientGetStatus(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusForbidden, ErrNetwork},
	}
	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		client := NewClient(nil, nil)
		client.http = server.Client()

		var v any
		err := client.Get(context.Background(), server.URL, &v)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("status %d: err = %v, want %v", tt.status, err, tt.wantErr)
		}
		server.Close()
	}
}

func TestClientCached(t *testing.T) {
	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	client := NewClient(cache, nil)

	var fetches atomic.Int32
	fetch := func(v *string) func() error {
		return func() error {
			fetches.Add(1)
			*v = "fresh"
			return nil
		}
	}

	var first, second string
	if err := client.Cached(context.Background(), "k", false, &first, fetch(&first)); err != nil {
		t.Fatal(err)
	}
	if err := client.Cached(context.Background(), "k", false, &second, fetch(&second)); err != nil {
		t.Fatal(err)
	}
	if second != "fresh" || fetches.Load() != 1 {
		t.Errorf("second lookup = %q after %d fetches; want cached value after 1", second, fetches.Load())
	}

	var third string
	if err := client.Cached(context.Background(), "k", true, &third, fetch(&third)); err != nil {
		t.Fatal(err)
	}
	if fetches.Load() != 2 {
		t.Errorf("refresh should bypass cache, fetches = %d", fetches.Load())
	}
}

func TestNormalizePkgName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"requests", "requests"},
		{"PyYAML", "pyyaml"},
		{"my_package", "my-package"},
		{"Foo.Bar__baz", "foo-bar-baz"},
		{"  spaced  ", "spaced"},
	}
	for _, tt := range tests {
		if got := NormalizePkgName(tt.in); got != tt.want {
			t.Errorf("NormalizePkgName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
