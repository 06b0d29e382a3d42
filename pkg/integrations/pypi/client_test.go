package pypi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/autogen/pkg/httputil"
	"github.com/matzehuels/autogen/pkg/integrations"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/autogen/json" {
			http.NotFound(w, r)
			return
		}
		resp := apiResponse{
			Info: apiInfo{Name: "autogen", Version: "1.0.14", Summary: "Automate development tasks"},
			Releases: map[string][]apiFile{
				"1.0.13": {{Filename: "autogen-1.0.13.tar.gz"}},
				"1.0.14": {{Filename: "autogen-1.0.14.tar.gz"}, {Filename: "autogen-1.0.14-py3-none-any.whl"}},
				"0.9.0":  {},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_FetchProject(t *testing.T) {
	server := testServer(t)
	c := NewClient(nil, server.URL)

	info, err := c.FetchProject(context.Background(), "AutoGen", true)
	if err != nil {
		t.Fatalf("FetchProject failed: %v", err)
	}
	if info.Name != "autogen" || info.Version != "1.0.14" {
		t.Errorf("FetchProject() = %+v", info)
	}
	want := []string{"0.9.0", "1.0.13", "1.0.14"}
	if len(info.Releases) != len(want) {
		t.Fatalf("Releases = %q, want %q", info.Releases, want)
	}
	for i := range want {
		if info.Releases[i] != want[i] {
			t.Errorf("Releases[%d] = %q, want %q", i, info.Releases[i], want[i])
		}
	}
}

func TestClient_FetchProject_NotFound(t *testing.T) {
	server := testServer(t)
	c := NewClient(nil, server.URL)

	_, err := c.FetchProject(context.Background(), "missing", true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_HasRelease(t *testing.T) {
	server := testServer(t)
	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(cache, server.URL)
	ctx := context.Background()

	tests := []struct {
		name    string
		version string
		want    bool
	}{
		{"autogen", "1.0.14", true},
		{"autogen", "1.0.15", false},
		{"never-published", "0.0.1", false},
	}
	for _, tt := range tests {
		got, err := c.HasRelease(ctx, tt.name, tt.version)
		if err != nil {
			t.Fatalf("HasRelease(%s, %s) error: %v", tt.name, tt.version, err)
		}
		if got != tt.want {
			t.Errorf("HasRelease(%s, %s) = %v, want %v", tt.name, tt.version, got, tt.want)
		}
	}
}
