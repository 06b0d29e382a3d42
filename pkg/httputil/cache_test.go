package httputil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	type release struct {
		Version  string   `json:"version"`
		Releases []string `json:"releases"`
	}
	want := release{Version: "1.0.2", Releases: []string{"1.0.0", "1.0.1", "1.0.2"}}
	if err := c.Set("autogen", want); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got release
	ok, err := c.Get("autogen", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want true, nil", ok, err)
	}
	if got.Version != want.Version || len(got.Releases) != 3 {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestCache_Miss(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	var result string
	ok, err := c.Get("missing", &result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("Get() returned true for missing key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 10*time.Millisecond)

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var res string
	ok, err := c.Get("key", &res)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want true, nil", ok, err)
	}

	time.Sleep(20 * time.Millisecond)

	ok, err = c.Get("key", &res)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("got error %v, want ErrExpired", err)
	}
	if ok {
		t.Error("Get() returned true for expired key")
	}
}

func TestNewCache_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := NewCache("", time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	want := filepath.Join(home, ".cache", "autogen")
	if c.Dir() != want {
		t.Errorf("got Dir = %s, want %s", c.Dir(), want)
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestCache_Namespace(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	pypi := c.Namespace("pypi:")
	test := c.Namespace("testpypi:")

	if err := pypi.Set("demo", "1.0.0"); err != nil {
		t.Fatal(err)
	}
	if err := test.Set("demo", "0.0.1"); err != nil {
		t.Fatal(err)
	}

	var a, b string
	if ok, _ := pypi.Get("demo", &a); !ok || a != "1.0.0" {
		t.Errorf("pypi.Get() = %v, %q", ok, a)
	}
	if ok, _ := test.Get("demo", &b); !ok || b != "0.0.1" {
		t.Errorf("testpypi.Get() = %v, %q", ok, b)
	}
	if ok, _ := c.Get("demo", &a); ok {
		t.Error("value accessible without namespace")
	}
	if ns := pypi.Namespace("x:"); ns.Dir() != c.Dir() || ns.TTL() != c.TTL() {
		t.Error("namespace should share dir and ttl")
	}
}

func TestCache_Clear(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	_ = c.Set("a", 1)
	_ = c.Namespace("pypi:").Set("b", 2)

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	var v int
	if ok, _ := c.Get("a", &v); ok {
		t.Error("entry survived Clear()")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	transient := &RetryableError{Err: errors.New("503")}

	calls := 0
	err := Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return transient
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("Retry() = %v after %d calls; want nil after 3", err, calls)
	}

	calls = 0
	permanent := errors.New("404")
	err = Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		return permanent
	})
	if err != permanent || calls != 1 {
		t.Errorf("Retry() = %v after %d calls; want permanent error after 1", err, calls)
	}

	calls = 0
	err = Retry(ctx, 2, time.Millisecond, func() error {
		calls++
		return transient
	})
	if !errors.Is(err, transient) || calls != 2 {
		t.Errorf("Retry() = %v after %d calls; want transient after 2", err, calls)
	}
}

func TestRetry_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Second, func() error {
		return &RetryableError{Err: errors.New("timeout")}
	})
	if err != context.Canceled {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}
