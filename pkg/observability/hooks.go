// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; nothing is recorded
// unless the application installs an implementation at startup. The CLI
// installs hooks that log durations at debug level.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetCommandHooks(&myCommandHooks{})
//	observability.SetReleaseHooks(&myReleaseHooks{})
//
// Libraries call hooks to emit events:
//
//	observability.Release().OnStepStart(ctx, "upload")
//	// ... run the step ...
//	observability.Release().OnStepComplete(ctx, "upload", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Command Hooks
// =============================================================================

// CommandHooks receives events about external programs.
type CommandHooks interface {
	OnCommandStart(ctx context.Context, name string, args []string)
	OnCommandComplete(ctx context.Context, name string, exitCode int, duration time.Duration, err error)
}

// =============================================================================
// Release Hooks
// =============================================================================

// ReleaseHooks receives events from the release pipeline.
type ReleaseHooks interface {
	OnStepStart(ctx context.Context, step string)
	OnStepComplete(ctx context.Context, step string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the index response cache.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, key string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, key string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, key string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCommandHooks is a no-op implementation of CommandHooks.
type NoopCommandHooks struct{}

func (NoopCommandHooks) OnCommandStart(context.Context, string, []string) {}
func (NoopCommandHooks) OnCommandComplete(context.Context, string, int, time.Duration, error) {
}

// NoopReleaseHooks is a no-op implementation of ReleaseHooks.
type NoopReleaseHooks struct{}

func (NoopReleaseHooks) OnStepStart(context.Context, string)                          {}
func (NoopReleaseHooks) OnStepComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)  {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}
func (NoopCacheHooks) OnCacheSet(context.Context, string)  {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	commandHooks CommandHooks = NoopCommandHooks{}
	releaseHooks ReleaseHooks = NoopReleaseHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetCommandHooks registers custom command hooks.
func SetCommandHooks(h CommandHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		commandHooks = h
	}
}

// SetReleaseHooks registers custom release hooks.
func SetReleaseHooks(h ReleaseHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		releaseHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Command returns the registered command hooks.
func Command() CommandHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return commandHooks
}

// Release returns the registered release hooks.
func Release() ReleaseHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return releaseHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	commandHooks = NoopCommandHooks{}
	releaseHooks = NoopReleaseHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
