package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autogen/pkg/observability"
)

// logHooks reports command, release and HTTP timings at debug level.
type logHooks struct {
	observability.NoopCacheHooks
	logger *log.Logger
}

func (h *logHooks) OnCommandStart(context.Context, string, []string) {}

func (h *logHooks) OnCommandComplete(_ context.Context, name string, exitCode int, d time.Duration, err error) {
	h.logger.Debug("command finished", "cmd", name, "exit", exitCode, "took", d.Round(time.Millisecond), "err", err)
}

func (h *logHooks) OnStepStart(_ context.Context, step string) {
	h.logger.Debug("step started", "step", step)
}

func (h *logHooks) OnStepComplete(_ context.Context, step string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("step failed", "step", step, "took", d.Round(time.Millisecond))
		return
	}
	h.logger.Debug("step done", "step", step, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "url", host+path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "url", host+path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "url", host+path, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

// installHooks routes observability events to the CLI logger.
func (c *CLI) installHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetCommandHooks(h)
	observability.SetReleaseHooks(h)
	observability.SetHTTPHooks(h)
	observability.SetCacheHooks(h)
}
