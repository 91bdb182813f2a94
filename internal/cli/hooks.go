package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relgraph/pkg/observability"
)

// logHooks reports pipeline events at debug level.
type logHooks struct {
	logger *log.Logger
}

// installHooks routes render, interaction and cache events to logger.
func installHooks(logger *log.Logger) {
	h := logHooks{logger: logger}
	observability.SetRenderHooks(h)
	observability.SetInteractionHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnLayoutStart(_ context.Context, engine string, nodes int) {
	h.logger.Debug("layout start", "engine", engine, "nodes", nodes)
}

func (h logHooks) OnLayoutComplete(_ context.Context, engine string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "engine", engine, "error", err)
		return
	}
	h.logger.Debug("layout done", "engine", engine, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnRenderStart(_ context.Context, format string, nodes int) {
	h.logger.Debug("render start", "format", format, "nodes", nodes)
}

func (h logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("render done", "format", format, "bytes", size, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnTransition(event, selected, focused string) {
	h.logger.Debug("interaction", "event", event, "selected", selected, "focused", focused)
}

func (h logHooks) OnCameraFollow(target string, animate bool) {
	h.logger.Debug("camera", "target", target, "animate", animate)
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", shortKey(key))
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", shortKey(key))
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", shortKey(key), "bytes", size)
}

func shortKey(key string) string {
	if len(key) > 24 {
		return key[:24]
	}
	return key
}
