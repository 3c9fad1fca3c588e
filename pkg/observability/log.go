package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records to a
// logger.
type LogHooks struct {
	Logger *log.Logger
}

// InstallLogHooks registers LogHooks for all event categories.
func InstallLogHooks(l *log.Logger) {
	h := LogHooks{Logger: l}
	SetLayoutHooks(h)
	SetFeedHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h LogHooks) OnExtend(_ context.Context, change string, placed int, d time.Duration) {
	h.Logger.Debug("layout extended", "change", change, "placed", placed, "duration", d)
}

func (h LogHooks) OnReset(_ context.Context, columns int) {
	h.Logger.Debug("layout reset", "columns", columns)
}

func (h LogHooks) OnPageStart(_ context.Context, source string, page int) {
	h.Logger.Debug("page fetch", "source", source, "page", page)
}

func (h LogHooks) OnPageComplete(_ context.Context, source string, page, count int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("page failed", "source", source, "page", page, "duration", d, "error", err)
		return
	}
	h.Logger.Debug("page loaded", "source", source, "page", page, "items", count, "duration", d)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "host", host, "path", path, "status", status, "duration", d)
}

func (h LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("request error", "host", host, "path", path, "error", err)
}
