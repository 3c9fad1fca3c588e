package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	l := NoopLayoutHooks{}
	l.OnExtend(ctx, "appended(30)", 30, time.Millisecond)
	l.OnReset(ctx, 4)

	f := NoopFeedHooks{}
	f.OnPageStart(ctx, "pexels", 2)
	f.OnPageComplete(ctx, "pexels", 2, 30, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "page")
	c.OnCacheMiss(ctx, "photo")
	c.OnCacheSet(ctx, "page", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.pexels.com", "/v1/curated")
	h.OnResponse(ctx, "GET", "api.pexels.com", "/v1/curated", 200, time.Second)
	h.OnError(ctx, "GET", "api.pexels.com", "/v1/curated", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Feed().(NoopFeedHooks); !ok {
		t.Error("Feed() should return NoopFeedHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customFeed := &testFeedHooks{}
	SetFeedHooks(customFeed)
	if Feed() != customFeed {
		t.Error("SetFeedHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
	if _, ok := Feed().(NoopFeedHooks); !ok {
		t.Error("Reset() should restore NoopFeedHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testLayoutHooks{}
	SetLayoutHooks(custom)
	SetLayoutHooks(nil)

	if Layout() != custom {
		t.Error("SetLayoutHooks(nil) should be ignored")
	}
}

// Test implementations
type testLayoutHooks struct{ NoopLayoutHooks }
type testFeedHooks struct{ NoopFeedHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

func TestInstallLogHooks(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	InstallLogHooks(logger)

	ctx := context.Background()
	Layout().OnExtend(ctx, "appended(3)", 3, time.Millisecond)
	Feed().OnPageComplete(ctx, "pexels", 2, 0, time.Millisecond, errors.New("boom"))
	Cache().OnCacheMiss(ctx, "page")
	HTTP().OnResponse(ctx, "GET", "api.pexels.com", "/v1/curated", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"layout extended", "page failed", "cache miss", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
