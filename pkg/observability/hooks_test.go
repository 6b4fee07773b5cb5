package observability

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "corner.toml")
	p.OnLoadComplete(ctx, "corner.toml", 8, time.Second, nil)
	p.OnLayoutStart(ctx, 8)
	p.OnLayoutComplete(ctx, 2, false, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/layout")
	h.OnResponse(ctx, "POST", "/v1/layout", 200, time.Second)
	h.OnError(ctx, "POST", "/v1/layout", nil)
}

func TestRegister(t *testing.T) {
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Fatal("Pipeline() should default to NoopPipelineHooks")
	}

	cacheOnly := &testCacheHooks{}
	restoreCache := Register(cacheOnly)
	if Cache() != cacheOnly {
		t.Error("Register() should install cache hooks")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Register() should leave unimplemented hooks in place")
	}

	all := NewLogHooks(log.New(io.Discard))
	restoreAll := Register(all)
	if Pipeline() != all || Cache() != all || HTTP() != all {
		t.Error("Register() should install every implemented interface")
	}

	restoreAll()
	if Cache() != cacheOnly {
		t.Error("restore should bring back the previous cache hooks")
	}
	restoreCache()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("restore should bring back the no-op cache hooks")
	}
}

func TestRegisterIgnoresUnrelatedValues(t *testing.T) {
	restore := Register("not a hook")
	defer restore()

	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Register() of a non-hook value should change nothing")
	}
}

// Test implementations
type testCacheHooks struct{ NoopCacheHooks }

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnLayoutComplete(ctx, 3, true, time.Millisecond, nil)
	h.OnCacheHit(ctx, "artifact")
	h.OnError(ctx, "POST", "/v1/render/svg", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"layout complete", "rounds=3", "inside=true", "cache hit", "request failed", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
