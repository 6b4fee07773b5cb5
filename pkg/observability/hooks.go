// Package observability lets a binary watch the placement pipeline without
// the library packages depending on any metrics or tracing backend.
//
// Library code emits events through the package-level accessors:
//
//	observability.Pipeline().OnLayoutStart(ctx, controls)
//	observability.Cache().OnCacheHit(ctx, "layout")
//
// A binary installs receivers once at startup. [Register] accepts any value
// and installs it for every hook interface it implements:
//
//	restore := observability.Register(observability.NewLogHooks(logger))
//	defer restore()
//
// Until something is registered every event goes to a no-op receiver.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives scenario loading, placement and render events.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, controls int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, controls int)
	OnLayoutComplete(ctx context.Context, rounds int, inside bool, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "layout" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives served requests. route is the router pattern, not the
// raw path, so "/v1/render/svg" reports as "/v1/render/{format}".
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
	// OnError fires for server-side failures only.
	OnError(ctx context.Context, method, route string, err error)
}

// NoopPipelineHooks ignores every event. Embed it to implement a subset.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, bool, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// registry is swapped as a whole so readers never see a partial update.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var noop = &registry{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	http:     NoopHTTPHooks{},
}

var current atomic.Pointer[registry]

func init() { current.Store(noop) }

// Register installs h for each of PipelineHooks, CacheHooks and HTTPHooks
// that it implements, leaving the others in place. The returned function
// puts back the receivers that were active before the call.
func Register(h any) (restore func()) {
	prev := current.Load()
	next := *prev
	if p, ok := h.(PipelineHooks); ok {
		next.pipeline = p
	}
	if c, ok := h.(CacheHooks); ok {
		next.cache = c
	}
	if x, ok := h.(HTTPHooks); ok {
		next.http = x
	}
	current.Store(&next)
	return func() { current.Store(prev) }
}

// Pipeline returns the active pipeline receiver.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the active cache receiver.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the active HTTP receiver.
func HTTP() HTTPHooks { return current.Load().http }
