// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about arrangement runs, cache lookups,
// playback and the HTTP API.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks carry instrumentation only. Board state is never stored here.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetArrangeHooks(&myArrangeHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Arrange().OnArrangeStart(ctx, len(items))
//	// ... solve ...
//	observability.Arrange().OnArrangeComplete(ctx, len(items), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Arrange Hooks
// =============================================================================

// ArrangeHooks receives events from the arrangement orchestrator.
type ArrangeHooks interface {
	// Solve events
	OnArrangeStart(ctx context.Context, itemCount int)
	OnArrangeComplete(ctx context.Context, itemCount int, duration time.Duration, err error)

	// OnSnapshotSaved records a snapshot appended to a board timeline.
	OnSnapshotSaved(ctx context.Context, boardID string, index int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Playback Hooks
// =============================================================================

// PlaybackHooks receives events from timeline playback.
type PlaybackHooks interface {
	OnPlaybackStart(length int)
	OnPlaybackTick(index int)
	OnPlaybackStop(index int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopArrangeHooks is a no-op implementation of ArrangeHooks.
type NoopArrangeHooks struct{}

func (NoopArrangeHooks) OnArrangeStart(context.Context, int)                           {}
func (NoopArrangeHooks) OnArrangeComplete(context.Context, int, time.Duration, error) {}
func (NoopArrangeHooks) OnSnapshotSaved(context.Context, string, int)                  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopPlaybackHooks is a no-op implementation of PlaybackHooks.
type NoopPlaybackHooks struct{}

func (NoopPlaybackHooks) OnPlaybackStart(int) {}
func (NoopPlaybackHooks) OnPlaybackTick(int)  {}
func (NoopPlaybackHooks) OnPlaybackStop(int)  {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                          {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	arrangeHooks  ArrangeHooks  = NoopArrangeHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	playbackHooks PlaybackHooks = NoopPlaybackHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetArrangeHooks registers custom arrangement hooks.
// This should be called once at application startup.
func SetArrangeHooks(h ArrangeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		arrangeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetPlaybackHooks registers custom playback hooks.
func SetPlaybackHooks(h PlaybackHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		playbackHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Arrange returns the registered arrangement hooks.
func Arrange() ArrangeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return arrangeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Playback returns the registered playback hooks.
func Playback() PlaybackHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return playbackHooks
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
	arrangeHooks = NoopArrangeHooks{}
	cacheHooks = NoopCacheHooks{}
	playbackHooks = NoopPlaybackHooks{}
	httpHooks = NoopHTTPHooks{}
}
