// Package observability provides hooks for timing and tracing recipe
// generation.
//
// The pipeline reports stage events through the registered hooks without
// depending on any particular backend. The default hooks do nothing; the
// CLI registers hooks that log stage timings at debug level.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetAdvisoryHooks(&myAdvisoryHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLoadStart(ctx, manifest)
//	// ... load ...
//	observability.Pipeline().OnLoadComplete(ctx, pkg, depCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the recipe pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, manifest string)
	OnLoadComplete(ctx context.Context, pkg string, depCount int, duration time.Duration, err error)

	// Classify events
	OnClassifyStart(ctx context.Context, depCount int)
	OnClassifyComplete(ctx context.Context, uriCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, templates []string)
	OnRenderComplete(ctx context.Context, files []string, duration time.Duration, err error)
}

// =============================================================================
// Advisory Hooks
// =============================================================================

// AdvisoryHooks receives the non-fatal fallbacks taken during a run.
type AdvisoryHooks interface {
	// OnAdvisory records one advisory raised by a pipeline stage.
	OnAdvisory(ctx context.Context, stage, message string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                             {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnClassifyStart(context.Context, int)                            {}
func (NoopPipelineHooks) OnClassifyComplete(context.Context, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                         {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
}

// NoopAdvisoryHooks is a no-op implementation of AdvisoryHooks.
type NoopAdvisoryHooks struct{}

func (NoopAdvisoryHooks) OnAdvisory(context.Context, string, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	advisoryHooks AdvisoryHooks = NoopAdvisoryHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetAdvisoryHooks registers custom advisory hooks.
func SetAdvisoryHooks(h AdvisoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		advisoryHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Advisory returns the registered advisory hooks.
func Advisory() AdvisoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return advisoryHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	advisoryHooks = NoopAdvisoryHooks{}
}
