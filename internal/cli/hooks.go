package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tulip/cargo-bitbake/pkg/observability"
)

// logHooks reports pipeline stage timings at debug level and advisories
// at warn level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.AdvisoryHooks = (*logHooks)(nil)
)

func (h *logHooks) OnLoadStart(_ context.Context, manifest string) {
	if manifest == "" {
		manifest = "(search)"
	}
	h.logger.Debug("loading manifest", "path", manifest)
}

func (h *logHooks) OnLoadComplete(_ context.Context, pkg string, depCount int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "duration", dur, "err", err)
		return
	}
	h.logger.Debug("load complete", "package", pkg, "dependencies", depCount, "duration", dur)
}

func (h *logHooks) OnClassifyStart(_ context.Context, depCount int) {
	h.logger.Debug("classifying sources", "dependencies", depCount)
}

func (h *logHooks) OnClassifyComplete(_ context.Context, uriCount int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("classify failed", "duration", dur, "err", err)
		return
	}
	h.logger.Debug("classify complete", "uris", uriCount, "duration", dur)
}

func (h *logHooks) OnRenderStart(_ context.Context, templates []string) {
	h.logger.Debug("rendering", "templates", templates)
}

func (h *logHooks) OnRenderComplete(_ context.Context, files []string, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "duration", dur, "err", err)
		return
	}
	h.logger.Debug("render complete", "files", len(files), "duration", dur)
}

func (h *logHooks) OnAdvisory(_ context.Context, stage, message string) {
	h.logger.Warn(message, "stage", stage)
}

// registerHooks routes pipeline events to logger.
func registerHooks(logger *log.Logger) {
	h := &logHooks{logger: logger}
	observability.SetPipelineHooks(h)
	observability.SetAdvisoryHooks(h)
}
