package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"audio-api/internal/api/errors"
	"audio-api/internal/api/v1/dto"
	"audio-api/internal/app/metrics"
	"audio-api/internal/app/util/files"
)

// AdapterLimits bounds calls into an external engine.
// Zero values mean unlimited concurrency and no timeout.
type AdapterLimits struct {
	MaxConcurrency int64
	Timeout        time.Duration
}

type adapterGate struct {
	operation string
	sem       *semaphore.Weighted
	timeout   time.Duration
	metrics   *metrics.Metrics
}

func newAdapterGate(operation string, limits AdapterLimits, m *metrics.Metrics) *adapterGate {
	g := &adapterGate{operation: operation, timeout: limits.Timeout, metrics: m}
	if limits.MaxConcurrency > 0 {
		g.sem = semaphore.NewWeighted(limits.MaxConcurrency)
	}
	return g
}

// run waits for a free slot and then calls fn. The context passed to fn
// survives client disconnects and is bounded only by the gate timeout.
func (g *adapterGate) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if g.sem != nil {
		if err := g.sem.Acquire(ctx, 1); err != nil {
			return errors.NewServiceUnavailableError("request cancelled while waiting for a free worker")
		}
		defer g.sem.Release(1)
	}

	runCtx := context.WithoutCancel(ctx)
	if g.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, g.timeout)
		defer cancel()
	}

	done := g.metrics.AdapterStart(g.operation)
	err := fn(runCtx)
	done(err)
	return err
}

// stageUpload copies the upload to path and closes the upload handle.
func stageUpload(ws *files.Workspace, path string, upload dto.Upload) (int64, error) {
	defer upload.Content.Close()
	return ws.WriteUpload(path, upload.Content)
}

func cleanupWorkspace(ws *files.Workspace, m *metrics.Metrics, logger *zap.Logger) {
	if err := ws.Cleanup(); err != nil {
		m.CleanupFailed()
		logger.Warn("failed to remove workspace", zap.String("dir", ws.Dir()), zap.Error(err))
	}
}
