package ports

import (
	"context"
	"time"
)

// Renderer presents build progress. It decouples telemetry collection from
// presentation so the same event stream can drive any output.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start begins the renderer's lifecycle.
	Start(ctx context.Context) error

	// Stop flushes buffered output and stops accepting events.
	Stop() error

	// Wait blocks until the renderer has terminated.
	Wait() error

	// OnPlanEmit is called once the source images of a run are known.
	OnPlanEmit(images []string)

	// OnUnitStart is called when an image starts processing.
	OnUnitStart(spanID, parentID, name string, startTime time.Time)

	// OnUnitLog is called when an image emits output.
	OnUnitLog(spanID string, data []byte)

	// OnUnitComplete is called when an image finishes. err is nil on success.
	OnUnitComplete(spanID string, endTime time.Time, err error)
}
