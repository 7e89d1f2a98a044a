package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan announces the source images a build run is about to process.
	EmitPlan(ctx context.Context, images []string)
}

// Span represents one source image being processed.
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Dir is the source directory the span belongs to.
	Dir string
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithDir tags the span with its source directory.
func WithDir(dir string) SpanOption {
	return func(c *SpanConfig) {
		c.Dir = dir
	}
}
