package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/folio-site/folio/internal/adapters/telemetry"
	"github.com/folio-site/folio/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/mock/gomock"
)

func TestBridge_ReportsSpanLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	var startedID, parentID string
	gomock.InOrder(
		renderer.EXPECT().OnUnitStart(gomock.Any(), "", "build", gomock.Any()),
		renderer.EXPECT().OnUnitStart(gomock.Any(), gomock.Any(), "photos/hasnur.jpg", gomock.Any()).
			Do(func(id, parent, _ string, _ time.Time) {
				startedID, parentID = id, parent
			}),
		renderer.EXPECT().OnUnitComplete(gomock.Any(), gomock.Any(), nil).
			Do(func(id string, _ time.Time, _ error) {
				assert.Equal(t, startedID, id)
			}),
		renderer.EXPECT().OnUnitComplete(gomock.Any(), gomock.Any(), nil),
	)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, root := tp.Tracer("test").Start(context.Background(), "build")
	_, child := tp.Tracer("test").Start(ctx, "photos/hasnur.jpg")
	child.End()
	root.End()

	assert.Equal(t, root.SpanContext().SpanID().String(), parentID)
}

func TestBridge_ErrorStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	renderer.EXPECT().OnUnitStart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
	renderer.EXPECT().OnUnitComplete(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ string, _ time.Time, err error) {
			require.Error(t, err)
			assert.Equal(t, "decode failed", err.Error())
		})

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "broken.jpg")
	span.SetStatus(codes.Error, "decode failed")
	span.End()
}

func TestBridge_NilRenderer(t *testing.T) {
	bridge := telemetry.NewBridge(nil)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "ignored")
	span.End()

	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, bridge.Shutdown(context.Background()))
}
