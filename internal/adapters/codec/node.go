package codec

import (
	"context"

	"github.com/folio-site/folio/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the image codec Graft node.
const NodeID graft.ID = "adapter.codec"

func init() {
	graft.Register(graft.Node[ports.ImageCodec]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImageCodec, error) {
			return New(), nil
		},
	})
}
