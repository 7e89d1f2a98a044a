package markup

import (
	"context"

	"github.com/folio-site/folio/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the picture markup Graft node.
const NodeID graft.ID = "adapter.markup"

func init() {
	graft.Register(graft.Node[ports.PictureRenderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PictureRenderer, error) {
			return NewRenderer(), nil
		},
	})
}
