package fetch

import (
	"context"

	"github.com/folio-site/folio/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the fetcher factory Graft node.
const NodeID graft.ID = "adapter.fetch"

func init() {
	graft.Register(graft.Node[ports.FetcherFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FetcherFactory, error) {
			return Factory{}, nil
		},
	})
}
