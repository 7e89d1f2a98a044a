package app

import (
	"context"

	"github.com/folio-site/folio/internal/adapters/codec"     //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/fetch"     //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/markup"    //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"github.com/folio-site/folio/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.ScannerNodeID,
			codec.NodeID,
			manifest.NodeID,
			fetch.NodeID,
			markup.NodeID,
			telemetry.TracerNodeID,
			linear.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	scanner, err := graft.Dep[ports.SourceScanner](ctx)
	if err != nil {
		return nil, err
	}
	imageCodec, err := graft.Dep[ports.ImageCodec](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}
	fetchers, err := graft.Dep[ports.FetcherFactory](ctx)
	if err != nil {
		return nil, err
	}
	pictures, err := graft.Dep[ports.PictureRenderer](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, scanner, imageCodec, store, fetchers, pictures, tracer, renderer, w, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
