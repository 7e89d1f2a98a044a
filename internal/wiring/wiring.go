// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/folio-site/folio/internal/adapters/codec"
	_ "github.com/folio-site/folio/internal/adapters/config"
	_ "github.com/folio-site/folio/internal/adapters/fetch"
	_ "github.com/folio-site/folio/internal/adapters/fs"
	_ "github.com/folio-site/folio/internal/adapters/linear"
	_ "github.com/folio-site/folio/internal/adapters/logger"
	_ "github.com/folio-site/folio/internal/adapters/manifest"
	_ "github.com/folio-site/folio/internal/adapters/markup"
	_ "github.com/folio-site/folio/internal/adapters/telemetry"
	_ "github.com/folio-site/folio/internal/adapters/watcher"
	// Register app nodes.
	_ "github.com/folio-site/folio/internal/app"
)
