package app_test

import (
	"context"
	"testing"

	"github.com/folio-site/folio/internal/app"
	_ "github.com/folio-site/folio/internal/wiring" // Register providers
	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
)

func TestAppWiring(t *testing.T) {
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
