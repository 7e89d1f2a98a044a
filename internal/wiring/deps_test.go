package wiring_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/folio-site/folio/internal/"

// TestEveryNodeIsRegistered ensures each package declaring a Graft node is
// imported by the wiring package, so ExecuteFor can reach it.
func TestEveryNodeIsRegistered(t *testing.T) {
	file, err := parser.ParseFile(token.NewFileSet(), "wiring.go", nil, parser.ImportsOnly)
	require.NoError(t, err)

	imported := make(map[string]bool)
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		require.NoError(t, err)
		imported[path] = true
	}

	nodes, err := filepath.Glob("../adapters/*/node.go")
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
	nodes = append(nodes, "../app/node.go")

	for _, node := range nodes {
		_, err := os.Stat(node)
		require.NoError(t, err)
		rel, err := filepath.Rel("..", filepath.Dir(node))
		require.NoError(t, err)
		pkg := modulePath + filepath.ToSlash(rel)
		assert.True(t, imported[pkg], "%s declares a node but is not wired", pkg)
	}
}
