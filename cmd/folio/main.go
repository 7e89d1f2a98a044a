// Package main is the entry point for the folio image pipeline.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/folio-site/folio/cmd/folio/commands"
	"github.com/folio-site/folio/internal/app"
	_ "github.com/folio-site/folio/internal/wiring"
	"github.com/grindlemire/graft"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
