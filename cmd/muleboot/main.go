// Package main is the entry point for the muleboot bootstrapper.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/muleboot/cmd/muleboot/commands"
	"go.trai.ch/muleboot/internal/app"
	"go.trai.ch/muleboot/internal/core/domain"
	_ "go.trai.ch/muleboot/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 1
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		// The application already reported its own failure.
		var appExit *domain.AppExit
		if errors.As(err, &appExit) {
			return appExit.Code
		}
		components.Logger.Error(err)
		return domain.ExitCodeOf(err)
	}
	return 0
}
