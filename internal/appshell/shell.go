// Package appshell is the process boundary shared by the binaries: signals,
// argv and the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// exitInterrupted is the shell convention for a run stopped by SIGINT.
const exitInterrupted = 130

// RunFunc is an application entry point returning its exit code.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run with os.Args and exits. Interrupt and SIGTERM cancel the
// context; a run that then reports success exits 130 instead.
func Main(run RunFunc) {
	os.Exit(execute(run, os.Args[1:], os.Stdout, os.Stderr))
}

func execute(run RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = exitInterrupted
	}
	return code
}
