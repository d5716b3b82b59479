// Command vaultsetup configures a freshly cloned Obsidian + GitHub + Vercel
// CMS checkout.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/NielsdaWheelz/vaultsetup/internal/cli"
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		// A second interrupt kills the process.
		<-ctx.Done()
		stop()
	}()

	err := cli.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
