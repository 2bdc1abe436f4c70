// Command wmsctl is a terminal client for the WMS web API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wms-platform/wms-web/internal/cli"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	app := cli.NewApp(os.Stdout, os.Stderr)
	app.Version = version
	code := app.Execute(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}
