package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/codeforgood-org/screenshot-capturer/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	app := cmd.NewApp()
	code := app.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
