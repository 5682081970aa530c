package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AnyUserName/sharpgrade/cmd"
	"github.com/AnyUserName/sharpgrade/internal/logging"
)

func main() {
	// register sigterm for graceful shutdown
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()
	go func() {
		defer cnc() // restores default signal handling so a second ctrl-c kills
		<-ctx.Done()
	}()
	ctx = logging.AppendCtx(ctx, slog.String("app", "sharpgrade"))

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
