package main

import (
	"context"
	"os"
	"os/signal"

	"news_moves/cmd/provider-cli/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	commands.ExecuteContext(ctx)
}
