package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mandelsoft/vfs/pkg/osfs"

	"github.com/KimNorgaard/go-envfile/internal/command"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd := command.NewEnvfileCommand(osfs.New())
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
