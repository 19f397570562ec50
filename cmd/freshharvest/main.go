package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt := &runtime{out: os.Stdout}
	if err := newApp(rt).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "freshharvest: %v\n", err)
		stop()
		os.Exit(1)
	}
}
