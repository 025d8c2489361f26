package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/cmd/assetupload/cmd"
)

var (
	appVersion = cmd.VersionDev
	commitHash = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.NewCmd(appVersion, commitHash).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
