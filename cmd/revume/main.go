package main

import (
	"context"
	"log"
	"os"

	"github.com/revumeapp/revume-cli/internal/buildinfo"
	"github.com/revumeapp/revume-cli/internal/client/cli"
	"github.com/revumeapp/revume-cli/internal/client/config"
	"github.com/revumeapp/revume-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault()

	app := cli.NewApp(ctx, cfg, logger)
	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
