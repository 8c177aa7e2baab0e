package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/deployhq/internal/buildinfo"
	"github.com/dmitrijs2005/deployhq/internal/cli"
	"github.com/dmitrijs2005/deployhq/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
