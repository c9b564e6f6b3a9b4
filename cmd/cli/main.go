package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophgive/internal/buildinfo"
	"github.com/dmitrijs2005/gophgive/internal/client/cli"
	"github.com/dmitrijs2005/gophgive/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
