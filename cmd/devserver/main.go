package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophgive/internal/buildinfo"
	"github.com/dmitrijs2005/gophgive/internal/devserver"
	"github.com/dmitrijs2005/gophgive/internal/devserver/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(2)
	}

	devserver.NewApp(cfg).Run(context.Background())
}
