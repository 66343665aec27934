package main

import (
	"context"
	"log"
	"os"

	"github.com/Shamu9311/sport-front/internal/buildinfo"
	"github.com/Shamu9311/sport-front/internal/cli"
	"github.com/Shamu9311/sport-front/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
