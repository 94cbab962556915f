package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/sisimpur/sisimpur-cli/internal/buildinfo"
	"github.com/sisimpur/sisimpur-cli/internal/client/cli"
	"github.com/sisimpur/sisimpur-cli/internal/client/config"
	"github.com/sisimpur/sisimpur-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
