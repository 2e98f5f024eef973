package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/photosync/internal/adapter"
	"github.com/MKhiriev/photosync/internal/catalog"
	"github.com/MKhiriev/photosync/internal/client"
	"github.com/MKhiriev/photosync/internal/config"
	"github.com/MKhiriev/photosync/internal/console"
	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

// run returns the process exit status. Deferred cleanups run before main
// exits.
func run() int {
	printer := console.NewPrinter(os.Stdout)
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printer.BuildInfo(build)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		printer.Error(err)
		return 1
	}

	log, closeLog := logger.NewFileLogger("photosync", cfg.App.LogFile)
	defer closeLog()
	log.Info().Str("build", build.String()).Msg("photosync starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	remote, err := adapter.NewHTTPPhotoService(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Err(err).Msg("create photo service adapter")
		printer.Error(err)
		return 1
	}

	app, err := client.NewApp(cfg, remote, catalog.NewJSONFileSource(cfg.Catalog.Path, log), printer, log)
	if err != nil {
		log.Err(err).Msg("init app error")
		printer.Error(err)
		return 1
	}

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("sync failed")
		printer.Error(err)
		return 1
	}

	return 0
}
