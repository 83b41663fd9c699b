package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-backend-kit/internal/config"
	myHTTP "github.com/MKhiriev/go-backend-kit/internal/handler/http"
	"github.com/MKhiriev/go-backend-kit/internal/logger"
	"github.com/MKhiriev/go-backend-kit/internal/metrics"
	"github.com/MKhiriev/go-backend-kit/internal/server"
	"github.com/MKhiriev/go-backend-kit/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// serverFactory builds the HTTP server; tests replace it.
type serverFactory func(*myHTTP.Handler, config.App, *logger.Logger) (server.Server, error)

func main() {
	build := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(build)

	if err := run(build, server.NewServer); err != nil {
		logger.NewLogger("go-backend-kit").Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

// run loads the configuration and serves until shutdown. The configured
// logger is closed before run returns, so the caller may exit right after.
func run(build models.BuildInfo, newServer serverFactory) error {
	cfg, err := config.Load(config.LoadOptions{
		EnvFile:   os.Getenv("ENV_FILE"),
		Preset:    os.Getenv("CONFIG_PRESET"),
		File:      os.Getenv("CONFIG_FILE"),
		EnvPrefix: os.Getenv("ENV_PREFIX"),
	})
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log, err := logger.New(cfg.App.Name, logger.OptionsFromConfig(cfg.Logging))
	if err != nil {
		return fmt.Errorf("error creating logger: %w", err)
	}
	defer log.Close()

	if masked, err := cfg.Masked(); err == nil {
		log.Debug().Any("config", masked).Msg("received configs")
	}

	var httpMetrics *metrics.HTTP
	if cfg.Features.EnableMetrics {
		httpMetrics = metrics.NewHTTP(metricsNamespace(cfg.App.Name))
	}

	handler := myHTTP.NewHandler(cfg, httpMetrics, build, log)
	srv, err := newServer(handler, cfg.App, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating server")
		return fmt.Errorf("error creating server: %w", err)
	}

	srv.RunServer()
	return nil
}

// metricsNamespace turns the application name into a valid metric prefix.
func metricsNamespace(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9' && len(out) > 0:
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
