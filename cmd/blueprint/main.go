package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"blueprint/config"
	v1 "blueprint/internal/controllers/http/v1"
	"blueprint/internal/metrics"
	"blueprint/internal/repositories"
	"blueprint/internal/services/overlays"
	"blueprint/internal/services/weather"
	"blueprint/pkg/httpserver"
	"blueprint/pkg/logger"
	"blueprint/pkg/observe"
)

// @title Blueprint Weather API
// @version 1.0.0
// @description Current conditions and an hourly forecast window from OpenWeather OneCall,
// @description plus line-string map overlays from GeoJSON.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Current conditions and hourly forecast
// @tag.name Overlays
// @tag.description Line-string map overlays from GeoJSON
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cnf, err := config.NewConfig(config.DefaultPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.SentryDSN != "" {
		hook, err = observe.NewSentryHook(cnf.AppEnv, cnf.AppName, !cnf.IsProduction(), cnf.SentryDSN)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		writers = append(writers, hook)
	}

	l := logger.NewZapLogger(cnf.AppName, cnf.AppEnv, cnf.LogLevel, writers...)
	if hook != nil {
		hook.SetLogger(l)
	}

	m := metrics.NewMetrics(cnf.AppName)

	repo, err := repositories.NewOneCallRepository(cnf.Weather, l, nil)
	if err != nil {
		l.Fatal("cannot create weather repository", map[string]any{"err": err.Error()})
	}

	source, err := repositories.NewGeoSource(cnf.GeoJSON, nil)
	if err != nil {
		l.Fatal("cannot create geojson source", map[string]any{"err": err.Error()})
	}

	weatherService := weather.NewWeatherService(repo, m, l)
	loader := overlays.NewLoader(m, l)

	// An unreadable overlay document is a startup failure, not an empty map.
	if _, err := loader.Load(ctx, source); err != nil {
		l.Fatal("cannot load overlays", map[string]any{"source": source.Name(), "err": err.Error()})
	}

	app := httpserver.InitFiberServer(cnf.AppName, nil, m.HTTPMiddleware())

	v1.NewRouter(
		app,
		cnf.Weather,
		weatherService,
		loader,
		source,
		m,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":    cnf.Port,
		"version": cnf.AppVersion,
		"geojson": source.Name(),
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
