package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"blueprint/config"
	_ "blueprint/docs"
	"blueprint/internal/metrics"
	"blueprint/internal/models"
	"blueprint/internal/repositories"
	"blueprint/pkg/logger"
)

// WeatherFetcher is satisfied by *weather.WeatherService.
type WeatherFetcher interface {
	FetchWeather(ctx context.Context) (models.WeatherSnapshot, error)
}

// OverlayLoader is satisfied by *overlays.Loader.
type OverlayLoader interface {
	Load(ctx context.Context, src repositories.GeoSource) ([]models.OverlayShape, error)
}

type routes struct {
	cfg      config.WeatherConfig
	weather  WeatherFetcher
	overlays OverlayLoader
	source   repositories.GeoSource
	l        *logger.Logger
}

func NewRouter(
	app *fiber.App,
	cfg config.WeatherConfig,
	weatherService WeatherFetcher,
	overlayLoader OverlayLoader,
	source repositories.GeoSource,
	m *metrics.Metrics,
	l *logger.Logger,
) {
	r := &routes{
		cfg:      cfg,
		weather:  weatherService,
		overlays: overlayLoader,
		source:   source,
		l:        l,
	}

	if m != nil {
		app.Get("/metrics", m.Handler())
	}

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	app.Get("/weather", r.handleWeatherCall)
	app.Get("/overlays", r.handleOverlaysCall)
}
