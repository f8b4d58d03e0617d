package repositories

import (
	"context"
	"net/http"

	"blueprint/internal/models"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherRepository fetches one snapshot per call. Implementations do not cache or retry.
type WeatherRepository interface {
	Name() string
	FetchWeather(ctx context.Context) (models.WeatherSnapshot, error)
}

// GeoSource supplies the raw bytes of a GeoJSON document.
type GeoSource interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
}
