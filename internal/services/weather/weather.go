package weather

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"blueprint/internal/metrics"
	"blueprint/internal/models"
	"blueprint/internal/repositories"
	"blueprint/pkg/logger"
)

var ErrIndexOutOfRange = errors.New("window exceeds hourly forecast")

// WeatherService represents the weather service.
type WeatherService struct {
	repo repositories.WeatherRepository
	m    *metrics.Metrics
	l    *logger.Logger
}

func NewWeatherService(repo repositories.WeatherRepository, m *metrics.Metrics, l *logger.Logger) *WeatherService {
	return &WeatherService{
		repo: repo,
		m:    m,
		l:    l,
	}
}

// FetchWeather performs one upstream round trip. Two calls are two requests.
func (s *WeatherService) FetchWeather(ctx context.Context) (models.WeatherSnapshot, error) {
	start := time.Now()
	s.l.Debug("fetching weather", map[string]any{"repo": s.repo.Name()})

	snapshot, err := s.repo.FetchWeather(ctx)
	s.m.ObserveWeatherFetch(fetchResult(err), time.Since(start))
	if err != nil {
		s.l.Warning("failed to fetch weather", map[string]any{"repo": s.repo.Name(), "err": err.Error()})
		return models.WeatherSnapshot{}, errors.Wrap(err, "fetch weather")
	}

	s.l.Info("successfully fetched weather", map[string]any{
		"repo":   s.repo.Name(),
		"hourly": len(snapshot.Hourly),
	})

	return snapshot, nil
}

// Result is the single value delivered by FetchWeatherAsync.
type Result struct {
	Snapshot models.WeatherSnapshot
	Err      error
}

// FetchWeatherAsync starts a fetch and returns a channel that yields exactly one Result and
// is then closed. Cancelling ctx aborts the request.
func (s *WeatherService) FetchWeatherAsync(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)

	go func() {
		defer close(out)
		snapshot, err := s.FetchWeather(ctx)
		out <- Result{Snapshot: snapshot, Err: err}
	}()

	return out
}

// Window returns a copy of the first n hourly readings in order.
// n outside [0, len(hourly)] yields ErrIndexOutOfRange.
func Window(hourly []models.HourlyReading, n int) ([]models.HourlyReading, error) {
	if n < 0 || n > len(hourly) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "requested %d of %d hours", n, len(hourly))
	}

	out := make([]models.HourlyReading, n)
	for i := range out {
		out[i] = hourly[i].Clone()
	}

	return out, nil
}

func fetchResult(err error) string {
	switch {
	case err == nil:
		return metrics.FetchOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.FetchCanceled
	case errors.Is(err, repositories.ErrDecode):
		return metrics.FetchDecodeError
	default:
		return metrics.FetchNetworkError
	}
}
