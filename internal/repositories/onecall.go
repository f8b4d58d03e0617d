package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"blueprint/config"
	"blueprint/internal/models"
	"blueprint/pkg/logger"
)

// OneCallRepository talks to the OpenWeather One Call 3.0 API for a single configured location.
type OneCallRepository struct {
	cfg        config.WeatherConfig
	httpClient HTTPClient
	l          *logger.Logger
}

// NewOneCallRepository uses a plain http.Client when httpClient is nil.
func NewOneCallRepository(cfg config.WeatherConfig, l *logger.Logger, httpClient HTTPClient) (*OneCallRepository, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &OneCallRepository{
		cfg:        cfg,
		httpClient: httpClient,
		l:          l,
	}, nil
}

func (o *OneCallRepository) Name() string {
	return "openweather-onecall"
}

// Endpoint builds the request URL; query parameters already present in BaseURL are kept.
func (o *OneCallRepository) Endpoint() *url.URL {
	u, _ := url.Parse(o.cfg.BaseURL)

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(o.cfg.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(o.cfg.Longitude, 'f', -1, 64))
	q.Set("units", o.cfg.Units)
	q.Set("appid", o.cfg.APIKey)
	u.RawQuery = q.Encode()

	return u
}

func (o *OneCallRepository) FetchWeather(ctx context.Context) (models.WeatherSnapshot, error) {
	return o.FetchSnapshot(ctx, o.Endpoint())
}

// FetchSnapshot issues one GET against endpoint. It fails with *NetworkError on transport
// problems or non-2xx statuses and with *DecodeError when the body has the wrong shape.
func (o *OneCallRepository) FetchSnapshot(ctx context.Context, endpoint *url.URL) (models.WeatherSnapshot, error) {
	params := map[string]any{
		"repository": o.Name(),
		"host":       endpoint.Host,
		"lat":        endpoint.Query().Get("lat"),
		"lon":        endpoint.Query().Get("lon"),
	}

	o.l.Info("making onecall API request", params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return models.WeatherSnapshot{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	o.l.Info("received onecall API response", map[string]any{
		"repository": o.Name(),
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.WeatherSnapshot{}, &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return models.WeatherSnapshot{}, &NetworkError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        fmt.Errorf("HTTP error (status %d)", resp.StatusCode),
		}
	}

	snapshot, err := DecodeSnapshot(body)
	if err != nil {
		var derr *DecodeError
		if errors.As(err, &derr) {
			o.l.Warning("failed to decode onecall response", map[string]any{
				"repository": o.Name(),
				"kind":       string(derr.Kind),
				"field":      derr.Field,
			})
		}
		return models.WeatherSnapshot{}, err
	}

	o.l.Info("parsed API response", map[string]any{
		"repository": o.Name(),
		"hourly":     len(snapshot.Hourly),
	})

	return snapshot, nil
}

type oneCallPayload struct {
	Current *currentPayload `json:"current" validate:"required"`
	Hourly  []hourlyPayload `json:"hourly" validate:"required,dive"`
}

type currentPayload struct {
	Temp      *float64           `json:"temp" validate:"required"`
	Pressure  *int               `json:"pressure" validate:"required"`
	Humidity  *int               `json:"humidity" validate:"required"`
	UVI       *float64           `json:"uvi" validate:"required"`
	WindSpeed *float64           `json:"wind_speed" validate:"required"`
	Weather   []conditionPayload `json:"weather" validate:"required,dive"`
	Rain      *models.RainAmount `json:"rain"`
}

type hourlyPayload struct {
	Temp      *float64           `json:"temp" validate:"required"`
	UVI       *float64           `json:"uvi" validate:"required"`
	WindSpeed *float64           `json:"wind_speed" validate:"required"`
	Weather   []conditionPayload `json:"weather" validate:"required,dive"`
	Rain      *models.RainAmount `json:"rain"`
}

type conditionPayload struct {
	Main *string `json:"main" validate:"required"`
	Icon string  `json:"icon"`
}

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeSnapshot decodes a One Call body. Decoding is all-or-nothing: rain, rain.1h and icon
// may be absent, every other field is required.
func DecodeSnapshot(body []byte) (models.WeatherSnapshot, error) {
	var payload oneCallPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return models.WeatherSnapshot{}, &DecodeError{Kind: DecodeTypeMismatch, Field: typeErr.Field, Err: err}
		}
		return models.WeatherSnapshot{}, &DecodeError{Kind: DecodeMalformed, Err: err}
	}

	if err := payloadValidator.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			_, field, _ := strings.Cut(verrs[0].Namespace(), ".")
			return models.WeatherSnapshot{}, &DecodeError{
				Kind:  DecodeMissingField,
				Field: field,
				Err:   fmt.Errorf("%d required field(s) missing", len(verrs)),
			}
		}
		return models.WeatherSnapshot{}, &DecodeError{Kind: DecodeMalformed, Err: err}
	}

	return payload.snapshot(), nil
}

func (p oneCallPayload) snapshot() models.WeatherSnapshot {
	c := p.Current
	var hourly []models.HourlyReading
	for _, h := range p.Hourly {
		hourly = append(hourly, models.HourlyReading{
			Temp:       *h.Temp,
			UVI:        *h.UVI,
			WindSpeed:  *h.WindSpeed,
			Conditions: conditions(h.Weather),
			Rain:       h.Rain,
		})
	}

	return models.WeatherSnapshot{
		Current: models.CurrentReading{
			Temp:       *c.Temp,
			Pressure:   *c.Pressure,
			Humidity:   *c.Humidity,
			UVI:        *c.UVI,
			WindSpeed:  *c.WindSpeed,
			Conditions: conditions(c.Weather),
			Rain:       c.Rain,
		},
		Hourly: hourly,
	}
}

func conditions(in []conditionPayload) []models.WeatherCondition {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.WeatherCondition, 0, len(in))
	for _, w := range in {
		out = append(out, models.WeatherCondition{Main: *w.Main, Icon: w.Icon})
	}
	return out
}
