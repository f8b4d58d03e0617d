package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"blueprint/internal/models"
	"blueprint/internal/repositories"
	"blueprint/internal/services/weather"
)

// WeatherResponse represents the current conditions and the requested hourly window
type WeatherResponse struct {
	Location Location               `json:"location"`
	Units    string                 `json:"units" example:"metric"`
	Current  models.CurrentReading  `json:"current"`
	Hourly   []models.HourlyReading `json:"hourly"`
}

type Location struct {
	Lat float64 `json:"lat" example:"33.6846"`
	Lon float64 `json:"lon" example:"-117.8265"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"weather provider unavailable"`
}

// GetWeather godoc
// @Summary Get current weather and hourly forecast
// @Description Fetches the OpenWeather OneCall document for the configured location and returns the first N hourly readings
// @Tags Weather
// @Produce json
// @Param hours query integer false "Number of hourly readings (default from config)" minimum(0) example(12)
// @Success 200 {object} WeatherResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid or out of range window"
// @Failure 502 {object} ErrorResponse "Weather provider failed or returned an unexpected payload"
// @Router /weather [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/weather?hours=6"
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	window := r.cfg.DefaultWindow
	if h := c.Query("hours"); h != "" {
		n, err := strconv.Atoi(h)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "Invalid hours format",
			})
		}
		window = n
	}

	snapshot, err := r.weather.FetchWeather(c.UserContext())
	if err != nil {
		r.l.Error(err, map[string]any{"hours": window})

		msg := "weather provider unavailable"
		if errors.Is(err, repositories.ErrDecode) {
			msg = "weather provider returned an unexpected payload"
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: msg})
	}

	hourly, err := weather.Window(snapshot.Hourly, window)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(WeatherResponse{
		Location: Location{Lat: r.cfg.Latitude, Lon: r.cfg.Longitude},
		Units:    r.cfg.Units,
		Current:  snapshot.Current,
		Hourly:   hourly,
	})
}
