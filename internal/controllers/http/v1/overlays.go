package http

import (
	"github.com/gofiber/fiber/v2"

	"blueprint/internal/models"
)

type OverlaysResponse struct {
	Count    int                   `json:"count" example:"5"`
	Overlays []models.OverlayShape `json:"overlays"`
}

// GetOverlays godoc
// @Summary Get line-string map overlays
// @Description Loads the configured GeoJSON source and returns its line strings. Points and polygons are dropped.
// @Tags Overlays
// @Produce json
// @Param tag query string false "Only overlays carrying this tag" example(lit)
// @Success 200 {object} OverlaysResponse "Successful response"
// @Failure 500 {object} ErrorResponse "GeoJSON source unreadable or invalid"
// @Router /overlays [get]
func (r *routes) handleOverlaysCall(c *fiber.Ctx) error {
	shapes, err := r.overlays.Load(c.UserContext(), r.source)
	if err != nil {
		r.l.Error(err, map[string]any{"source": r.source.Name()})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to load overlays",
		})
	}

	if tag := c.Query("tag"); tag != "" {
		shapes = models.FilterByTag(shapes, tag)
	}

	return c.JSON(OverlaysResponse{Count: len(shapes), Overlays: shapes})
}
