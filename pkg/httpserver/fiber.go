package httpserver

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// InitFiberServer returns a Fiber app with panic recovery, CORS and liveness/readiness probes.
// ready reports readiness; nil means always ready.
func InitFiberServer(appName string, ready func() bool, middleware ...fiber.Handler) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:               appName,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(cors.New())

	hc := healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}
	if ready != nil {
		hc.ReadinessProbe = func(*fiber.Ctx) bool { return ready() }
	}
	s.Use(healthcheck.New(hc))

	for _, m := range middleware {
		s.Use(m)
	}

	return s
}
