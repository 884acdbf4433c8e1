package web

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthServer is the liveness endpoint used by the cloud host. It runs on
// its own goroutine and never touches the game state.
type HealthServer struct {
	app       *fiber.App
	addr      string
	startTime time.Time
}

func NewHealthServer(addr string) *HealthServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &HealthServer{
		app:       app,
		addr:      addr,
		startTime: time.Now(),
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(s.startTime).Round(time.Second).String(),
		})
	})

	return s
}

// Start begins serving in the background.
func (s *HealthServer) Start() {
	go func() {
		slog.Info("Health endpoint listening",
			slog.String("type", "sys"),
			slog.String("addr", s.addr))
		if err := s.app.Listen(s.addr); err != nil {
			slog.Error("Health endpoint stopped",
				slog.String("type", "sys"),
				slog.Any("error", err))
		}
	}()
}

func (s *HealthServer) Shutdown() error {
	return s.app.Shutdown()
}
