// Package webapi provides the HTTP surface of the Green Points service.
// Handlers parse and validate input, delegate to the services and render
// either a Response envelope or RFC 9457 problem details.
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/greenpoints/pkg/config"
	"github.com/amirasaad/greenpoints/pkg/service/auth"
	pointssvc "github.com/amirasaad/greenpoints/pkg/service/points"
	usersvc "github.com/amirasaad/greenpoints/pkg/service/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services bundles everything the handlers need.
type Services struct {
	Points *pointssvc.Service
	User   *usersvc.Service
	Auth   *auth.Service
}

// New builds the Fiber application with rate limiting, panic recovery
// and all routes registered.
func New(cfg *config.App, svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "greenpoints",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	// Uses X-Forwarded-For when behind a proxy, falling back to the
	// direct IP.
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())
	app.Use(logger.New())

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Green Points API is running! ♻️")
	})

	AuthRoutes(app, svc.User, svc.Auth, cfg)
	PointsRoutes(app, svc.Points, svc.Auth, cfg)
	UserRoutes(app, svc.User, svc.Auth, cfg)

	return app
}
