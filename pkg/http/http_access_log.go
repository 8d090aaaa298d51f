package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/go-bizcore/bizcore/pkg/log"
)

// AccessLog 访问日志中间件
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log.Infow("access",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"ip", c.IP(),
			"elapsed", time.Since(start),
		)
		return err
	}
}
