package interceptor

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

/**
 * @file: exception_interceptor.go
 * @description: panic recover
 */

// ExceptionInterceptor panic 恢复拦截器
func ExceptionInterceptor() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
	})
}
