package interceptor

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-bizcore/bizcore/pkg/id"
)

/**
 * @file: request_id_interceptor.go
 * @description: request id
 */

const RequestIdHeader = "X-Request-Id"

// RequestIdInterceptor 请求ID拦截器；调用方未携带时生成短ID，响应原样回传
func RequestIdInterceptor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestId := c.Get(RequestIdHeader)
		if requestId == "" {
			requestId = id.ShortId()
		}
		c.Set(RequestIdHeader, requestId)
		return c.Next()
	}
}
