package interceptor

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-bizcore/bizcore/internal/core/constant"
	httpx "github.com/go-bizcore/bizcore/pkg/http"
)

/**
 * @file: unified_resp_interceptor.go
 * @description: 统一响应拦截器
 */

// UnifiedResponseInterceptor 统一响应拦截器
// c.Locals(constant.DETAIL, value) 用于设置响应数据
func UnifiedResponseInterceptor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			return err
		}

		// 业务逻辑错误
		if c.Response().StatusCode() != fiber.StatusOK {
			return httpx.WithRepErrMsg(c, httpx.Failed.Code, httpx.Failed.Msg, c.Path())
		}

		// 业务逻辑正确, 设置响应数据
		if c.Response().StatusCode() >= fiber.StatusOK && c.Response().StatusCode() < fiber.StatusMultipleChoices {
			if len(c.Response().Body()) > 0 {
				return nil
			}
			if detail := c.Locals(constant.DETAIL); detail != nil {
				return httpx.WithRepJSON(c, detail)
			}

			// 业务逻辑正确, 无响应数据, 只返回结果
			if c.Locals(constant.OPERATION) != nil {
				return httpx.WithRepNotDetail(c)
			}
		}

		return nil
	}
}
