// Package apirouter chứa hạ tầng đăng ký route: prefix API, đăng ký route
// kèm middleware và gom các hàm đăng ký của từng domain.
package apirouter

import (
	"github.com/gofiber/fiber/v3"
)

// RoutePrefix prefix chung của API
const RoutePrefix = "/api"

// RoutePrefixV1 prefix của API phiên bản 1
const RoutePrefixV1 = RoutePrefix + "/v1"

// RegisterFunc là hàm đăng ký route của một domain lên router v1
type RegisterFunc func(v1 fiber.Router) error

// RegisterRouteWithMiddleware đăng ký route với middleware qua route group.
// Fiber v3 yêu cầu gắn middleware qua group.Use thay vì truyền trực tiếp
// vào method đăng ký route.
func RegisterRouteWithMiddleware(router fiber.Router, groupPath string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(groupPath)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}
	routeGroup.Add([]string{method}, path, handler)
}

// SetupRoutes tạo group /api/v1 và chạy các hàm đăng ký domain
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	v1 := app.Group(RoutePrefixV1)
	for _, reg := range regs {
		if err := reg(v1); err != nil {
			return err
		}
	}
	return nil
}
