// Package authrouter đăng ký các route thuộc domain auth: user, group,
// API key và token.
package authrouter

import (
	"github.com/gofiber/fiber/v3"

	authhdl "github.com/manthey/girder/internal/api/auth/handler"
	"github.com/manthey/girder/internal/api/middleware"
	apirouter "github.com/manthey/girder/internal/api/router"
)

// Handlers gom các handler của domain auth để đăng ký route
type Handlers struct {
	User   *authhdl.UserHandler
	Group  *authhdl.GroupHandler
	ApiKey *authhdl.ApiKeyHandler
	Token  *authhdl.TokenHandler
}

// Register trả về hàm đăng ký route auth lên v1
func Register(h *Handlers, auth *middleware.AuthMiddleware) apirouter.RegisterFunc {
	return func(v1 fiber.Router) error {
		registerUserRoutes(v1, h, auth)
		registerGroupRoutes(v1, h, auth)
		registerApiKeyRoutes(v1, h, auth)
		registerTokenRoutes(v1, h, auth)
		return nil
	}
}

func registerUserRoutes(router fiber.Router, h *Handlers, auth *middleware.AuthMiddleware) {
	router.Post("/user", h.User.HandleRegister)
	router.Post("/user/login", h.User.HandleLogin)
	requiredMiddleware := auth.Required()
	apirouter.RegisterRouteWithMiddleware(router, "/user", "POST", "/logout", []fiber.Handler{requiredMiddleware}, h.User.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(router, "/user", "GET", "/me", []fiber.Handler{requiredMiddleware}, h.User.HandleMe)
	apirouter.RegisterRouteWithMiddleware(router, "/user", "DELETE", "/:id", []fiber.Handler{requiredMiddleware}, h.User.HandleDelete)
	adminMiddleware := auth.AdminRequired()
	apirouter.RegisterRouteWithMiddleware(router, "/user", "PUT", "/:id/site-admin", []fiber.Handler{adminMiddleware}, h.User.HandleSetSiteAdmin)
}

func registerGroupRoutes(router fiber.Router, h *Handlers, auth *middleware.AuthMiddleware) {
	requiredMiddleware := auth.Required()
	apirouter.RegisterRouteWithMiddleware(router, "/group", "POST", "/", []fiber.Handler{requiredMiddleware}, h.Group.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(router, "/group", "GET", "/", []fiber.Handler{requiredMiddleware}, h.Group.HandleList)
	apirouter.RegisterRouteWithMiddleware(router, "/group", "POST", "/:id/member", []fiber.Handler{requiredMiddleware}, h.Group.HandleAddMember)
	apirouter.RegisterRouteWithMiddleware(router, "/group", "DELETE", "/:id/member", []fiber.Handler{requiredMiddleware}, h.Group.HandleRemoveMember)
	adminMiddleware := auth.AdminRequired()
	apirouter.RegisterRouteWithMiddleware(router, "/group", "DELETE", "/:id", []fiber.Handler{adminMiddleware}, h.Group.HandleDelete)
}

func registerApiKeyRoutes(router fiber.Router, h *Handlers, auth *middleware.AuthMiddleware) {
	// Endpoint đổi key lấy token không qua xác thực: secret là credential
	router.Post("/api_key/token", h.ApiKey.HandleExchange)
	requiredMiddleware := auth.Required()
	apirouter.RegisterRouteWithMiddleware(router, "/api_key", "POST", "/", []fiber.Handler{requiredMiddleware}, h.ApiKey.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(router, "/api_key", "GET", "/", []fiber.Handler{requiredMiddleware}, h.ApiKey.HandleList)
	apirouter.RegisterRouteWithMiddleware(router, "/api_key", "PUT", "/:id", []fiber.Handler{requiredMiddleware}, h.ApiKey.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(router, "/api_key", "DELETE", "/:id", []fiber.Handler{requiredMiddleware}, h.ApiKey.HandleDelete)
}

func registerTokenRoutes(router fiber.Router, h *Handlers, auth *middleware.AuthMiddleware) {
	router.Get("/token/scopes", h.Token.HandleScopes)
	requiredMiddleware := auth.Required()
	apirouter.RegisterRouteWithMiddleware(router, "/token", "GET", "/session", []fiber.Handler{requiredMiddleware}, h.Token.HandleSession)
}
