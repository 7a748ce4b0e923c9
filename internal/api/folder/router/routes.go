// Package folderrouter đăng ký các route thuộc domain folder.
package folderrouter

import (
	"github.com/gofiber/fiber/v3"

	authsvc "github.com/manthey/girder/internal/api/auth/service"
	folderhdl "github.com/manthey/girder/internal/api/folder/handler"
	"github.com/manthey/girder/internal/api/middleware"
	apirouter "github.com/manthey/girder/internal/api/router"
)

// Register trả về hàm đăng ký route folder lên v1. Route đọc dùng xác thực
// optional để caller ẩn danh vẫn thấy được folder public.
func Register(h *folderhdl.FolderHandler, auth *middleware.AuthMiddleware) apirouter.RegisterFunc {
	return func(v1 fiber.Router) error {
		optionalMiddleware := auth.Optional()
		writeScopeMiddleware := auth.RequireScope(authsvc.ScopeDataWrite)

		apirouter.RegisterRouteWithMiddleware(v1, "/folder", "GET", "/", []fiber.Handler{optionalMiddleware}, h.HandleList)
		apirouter.RegisterRouteWithMiddleware(v1, "/folder", "GET", "/:id", []fiber.Handler{optionalMiddleware}, h.HandleGet)
		apirouter.RegisterRouteWithMiddleware(v1, "/folder", "POST", "/", []fiber.Handler{writeScopeMiddleware}, h.HandleCreate)
		apirouter.RegisterRouteWithMiddleware(v1, "/folder", "PUT", "/:id", []fiber.Handler{writeScopeMiddleware}, h.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(v1, "/folder", "DELETE", "/:id", []fiber.Handler{writeScopeMiddleware}, h.HandleDelete)
		apirouter.RegisterRouteWithMiddleware(v1, "/folder", "PUT", "/:id/access", []fiber.Handler{writeScopeMiddleware}, h.HandleSetAccess)
		apirouter.RegisterRouteWithMiddleware(v1, "/folder", "PUT", "/:id/public", []fiber.Handler{writeScopeMiddleware}, h.HandleSetPublicLevel)
		apirouter.RegisterRouteWithMiddleware(v1, "/folder", "GET", "/:id/access", []fiber.Handler{writeScopeMiddleware}, h.HandleAccessList)
		adminMiddleware := auth.AdminRequired()
		apirouter.RegisterRouteWithMiddleware(v1, "/folder", "GET", "/:id/access/raw", []fiber.Handler{adminMiddleware}, h.HandleRawAccessList)
		return nil
	}
}
