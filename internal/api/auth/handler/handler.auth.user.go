// Package authhdl chứa handler HTTP của domain auth.
package authhdl

import (
	"github.com/gofiber/fiber/v3"

	authdto "github.com/manthey/girder/internal/api/auth/dto"
	authsvc "github.com/manthey/girder/internal/api/auth/service"
	basehdl "github.com/manthey/girder/internal/api/base/handler"
	"github.com/manthey/girder/internal/api/middleware"
	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/logger"
)

// UserHandler xử lý các route user: đăng ký, đăng nhập, phiên, quản trị
type UserHandler struct {
	userService *authsvc.UserService
}

// NewUserHandler tạo UserHandler
func NewUserHandler(userService *authsvc.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// HandleRegister POST /user - đăng ký user mới
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	var input authdto.UserRegisterInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	user, err := h.userService.Register(c.Context(), &input)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogAuth(c, user.ID.Hex(), "register", true)
	return basehdl.HandleResponse(c, user, nil)
}

// HandleLogin POST /user/login - xác thực và phát hành token phiên
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	var input authdto.UserLoginInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	user, token, err := h.userService.Login(c.Context(), &input)
	if err != nil {
		logger.LogAuth(c, input.Login, "login", false)
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogAuth(c, user.ID.Hex(), "login", true)
	return basehdl.HandleResponse(c, fiber.Map{
		"user":  user,
		"token": token,
	}, nil)
}

// HandleLogout POST /user/logout - thu hồi token của phiên hiện tại
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	tokenValue := middleware.CurrentToken(c)
	if err := h.userService.Logout(c.Context(), tokenValue); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	user := middleware.CurrentUser(c)
	if user != nil {
		logger.LogAuth(c, user.ID.Hex(), "logout", true)
	}
	return basehdl.HandleResponse(c, nil, nil)
}

// HandleMe GET /user/me - thông tin user của phiên
func (h *UserHandler) HandleMe(c fiber.Ctx) error {
	return basehdl.HandleResponse(c, middleware.CurrentUser(c), nil)
}

// HandleDelete DELETE /user/:id - xóa user kèm dọn dẹp token/key/ACL
func (h *UserHandler) HandleDelete(c fiber.Ctx) error {
	userID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	caller := middleware.CurrentUser(c)
	if caller == nil {
		return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
	}

	if err := h.userService.Delete(c.Context(), caller, userID); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogCRUD(c, "users", "delete", userID.Hex())
	return basehdl.HandleResponse(c, nil, nil)
}

// HandleSetSiteAdmin PUT /user/:id/site-admin - bật/tắt quyền quản trị
func (h *UserHandler) HandleSetSiteAdmin(c fiber.Ctx) error {
	userID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	var input struct {
		SiteAdmin bool `json:"siteAdmin"`
	}
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	caller := middleware.CurrentUser(c)
	if caller == nil {
		return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
	}

	user, err := h.userService.SetSiteAdmin(c.Context(), caller, userID, input.SiteAdmin)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, user, nil)
}
