package authhdl

import (
	"github.com/gofiber/fiber/v3"

	authsvc "github.com/manthey/girder/internal/api/auth/service"
	basehdl "github.com/manthey/girder/internal/api/base/handler"
	"github.com/manthey/girder/internal/api/middleware"
	"github.com/manthey/girder/internal/common"
)

// TokenHandler xử lý các route token: catalog scope và thông tin phiên
type TokenHandler struct {
	tokenService *authsvc.TokenService
	scopes       *authsvc.ScopeRegistry
}

// NewTokenHandler tạo TokenHandler
func NewTokenHandler(tokenService *authsvc.TokenService, scopes *authsvc.ScopeRegistry) *TokenHandler {
	return &TokenHandler{tokenService: tokenService, scopes: scopes}
}

// HandleScopes GET /token/scopes - catalog scope theo thứ tự đăng ký,
// tách nhóm thường và nhóm admin
func (h *TokenHandler) HandleScopes(c fiber.Ctx) error {
	return basehdl.HandleResponse(c, h.scopes.Catalog(), nil)
}

// HandleSession GET /token/session - bản ghi token của phiên hiện tại
func (h *TokenHandler) HandleSession(c fiber.Ctx) error {
	tokenValue := middleware.CurrentToken(c)
	if tokenValue == "" {
		return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
	}

	token, err := h.tokenService.Validate(c.Context(), tokenValue)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, token, nil)
}
