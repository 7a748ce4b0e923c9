package authhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "github.com/manthey/girder/internal/api/auth/dto"
	authsvc "github.com/manthey/girder/internal/api/auth/service"
	basehdl "github.com/manthey/girder/internal/api/base/handler"
	"github.com/manthey/girder/internal/api/middleware"
	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/logger"
	"github.com/manthey/girder/internal/utility"
)

// ApiKeyHandler xử lý các route API key, gồm cả endpoint đổi key lấy token
type ApiKeyHandler struct {
	apiKeyService *authsvc.ApiKeyService
}

// NewApiKeyHandler tạo ApiKeyHandler
func NewApiKeyHandler(apiKeyService *authsvc.ApiKeyService) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyService: apiKeyService}
}

// HandleCreate POST /api_key - tạo key cho caller, secret sinh ngẫu nhiên
func (h *ApiKeyHandler) HandleCreate(c fiber.Ctx) error {
	var input authdto.ApiKeyCreateInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	owner := middleware.CurrentUser(c)
	if owner == nil {
		return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
	}

	key, err := h.apiKeyService.Create(c.Context(), owner, &input)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogCRUD(c, "api_keys", "create", key.ID.Hex())
	return basehdl.HandleResponse(c, key, nil)
}

// HandleList GET /api_key - liệt kê key; query userId cần quyền quản trị
func (h *ApiKeyHandler) HandleList(c fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	if caller == nil {
		return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
	}

	var ownerUserID *primitive.ObjectID
	if raw := c.Query("userId"); raw != "" {
		id, err := utility.String2ObjectID(raw)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		ownerUserID = &id
	}

	keys, err := h.apiKeyService.List(c.Context(), caller, ownerUserID)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, keys, nil)
}

// HandleUpdate PUT /api_key/:id - sửa key; mọi thay đổi đều xóa token đã
// phát hành từ key
func (h *ApiKeyHandler) HandleUpdate(c fiber.Ctx) error {
	keyID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	var input authdto.ApiKeyUpdateInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	caller := middleware.CurrentUser(c)
	if caller == nil {
		return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
	}

	key, err := h.apiKeyService.Update(c.Context(), keyID, caller, &input)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogCRUD(c, "api_keys", "update", keyID.Hex())
	return basehdl.HandleResponse(c, key, nil)
}

// HandleDelete DELETE /api_key/:id - xóa key và token của nó
func (h *ApiKeyHandler) HandleDelete(c fiber.Ctx) error {
	keyID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	caller := middleware.CurrentUser(c)
	if caller == nil {
		return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
	}

	if err := h.apiKeyService.Delete(c.Context(), keyID, caller); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogCRUD(c, "api_keys", "delete", keyID.Hex())
	return basehdl.HandleResponse(c, nil, nil)
}

// HandleExchange POST /api_key/token - đổi secret lấy token scoped.
// Endpoint không yêu cầu xác thực: secret chính là credential.
func (h *ApiKeyHandler) HandleExchange(c fiber.Ctx) error {
	var input authdto.ApiKeyExchangeInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	token, err := h.apiKeyService.Exchange(c.Context(), input.Key, input.Duration)
	if err != nil {
		logger.LogAuth(c, "", "api_key_exchange", false)
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogAuth(c, token.UserID.Hex(), "api_key_exchange", true)
	return basehdl.HandleResponse(c, token, nil)
}
