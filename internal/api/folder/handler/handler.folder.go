// Package folderhdl chứa handler HTTP của domain folder.
package folderhdl

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"github.com/manthey/girder/internal/api/access"
	basehdl "github.com/manthey/girder/internal/api/base/handler"
	folderdto "github.com/manthey/girder/internal/api/folder/dto"
	foldersvc "github.com/manthey/girder/internal/api/folder/service"
	"github.com/manthey/girder/internal/api/middleware"
	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/logger"
)

// FolderHandler xử lý các route folder: CRUD có lọc field và quản lý ACL
type FolderHandler struct {
	folderService *foldersvc.FolderService
}

// NewFolderHandler tạo FolderHandler
func NewFolderHandler(folderService *foldersvc.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

// parseProjection đọc query param fields dạng JSON object
// {"name": true, "size": true} thành projection. Không truyền = không lọc.
func parseProjection(c fiber.Ctx) (access.Projection, error) {
	raw := c.Query("fields")
	if raw == "" {
		return nil, nil
	}
	var projection access.Projection
	if err := json.Unmarshal([]byte(raw), &projection); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "fields phải là JSON object của các boolean", common.StatusBadRequest, err.Error())
	}
	return projection, nil
}

// HandleCreate POST /folder - tạo folder, người tạo nhận quyền ADMIN
func (h *FolderHandler) HandleCreate(c fiber.Ctx) error {
	var input folderdto.FolderCreateInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	folder, err := h.folderService.Create(c.Context(), middleware.CurrentCaller(c), &input)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogCRUD(c, "folders", "create", folder.ID.Hex())
	return basehdl.HandleResponse(c, folder, nil)
}

// HandleGet GET /folder/:id - đọc folder, field được lọc theo mức truy cập
func (h *FolderHandler) HandleGet(c fiber.Ctx) error {
	folderID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	doc, err := h.folderService.GetFiltered(c.Context(), folderID, middleware.CurrentCaller(c))
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, doc, nil)
}

// HandleList GET /folder - liệt kê folder caller đọc được, hỗ trợ projection
func (h *FolderHandler) HandleList(c fiber.Ctx) error {
	projection, err := parseProjection(c)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	page, limit := basehdl.ParsePagination(c)

	result, err := h.folderService.ListFiltered(c.Context(), middleware.CurrentCaller(c), projection, page, limit)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, result, nil)
}

// HandleUpdate PUT /folder/:id - sửa folder, yêu cầu mức WRITE
func (h *FolderHandler) HandleUpdate(c fiber.Ctx) error {
	folderID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	var input folderdto.FolderUpdateInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	folder, err := h.folderService.Update(c.Context(), folderID, middleware.CurrentCaller(c), &input)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogCRUD(c, "folders", "update", folderID.Hex())
	return basehdl.HandleResponse(c, folder, nil)
}

// HandleDelete DELETE /folder/:id - xóa folder, yêu cầu mức ADMIN
func (h *FolderHandler) HandleDelete(c fiber.Ctx) error {
	folderID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	if err := h.folderService.Delete(c.Context(), folderID, middleware.CurrentCaller(c)); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogCRUD(c, "folders", "delete", folderID.Hex())
	return basehdl.HandleResponse(c, nil, nil)
}

// HandleSetAccess PUT /folder/:id/access - cấp/thu hồi quyền một principal
func (h *FolderHandler) HandleSetAccess(c fiber.Ctx) error {
	folderID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	var input folderdto.AccessGrantInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	if err := h.folderService.SetAccess(c.Context(), folderID, middleware.CurrentCaller(c), &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogAction(c, "acl_grant", map[string]interface{}{
		"folder_id": folderID.Hex(),
		"user_id":   input.UserID,
		"group_id":  input.GroupID,
	})
	return basehdl.HandleResponse(c, nil, nil)
}

// HandleSetPublicLevel PUT /folder/:id/public - đặt/gỡ mức truy cập public
func (h *FolderHandler) HandleSetPublicLevel(c fiber.Ctx) error {
	folderID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	var input folderdto.PublicLevelInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	if err := h.folderService.SetPublicLevel(c.Context(), folderID, middleware.CurrentCaller(c), &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, nil, nil)
}

// HandleAccessList GET /folder/:id/access - ACL đã resolve tên principal
func (h *FolderHandler) HandleAccessList(c fiber.Ctx) error {
	folderID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	list, err := h.folderService.FullAccessList(c.Context(), folderID, middleware.CurrentCaller(c))
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, list, nil)
}

// HandleRawAccessList GET /folder/:id/access/raw - ACL nguyên bản trong DB,
// chỉ dành cho site admin
func (h *FolderHandler) HandleRawAccessList(c fiber.Ctx) error {
	folderID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	acl, publicLevel, err := h.folderService.RawAccessList(c.Context(), folderID, middleware.CurrentCaller(c))
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, fiber.Map{
		"access":      acl,
		"publicLevel": publicLevel,
	}, nil)
}
