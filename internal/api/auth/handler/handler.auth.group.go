package authhdl

import (
	"github.com/gofiber/fiber/v3"

	authdto "github.com/manthey/girder/internal/api/auth/dto"
	authsvc "github.com/manthey/girder/internal/api/auth/service"
	basehdl "github.com/manthey/girder/internal/api/base/handler"
	"github.com/manthey/girder/internal/api/middleware"
	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/logger"
	"github.com/manthey/girder/internal/utility"
)

// GroupHandler xử lý các route group và thành viên group
type GroupHandler struct {
	groupService *authsvc.GroupService
}

// NewGroupHandler tạo GroupHandler
func NewGroupHandler(groupService *authsvc.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// HandleCreate POST /group - tạo group, người tạo là thành viên đầu tiên
func (h *GroupHandler) HandleCreate(c fiber.Ctx) error {
	var input authdto.GroupCreateInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	creator := middleware.CurrentUser(c)
	if creator == nil {
		return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
	}

	group, err := h.groupService.Create(c.Context(), creator, &input)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogCRUD(c, "groups", "create", group.ID.Hex())
	return basehdl.HandleResponse(c, group, nil)
}

// HandleDelete DELETE /group/:id - xóa group, gỡ các grant ACL của group
func (h *GroupHandler) HandleDelete(c fiber.Ctx) error {
	groupID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	caller := middleware.CurrentUser(c)
	if caller == nil {
		return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
	}

	if err := h.groupService.Delete(c.Context(), caller, groupID); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	logger.LogCRUD(c, "groups", "delete", groupID.Hex())
	return basehdl.HandleResponse(c, nil, nil)
}

// HandleAddMember POST /group/:id/member - thêm thành viên
func (h *GroupHandler) HandleAddMember(c fiber.Ctx) error {
	groupID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	var input authdto.GroupMemberInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	userID, err := utility.String2ObjectID(input.UserID)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	group, err := h.groupService.AddMember(c.Context(), groupID, userID)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, group, nil)
}

// HandleRemoveMember DELETE /group/:id/member - gỡ thành viên
func (h *GroupHandler) HandleRemoveMember(c fiber.Ctx) error {
	groupID, err := basehdl.ParseObjectIDParam(c, "id")
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	var input authdto.GroupMemberInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	userID, err := utility.String2ObjectID(input.UserID)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	group, err := h.groupService.RemoveMember(c.Context(), groupID, userID)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, group, nil)
}

// HandleList GET /group - liệt kê group có phân trang
func (h *GroupHandler) HandleList(c fiber.Ctx) error {
	page, limit := basehdl.ParsePagination(c)
	result, err := h.groupService.FindWithPagination(c.Context(), map[string]interface{}{}, page, limit, nil)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, result, nil)
}
