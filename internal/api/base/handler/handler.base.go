package basehdl

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/global"
	"github.com/manthey/girder/internal/utility"
)

// ParseRequestBody decode JSON body vào target và chạy validator.
// UseNumber giữ nguyên số lớn thay vì ép float64.
func ParseRequestBody(c fiber.Ctx, target interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return common.NewError(common.ErrCodeValidationInput, "Body rỗng", common.StatusBadRequest, nil)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, "Body không phải JSON hợp lệ", common.StatusBadRequest, err)
	}

	if global.Validate != nil {
		if err := global.Validate.Struct(target); err != nil {
			return common.NewError(common.ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", common.StatusBadRequest, err.Error())
		}
	}
	return nil
}

// ParseObjectIDParam đọc path param và chuyển sang ObjectID
func ParseObjectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	raw := c.Params(name)
	if raw == "" {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationInput, "Thiếu tham số "+name, common.StatusBadRequest, nil)
	}
	return utility.String2ObjectID(raw)
}

// ParsePagination đọc page/limit từ query; limit bị chặn trần 1000
func ParsePagination(c fiber.Ctx) (page int64, limit int64) {
	page = 1
	limit = 50

	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			page = v
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 1000 {
		limit = 1000
	}
	return page, limit
}
