// Package basehdl chứa các helper chung cho tầng handler: envelope response,
// parse request và wrapper recover.
package basehdl

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/logger"
)

// MsgSuccess thông điệp mặc định cho response thành công
const MsgSuccess = "Thành công"

// JSONResponse ghi body JSON với charset rõ ràng
func JSONResponse(c fiber.Ctx, statusCode int, body interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.Status(statusCode).Send(data)
}

// HandleResponse trả response theo envelope thống nhất.
// Lỗi *common.Error dùng status/mã riêng; lỗi khác coi là lỗi hệ thống.
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		var appErr *common.Error
		if errors.As(err, &appErr) {
			return JSONResponse(c, appErr.StatusCode, fiber.Map{
				"code":    appErr.Code.Code,
				"message": appErr.Message,
				"details": appErr.Details,
				"status":  "error",
			})
		}
		logger.WithRequest(c).WithError(err).Error("Unhandled error")
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": "Lỗi hệ thống",
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// SafeHandler bọc handler với recover để panic không làm sập request
func SafeHandler(handler func(fiber.Ctx) error) fiber.Handler {
	return func(c fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				logger.WithRequest(c).WithField("panic", r).Error("Handler panic recovered")
				_ = JSONResponse(c, common.StatusInternalServerError, fiber.Map{
					"code":    common.ErrCodeInternalServer.Code,
					"message": "Lỗi hệ thống",
					"status":  "error",
				})
			}
		}()
		return handler(c)
	}
}
