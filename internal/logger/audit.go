package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// LogAction ghi một hành động nghiệp vụ vào audit log, kèm context request
func LogAction(c fiber.Ctx, action string, fields map[string]interface{}) {
	entry := GetAuditLogger().WithFields(logrus.Fields{
		"action":     action,
		"request_id": c.Get("X-Request-ID"),
		"method":     c.Method(),
		"path":       c.Path(),
		"ip":         c.IP(),
	})
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		entry = entry.WithField("user_id", userID)
	}
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Info("audit")
}

// LogCRUD ghi log thao tác CRUD trên một collection
func LogCRUD(c fiber.Ctx, collection string, operation string, docID string) {
	LogAction(c, "crud", map[string]interface{}{
		"collection": collection,
		"operation":  operation,
		"doc_id":     docID,
	})
}

// LogAuth ghi log sự kiện xác thực (login, logout, exchange key)
func LogAuth(c fiber.Ctx, userID string, event string, success bool) {
	LogAction(c, "auth", map[string]interface{}{
		"auth_user": userID,
		"event":     event,
		"success":   success,
	})
}
