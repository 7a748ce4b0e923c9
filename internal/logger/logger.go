// Package logger khởi tạo và quản lý các logger của ứng dụng: app logger cho
// log vận hành, audit logger cho log hành vi người dùng, error logger cho lỗi.
// Log được ghi qua logrus với rotation bằng lumberjack.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	appLogger   *logrus.Logger
	auditLogger *logrus.Logger
	errorLogger *logrus.Logger
	initOnce    sync.Once
)

// Init khởi tạo toàn bộ hệ thống logger. Truyền nil để dùng cấu hình từ env.
// Gọi nhiều lần chỉ có tác dụng lần đầu.
func Init(cfg *LogConfig) error {
	var initErr error
	initOnce.Do(func() {
		if cfg == nil {
			cfg = DefaultConfig()
		}

		level, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			level = logrus.InfoLevel
		}

		appLogger = newLogger(cfg, level, cfg.AppLogPath)
		auditLogger = newLogger(cfg, logrus.InfoLevel, cfg.AuditLogPath)
		errorLogger = newLogger(cfg, logrus.ErrorLevel, cfg.ErrorLogPath)

		if len(cfg.FilterEndpoints) > 0 || len(cfg.FilterMethods) > 0 {
			appLogger.AddHook(NewFilterHook(cfg))
		}
		if cfg.AsyncBufferSize > 0 {
			auditLogger.AddHook(NewAsyncHook(cfg.AsyncBufferSize))
		}

		// logrus mặc định trỏ về app logger để code cũ dùng logrus.Info vẫn đúng cấu hình
		logrus.SetLevel(level)
		logrus.SetFormatter(appLogger.Formatter)
	})
	return initErr
}

// newLogger tạo một logrus.Logger với output theo cấu hình
func newLogger(cfg *LogConfig, level logrus.Level, path string) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	fileWriter := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch strings.ToLower(cfg.Output) {
	case "file":
		log.SetOutput(fileWriter)
	case "stdout":
		log.SetOutput(os.Stdout)
	default:
		log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
	}

	return log
}

// GetAppLogger trả về logger vận hành chung. Tự init với defaults nếu chưa Init.
func GetAppLogger() *logrus.Logger {
	if appLogger == nil {
		_ = Init(nil)
	}
	return appLogger
}

// GetAuditLogger trả về logger ghi log audit (login, CRUD, phân quyền)
func GetAuditLogger() *logrus.Logger {
	if auditLogger == nil {
		_ = Init(nil)
	}
	return auditLogger
}

// GetErrorLogger trả về logger chỉ ghi lỗi
func GetErrorLogger() *logrus.Logger {
	if errorLogger == nil {
		_ = Init(nil)
	}
	return errorLogger
}

// WithRequest tạo entry gắn sẵn thông tin request để trace qua request id
func WithRequest(c fiber.Ctx) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields{
		"request_id": c.Get("X-Request-ID"),
		"method":     c.Method(),
		"path":       c.Path(),
		"ip":         c.IP(),
	})
}
