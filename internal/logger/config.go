package logger

import (
	"github.com/caarlos0/env"
)

// LogConfig chứa toàn bộ cấu hình logging, đọc từ environment variables.
// Output hỗ trợ "stdout", "file" hoặc "both".
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`   // trace, debug, info, warn, error
	Format string `env:"LOG_FORMAT" envDefault:"text"`  // text hoặc json
	Output string `env:"LOG_OUTPUT" envDefault:"both"`  // stdout, file, both

	// Đường dẫn các file log
	AppLogPath   string `env:"LOG_APP_PATH" envDefault:"logs/app.log"`
	AuditLogPath string `env:"LOG_AUDIT_PATH" envDefault:"logs/audit.log"`
	ErrorLogPath string `env:"LOG_ERROR_PATH" envDefault:"logs/error.log"`

	// Cấu hình rotation (lumberjack)
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"`   // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"5"`  // số file backup
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"30"`     // ngày
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`

	// Buffer cho async hook; log bị drop khi buffer đầy thay vì block request
	AsyncBufferSize int `env:"LOG_ASYNC_BUFFER" envDefault:"1000"`

	// Filter: các endpoint/method bị đánh dấu _filtered để giảm noise
	FilterEndpoints []string `env:"LOG_FILTER_ENDPOINTS" envSeparator:","`
	FilterMethods   []string `env:"LOG_FILTER_METHODS" envSeparator:","`
}

// DefaultConfig đọc cấu hình logging từ environment, fallback về defaults
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{}
	if err := env.Parse(cfg); err != nil {
		// Env lỗi thì vẫn chạy được với defaults tối thiểu
		return &LogConfig{
			Level:           "info",
			Format:          "text",
			Output:          "stdout",
			AppLogPath:      "logs/app.log",
			AuditLogPath:    "logs/audit.log",
			ErrorLogPath:    "logs/error.log",
			MaxSize:         100,
			MaxBackups:      5,
			MaxAge:          30,
			Compress:        true,
			AsyncBufferSize: 1000,
		}
	}
	return cfg
}
