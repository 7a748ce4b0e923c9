package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng:
// địa chỉ server, kết nối MongoDB, bí mật JWT và các tham số token.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // Port server
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật ký JWT
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URI kết nối MongoDB
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên database chính
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Origins được phép, phân cách dấu phẩy
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = tắt)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Tham số vòng đời token. TokenDurationDays là thời hạn mặc định (ngày)
	// cho cả token đăng nhập và token đổi từ API key.
	TokenDurationDays    int `env:"TOKEN_DURATION_DAYS" envDefault:"30"`    // Thời hạn token mặc định (ngày)
	TokenSweepInterval   int `env:"TOKEN_SWEEP_INTERVAL" envDefault:"3600"` // Chu kỳ dọn token hết hạn (giây)

	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn private key (.key)
}

// getEnvPath trả về đường dẫn file env theo GO_ENV, tìm thư mục config/env
// từ thư mục hiện tại đi dần lên thư mục cha.
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Dùng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env của môi trường hiện tại
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
