// Package global giữ các biến toàn cục dùng chung: cấu hình server, session
// MongoDB, registry collections và validator.
package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/manthey/girder/config"
	"github.com/manthey/girder/internal/registry"
)

// CollectionNames chứa tên các collection trong database
type CollectionNames struct {
	Users   string // Người dùng
	Groups  string // Nhóm người dùng
	Tokens  string // Token phiên (login + đổi từ API key)
	ApiKeys string // API key
	Folders string // Thư mục (tài liệu có kiểm soát truy cập)
}

var (
	// MongoDB_ServerConfig cấu hình server đọc từ env
	MongoDB_ServerConfig *config.Configuration

	// MongoDB_Session client kết nối MongoDB dùng chung
	MongoDB_Session *mongo.Client

	// MongoDB_ColNames tên các collection, gán giá trị lúc khởi động
	MongoDB_ColNames CollectionNames

	// RegistryCollections registry các *mongo.Collection theo tên
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()

	// Validate validator dùng chung, khởi tạo qua InitValidator
	Validate *validator.Validate
)
