package main

import (
	"github.com/sirupsen/logrus"

	"github.com/manthey/girder/internal/api/access"
	authhdl "github.com/manthey/girder/internal/api/auth/handler"
	authsvc "github.com/manthey/girder/internal/api/auth/service"
	folderhdl "github.com/manthey/girder/internal/api/folder/handler"
	foldermodels "github.com/manthey/girder/internal/api/folder/models"
	foldersvc "github.com/manthey/girder/internal/api/folder/service"
	"github.com/manthey/girder/internal/api/middleware"
	"github.com/manthey/girder/internal/global"
)

// Services gom các service, middleware và handler đã wire xong,
// dùng để đăng ký route và chạy worker.
type Services struct {
	ScopeRegistry *authsvc.ScopeRegistry
	FieldRegistry *access.FieldRegistry

	TokenService  *authsvc.TokenService
	UserService   *authsvc.UserService
	GroupService  *authsvc.GroupService
	ApiKeyService *authsvc.ApiKeyService
	FolderService *foldersvc.FolderService

	AuthMiddleware *middleware.AuthMiddleware

	UserHandler   *authhdl.UserHandler
	GroupHandler  *authhdl.GroupHandler
	ApiKeyHandler *authhdl.ApiKeyHandler
	TokenHandler  *authhdl.TokenHandler
	FolderHandler *folderhdl.FolderHandler
}

// InitRegistry đăng ký các collection vào registry toàn cục rồi dựng
// toàn bộ service/middleware/handler với các registry bất biến
// (scope, field, cleaner) được build một lần lúc khởi động.
func InitRegistry() *Services {
	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)

	colNames := []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.Groups,
		global.MongoDB_ColNames.Tokens,
		global.MongoDB_ColNames.ApiKeys,
		global.MongoDB_ColNames.Folders,
	}
	for _, name := range colNames {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			logrus.Fatalf("Failed to register collection %s: %v", name, err)
		}
	}
	logrus.Info("Registered collections")

	// Registry scope và field: build một lần, sau đó chỉ đọc
	scopeRegistry := authsvc.NewDefaultScopeRegistry()
	fieldRegistry := access.NewFieldRegistry()
	foldermodels.RegisterFields(fieldRegistry)

	// Cleaner gỡ grant ACL và creatorId trên các collection kiểm soát
	// truy cập khi user/group bị xóa
	cleaner := access.NewCleaner(db.Collection(global.MongoDB_ColNames.Folders))

	// Cache phiên chia sẻ: middleware đọc, các service đổi quyền gỡ
	sessionCache := middleware.NewSessionCache()

	tokenService, err := authsvc.NewTokenService()
	if err != nil {
		logrus.Fatalf("Failed to create token service: %v", err)
	}
	userService, err := authsvc.NewUserService(scopeRegistry, cleaner, sessionCache)
	if err != nil {
		logrus.Fatalf("Failed to create user service: %v", err)
	}
	groupService, err := authsvc.NewGroupService(cleaner, sessionCache)
	if err != nil {
		logrus.Fatalf("Failed to create group service: %v", err)
	}
	apiKeyService, err := authsvc.NewApiKeyService(scopeRegistry)
	if err != nil {
		logrus.Fatalf("Failed to create api key service: %v", err)
	}

	directory := authsvc.NewPrincipalDirectory(userService, groupService)
	folderService, err := foldersvc.NewFolderService(fieldRegistry, directory)
	if err != nil {
		logrus.Fatalf("Failed to create folder service: %v", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(tokenService, userService, groupService, sessionCache)

	logrus.Info("Initialized services")

	return &Services{
		ScopeRegistry: scopeRegistry,
		FieldRegistry: fieldRegistry,

		TokenService:  tokenService,
		UserService:   userService,
		GroupService:  groupService,
		ApiKeyService: apiKeyService,
		FolderService: folderService,

		AuthMiddleware: authMiddleware,

		UserHandler:   authhdl.NewUserHandler(userService),
		GroupHandler:  authhdl.NewGroupHandler(groupService),
		ApiKeyHandler: authhdl.NewApiKeyHandler(apiKeyService),
		TokenHandler:  authhdl.NewTokenHandler(tokenService, scopeRegistry),
		FolderHandler: folderhdl.NewFolderHandler(folderService),
	}
}
