package authsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/manthey/girder/internal/api/access"
	authdto "github.com/manthey/girder/internal/api/auth/dto"
	authmodels "github.com/manthey/girder/internal/api/auth/models"
	basesvc "github.com/manthey/girder/internal/api/base/service"
	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/global"
)

// UserService quản lý người dùng: đăng ký, đăng nhập, xóa kèm dọn dẹp
// các tham chiếu (token, api key, grant ACL, creatorId).
type UserService struct {
	*basesvc.BaseServiceMongoImpl[authmodels.User]
	tokenService  *TokenService
	apiKeyService *ApiKeyService
	aclHooks      access.DeletionHooks
	sessions      SessionInvalidator
}

// NewUserService tạo UserService. aclHooks nhận thông báo khi user bị xóa
// để gỡ các grant ACL trỏ tới user; sessions gỡ cache danh tính khi quyền
// của user đổi.
func NewUserService(scopes *ScopeRegistry, aclHooks access.DeletionHooks, sessions SessionInvalidator) (*UserService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	tokenService, err := NewTokenService()
	if err != nil {
		return nil, err
	}
	apiKeyService, err := NewApiKeyService(scopes)
	if err != nil {
		return nil, err
	}
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authmodels.User](collection),
		tokenService:         tokenService,
		apiKeyService:        apiKeyService,
		aclHooks:             aclHooks,
		sessions:             sessions,
	}, nil
}

// invalidateSession gỡ cache danh tính của user để quyền mới có hiệu lực ngay
func (s *UserService) invalidateSession(userID primitive.ObjectID) {
	if s.sessions != nil {
		s.sessions.Invalidate(userID)
	}
}

// Register tạo user mới. Login chuẩn hóa lowercase. User đầu tiên của hệ
// thống tự động trở thành site admin.
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (*authmodels.User, error) {
	login := strings.ToLower(strings.TrimSpace(input.Login))
	if login == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Login không được rỗng", common.StatusBadRequest, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể hash mật khẩu", common.StatusInternalServerError, err)
	}

	count, err := s.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	user := authmodels.User{
		Login:        login,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         input.Name,
		PasswordHash: string(hash),
		SiteAdmin:    count == 0,
	}

	created, err := s.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Login xác thực login/password và phát hành token đăng nhập.
// Sai login hay sai password đều trả cùng một lỗi chung.
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*authmodels.User, *authmodels.Token, error) {
	login := strings.ToLower(strings.TrimSpace(input.Login))

	user, err := s.FindOne(ctx, bson.M{"login": login}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrInvalidCredential
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, nil, common.ErrInvalidCredential
	}

	token, err := s.tokenService.IssueForLogin(ctx, user.ID, input.Days)
	if err != nil {
		return nil, nil, err
	}
	return &user, token, nil
}

// Logout thu hồi token hiện tại của phiên
func (s *UserService) Logout(ctx context.Context, tokenValue string) error {
	return s.tokenService.DeleteByValue(ctx, tokenValue)
}

// SetSiteAdmin bật/tắt quyền quản trị toàn hệ thống của một user
func (s *UserService) SetSiteAdmin(ctx context.Context, caller *authmodels.User, userID primitive.ObjectID, siteAdmin bool) (*authmodels.User, error) {
	if !caller.SiteAdmin {
		return nil, common.ErrAdminRequired
	}
	updated, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{"siteAdmin": siteAdmin},
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSession(userID)
	return &updated, nil
}

// Delete xóa user và dọn mọi tham chiếu: token, api key (kèm token của
// chúng), grant ACL và creatorId trên các document kiểm soát truy cập.
// Chỉ chính chủ hoặc site admin được xóa.
func (s *UserService) Delete(ctx context.Context, caller *authmodels.User, userID primitive.ObjectID) error {
	if caller.ID != userID && !caller.SiteAdmin {
		return common.ErrAdminRequired
	}

	if _, err := s.FindOneById(ctx, userID); err != nil {
		return err
	}

	if err := s.apiKeyService.DeleteForUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.tokenService.DeleteForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.DeleteById(ctx, userID); err != nil {
		return err
	}

	if s.aclHooks != nil {
		if err := s.aclHooks.OnUserDeleted(ctx, userID); err != nil {
			return err
		}
	}

	s.invalidateSession(userID)
	return nil
}

// ResolveUser implement access.PrincipalResolver cho user
func (s *UserService) ResolveUser(ctx context.Context, id primitive.ObjectID) (string, bool, error) {
	user, err := s.FindOneById(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return user.Login, true, nil
}
