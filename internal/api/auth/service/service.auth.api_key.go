package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "github.com/manthey/girder/internal/api/auth/dto"
	authmodels "github.com/manthey/girder/internal/api/auth/models"
	basesvc "github.com/manthey/girder/internal/api/base/service"
	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/global"
	"github.com/manthey/girder/internal/utility"
)

// ApiKeyService quản lý API key: tạo, sửa, xóa, liệt kê và đổi key lấy token.
// Mọi thay đổi trên key đều vô hiệu hóa các token đã phát hành từ key đó.
type ApiKeyService struct {
	*basesvc.BaseServiceMongoImpl[authmodels.ApiKey]
	tokenService *TokenService
	scopes       *ScopeRegistry
}

// NewApiKeyService tạo ApiKeyService với scope registry được inject
func NewApiKeyService(scopes *ScopeRegistry) (*ApiKeyService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ApiKeys)
	if !exist {
		return nil, fmt.Errorf("failed to get api_keys collection: %v", common.ErrNotFound)
	}
	tokenService, err := NewTokenService()
	if err != nil {
		return nil, err
	}
	return &ApiKeyService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authmodels.ApiKey](collection),
		tokenService:         tokenService,
		scopes:               scopes,
	}, nil
}

// Create tạo key mới cho owner. Scope được validate theo quyền của owner;
// scope nil nghĩa là "toàn bộ quyền mặc định". Secret sinh ngẫu nhiên và
// bất biến sau khi tạo.
func (s *ApiKeyService) Create(ctx context.Context, owner *authmodels.User, input *authdto.ApiKeyCreateInput) (*authmodels.ApiKey, error) {
	if err := s.scopes.ValidateScopes(input.Scope, owner.SiteAdmin); err != nil {
		return nil, err
	}
	if input.TokenDuration < 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "tokenDuration phải không âm", common.StatusBadRequest, nil)
	}

	secret, err := utility.RandomHex(32)
	if err != nil {
		return nil, err
	}

	key := authmodels.ApiKey{
		UserID:        owner.ID,
		Name:          input.Name,
		Key:           secret,
		Scope:         input.Scope,
		TokenDuration: input.TokenDuration,
		Active:        true,
	}

	created, err := s.InsertOne(ctx, key)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// loadOwned đọc key và kiểm tra caller là chủ sở hữu hoặc site admin
func (s *ApiKeyService) loadOwned(ctx context.Context, keyID primitive.ObjectID, caller *authmodels.User) (*authmodels.ApiKey, error) {
	key, err := s.FindOneById(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if key.UserID != caller.ID && !caller.SiteAdmin {
		return nil, common.ErrForbidden
	}
	return &key, nil
}

// Update sửa name/active/tokenDuration/scope của key. Secret không đổi được.
// Mọi token đã phát hành từ key đều bị xóa: thay đổi không áp hồi tố lên
// token cũ mà vô hiệu hóa chúng.
func (s *ApiKeyService) Update(ctx context.Context, keyID primitive.ObjectID, caller *authmodels.User, input *authdto.ApiKeyUpdateInput) (*authmodels.ApiKey, error) {
	key, err := s.loadOwned(ctx, keyID, caller)
	if err != nil {
		return nil, err
	}

	set := map[string]interface{}{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Active != nil {
		set["active"] = *input.Active
	}
	if input.TokenDuration != nil {
		if *input.TokenDuration < 0 {
			return nil, common.NewError(common.ErrCodeValidationInput, "tokenDuration phải không âm", common.StatusBadRequest, nil)
		}
		set["tokenDuration"] = *input.TokenDuration
	}
	if input.ScopeSet {
		if err := s.scopes.ValidateScopes(input.Scope, caller.SiteAdmin); err != nil {
			return nil, err
		}
		set["scope"] = input.Scope
	}

	if len(set) == 0 {
		return key, nil
	}

	updated, err := s.UpdateById(ctx, key.ID, &basesvc.UpdateData{Set: set})
	if err != nil {
		return nil, err
	}

	if _, err := s.tokenService.DeleteForApiKey(ctx, key.ID); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete xóa key và cascade xóa mọi token do key phát hành
func (s *ApiKeyService) Delete(ctx context.Context, keyID primitive.ObjectID, caller *authmodels.User) error {
	key, err := s.loadOwned(ctx, keyID, caller)
	if err != nil {
		return err
	}

	if err := s.DeleteById(ctx, key.ID); err != nil {
		return err
	}
	_, err = s.tokenService.DeleteForApiKey(ctx, key.ID)
	return err
}

// List liệt kê key theo user. Không truyền ownerUserID thì mặc định là key
// của chính caller; xem key của user khác yêu cầu quyền quản trị.
func (s *ApiKeyService) List(ctx context.Context, caller *authmodels.User, ownerUserID *primitive.ObjectID) ([]authmodels.ApiKey, error) {
	target := caller.ID
	if ownerUserID != nil {
		target = *ownerUserID
	}
	if target != caller.ID && !caller.SiteAdmin {
		return nil, common.ErrAdminRequired
	}
	return s.Find(ctx, bson.M{"userId": target}, nil)
}

// Exchange đổi secret của key lấy token mới. Key không tồn tại và key bị
// vô hiệu hóa trả cùng một lỗi chung để tránh dò key hợp lệ.
func (s *ApiKeyService) Exchange(ctx context.Context, secret string, requestedDays int) (*authmodels.Token, error) {
	if secret == "" {
		return nil, common.ErrInvalidApiKey
	}

	key, err := s.FindOne(ctx, bson.M{"key": secret}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidApiKey
		}
		return nil, err
	}
	if !key.Active {
		return nil, common.ErrInvalidApiKey
	}

	scope := key.Scope
	if scope == nil {
		scope = s.scopes.DefaultUserScopes()
	}
	days := EffectiveDurationDays(requestedDays, key.TokenDuration)

	token, err := s.tokenService.Issue(ctx, key.UserID, scope, days, &key.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.UpdateById(ctx, key.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{"lastUse": time.Now().UnixMilli()},
	}); err != nil {
		return nil, err
	}
	return token, nil
}

// DeleteForUser xóa toàn bộ key của user kèm token của chúng (khi xóa user)
func (s *ApiKeyService) DeleteForUser(ctx context.Context, userID primitive.ObjectID) error {
	keys, err := s.Find(ctx, bson.M{"userId": userID}, nil)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if _, err := s.tokenService.DeleteForApiKey(ctx, key.ID); err != nil {
			return err
		}
	}
	_, err = s.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}
